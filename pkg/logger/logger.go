// Package logger provides the structured logger for Vitrine, built on
// log/slog.
//
// Init selects the handler from the injected config: JSON in production,
// text everywhere else, optionally fanned out to a MongoDB sink. The
// per-request pattern is WithCtx:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("order placed", "order_id", order.ID)
//	// → time=... level=INFO msg="order placed" request_id=a1b2c3d4 order_id=42
package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/shashiranjanraj/vitrine/config"
)

// L is the process-wide base logger. Init replaces it; before Init it logs
// text to stdout so early startup failures are still visible.
var L = slog.New(slog.NewTextHandler(os.Stdout, nil))

// Init configures the base logger from cfg. The returned function flushes
// and closes any attached sinks; call it on shutdown.
func Init(cfg *config.Config) (func(), error) {
	var handler slog.Handler
	if cfg.Production() {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	closeFn := func() {}
	if cfg.LogMongoURI != "" {
		mh, err := NewMongoHandler(cfg.LogMongoURI, cfg.LogMongoDatabase, cfg.LogMongoCollection)
		if err != nil {
			return nil, err
		}
		handler = NewMultiHandler(handler, mh)
		closeFn = mh.Close
	}

	L = slog.New(handler)
	slog.SetDefault(L)
	return closeFn, nil
}

// ctxKey stores a per-request *slog.Logger in context.
type ctxKey struct{}

// WithCtx returns the request-scoped logger injected by the Logger
// middleware, or the base logger when none is present.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores a pre-tagged *slog.Logger into ctx. Called by the
// Logger middleware; application code normally only reads via WithCtx.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// Debug logs at DEBUG level on the base logger.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level on the base logger.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level on the base logger.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level on the base logger.
func Error(msg string, args ...any) { L.Error(msg, args...) }
