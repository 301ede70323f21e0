// Package server wires the application together and runs the HTTP server.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/vitrine/app/controllers"
	"github.com/shashiranjanraj/vitrine/app/repositories"
	"github.com/shashiranjanraj/vitrine/app/routes"
	"github.com/shashiranjanraj/vitrine/app/services"
	"github.com/shashiranjanraj/vitrine/config"
	"github.com/shashiranjanraj/vitrine/pkg/auth"
	"github.com/shashiranjanraj/vitrine/pkg/cache"
	"github.com/shashiranjanraj/vitrine/pkg/database"
	"github.com/shashiranjanraj/vitrine/pkg/logger"
	"github.com/shashiranjanraj/vitrine/pkg/metrics"
	"github.com/shashiranjanraj/vitrine/pkg/middleware"
	"github.com/shashiranjanraj/vitrine/pkg/reqid"
	"github.com/shashiranjanraj/vitrine/pkg/router"
	"github.com/shashiranjanraj/vitrine/pkg/storage"
)

// Server is the assembled application: configuration, stores, services and
// the route table, ready to serve.
type Server struct {
	cfg     *config.Config
	db      *gorm.DB
	store   *cache.Store
	router  *router.Router
	closers []func()
}

// New builds the full dependency graph from cfg. Redis and S3 failures are
// downgraded to warnings; a database failure aborts.
func New(cfg *config.Config) (*Server, error) {
	s := &Server{cfg: cfg}

	closeLogs, err := logger.Init(cfg)
	if err != nil {
		return nil, err
	}
	s.closers = append(s.closers, closeLogs)

	s.db, err = database.Connect(cfg)
	if err != nil {
		return nil, err
	}

	s.store, err = cache.Connect(cfg)
	if err != nil {
		logger.Warn("cache unavailable, serving without it", "error", err)
	}
	s.closers = append(s.closers, func() { _ = s.store.Close() })

	disks, err := storage.NewManager(cfg)
	if err != nil {
		logger.Warn("s3 disk unavailable, falling back to local", "error", err)
	}

	tokens := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL)

	users := repositories.NewUserRepository(s.db)
	categories := repositories.NewCategoryRepository(s.db)
	products := repositories.NewProductRepository(s.db)
	orders := repositories.NewOrderRepository(s.db)

	authSvc := services.NewAuthService(users, tokens)
	catalogSvc := services.NewCatalogService(categories, products, s.store)
	orderSvc := services.NewOrderService(orders)

	s.router = router.New()
	s.router.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(300, time.Minute),
	)

	routes.Register(s.router, routes.Controllers{
		Auth:     controllers.NewAuthController(authSvc, cfg.BodyMaxBytes),
		Category: controllers.NewCategoryController(catalogSvc, cfg.BodyMaxBytes),
		Product:  controllers.NewProductController(catalogSvc, cfg.BodyMaxBytes),
		Order:    controllers.NewOrderController(orderSvc, cfg.BodyMaxBytes),
		Upload:   controllers.NewUploadController(disks, cfg.UploadMaxBytes),
		Health:   controllers.NewHealthController(s.db),
	}, tokens, authSvc.Resolve)

	return s, nil
}

// Routes exposes the route table for `vitrine route:list`.
func (s *Server) Routes() []router.RouteInfo {
	return s.router.Routes()
}

// DB exposes the live connection, used by the migration and seed commands.
func (s *Server) DB() *gorm.DB {
	return s.db
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests
// for up to ten seconds.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.AppPort,
		Handler:           s.router.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr, "env", s.cfg.AppEnv)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.Close()
	return err
}

// Close flushes log sinks and releases the cache connection.
func (s *Server) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}
