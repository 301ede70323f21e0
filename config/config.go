// Package config loads process configuration for Vitrine.
//
// Values are merged in increasing precedence: built-in defaults,
// config/app.json, .env, then real environment variables. Load returns an
// explicit *Config that is passed to the components needing it — nothing in
// the codebase reads ambient configuration after startup.
package config

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultDatabaseDriver = "sqlite"
	defaultRedisAddr      = "localhost:6379"
	defaultAppPort        = "8080"
	defaultAppEnv         = "local"
	defaultTokenTTL       = 7 * 24 * time.Hour
	defaultUploadMax      = 5 << 20 // 5 MB
	defaultBodyMax        = 1 << 20 // 1 MB for JSON bodies
)

// Config is the immutable process configuration built once by Load.
type Config struct {
	AppEnv  string
	AppPort string

	DatabaseDriver string
	DatabaseDSN    string

	JWTSecret string
	TokenTTL  time.Duration

	RedisAddr     string
	RedisPassword string

	LogMongoURI        string
	LogMongoDatabase   string
	LogMongoCollection string

	StorageDisk      string
	StorageLocalRoot string
	StorageURL       string

	S3Bucket   string
	S3Region   string
	S3Key      string
	S3Secret   string
	S3Endpoint string
	S3URL      string

	UploadMaxBytes int64
	BodyMaxBytes   int64
}

// ErrMissingDSN is returned when no database connection string is configured.
var ErrMissingDSN = errors.New("config: DATABASE_DSN is required")

// ErrMissingSecret is returned when no token-signing secret is configured.
var ErrMissingSecret = errors.New("config: JWT_SECRET is required")

// Load builds a Config from config/app.json, .env and the environment.
// A missing DATABASE_DSN or JWT_SECRET is a startup error.
func Load() (*Config, error) {
	return LoadFrom("config/app.json", ".env")
}

// LoadFrom is Load with explicit file paths, used by tests.
func LoadFrom(jsonPath, envPath string) (*Config, error) {
	values := map[string]string{}

	if err := mergeJSONFile(jsonPath, values); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err := mergeDotEnv(envPath, values); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			values[k] = v
		}
	}

	get := func(key, fallback string) string {
		if v := strings.TrimSpace(values[key]); v != "" {
			return v
		}
		return fallback
	}

	cfg := &Config{
		AppEnv:  get("APP_ENV", defaultAppEnv),
		AppPort: get("APP_PORT", defaultAppPort),

		DatabaseDriver: strings.ToLower(get("DB_DRIVER", defaultDatabaseDriver)),
		DatabaseDSN:    get("DATABASE_DSN", ""),

		JWTSecret: get("JWT_SECRET", ""),
		TokenTTL:  defaultTokenTTL,

		RedisAddr:     get("REDIS_ADDR", defaultRedisAddr),
		RedisPassword: get("REDIS_PASSWORD", ""),

		LogMongoURI:        get("LOG_MONGO_URI", ""),
		LogMongoDatabase:   get("LOG_MONGO_DB", "vitrine"),
		LogMongoCollection: get("LOG_MONGO_COLLECTION", "logs"),

		StorageDisk:      get("STORAGE_DISK", "local"),
		StorageLocalRoot: get("STORAGE_LOCAL_ROOT", "storage"),
		StorageURL:       get("STORAGE_URL", "http://localhost:8080/storage"),

		S3Bucket:   get("S3_BUCKET", ""),
		S3Region:   get("S3_REGION", "us-east-1"),
		S3Key:      get("S3_KEY", ""),
		S3Secret:   get("S3_SECRET", ""),
		S3Endpoint: get("S3_ENDPOINT", ""),
		S3URL:      get("S3_URL", ""),

		UploadMaxBytes: parseBytes(get("UPLOAD_MAX_BYTES", ""), defaultUploadMax),
		BodyMaxBytes:   parseBytes(get("MAX_BODY_BYTES", ""), defaultBodyMax),
	}

	if ttl := get("TOKEN_TTL", ""); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil && d > 0 {
			cfg.TokenTTL = d
		}
	}

	switch cfg.DatabaseDriver {
	case "sqlite", "postgres", "mysql", "sqlserver":
	default:
		return nil, fmt.Errorf("config: unsupported DB_DRIVER %q (supported: sqlite, postgres, mysql, sqlserver)", cfg.DatabaseDriver)
	}

	if cfg.DatabaseDSN == "" {
		return nil, ErrMissingDSN
	}
	if cfg.JWTSecret == "" {
		return nil, ErrMissingSecret
	}

	return cfg, nil
}

// Production reports whether the process runs with a production profile.
func (c *Config) Production() bool {
	return c.AppEnv == "production" || c.AppEnv == "prod"
}

func parseBytes(s string, fallback int64) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func mergeJSONFile(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("config: decode %s: %w", path, err)
	}

	for key, val := range raw {
		s, ok := val.(string)
		if !ok {
			continue
		}
		k := strings.ToUpper(strings.TrimSpace(key))
		if k != "" {
			out[k] = strings.TrimSpace(s)
		}
	}
	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		idx := strings.IndexByte(line, '=')
		if idx <= 0 {
			continue
		}
		key := strings.ToUpper(strings.TrimSpace(line[:idx]))
		value := strings.Trim(strings.TrimSpace(line[idx+1:]), `"'`)
		if key != "" {
			out[key] = value
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	return nil
}
