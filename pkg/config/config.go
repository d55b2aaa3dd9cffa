package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds every runtime setting of the server. Values come from the
// process environment, optionally seeded from a .env file outside production.
type Config struct {
	AppEnv string `envconfig:"APP_ENV" default:"staging"`
	Port   string `envconfig:"PORT" default:"3000"`

	// DBDriver selects the gorm dialect: "mysql" (default) or "sqlite".
	DBDriver   string `envconfig:"DB_DRIVER" default:"mysql"`
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     int    `envconfig:"DB_PORT" default:"3306"`
	DBUser     string `envconfig:"DB_USER" default:"root"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" default:"messages"`
	DBPath     string `envconfig:"DB_PATH" default:"messages.db"`
	DBPoolSize int    `envconfig:"DB_POOL_SIZE" default:"10"`

	JWTSecret string `envconfig:"JWT_SECRET_KEY"`

	PublicDir     string `envconfig:"PUBLIC_DIR" default:"./public"`
	UploadDir     string `envconfig:"UPLOAD_DIR" default:"./uploads"`
	PublicBaseURL string `envconfig:"PUBLIC_BASE_URL"`
	MaxUploadMB   int    `envconfig:"MAX_UPLOAD_MB" default:"20"`

	HistoryCacheTTLSeconds int `envconfig:"HISTORY_CACHE_TTL_SECONDS" default:"30"`
	HistoryCacheMaxItems   int `envconfig:"HISTORY_CACHE_MAX_ITEMS" default:"500"`

	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000,http://127.0.0.1:3000"`
}

func (c *Config) IsProduction() bool { return c.AppEnv == "production" }

// MySQLDSN builds the go-sql-driver DSN for the configured database.
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// Load reads .env (skipped in production) and decodes the environment.
func Load() (*Config, error) {
	// do not load .env file in production
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading .env: %w", err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	log.Printf("[config] AppEnv=%s Port=%s DBDriver=%s DBPoolSize=%d", cfg.AppEnv, cfg.Port, cfg.DBDriver, cfg.DBPoolSize)
	log.Printf("[config] HistoryCache ttl=%ds max=%d JWTSecretPresent=%v", cfg.HistoryCacheTTLSeconds, cfg.HistoryCacheMaxItems, cfg.JWTSecret != "")
	return &cfg, nil
}

func (c *Config) validate() error {
	if !slices.Contains([]string{"staging", "production"}, c.AppEnv) {
		return errors.New("environment variable APP_ENV must be 'staging' or 'production'")
	}
	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	if !slices.Contains([]string{"mysql", "sqlite"}, c.DBDriver) {
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.DBPoolSize <= 0 {
		return fmt.Errorf("DB_POOL_SIZE must be positive, got %d", c.DBPoolSize)
	}
	// production tanpa JWT secret -> error
	if c.IsProduction() && c.JWTSecret == "" {
		return errors.New("JWT_SECRET_KEY must be set in production")
	}
	if c.JWTSecret == "" {
		c.JWTSecret = "dev-secret"
	}
	return nil
}
