package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, secrets)
// - default: Values common across all environments (paths, limits)
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Admin     AdminConfig
	CORS      CORSConfig
	Log       LogConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type StoreConfig struct {
	DataFile        string `envconfig:"DATA_FILE" default:"data/db.json"`
	UploadDir       string `envconfig:"UPLOAD_DIR" default:"data/uploads"`
	DefaultCapacity int    `envconfig:"DEFAULT_CAPACITY" default:"1000"`
}

type AdminConfig struct {
	Secret string `envconfig:"ADMIN_SECRET" required:"true"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,X-Admin-Secret"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Content-Disposition"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

// RateLimitConfig guards the public buy endpoint against bursts.
type RateLimitConfig struct {
	BuyPerSecond float64 `envconfig:"RATE_LIMIT_BUY_PER_SECOND" default:"5"`
	BuyBurst     int     `envconfig:"RATE_LIMIT_BUY_BURST" default:"10"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		Store: StoreConfig{
			DataFile:        "db.json",
			UploadDir:       "uploads",
			DefaultCapacity: 10,
		},
		Admin: AdminConfig{
			Secret: "test-secret",
		},
		CORS: CORSConfig{
			AllowOrigins:     []string{"http://localhost:3000"},
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Admin-Secret"},
			ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		RateLimit: RateLimitConfig{
			BuyPerSecond: 1000,
			BuyBurst:     1000,
		},
	}
}
