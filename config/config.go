package config

import (
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration loaded from environment variables.
// Every field can be set with the DASH_ prefix, e.g. DASH_DATA_DIR.
type Config struct {
	DataDir        string `envconfig:"DATA_DIR" default:"./data_webscraped" validate:"required"`
	ListingsFile   string `envconfig:"LISTINGS_FILE" default:"listings.csv" validate:"required"`
	BoundariesFile string `envconfig:"BOUNDARIES_FILE" default:"neighbourhoods.geojson" validate:"required"`

	RateURL         string        `envconfig:"RATE_URL" default:"https://api.frankfurter.app/latest" validate:"required,url"`
	RateTimeout     time.Duration `envconfig:"RATE_TIMEOUT" default:"10s" validate:"gt=0"`
	RateCacheTTL    time.Duration `envconfig:"RATE_CACHE_TTL" default:"5m" validate:"gte=0"`
	RateMaxAttempts int           `envconfig:"RATE_MAX_ATTEMPTS" default:"2" validate:"gte=1,lte=5"`

	OutlierMultiplier float64 `envconfig:"OUTLIER_MULTIPLIER" default:"40" validate:"gte=0"`
	HeatmapPrecision  uint    `envconfig:"HEATMAP_PRECISION" default:"0" validate:"lte=12"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"console" validate:"oneof=console json"`
}

const envPrefix = "DASH"

// Load reads the .env file (if any), then the environment, and validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current process environment only.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints declared in the struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}
