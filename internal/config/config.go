package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"catalogstats/internal/infrastructure/database"
)

type Config struct {
	DatabaseURL        string `validate:"required"`
	HTTPAddr           string `validate:"required,hostname_port"`
	Locale             string `validate:"required,bcp47_language_tag"`
	LogLevel           string `validate:"oneof=trace debug info warn error disabled"`
	LogFormat          string `validate:"oneof=json console"`
	MigrateOnStart     bool
	RateLimitPerMinute int           `validate:"gte=0"`
	ShutdownTimeout    time.Duration `validate:"gt=0"`
}

// Defaults used when a variable is unset.
const (
	DefaultDatabaseURL        = "sqlite://catalog.db"
	DefaultHTTPAddr           = ":8080"
	DefaultLocale             = "ru"
	DefaultLogLevel           = "info"
	DefaultLogFormat          = "console"
	DefaultRateLimitPerMinute = 120
	DefaultShutdownTimeout    = 10 * time.Second
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads the configuration from the environment (and an optional .env
// file) and validates it.
func Load() (*Config, error) {
	// .env is optional when variables come from the environment (Docker, CI).
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL: env("DATABASE_URL", DefaultDatabaseURL),
		HTTPAddr:    env("HTTP_ADDR", DefaultHTTPAddr),
		Locale:      env("LOCALE", DefaultLocale),
		LogLevel:    strings.ToLower(env("LOG_LEVEL", DefaultLogLevel)),
		LogFormat:   strings.ToLower(env("LOG_FORMAT", DefaultLogFormat)),
	}

	var err error
	if cfg.MigrateOnStart, err = envBool("MIGRATE_ON_START", true); err != nil {
		return nil, err
	}
	if cfg.RateLimitPerMinute, err = envInt("RATE_LIMIT_PER_MINUTE", DefaultRateLimitPerMinute); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = envDuration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate applies the struct rules, then checks the database URL scheme.
func (c *Config) validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("config: %s is invalid (%q fails %s)", envName(fe.Field()), fmt.Sprint(fe.Value()), fe.Tag())
		}
		return fmt.Errorf("config: %w", err)
	}

	if _, _, err := database.ParseDSN(c.DatabaseURL); err != nil {
		return fmt.Errorf("config: DATABASE_URL: %w", err)
	}
	return nil
}

var envNames = map[string]string{
	"DatabaseURL":        "DATABASE_URL",
	"HTTPAddr":           "HTTP_ADDR",
	"Locale":             "LOCALE",
	"LogLevel":           "LOG_LEVEL",
	"LogFormat":          "LOG_FORMAT",
	"RateLimitPerMinute": "RATE_LIMIT_PER_MINUTE",
	"ShutdownTimeout":    "SHUTDOWN_TIMEOUT",
}

func envName(field string) string {
	if name, ok := envNames[field]; ok {
		return name
	}
	return field
}

func env(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config: %s must be a boolean, got %q", key, v)
	}
	return b, nil
}

func envInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be an integer, got %q", key, v)
	}
	return n, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be a duration, got %q", key, v)
	}
	return d, nil
}
