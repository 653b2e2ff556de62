// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"holocron/internal/validation"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Env                      string  `mapstructure:"APP_ENV"`
	Port                     string  `mapstructure:"PORT"`
	DatabaseURL              string  `mapstructure:"DATABASE_URL"`
	SQLitePath               string  `mapstructure:"SQLITE_PATH"`
	DBSchemaMode             string  `mapstructure:"DB_SCHEMA_MODE"`
	DBMaxOpenConns           int     `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns           int     `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBConnMaxLifetimeMinutes int     `mapstructure:"DB_CONN_MAX_LIFETIME_MINUTES"`
	RedisURL                 string  `mapstructure:"REDIS_URL"`
	AllowedOrigins           string  `mapstructure:"ALLOWED_ORIGINS"`
	CurrentUserID            uint    `mapstructure:"CURRENT_USER_ID"`
	CurrentUsername          string  `mapstructure:"CURRENT_USERNAME"`
	CurrentUserEmail         string  `mapstructure:"CURRENT_USER_EMAIL"`
	SwapiBaseURL             string  `mapstructure:"SWAPI_BASE_URL"`
	SwapiTimeoutSeconds      int     `mapstructure:"SWAPI_TIMEOUT_SECONDS"`
	SwapiUserAgent           string  `mapstructure:"SWAPI_USER_AGENT"`
	SeedRateLimit            int     `mapstructure:"SEED_RATE_LIMIT"`
	TracingEnabled           bool    `mapstructure:"TRACING_ENABLED"`
	TracingExporter          string  `mapstructure:"TRACING_EXPORTER"`
	OTLPEndpoint             string  `mapstructure:"OTLP_ENDPOINT"`
	TracingSamplerRatio      float64 `mapstructure:"TRACING_SAMPLER_RATIO"`
}

// LoadConfig loads application configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// Initial read to get APP_ENV if set in base config
	_ = viper.ReadInConfig()

	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	if env != "development" && env != "test" {
		viper.SetConfigName("config." + env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("required profile-specific config 'config.%s.yml' not found: %w", env, err)
		}
		log.Printf("Loaded profile-specific configuration: config.%s.yml", env)
	}

	setDefaults()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	config.normalize()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("PORT", "3001")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("SQLITE_PATH", "/tmp/test.db")
	viper.SetDefault("DB_SCHEMA_MODE", "hybrid")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME_MINUTES", 5)
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("ALLOWED_ORIGINS", "*")
	viper.SetDefault("CURRENT_USER_ID", 1)
	viper.SetDefault("CURRENT_USERNAME", "demo")
	viper.SetDefault("CURRENT_USER_EMAIL", "demo@test.com")
	viper.SetDefault("SWAPI_BASE_URL", "https://swapi.dev/api")
	viper.SetDefault("SWAPI_TIMEOUT_SECONDS", 20)
	viper.SetDefault("SWAPI_USER_AGENT", "Mozilla/5.0")
	viper.SetDefault("SEED_RATE_LIMIT", 5)
	viper.SetDefault("TRACING_ENABLED", false)
	viper.SetDefault("TRACING_EXPORTER", "stdout")
	viper.SetDefault("OTLP_ENDPOINT", "localhost:4318")
	viper.SetDefault("TRACING_SAMPLER_RATIO", 1.0)
}

func (c *Config) normalize() {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	c.DBSchemaMode = strings.ToLower(strings.TrimSpace(c.DBSchemaMode))
	c.DatabaseURL = strings.TrimSpace(c.DatabaseURL)
	// libpq-style URLs from hosting providers still use the legacy scheme.
	if strings.HasPrefix(c.DatabaseURL, "postgres://") {
		c.DatabaseURL = "postgresql://" + strings.TrimPrefix(c.DatabaseURL, "postgres://")
	}
	c.SwapiBaseURL = strings.TrimRight(strings.TrimSpace(c.SwapiBaseURL), "/")
}

// Validate ensures that required configuration values are present.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.CurrentUserID == 0 {
		return errors.New("CURRENT_USER_ID must be a positive integer")
	}
	if c.CurrentUsername == "" || c.CurrentUserEmail == "" {
		return errors.New("CURRENT_USERNAME and CURRENT_USER_EMAIL are required")
	}
	if err := validation.ValidateUsername(c.CurrentUsername); err != nil {
		return fmt.Errorf("CURRENT_USERNAME: %w", err)
	}
	if c.SwapiBaseURL == "" {
		return errors.New("SWAPI_BASE_URL is required")
	}
	if c.SwapiTimeoutSeconds <= 0 {
		return errors.New("SWAPI_TIMEOUT_SECONDS must be positive")
	}
	switch c.DBSchemaMode {
	case "", "hybrid", "sql", "auto":
	default:
		return fmt.Errorf("unsupported DB_SCHEMA_MODE %q", c.DBSchemaMode)
	}

	if c.IsProduction() {
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required in production")
		}
		if c.AllowedOrigins == "*" {
			log.Println("WARNING: ALLOWED_ORIGINS is set to '*' in production. This is insecure.")
		}
	}

	return nil
}

// IsProduction reports whether the app runs with a production profile.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// UsesPostgres reports whether DATABASE_URL selects the Postgres driver.
func (c *Config) UsesPostgres() bool {
	return c.DatabaseURL != ""
}

// SwapiTimeout returns the outbound request timeout for the catalog source.
func (c *Config) SwapiTimeout() time.Duration {
	return time.Duration(c.SwapiTimeoutSeconds) * time.Second
}
