package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config holds everything the back-office reads from the environment.
type Config struct {
	Port    string
	GinMode string
	Env     string

	LogLevel string

	DatabaseURL string
	DBName      string

	RedisURL     string
	CacheChannel string

	// RateLimit is the number of requests allowed per client per second.
	RateLimit      uint
	RequestTimeout time.Duration

	CascadeConcurrency int
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DB_NAME", "khoomi")
	v.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	v.SetDefault("CACHE_CHANNEL", "BACKOFFICE_CACHE")
	v.SetDefault("RATE_LIMIT", 5)
	v.SetDefault("REQUEST_TIMEOUT", "2m")
	v.SetDefault("CASCADE_CONCURRENCY", 1)

	cfg := &Config{
		Port:               v.GetString("PORT"),
		GinMode:            v.GetString("GIN_MODE"),
		Env:                v.GetString("APP_ENV"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		DatabaseURL:        v.GetString("DATABASE_URL"),
		DBName:             v.GetString("DB_NAME"),
		RedisURL:           v.GetString("REDIS_URL"),
		CacheChannel:       v.GetString("CACHE_CHANNEL"),
		RateLimit:          v.GetUint("RATE_LIMIT"),
		RequestTimeout:     v.GetDuration("REQUEST_TIMEOUT"),
		CascadeConcurrency: v.GetInt("CASCADE_CONCURRENCY"),
	}

	if cfg.RequestTimeout <= 0 {
		return nil, errors.Errorf("REQUEST_TIMEOUT must be positive, got %s", v.GetString("REQUEST_TIMEOUT"))
	}
	if cfg.CascadeConcurrency < 1 {
		cfg.CascadeConcurrency = 1
	}
	return cfg, nil
}

// Address is the listen address for the HTTP server.
func (c *Config) Address() string {
	return "0.0.0.0:" + c.Port
}
