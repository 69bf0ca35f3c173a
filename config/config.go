// Package config loads the service configuration from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"TaskAPI/validation"
)

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "TASKAPI"

// Config holds all application configuration.
type Config struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,logLevel"`
	RateLimit       float64       `mapstructure:"rate_limit" validate:"gt=0"`
	RateBurst       int           `mapstructure:"rate_burst" validate:"gte=1"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load reads envFiles (".env" when none are given) into the process environment,
// then builds and validates a Config. A missing env file is not an error.
// Variables are read as TASKAPI_<KEY>; the port also honours a bare PORT.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	v := viper.New()
	v.SetDefault("port", 8000)
	v.SetDefault("log_level", "info")
	v.SetDefault("rate_limit", 2)
	v.SetDefault("rate_burst", 20)
	v.SetDefault("read_timeout", 15*time.Second)
	v.SetDefault("write_timeout", 15*time.Second)
	v.SetDefault("shutdown_timeout", 10*time.Second)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("port", EnvPrefix+"_PORT", "PORT"); err != nil {
		return nil, fmt.Errorf("error binding environment variable PORT: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := validation.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %s", validation.Describe(err))
	}
	return &cfg, nil
}

// NewLogger returns a JSON logrus logger at the configured level.
func (c *Config) NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}
