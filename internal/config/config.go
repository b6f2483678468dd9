// Package config loads the euclid daemon configuration: defaults, then an
// optional YAML file, then environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	ListenAddr      string        `yaml:"listen_addr" env:"EUCLID_LISTEN_ADDR" validate:"required"`
	Environment     string        `yaml:"environment" env:"EUCLID_ENVIRONMENT" validate:"oneof=development staging production"`
	LogLevel        string        `yaml:"log_level" env:"EUCLID_LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogFormat       string        `yaml:"log_format" env:"EUCLID_LOG_FORMAT" validate:"oneof=json console"`
	DBPath          string        `yaml:"db_path" env:"EUCLID_DB_PATH" validate:"required"`
	CORSOrigins     []string      `yaml:"cors_origins" env:"EUCLID_CORS_ORIGINS" envSeparator:","`
	RequestTimeout  time.Duration `yaml:"request_timeout" env:"EUCLID_REQUEST_TIMEOUT" validate:"gt=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"EUCLID_SHUTDOWN_TIMEOUT" validate:"gt=0"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		ListenAddr:      ":8080",
		Environment:     "development",
		LogLevel:        "info",
		LogFormat:       "console",
		DBPath:          "euclid.db",
		CORSOrigins:     []string{"*"},
		RequestTimeout:  10 * time.Second,
		ShutdownTimeout: 15 * time.Second,
	}
}

// Load builds the configuration. path names an optional YAML file; an empty
// path skips it, but a named file that does not exist is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate reports every invalid field.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
