package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Provider ProviderConfig
}

type ProviderConfig struct {
	// URL and ServiceRoleKey are required for the relay to function. Their
	// absence is a startup warning rather than a fatal: requests fail at
	// call time instead of at boot.
	URL            string        `env:"PROVIDER_URL"`
	ServiceRoleKey string        `env:"SERVICE_ROLE_KEY"`
	Timeout        time.Duration `env:"PROVIDER_TIMEOUT, default=10s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// MissingProviderSettings lists required provider settings that are unset.
func (c *Config) MissingProviderSettings() []string {
	var missing []string
	if c.Provider.URL == "" {
		missing = append(missing, "PROVIDER_URL")
	}
	if c.Provider.ServiceRoleKey == "" {
		missing = append(missing, "SERVICE_ROLE_KEY")
	}
	return missing
}
