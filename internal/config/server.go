package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/subosito/gotenv"
)

// ServerConfig is the proxy's environment-driven configuration
type ServerConfig struct {
	PublicKey       string        `env:"MARVEL_PUBLIC"`
	PrivateKey      string        `env:"MARVEL_PRIVATE"`
	Port            string        `env:"PORT" envDefault:"8787"`
	UpstreamBaseURL string        `env:"MARVEL_BASE_URL" envDefault:"https://gateway.marvel.com/v1/public"`
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"10s"`
	UpstreamRate    float64       `env:"UPSTREAM_RATE" envDefault:"5" validate:"gt=0"`
	UpstreamBurst   int           `env:"UPSTREAM_BURST" envDefault:"10" validate:"min=1"`
	SearchLimit     int           `env:"SEARCH_LIMIT" envDefault:"10" validate:"min=1,max=100"`
}

// HasCredentials reports whether both API keys are present
func (c ServerConfig) HasCredentials() bool {
	return c.PublicKey != "" && c.PrivateKey != ""
}

// Addr is the listen address derived from Port
func (c ServerConfig) Addr() string {
	return ":" + c.Port
}

// LoadDotEnv reads KEY=value pairs from path into the process environment
// without overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := gotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ParseServerEnv loads the proxy configuration from environment variables
func ParseServerEnv() (ServerConfig, error) {
	var cfg ServerConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid server config: %w", err)
	}
	return cfg, nil
}
