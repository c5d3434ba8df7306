package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if W2M_CONFIG is set
//  3. env (prefix W2M_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("W2M_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: W2M_GAP_MS, W2M_CLIENT_ID, ...
	// Keys keep their underscores to match the koanf tags on the struct.
	envProvider := env.Provider("W2M_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "w2m_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.GapMS < 0 {
		return fmt.Errorf("%w: gap_ms must not be negative", ErrInvalidConfig)
	}
	if c.PageLimit <= 0 {
		return fmt.Errorf("%w: page_limit must be positive", ErrInvalidConfig)
	}
	if c.TokenURL == "" || c.APIURL == "" {
		return fmt.Errorf("%w: token_url and api_url must not be empty", ErrInvalidConfig)
	}
	if c.Week <= 0 {
		return fmt.Errorf("%w: week must be positive", ErrInvalidConfig)
	}
	return nil
}
