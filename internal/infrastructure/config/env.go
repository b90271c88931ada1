package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/doeshing/passgen-go/internal/domain"
)

// EnvOverrides are the PASSGEN_* variables that take precedence over the file.
type EnvOverrides struct {
	ConfigPath     string `env:"PASSGEN_CONFIG"`
	Debug          bool   `env:"PASSGEN_DEBUG"`
	HistoryBackend string `env:"PASSGEN_HISTORY_BACKEND"`
	HistoryPath    string `env:"PASSGEN_HISTORY_PATH"`
}

// ParseEnv reads the overrides from the process environment.
func ParseEnv() (EnvOverrides, error) {
	var o EnvOverrides
	if err := env.Parse(&o); err != nil {
		return EnvOverrides{}, fmt.Errorf("parse env: %w", err)
	}
	return o, nil
}

// Apply returns cfg with the history overrides applied.
func (o EnvOverrides) Apply(cfg domain.Config) domain.Config {
	if backend := strings.TrimSpace(o.HistoryBackend); backend != "" {
		cfg.History.Backend = backend
	}
	if o.HistoryPath != "" {
		cfg.History.Path = o.HistoryPath
	}
	return cfg
}
