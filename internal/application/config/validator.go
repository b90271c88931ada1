package config

import (
	"fmt"

	"github.com/doeshing/passgen-go/internal/domain"
)

// SupportedFormatVersion is the only config_format_version this build reads.
const SupportedFormatVersion = "1"

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if cfg.ConfigFormatVersion != "" && cfg.ConfigFormatVersion != SupportedFormatVersion {
		return fmt.Errorf("config_format_version %q not supported (want %q)", cfg.ConfigFormatVersion, SupportedFormatVersion)
	}
	if err := validateGenerator(cfg.Generator); err != nil {
		return err
	}
	return validateHistory(cfg.History)
}

func validateGenerator(opts domain.GenerationOptions) error {
	if opts.Length == 0 {
		opts.Length = domain.DefaultPasswordLength
	}
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("generator: %w", err)
	}
	return nil
}

func validateHistory(history domain.HistorySettings) error {
	cfg := domain.Config{History: history}
	switch backend := cfg.GetHistoryBackend(); backend {
	case domain.BackendSQLite, domain.BackendFile:
	case domain.BackendMemory:
		if history.Path != "" {
			return fmt.Errorf("history.path has no effect with the %s backend", backend)
		}
	default:
		return fmt.Errorf("history.backend: %w: %s", domain.ErrUnknownBackend, history.Backend)
	}
	return nil
}
