package domain

import (
	"fmt"
	"strings"
)

// GetHistoryBackend returns the normalised backend name, defaulting to sqlite.
func (c *Config) GetHistoryBackend() string {
	backend := strings.ToLower(strings.TrimSpace(c.History.Backend))
	if backend == "" {
		return BackendSQLite
	}
	return backend
}

// IsHistoryEnabled checks if generated passwords should be recorded
func (c *Config) IsHistoryEnabled() bool {
	return c.History.Enabled
}

// IsClipboardEnabled checks if clipboard integration is switched on
func (c *Config) IsClipboardEnabled() bool {
	return c.Clipboard.Enabled
}

// GetGenerationOptions returns the configured defaults, filling in the length
// when it was left out of the file.
func (c *Config) GetGenerationOptions() GenerationOptions {
	opts := c.Generator
	if opts.Length == 0 {
		opts.Length = DefaultPasswordLength
	}
	return opts
}

// ValidateConsistency checks that the generator defaults can produce a
// password and the backend is known.
func (c *Config) ValidateConsistency() error {
	if err := c.GetGenerationOptions().Validate(); err != nil {
		return fmt.Errorf("generator: %w", err)
	}
	switch c.GetHistoryBackend() {
	case BackendSQLite, BackendFile, BackendMemory:
	default:
		return fmt.Errorf("history.backend: %w: %s", ErrUnknownBackend, c.History.Backend)
	}
	return nil
}
