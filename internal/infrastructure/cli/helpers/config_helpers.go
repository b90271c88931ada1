package helpers

import (
	"fmt"
	"os"

	"github.com/doeshing/passgen-go/internal/app"
	configapp "github.com/doeshing/passgen-go/internal/application/config"
	"github.com/doeshing/passgen-go/internal/domain"
	configinfra "github.com/doeshing/passgen-go/internal/infrastructure/config"
)

// GetConfigLoader extracts the config loader from container with error handling
func GetConfigLoader(container *app.Container) (*configinfra.FileLoader, error) {
	if container.ConfigLoader == nil {
		return nil, fmt.Errorf("config loader unavailable")
	}
	return container.ConfigLoader, nil
}

// SaveConfigWithValidation validates and saves configuration with automatic backup
func SaveConfigWithValidation(container *app.Container, cfg domain.Config) (string, error) {
	loader, err := GetConfigLoader(container)
	if err != nil {
		return "", err
	}

	if err := configapp.Validate(cfg); err != nil {
		return "", fmt.Errorf("configuration validation failed: %w", err)
	}

	backup, err := BackupIfExists(loader)
	if err != nil {
		return "", err
	}

	if err := loader.Save(cfg); err != nil {
		return "", fmt.Errorf("failed to save configuration: %w", err)
	}

	return backup, nil
}

// BackupIfExists creates a backup of the config file if it exists. The path
// is empty when there was nothing to back up.
func BackupIfExists(loader *configinfra.FileLoader) (string, error) {
	if _, err := os.Stat(loader.Path()); err != nil {
		return "", nil
	}
	backup, err := loader.Backup()
	if err != nil {
		return "", fmt.Errorf("failed to create configuration backup: %w", err)
	}
	return backup, nil
}
