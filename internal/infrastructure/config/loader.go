package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/passgen-go/assets"
	"github.com/doeshing/passgen-go/internal/domain"
	"github.com/doeshing/passgen-go/internal/pkg/filesystem"
	"github.com/doeshing/passgen-go/internal/ports"
)

// FileLoader loads YAML configuration from ~/.passgen/config.yaml (overridable via PASSGEN_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader. An empty path selects the default location.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider. The embedded default file is written
// on first use.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return domain.Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := os.WriteFile(path, assets.DefaultConfigYAML, domain.SecureFilePermissions); err != nil {
			return domain.Config{}, fmt.Errorf("write default config: %w", err)
		}
		data = assets.DefaultConfigYAML
	}

	cfg, err := Parse(data)
	if err != nil {
		return domain.Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults so that keys missing from the
// file keep their default values.
func Parse(data []byte) (domain.Config, error) {
	cfg := domain.DefaultConfig()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, err
	}
	return hydrateDefaults(cfg), nil
}

// Path returns the file Load reads.
func (l *FileLoader) Path() string {
	return l.resolvePath()
}

// Save writes cfg back to disk.
func (l *FileLoader) Save(cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return err
	}
	return os.WriteFile(path, raw, domain.SecureFilePermissions)
}

// Reset overwrites the file with the embedded defaults.
func (l *FileLoader) Reset() (domain.Config, error) {
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}
	if err := os.WriteFile(path, assets.DefaultConfigYAML, domain.SecureFilePermissions); err != nil {
		return domain.Config{}, fmt.Errorf("write default config: %w", err)
	}
	return Parse(assets.DefaultConfigYAML)
}

// Backup copies the current file next to itself with a timestamp suffix.
func (l *FileLoader) Backup() (string, error) {
	path := l.resolvePath()
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	backup := fmt.Sprintf("%s.%s.bak", path, time.Now().Format("20060102T150405"))
	if err := os.WriteFile(backup, data, domain.SecureFilePermissions); err != nil {
		return "", err
	}
	return backup, nil
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return filesystem.ExpandPath(l.overridePath)
	}
	return filepath.Join(filesystem.AppDir(), "config.yaml")
}

func ensureConfigDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.Generator.Length == 0 {
		cfg.Generator.Length = domain.DefaultPasswordLength
	}
	if cfg.History.Backend == "" {
		cfg.History.Backend = domain.BackendSQLite
	}
	return cfg
}

// DefaultConfig returns the configuration described by the embedded file.
func DefaultConfig() domain.Config {
	cfg, err := Parse(assets.DefaultConfigYAML)
	if err != nil {
		return domain.DefaultConfig()
	}
	return cfg
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
