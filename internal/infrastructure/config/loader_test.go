package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/passgen-go/assets"
	"github.com/doeshing/passgen-go/internal/domain"
)

func TestEmbeddedDefaultsMatchDomain(t *testing.T) {
	cfg, err := Parse(assets.DefaultConfigYAML)
	require.NoError(t, err)
	if diff := cmp.Diff(domain.DefaultConfig(), cfg); diff != "" {
		t.Fatalf("embedded config differs from domain defaults (-want +got):\n%s", diff)
	}
}

func TestLoad_WritesDefaultOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	loader := NewFileLoader(path)

	cfg, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, assets.DefaultConfigYAML, raw)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(domain.SecureFilePermissions), info.Mode().Perm())
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("generator:\n  length: 24\n  include_symbols: false\nhistory:\n  backend: file\n"), 0o600))

	cfg, err := NewFileLoader(path).Load(context.Background())
	require.NoError(t, err)

	want := domain.DefaultConfig()
	want.Generator.Length = 24
	want.Generator.IncludeSymbols = false
	want.History.Backend = domain.BackendFile
	assert.Equal(t, want, cfg)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("generator: [unterminated"), 0o600))

	_, err := NewFileLoader(path).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestSaveBackupReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := NewFileLoader(path)
	ctx := context.Background()

	cfg := domain.DefaultConfig()
	cfg.Generator.Length = 40
	cfg.Clipboard.Enabled = false
	require.NoError(t, loader.Save(cfg))

	loaded, err := loader.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	backup, err := loader.Backup()
	require.NoError(t, err)
	assert.FileExists(t, backup)

	reset, err := loader.Reset()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), reset)

	fromBackup, err := NewFileLoader(backup).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 40, fromBackup.Generator.Length)
}

func TestBackup_MissingFile(t *testing.T) {
	_, err := NewFileLoader(filepath.Join(t.TempDir(), "absent.yaml")).Backup()
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseEnv(t *testing.T) {
	t.Setenv("PASSGEN_CONFIG", "/tmp/passgen.yaml")
	t.Setenv("PASSGEN_DEBUG", "1")
	t.Setenv("PASSGEN_HISTORY_BACKEND", "memory")
	t.Setenv("PASSGEN_HISTORY_PATH", "")

	o, err := ParseEnv()
	require.NoError(t, err)
	assert.Equal(t, EnvOverrides{ConfigPath: "/tmp/passgen.yaml", Debug: true, HistoryBackend: "memory"}, o)

	cfg := o.Apply(domain.DefaultConfig())
	assert.Equal(t, domain.BackendMemory, cfg.History.Backend)
	assert.Empty(t, cfg.History.Path)
}

func TestParseEnv_InvalidBool(t *testing.T) {
	t.Setenv("PASSGEN_DEBUG", "sometimes")
	_, err := ParseEnv()
	assert.Error(t, err)
}
