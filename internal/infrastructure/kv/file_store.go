// Package kv provides ports.KeyValueStore adapters: a JSON file per key, a
// SQLite table and an in-memory map.
package kv

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/doeshing/passgen-go/internal/domain"
	"github.com/doeshing/passgen-go/internal/pkg/filesystem"
	"github.com/doeshing/passgen-go/internal/ports"
)

// FileStore keeps each value in its own file under dir.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore roots the store at dir, or ~/.passgen/store when dir is empty.
func NewFileStore(dir string) *FileStore {
	if dir == "" {
		dir = filepath.Join(filesystem.AppDir(), "store")
	}
	return &FileStore{dir: filesystem.ExpandPath(dir)}
}

// Get implements ports.KeyValueStore.
func (f *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.pathFor(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// Set writes the value through a temp file and rename so readers never see a
// partial snapshot.
func (f *FileStore) Set(_ context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.MkdirAll(f.dir, domain.DirectoryPermissions); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(f.dir, ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Chmod(domain.SecureFilePermissions); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.pathFor(key))
}

// Delete removes the key's file. Deleting an absent key is not an error.
func (f *FileStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.pathFor(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Path returns the backing directory.
func (f *FileStore) Path() string {
	return f.dir
}

func (f *FileStore) Close() error {
	return nil
}

// pathFor hex-encodes the key so any string maps to a safe file name.
func (f *FileStore) pathFor(key string) string {
	return filepath.Join(f.dir, hex.EncodeToString([]byte(key))+".json")
}

var _ ports.KeyValueStore = (*FileStore)(nil)
