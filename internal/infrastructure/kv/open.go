package kv

import (
	"context"
	"fmt"
	"strings"

	"github.com/doeshing/passgen-go/internal/domain"
	"github.com/doeshing/passgen-go/internal/ports"
)

// Backend is a KeyValueStore that owns a resource.
type Backend interface {
	ports.KeyValueStore
	Path() string
	Close() error
}

// Open builds the backend named by the history settings.
func Open(ctx context.Context, backend, path string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", domain.BackendSQLite:
		return OpenSQLite(ctx, path)
	case domain.BackendFile:
		return NewFileStore(path), nil
	case domain.BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownBackend, backend)
	}
}
