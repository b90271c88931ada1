// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// The application core (generator, history store, session) depends only on
// these abstractions; concrete adapters for the random source, key-value
// persistence, clipboard and timers live in the infrastructure layer.
package ports

import (
	"context"
	"time"

	"github.com/doeshing/passgen-go/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.passgen/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// RandomSource fills p with uniformly distributed bytes from a
// cryptographically strong generator. It follows io.Reader semantics.
type RandomSource interface {
	Read(p []byte) (int, error)
}

// KeyValueStore persists opaque values under string keys.
// Get returns (nil, nil) when the key is absent.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Clipboard provides cross-platform clipboard integration for copying passwords.
type Clipboard interface {
	Copy(text string) error
	Enabled() bool
}

// Timer is a pending deferred callback.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d. The callback runs on its own goroutine.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
