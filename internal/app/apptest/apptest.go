// Package apptest builds containers for command tests: an in-memory history
// backend, a manual scheduler, a recording clipboard and a config file in a
// temporary directory.
package apptest

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/doeshing/passgen-go/internal/app"
	"github.com/doeshing/passgen-go/internal/application/doctor"
	"github.com/doeshing/passgen-go/internal/application/generator"
	"github.com/doeshing/passgen-go/internal/application/history"
	"github.com/doeshing/passgen-go/internal/domain"
	"github.com/doeshing/passgen-go/internal/infrastructure/config"
	"github.com/doeshing/passgen-go/internal/infrastructure/kv"
	"github.com/doeshing/passgen-go/internal/infrastructure/random"
	"github.com/doeshing/passgen-go/internal/infrastructure/scheduler"
	"github.com/doeshing/passgen-go/internal/pkg/logger"
)

// Clipboard records copied text. Setting Fail makes every copy fail.
type Clipboard struct {
	mu     sync.Mutex
	copied []string
	Fail   error
}

func (c *Clipboard) Copy(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Fail != nil {
		return c.Fail
	}
	c.copied = append(c.copied, text)
	return nil
}

func (c *Clipboard) Enabled() bool { return c.Fail == nil }

// Copied returns everything copied so far.
func (c *Clipboard) Copied() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.copied...)
}

// Fixture bundles a container with the fakes behind it.
type Fixture struct {
	Container *app.Container
	Clipboard *Clipboard
	Scheduler *scheduler.Manual
	KV        *kv.MemoryStore
}

// New builds a fixture. Pass a mutate func to adjust the config before the
// services are wired; it may be nil.
func New(t *testing.T, mutate func(*domain.Config)) Fixture {
	t.Helper()

	loader := config.NewFileLoader(filepath.Join(t.TempDir(), "config.yaml"))
	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if mutate != nil {
		mutate(&cfg)
	}

	log := logger.Discard()
	rng := random.NewCryptoSource()
	clip := &Clipboard{}
	sched := scheduler.NewManual()
	mem := kv.NewMemoryStore()

	c := &app.Container{
		Config:         cfg,
		ConfigProvider: loader,
		ConfigLoader:   loader,
		Logger:         log,
		Random:         rng,
		Clipboard:      clip,
		Scheduler:      sched,
		Generator:      generator.NewService(rng),
		Now:            func() time.Time { return time.Now().Add(-time.Minute) },
		DoctorService: &doctor.Service{
			ConfigProvider: loader,
			Random:         rng,
			Clipboard:      clip,
		},
	}
	if cfg.IsHistoryEnabled() {
		c.Store = mem
		c.HistoryStore = history.NewStore(mem, sched, log)
		c.DoctorService.Store = mem
		c.DoctorService.StorePath = mem.Path()
	}
	t.Cleanup(func() { _ = c.Close() })

	return Fixture{Container: c, Clipboard: clip, Scheduler: sched, KV: mem}
}
