package app

import (
	"context"
	"fmt"
	"time"

	configapp "github.com/doeshing/passgen-go/internal/application/config"
	"github.com/doeshing/passgen-go/internal/application/doctor"
	"github.com/doeshing/passgen-go/internal/application/generator"
	"github.com/doeshing/passgen-go/internal/application/history"
	"github.com/doeshing/passgen-go/internal/application/session"
	"github.com/doeshing/passgen-go/internal/domain"
	"github.com/doeshing/passgen-go/internal/infrastructure/clipboard"
	"github.com/doeshing/passgen-go/internal/infrastructure/config"
	"github.com/doeshing/passgen-go/internal/infrastructure/kv"
	"github.com/doeshing/passgen-go/internal/infrastructure/random"
	"github.com/doeshing/passgen-go/internal/infrastructure/scheduler"
	"github.com/doeshing/passgen-go/internal/pkg/logger"
	"github.com/doeshing/passgen-go/internal/ports"
)

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config         domain.Config
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	Logger         ports.Logger
	Random         ports.RandomSource
	Clipboard      ports.Clipboard
	Scheduler      ports.Scheduler
	Generator      *generator.Service
	Store          kv.Backend
	HistoryStore   *history.Store
	HistoryErr     error
	DoctorService  *doctor.Service
	Now            func() time.Time
}

// BuildContainer constructs the dependency graph. The history store is nil
// when history is disabled in the config or its backend cannot be opened; in
// the latter case HistoryErr says why. An invalid config is only warned about
// so that `config` and `doctor` can still run against it.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	env, err := config.ParseEnv()
	if err != nil {
		return nil, err
	}

	cfgLoader := config.NewFileLoader(env.ConfigPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}
	cfg = env.Apply(cfg)

	log := logger.NewStd(verbose || env.Debug)
	if err := configapp.Validate(cfg); err != nil {
		log.Warn("configuration has problems; run `passgen config validate`", map[string]interface{}{"path": cfgLoader.Path(), "error": err.Error()})
	}
	rng := random.NewCryptoSource()
	clip := clipboard.New(cfg.IsClipboardEnabled())
	sched := scheduler.New()

	c := &Container{
		Config:         cfg,
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
		Logger:         log,
		Random:         rng,
		Clipboard:      clip,
		Scheduler:      sched,
		Generator:      generator.NewService(rng),
		Now:            time.Now,
	}

	if cfg.IsHistoryEnabled() {
		store, err := kv.Open(ctx, cfg.GetHistoryBackend(), cfg.History.Path)
		if err != nil {
			c.HistoryErr = fmt.Errorf("open %s history backend: %w", cfg.GetHistoryBackend(), err)
			log.Warn("history unavailable", map[string]interface{}{"error": c.HistoryErr.Error()})
		} else {
			c.Store = store
			c.HistoryStore = history.NewStore(store, sched, log)
			c.HistoryStore.Load(ctx)
			log.Debug("history backend ready", map[string]interface{}{"backend": cfg.GetHistoryBackend(), "path": store.Path()})
		}
	}

	c.DoctorService = &doctor.Service{
		ConfigProvider: cfgLoader,
		Random:         rng,
		Clipboard:      clip,
		StoreErr:       c.HistoryErr,
	}
	if c.Store != nil {
		c.DoctorService.Store = c.Store
		c.DoctorService.StorePath = c.Store.Path()
	}

	return c, nil
}

// NewSession returns a session bound to the container's history store.
func (c *Container) NewSession() *session.Service {
	return &session.Service{
		Generator: c.Generator,
		History:   c.HistoryStore,
		Clipboard: c.Clipboard,
		Scheduler: c.Scheduler,
		Logger:    c.Logger,
		Now:       c.Now,
	}
}

// Close stops pending timers and releases the history backend.
func (c *Container) Close() error {
	if c.HistoryStore != nil {
		c.HistoryStore.Close()
	}
	if c.Store != nil {
		return c.Store.Close()
	}
	return nil
}
