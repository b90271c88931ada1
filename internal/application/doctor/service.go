package doctor

import (
	"context"
	"fmt"

	configapp "github.com/doeshing/passgen-go/internal/application/config"
	"github.com/doeshing/passgen-go/internal/domain"
	"github.com/doeshing/passgen-go/internal/infrastructure/random"
	"github.com/doeshing/passgen-go/internal/ports"
)

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Random         ports.RandomSource
	Store          ports.KeyValueStore
	StorePath      string
	StoreErr       error
	Clipboard      ports.Clipboard
}

// toolNamer is implemented by clipboards that shell out to a named tool.
type toolNamer interface {
	Tool() (string, error)
}

// Run executes checks and returns a report. The error is non-nil when any
// check failed; the report is complete either way.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	if err := configapp.Validate(cfg); err != nil {
		checks = append(checks, fail("Config file", err.Error()))
	} else {
		checks = append(checks, ok("Config file", fmt.Sprintf("format %s, %s", cfg.ConfigFormatVersion, cfg.GetGenerationOptions())))
	}

	checks = append(checks, s.randomCheck(), s.historyCheck(ctx, cfg), s.clipboardCheck(cfg))

	report := domain.HealthReport{Checks: checks}
	if failed := report.Failed(); len(failed) > 0 {
		return report, fmt.Errorf("%d check(s) failed", len(failed))
	}
	return report, nil
}

func (s *Service) randomCheck() domain.HealthCheck {
	if s.Random == nil {
		return fail("Random source", "not initialized")
	}
	if err := random.Probe(s.Random); err != nil {
		return fail("Random source", err.Error())
	}
	return ok("Random source", "system CSPRNG readable")
}

func (s *Service) historyCheck(ctx context.Context, cfg domain.Config) domain.HealthCheck {
	if !cfg.IsHistoryEnabled() {
		return warn("History", "disabled in config")
	}
	if s.StoreErr != nil {
		return fail("History", s.StoreErr.Error())
	}
	if s.Store == nil {
		return fail("History", "store not initialized")
	}
	raw, err := s.Store.Get(ctx, domain.HistoryStorageKey)
	if err != nil {
		return fail("History", fmt.Sprintf("%s backend at %s: %v", cfg.GetHistoryBackend(), s.StorePath, err))
	}
	return ok("History", fmt.Sprintf("%s backend at %s (%d bytes)", cfg.GetHistoryBackend(), s.StorePath, len(raw)))
}

func (s *Service) clipboardCheck(cfg domain.Config) domain.HealthCheck {
	if !cfg.IsClipboardEnabled() {
		return warn("Clipboard", "disabled in config")
	}
	if s.Clipboard == nil {
		return warn("Clipboard", "not initialized")
	}
	if namer, isNamer := s.Clipboard.(toolNamer); isNamer {
		tool, err := namer.Tool()
		if err != nil {
			return warn("Clipboard", err.Error())
		}
		return ok("Clipboard", "using "+tool)
	}
	if !s.Clipboard.Enabled() {
		return warn("Clipboard", "unavailable")
	}
	return ok("Clipboard", "available")
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
