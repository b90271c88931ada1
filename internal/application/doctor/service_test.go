package doctor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/passgen-go/internal/domain"
	"github.com/doeshing/passgen-go/internal/infrastructure/kv"
	"github.com/doeshing/passgen-go/internal/infrastructure/random"
)

type staticConfig struct {
	cfg domain.Config
	err error
}

func (s staticConfig) Load(context.Context) (domain.Config, error) { return s.cfg, s.err }

type stubClipboard struct{ enabled bool }

func (c stubClipboard) Copy(string) error { return nil }
func (c stubClipboard) Enabled() bool     { return c.enabled }

type brokenRandom struct{}

func (brokenRandom) Read([]byte) (int, error) { return 0, errors.New("entropy unavailable") }

func statuses(report domain.HealthReport) map[string]domain.HealthStatus {
	out := make(map[string]domain.HealthStatus, len(report.Checks))
	for _, c := range report.Checks {
		out[c.Name] = c.Status
	}
	return out
}

func TestRun_AllHealthy(t *testing.T) {
	svc := &Service{
		ConfigProvider: staticConfig{cfg: domain.DefaultConfig()},
		Random:         random.NewCryptoSource(),
		Store:          kv.NewMemoryStore(),
		StorePath:      "memory",
		Clipboard:      stubClipboard{enabled: true},
	}

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]domain.HealthStatus{
		"Config file":   domain.HealthOK,
		"Random source": domain.HealthOK,
		"History":       domain.HealthOK,
		"Clipboard":     domain.HealthOK,
	}, statuses(report))
}

func TestRun_ConfigLoadFailureStops(t *testing.T) {
	svc := &Service{ConfigProvider: staticConfig{err: errors.New("permission denied")}}

	report, err := svc.Run(context.Background())
	require.Error(t, err)
	require.Len(t, report.Checks, 1)
	assert.Equal(t, domain.HealthError, report.Checks[0].Status)
}

func TestRun_ReportsFailuresAndWarnings(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Generator.Length = 200
	cfg.History.Enabled = false

	svc := &Service{
		ConfigProvider: staticConfig{cfg: cfg},
		Random:         brokenRandom{},
		Clipboard:      stubClipboard{enabled: false},
	}

	report, err := svc.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, map[string]domain.HealthStatus{
		"Config file":   domain.HealthError,
		"Random source": domain.HealthError,
		"History":       domain.HealthWarn,
		"Clipboard":     domain.HealthWarn,
	}, statuses(report))
	assert.Len(t, report.Failed(), 2)
}

func TestRun_HistoryOpenError(t *testing.T) {
	svc := &Service{
		ConfigProvider: staticConfig{cfg: domain.DefaultConfig()},
		Random:         random.NewCryptoSource(),
		StoreErr:       errors.New("open sqlite history backend: database is locked"),
		Clipboard:      stubClipboard{enabled: true},
	}

	report, err := svc.Run(context.Background())
	require.Error(t, err)
	require.Len(t, report.Failed(), 1)
	assert.Equal(t, "History", report.Failed()[0].Name)
	assert.Contains(t, report.Failed()[0].Details, "database is locked")
}
