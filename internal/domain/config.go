package domain

// Config mirrors ~/.passgen/config.yaml.
type Config struct {
	ConfigFormatVersion string            `yaml:"config_format_version"`
	Generator           GenerationOptions `yaml:"generator"`
	History             HistorySettings   `yaml:"history"`
	Clipboard           ClipboardSettings `yaml:"clipboard"`
}

// HistorySettings selects where the history snapshot lives.
type HistorySettings struct {
	Enabled bool   `yaml:"enabled"`
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

// ClipboardSettings toggles clipboard integration.
type ClipboardSettings struct {
	Enabled bool `yaml:"enabled"`
}

// DefaultConfig returns the configuration written on first run.
func DefaultConfig() Config {
	return Config{
		ConfigFormatVersion: "1",
		Generator:           DefaultGenerationOptions(),
		History: HistorySettings{
			Enabled: true,
			Backend: BackendSQLite,
		},
		Clipboard: ClipboardSettings{
			Enabled: true,
		},
	}
}
