package testsupport

import (
	"path/filepath"
	"testing"

	"curator/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Evaluator.APIKey = "test"
	cfg.Review.ItemDelayMillis = 0

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure config directories: %v", err)
	}
	return &cfg
}

// WithBotName overrides the acting bot name on the test config.
func WithBotName(name string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Review.BotName = name
	}
}

// WithChannel restricts the test config to one channel.
func WithChannel(channel string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Review.Channel = channel
	}
}
