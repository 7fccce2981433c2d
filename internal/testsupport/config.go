package testsupport

import (
	"path/filepath"
	"testing"

	"shootdesk/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.SessionDir = filepath.Join(base, "sessions")
	cfg.Paths.ExportDir = filepath.Join(base, "export")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return &cfg
}

// WithExportOverwrite enables overwriting of existing export files.
func WithExportOverwrite() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Export.OverwriteExisting = true
	}
}

// WithDefaultRawExtension overrides the raw-frame extension on the test
// config.
func WithDefaultRawExtension(ext string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Naming.DefaultRawExtension = ext
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.SessionDir)
}
