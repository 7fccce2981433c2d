package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")
	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if exists {
		t.Fatalf("expected missing file, resolved %s reported as existing", resolved)
	}
	if cfg.Naming.DefaultRawExtension != "dng" {
		t.Fatalf("unexpected default raw extension: %q", cfg.Naming.DefaultRawExtension)
	}
	if cfg.Captions.Language != "de" {
		t.Fatalf("unexpected caption language: %q", cfg.Captions.Language)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadNormalizesExtensions(t *testing.T) {
	path := writeConfig(t, `
[naming]
default_raw_extension = ".DNG"
allowed_raw_extensions = ["DNG", ".arw", "", "dng"]
`)
	cfg, _, _, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Naming.DefaultRawExtension != "dng" {
		t.Fatalf("extension not normalized: %q", cfg.Naming.DefaultRawExtension)
	}
	if len(cfg.Naming.AllowedRawExtensions) != 2 {
		t.Fatalf("expected deduplicated extensions, got %v", cfg.Naming.AllowedRawExtensions)
	}
}

func TestLoadRejectsUnknownDefaultExtension(t *testing.T) {
	path := writeConfig(t, `
[naming]
default_raw_extension = "dng"
allowed_raw_extensions = ["arw"]
`)
	_, _, _, err := Load(path)
	if err == nil {
		t.Fatal("expected error when default extension is not allowed")
	}
	if !strings.Contains(err.Error(), "default_raw_extension") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadRejectsUnsupportedCaptionLanguage(t *testing.T) {
	path := writeConfig(t, `
[captions]
language = "fr"
`)
	if _, _, _, err := Load(path); err == nil {
		t.Fatal("expected error for unsupported caption language")
	}
}

func TestLoadRejectsSharedSessionAndExportDir(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, `
[paths]
session_dir = "`+dir+`"
export_dir = "`+dir+`"
`)
	if _, _, _, err := Load(path); err == nil {
		t.Fatal("expected error when session and export dirs match")
	}
}

func TestExpandPathHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("home directory unavailable")
	}
	expanded, err := ExpandPath("~/sessions")
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if expanded != filepath.Join(home, "sessions") {
		t.Fatalf("unexpected expansion: %q", expanded)
	}
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := Default()
	cfg.Paths.SessionDir = filepath.Join(base, "sessions")
	cfg.Paths.ExportDir = filepath.Join(base, "export")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	for _, dir := range []string{cfg.Paths.SessionDir, cfg.Paths.ExportDir, cfg.Paths.LogDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("directory %s missing after EnsureDirectories", dir)
		}
	}
}
