package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	configPath := filepath.Join(base, "config.toml")
	contents := fmt.Sprintf(`[paths]
session_dir = %q
export_dir = %q
log_dir = %q
`,
		filepath.Join(base, "sessions"),
		filepath.Join(base, "export"),
		filepath.Join(base, "logs"),
	)
	if err := os.WriteFile(configPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("write test config: %v", err)
	}

	return &cliTestEnv{baseDir: base, configPath: configPath}
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func TestSessionWorkflow(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, env, "session", "new", "AB3KQ", "--date", "2025-10-28")
	if err != nil {
		t.Fatalf("session new: %v", err)
	}
	requireContains(t, out, "Created session")

	out, err = runCLI(t, env, "stacks", "--add", "3")
	if err != nil {
		t.Fatalf("stacks --add: %v", err)
	}
	requireContains(t, out, "Added stack")

	out, err = runCLI(t, env, "assign", "Fassade", "0")
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	requireContains(t, out, `Assigned "Fassade" to 1 stack(s)`)

	out, err = runCLI(t, env, "stacks")
	if err != nil {
		t.Fatalf("stacks: %v", err)
	}
	requireContains(t, out, "Fassade")
	requireContains(t, out, "1 stack")

	out, err = runCLI(t, env, "preview")
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	requireContains(t, out, "2025-10-28-AB3KQ_fassade_001_v1.jpg")

	out, err = runCLI(t, env, "commit")
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	requireContains(t, out, "Committed 1 file(s)")

	exportDir := filepath.Join(env.baseDir, "export")
	if _, err := os.Stat(filepath.Join(exportDir, "2025-10-28-AB3KQ_fassade_001_v1.jpg.json")); err != nil {
		t.Fatalf("expected sidecar in export dir: %v", err)
	}
	if _, err := os.Stat(filepath.Join(exportDir, "alttexts.txt")); err != nil {
		t.Fatalf("expected alt-text file in export dir: %v", err)
	}
}

func TestCommitRequiresRoomAssignments(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, err := runCLI(t, env, "session", "new", "AB3KQ", "--date", "2025-10-28"); err != nil {
		t.Fatal(err)
	}
	if _, err := runCLI(t, env, "stacks", "--add", "3"); err != nil {
		t.Fatal(err)
	}

	_, err := runCLI(t, env, "commit")
	if err == nil {
		t.Fatal("commit without room assignments should fail")
	}
	if !strings.Contains(err.Error(), "no room type assigned") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, env, "parse",
		"2025-10-28-AB3KQ_fassade_001_v1.jpg",
		"2025-10-28-AB3KQ_fassade_001_g001_e-2.dng",
		"IMG_4021.jpg",
	)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	requireContains(t, out, "final image")
	requireContains(t, out, "raw bracket frame")
	requireContains(t, out, "not a capture-pipeline filename")
}

func TestAltTextCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, env, "alttext", "Fassade", "--orientation", "front")
	if err != nil {
		t.Fatalf("alttext: %v", err)
	}
	requireContains(t, out, "Fassade")
	requireContains(t, out, "(Vorderansicht)")

	if _, err := runCLI(t, env, "alttext", "Fassade", "--orientation", "upside-down"); err == nil {
		t.Fatal("invalid orientation should fail")
	}
}

func TestConfigInit(t *testing.T) {
	env := setupCLITestEnv(t)

	target := filepath.Join(t.TempDir(), "config.toml")
	out, err := runCLI(t, env, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
}
