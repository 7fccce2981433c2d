package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"shootdesk/internal/services"
)

func TestConsoleHandlerFormatsComponent(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, lvl)).With(String(FieldComponent, "session"))

	logger.Info("stack moved", Int("from", 2), Int("to", 0))

	line := buf.String()
	if !strings.Contains(line, "INFO session: stack moved") {
		t.Fatalf("unexpected console line: %q", line)
	}
	if !strings.Contains(line, "from=2") || !strings.Contains(line, "to=0") {
		t.Fatalf("attrs missing from line: %q", line)
	}
}

func TestConsoleHandlerQuotesValues(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, lvl))

	logger.Warn("room assigned", String("room", "Gäste WC"))

	if !strings.Contains(buf.String(), `room="Gäste WC"`) {
		t.Fatalf("expected quoted value, got %q", buf.String())
	}
}

func TestWithContextAddsSessionFields(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, lvl))

	ctx := services.WithSessionID(context.Background(), "abc123")
	ctx = services.WithShootCode(ctx, "AB3KQ")
	WithContext(ctx, logger).Info("previewing")

	line := buf.String()
	if !strings.Contains(line, "session_id=abc123") || !strings.Contains(line, "shoot_code=AB3KQ") {
		t.Fatalf("context fields missing: %q", line)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := NewNop()
	logger.Error("should not panic", Error(nil))
}
