package export_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"shootdesk/internal/export"
	"shootdesk/internal/logging"
	"shootdesk/internal/services"
	"shootdesk/internal/session"
	"shootdesk/internal/testsupport"
)

func committedPlan(t *testing.T) (*session.Review, *session.Plan) {
	t.Helper()
	sess := session.Session{ID: "sess-1", ShootCode: "AB3KQ", ShootDate: "2025-10-28"}
	review := session.NewReview(sess, logging.NewNop())

	first, err := review.AddStack(3, "")
	if err != nil {
		t.Fatal(err)
	}
	second, err := review.AddStack(3, "")
	if err != nil {
		t.Fatal(err)
	}
	if err := review.AssignRoomType([]string{first.ID}, "Fassade"); err != nil {
		t.Fatal(err)
	}
	if err := review.AssignRoomType([]string{second.ID}, "Wohnzimmer"); err != nil {
		t.Fatal(err)
	}

	plan, err := review.ApplyRenaming(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return review, plan
}

func TestBuildDeliverables(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	review, plan := committedPlan(t)
	planner := export.NewPlanner(cfg, logging.NewNop())

	deliverables, err := planner.BuildDeliverables(review, plan)
	if err != nil {
		t.Fatalf("BuildDeliverables: %v", err)
	}
	if len(deliverables) != 2 {
		t.Fatalf("expected 2 deliverables, got %d", len(deliverables))
	}

	first := deliverables[0]
	if first.Filename != "2025-10-28-AB3KQ_fassade_001_v1.jpg" {
		t.Errorf("unexpected filename %s", first.Filename)
	}
	if first.Meta.JobID != "sess-1" || first.Meta.RoomType != "Fassade" {
		t.Errorf("unexpected metadata %+v", first.Meta)
	}
	if len(first.Meta.SourceFilenames) != 3 {
		t.Errorf("expected 3 source frames, got %v", first.Meta.SourceFilenames)
	}
	if !strings.Contains(first.AltText, "Fassade") {
		t.Errorf("alt text missing room label: %q", first.AltText)
	}
}

func TestBuildDeliverablesRejectsEmptyPlan(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	planner := export.NewPlanner(cfg, logging.NewNop())

	sess := session.Session{ID: "sess-2", ShootCode: "AB3KQ", ShootDate: "2025-10-28"}
	review := session.NewReview(sess, logging.NewNop())

	_, err := planner.BuildDeliverables(review, &session.Plan{SessionID: "sess-2"})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestWriteArtifacts(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	review, plan := committedPlan(t)
	planner := export.NewPlanner(cfg, logging.NewNop())

	deliverables, err := planner.BuildDeliverables(review, plan)
	if err != nil {
		t.Fatal(err)
	}

	storage := export.NewLocalDirectory(cfg.Paths.ExportDir, cfg.Export.OverwriteExisting)
	if err := planner.WriteArtifacts(context.Background(), storage, plan, deliverables); err != nil {
		t.Fatalf("WriteArtifacts: %v", err)
	}

	sidecarPath := filepath.Join(cfg.Paths.ExportDir, "2025-10-28-AB3KQ_fassade_001_v1.jpg.json")
	data := testsupport.ReadFile(t, sidecarPath)
	if !strings.Contains(string(data), `"mergedFilename": "2025-10-28-AB3KQ_fassade_001_v1.jpg"`) {
		t.Errorf("sidecar content unexpected:\n%s", data)
	}

	altData := testsupport.ReadFile(t, filepath.Join(cfg.Paths.ExportDir, cfg.Captions.AltTextFilename))
	lines := strings.Split(strings.TrimRight(string(altData), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 alt-text lines, got %d:\n%s", len(lines), altData)
	}
	if !strings.HasPrefix(lines[0], "2025-10-28-AB3KQ_fassade_001_v1.jpg\t") {
		t.Errorf("unexpected alt-text line %q", lines[0])
	}

	if cfg.Export.WriteManifest {
		manifest := testsupport.ReadFile(t, filepath.Join(cfg.Paths.ExportDir, cfg.Export.ManifestName))
		if !strings.Contains(string(manifest), `"SessionID": "sess-1"`) {
			t.Errorf("manifest content unexpected:\n%s", manifest)
		}
	}
}

func TestLocalDirectoryConflicts(t *testing.T) {
	dir := t.TempDir()
	storage := export.NewLocalDirectory(dir, false)
	ctx := context.Background()

	location, err := storage.Put(ctx, "a/b.txt", strings.NewReader("one"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if location != filepath.Join(dir, "a", "b.txt") {
		t.Fatalf("unexpected location %s", location)
	}

	if _, err := storage.Put(ctx, "a/b.txt", strings.NewReader("two")); !errors.Is(err, services.ErrConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}

	overwriting := export.NewLocalDirectory(dir, true)
	if _, err := overwriting.Put(ctx, "a/b.txt", strings.NewReader("two")); err != nil {
		t.Fatalf("overwrite Put: %v", err)
	}
	if got, _ := os.ReadFile(filepath.Join(dir, "a", "b.txt")); string(got) != "two" {
		t.Fatalf("expected overwritten content, got %q", got)
	}
}

func TestLocalDirectoryRejectsTraversal(t *testing.T) {
	storage := export.NewLocalDirectory(t.TempDir(), false)

	for _, key := range []string{"", "../escape.txt", "/abs.txt"} {
		if _, err := storage.Put(context.Background(), key, strings.NewReader("x")); !errors.Is(err, services.ErrValidation) {
			t.Errorf("key %q: expected validation error, got %v", key, err)
		}
	}
}
