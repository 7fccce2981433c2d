package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"shootdesk/internal/logging"
	"shootdesk/internal/services"
)

func newTestReview(t *testing.T) *Review {
	t.Helper()
	sess := Session{
		ID:        "test-session",
		ShootCode: "AB3KQ",
		ShootDate: "2025-10-28",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	return NewReview(sess, logging.NewNop())
}

func addStacks(t *testing.T, review *Review, count int) []string {
	t.Helper()
	ids := make([]string, 0, count)
	for i := 0; i < count; i++ {
		stack, err := review.AddStack(3, "")
		if err != nil {
			t.Fatalf("AddStack: %v", err)
		}
		ids = append(ids, stack.ID)
	}
	return ids
}

func TestAddStackRejectsNonPositiveCount(t *testing.T) {
	review := newTestReview(t)
	if _, err := review.AddStack(0, ""); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestMoveStackRenumbersDensely(t *testing.T) {
	review := newTestReview(t)
	ids := addStacks(t, review, 4)

	if err := review.MoveStack(3, 0); err != nil {
		t.Fatalf("MoveStack: %v", err)
	}

	want := []string{ids[3], ids[0], ids[1], ids[2]}
	stacks := review.Stacks()
	if len(stacks) != len(want) {
		t.Fatalf("expected %d stacks, got %d", len(want), len(stacks))
	}
	for i, stack := range stacks {
		if stack.ID != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], stack.ID)
		}
		if stack.OrderIndex != i {
			t.Errorf("position %d: order index %d not dense", i, stack.OrderIndex)
		}
	}
}

func TestMoveStackRejectsOutOfRange(t *testing.T) {
	review := newTestReview(t)
	addStacks(t, review, 2)

	for _, move := range [][2]int{{-1, 0}, {2, 0}, {0, -1}, {0, 2}} {
		if err := review.MoveStack(move[0], move[1]); !errors.Is(err, services.ErrValidation) {
			t.Errorf("move %v: expected validation error, got %v", move, err)
		}
	}
}

func TestAssignRoomTypeRejectsUnknownLabel(t *testing.T) {
	review := newTestReview(t)
	ids := addStacks(t, review, 1)

	if err := review.AssignRoomType(ids, "Ballsaal"); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := review.AssignRoomType(ids, "Gäste-WC"); err != nil {
		t.Fatalf("AssignRoomType: %v", err)
	}
	stack, _ := review.Stack(ids[0])
	if stack.RoomToken != "gaeste-wc" {
		t.Fatalf("expected token gaeste-wc, got %q", stack.RoomToken)
	}
}

func TestPreviewFilenamesPerRoomCounting(t *testing.T) {
	review := newTestReview(t)
	ids := addStacks(t, review, 3)
	if err := review.AssignRoomType([]string{ids[0], ids[1]}, "Fassade"); err != nil {
		t.Fatal(err)
	}
	if err := review.AssignRoomType([]string{ids[2]}, "Wohnzimmer"); err != nil {
		t.Fatal(err)
	}

	planned, err := review.PreviewFilenames()
	if err != nil {
		t.Fatalf("PreviewFilenames: %v", err)
	}
	want := []string{
		"2025-10-28-AB3KQ_fassade_001_v1.jpg",
		"2025-10-28-AB3KQ_fassade_002_v1.jpg",
		"2025-10-28-AB3KQ_wohnzimmer_001_v1.jpg",
	}
	for i, name := range want {
		if planned[i].Filename != name {
			t.Errorf("preview %d: expected %s, got %s", i, name, planned[i].Filename)
		}
	}
}

func TestPreviewFilenamesIsPure(t *testing.T) {
	review := newTestReview(t)
	ids := addStacks(t, review, 2)
	if err := review.AssignRoomType(ids, "Küche"); err != nil {
		t.Fatal(err)
	}

	first, err := review.PreviewFilenames()
	if err != nil {
		t.Fatal(err)
	}
	second, err := review.PreviewFilenames()
	if err != nil {
		t.Fatal(err)
	}
	for i := range first {
		if first[i].Filename != second[i].Filename {
			t.Fatalf("preview not idempotent: %s vs %s", first[i].Filename, second[i].Filename)
		}
	}
	if got := review.Indexes().GetCurrentIndex("kueche"); got != 0 {
		t.Fatalf("preview advanced the real index tracker to %d", got)
	}
}

func TestPreviewSkipsDeletionMarkedStacks(t *testing.T) {
	review := newTestReview(t)
	ids := addStacks(t, review, 3)
	if err := review.AssignRoomType(ids, "Fassade"); err != nil {
		t.Fatal(err)
	}
	if err := review.ToggleDeletion(ids[1]); err != nil {
		t.Fatal(err)
	}

	planned, err := review.PreviewFilenames()
	if err != nil {
		t.Fatal(err)
	}
	if planned[1].Filename != "" || !planned[1].IsDeletionMarked {
		t.Fatalf("deletion-marked stack should have no filename: %+v", planned[1])
	}
	// the marked stack does not consume an index
	if planned[2].Filename != "2025-10-28-AB3KQ_fassade_002_v1.jpg" {
		t.Fatalf("expected index 002 for third stack, got %s", planned[2].Filename)
	}
}

func TestPreviewFlagsMissingRoom(t *testing.T) {
	review := newTestReview(t)
	addStacks(t, review, 1)

	planned, err := review.PreviewFilenames()
	if err != nil {
		t.Fatal(err)
	}
	if !planned[0].MissingRoom || planned[0].Filename != "" {
		t.Fatalf("expected missing-room marker, got %+v", planned[0])
	}
}

func TestApplyRenamingRejectsRoomlessStacks(t *testing.T) {
	review := newTestReview(t)
	ids := addStacks(t, review, 2)
	if err := review.AssignRoomType([]string{ids[0]}, "Fassade"); err != nil {
		t.Fatal(err)
	}

	_, err := review.ApplyRenaming(context.Background())
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestApplyRenamingMatchesPreview(t *testing.T) {
	review := newTestReview(t)
	ids := addStacks(t, review, 3)
	if err := review.AssignRoomType(ids[:2], "Fassade"); err != nil {
		t.Fatal(err)
	}
	if err := review.AssignRoomType(ids[2:], "Wohnzimmer"); err != nil {
		t.Fatal(err)
	}
	if err := review.ToggleDeletion(ids[1]); err != nil {
		t.Fatal(err)
	}

	planned, err := review.PreviewFilenames()
	if err != nil {
		t.Fatal(err)
	}
	plan, err := review.ApplyRenaming(context.Background())
	if err != nil {
		t.Fatalf("ApplyRenaming: %v", err)
	}

	if len(plan.Entries) != 2 {
		t.Fatalf("expected 2 plan entries, got %d", len(plan.Entries))
	}
	if plan.Entries[0].Filename != planned[0].Filename {
		t.Errorf("entry 0 diverged from preview: %s vs %s", plan.Entries[0].Filename, planned[0].Filename)
	}
	if plan.Entries[1].Filename != planned[2].Filename {
		t.Errorf("entry 1 diverged from preview: %s vs %s", plan.Entries[1].Filename, planned[2].Filename)
	}
	if review.Session().CommittedAt == nil {
		t.Error("commit did not stamp the session")
	}
	if got := review.Indexes().GetCurrentIndex("fassade"); got != 1 {
		t.Errorf("fassade index after commit: expected 1, got %d", got)
	}
}

func TestApplyRenamingRawFrameLadder(t *testing.T) {
	review := newTestReview(t)
	stack, err := review.AddStack(3, "")
	if err != nil {
		t.Fatal(err)
	}
	if err := review.AssignRoomType([]string{stack.ID}, "Fassade"); err != nil {
		t.Fatal(err)
	}

	plan, err := review.ApplyRenaming(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"2025-10-28-AB3KQ_fassade_001_g001_e-1.dng",
		"2025-10-28-AB3KQ_fassade_001_g001_e0.dng",
		"2025-10-28-AB3KQ_fassade_001_g001_e+1.dng",
	}
	got := plan.Entries[0].SourceFilenames
	if len(got) != len(want) {
		t.Fatalf("expected %d raw frames, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("raw frame %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestApplyRenamingBracketGroupRollover(t *testing.T) {
	review := newTestReview(t)
	stack, err := review.AddStack(6, "")
	if err != nil {
		t.Fatal(err)
	}
	if err := review.AssignRoomType([]string{stack.ID}, "Fassade"); err != nil {
		t.Fatal(err)
	}
	if err := review.SetEVOffsets(stack.ID, []int{-2, 0, 2}); err != nil {
		t.Fatal(err)
	}

	plan, err := review.ApplyRenaming(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	sources := plan.Entries[0].SourceFilenames
	if sources[0] != "2025-10-28-AB3KQ_fassade_001_g001_e-2.dng" {
		t.Errorf("first frame: %s", sources[0])
	}
	if sources[3] != "2025-10-28-AB3KQ_fassade_001_g002_e-2.dng" {
		t.Errorf("second ladder should open group 002: %s", sources[3])
	}
}

func TestRepeatedCommitAdvancesNumbering(t *testing.T) {
	review := newTestReview(t)
	ids := addStacks(t, review, 1)
	if err := review.AssignRoomType(ids, "Fassade"); err != nil {
		t.Fatal(err)
	}

	first, err := review.ApplyRenaming(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	second, err := review.ApplyRenaming(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if first.Entries[0].Filename != "2025-10-28-AB3KQ_fassade_001_v1.jpg" {
		t.Errorf("first commit: %s", first.Entries[0].Filename)
	}
	// the index advances too, so the second commit names a new subject
	if second.Entries[0].Filename != "2025-10-28-AB3KQ_fassade_002_v1.jpg" {
		t.Errorf("second commit: %s", second.Entries[0].Filename)
	}
}

func TestReexportOfSameSubjectBumpsVersion(t *testing.T) {
	review := newTestReview(t)
	ids := addStacks(t, review, 1)
	if err := review.AssignRoomType(ids, "Fassade"); err != nil {
		t.Fatal(err)
	}

	first, err := review.ApplyRenaming(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if first.Entries[0].Filename != "2025-10-28-AB3KQ_fassade_001_v1.jpg" {
		t.Fatalf("first export: %s", first.Entries[0].Filename)
	}

	// rewinding the index re-addresses the same subject, so the version
	// tracker steps in
	review.Indexes().SetIndex("fassade", 0)
	second, err := review.ApplyRenaming(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if second.Entries[0].Filename != "2025-10-28-AB3KQ_fassade_001_v2.jpg" {
		t.Fatalf("re-export: %s", second.Entries[0].Filename)
	}
}

func TestNewReviewFromStateRenumbers(t *testing.T) {
	sess := Session{ID: "s", ShootCode: "AB3KQ", ShootDate: "2025-10-28"}
	stacks := []Stack{
		{ID: "c", OrderIndex: 9, ImageCount: 1},
		{ID: "a", OrderIndex: 2, ImageCount: 1},
		{ID: "b", OrderIndex: 5, ImageCount: 1},
	}
	review := NewReviewFromState(sess, stacks, map[string]int{"fassade": 2}, nil, logging.NewNop())

	got := review.Stacks()
	want := []string{"a", "b", "c"}
	for i, id := range want {
		if got[i].ID != id || got[i].OrderIndex != i {
			t.Errorf("position %d: expected %s/%d, got %s/%d", i, id, i, got[i].ID, got[i].OrderIndex)
		}
	}
	if review.Indexes().GetCurrentIndex("fassade") != 2 {
		t.Error("index snapshot not restored")
	}
	if review.Indexes().GetNextIndex("fassade") != 3 {
		t.Error("restored tracker should continue from snapshot")
	}
}

func TestSelectionLifecycle(t *testing.T) {
	review := newTestReview(t)
	ids := addStacks(t, review, 3)

	if err := review.Select(ids[0], ids[2]); err != nil {
		t.Fatal(err)
	}
	selected := review.SelectedIDs()
	if len(selected) != 2 || selected[0] != ids[0] || selected[1] != ids[2] {
		t.Fatalf("unexpected selection %v", selected)
	}
	if err := review.Deselect(ids[0]); err != nil {
		t.Fatal(err)
	}
	if got := review.SelectedIDs(); len(got) != 1 || got[0] != ids[2] {
		t.Fatalf("unexpected selection after deselect %v", got)
	}
	if err := review.Select("nope"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
