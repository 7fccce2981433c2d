package counter

import "shootdesk/internal/roomtype"

// tracker is a keyed monotonic counter. Keys are independent: advancing one
// never affects another's sequence.
type tracker struct {
	counts map[string]int
}

func newTracker() tracker {
	return tracker{counts: make(map[string]int)}
}

func (t *tracker) next(key string) int {
	value := t.counts[key] + 1
	t.counts[key] = value
	return value
}

func (t *tracker) current(key string) int {
	return t.counts[key]
}

func (t *tracker) set(key string, value int) {
	if value <= 0 {
		delete(t.counts, key)
		return
	}
	t.counts[key] = value
}

func (t *tracker) reset() {
	t.counts = make(map[string]int)
}

func (t *tracker) snapshot() map[string]int {
	out := make(map[string]int, len(t.counts))
	for key, value := range t.counts {
		out[key] = value
	}
	return out
}

func (t *tracker) restore(values map[string]int) {
	t.counts = make(map[string]int, len(values))
	for key, value := range values {
		if value > 0 {
			t.counts[key] = value
		}
	}
}

// IndexTracker assigns the subject index per normalized room token.
type IndexTracker struct {
	tracker
}

// NewIndexTracker returns an empty index tracker (every room starts at 0).
func NewIndexTracker() *IndexTracker {
	return &IndexTracker{tracker: newTracker()}
}

// GetNextIndex issues the next subject index for the room type and persists
// it. The first call for a room returns 1.
func (t *IndexTracker) GetNextIndex(room string) int {
	return t.next(roomtype.Normalize(room))
}

// GetCurrentIndex reads the last-issued index without mutating state.
// Unseen rooms report 0.
func (t *IndexTracker) GetCurrentIndex(room string) int {
	return t.current(roomtype.Normalize(room))
}

// SetIndex force-sets the last-issued index for resume scenarios. Values
// below 1 clear the key.
func (t *IndexTracker) SetIndex(room string, index int) {
	t.set(roomtype.Normalize(room), index)
}

// Reset clears all room sequences for a new session.
func (t *IndexTracker) Reset() {
	t.reset()
}

// Clone returns an independent copy; previews advance the clone so the
// session tracker stays untouched.
func (t *IndexTracker) Clone() *IndexTracker {
	clone := NewIndexTracker()
	clone.restore(t.counts)
	return clone
}

// Snapshot returns a copy of the room token to last-issued index mapping.
func (t *IndexTracker) Snapshot() map[string]int {
	return t.snapshot()
}

// Restore replaces tracker state from a snapshot (session rehydration).
func (t *IndexTracker) Restore(values map[string]int) {
	t.restore(values)
}

// VersionTracker assigns the re-export version per subject base name.
type VersionTracker struct {
	tracker
}

// NewVersionTracker returns an empty version tracker (every subject starts at 0).
func NewVersionTracker() *VersionTracker {
	return &VersionTracker{tracker: newTracker()}
}

// GetNextVersion issues the next version for the base name and persists it.
// The first call for a subject returns 1.
func (t *VersionTracker) GetNextVersion(baseName string) int {
	return t.next(baseName)
}

// GetCurrentVersion reads the last-issued version without mutating state.
// Unseen subjects report 0.
func (t *VersionTracker) GetCurrentVersion(baseName string) int {
	return t.current(baseName)
}

// SetVersion force-sets the last-issued version for resume scenarios. Values
// below 1 clear the key.
func (t *VersionTracker) SetVersion(baseName string, version int) {
	t.set(baseName, version)
}

// Reset clears all subject sequences for a new session.
func (t *VersionTracker) Reset() {
	t.reset()
}

// Clone returns an independent copy for side-effect-free previews.
func (t *VersionTracker) Clone() *VersionTracker {
	clone := NewVersionTracker()
	clone.restore(t.counts)
	return clone
}

// Snapshot returns a copy of the base name to last-issued version mapping.
func (t *VersionTracker) Snapshot() map[string]int {
	return t.snapshot()
}

// Restore replaces tracker state from a snapshot (session rehydration).
func (t *VersionTracker) Restore(values map[string]int) {
	t.restore(values)
}
