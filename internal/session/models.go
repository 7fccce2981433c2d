package session

import "time"

// Session identifies one shoot-review session. ShootCode and ShootDate feed
// directly into filename generation; CommittedAt records the last successful
// ApplyRenaming.
type Session struct {
	ID          string
	ShootCode   string
	ShootDate   string // YYYY-MM-DD
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CommittedAt *time.Time
}

// Stack is one group of bracketed exposures captured for a single subject.
// Stacks are never removed from the session; MarkedForDeletion only excludes
// them from export planning.
type Stack struct {
	ID         string
	OrderIndex int
	ImageCount int
	PreviewRef string

	// RoomType is the display label, empty until the operator assigns one.
	// RoomToken is its normalized form, kept alongside so persistence and
	// filename generation never re-derive it inconsistently.
	RoomType  string
	RoomToken string

	// EVOffsets is the bracket ladder for one exposure group, e.g.
	// [-2 -1 0 1 2]. Exposures beyond one ladder roll into further bracket
	// groups (g002, g003, …). When empty a centered ladder spanning
	// ImageCount is derived.
	EVOffsets []int

	// RawExtension overrides the session default for this stack's frames.
	RawExtension string

	MarkedForDeletion bool
	FlaggedUncertain  bool
	Selected          bool
}

// clone returns a copy safe to hand to callers.
func (s *Stack) clone() Stack {
	out := *s
	if s.EVOffsets != nil {
		out.EVOffsets = append([]int(nil), s.EVOffsets...)
	}
	return out
}

// defaultLadder derives a centered EV ladder for a bracket of n exposures:
// 3 -> [-1 0 1], 5 -> [-2 -1 0 1 2], 4 -> [-1 0 1 2].
func defaultLadder(n int) []int {
	if n <= 0 {
		return nil
	}
	offsets := make([]int, n)
	shift := (n - 1) / 2
	for i := range offsets {
		offsets[i] = i - shift
	}
	return offsets
}
