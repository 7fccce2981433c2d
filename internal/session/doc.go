// Package session holds the in-memory model of one capture-review session
// and its SQLite persistence.
//
// A Review owns the stack arena (addressed by stable ID) plus a separate
// dense order slice, the per-room index tracker, and the per-subject version
// tracker. Moving a stack is an order-slice splice followed by a single
// renumbering pass, so order indices stay dense with no duplicates or gaps.
//
// PreviewFilenames is pure with respect to the trackers: it advances clones,
// so the UI can re-render previews arbitrarily often. Only ApplyRenaming
// mutates tracker state, and it does so strictly in display order so indices
// land exactly as previewed.
//
// The Store persists sessions, stacks, and counter snapshots so a session
// can be resumed later. A flock-based session lock refuses concurrent
// editors; multi-device merging is deliberately unsupported.
package session
