// Package counter provides the keyed monotonic counters that make capture
// numbering deterministic within a shoot session.
//
// IndexTracker issues the per-room-type subject index; VersionTracker issues
// the per-subject re-export version. Both are plain state objects owned by
// one session, never package-level singletons, so independent sessions and
// tests cannot share counter state. Clone supports side-effect-free filename
// previews; Snapshot and Restore support persistence.
package counter
