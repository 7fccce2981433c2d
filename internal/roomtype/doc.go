// Package roomtype normalizes room-type display labels into canonical
// filename-safe tokens and exposes the closed label catalog used by the
// capture-review workflow.
//
// Normalization is pure, total, and idempotent: lowercasing, explicit German
// umlaut/ß substitutions, Unicode decomposition with combining-mark removal,
// and whitespace-to-hyphen folding. The German substitutions run before
// generic diacritic stripping so "ä" becomes "ae" rather than collapsing to
// a bare "a".
package roomtype
