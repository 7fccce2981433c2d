// Package naming implements the bidirectional codec between structured
// capture components and the two delivery filename grammars:
//
//	final:  YYYY-MM-DD-XXXXX_<room-token>_NNN_vV.jpg
//	raw:    YYYY-MM-DD-XXXXX_<room-token>_NNN_gGGG_eE.<ext>
//
// XXXXX is a fixed-width uppercase-alphanumeric shoot code, NNN and GGG are
// zero-padded three-digit numbers, and E renders as 0, +N, or -N. The two
// grammars are disjoint: no string is accepted by both parsers.
//
// Generation is total over structurally valid components and fails hard on
// invalid ones; an invalid generate call indicates an upstream bug, not bad
// user data. Parsing is partial: a non-matching string yields a plain
// no-match result and is never an error. Both directions are derived from
// one set of grammar fragments in grammar.go so encoder and decoder cannot
// drift apart.
package naming
