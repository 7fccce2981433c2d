// Package sidecar builds the per-file metadata records and localized
// captions that accompany delivered photographs. Each delivered file gets
// one ObjectMetadata record (serialized as JSON) and one German alt-text
// line; validation separates blocking identity errors from advisory
// warnings about missing descriptive metadata.
package sidecar
