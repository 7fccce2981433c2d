// Package export turns a committed rename plan into delivery artifacts:
// one sidecar JSON record per photograph, the bulk alt-text file, and an
// optional machine-readable manifest. Payloads are handed to a pluggable
// storage backend; a local-directory backend is provided.
package export
