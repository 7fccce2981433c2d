// Package main hosts the shootdesk CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into
// capture-review operations: session lifecycle, stack ordering and room
// assignment, rename preview and commit, filename parsing, counter
// maintenance, and configuration scaffolding. It centralizes configuration
// resolution, session locking, and structured logging setup so subcommands
// can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
