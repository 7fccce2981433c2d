// Package services defines shared utilities consumed by the capture-review
// pipeline components.
//
// Key responsibilities:
//   - Context helpers that stamp session identifiers, shoot codes, and stage
//     names for logging.
//   - Structured error markers plus the Wrap helper that keep failure
//     classification (operator mistake vs. pipeline bug vs. conflicting
//     editor) consistent across packages.
//
// Use these helpers when wiring new session logic so operational behaviour
// stays uniform across the pipeline.
package services
