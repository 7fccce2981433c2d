// Package config loads, normalizes, and validates the shootdesk TOML
// configuration.
//
// Load resolves the config path (explicit flag, then
// ~/.config/shootdesk/config.toml, then ./shootdesk.toml), decodes the file
// over repository defaults, expands all path fields, and validates the
// result. CreateSample writes the embedded sample config for `shootdesk
// config init`.
package config
