package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateNaming(); err != nil {
		return err
	}
	if err := c.validateCaptions(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.SessionDir == "" {
		return errors.New("paths.session_dir must be set")
	}
	if c.Paths.ExportDir == "" {
		return errors.New("paths.export_dir must be set")
	}
	if c.Paths.SessionDir == c.Paths.ExportDir {
		return errors.New("paths.session_dir and paths.export_dir must differ")
	}
	return nil
}

func (c *Config) validateNaming() error {
	if len(c.Naming.AllowedRawExtensions) == 0 {
		return errors.New("naming.allowed_raw_extensions must not be empty")
	}
	for _, ext := range c.Naming.AllowedRawExtensions {
		if ext == c.Naming.DefaultRawExtension {
			return nil
		}
	}
	return fmt.Errorf("naming.default_raw_extension %q is not listed in naming.allowed_raw_extensions", c.Naming.DefaultRawExtension)
}

func (c *Config) validateCaptions() error {
	// Alt-text generation currently ships German phrasing only.
	if c.Captions.Language != "de" {
		return fmt.Errorf("captions.language: unsupported value %q (supported: de)", c.Captions.Language)
	}
	return nil
}
