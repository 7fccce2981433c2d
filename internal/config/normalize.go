package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeNaming()
	c.normalizeCaptions()
	c.normalizeExport()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.SessionDir) == "" {
		c.Paths.SessionDir = defaultSessionDir
	}
	if c.Paths.SessionDir, err = expandPath(c.Paths.SessionDir); err != nil {
		return fmt.Errorf("paths.session_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ExportDir) == "" {
		c.Paths.ExportDir = defaultExportDir
	}
	if c.Paths.ExportDir, err = expandPath(c.Paths.ExportDir); err != nil {
		return fmt.Errorf("paths.export_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeNaming() {
	c.Naming.DefaultRawExtension = normalizeExtension(c.Naming.DefaultRawExtension)
	if c.Naming.DefaultRawExtension == "" {
		c.Naming.DefaultRawExtension = defaultRawExtension
	}

	if len(c.Naming.AllowedRawExtensions) == 0 {
		c.Naming.AllowedRawExtensions = defaultRawExtensions()
		return
	}
	exts := make([]string, 0, len(c.Naming.AllowedRawExtensions))
	seen := make(map[string]struct{}, len(c.Naming.AllowedRawExtensions))
	for _, ext := range c.Naming.AllowedRawExtensions {
		normalized := normalizeExtension(ext)
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		exts = append(exts, normalized)
	}
	if len(exts) == 0 {
		exts = defaultRawExtensions()
	}
	c.Naming.AllowedRawExtensions = exts
}

func normalizeExtension(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

func (c *Config) normalizeCaptions() {
	c.Captions.Language = strings.ToLower(strings.TrimSpace(c.Captions.Language))
	if c.Captions.Language == "" {
		c.Captions.Language = defaultCaptionLanguage
	}
	c.Captions.AltTextFilename = strings.TrimSpace(c.Captions.AltTextFilename)
	if c.Captions.AltTextFilename == "" {
		c.Captions.AltTextFilename = defaultAltTextFilename
	}
}

func (c *Config) normalizeExport() {
	c.Export.ManifestName = strings.TrimSpace(c.Export.ManifestName)
	if c.Export.ManifestName == "" {
		c.Export.ManifestName = defaultManifestName
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
