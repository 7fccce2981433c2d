package config

const (
	defaultSessionDir      = "~/.local/share/shootdesk/sessions"
	defaultExportDir       = "~/.local/share/shootdesk/export"
	defaultLogDir          = "~/.local/share/shootdesk/logs"
	defaultRawExtension    = "dng"
	defaultCaptionLanguage = "de"
	defaultAltTextFilename = "alttexts.txt"
	defaultManifestName    = "plan.json"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

func defaultRawExtensions() []string {
	return []string{"dng", "arw", "cr3", "nef", "raf", "orf", "tif"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			SessionDir: defaultSessionDir,
			ExportDir:  defaultExportDir,
			LogDir:     defaultLogDir,
		},
		Naming: Naming{
			DefaultRawExtension:  defaultRawExtension,
			AllowedRawExtensions: defaultRawExtensions(),
		},
		Captions: Captions{
			Language:        defaultCaptionLanguage,
			AltTextFilename: defaultAltTextFilename,
		},
		Export: Export{
			WriteManifest: true,
			ManifestName:  defaultManifestName,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
