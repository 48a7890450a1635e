package config

const (
	defaultLogDir                = "~/.local/share/shipway/logs"
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
	defaultOutputEnv             = "SHIPWAY_OUTPUT"
	defaultMetadataOutputPath    = "export-metadata.json"
	defaultReleaseRequestTimeout = 30
)

func defaultSearchDirs() []string {
	return []string{"customization-template", "customization"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Template: Template{
			SearchDirs: defaultSearchDirs(),
		},
		CI: CI{
			OutputEnv: defaultOutputEnv,
		},
		Release: Release{
			RequestTimeout: defaultReleaseRequestTimeout,
		},
		Metadata: Metadata{
			OutputPath: defaultMetadataOutputPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
