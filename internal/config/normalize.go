package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTemplate()
	c.normalizeCI()
	c.normalizeRelease()
	if err := c.normalizeMetadata(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.ArtifactDir) != "" {
		if c.Paths.ArtifactDir, err = expandPath(c.Paths.ArtifactDir); err != nil {
			return fmt.Errorf("paths.artifact_dir: %w", err)
		}
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTemplate() {
	dirs := make([]string, 0, len(c.Template.SearchDirs))
	for _, dir := range c.Template.SearchDirs {
		if trimmed := strings.TrimSpace(dir); trimmed != "" {
			dirs = append(dirs, trimmed)
		}
	}
	if len(dirs) == 0 {
		dirs = defaultSearchDirs()
	}
	c.Template.SearchDirs = dirs
	c.Template.FallbackPath = strings.TrimSpace(c.Template.FallbackPath)
}

func (c *Config) normalizeCI() {
	c.CI.OutputFile = strings.TrimSpace(c.CI.OutputFile)
	c.CI.OutputEnv = strings.TrimSpace(c.CI.OutputEnv)
	if c.CI.OutputEnv == "" {
		c.CI.OutputEnv = defaultOutputEnv
	}
}

func (c *Config) normalizeRelease() {
	c.Release.BaseURL = strings.TrimRight(strings.TrimSpace(c.Release.BaseURL), "/")
	c.Release.Project = strings.TrimSpace(c.Release.Project)
	if c.Release.APIToken == "" {
		if value, ok := os.LookupEnv("SHIPWAY_RELEASE_TOKEN"); ok {
			c.Release.APIToken = value
		}
	}
	c.Release.APIToken = strings.TrimSpace(c.Release.APIToken)
	if c.Release.RequestTimeout <= 0 {
		c.Release.RequestTimeout = defaultReleaseRequestTimeout
	}
}

func (c *Config) normalizeMetadata() error {
	c.Metadata.OutputPath = strings.TrimSpace(c.Metadata.OutputPath)
	if c.Metadata.OutputPath == "" {
		c.Metadata.OutputPath = defaultMetadataOutputPath
	}
	var err error
	if c.Metadata.OutputPath, err = expandPath(c.Metadata.OutputPath); err != nil {
		return fmt.Errorf("metadata.output_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
