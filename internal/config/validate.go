package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTemplate(); err != nil {
		return err
	}
	if err := c.validateRelease(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTemplate() error {
	if len(c.Template.SearchDirs) == 0 {
		return errors.New("template.search_dirs must name at least one directory")
	}
	for _, dir := range c.Template.SearchDirs {
		if strings.ContainsAny(dir, "\x00") || strings.HasPrefix(dir, "/") {
			return fmt.Errorf("template.search_dirs entry %q must be a relative directory name", dir)
		}
	}
	return nil
}

func (c *Config) validateRelease() error {
	if !c.Release.Enabled {
		return nil
	}
	if c.Release.BaseURL == "" {
		return errors.New("release.base_url must be set when release.enabled is true")
	}
	if c.Release.APIToken == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/shipway/config.toml"
		}
		return fmt.Errorf("release.api_token is required. Set SHIPWAY_RELEASE_TOKEN env var or edit %s (create with 'shipway config init')", defaultPath)
	}
	if c.Release.Project == "" {
		return errors.New("release.project must be set when release.enabled is true")
	}
	if c.Release.RequestTimeout <= 0 {
		return errors.New("release.request_timeout must be positive (seconds)")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
