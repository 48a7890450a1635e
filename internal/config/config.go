package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	ArtifactDir string `toml:"artifact_dir"`
	LogDir      string `toml:"log_dir"`
}

// Template contains configuration for template discovery inside artifacts.
type Template struct {
	SearchDirs   []string `toml:"search_dirs"`
	FallbackPath string   `toml:"fallback_path"`
}

// CI contains configuration for the pipeline output-passing mechanism.
type CI struct {
	// OutputFile receives appended key=value lines. When empty, the file
	// named by OutputEnv (then GITHUB_OUTPUT) is used.
	OutputFile string `toml:"output_file"`
	OutputEnv  string `toml:"output_env"`
}

// Release contains configuration for the release-hosting API.
type Release struct {
	Enabled        bool   `toml:"enabled"`
	BaseURL        string `toml:"base_url"`
	APIToken       string `toml:"api_token"`
	Project        string `toml:"project"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Metadata contains configuration for the export metadata record.
type Metadata struct {
	OutputPath string `toml:"output_path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for shipway.
//
// Configuration sections by subsystem:
//   - Paths: artifact root and log directory
//   - Template: search order and fallback for override templates
//   - CI: output file receiving key=value result lines
//   - Release: release-hosting API endpoint and credentials
//   - Metadata: export metadata record destination
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	Template Template `toml:"template"`
	CI       CI       `toml:"ci"`
	Release  Release  `toml:"release"`
	Metadata Metadata `toml:"metadata"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/shipway/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config
// has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("shipway.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}

	return defaultPath, false, nil
}

// OutputFilePath resolves the CI output file, preferring the explicit config
// value over the configured environment variable, then GITHUB_OUTPUT.
func (c *Config) OutputFilePath() string {
	if path := strings.TrimSpace(c.CI.OutputFile); path != "" {
		return path
	}
	if env := strings.TrimSpace(c.CI.OutputEnv); env != "" {
		if value, ok := os.LookupEnv(env); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	if value, ok := os.LookupEnv("GITHUB_OUTPUT"); ok {
		return strings.TrimSpace(value)
	}
	return ""
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
