package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// ChartsConfig configures chart rendering.
type ChartsConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Width   int  `mapstructure:"width"`
	Height  int  `mapstructure:"height"`
	Bins    int  `mapstructure:"bins"`
}

// LoggingConfig configures application logging.
type LoggingConfig struct {
	Level      string            `mapstructure:"level"`
	Format     string            `mapstructure:"format"`
	Path       string            `mapstructure:"path"`
	Components map[string]string `mapstructure:"components"`
}

// Config represents the application configuration.
type Config struct {
	DefaultPath string        `mapstructure:"default_path"`
	Output      string        `mapstructure:"output"`
	OutDir      string        `mapstructure:"out_dir"`
	Charts      ChartsConfig  `mapstructure:"charts"`
	Logging     LoggingConfig `mapstructure:"logging"`
}

// SetDefaults registers every default value on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("default_path", DefaultPath)
	v.SetDefault("output", DefaultOutput)
	v.SetDefault("out_dir", DefaultOutDir)

	v.SetDefault("charts.enabled", true)
	v.SetDefault("charts.width", DefaultChartWidth)
	v.SetDefault("charts.height", DefaultChartHeight)
	v.SetDefault("charts.bins", DefaultBins)

	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
	v.SetDefault("logging.path", "") // empty disables the log file
	v.SetDefault("logging.components", map[string]string{})
}

// Load reads configuration into v and returns the merged result.
// An explicit file must exist. Without one, $XDG_CONFIG_HOME/sift/config.yaml
// is used when present and defaults otherwise.
//
// Values already set on v (for example bound command line flags) take
// precedence over the file. Environment variables are not consulted.
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)

	if file != "" {
		path, err := ExpandPath(file)
		if err != nil {
			return nil, err
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(strings.TrimSuffix(ConfigFileName, filepath.Ext(ConfigFileName)))
		v.SetConfigType("yaml")
		v.AddConfigPath(ConfigDir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Charts.Bins < 1 {
		return nil, fmt.Errorf("charts.bins must be positive, got %d", cfg.Charts.Bins)
	}

	var err error
	if cfg.DefaultPath, err = ExpandPath(cfg.DefaultPath); err != nil {
		return nil, err
	}
	if cfg.OutDir, err = ExpandPath(cfg.OutDir); err != nil {
		return nil, err
	}
	if cfg.Logging.Path, err = ExpandPath(cfg.Logging.Path); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ConfigDir returns $XDG_CONFIG_HOME/sift.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, "sift")
}

// ConfigPath returns the path of the default config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// WriteDefault writes a commented default config file to path unless one
// already exists. It reports whether a file was written.
func WriteDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to check config file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	defaultConfig := fmt.Sprintf(`# Sift File System Analyzer Configuration

# Directory analyzed when none is given and stdin is not a terminal
default_path: %s

# Report format: plain, pretty, json, yaml
output: %s

# Directory receiving the charts and other_category_analysis.txt
out_dir: %s

# Chart rendering
charts:
  enabled: true
  width: %d
  height: %d
  # Number of log-spaced histogram bins
  bins: %d

# Logging configuration
logging:
  # Log level: debug, info, warn, error
  level: %s
  # Console format: text, json, logfmt
  format: %s
  # Optional log file (empty disables file logging)
  path: ""
  # Per-component log levels
  components:
    scanner: %s
    chart: %s
`, DefaultPath, DefaultOutput, DefaultOutDir,
		DefaultChartWidth, DefaultChartHeight, DefaultBins,
		DefaultLogLevel, DefaultLogFormat, DefaultLogLevel, DefaultLogLevel)

	if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return false, fmt.Errorf("failed to write default config: %w", err)
	}

	return true, nil
}

// ExpandPath expands ~ in a path to the user's home directory.
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, path[1:]), nil
}
