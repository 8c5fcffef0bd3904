// Package config loads apkforge settings from an optional config file and
// environment variables via viper, with flag overrides applied by the
// command layer.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/apkforge/apkforge/internal/runner"
)

// Config represents the complete apkforge configuration.
type Config struct {
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Keystore KeystoreConfig `mapstructure:"keystore"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// PipelineConfig controls pipeline execution.
type PipelineConfig struct {
	// TimeoutSeconds bounds each external tool invocation.
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// KeystoreConfig controls signing identity resolution.
type KeystoreConfig struct {
	// Path is an explicit keystore to sign with; empty resolves automatically.
	Path string `mapstructure:"path"`
	// DebugPath overrides the per-user debug keystore location.
	DebugPath string `mapstructure:"debug_path"`
	// GeneratedPath overrides where a throwaway keystore is created.
	GeneratedPath string `mapstructure:"generated_path"`
}

// LoggingConfig controls the structured log output.
type LoggingConfig struct {
	// Level is the minimum level emitted: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// File is an optional path for JSON log output; empty disables it.
	File string `mapstructure:"file"`
}

// Default returns the configuration with all default values.
func Default() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			TimeoutSeconds: int(runner.DefaultTimeout.Seconds()),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// SetDefaults registers default values with viper.
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("pipeline.timeout_seconds", defaults.Pipeline.TimeoutSeconds)

	viper.SetDefault("keystore.path", defaults.Keystore.Path)
	viper.SetDefault("keystore.debug_path", defaults.Keystore.DebugPath)
	viper.SetDefault("keystore.generated_path", defaults.Keystore.GeneratedPath)

	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.file", defaults.Logging.File)
}

// Load reads the configuration from viper into a Config struct and
// validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration, falling back to defaults when
// loading fails.
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "apkforge")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".apkforge"
	}
	return filepath.Join(home, ".config", "apkforge")
}

// ConfigFile returns the path to the config file.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
