package main

import (
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the tensorcore configuration file
// (~/.config/tensorcore/config.yaml). Pointer fields distinguish "not set"
// from zero values.
type Config struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Render defaults
	DefaultDType string `yaml:"default_dtype"`
	Verbose      *bool  `yaml:"verbose"`
	Parallel     *bool  `yaml:"parallel"`
}

func configPath() string {
	if p := os.Getenv("TENSORCORE_CONFIG"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tensorcore", "config.yaml")
}

// LoadConfig reads the config file. Returns a zero Config if the file doesn't exist.
func LoadConfig() Config {
	path := configPath()
	if path == "" {
		return Config{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}
	return parseConfig(data)
}

func parseConfig(data []byte) Config {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}
	return cfg
}

// applyLogConfig applies config file defaults to the logging flags when the
// corresponding flag was not explicitly set.
func applyLogConfig(c *cli.Command, cfg Config) {
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}

// applyRenderConfig applies config file defaults to render command variables.
func applyRenderConfig(c *cli.Command, cfg Config, dtype *string, verbose *bool) {
	if cfg.DefaultDType != "" && !c.IsSet("dtype") {
		*dtype = cfg.DefaultDType
	}
	if cfg.Verbose != nil && !c.IsSet("verbose") {
		*verbose = *cfg.Verbose
	}
}

// applyReluXConfig applies config file defaults to relux command variables.
func applyReluXConfig(c *cli.Command, cfg Config, parallel *bool) {
	if cfg.Parallel != nil && !c.IsSet("parallel") {
		*parallel = *cfg.Parallel
	}
}
