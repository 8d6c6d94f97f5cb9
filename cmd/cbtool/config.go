package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/samcharles93/cbtool/internal/report"
	"github.com/samcharles93/cbtool/pkg/cb"
)

// Config represents the cbtool configuration file (~/.config/cbtool/config.yaml).
// Pointer fields distinguish "not set" from zero values.
type Config struct {
	// Validation defaults
	Mode   []string `yaml:"mode"`
	Format string   `yaml:"format"`
	Jobs   *int     `yaml:"jobs"`

	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Server
	ServerAddress string `yaml:"server_address"`
	MaxBodyBytes  *int64 `yaml:"max_body_bytes"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "cbtool", "config.yaml")
}

// LoadConfig reads the config file. A missing file yields a zero Config;
// a file that does not parse is an error.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return c, nil
}

// applyLoggingConfig applies config file defaults to the logging flags
// when they were not explicitly set.
func applyLoggingConfig(c *cli.Command, cfg Config) {
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}

// applyOutputConfig applies config file defaults to --format and --jobs.
func applyOutputConfig(c *cli.Command, cfg Config, jobs *int) {
	if cfg.Format != "" && !c.IsSet("format") {
		outputFormat = cfg.Format
	}
	if cfg.Jobs != nil && jobs != nil && !c.IsSet("jobs") {
		*jobs = *cfg.Jobs
	}
}

// applyServeConfig applies config file defaults to serve command variables.
func applyServeConfig(c *cli.Command, cfg Config, addr *string, maxBody *int64) {
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
	if cfg.MaxBodyBytes != nil && !c.IsSet("max-body-bytes") {
		*maxBody = *cfg.MaxBodyBytes
	}
}

// resolveMode picks the --mode flag, then the config file, then the
// default for kind.
func resolveMode(c *cli.Command, cfg Config, kind report.Kind) (cb.Mode, error) {
	switch {
	case c.IsSet("mode"):
		return cb.ParseModes(modeList)
	case len(cfg.Mode) > 0:
		return cb.ParseModes(cfg.Mode)
	}
	return kind.DefaultMode(), nil
}
