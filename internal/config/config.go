/*
PURPOSE:
  Defines the configuration structure and loading logic for epoch-viz.
  Adheres to "Config IS Code" philosophy.

REQUIREMENTS:
  User-specified:
  - The log path must not be process-global state: it is a config value
    with a convenient default, overridable by file, env and CLI.
  - Mean-profit behavior is a switch (legacy | corrected).

  Implementation-discovered:
  - Needs to support YAML parsing, and TOML for people who keep their
    optimizer settings in TOML.
  - Needs to support Environment variables overrides (EPOCHVIZ_...).

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli, internal/engine, internal/render
  - Dependencies: gopkg.in/yaml.v3, github.com/BurntSushi/toml,
    github.com/ilyakaznacheev/cleanenv (env layer only)

ERROR HANDLING:
  - Returns explicit error if config file is invalid.
  - Missing default files fall back to DefaultConfig().
  - Validate() reports the first bad field.

IMPLEMENTATION RULES:
  - Config struct tags should support yaml, toml and env.
  - No env-default tags: defaults live in DefaultConfig() only, so the env
    layer never clobbers values read from a file.

USAGE:
  cfg, err := config.Load("epoch_viz.yaml")

SELF-HEALING INSTRUCTIONS:
  - If new fields are needed, add to Config struct and DefaultConfig(),
    then extend Validate() and the render/summary flag overrides.

RELATED FILES:
  - internal/cli/root.go
  - internal/cli/render.go

MAINTENANCE:
  - Update when adding new rendering or aggregation options.
*/

package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

// DefaultFiles are searched in order when no config path is given.
var DefaultFiles = []string{"epoch_viz.yaml", "epoch_viz.yml", "epoch_viz.toml"}

var (
	renderers   = []string{"plot", "gochart"}
	formats     = []string{"png", "svg", "pdf"}
	meanModes   = []string{"legacy", "corrected"}
	logFormats  = []string{"text", "json", "pretty"}
	logLevels   = []string{"debug", "info", "warn", "error"}
	gochartFmts = []string{"png", "svg"}
)

// Config represents the full configuration for epoch-viz.
type Config struct {
	LogFile   string `yaml:"log_file" toml:"log_file" env:"EPOCHVIZ_LOG_FILE" env-description:"optimizer log to read"`
	OutputDir string `yaml:"output_dir" toml:"output_dir" env:"EPOCHVIZ_OUTPUT_DIR" env-description:"directory for rendered charts"`
	// Renderer is the chart backend: plot (gonum) or gochart.
	Renderer string `yaml:"renderer" toml:"renderer" env:"EPOCHVIZ_RENDERER" env-description:"chart backend: plot or gochart"`
	Format   string `yaml:"format" toml:"format" env:"EPOCHVIZ_FORMAT" env-description:"chart file format: png, svg or pdf"`
	// Width and Height are in points (1/72 inch) for plot, pixels for gochart.
	Width  int `yaml:"width" toml:"width" env:"EPOCHVIZ_WIDTH" env-description:"chart width"`
	Height int `yaml:"height" toml:"height" env:"EPOCHVIZ_HEIGHT" env-description:"chart height"`
	// Ticks is the approximate number of labeled ticks on the epoch axis.
	Ticks int `yaml:"ticks" toml:"ticks" env:"EPOCHVIZ_TICKS" env-description:"approximate number of epoch axis ticks"`
	// Averages adds the mean-time and mean-profit charts.
	Averages   bool   `yaml:"averages" toml:"averages" env:"EPOCHVIZ_AVERAGES" env-description:"also render per-epoch averages"`
	MeanProfit string `yaml:"mean_profit" toml:"mean_profit" env:"EPOCHVIZ_MEAN_PROFIT" env-description:"mean profit computation: legacy (averages times) or corrected"`
	LogLevel   string `yaml:"log_level" toml:"log_level" env:"EPOCHVIZ_LOG_LEVEL" env-description:"debug, info, warn or error"`
	LogFormat  string `yaml:"log_format" toml:"log_format" env:"EPOCHVIZ_LOG_FORMAT" env-description:"text, json or pretty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		LogFile:    "./a280-n1395.txt",
		OutputDir:  ".",
		Renderer:   "plot",
		Format:     "png",
		Width:      576,
		Height:     432,
		Ticks:      10,
		Averages:   false,
		MeanProfit: "legacy",
		LogLevel:   "info",
		LogFormat:  "text",
	}
}

// Load reads configuration from a file, then applies EPOCHVIZ_* env vars.
// If path is specified, it attempts to load that file.
// If path is empty, it searches DefaultFiles in order.
// If no file found, returns default config (plus env overrides).
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		for _, name := range DefaultFiles {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name // record which file we loaded
				break
			}
		}
	}

	if path != "" {
		if err := decode(path, data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment overrides: %w", err)
	}

	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		_, err := toml.NewDecoder(bytes.NewReader(data)).Decode(cfg)
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks enumerated fields and sizes.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.LogFile) == "" {
		return fmt.Errorf("log_file must not be empty")
	}
	if err := oneOf("renderer", c.Renderer, renderers); err != nil {
		return err
	}
	if err := oneOf("format", c.Format, formats); err != nil {
		return err
	}
	if c.Renderer == "gochart" {
		if err := oneOf("format (gochart)", c.Format, gochartFmts); err != nil {
			return err
		}
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("width and height must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", c.Ticks)
	}
	if err := oneOf("mean_profit", c.MeanProfit, meanModes); err != nil {
		return err
	}
	if err := oneOf("log_level", c.LogLevel, logLevels); err != nil {
		return err
	}
	return oneOf("log_format", c.LogFormat, logFormats)
}

func oneOf(field, value string, allowed []string) error {
	if slices.Contains(allowed, strings.ToLower(value)) {
		return nil
	}
	return fmt.Errorf("invalid %s %q (want one of %s)", field, value, strings.Join(allowed, ", "))
}

// EnvHelp returns the list of supported environment variables.
func EnvHelp() (string, error) {
	return cleanenv.GetDescription(DefaultConfig(), nil)
}

// YAML renders cfg the way it would be written in epoch_viz.yaml.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
