// Package config holds the site configuration: a YAML file overlaid on
// defaults, then environment overrides.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/phillip-england/dinos/internal/dinos"
	"github.com/phillip-england/dinos/internal/logging"
)

// Config holds all site configuration.
type Config struct {
	// Addr is the listen address, e.g. ":8000".
	Addr string `yaml:"addr"`

	// DataPath is the catalog file, relative to the working directory.
	DataPath string `yaml:"data_path"`

	Log LogConfig `yaml:"log"`

	// LiveReload watches DataPath and tells open pages to reload over a websocket.
	LiveReload bool `yaml:"live_reload"`

	// MarkdownDescriptions renders descriptions as sanitized markdown.
	MarkdownDescriptions bool `yaml:"markdown_descriptions"`

	// StrictStatus answers 404/500 on data failures instead of 200.
	StrictStatus bool `yaml:"strict_status"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Addr:     ":8000",
		DataPath: dinos.DefaultPath,
		Log: LogConfig{
			Level:  "info",
			Format: logging.FormatConsole,
		},
	}
}

// Load reads path (if non-empty) over the defaults, applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "could not read config %s", path)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "could not parse config %s", path)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "could not marshal config")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "could not write config %s", path)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if addr := os.Getenv("DINOS_ADDR"); addr != "" {
		c.Addr = addr
	} else if port := os.Getenv("PORT"); port != "" {
		c.Addr = ":" + strings.TrimPrefix(port, ":")
	}
	if path := os.Getenv("DINOS_DATA_PATH"); path != "" {
		c.DataPath = path
	}
	if level := os.Getenv("DINOS_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	if format := os.Getenv("DINOS_LOG_FORMAT"); format != "" {
		c.Log.Format = format
	}
	if v := os.Getenv("DINOS_LIVE_RELOAD"); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrapf(err, "invalid DINOS_LIVE_RELOAD %q", v)
		}
		c.LiveReload = on
	}
	return nil
}

// Validate checks the configuration for values the server cannot start with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New("addr is required")
	}
	if strings.TrimSpace(c.DataPath) == "" {
		return errors.New("data_path is required")
	}
	switch strings.ToLower(c.Log.Format) {
	case "", logging.FormatConsole, logging.FormatJSON:
	default:
		return errors.Errorf("log.format must be %q or %q, got %q", logging.FormatConsole, logging.FormatJSON, c.Log.Format)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}
