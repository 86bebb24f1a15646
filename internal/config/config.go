package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"
)

const (
	DefaultPageSize = 50
	OutputYAML      = "yaml"
	OutputJSON      = "json"
)

type Config struct {
	URL      string    `yaml:"url"`
	PageSize int       `yaml:"page_size,omitempty"`
	Output   string    `yaml:"output,omitempty"`
	Log      LogConfig `yaml:"log,omitempty"`
}

type LogConfig struct {
	File       string `yaml:"file,omitempty"`
	MaxSizeMB  int    `yaml:"max_size_mb,omitempty"`
	MaxBackups int    `yaml:"max_backups,omitempty"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		PageSize: DefaultPageSize,
		Output:   OutputYAML,
		Log: LogConfig{
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// DefaultPath is $HOME/.config/pncctl/config.yaml, or "" without a home directory
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "pncctl", "config.yaml")
}

// Load reads a YAML profile on top of the defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve builds the effective configuration. The profile named by the
// "config" key (or DefaultPath when it exists) is loaded first; keys set in v
// through flags or PNCCTL_* environment variables override it.
func Resolve(v *viper.Viper) (*Config, error) {
	cfg := Default()

	path := v.GetString("config")
	if path == "" {
		if def := DefaultPath(); def != "" {
			if _, err := os.Stat(def); err == nil {
				path = def
			}
		}
	}
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
		cfg = loaded
	}

	if v.IsSet("url") {
		cfg.URL = v.GetString("url")
	}
	if v.IsSet("page-size") {
		cfg.PageSize = v.GetInt("page-size")
	}
	if v.IsSet("output") {
		cfg.Output = v.GetString("output")
	}
	if v.IsSet("log-file") {
		cfg.Log.File = v.GetString("log-file")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings every command depends on
func (c *Config) Validate() error {
	var errs []error
	if c.URL == "" {
		errs = append(errs, errors.New("service url is not set (use --url, PNCCTL_URL or the config file)"))
	} else if u, err := url.Parse(c.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("service url %q must be an absolute http(s) url", c.URL))
	}
	if c.PageSize < 1 {
		errs = append(errs, fmt.Errorf("page size must be at least 1, got %d", c.PageSize))
	}
	if c.Output != OutputYAML && c.Output != OutputJSON {
		errs = append(errs, fmt.Errorf("unknown output format %q (expected %s or %s)", c.Output, OutputYAML, OutputJSON))
	}
	return errors.Join(errs...)
}
