package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// NotifyConfig controls the command run when a reminder fires.
type NotifyConfig struct {
	Command string `yaml:"command"`
	Timeout string `yaml:"timeout"`
}

// ParseTimeout parses the Timeout string into a time.Duration. Returns the
// zero duration when unset.
func (c NotifyConfig) ParseTimeout() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	return time.ParseDuration(c.Timeout)
}

// Config is the top-level daemon configuration parsed from soonish.yaml.
type Config struct {
	Listen      string       `yaml:"listen"`
	DataDir     string       `yaml:"data_dir"`
	Language    string       `yaml:"language"`
	Locale      string       `yaml:"locale"`
	GlossaryDir string       `yaml:"glossary_dir"`
	LogLevel    string       `yaml:"log_level"`
	Notify      NotifyConfig `yaml:"notify"`
}

func applyDefaults(c *Config) {
	if c.Listen == "" {
		c.Listen = ":8382"
	}
	if c.DataDir == "" {
		c.DataDir = defaultDataDir()
	}
	c.DataDir = expandPath(c.DataDir)
	if c.Language == "" {
		c.Language = "en"
	}
	c.GlossaryDir = expandPath(c.GlossaryDir)
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Notify.Command == "" {
		c.Notify.Command = `echo "reminder: $SOONISH_PHRASE"`
	}
	if c.Notify.Timeout == "" {
		c.Notify.Timeout = "30s"
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || strings.TrimSpace(home) == "" {
		return "./data"
	}
	return filepath.Join(home, ".local", "share", "soonish")
}

func expandPath(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return value
	}

	v = os.ExpandEnv(v)

	home, err := os.UserHomeDir()
	if err != nil || strings.TrimSpace(home) == "" {
		return v
	}

	if v == "~" {
		return home
	}
	if strings.HasPrefix(v, "~/") {
		return filepath.Join(home, v[2:])
	}
	if strings.HasPrefix(v, "~\\") {
		return filepath.Join(home, v[2:])
	}
	return v
}

// LoadConfig reads a YAML configuration file from path and returns
// a Config with defaults applied for any unset fields.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns a Config with every default applied, for running without a
// config file.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}
