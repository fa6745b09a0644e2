// Package config provides configuration loading for appshell.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	App       AppConfig       `yaml:"app"`
	I18n      I18nConfig      `yaml:"i18n"`
	Resources ResourcesConfig `yaml:"resources"`
	UI        UIConfig        `yaml:"ui"`
	Log       LogConfig       `yaml:"log"`
}

// AppConfig holds the static identity of the application.
type AppConfig struct {
	ID        string   `yaml:"id"` // reverse-DNS application identifier
	Name      string   `yaml:"name"`
	Version   string   `yaml:"version"`
	Authors   []string `yaml:"authors"`
	Website   string   `yaml:"website,omitempty"`
	Comments  string   `yaml:"comments,omitempty"`
	Icon      string   `yaml:"icon,omitempty"` // icon name for the About dialog
	Copyright string   `yaml:"copyright,omitempty"`
	NonUnique bool     `yaml:"non_unique"` // allow several primary instances
	Service   bool     `yaml:"service"`    // keep running with no windows open
}

// I18nConfig configures the gettext text domain.
type I18nConfig struct {
	Domain    string `yaml:"domain"`
	LocaleDir string `yaml:"locale_dir"`
	Encoding  string `yaml:"encoding"`
}

// ResourcesConfig configures the resource bundle holding the window template.
type ResourcesConfig struct {
	Bundle string `yaml:"bundle,omitempty"` // path to a compiled .gresource file
	Window string `yaml:"window,omitempty"` // resource path of the main window template
}

// UIConfig configures the presentation runtime.
type UIConfig struct {
	Backend string `yaml:"backend"` // "auto", "gtk", "headless"
	Theme   string `yaml:"theme"`   // "system", "light", "dark"
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level slog.Level `yaml:"level"`
}

// DefaultPath returns the default config location (~/.config/appshell/config.yaml).
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get config dir: %w", err)
	}
	return filepath.Join(configDir, "appshell", "config.yaml"), nil
}

// Load reads configuration from the default location.
// A missing file yields the defaults.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}

	cfg, err := LoadFrom(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// LoadFrom reads configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	path = expandPath(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes configuration from YAML and applies defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	cfg.applyDefaults()

	cfg.I18n.LocaleDir = expandPath(cfg.I18n.LocaleDir)
	cfg.Resources.Bundle = expandPath(cfg.Resources.Bundle)

	return &cfg, nil
}

// Default returns a configuration with every option at its default.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

// applyDefaults sets default values for unspecified config options.
func (c *Config) applyDefaults() {
	if c.App.ID == "" {
		c.App.ID = "com.github.cpuguy83.appshell"
	}
	if c.App.Name == "" {
		c.App.Name = "AppShell"
	}
	if c.App.Version == "" {
		c.App.Version = "0.1.0"
	}
	if c.App.Authors == nil {
		c.App.Authors = []string{"The AppShell Authors"}
	}
	if c.App.Icon == "" {
		c.App.Icon = c.App.ID
	}
	if c.I18n.Domain == "" {
		c.I18n.Domain = "appshell"
	}
	if c.I18n.LocaleDir == "" {
		c.I18n.LocaleDir = "/usr/share/locale"
	}
	if c.I18n.Encoding == "" {
		c.I18n.Encoding = "UTF-8"
	}
	if c.UI.Backend == "" {
		c.UI.Backend = "auto"
	}
	if c.UI.Theme == "" {
		c.UI.Theme = "system"
	}
	if c.UI.Width == 0 {
		c.UI.Width = 640
	}
	if c.UI.Height == 0 {
		c.UI.Height = 480
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// UnmarshalYAML implements custom unmarshaling for UI config.
func (c *UIConfig) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Backend string `yaml:"backend"`
		Theme   string `yaml:"theme"`
		Width   int    `yaml:"width"`
		Height  int    `yaml:"height"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}

	switch raw.Backend {
	case "", "auto", "gtk", "headless":
	default:
		return fmt.Errorf("parse backend: unknown backend %q", raw.Backend)
	}

	switch raw.Theme {
	case "", "system", "light", "dark":
	default:
		return fmt.Errorf("parse theme: unknown theme %q", raw.Theme)
	}

	if raw.Width < 0 || raw.Height < 0 {
		return fmt.Errorf("parse window size: %dx%d", raw.Width, raw.Height)
	}

	c.Backend = raw.Backend
	c.Theme = raw.Theme
	c.Width = raw.Width
	c.Height = raw.Height
	return nil
}
