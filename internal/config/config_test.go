package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name:  "empty document uses defaults",
			input: "",
			check: func(t *testing.T, cfg *Config) {
				if cfg.App.ID != "com.github.cpuguy83.appshell" {
					t.Errorf("App.ID = %q", cfg.App.ID)
				}
				if cfg.App.Icon != cfg.App.ID {
					t.Errorf("App.Icon = %q, want app id", cfg.App.Icon)
				}
				if cfg.I18n.Encoding != "UTF-8" {
					t.Errorf("I18n.Encoding = %q", cfg.I18n.Encoding)
				}
				if cfg.UI.Backend != "auto" || cfg.UI.Theme != "system" {
					t.Errorf("UI = %+v", cfg.UI)
				}
				if cfg.Log.Level != slog.LevelInfo {
					t.Errorf("Log.Level = %v", cfg.Log.Level)
				}
				if cfg.App.NonUnique || cfg.App.Service {
					t.Errorf("App = %+v, want unique non-service defaults", cfg.App)
				}
			},
		},
		{
			name: "identity and log level",
			input: `
app:
  id: com.example.app
  name: Example
  version: 2.1.0
  authors: [Ada, Grace]
log:
  level: debug
`,
			check: func(t *testing.T, cfg *Config) {
				if cfg.App.ID != "com.example.app" || cfg.App.Name != "Example" || cfg.App.Version != "2.1.0" {
					t.Errorf("App = %+v", cfg.App)
				}
				if len(cfg.App.Authors) != 2 || cfg.App.Authors[1] != "Grace" {
					t.Errorf("App.Authors = %v", cfg.App.Authors)
				}
				if cfg.App.Icon != "com.example.app" {
					t.Errorf("App.Icon = %q", cfg.App.Icon)
				}
				if cfg.Log.Level != slog.LevelDebug {
					t.Errorf("Log.Level = %v", cfg.Log.Level)
				}
			},
		},
		{
			name: "ui options",
			input: `
ui:
  backend: headless
  theme: dark
  width: 800
`,
			check: func(t *testing.T, cfg *Config) {
				if cfg.UI.Backend != "headless" || cfg.UI.Theme != "dark" {
					t.Errorf("UI = %+v", cfg.UI)
				}
				if cfg.UI.Width != 800 || cfg.UI.Height != 480 {
					t.Errorf("size = %dx%d", cfg.UI.Width, cfg.UI.Height)
				}
			},
		},
		{
			name: "startup behaviour",
			input: `
app:
  non_unique: true
  service: true
`,
			check: func(t *testing.T, cfg *Config) {
				if !cfg.App.NonUnique || !cfg.App.Service {
					t.Errorf("App = %+v", cfg.App)
				}
			},
		},
		{name: "unknown backend", input: "ui:\n  backend: qt\n", wantErr: true},
		{name: "unknown theme", input: "ui:\n  theme: neon\n", wantErr: true},
		{name: "negative size", input: "ui:\n  width: -1\n", wantErr: true},
		{name: "bad log level", input: "log:\n  level: loud\n", wantErr: true},
		{name: "malformed yaml", input: "app: [", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		input    string
		expected string
	}{
		{"~/share/locale", filepath.Join(home, "share/locale")},
		{"/usr/share/locale", "/usr/share/locale"},
		{"relative/path", "relative/path"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := expandPath(tt.input); got != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLoadFrom(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("app:\n  id: org.example.Test\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.App.ID != "org.example.Test" {
		t.Errorf("App.ID = %q", cfg.App.ID)
	}

	if _, err := LoadFrom(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadFrom() on a missing file should fail")
	}
}
