package main

import (
	"slices"
	"testing"

	"github.com/cpuguy83/appshell/internal/app"
	"github.com/cpuguy83/appshell/internal/config"
	"github.com/cpuguy83/appshell/internal/toolkit"
)

func TestNewRuntimeHeadless(t *testing.T) {
	cfg := config.Default()
	cfg.UI.Backend = "headless"

	rt, err := newRuntime(cfg, app.FlagsNone)
	if err != nil {
		t.Fatalf("newRuntime() error = %v", err)
	}
	if _, ok := rt.(*toolkit.Headless); !ok {
		t.Errorf("newRuntime() = %T, want *toolkit.Headless", rt)
	}
}

func TestAboutInfo(t *testing.T) {
	cfg, err := config.Parse([]byte(`
app:
  id: com.example.app
  name: Example
  version: 1.2.3
  authors: [Ada]
  website: https://example.com
`))
	if err != nil {
		t.Fatal(err)
	}

	info := aboutInfo(cfg)
	if info.ProgramName != "Example" || info.Version != "1.2.3" || info.Website != "https://example.com" {
		t.Errorf("aboutInfo() = %+v", info)
	}
	if !slices.Equal(info.Authors, []string{"Ada"}) {
		t.Errorf("Authors = %v", info.Authors)
	}
	if info.IconName != "com.example.app" {
		t.Errorf("IconName = %q", info.IconName)
	}
}

func TestRemoteHandler(t *testing.T) {
	rt := toolkit.NewHeadless(toolkit.Options{ID: "com.example.app"})
	ctrl := app.New("com.example.app", app.FlagsNone, rt)
	r := remoteHandler{rt: rt, ctrl: ctrl}

	// Queued before Run, as if a second launch arrived right after startup.
	r.Activate()
	r.ActivateAction(app.ActionAbout)
	rt.Post(func() {
		if got := rt.Created(); got != 1 {
			t.Errorf("windows created = %d, want 1", got)
		}
		if got := len(rt.Dialogs()); got != 1 {
			t.Errorf("dialogs = %d, want 1", got)
		}
	})
	r.ActivateAction(app.ActionQuit)

	if code := ctrl.Run(nil); code != 0 {
		t.Errorf("Run() = %d, want 0", code)
	}
	if ctrl.State() != app.StateTerminating {
		t.Errorf("State() = %v, want terminating", ctrl.State())
	}
}

func TestRemoteAboutWithNoWindow(t *testing.T) {
	rt := toolkit.NewHeadless(toolkit.Options{ID: "com.example.app", IsService: true})
	ctrl := app.New("com.example.app", app.FlagIsService, rt)
	r := remoteHandler{rt: rt, ctrl: ctrl}

	rt.Post(func() {
		ctrl.Window().(*toolkit.HeadlessWindow).Close()
		if rt.ActiveWindow() != nil {
			t.Error("closed window still active")
		}
	})
	r.ActivateAction(app.ActionAbout)
	rt.Post(func() {
		if got := rt.Created(); got != 2 {
			t.Errorf("windows created = %d, want 2", got)
		}
		dialogs := rt.Dialogs()
		if len(dialogs) != 1 {
			t.Fatalf("dialogs = %d, want 1", len(dialogs))
		}
		if toolkit.Window(dialogs[0].Parent) != ctrl.Window() {
			t.Error("about dialog is not parented to the new main window")
		}
	})
	r.ActivateAction(app.ActionQuit)

	if code := ctrl.Run(nil); code != 0 {
		t.Errorf("Run() = %d, want 0", code)
	}
}

func TestAppFlags(t *testing.T) {
	tests := []struct {
		name      string
		nonUnique bool
		service   bool
		want      app.Flags
	}{
		{"defaults", false, false, app.FlagsNone},
		{"non-unique", true, false, app.FlagNonUnique},
		{"service", false, true, app.FlagIsService},
		{"both", true, true, app.FlagNonUnique | app.FlagIsService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.App.NonUnique = tt.nonUnique
			cfg.App.Service = tt.service
			if got := appFlags(cfg); got != tt.want {
				t.Errorf("appFlags() = %b, want %b", got, tt.want)
			}
		})
	}
}
