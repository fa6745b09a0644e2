// appshell is a single-window desktop application shell.
package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cpuguy83/appshell/internal/app"
	"github.com/cpuguy83/appshell/internal/config"
	"github.com/cpuguy83/appshell/internal/locale"
	"github.com/cpuguy83/appshell/internal/resources"
	"github.com/cpuguy83/appshell/internal/toolkit"
)

const (
	envConfig = "APPSHELL_CONFIG"
	envDebug  = "APPSHELL_DEBUG"
)

// runtime is a toolkit.Application whose event loop accepts work from
// other goroutines.
type runtime interface {
	toolkit.Application
	Post(f func())
}

func main() {
	// Command line arguments belong to the windowing runtime, so the
	// config location comes from the environment.
	var cfg *config.Config
	var err error
	if path := os.Getenv(envConfig); path != "" {
		cfg, err = config.LoadFrom(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup logging
	level := cfg.Log.Level
	if os.Getenv(envDebug) != "" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	os.Exit(run(cfg, os.Args))
}

// run performs startup and runs the event loop, returning the exit status.
func run(cfg *config.Config, args []string) int {
	slog.Info("starting appshell",
		"id", cfg.App.ID,
		"version", cfg.App.Version,
		"backend", cfg.UI.Backend,
	)

	// Translations must be active before any string is rendered.
	catalog := locale.NewCatalog()
	if err := catalog.Setup(cfg.I18n.Domain, cfg.I18n.LocaleDir, cfg.I18n.Encoding); err != nil {
		slog.Error("failed to set up localization", "error", err)
		return 1
	}

	// The window template lives in the bundle.
	if cfg.Resources.Bundle != "" {
		bundle, err := resources.Open(cfg.Resources.Bundle)
		if err != nil {
			slog.Error("failed to load resources", "error", err)
			return 1
		}
		if err := resources.Register(bundle); err != nil {
			slog.Error("failed to register resources", "error", err)
			return 1
		}
	}

	flags := appFlags(cfg)

	rt, err := newRuntime(cfg, flags)
	if err != nil {
		slog.Error("failed to create application", "error", err)
		return 1
	}

	ctrl := app.New(cfg.App.ID, flags, rt, app.WithAbout(aboutInfo(cfg)))

	if h, ok := rt.(*toolkit.Headless); ok && !flags.Has(app.FlagNonUnique) {
		inst, forwarded := claimInstance(cfg.App.ID, h, ctrl)
		if forwarded {
			return 0
		}
		if inst != nil {
			defer inst.Close()
		}
	}

	// Handle signals to quit gracefully
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		slog.Info("received signal, shutting down")
		rt.Post(ctrl.Quit)
	}()

	return ctrl.Run(args)
}

// appFlags maps the configured startup behaviour onto application flags.
func appFlags(cfg *config.Config) app.Flags {
	flags := app.FlagsNone
	if cfg.App.NonUnique {
		flags |= app.FlagNonUnique
	}
	if cfg.App.Service {
		flags |= app.FlagIsService
	}
	return flags
}

// newRuntime picks the windowing runtime for the configured backend.
func newRuntime(cfg *config.Config, flags app.Flags) (runtime, error) {
	opts := toolkit.Options{
		ID:             cfg.App.ID,
		NonUnique:      flags.Has(app.FlagNonUnique),
		IsService:      flags.Has(app.FlagIsService),
		Title:          cfg.App.Name,
		Width:          cfg.UI.Width,
		Height:         cfg.UI.Height,
		Theme:          cfg.UI.Theme,
		WindowResource: cfg.Resources.Window,
	}

	backend := cfg.UI.Backend
	useGTK := backend == "gtk" || backend == "auto" && toolkit.GTKAvailable()
	if useGTK {
		return toolkit.NewGTK(opts)
	}

	slog.Debug("using headless backend")
	return toolkit.NewHeadless(opts), nil
}

func aboutInfo(cfg *config.Config) toolkit.AboutInfo {
	return toolkit.AboutInfo{
		ProgramName: cfg.App.Name,
		Version:     cfg.App.Version,
		Authors:     cfg.App.Authors,
		Website:     cfg.App.Website,
		Comments:    cfg.App.Comments,
		IconName:    cfg.App.Icon,
		Copyright:   cfg.App.Copyright,
	}
}
