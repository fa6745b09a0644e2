// Package window keeps at most one main window alive per application.
package window

import (
	"fmt"
	"log/slog"

	"github.com/cpuguy83/appshell/internal/toolkit"
)

// Manager owns the main window of each application. It must only be used
// from the event loop.
type Manager struct {
	windows map[toolkit.Application]toolkit.Window
}

// NewManager creates an empty Manager.
func NewManager() *Manager {
	return &Manager{
		windows: make(map[toolkit.Application]toolkit.Window),
	}
}

// GetOrCreate returns the live main window of owner, constructing one if
// owner has none. Redundant activations (a launcher re-invoking a running
// program) therefore never produce a second window.
func (m *Manager) GetOrCreate(owner toolkit.Application) (toolkit.Window, error) {
	if w, ok := m.windows[owner]; ok {
		return w, nil
	}

	w, err := owner.NewWindow()
	if err != nil {
		return nil, fmt.Errorf("create main window: %w", err)
	}
	if w.Application() != owner {
		return nil, fmt.Errorf("create main window: %w", toolkit.ErrForeignWindow)
	}

	m.windows[owner] = w
	w.ConnectDestroy(func() {
		// A later window may already have replaced this one.
		if m.windows[owner] == w {
			delete(m.windows, owner)
			slog.Debug("main window destroyed")
		}
	})

	slog.Debug("main window created")
	return w, nil
}

// Present shows w and gives it focus. Presenting a visible window again just
// re-focuses it.
func (m *Manager) Present(w toolkit.Window) {
	w.Present()
}

// Window returns the live main window of owner, or nil.
func (m *Manager) Window(owner toolkit.Application) toolkit.Window {
	return m.windows[owner]
}
