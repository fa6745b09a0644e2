// Package toolkit is the boundary between appshell and the windowing runtime
// (GTK4 with libadwaita, or the in-process headless runtime).
package toolkit

import "errors"

// ErrUnavailable is returned when a runtime cannot be constructed in this build.
var ErrUnavailable = errors.New("windowing runtime not available")

// ErrForeignWindow is returned when a window from another runtime is passed in.
var ErrForeignWindow = errors.New("window does not belong to this application")

// Application is an opaque handle to the runtime's application object.
// All methods must be called from the runtime's event loop.
type Application interface {
	// AddAction registers a parameterless action under name.
	AddAction(name string, activate func())

	// SetAccelsForAction binds key combinations (GTK accelerator syntax,
	// e.g. "<Primary>q") to the named action.
	SetAccelsForAction(name string, accels []string)

	// NewWindow constructs a main window owned by this application.
	// The window is not shown.
	NewWindow() (Window, error)

	// ActiveWindow returns the focused or most recently focused window,
	// or nil if there is none.
	ActiveWindow() Window

	// ShowAbout presents a modal About dialog transient for parent.
	// It does not wait for the dialog to be dismissed.
	ShowAbout(parent Window, info AboutInfo) error

	// ConnectActivate sets the handler for activation events.
	ConnectActivate(f func())

	// ConnectShutdown sets the handler invoked once when the event loop ends.
	ConnectShutdown(f func())

	// Run runs the event loop and returns its exit status.
	Run(args []string) int

	// Quit stops the event loop.
	Quit()
}

// Window is a top-level window created by an Application.
type Window interface {
	// Application returns the owning application.
	Application() Application

	// Present shows the window and brings it to the foreground.
	// Presenting a visible window only re-focuses it.
	Present()

	// ConnectDestroy registers f to run when the window is destroyed.
	ConnectDestroy(f func())
}

// AboutInfo is the static content of the About dialog.
type AboutInfo struct {
	ProgramName string
	Version     string
	Authors     []string
	Website     string
	Comments    string
	IconName    string
	Copyright   string
}

// Options configures runtime construction.
type Options struct {
	ID        string
	NonUnique bool
	IsService bool

	Title  string
	Width  int
	Height int
	Theme  string // "system", "light", "dark"

	// WindowResource is the resource path of a builder template whose
	// "main_window" object is used as the main window. Empty builds the
	// window in code.
	WindowResource string
}
