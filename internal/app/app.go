// Package app is the application controller: it owns the application
// identity, the global actions and their accelerators, and routes activation
// events to the single main window.
package app

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/cpuguy83/appshell/internal/toolkit"
	"github.com/cpuguy83/appshell/internal/window"
)

// Global action names.
const (
	ActionQuit  = "quit"
	ActionAbout = "about"
)

// QuitAccel is the accelerator bound to the quit action.
const QuitAccel = "<Primary>q"

// Controller drives a toolkit.Application. There is one per process;
// constructing a second one is a caller error.
//
// All methods run on the event loop. Action handlers close over the
// Controller and are only dispatched while it is alive.
type Controller struct {
	id    string
	flags Flags

	rt      toolkit.Application
	windows *window.Manager
	about   toolkit.AboutInfo
	log     *slog.Logger

	state   State
	actions map[string]func()
	accels  map[string][]string

	// activation failed fatally; Run reports a non-zero status
	failed bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithAbout sets the content of the About dialog.
func WithAbout(info toolkit.AboutInfo) Option {
	return func(c *Controller) {
		c.about = info
	}
}

// WithWindowManager sets the window manager. By default each Controller has
// its own.
func WithWindowManager(m *window.Manager) Option {
	return func(c *Controller) {
		c.windows = m
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		c.log = l
	}
}

// New creates the Controller for rt and registers the quit and about actions
// before returning, so both exist before the event loop handles any input.
func New(id string, flags Flags, rt toolkit.Application, opts ...Option) *Controller {
	c := &Controller{
		id:      id,
		flags:   flags,
		rt:      rt,
		about:   toolkit.AboutInfo{ProgramName: id},
		log:     slog.Default(),
		state:   StateUninitialized,
		actions: make(map[string]func()),
		accels:  make(map[string][]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.windows == nil {
		c.windows = window.NewManager()
	}

	c.addAction(ActionQuit, c.Quit, QuitAccel)
	c.addAction(ActionAbout, c.ShowAbout)

	rt.ConnectActivate(c.onActivate)
	rt.ConnectShutdown(c.onShutdown)

	c.state = StateRunning
	c.log.Debug("application initialized", "id", id, "flags", uint(flags))
	return c
}

func (c *Controller) addAction(name string, handler func(), accels ...string) {
	if _, ok := c.actions[name]; ok {
		panic(fmt.Sprintf("app: action %q registered twice", name))
	}
	c.actions[name] = handler
	c.rt.AddAction(name, func() {
		c.ActivateAction(name)
	})

	if len(accels) > 0 {
		c.accels[name] = accels
		c.rt.SetAccelsForAction(name, accels)
	}
}

// ID returns the application identifier.
func (c *Controller) ID() string {
	return c.id
}

// Flags returns the startup flags.
func (c *Controller) Flags() Flags {
	return c.flags
}

// State returns the lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// Actions returns the registered action names, sorted.
func (c *Controller) Actions() []string {
	return slices.Sorted(maps.Keys(c.actions))
}

// Accels returns the accelerators bound to action.
func (c *Controller) Accels(action string) []string {
	return slices.Clone(c.accels[action])
}

// ActionForAccel returns the action bound to accel.
func (c *Controller) ActionForAccel(accel string) (string, bool) {
	for name, accels := range c.accels {
		if slices.Contains(accels, accel) {
			return name, true
		}
	}
	return "", false
}

// ActivateAction runs the named action. It reports false for unknown actions
// and for any action once the application is terminating.
func (c *Controller) ActivateAction(name string) bool {
	handler, ok := c.actions[name]
	if !ok {
		c.log.Warn("unknown action", "action", name)
		return false
	}
	if c.state == StateTerminating {
		c.log.Debug("ignoring action while terminating", "action", name)
		return false
	}

	c.log.Debug("action activated", "action", name)
	handler()
	return true
}

// Activate presents the main window, creating it on first use. It may be
// called any number of times and always converges on the same window.
func (c *Controller) Activate() error {
	w, err := c.windows.GetOrCreate(c.rt)
	if err != nil {
		return err
	}
	c.windows.Present(w)
	return nil
}

// Window returns the live main window, or nil before the first activation.
func (c *Controller) Window() toolkit.Window {
	return c.windows.Window(c.rt)
}

// onActivate is called by the runtime on every activation event.
func (c *Controller) onActivate() {
	if c.state == StateTerminating {
		return
	}

	if err := c.Activate(); err != nil {
		c.log.Error("activation failed", "error", err)
		c.failed = true
		c.Quit()
	}
}

// onShutdown is called by the runtime when the event loop ends, including
// when the user closed the last window.
func (c *Controller) onShutdown() {
	if c.state != StateTerminating {
		c.log.Debug("event loop shut down")
	}
	c.state = StateTerminating
}

// Quit ends the event loop. Run then returns the loop's exit status.
func (c *Controller) Quit() {
	if c.state == StateTerminating {
		return
	}
	c.state = StateTerminating
	c.log.Info("quitting")
	c.rt.Quit()
}

// ShowAbout presents the About dialog over the active window without waiting
// for it to be dismissed.
//
// The about action is only reachable from UI inside a window, so calling
// ShowAbout with no active window is a programming error and panics.
func (c *Controller) ShowAbout() {
	parent := c.rt.ActiveWindow()
	if parent == nil {
		panic("app: about dialog requested with no active window")
	}

	if err := c.rt.ShowAbout(parent, c.about); err != nil {
		c.log.Error("failed to show about dialog", "error", err)
	}
}

// Run runs the event loop until quit and returns the process exit status:
// the loop's own status, or 1 if the main window could not be created.
func (c *Controller) Run(args []string) int {
	c.log.Info("starting event loop", "id", c.id)
	code := c.rt.Run(args)
	c.state = StateTerminating

	if c.failed && code == 0 {
		code = 1
	}
	c.log.Debug("event loop exited", "code", code)
	return code
}
