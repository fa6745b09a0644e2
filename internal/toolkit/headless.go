package toolkit

import (
	"log/slog"
	"slices"
	"sync"
)

// Headless is an in-process Application with no display. Windows and dialogs
// are plain values whose presentation state can be inspected. It backs
// builds without GTK and the tests.
//
// Like a GLib main loop, Headless runs every callback on the goroutine that
// called Run. Other goroutines hand work to it with Post.
type Headless struct {
	opts Options

	actions map[string]func()
	accels  map[string][]string

	windows []*HeadlessWindow
	active  *HeadlessWindow
	dialogs []*HeadlessDialog
	created int

	onActivate func()
	onShutdown func()

	// FailNewWindow, when set, is returned by NewWindow.
	FailNewWindow error

	mu      sync.Mutex
	pending []func()
	wake    chan struct{}

	quit     chan struct{}
	quitOnce sync.Once
}

// NewHeadless creates a headless runtime.
func NewHeadless(opts Options) *Headless {
	return &Headless{
		opts:    opts,
		actions: make(map[string]func()),
		accels:  make(map[string][]string),
		wake:    make(chan struct{}, 1),
		quit:    make(chan struct{}),
	}
}

// AddAction registers a parameterless action under name.
func (h *Headless) AddAction(name string, activate func()) {
	h.actions[name] = activate
}

// SetAccelsForAction binds accelerators to the named action.
func (h *Headless) SetAccelsForAction(name string, accels []string) {
	if len(accels) == 0 {
		delete(h.accels, name)
		return
	}
	h.accels[name] = slices.Clone(accels)
}

// ActivateAction invokes a registered action, as a menu item or the shell
// would. It reports whether the action exists.
func (h *Headless) ActivateAction(name string) bool {
	f, ok := h.actions[name]
	if !ok {
		return false
	}
	f()
	return true
}

// PressAccel invokes the action bound to accel, as a key press would.
func (h *Headless) PressAccel(accel string) bool {
	for name, accels := range h.accels {
		if slices.Contains(accels, accel) {
			return h.ActivateAction(name)
		}
	}
	return false
}

// NewWindow constructs a hidden main window.
func (h *Headless) NewWindow() (Window, error) {
	if h.FailNewWindow != nil {
		return nil, h.FailNewWindow
	}

	h.created++
	w := &HeadlessWindow{
		app:   h,
		id:    h.created,
		Title: h.opts.Title,
	}
	h.windows = append(h.windows, w)
	slog.Debug("headless window created", "id", w.id)
	return w, nil
}

// ActiveWindow returns the most recently presented live window.
func (h *Headless) ActiveWindow() Window {
	if h.active == nil {
		return nil
	}
	return h.active
}

// ShowAbout records a modal dialog parented to parent.
func (h *Headless) ShowAbout(parent Window, info AboutInfo) error {
	pw, ok := parent.(*HeadlessWindow)
	if !ok || pw.app != h {
		return ErrForeignWindow
	}

	d := &HeadlessDialog{
		app:    h,
		Parent: pw,
		Modal:  true,
		Info:   info,
	}
	h.dialogs = append(h.dialogs, d)
	return nil
}

// ConnectActivate sets the activation handler.
func (h *Headless) ConnectActivate(f func()) {
	h.onActivate = f
}

// ConnectShutdown sets the shutdown handler.
func (h *Headless) ConnectShutdown(f func()) {
	h.onShutdown = f
}

// Activate delivers an activation event, as a re-launch would.
func (h *Headless) Activate() {
	if h.onActivate != nil {
		h.onActivate()
	}
}

// Post schedules f to run on the event loop. It never blocks and is safe to
// call from any goroutine, including the loop itself. Work posted after Quit
// is dropped.
func (h *Headless) Post(f func()) {
	if h.Quitting() {
		return
	}

	h.mu.Lock()
	h.pending = append(h.pending, f)
	h.mu.Unlock()

	select {
	case h.wake <- struct{}{}:
	default:
	}
}

// next pops the oldest posted func, or returns nil if there is none.
func (h *Headless) next() func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.pending) == 0 {
		return nil
	}
	f := h.pending[0]
	h.pending[0] = nil
	h.pending = h.pending[1:]
	return f
}

// Run delivers the initial activation and then runs posted work until Quit
// is called. It always returns 0.
func (h *Headless) Run(args []string) int {
	slog.Debug("headless loop starting", "id", h.opts.ID, "args", len(args))

	h.Activate()

	for !h.Quitting() {
		if f := h.next(); f != nil {
			f()
			continue
		}

		select {
		case <-h.wake:
		case <-h.quit:
		}
	}

	for _, w := range slices.Clone(h.windows) {
		w.Close()
	}
	if h.onShutdown != nil {
		h.onShutdown()
	}
	return 0
}

// Quit stops the event loop. It is safe to call more than once.
func (h *Headless) Quit() {
	h.quitOnce.Do(func() { close(h.quit) })
}

// Quitting reports whether Quit has been called.
func (h *Headless) Quitting() bool {
	select {
	case <-h.quit:
		return true
	default:
		return false
	}
}

// Windows returns the live windows.
func (h *Headless) Windows() []*HeadlessWindow {
	return slices.Clone(h.windows)
}

// Created returns the number of windows ever constructed.
func (h *Headless) Created() int {
	return h.created
}

// Dialogs returns the About dialogs that have not been dismissed.
func (h *Headless) Dialogs() []*HeadlessDialog {
	return slices.Clone(h.dialogs)
}

func (h *Headless) removeWindow(w *HeadlessWindow) {
	h.windows = slices.DeleteFunc(h.windows, func(o *HeadlessWindow) bool { return o == w })
	h.dialogs = slices.DeleteFunc(h.dialogs, func(d *HeadlessDialog) bool { return d.Parent == w })
	if h.active == w {
		h.active = nil
		if n := len(h.windows); n > 0 {
			h.active = h.windows[n-1]
		}
	}
}

// HeadlessWindow is a main window of a Headless runtime.
type HeadlessWindow struct {
	app *Headless
	id  int

	Title     string
	Visible   bool
	Presents  int
	Destroyed bool

	onDestroy []func()
}

// Application returns the owning runtime.
func (w *HeadlessWindow) Application() Application {
	return w.app
}

// ID returns the construction sequence number of the window.
func (w *HeadlessWindow) ID() int {
	return w.id
}

// Present makes the window visible and active.
func (w *HeadlessWindow) Present() {
	if w.Destroyed {
		return
	}
	w.Visible = true
	w.Presents++
	w.app.active = w
}

// Focused reports whether the window is the runtime's active window.
func (w *HeadlessWindow) Focused() bool {
	return w.app.active == w
}

// ConnectDestroy registers a destroy callback.
func (w *HeadlessWindow) ConnectDestroy(f func()) {
	w.onDestroy = append(w.onDestroy, f)
}

// Close destroys the window, as the user closing it would. Closing the last
// window quits the runtime unless it runs as a service.
func (w *HeadlessWindow) Close() {
	if w.Destroyed {
		return
	}
	w.Destroyed = true
	w.Visible = false
	w.app.removeWindow(w)
	for _, f := range w.onDestroy {
		f()
	}

	if len(w.app.windows) == 0 && !w.app.opts.IsService {
		w.app.Quit()
	}
}

// HeadlessDialog is an About dialog of a Headless runtime.
type HeadlessDialog struct {
	app *Headless

	Parent *HeadlessWindow
	Modal  bool
	Info   AboutInfo
}

// Dismiss closes the dialog.
func (d *HeadlessDialog) Dismiss() {
	d.app.dialogs = slices.DeleteFunc(d.app.dialogs, func(o *HeadlessDialog) bool { return o == d })
}
