//go:build !nogtk && cgo

package toolkit

import (
	"fmt"
	"log/slog"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	coreglib "github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
)

// mainWindowID is the builder object ID of the main window in a template.
const mainWindowID = "main_window"

// GTKAvailable returns true if GTK is compiled in.
// If the GTK libraries are missing at runtime the program fails to start.
// Use the 'nogtk' build tag to build without GTK.
func GTKAvailable() bool {
	return true
}

// GTK is an Application backed by a GtkApplication with libadwaita styling.
type GTK struct {
	app  *gtk.Application
	opts Options

	windows map[uintptr]*gtkWindow
}

// NewGTK creates the GtkApplication. It does not touch the display until Run.
func NewGTK(opts Options) (*GTK, error) {
	flags := gio.ApplicationFlagsNone
	if opts.NonUnique {
		flags |= gio.ApplicationNonUnique
	}
	if opts.IsService {
		flags |= gio.ApplicationIsService
	}

	app := gtk.NewApplication(opts.ID, flags)
	if app == nil {
		return nil, fmt.Errorf("create GTK application %q", opts.ID)
	}

	g := &GTK{
		app:     app,
		opts:    opts,
		windows: make(map[uintptr]*gtkWindow),
	}

	app.ConnectStartup(func() {
		// Initialize libadwaita for automatic dark/light mode support
		adw.Init()
		g.applyTheme()
	})

	return g, nil
}

func (g *GTK) applyTheme() {
	scheme := adw.ColorSchemeDefault
	switch g.opts.Theme {
	case "light":
		scheme = adw.ColorSchemeForceLight
	case "dark":
		scheme = adw.ColorSchemeForceDark
	}
	adw.StyleManagerGetDefault().SetColorScheme(scheme)
}

// AddAction registers an app-scoped GAction.
func (g *GTK) AddAction(name string, activate func()) {
	action := gio.NewSimpleAction(name, nil)
	action.ConnectActivate(func(*glib.Variant) {
		activate()
	})
	g.app.AddAction(action)
}

// SetAccelsForAction binds accelerators to "app.<name>".
func (g *GTK) SetAccelsForAction(name string, accels []string) {
	g.app.SetAccelsForAction("app."+name, accels)
}

// NewWindow builds the main window from the configured template, or in code
// when no template is configured.
func (g *GTK) NewWindow() (Window, error) {
	var win *gtk.ApplicationWindow
	if g.opts.WindowResource != "" {
		var err error
		win, err = g.windowFromResource(g.opts.WindowResource)
		if err != nil {
			return nil, err
		}
		win.SetApplication(g.app)
	} else {
		win = gtk.NewApplicationWindow(g.app)
		header := gtk.NewHeaderBar()
		win.SetTitlebar(header)
	}

	if g.opts.Title != "" {
		win.SetTitle(g.opts.Title)
	}
	win.SetDefaultSize(g.opts.Width, g.opts.Height)

	w := &gtkWindow{app: g, win: win}
	native := coreglib.InternObject(win).Native()
	g.windows[native] = w
	win.ConnectDestroy(func() {
		delete(g.windows, native)
	})

	return w, nil
}

func (g *GTK) windowFromResource(path string) (*gtk.ApplicationWindow, error) {
	// GtkBuilder aborts the process on a missing resource, so check first.
	if _, err := gio.ResourcesLookupData(path, gio.ResourceLookupFlagsNone); err != nil {
		return nil, fmt.Errorf("lookup window template %s: %w", path, err)
	}

	builder := gtk.NewBuilderFromResource(path)
	obj := builder.GetObject(mainWindowID)
	if obj == nil {
		return nil, fmt.Errorf("window template %s has no %q object", path, mainWindowID)
	}

	switch w := obj.Cast().(type) {
	case *gtk.ApplicationWindow:
		return w, nil
	case *adw.ApplicationWindow:
		return &w.ApplicationWindow, nil
	default:
		return nil, fmt.Errorf("window template %s: %q is %T, not an application window", path, mainWindowID, w)
	}
}

// ActiveWindow maps the GtkApplication's active window back to its wrapper.
func (g *GTK) ActiveWindow() Window {
	active := g.app.ActiveWindow()
	if active == nil {
		return nil
	}
	if w, ok := g.windows[coreglib.InternObject(active).Native()]; ok {
		return w
	}

	// A focused dialog stands in for the window it is transient for.
	if parent := active.TransientFor(); parent != nil {
		if w, ok := g.windows[coreglib.InternObject(parent).Native()]; ok {
			return w
		}
	}
	return nil
}

// ShowAbout presents a GtkAboutDialog transient for parent.
func (g *GTK) ShowAbout(parent Window, info AboutInfo) error {
	pw, ok := parent.(*gtkWindow)
	if !ok || pw.app != g {
		return ErrForeignWindow
	}

	dialog := gtk.NewAboutDialog()
	dialog.SetTransientFor(&pw.win.Window)
	dialog.SetModal(true)
	dialog.SetDestroyWithParent(true)
	dialog.SetProgramName(info.ProgramName)
	dialog.SetVersion(info.Version)
	dialog.SetAuthors(info.Authors)
	if info.Website != "" {
		dialog.SetWebsite(info.Website)
	}
	if info.Comments != "" {
		dialog.SetComments(info.Comments)
	}
	if info.IconName != "" {
		dialog.SetLogoIconName(info.IconName)
	}
	if info.Copyright != "" {
		dialog.SetCopyright(info.Copyright)
	}
	dialog.Present()

	slog.Debug("about dialog presented", "program", info.ProgramName)
	return nil
}

// ConnectActivate sets the handler for the GApplication activate signal.
func (g *GTK) ConnectActivate(f func()) {
	g.app.ConnectActivate(f)
}

// ConnectShutdown sets the handler for the GApplication shutdown signal.
func (g *GTK) ConnectShutdown(f func()) {
	g.app.ConnectShutdown(f)
}

// Run runs the GTK main loop (blocks until Quit is called or the last
// window is closed).
func (g *GTK) Run(args []string) int {
	return g.app.Run(args)
}

// Quit stops the GTK main loop.
func (g *GTK) Quit() {
	g.app.Quit()
}

// Post schedules f on the GTK main loop. Safe from any goroutine.
func (g *GTK) Post(f func()) {
	glib.IdleAdd(f)
}

type gtkWindow struct {
	app *GTK
	win *gtk.ApplicationWindow
}

func (w *gtkWindow) Application() Application {
	return w.app
}

func (w *gtkWindow) Present() {
	w.win.Present()
}

func (w *gtkWindow) ConnectDestroy(f func()) {
	w.win.ConnectDestroy(f)
}
