//go:build nogtk || !cgo

package toolkit

// GTKAvailable returns false when GTK is not compiled in.
func GTKAvailable() bool {
	return false
}

// GTK is a stub when GTK is not available.
type GTK struct{}

// NewGTK always fails when GTK is not available.
func NewGTK(opts Options) (*GTK, error) {
	return nil, ErrUnavailable
}

// AddAction is a no-op stub.
func (g *GTK) AddAction(name string, activate func()) {}

// SetAccelsForAction is a no-op stub.
func (g *GTK) SetAccelsForAction(name string, accels []string) {}

// NewWindow fails when GTK is not available.
func (g *GTK) NewWindow() (Window, error) {
	return nil, ErrUnavailable
}

// ActiveWindow always returns nil.
func (g *GTK) ActiveWindow() Window {
	return nil
}

// ShowAbout fails when GTK is not available.
func (g *GTK) ShowAbout(parent Window, info AboutInfo) error {
	return ErrUnavailable
}

// ConnectActivate is a no-op stub.
func (g *GTK) ConnectActivate(f func()) {}

// ConnectShutdown is a no-op stub.
func (g *GTK) ConnectShutdown(f func()) {}

// Run returns 1 immediately; there is no main loop to run.
func (g *GTK) Run(args []string) int {
	return 1
}

// Quit is a no-op stub.
func (g *GTK) Quit() {}

// Post is a no-op stub.
func (g *GTK) Post(f func()) {}
