//go:build nogtk || !cgo

package resources

// register only records the bundle; there is no resource system to hand it to.
func register(b *Bundle) error {
	return nil
}
