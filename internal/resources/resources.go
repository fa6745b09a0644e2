// Package resources loads the compiled GResource bundle that holds the main
// window template and registers it with the process.
package resources

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"sync"
)

// gvdbSignature starts every compiled .gresource file.
var gvdbSignature = []byte("GVariant")

// ErrInvalidBundle is returned for data that is not a compiled resource bundle.
var ErrInvalidBundle = errors.New("not a GResource bundle")

// Bundle is a compiled resource bundle loaded into memory.
type Bundle struct {
	Name string
	data []byte
}

// Open reads and validates the bundle at path.
func Open(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read resource bundle: %w", err)
	}
	return FromData(path, data)
}

// FromData validates an in-memory bundle, e.g. one embedded with go:embed.
func FromData(name string, data []byte) (*Bundle, error) {
	if !bytes.HasPrefix(data, gvdbSignature) {
		return nil, fmt.Errorf("load resource bundle %s: %w", name, ErrInvalidBundle)
	}
	return &Bundle{Name: name, data: data}, nil
}

// Size returns the bundle size in bytes.
func (b *Bundle) Size() int {
	return len(b.data)
}

var (
	mu         sync.Mutex
	registered []string

	// registerBundle hands the bundle to the resource system; replaced in tests.
	registerBundle = register
)

// Register makes the bundle's resources available to the process. It must
// succeed before the main window is constructed.
func Register(b *Bundle) error {
	mu.Lock()
	defer mu.Unlock()

	if slices.Contains(registered, b.Name) {
		return nil
	}
	if err := registerBundle(b); err != nil {
		return fmt.Errorf("register resource bundle %s: %w", b.Name, err)
	}

	registered = append(registered, b.Name)
	slog.Debug("registered resource bundle", "name", b.Name, "size", b.Size())
	return nil
}

// Registered returns the names of the registered bundles.
func Registered() []string {
	mu.Lock()
	defer mu.Unlock()
	return slices.Clone(registered)
}
