// Package locale sets up the gettext text domain for translated UI strings.
package locale

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// ErrUnbound is returned when a domain is used before Bind.
var ErrUnbound = errors.New("text domain not bound")

// Catalog binds gettext text domains and activates one for the process.
// It must be set up before any user-visible string is rendered.
type Catalog struct {
	domains map[string]*domain
	active  string

	// activate installs the domain in the C library; replaced in tests.
	activate func(name, dir, encoding string) error
}

type domain struct {
	dir      string
	encoding string
}

// NewCatalog creates a Catalog backed by the system gettext.
func NewCatalog() *Catalog {
	return &Catalog{
		domains:  make(map[string]*domain),
		activate: activateGettext,
	}
}

// Bind associates a text domain with the directory holding its compiled
// message catalogs (<dir>/<lang>/LC_MESSAGES/<domain>.mo).
func (c *Catalog) Bind(name, dir string) error {
	if name == "" {
		return errors.New("bind text domain: empty domain name")
	}

	fi, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("bind text domain %q: %w", name, err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("bind text domain %q: %s is not a directory", name, dir)
	}

	c.domains[name] = &domain{dir: dir, encoding: "UTF-8"}
	slog.Debug("bound text domain", "domain", name, "dir", dir)
	return nil
}

// SetEncoding sets the output codeset for a bound domain. Only UTF-8 is
// supported since GTK renders UTF-8 exclusively.
func (c *Catalog) SetEncoding(name, encoding string) error {
	d, ok := c.domains[name]
	if !ok {
		return fmt.Errorf("set encoding for %q: %w", name, ErrUnbound)
	}

	switch strings.ToUpper(strings.ReplaceAll(encoding, "-", "")) {
	case "UTF8":
	default:
		return fmt.Errorf("set encoding for %q: unsupported codeset %q", name, encoding)
	}

	d.encoding = "UTF-8"
	return nil
}

// ActivateDomain makes name the default text domain of the process.
func (c *Catalog) ActivateDomain(name string) error {
	d, ok := c.domains[name]
	if !ok {
		return fmt.Errorf("activate text domain %q: %w", name, ErrUnbound)
	}

	if err := c.activate(name, d.dir, d.encoding); err != nil {
		return fmt.Errorf("activate text domain %q: %w", name, err)
	}

	c.active = name
	slog.Debug("activated text domain", "domain", name, "encoding", d.encoding)
	return nil
}

// Active returns the active text domain, or "" if none.
func (c *Catalog) Active() string {
	return c.active
}

// Setup runs Bind, SetEncoding and ActivateDomain in order.
func (c *Catalog) Setup(name, dir, encoding string) error {
	if err := c.Bind(name, dir); err != nil {
		return err
	}
	if err := c.SetEncoding(name, encoding); err != nil {
		return err
	}
	return c.ActivateDomain(name)
}
