//go:build !nogtk && cgo

package resources

import (
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
)

func register(b *Bundle) error {
	res, err := gio.NewResourceFromData(glib.NewBytesWithGo(b.data))
	if err != nil {
		return err
	}
	gio.ResourcesRegister(res)
	return nil
}
