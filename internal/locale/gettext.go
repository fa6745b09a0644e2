//go:build cgo

package locale

import (
	"fmt"

	"github.com/pojntfx/go-gettext/pkg/i18n"
)

// activateGettext binds the domain and makes it the process default.
// InitI18n always binds the UTF-8 codeset, so any other encoding is refused.
func activateGettext(name, dir, encoding string) error {
	if encoding != "UTF-8" {
		return fmt.Errorf("unsupported codeset %q", encoding)
	}
	return i18n.InitI18n(name, dir)
}
