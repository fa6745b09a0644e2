//go:build !cgo

package locale

import "log/slog"

// activateGettext is a no-op without cgo; strings stay untranslated.
func activateGettext(name, dir, encoding string) error {
	slog.Debug("gettext unavailable, skipping text domain", "domain", name, "dir", dir, "encoding", encoding)
	return nil
}
