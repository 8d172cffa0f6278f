package dirsize

import (
	"errors"
	"io/fs"

	"github.com/charmbracelet/log"
)

// ErrPathUnreadable is returned when the directory given to a scan cannot be listed.
var ErrPathUnreadable = errors.New("path unreadable")

// tolerated reports whether err is an expected per-entry failure:
// the entry vanished during the walk or access to it was denied.
func tolerated(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission)
}

// logEntryError records an absorbed per-entry failure.
// Expected failures go to debug, anything else is surfaced as a warning.
func logEntryError(logger *log.Logger, path string, err error) {
	if tolerated(err) {
		logger.Debug("skipping unreadable entry", "path", path, "err", err)

		return
	}

	logger.Warn("unexpected error while sizing entry", "path", path, "err", err)
}
