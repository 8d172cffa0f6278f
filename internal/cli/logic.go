package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/idelchi/dirsize/internal/config"
	"github.com/idelchi/dirsize/internal/dirsize"
)

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && isatty.IsTerminal(f.Fd())
}

// newLogger creates the logger used for diagnostics on stderr.
func newLogger(w io.Writer, debug bool) *log.Logger {
	level := log.WarnLevel
	if debug {
		level = log.DebugLevel
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: debug,
		Prefix:          "dirsize",
	})
}

func logic(ctx context.Context, cfg *config.Config, path string, stdout, stderr io.Writer) error {
	minSize, err := cfg.MinBytes()
	if err != nil {
		return err
	}

	logger := newLogger(stderr, cfg.Debug)

	enableProgress := cfg.Output == "table" && !cfg.Debug && isTerminal(stderr)

	opts := dirsize.Options{
		Workers: cfg.Workers,
		Logger:  logger,
	}

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(stderr, "\033[?25l")
		defer fmt.Fprint(stderr, "\033[?25h")

		opts.Progress = func(done, total int, bytes int64) {
			msg := fmt.Sprintf("Scanning… %d/%d entries, %s",
				done, total, humanize.IBytes(uint64(bytes))) //nolint:gosec // Bytes is always positive
			fmt.Fprintf(stderr, "\r\033[2K%s\r", msg)
		}
	}

	result, err := dirsize.New(opts).Scan(ctx, path, minSize)

	// Clear the status line
	if enableProgress {
		fmt.Fprint(stderr, "\r\033[2K\r")
	}

	if err != nil {
		return err
	}

	switch cfg.Output {
	case "json":
		return PrintJSON(result, stdout)
	case "plain":
		return PrintPlain(result, stdout)
	default:
		return PrintTable(result, stdout)
	}
}
