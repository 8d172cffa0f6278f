package dirsize

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"
	"github.com/charmbracelet/log"
)

// DirectorySize returns the total size in bytes of the subtree rooted at path.
//
// Files and other non-directory objects count with their own size; symbolic
// links are never followed, so a link contributes the size of the link itself.
// Directories contribute only their contents. Objects that cannot be read count
// as zero, and a path that cannot be read at all yields 0.
func DirectorySize(path string) int64 {
	size, err := sizeOf(context.Background(), discard(), path)
	if err != nil {
		return 0
	}

	return size
}

// sizeOf computes the size of path. It fails only when path itself cannot be
// stat'ed or, for a directory, listed; failures deeper in the tree are logged
// and absorbed. Recursion below path runs on a single fastwalk worker.
func sizeOf(ctx context.Context, logger *log.Logger, path string) (int64, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return 0, err
	}

	if !info.IsDir() {
		return info.Size(), nil
	}

	var (
		total   atomic.Int64
		rootErr error
		root    = filepath.Clean(path)
	)

	conf := &fastwalk.Config{
		Follow:     false, // Don't follow symlinks
		NumWorkers: 1,
	}

	//nolint:varnamelen // d is standard for DirEntry
	walkErr := fastwalk.Walk(conf, path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if filepath.Clean(p) == root {
				rootErr = err

				return nil
			}

			logEntryError(logger, p, err)

			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if d.IsDir() {
			return nil
		}

		fileInfo, err := d.Info()
		if err != nil {
			logEntryError(logger, p, err)

			return nil
		}

		total.Add(fileInfo.Size())

		return nil
	})
	if walkErr != nil {
		return total.Load(), fmt.Errorf("walking %q: %w", path, walkErr)
	}

	if rootErr != nil {
		return 0, fmt.Errorf("reading directory %q: %w", path, rootErr)
	}

	return total.Load(), nil
}

// discard returns a logger that drops everything.
func discard() *log.Logger {
	return log.New(io.Discard)
}
