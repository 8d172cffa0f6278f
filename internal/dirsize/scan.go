package dirsize

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// sizeFunc computes the size of one path, see sizeOf.
type sizeFunc func(ctx context.Context, logger *log.Logger, path string) (int64, error)

// Scanner sizes the children of a directory with a bounded pool of workers.
// A Scanner holds no per-scan state and may be reused concurrently.
// The zero value scans with default options.
type Scanner struct {
	opts   Options
	sizeOf sizeFunc
}

// New creates a Scanner, applying defaults for unset options.
func New(opts Options) *Scanner {
	return &Scanner{opts: withDefaults(opts), sizeOf: sizeOf}
}

// withDefaults fills in unset options.
func withDefaults(opts Options) Options {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}

	if opts.ProgressInterval <= 0 {
		opts.ProgressInterval = DefaultProgressInterval
	}

	if opts.Logger == nil {
		opts.Logger = discard()
	}

	return opts
}

// ScanDirectory scans rootPath with default options.
// See Scanner.Scan for the semantics.
func ScanDirectory(rootPath string, minSizeBytes int64) (*Result, error) {
	return New(Options{}).Scan(context.Background(), rootPath, minSizeBytes)
}

// Scan lists the immediate children of rootPath and sizes each of them.
//
// Children of at least minSizeBytes are returned as entries sorted by size,
// largest first, with ties kept in listing order. Smaller children only add to
// the skipped total. A child that cannot be sized is left out of both.
//
// The only error besides cancellation of ctx is ErrPathUnreadable, returned
// when rootPath cannot be listed.
func (s *Scanner) Scan(ctx context.Context, rootPath string, minSizeBytes int64) (*Result, error) {
	start := time.Now()

	opts := withDefaults(s.opts)
	logger := opts.Logger

	size := s.sizeOf
	if size == nil {
		size = sizeOf
	}

	if minSizeBytes < 0 {
		minSizeBytes = 0
	}

	children, err := os.ReadDir(rootPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrPathUnreadable, rootPath, err)
	}

	logger.Debug("scanning", "path", rootPath, "children", len(children), "min_size", minSizeBytes)

	// Create child context to ensure progress reporter cleanup
	reporterCtx, stopReporter := context.WithCancel(ctx)
	defer stopReporter()

	prog := &progress{total: len(children)}
	reporterDone := startProgressReporter(reporterCtx, prog, opts.Progress, opts.ProgressInterval)

	results := make(chan sized)

	go func() {
		var group errgroup.Group

		group.SetLimit(opts.Workers)

		for i, child := range children {
			group.Go(func() error {
				results <- sizeChild(ctx, logger, size, rootPath, i, child)

				return nil
			})
		}

		_ = group.Wait()

		close(results)
	}()

	collector := newCollector(len(children), minSizeBytes)

	for r := range results {
		collector.add(r)
		prog.record(r.entry.Size)
	}

	// No progress callback may run once Scan has returned.
	stopReporter()
	<-reporterDone

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{
		Path:         rootPath,
		Entries:      collector.finalize(),
		SkippedSize:  collector.skippedSize,
		SkippedCount: collector.skippedCount,
		Failed:       collector.failed,
		MinSize:      minSizeBytes,
		Elapsed:      time.Since(start),
	}

	logger.Debug("scan finished",
		"path", rootPath,
		"visible", len(result.Entries),
		"skipped", result.SkippedCount,
		"failed", result.Failed,
		"elapsed", result.Elapsed,
	)

	return result, nil
}

// sizeChild computes the size of one child and reports it with its listing index.
func sizeChild(ctx context.Context, logger *log.Logger, size sizeFunc, root string, index int, child fs.DirEntry) sized {
	path := filepath.Join(root, child.Name())

	if err := ctx.Err(); err != nil {
		return sized{index: index, err: err}
	}

	n, err := size(ctx, logger, path)
	if err != nil {
		if ctx.Err() == nil {
			logEntryError(logger, path, err)
		}

		return sized{index: index, err: err}
	}

	return sized{
		index: index,
		entry: Entry{
			Name:  child.Name(),
			Size:  n,
			IsDir: child.IsDir(),
		},
	}
}
