package dirsize

import (
	"time"

	"github.com/charmbracelet/log"
)

// DefaultWorkers is the number of children sized concurrently when Options.Workers is unset.
const DefaultWorkers = 8

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// Entry is one child of a scanned directory.
type Entry struct {
	// Name is the base name of the child.
	Name string `json:"name"`
	// Size is the total size in bytes, recursive for directories.
	Size int64 `json:"size"`
	// IsDir reports whether the child is a directory (symlinks never are).
	IsDir bool `json:"is_dir"`
}

// Result holds the outcome of a single scan.
type Result struct {
	// Path is the scanned directory as given by the caller.
	Path string `json:"path"`
	// Entries are the children at or above MinSize, largest first.
	Entries []Entry `json:"entries"`
	// SkippedSize is the cumulative size of the children below MinSize.
	SkippedSize int64 `json:"skipped_size"`
	// SkippedCount is the number of children below MinSize.
	SkippedCount int `json:"skipped_count"`
	// Failed is the number of children that could not be sized and were dropped.
	Failed int `json:"failed"`
	// MinSize is the threshold the scan was run with.
	MinSize int64 `json:"min_size"`
	// Elapsed is the total time taken by the scan.
	Elapsed time.Duration `json:"elapsed"`
}

// Total returns the size of all children that were sized successfully.
func (r *Result) Total() int64 {
	total := r.SkippedSize
	for _, e := range r.Entries {
		total += e.Size
	}

	return total
}

// Options configures a Scanner.
type Options struct {
	// Workers is the number of children sized concurrently (0 = DefaultWorkers).
	Workers int
	// Logger receives diagnostics about absorbed failures. Nil discards them.
	Logger *log.Logger
	// Progress is called periodically while a scan runs. Nil disables reporting.
	Progress ProgressFunc
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
}
