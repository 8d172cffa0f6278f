package dirsize

import (
	"cmp"
	"slices"
)

// sized is what a worker reports for one child of the scanned directory.
type sized struct {
	// index is the position of the child in directory listing order.
	index int
	entry Entry
	err   error
}

// collector classifies sized children against the threshold.
// It is fed from a single goroutine draining the workers' channel, so it needs no locking.
type collector struct {
	minSize      int64
	visible      []*Entry // Indexed by listing order
	skippedSize  int64
	skippedCount int
	failed       int
}

// newCollector creates a collector for a directory with n children.
func newCollector(n int, minSize int64) *collector {
	return &collector{
		minSize: minSize,
		visible: make([]*Entry, n),
	}
}

// add records the outcome for one child. Children that failed to size are
// dropped from both the visible list and the skipped total.
func (c *collector) add(r sized) {
	if r.err != nil {
		c.failed++

		return
	}

	if r.entry.Size >= c.minSize {
		entry := r.entry
		c.visible[r.index] = &entry

		return
	}

	c.skippedSize += r.entry.Size
	c.skippedCount++
}

// finalize returns the visible entries largest first.
// Entries of equal size keep their listing order.
func (c *collector) finalize() []Entry {
	entries := make([]Entry, 0, len(c.visible))

	for _, e := range c.visible {
		if e != nil {
			entries = append(entries, *e)
		}
	}

	slices.SortStableFunc(entries, func(a, b Entry) int {
		return cmp.Compare(b.Size, a.Size)
	})

	return entries
}
