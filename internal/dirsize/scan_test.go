package dirsize_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/dirsize/internal/dirsize"
)

// createScenario builds:
//
//	root/
//	  a.txt    (10 bytes)
//	  b.txt    (2000 bytes)
//	  sub/
//	    c.txt  (50 bytes)
func createScenario(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), 10)
	writeFile(t, filepath.Join(root, "b.txt"), 2000)
	writeFile(t, filepath.Join(root, "sub", "c.txt"), 50)

	return root
}

func TestScanDirectory(t *testing.T) {
	t.Parallel()

	t.Run("zero threshold shows everything", func(t *testing.T) {
		t.Parallel()

		root := createScenario(t)

		result, err := dirsize.ScanDirectory(root, 0)
		require.NoError(t, err)

		assert.Equal(t, []dirsize.Entry{
			{Name: "b.txt", Size: 2000, IsDir: false},
			{Name: "sub", Size: 50, IsDir: true},
			{Name: "a.txt", Size: 10, IsDir: false},
		}, result.Entries)
		assert.Equal(t, int64(0), result.SkippedSize)
		assert.Equal(t, 0, result.SkippedCount)
		assert.Equal(t, 0, result.Failed)
		assert.Equal(t, int64(2060), result.Total())
		assert.Equal(t, root, result.Path)
	})

	t.Run("threshold rolls small children into skipped total", func(t *testing.T) {
		t.Parallel()

		root := createScenario(t)

		result, err := dirsize.ScanDirectory(root, 100)
		require.NoError(t, err)

		assert.Equal(t, []dirsize.Entry{{Name: "b.txt", Size: 2000}}, result.Entries)
		assert.Equal(t, int64(60), result.SkippedSize)
		assert.Equal(t, 2, result.SkippedCount)
		assert.Equal(t, int64(100), result.MinSize)
	})

	t.Run("threshold is inclusive", func(t *testing.T) {
		t.Parallel()

		root := createScenario(t)

		result, err := dirsize.ScanDirectory(root, 50)
		require.NoError(t, err)

		require.Len(t, result.Entries, 2)
		assert.Equal(t, "sub", result.Entries[1].Name)
		assert.Equal(t, int64(10), result.SkippedSize)
	})

	t.Run("empty file is visible at zero threshold", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "empty"), 0)

		result, err := dirsize.ScanDirectory(root, 0)
		require.NoError(t, err)

		assert.Equal(t, []dirsize.Entry{{Name: "empty", Size: 0}}, result.Entries)
	})

	t.Run("negative threshold behaves like zero", func(t *testing.T) {
		t.Parallel()

		root := createScenario(t)

		result, err := dirsize.ScanDirectory(root, -1)
		require.NoError(t, err)

		assert.Len(t, result.Entries, 3)
		assert.Equal(t, int64(0), result.MinSize)
	})

	t.Run("empty directory", func(t *testing.T) {
		t.Parallel()

		result, err := dirsize.ScanDirectory(t.TempDir(), 0)
		require.NoError(t, err)

		assert.NotNil(t, result.Entries)
		assert.Empty(t, result.Entries)
		assert.Equal(t, int64(0), result.Total())
	})

	t.Run("missing root is unreadable", func(t *testing.T) {
		t.Parallel()

		result, err := dirsize.ScanDirectory(filepath.Join(t.TempDir(), "missing"), 0)
		require.Error(t, err)

		assert.ErrorIs(t, err, dirsize.ErrPathUnreadable)
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.Nil(t, result)
	})

	t.Run("file root is unreadable", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "file.txt")
		writeFile(t, path, 1)

		result, err := dirsize.ScanDirectory(path, 0)
		require.ErrorIs(t, err, dirsize.ErrPathUnreadable)
		assert.Nil(t, result)
	})

	t.Run("permission denied root is unreadable", func(t *testing.T) {
		t.Parallel()

		root := createScenario(t)
		lockDir(t, root)

		_, err := dirsize.ScanDirectory(root, 0)
		require.ErrorIs(t, err, dirsize.ErrPathUnreadable)
		assert.ErrorIs(t, err, os.ErrPermission)
	})

	t.Run("unreadable child is dropped", func(t *testing.T) {
		t.Parallel()

		root := createScenario(t)
		writeFile(t, filepath.Join(root, "locked", "secret.bin"), 4096)
		lockDir(t, filepath.Join(root, "locked"))

		result, err := dirsize.ScanDirectory(root, 0)
		require.NoError(t, err)

		assert.Equal(t, []dirsize.Entry{
			{Name: "b.txt", Size: 2000, IsDir: false},
			{Name: "sub", Size: 50, IsDir: true},
			{Name: "a.txt", Size: 10, IsDir: false},
		}, result.Entries)
		assert.Equal(t, int64(0), result.SkippedSize)
		assert.Equal(t, 1, result.Failed)
	})
}

func TestScannerStableOrder(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a"), 5)
	writeFile(t, filepath.Join(root, "b"), 1)
	writeFile(t, filepath.Join(root, "c"), 5)
	writeFile(t, filepath.Join(root, "d"), 3)

	scanner := dirsize.New(dirsize.Options{Workers: 4})

	for range 20 {
		result, err := scanner.Scan(context.Background(), root, 0)
		require.NoError(t, err)

		names := make([]string, 0, len(result.Entries))
		for _, e := range result.Entries {
			names = append(names, e.Name)
		}

		require.Equal(t, []string{"a", "c", "d", "b"}, names)
	}
}

func TestScannerWideDirectory(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	var want int64

	for i := range 64 {
		name := filepath.Join(root, "dir"+string(rune('A'+i%26))+string(rune('a'+i/26)), "f")
		writeFile(t, name, i+1)
		want += int64(i + 1)
	}

	for _, workers := range []int{1, 3, 8, 100} {
		result, err := dirsize.New(dirsize.Options{Workers: workers}).Scan(context.Background(), root, 32)
		require.NoError(t, err)

		assert.Equal(t, want, result.Total(), "workers=%d", workers)
		assert.Len(t, result.Entries, 33, "workers=%d", workers)
		assert.Equal(t, 31, result.SkippedCount, "workers=%d", workers)
		assert.Equal(t, int64(31*32/2), result.SkippedSize, "workers=%d", workers)

		for i := 1; i < len(result.Entries); i++ {
			assert.GreaterOrEqual(t, result.Entries[i-1].Size, result.Entries[i].Size)
		}
	}
}

func TestZeroValueScanner(t *testing.T) {
	t.Parallel()

	root := createScenario(t)

	var scanner dirsize.Scanner

	result, err := scanner.Scan(context.Background(), root, 100)
	require.NoError(t, err)

	assert.Equal(t, []dirsize.Entry{{Name: "b.txt", Size: 2000}}, result.Entries)
	assert.Equal(t, int64(60), result.SkippedSize)
}

func TestScannerCancelled(t *testing.T) {
	t.Parallel()

	root := createScenario(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := dirsize.New(dirsize.Options{}).Scan(ctx, root, 0)
	require.Error(t, err)

	assert.True(t, errors.Is(err, context.Canceled))
	assert.Nil(t, result)
}

func TestScannerLogsDroppedChildren(t *testing.T) {
	t.Parallel()

	root := createScenario(t)
	writeFile(t, filepath.Join(root, "locked", "secret.bin"), 1)
	lockDir(t, filepath.Join(root, "locked"))

	var buf bytes.Buffer

	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	_, err := dirsize.New(dirsize.Options{Logger: logger}).Scan(context.Background(), root, 0)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "skipping unreadable entry")
	assert.Contains(t, buf.String(), "locked")
}
