package scanner

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/sift/pkg/sift/category"
	"github.com/jamesainslie/sift/pkg/sift/types"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, ".", opts.Root)
	assert.Nil(t, opts.OnProgress)
}

func TestOptionsValidate(t *testing.T) {
	opts := Options{}
	require.NoError(t, opts.Validate())
	assert.Equal(t, DefaultRoot, opts.Root)

	opts = Options{Root: "/tmp"}
	require.NoError(t, opts.Validate())
	assert.Equal(t, "/tmp", opts.Root)
}

func TestScan_Fixture(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), 100)
	writeFile(t, filepath.Join(root, "b.png"), 2048)
	writeFile(t, filepath.Join(root, "c.unknownext"), 0)

	summary, err := New(Options{Root: root}).Scan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalFiles)
	assert.Equal(t, int64(2148), summary.TotalBytes)
	assert.Equal(t, 1, summary.Count(category.Documents))
	assert.Equal(t, 1, summary.Count(category.Images))
	assert.Equal(t, 1, summary.Count(category.Other))
	require.Len(t, summary.Unknown, 1)
	assert.Equal(t, ".unknownext", summary.Unknown[0].Extension)
	assert.Equal(t, []int64{0, 100, 2048}, summary.Sizes())
}

func TestScan_Nested(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "main.go"), 10)
	writeFile(t, filepath.Join(root, "src", "pkg", "util.GO"), 20)
	writeFile(t, filepath.Join(root, "docs", "README"), 5)
	writeFile(t, filepath.Join(root, "docs", ".bashrc"), 7)
	writeFile(t, filepath.Join(root, "media", "clip.ts"), 30)
	writeFile(t, filepath.Join(root, "media", "deep", "er", "x.WEIRD"), 1)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0o755))

	summary, err := New(Options{Root: root}).Scan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 6, summary.TotalFiles)
	assert.Equal(t, int64(73), summary.TotalBytes)
	assert.Equal(t, 2, summary.Count(category.Code))
	assert.Equal(t, 2, summary.Count(category.NoExtension))
	assert.Equal(t, 1, summary.Count(category.Videos))
	assert.Equal(t, 1, summary.Count(category.Other))
	require.Len(t, summary.Unknown, 1)
	assert.Equal(t, ".weird", summary.Unknown[0].Extension)
}

func TestScan_EmptyDirectory(t *testing.T) {
	root := t.TempDir()

	summary, err := New(Options{Root: root}).Scan(context.Background())
	require.NoError(t, err)

	assert.True(t, summary.Empty())
	assert.Equal(t, int64(0), summary.TotalBytes)
	assert.Empty(t, summary.Categories)
}

func TestScan_RootNotFound(t *testing.T) {
	_, err := New(Options{Root: filepath.Join(t.TempDir(), "missing")}).Scan(context.Background())
	assert.ErrorIs(t, err, ErrRootNotFound)
}

func TestScan_RootIsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")
	writeFile(t, path, 1)

	_, err := New(Options{Root: path}).Scan(context.Background())
	assert.ErrorIs(t, err, ErrNotDirectory)
}

func TestScan_Symlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}

	root := t.TempDir()
	outside := t.TempDir()
	writeFile(t, filepath.Join(outside, "target.pdf"), 500)
	writeFile(t, filepath.Join(outside, "dir", "inner.txt"), 10)

	require.NoError(t, os.Symlink(filepath.Join(outside, "target.pdf"), filepath.Join(root, "link.pdf")))
	require.NoError(t, os.Symlink(filepath.Join(outside, "dir"), filepath.Join(root, "linkdir")))
	require.NoError(t, os.Symlink(filepath.Join(outside, "gone.txt"), filepath.Join(root, "dangling.txt")))

	summary, err := New(Options{Root: root}).Scan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.TotalFiles, "only the link to a regular file counts")
	assert.Equal(t, int64(500), summary.TotalBytes)
	assert.Equal(t, 1, summary.Count(category.Documents))
	assert.Equal(t, 1, summary.Skipped, "dangling link is skipped as vanished")
}

func TestScan_UnreadableDirectory(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "ok.txt"), 1)
	locked := filepath.Join(root, "locked")
	writeFile(t, filepath.Join(locked, "hidden.txt"), 1)
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	summary, err := New(Options{Root: root}).Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalFiles)
}

func TestScan_Cancelled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Options{Root: root}).Scan(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScan_Progress(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), 10)
	writeFile(t, filepath.Join(root, "sub", "b.txt"), 20)

	var updates []types.ScanProgress
	opts := Options{
		Root:       root,
		OnProgress: func(p types.ScanProgress) { updates = append(updates, p) },
	}

	_, err := New(opts).Scan(context.Background())
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(updates), 2, "start and finish are always reported")
	last := updates[len(updates)-1]
	assert.Equal(t, int64(2), last.FilesScanned)
	assert.Equal(t, int64(30), last.BytesScanned)
	assert.Equal(t, int64(2), last.DirsScanned)
}

func TestValidateRoot_Relative(t *testing.T) {
	abs, err := ValidateRoot(".")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(abs))
}
