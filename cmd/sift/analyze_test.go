package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/sift/pkg/sift/chart"
	"github.com/jamesainslie/sift/pkg/sift/output"
	"github.com/jamesainslie/sift/pkg/sift/scanner"
)

func plainOptions(path, outDir string) runOptions {
	return runOptions{
		Path:   path,
		Output: "plain",
		OutDir: outDir,
		Charts: true,
		Bins:   50,
	}
}

func TestAnalyze_Fixture(t *testing.T) {
	root := fixtureTree(t)
	outDir := t.TempDir()
	r := &stubRenderer{}
	var stdout, stderr bytes.Buffer

	err := analyze(context.Background(), plainOptions(root, outDir), r, &stdout, &stderr)
	require.NoError(t, err)

	got := stdout.String()
	assert.Contains(t, got, "Analyzing directory: "+root)
	assert.Contains(t, got, "Total number of files: 3\n")
	assert.Contains(t, got, "Total size: 0.00 MB\n")
	assert.Contains(t, got, "Documents: 1 files (33.3%)\n")
	assert.Contains(t, got, "Images: 1 files (33.3%)\n")
	assert.Contains(t, got, "Other: 1 files (33.3%)\n")
	assert.Contains(t, got, "Unknown extensions analysis has been saved to '"+filepath.Join(outDir, output.UnknownReportFile)+"'")
	assert.True(t, strings.HasSuffix(got, "\nVisualizations have been saved as PNG files.\n"))
	assert.Empty(t, stderr.String())

	assert.ElementsMatch(t, []string{
		output.UnknownReportFile,
		chart.KindHistogram.Filename(),
		chart.KindTypeDistribution.Filename(),
		chart.KindCDF.Filename(),
	}, listDir(t, outDir))

	report, err := os.ReadFile(filepath.Join(outDir, output.UnknownReportFile))
	require.NoError(t, err)
	assert.Equal(t, "Files with Unknown Extensions:\n"+strings.Repeat("-", 30)+"\n.unknownext: 1 files (33.3%)\n", string(report))

	assert.Equal(t, chart.Kinds(), r.calls)
}

func TestAnalyze_MissingPath(t *testing.T) {
	outDir := t.TempDir()
	missing := filepath.Join(t.TempDir(), "does-not-exist")
	var stdout, stderr bytes.Buffer

	err := analyze(context.Background(), plainOptions(missing, outDir), &stubRenderer{}, &stdout, &stderr)
	require.ErrorIs(t, err, scanner.ErrRootNotFound)
	assert.Contains(t, err.Error(), "path does not exist")

	assert.Empty(t, stdout.String())
	assert.Empty(t, listDir(t, outDir))
}

func TestAnalyze_UnknownFormat(t *testing.T) {
	opts := plainOptions(fixtureTree(t), t.TempDir())
	opts.Output = "xml"
	var stdout, stderr bytes.Buffer

	err := analyze(context.Background(), opts, &stubRenderer{}, &stdout, &stderr)
	require.ErrorIs(t, err, output.ErrUnknownFormatter)
	assert.Contains(t, err.Error(), "plain")
	assert.Empty(t, stdout.String())
}

func TestAnalyze_EmptyDirectory(t *testing.T) {
	outDir := t.TempDir()
	r := &stubRenderer{}
	var stdout, stderr bytes.Buffer

	err := analyze(context.Background(), plainOptions(t.TempDir(), outDir), r, &stdout, &stderr)
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "No files found in ")
	assert.NotContains(t, stdout.String(), "Visualizations have been saved")
	assert.Equal(t, 3, strings.Count(stderr.String(), "Warning: "))
	assert.Contains(t, stderr.String(), "Warning: histogram chart skipped: no positive file sizes\n")
	assert.Empty(t, r.calls)
	assert.Empty(t, listDir(t, outDir))
}

func TestAnalyze_ZeroSizedFilesSkipHistogram(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]int{"a.txt": 0, "b.go": 0})
	outDir := t.TempDir()
	r := &stubRenderer{}
	var stdout, stderr bytes.Buffer

	require.NoError(t, analyze(context.Background(), plainOptions(root, outDir), r, &stdout, &stderr))

	assert.Equal(t, "Warning: histogram chart skipped: no positive file sizes\n", stderr.String())
	assert.Equal(t, []chart.Kind{chart.KindTypeDistribution, chart.KindCDF}, r.calls)
	assert.Contains(t, stdout.String(), "Visualizations have been saved as PNG files.")
	assert.NoFileExists(t, filepath.Join(outDir, output.UnknownReportFile))
}

func TestAnalyze_NoCharts(t *testing.T) {
	outDir := t.TempDir()
	opts := plainOptions(fixtureTree(t), outDir)
	opts.Charts = false
	r := &stubRenderer{}
	var stdout, stderr bytes.Buffer

	require.NoError(t, analyze(context.Background(), opts, r, &stdout, &stderr))

	assert.Empty(t, r.calls)
	assert.Equal(t, []string{output.UnknownReportFile}, listDir(t, outDir))
	assert.NotContains(t, stdout.String(), "Visualizations")
}

func TestAnalyze_JSONKeepsStdoutClean(t *testing.T) {
	opts := plainOptions(fixtureTree(t), t.TempDir())
	opts.Output = "json"
	var stdout, stderr bytes.Buffer

	require.NoError(t, analyze(context.Background(), opts, &stubRenderer{}, &stdout, &stderr))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))
	assert.Contains(t, doc, "totals")
	assert.Contains(t, stderr.String(), "Analyzing directory:")
	assert.Contains(t, stderr.String(), "Visualizations have been saved")
}

func TestAnalyze_Quiet(t *testing.T) {
	outDir := t.TempDir()
	opts := plainOptions(fixtureTree(t), outDir)
	opts.Quiet = true
	var stdout, stderr bytes.Buffer

	require.NoError(t, analyze(context.Background(), opts, &stubRenderer{}, &stdout, &stderr))

	assert.NotContains(t, stdout.String(), "Analyzing directory")
	assert.NotContains(t, stdout.String(), "Visualizations")
	assert.Contains(t, stdout.String(), "Total number of files: 3")
	assert.Len(t, listDir(t, outDir), 4)
}

func TestAnalyze_CreatesOutDir(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "charts", "today")
	var stdout, stderr bytes.Buffer

	require.NoError(t, analyze(context.Background(), plainOptions(fixtureTree(t), outDir), &stubRenderer{}, &stdout, &stderr))
	assert.DirExists(t, outDir)
	assert.FileExists(t, filepath.Join(outDir, chart.KindCDF.Filename()))
}

func TestAnalyze_Progress(t *testing.T) {
	opts := plainOptions(fixtureTree(t), t.TempDir())
	opts.Progress = true
	var stdout, stderr bytes.Buffer

	require.NoError(t, analyze(context.Background(), opts, &stubRenderer{}, &stdout, &stderr))

	assert.Contains(t, stderr.String(), "Scanning... ")
	assert.True(t, strings.HasSuffix(stderr.String(), "\r"), "progress line is cleared")
	assert.NotContains(t, stdout.String(), "Scanning...")
}

func TestAnalyze_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var stdout, stderr bytes.Buffer

	err := analyze(ctx, plainOptions(fixtureTree(t), t.TempDir()), &stubRenderer{}, &stdout, &stderr)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotContains(t, stdout.String(), "File System Analysis Report")
}

func TestSkipReason(t *testing.T) {
	noData := fmt.Errorf("cdf: %w: no files", chart.ErrNoData)
	assert.Equal(t, "no files", skipReason(noData))

	other := errors.New("disk full: try again")
	assert.Equal(t, "disk full: try again", skipReason(other))
}

func TestAnalyze_CustomTemplate(t *testing.T) {
	opts := plainOptions(fixtureTree(t), t.TempDir())
	opts.Output = "template"
	opts.Template = "{{.TotalFiles}} files\n"
	opts.Charts = false
	var stdout, stderr bytes.Buffer

	require.NoError(t, analyze(context.Background(), opts, &stubRenderer{}, &stdout, &stderr))
	assert.Equal(t, "3 files\n", stdout.String())
	assert.Contains(t, stderr.String(), "Analyzing directory:")
}

func TestHumanReadable(t *testing.T) {
	for _, f := range []string{"plain", "pretty", "markdown"} {
		assert.True(t, humanReadable(f), f)
	}
	for _, f := range []string{"json", "yaml", "csv", "tsv", "template"} {
		assert.False(t, humanReadable(f), f)
	}
}
