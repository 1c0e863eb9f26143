package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/sift/pkg/sift/analysis"
)

func TestPlainFormatter_Fixture(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&PlainFormatter{}).Format(&buf, fixtureSummary()))

	want := "\nFile System Analysis Report\n" +
		strings.Repeat("=", 50) + "\n" +
		"Total number of files: 3\n" +
		"Total size: 0.00 MB\n" +
		"\nFile Type Distribution:\n" +
		"Documents: 1 files (33.3%)\n" +
		"Images: 1 files (33.3%)\n" +
		"Other: 1 files (33.3%)\n" +
		"\nFile Size Statistics:\n" +
		"Smallest: 0 B\n" +
		"Largest: 2.0 KiB\n" +
		"Mean: 716 B\n" +
		"Median: 100 B\n" +
		"90th percentile: 2.0 KiB\n" +
		"99th percentile: 2.0 KiB\n"
	assert.Equal(t, want, buf.String())
}

func TestPlainFormatter_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&PlainFormatter{}).Format(&buf, emptySummary()))

	out := buf.String()
	assert.Contains(t, out, "No files found in /empty")
	assert.NotContains(t, out, "%")
	assert.NotContains(t, out, "Total number of files")
}

func TestPlainFormatter_TotalSizeInMB(t *testing.T) {
	s := analysis.NewState("/data")
	s.Record(3*1024*1024+512*1024, ".iso")
	var buf bytes.Buffer
	require.NoError(t, (&PlainFormatter{}).Format(&buf, s.Summary()))

	assert.Contains(t, buf.String(), "Total size: 3.50 MB\n")
	assert.Contains(t, buf.String(), "Games: 1 files (100.0%)\n")
}

func TestPlainFormatter_Skipped(t *testing.T) {
	s := analysis.NewState("/data")
	s.Record(1, ".txt")
	s.Skip()
	var buf bytes.Buffer
	require.NoError(t, (&PlainFormatter{}).Format(&buf, s.Summary()))

	assert.True(t, strings.HasSuffix(buf.String(), "\nSkipped files: 1\n"))
}

func TestPlainFormatter_CategoryOrder(t *testing.T) {
	s := analysis.NewState("/data")
	for _, ext := range []string{"", ".zzz", ".go", ".mp3", ".pdf"} {
		s.Record(1, ext)
	}
	var buf bytes.Buffer
	require.NoError(t, (&PlainFormatter{}).Format(&buf, s.Summary()))

	out := buf.String()
	order := []string{"Documents:", "Audio:", "Code:", "Other:", "No Extension:"}
	last := -1
	for _, name := range order {
		idx := strings.Index(out, name)
		require.NotEqual(t, -1, idx, name)
		assert.Greater(t, idx, last, name)
		last = idx
	}
}
