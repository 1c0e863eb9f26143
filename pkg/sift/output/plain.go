package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jamesainslie/sift/pkg/sift/analysis"
	"github.com/jamesainslie/sift/pkg/sift/types"
)

// ruleWidth is the width of the "=" rule under the report title.
const ruleWidth = 50

// PlainFormatter formats the report as plain text without styling.
// It is the default and suitable for piping and logs.
type PlainFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *PlainFormatter) Format(w *bytes.Buffer, s *analysis.Summary) error {
	w.WriteString("\nFile System Analysis Report\n")
	w.WriteString(strings.Repeat("=", ruleWidth))
	w.WriteString("\n")

	if s.Empty() {
		fmt.Fprintf(w, "No files found in %s\n", s.Root)
		writeSkipped(w, s)
		return nil
	}

	fmt.Fprintf(w, "Total number of files: %d\n", s.TotalFiles)
	fmt.Fprintf(w, "Total size: %.2f MB\n", s.TotalMegabytes())

	w.WriteString("\nFile Type Distribution:\n")
	for _, share := range s.Categories {
		fmt.Fprintf(w, "%s: %d files (%.1f%%)\n", share.Category, share.Count, share.Percent)
	}

	w.WriteString("\nFile Size Statistics:\n")
	for _, row := range statRows(s.Stats) {
		fmt.Fprintf(w, "%s: %s\n", row.label, row.value)
	}

	writeSkipped(w, s)
	return nil
}

func writeSkipped(w *bytes.Buffer, s *analysis.Summary) {
	if s.Skipped > 0 {
		fmt.Fprintf(w, "\nSkipped files: %d\n", s.Skipped)
	}
}

type statRow struct {
	label string
	value string
}

func statRows(st analysis.SizeStats) []statRow {
	return []statRow{
		{"Smallest", types.FormatSize(st.Min)},
		{"Largest", types.FormatSize(st.Max)},
		{"Mean", types.FormatSize(int64(st.Mean))},
		{"Median", types.FormatSize(st.Median)},
		{"90th percentile", types.FormatSize(st.P90)},
		{"99th percentile", types.FormatSize(st.P99)},
	}
}

func init() {
	Register("plain", func() Formatter {
		return &PlainFormatter{}
	})
}

// Ensure PlainFormatter implements Formatter.
var _ Formatter = (*PlainFormatter)(nil)
