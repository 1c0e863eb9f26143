package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/jamesainslie/sift/pkg/sift/analysis"
	"github.com/jamesainslie/sift/pkg/sift/types"
)

// TSVFormatter formats the category distribution as tab-separated values.
type TSVFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *TSVFormatter) Format(w *bytes.Buffer, s *analysis.Summary) error {
	w.WriteString("CATEGORY\tFILES\tPERCENT\n")
	for _, share := range s.Categories {
		fmt.Fprintf(w, "%s\t%d\t%.1f\n", share.Category, share.Count, share.Percent)
	}
	return nil
}

func init() {
	Register("tsv", func() Formatter {
		return &TSVFormatter{}
	})
}

// Ensure TSVFormatter implements Formatter.
var _ Formatter = (*TSVFormatter)(nil)

// CSVFormatter formats the category distribution as comma-separated values
// using encoding/csv quoting.
type CSVFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *CSVFormatter) Format(w *bytes.Buffer, s *analysis.Summary) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"CATEGORY", "FILES", "PERCENT"}); err != nil {
		return err
	}
	for _, share := range s.Categories {
		row := []string{
			share.Category.String(),
			strconv.Itoa(share.Count),
			strconv.FormatFloat(share.Percent, 'f', 1, 64),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func init() {
	Register("csv", func() Formatter {
		return &CSVFormatter{}
	})
}

// Ensure CSVFormatter implements Formatter.
var _ Formatter = (*CSVFormatter)(nil)

// MarkdownFormatter formats the category distribution as a GitHub-flavored
// Markdown table followed by the unknown extensions, if any.
type MarkdownFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *MarkdownFormatter) Format(w *bytes.Buffer, s *analysis.Summary) error {
	fmt.Fprintf(w, "## %s\n\n", escapeMarkdownPipe(s.Root))

	if s.Empty() {
		w.WriteString("No files found.\n")
		return nil
	}

	fmt.Fprintf(w, "%d files, %s\n\n", s.TotalFiles, types.FormatSize(s.TotalBytes))

	w.WriteString("| CATEGORY | FILES | PERCENT |\n")
	w.WriteString("|----------|------:|--------:|\n")
	for _, share := range s.Categories {
		fmt.Fprintf(w, "| %s | %d | %.1f%% |\n", share.Category, share.Count, share.Percent)
	}

	if len(s.Unknown) > 0 {
		w.WriteString("\n| EXTENSION | FILES | PERCENT |\n")
		w.WriteString("|-----------|------:|--------:|\n")
		for _, u := range s.Unknown {
			fmt.Fprintf(w, "| %s | %d | %.1f%% |\n", escapeMarkdownPipe(u.Extension), u.Count, u.Percent)
		}
	}
	return nil
}

// escapeMarkdownPipe escapes pipe characters in a string for Markdown tables.
func escapeMarkdownPipe(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func init() {
	Register("markdown", func() Formatter {
		return &MarkdownFormatter{}
	})
}

// Ensure MarkdownFormatter implements Formatter.
var _ Formatter = (*MarkdownFormatter)(nil)
