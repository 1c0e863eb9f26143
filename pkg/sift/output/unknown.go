package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jamesainslie/sift/pkg/sift/analysis"
)

// UnknownReportFile is the file name of the unknown-extension report.
const UnknownReportFile = "other_category_analysis.txt"

// WriteUnknownReport writes the unknown-extension table: a header, a rule,
// then one line per extension, most frequent first.
func WriteUnknownReport(w io.Writer, s *analysis.Summary) error {
	var sb strings.Builder
	sb.WriteString("Files with Unknown Extensions:\n")
	sb.WriteString(strings.Repeat("-", 30))
	sb.WriteString("\n")
	for _, u := range s.Unknown {
		fmt.Fprintf(&sb, "%s: %d files (%.1f%%)\n", u.Extension, u.Count, u.Percent)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteUnknownReportFile writes the unknown-extension report into dir when
// the summary has unknown extensions. It returns the path written, or ""
// when there was nothing to write.
func WriteUnknownReportFile(dir string, s *analysis.Summary) (path string, err error) {
	if len(s.Unknown) == 0 {
		return "", nil
	}

	path = filepath.Join(dir, UnknownReportFile)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", UnknownReportFile, err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	if err := WriteUnknownReport(f, s); err != nil {
		return "", fmt.Errorf("writing %s: %w", UnknownReportFile, err)
	}
	logger.Debug("wrote unknown extension report", "path", path, "extensions", len(s.Unknown))
	return path, nil
}
