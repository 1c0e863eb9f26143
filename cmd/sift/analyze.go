package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jamesainslie/sift/pkg/sift/chart"
	"github.com/jamesainslie/sift/pkg/sift/logging"
	"github.com/jamesainslie/sift/pkg/sift/output"
	"github.com/jamesainslie/sift/pkg/sift/scanner"
)

var logger = logging.Get("cli")

// runOptions controls one analysis run.
type runOptions struct {
	Path   string
	Output string
	OutDir string

	// Template replaces the default template of the template format.
	Template string

	// Charts enables chart rendering with Bins histogram bins.
	Charts bool
	Bins   int

	// Quiet suppresses everything but the report.
	Quiet bool

	// Progress shows a live progress line on stderr.
	Progress bool
}

// analyze scans opts.Path, prints the report to stdout and writes the side
// report and charts into opts.OutDir. The path is checked before anything
// is scanned or written.
func analyze(ctx context.Context, opts runOptions, renderer chart.Renderer, stdout, stderr io.Writer) error {
	root, err := scanner.ValidateRoot(opts.Path)
	if err != nil {
		return err
	}

	formatter, err := newFormatter(opts)
	if err != nil {
		return err
	}

	// Notices follow the report on stdout unless the report is meant for
	// another program.
	notices := stdout
	if !humanReadable(opts.Output) {
		notices = stderr
	}
	if opts.Quiet {
		notices = io.Discard
	}

	fmt.Fprintf(notices, "Analyzing directory: %s\n", root)

	scanOpts := scanner.Options{Root: root}
	var progress *progressLine
	if opts.Progress {
		progress = newProgressLine(stderr)
		scanOpts.OnProgress = progress.Update
	}

	summary, err := scanner.New(scanOpts).Scan(ctx)
	if progress != nil {
		progress.Clear()
	}
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, summary); err != nil {
		return fmt.Errorf("formatting report: %w", err)
	}
	if _, err := stdout.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	if summary.Empty() {
		logger.Debug("no files found", "root", root)
	}

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	path, err := output.WriteUnknownReportFile(opts.OutDir, summary)
	if err != nil {
		return err
	}
	if path != "" {
		fmt.Fprintf(notices, "\nUnknown extensions analysis has been saved to '%s'\n", path)
	}

	if !opts.Charts {
		return nil
	}

	outcomes, err := chart.WriteAll(renderer, opts.OutDir, summary, opts.Bins)
	if err != nil {
		return err
	}

	written := 0
	for _, o := range outcomes {
		if o.Skipped != nil {
			fmt.Fprintf(stderr, "Warning: %s chart skipped: %s\n", o.Kind, skipReason(o.Skipped))
			continue
		}
		written++
	}
	if written > 0 {
		fmt.Fprintln(notices, "\nVisualizations have been saved as PNG files.")
	}
	return nil
}

func newFormatter(opts runOptions) (output.Formatter, error) {
	if opts.Output == "template" && opts.Template != "" {
		return output.NewTemplateFormatter(opts.Template), nil
	}
	formatter, err := output.Get(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("%w (available: %s)", err, joinFormats())
	}
	return formatter, nil
}

// humanReadable reports whether format is meant to be read in a terminal.
func humanReadable(format string) bool {
	switch format {
	case "plain", "pretty", "markdown":
		return true
	default:
		return false
	}
}

// skipReason drops the sentinel prefix from a skipped chart's error.
func skipReason(err error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "); i >= 0 && errors.Is(err, chart.ErrNoData) {
		return msg[i+2:]
	}
	return msg
}

func joinFormats() string {
	return strings.Join(output.Available(), ", ")
}
