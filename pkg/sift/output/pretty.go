package output

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jamesainslie/sift/pkg/sift/analysis"
)

// barWidth is the width in cells of a 100% share bar.
const barWidth = 30

// PrettyFormatter formats output with colors and styling using lipgloss.
// It produces a visually appealing output suitable for terminal display.
type PrettyFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *PrettyFormatter) Format(w *bytes.Buffer, s *analysis.Summary) error {
	w.WriteString(f.formatHeader(s))
	w.WriteString("\n")

	if s.Empty() {
		w.WriteString(MutedStyle.Render("  No files found in " + s.Root))
		w.WriteString("\n")
	} else {
		w.WriteString(f.formatDistribution(s))
		w.WriteString("\n")
		w.WriteString(f.formatStats(s))
	}

	if len(s.Unknown) > 0 {
		w.WriteString("\n")
		w.WriteString(f.formatUnknown(s))
	}

	w.WriteString(f.formatFooter(s))
	w.WriteString("\n")
	return nil
}

func (f *PrettyFormatter) formatHeader(s *analysis.Summary) string {
	lines := []string{
		fmt.Sprintf("%s %s", LabelStyle.Render("Root:"), ValueStyle.Render(s.Root)),
		strings.Join([]string{
			fmt.Sprintf("%s %s", LabelStyle.Render("Files:"), SizeStyle.Render(humanize.Comma(int64(s.TotalFiles)))),
			fmt.Sprintf("%s %s", LabelStyle.Render("Total:"), SizeStyle.Render(humanize.IBytes(uint64(s.TotalBytes)))),
		}, "  "),
	}
	if s.Skipped > 0 {
		lines = append(lines, WarningStyle.Render(fmt.Sprintf("%s files skipped (vanished or unreadable)", humanize.Comma(int64(s.Skipped)))))
	}
	return HeaderBox.Render(strings.Join(lines, "\n"))
}

func (f *PrettyFormatter) formatDistribution(s *analysis.Summary) string {
	var sb strings.Builder
	sb.WriteString(TitleStyle.Render("File Type Distribution"))
	sb.WriteString("\n")

	for _, share := range s.Categories {
		filled := int(share.Percent / 100 * barWidth)
		if filled == 0 && share.Count > 0 {
			filled = 1
		}
		bar := BarStyle.Render(strings.Repeat("█", filled)) + MutedStyle.Render(strings.Repeat("░", barWidth-filled))
		sb.WriteString(fmt.Sprintf("  %s %s %s %s\n",
			CategoryStyle.Render(share.Category.String()),
			bar,
			SizeStyle.Render(fmt.Sprintf("%5.1f%%", share.Percent)),
			MutedStyle.Render(humanize.Comma(int64(share.Count))+" files"),
		))
	}
	return sb.String()
}

func (f *PrettyFormatter) formatStats(s *analysis.Summary) string {
	var sb strings.Builder
	sb.WriteString(TitleStyle.Render("File Size Statistics"))
	sb.WriteString("\n")
	for _, row := range statRows(s.Stats) {
		sb.WriteString(fmt.Sprintf("  %s %s\n", LabelStyle.Render(padRight(row.label+":", 17)), ValueStyle.Render(row.value)))
	}
	return sb.String()
}

func (f *PrettyFormatter) formatUnknown(s *analysis.Summary) string {
	var sb strings.Builder
	sb.WriteString(TitleStyle.Render("Unknown Extensions"))
	sb.WriteString("\n")

	shown := s.Unknown
	if len(shown) > maxPrettyUnknown {
		shown = shown[:maxPrettyUnknown]
	}
	for _, u := range shown {
		sb.WriteString(fmt.Sprintf("  %s %s\n", ValueStyle.Render(padRight(u.Extension, 16)), MutedStyle.Render(humanize.Comma(int64(u.Count))+" files")))
	}
	if rest := len(s.Unknown) - len(shown); rest > 0 {
		sb.WriteString(MutedStyle.Render(fmt.Sprintf("  … and %d more in %s", rest, UnknownReportFile)))
		sb.WriteString("\n")
	}
	return sb.String()
}

// maxPrettyUnknown caps the unknown extensions listed inline.
const maxPrettyUnknown = 10

func (f *PrettyFormatter) formatFooter(s *analysis.Summary) string {
	parts := []string{
		fmt.Sprintf("%s %s", LabelStyle.Render("Run:"), MutedStyle.Render(s.RunID)),
		fmt.Sprintf("%s %s", LabelStyle.Render("Elapsed:"), ValueStyle.Render(formatDuration(s.Elapsed))),
		MutedStyle.Render("Use -o plain for unformatted output"),
	}
	return FooterBox.Render(strings.Join(parts, "  "))
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// formatDuration formats a duration in a human-friendly way.
func formatDuration(d time.Duration) string {
	sec := d.Seconds()
	if sec < 1 {
		return fmt.Sprintf("%.0fms", sec*1000)
	}
	if sec < 60 {
		return fmt.Sprintf("%.1fs", sec)
	}
	minutes := int(sec) / 60
	seconds := int(sec) % 60
	if minutes < 60 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	hours := minutes / 60
	minutes = minutes % 60
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

func init() {
	Register("pretty", func() Formatter {
		return &PrettyFormatter{}
	})
}

// Ensure PrettyFormatter implements Formatter.
var _ Formatter = (*PrettyFormatter)(nil)
