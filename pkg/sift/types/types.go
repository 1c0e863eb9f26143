// Package types provides core data types for the sift file analyzer.
// It includes scan progress snapshots, the size thresholds used to label
// charts, and helpers for splitting extensions and formatting sizes.
package types

import (
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
)

// Size constants for binary (IEC) units.
const (
	KiB int64 = 1024
	MiB int64 = 1024 * KiB
	GiB int64 = 1024 * MiB
	TiB int64 = 1024 * GiB
)

// SizeThreshold is a labelled size used for chart axis ticks.
type SizeThreshold struct {
	// Label is the short display label (e.g., "10MB").
	Label string

	// Bytes is the threshold value in bytes.
	Bytes int64
}

// SizeThresholds are the tick positions used on log-scaled size axes,
// from 1KB up to 10GB.
var SizeThresholds = []SizeThreshold{
	{Label: "1KB", Bytes: KiB},
	{Label: "10KB", Bytes: 10 * KiB},
	{Label: "100KB", Bytes: 100 * KiB},
	{Label: "1MB", Bytes: MiB},
	{Label: "10MB", Bytes: 10 * MiB},
	{Label: "100MB", Bytes: 100 * MiB},
	{Label: "1GB", Bytes: GiB},
	{Label: "10GB", Bytes: 10 * GiB},
}

// ThresholdsWithin returns the thresholds falling inside [lo, hi].
func ThresholdsWithin(lo, hi int64) []SizeThreshold {
	var out []SizeThreshold
	for _, t := range SizeThresholds {
		if t.Bytes >= lo && t.Bytes <= hi {
			out = append(out, t)
		}
	}
	return out
}

// ScanProgress reports real-time scan progress.
type ScanProgress struct {
	// DirsScanned is the number of directories visited so far.
	DirsScanned int64 `json:"dirs_scanned"`

	// FilesScanned is the number of files recorded so far.
	FilesScanned int64 `json:"files_scanned"`

	// BytesScanned is the total size of all files recorded so far.
	BytesScanned int64 `json:"bytes_scanned"`

	// CurrentPath is the directory currently being walked.
	CurrentPath string `json:"current_path"`
}

// SplitExt returns the extension of the base name of path, including the
// leading dot. Leading dots of the base name are not treated as an
// extension separator, so ".bashrc" has no extension while "a.tar.gz"
// yields ".gz" and "name." yields ".".
func SplitExt(path string) string {
	name := filepath.Base(path)
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return ""
	}
	if strings.TrimLeft(name[:i], ".") == "" {
		return ""
	}
	return name[i:]
}

// FormatSize converts a size in bytes to a human-readable string.
// It uses binary (IEC) units (KiB, MiB, GiB, TiB) for consistency
// with common filesystem tools.
//
// Examples:
//   - FormatSize(0) returns "0 B"
//   - FormatSize(1024) returns "1.0 KiB"
//   - FormatSize(1536*1024) returns "1.5 MiB"
func FormatSize(bytes int64) string {
	if bytes < 0 {
		return "-" + humanize.IBytes(uint64(-bytes))
	}
	return humanize.IBytes(uint64(bytes))
}

// FormatCount formats a count with thousands separators.
func FormatCount(n int64) string {
	return humanize.Comma(n)
}

// Megabytes converts bytes to mebibytes as a float, the unit used by the
// plain text report.
func Megabytes(bytes int64) float64 {
	return float64(bytes) / float64(MiB)
}
