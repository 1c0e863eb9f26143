// Package analysis accumulates per-file observations from a scan and derives
// the summary, size statistics and chart data from them.
//
// A State has a single writer. It is filled by the scanner, then frozen by
// Summary; everything downstream works on the immutable Summary.
package analysis

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jamesainslie/sift/pkg/sift/category"
	"github.com/jamesainslie/sift/pkg/sift/types"
)

// State is the mutable accumulator for one analysis run.
type State struct {
	runID   string
	root    string
	started time.Time

	sizes   []int64
	total   int64
	counts  map[category.Category]int
	unknown map[string]int
	// unknownOrder holds unknown extensions in first-seen order.
	unknownOrder []string
	skipped      int

	frozen bool
}

// NewState returns an empty State for a scan of root.
func NewState(root string) *State {
	return &State{
		runID:   uuid.NewString(),
		root:    root,
		started: time.Now(),
		counts:  make(map[category.Category]int),
		unknown: make(map[string]int),
	}
}

// RunID returns the identifier assigned to this run.
func (s *State) RunID() string {
	return s.runID
}

// Record adds one file observation and returns the category it was
// classified into. ext is the raw extension as split from the file name.
// Record panics if the state has already been summarized.
func (s *State) Record(size int64, ext string) category.Category {
	if s.frozen {
		panic("analysis: Record called after Summary")
	}

	s.sizes = append(s.sizes, size)
	s.total += size

	c := category.Classify(ext)
	s.counts[c]++

	if c == category.Other {
		key := strings.ToLower(ext)
		if _, seen := s.unknown[key]; !seen {
			s.unknownOrder = append(s.unknownOrder, key)
		}
		s.unknown[key]++
	}
	return c
}

// Skip counts a file that could not be recorded.
func (s *State) Skip() {
	if s.frozen {
		panic("analysis: Skip called after Summary")
	}
	s.skipped++
}

// Files returns the number of files recorded so far.
func (s *State) Files() int {
	return len(s.sizes)
}

// Bytes returns the total size of files recorded so far.
func (s *State) Bytes() int64 {
	return s.total
}

// Summary freezes the state and returns an immutable snapshot of it.
// Calling Summary again returns an equivalent snapshot.
func (s *State) Summary() *Summary {
	s.frozen = true

	sorted := make([]int64, len(s.sizes))
	copy(sorted, s.sizes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	n := len(sorted)
	sum := &Summary{
		RunID:      s.runID,
		Root:       s.root,
		TotalFiles: n,
		TotalBytes: s.total,
		Skipped:    s.skipped,
		Elapsed:    time.Since(s.started),
		sizes:      sorted,
	}

	for _, c := range category.All() {
		count := s.counts[c]
		if count == 0 {
			continue
		}
		sum.Categories = append(sum.Categories, CategoryShare{
			Category: c,
			Count:    count,
			Percent:  percent(count, n),
		})
	}

	unknown := make([]ExtensionCount, 0, len(s.unknownOrder))
	for _, ext := range s.unknownOrder {
		count := s.unknown[ext]
		unknown = append(unknown, ExtensionCount{
			Extension: ext,
			Count:     count,
			Percent:   percent(count, n),
		})
	}
	sort.SliceStable(unknown, func(i, j int) bool { return unknown[i].Count > unknown[j].Count })
	if len(unknown) > 0 {
		sum.Unknown = unknown
	}

	sum.Stats = computeStats(sorted, s.total)
	return sum
}

// Summary is the immutable result of an analysis run.
type Summary struct {
	// RunID identifies the run.
	RunID string

	// Root is the scanned directory.
	Root string

	// TotalFiles is the number of files recorded.
	TotalFiles int

	// TotalBytes is the sum of all recorded sizes.
	TotalBytes int64

	// Categories lists non-empty categories in declaration order.
	Categories []CategoryShare

	// Unknown lists extensions classified as Other, most frequent first.
	Unknown []ExtensionCount

	// Stats holds descriptive size statistics.
	Stats SizeStats

	// Skipped counts files that vanished or could not be read.
	Skipped int

	// Elapsed is the time between NewState and Summary.
	Elapsed time.Duration

	sizes []int64
}

// CategoryShare is a category's file count and share of all files.
type CategoryShare struct {
	Category category.Category
	Count    int
	Percent  float64
}

// ExtensionCount is an unknown extension's file count and share of all files.
type ExtensionCount struct {
	Extension string
	Count     int
	Percent   float64
}

// Sizes returns the recorded sizes in ascending order. The returned slice
// must not be modified.
func (s *Summary) Sizes() []int64 {
	return s.sizes
}

// Empty reports whether no files were recorded.
func (s *Summary) Empty() bool {
	return s.TotalFiles == 0
}

// TotalMegabytes returns TotalBytes in MiB.
func (s *Summary) TotalMegabytes() float64 {
	return types.Megabytes(s.TotalBytes)
}

// Count returns the number of files classified into c.
func (s *Summary) Count(c category.Category) int {
	for _, share := range s.Categories {
		if share.Category == c {
			return share.Count
		}
	}
	return 0
}

func percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}
