package analysis

import "math"

// SizeStats holds descriptive statistics over file sizes in bytes.
// Percentiles use the nearest-rank method. All fields are zero when no
// files were recorded.
type SizeStats struct {
	Min    int64
	Max    int64
	Mean   float64
	Median int64
	P90    int64
	P99    int64
}

// computeStats expects sorted in ascending order.
func computeStats(sorted []int64, total int64) SizeStats {
	n := len(sorted)
	if n == 0 {
		return SizeStats{}
	}
	return SizeStats{
		Min:    sorted[0],
		Max:    sorted[n-1],
		Mean:   float64(total) / float64(n),
		Median: Percentile(sorted, 50),
		P90:    Percentile(sorted, 90),
		P99:    Percentile(sorted, 99),
	}
}

// Percentile returns the nearest-rank p-th percentile of sorted, which
// must be in ascending order. p is clamped to [0, 100]. An empty slice
// yields 0.
func Percentile(sorted []int64, p float64) int64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	switch {
	case p <= 0:
		return sorted[0]
	case p >= 100:
		return sorted[n-1]
	}
	rank := int(math.Ceil(p / 100 * float64(n)))
	if rank < 1 {
		rank = 1
	}
	return sorted[rank-1]
}
