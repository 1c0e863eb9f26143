package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/jamesainslie/sift/pkg/sift/category"
	"github.com/jamesainslie/sift/pkg/sift/types"
)

// ErrNoData indicates there is nothing to plot for a chart.
var ErrNoData = errors.New("no data to plot")

// DefaultBins is the number of histogram bins.
const DefaultBins = 50

// Bin is one log-spaced histogram bucket covering [Lo, Hi) bytes. The last
// bin also includes Hi.
type Bin struct {
	Lo    float64
	Hi    float64
	Count int
}

// Histogram is the size distribution over positive file sizes.
type Histogram struct {
	Bins []Bin

	// Min and Max are the smallest and largest positive sizes.
	Min int64
	Max int64

	// Ticks are the size thresholds inside [Min, Max].
	Ticks []types.SizeThreshold
}

// Total returns the number of sizes counted across all bins.
func (h Histogram) Total() int {
	total := 0
	for _, b := range h.Bins {
		total += b.Count
	}
	return total
}

// BinFor returns the index of the bin containing size, or -1 if size falls
// outside the histogram range.
func (h Histogram) BinFor(size int64) int {
	if len(h.Bins) == 0 || size < h.Min || size > h.Max {
		return -1
	}
	if len(h.Bins) == 1 {
		return 0
	}
	lo := math.Log10(float64(h.Min))
	width := (math.Log10(float64(h.Max)) - lo) / float64(len(h.Bins))
	i := int(math.Floor((math.Log10(float64(size)) - lo) / width))
	if i < 0 {
		i = 0
	}
	if i >= len(h.Bins) {
		i = len(h.Bins) - 1
	}
	return i
}

// Histogram buckets the positive sizes of the summary into bins log-spaced
// bins between the smallest and largest positive size. Zero sizes are
// excluded. When every positive size is equal, a single bin holds them all.
// It returns ErrNoData when no positive size exists.
func (s *Summary) Histogram(bins int) (Histogram, error) {
	if bins <= 0 {
		bins = DefaultBins
	}

	var positive []int64
	for _, size := range s.sizes {
		if size > 0 {
			positive = append(positive, size)
		}
	}
	if len(positive) == 0 {
		return Histogram{}, fmt.Errorf("histogram: %w: no positive file sizes", ErrNoData)
	}

	h := Histogram{
		Min: positive[0],
		Max: positive[len(positive)-1],
	}
	h.Ticks = types.ThresholdsWithin(h.Min, h.Max)

	if h.Min == h.Max {
		h.Bins = []Bin{{Lo: float64(h.Min), Hi: float64(h.Max), Count: len(positive)}}
		return h, nil
	}

	lo := math.Log10(float64(h.Min))
	width := (math.Log10(float64(h.Max)) - lo) / float64(bins)
	h.Bins = make([]Bin, bins)
	for i := range h.Bins {
		h.Bins[i].Lo = math.Pow(10, lo+float64(i)*width)
		h.Bins[i].Hi = math.Pow(10, lo+float64(i+1)*width)
	}
	for _, size := range positive {
		h.Bins[h.BinFor(size)].Count++
	}
	return h, nil
}

// Slice is one category's wedge of the type distribution.
type Slice struct {
	Category category.Category
	Count    int
	Percent  float64

	// Label is the category name, blank when the share is 1% or less.
	Label string

	// Annotation is the formatted percentage, blank below 1%.
	Annotation string
}

// PieData is the type distribution over category counts.
type PieData struct {
	Slices []Slice
	Total  int
}

// Legend returns the names of all categories in the chart, regardless of
// share.
func (p PieData) Legend() []string {
	out := make([]string, len(p.Slices))
	for i, sl := range p.Slices {
		out[i] = sl.Category.String()
	}
	return out
}

// PieData derives the type distribution. It returns ErrNoData when no
// files were recorded.
func (s *Summary) PieData() (PieData, error) {
	if s.TotalFiles == 0 {
		return PieData{}, fmt.Errorf("type distribution: %w: no files", ErrNoData)
	}

	p := PieData{Total: s.TotalFiles}
	for _, share := range s.Categories {
		sl := Slice{
			Category: share.Category,
			Count:    share.Count,
			Percent:  share.Percent,
		}
		// share > 1% without float rounding
		if share.Count*100 > s.TotalFiles {
			sl.Label = share.Category.String()
		}
		if share.Count*100 >= s.TotalFiles {
			sl.Annotation = fmt.Sprintf("%.1f%%", share.Percent)
		}
		p.Slices = append(p.Slices, sl)
	}
	return p, nil
}

// CDFPoint is one step of the cumulative distribution.
type CDFPoint struct {
	// Size is the file size in bytes.
	Size int64

	// X is log10 of Size, with zero sizes placed at the 1-byte position.
	X float64

	// P is the fraction of files no larger than Size.
	P float64
}

// CDF is the cumulative distribution of file sizes.
type CDF struct {
	Points []CDFPoint

	// MinX and MaxX bound the log10 axis.
	MinX float64
	MaxX float64

	// Ticks are the size thresholds inside the plotted range.
	Ticks []types.SizeThreshold
}

// CDF derives the cumulative distribution of file sizes: y is rank/N over
// the ascending sizes, x is log-scaled. Runs of equal sizes collapse into
// the point with the highest rank. It returns ErrNoData when no files were
// recorded.
func (s *Summary) CDF() (CDF, error) {
	n := len(s.sizes)
	if n == 0 {
		return CDF{}, fmt.Errorf("cdf: %w: no files", ErrNoData)
	}

	c := CDF{Points: make([]CDFPoint, 0, n)}
	for i, size := range s.sizes {
		pt := CDFPoint{Size: size, X: logSize(size), P: float64(i+1) / float64(n)}
		if last := len(c.Points) - 1; last >= 0 && c.Points[last].Size == size {
			c.Points[last] = pt
			continue
		}
		c.Points = append(c.Points, pt)
	}

	c.MinX = c.Points[0].X
	c.MaxX = c.Points[len(c.Points)-1].X
	lo, hi := s.sizes[0], s.sizes[n-1]
	if lo < 1 {
		lo = 1
	}
	c.Ticks = types.ThresholdsWithin(lo, hi)
	return c, nil
}

func logSize(size int64) float64 {
	if size < 1 {
		size = 1
	}
	return math.Log10(float64(size))
}
