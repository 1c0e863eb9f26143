// Package chart renders the three sift visualizations: the file size
// histogram, the file type distribution and the cumulative size
// distribution. Chart data is derived by the analysis package; this package
// only draws it and writes the image files.
package chart

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jamesainslie/sift/pkg/sift/analysis"
	"github.com/jamesainslie/sift/pkg/sift/logging"
)

var logger = logging.Get("chart")

// ErrNoData indicates a chart was skipped because there was nothing to plot.
var ErrNoData = analysis.ErrNoData

// Renderer draws each chart to a writer.
type Renderer interface {
	Histogram(w io.Writer, h analysis.Histogram) error
	TypeDistribution(w io.Writer, p analysis.PieData) error
	CDF(w io.Writer, c analysis.CDF) error
}

// Kind identifies one of the charts.
type Kind int

// Chart kinds in the order they are written.
const (
	KindHistogram Kind = iota
	KindTypeDistribution
	KindCDF
)

// Kinds returns every chart kind in write order.
func Kinds() []Kind {
	return []Kind{KindHistogram, KindTypeDistribution, KindCDF}
}

// String returns a short name for the chart.
func (k Kind) String() string {
	switch k {
	case KindHistogram:
		return "histogram"
	case KindTypeDistribution:
		return "type distribution"
	case KindCDF:
		return "cdf"
	default:
		return "unknown"
	}
}

// Filename returns the fixed output file name of the chart.
func (k Kind) Filename() string {
	switch k {
	case KindHistogram:
		return "file_size_histogram.png"
	case KindTypeDistribution:
		return "file_type_distribution.png"
	case KindCDF:
		return "file_size_cdf.png"
	default:
		return ""
	}
}

// Outcome reports what happened to one chart.
type Outcome struct {
	Kind Kind

	// Path is the file written, empty when the chart was skipped.
	Path string

	// Skipped holds the reason the chart was not drawn, wrapping ErrNoData.
	Skipped error
}

// WriteAll derives and writes all three charts into dir. A chart with no
// data is skipped and reported in its Outcome rather than failing the run.
// Any other error stops at the failing chart and is returned.
func WriteAll(r Renderer, dir string, s *analysis.Summary, bins int) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, 3)
	for _, kind := range Kinds() {
		draw, err := drawFunc(r, kind, s, bins)
		if err != nil {
			if errors.Is(err, ErrNoData) {
				logger.Debug("skipping chart", "chart", kind, "reason", err)
				outcomes = append(outcomes, Outcome{Kind: kind, Skipped: err})
				continue
			}
			return outcomes, err
		}

		path := filepath.Join(dir, kind.Filename())
		if err := writeFile(path, draw); err != nil {
			return outcomes, fmt.Errorf("rendering %s: %w", kind, err)
		}
		logger.Debug("wrote chart", "chart", kind, "path", path)
		outcomes = append(outcomes, Outcome{Kind: kind, Path: path})
	}
	return outcomes, nil
}

func drawFunc(r Renderer, kind Kind, s *analysis.Summary, bins int) (func(io.Writer) error, error) {
	switch kind {
	case KindHistogram:
		h, err := s.Histogram(bins)
		if err != nil {
			return nil, err
		}
		return func(w io.Writer) error { return r.Histogram(w, h) }, nil
	case KindTypeDistribution:
		p, err := s.PieData()
		if err != nil {
			return nil, err
		}
		return func(w io.Writer) error { return r.TypeDistribution(w, p) }, nil
	case KindCDF:
		c, err := s.CDF()
		if err != nil {
			return nil, err
		}
		return func(w io.Writer) error { return r.CDF(w, c) }, nil
	default:
		return nil, fmt.Errorf("unknown chart kind %d", kind)
	}
}

// writeFile creates path, draws into it and closes it. A partially written
// file is removed on failure.
func writeFile(path string, draw func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
		if err != nil {
			_ = os.Remove(path)
		}
	}()
	return draw(f)
}
