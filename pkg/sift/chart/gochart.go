package chart

import (
	"io"
	"math"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/jamesainslie/sift/pkg/sift/analysis"
	"github.com/jamesainslie/sift/pkg/sift/category"
	"github.com/jamesainslie/sift/pkg/sift/types"
)

// Default image sizes in pixels.
const (
	DefaultWidth  = 1200
	DefaultHeight = 600

	pieWidth  = 1400
	pieHeight = 1000
)

// palette assigns a fixed color to every category.
var palette = []drawing.Color{
	{R: 31, G: 119, B: 180, A: 255},
	{R: 255, G: 127, B: 14, A: 255},
	{R: 44, G: 160, B: 44, A: 255},
	{R: 214, G: 39, B: 40, A: 255},
	{R: 148, G: 103, B: 189, A: 255},
	{R: 140, G: 86, B: 75, A: 255},
	{R: 227, G: 119, B: 194, A: 255},
	{R: 127, G: 127, B: 127, A: 255},
	{R: 188, G: 189, B: 34, A: 255},
	{R: 23, G: 190, B: 207, A: 255},
	{R: 174, G: 199, B: 232, A: 255},
	{R: 255, G: 187, B: 120, A: 255},
	{R: 152, G: 223, B: 138, A: 255},
	{R: 255, G: 152, B: 150, A: 255},
}

func categoryColor(c category.Category) drawing.Color {
	return palette[int(c)%len(palette)]
}

var (
	barColor  = drawing.Color{R: 31, G: 119, B: 180, A: 255}
	lineColor = drawing.Color{R: 31, G: 119, B: 180, A: 255}
)

// PNGRenderer draws charts as PNG images with go-chart.
type PNGRenderer struct {
	// Width and Height size the histogram and CDF images. Zero values use
	// DefaultWidth and DefaultHeight. The pie chart is always drawn on a
	// taller canvas to leave room for the legend.
	Width  int
	Height int
}

// NewPNGRenderer returns a renderer producing images of the given size.
func NewPNGRenderer(width, height int) *PNGRenderer {
	return &PNGRenderer{Width: width, Height: height}
}

func (p *PNGRenderer) size() (int, int) {
	w, h := p.Width, p.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return w, h
}

// Histogram draws the log-binned size distribution on a log10 size axis
// labelled at the size thresholds inside the data range.
func (p *PNGRenderer) Histogram(w io.Writer, h analysis.Histogram) error {
	width, height := p.size()
	ch := histogramChart(h, width, height)
	return ch.Render(gochart.PNG, w)
}

// histogramChart lays out every bin as a filled bar spanning its log10
// edges. A single-bin histogram is drawn centered on a padded axis.
func histogramChart(h analysis.Histogram, width, height int) gochart.Chart {
	minX, maxX := math.Log10(float64(h.Min)), math.Log10(float64(h.Max))
	single := maxX-minX < 1e-9
	if single {
		minX -= 0.5
		maxX += 0.5
	}

	maxCount := 0
	xs := make([]float64, 0, 4*len(h.Bins))
	ys := make([]float64, 0, 4*len(h.Bins))
	for _, b := range h.Bins {
		if b.Count > maxCount {
			maxCount = b.Count
		}
		lo, hi := math.Log10(b.Lo), math.Log10(b.Hi)
		if single {
			lo, hi = minX+0.25, maxX-0.25
		}
		c := float64(b.Count)
		xs = append(xs, lo, lo, hi, hi)
		ys = append(ys, 0, c, c, 0)
	}
	yTicks := countTicks(maxCount)

	return gochart.Chart{
		Title:      "Distribution of File Sizes",
		Width:      width,
		Height:     height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 20, Right: 30, Bottom: 20}},
		XAxis: gochart.XAxis{
			Name:  "File Size (bytes, log scale)",
			Range: &gochart.ContinuousRange{Min: minX, Max: maxX},
			Ticks: sizeTicks(h.Ticks, minX, maxX),
		},
		YAxis: gochart.YAxis{
			Name:  "Number of Files",
			Range: &gochart.ContinuousRange{Min: 0, Max: yTicks[len(yTicks)-1].Value},
			Ticks: yTicks,
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    "Files",
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeColor: drawing.ColorBlack,
					StrokeWidth: 1,
					FillColor:   barColor,
				},
			},
		},
	}
}

// TypeDistribution draws the category pie with a legend listing every
// category present.
func (p *PNGRenderer) TypeDistribution(w io.Writer, data analysis.PieData) error {
	values := make([]gochart.Value, len(data.Slices))
	entries := make([]legendEntry, len(data.Slices))
	for i, sl := range data.Slices {
		color := categoryColor(sl.Category)
		values[i] = gochart.Value{
			Value: float64(sl.Count),
			Label: sliceText(sl),
			Style: gochart.Style{
				FillColor:   color,
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 1,
				FontSize:    12,
			},
		}
		entries[i] = legendEntry{name: sl.Category.String(), color: color}
	}

	pc := gochart.PieChart{
		Title:      "Distribution of File Types",
		Width:      pieWidth,
		Height:     pieHeight,
		Background: gochart.Style{Padding: gochart.Box{Top: 60, Left: 20, Right: 320, Bottom: 20}},
		Values:     values,
	}
	pc.Elements = []gochart.Renderable{legend("File Types", entries)}
	return pc.Render(gochart.PNG, w)
}

// sliceText joins the slice label and its percentage annotation, either of
// which may be blank.
func sliceText(sl analysis.Slice) string {
	parts := make([]string, 0, 2)
	if sl.Label != "" {
		parts = append(parts, sl.Label)
	}
	if sl.Annotation != "" {
		parts = append(parts, sl.Annotation)
	}
	return strings.Join(parts, " ")
}

// CDF draws the cumulative size distribution with a log10 x axis.
func (p *PNGRenderer) CDF(w io.Writer, c analysis.CDF) error {
	width, height := p.size()

	xs := make([]float64, 0, len(c.Points)+1)
	ys := make([]float64, 0, len(c.Points)+1)
	for _, pt := range c.Points {
		xs = append(xs, pt.X)
		ys = append(ys, pt.P)
	}

	minX, maxX := c.MinX, c.MaxX
	if maxX-minX < 1e-9 {
		minX -= 0.5
		maxX += 0.5
	}
	if len(xs) == 1 {
		// a single point draws nothing; extend it to the right edge
		xs = append(xs, maxX)
		ys = append(ys, ys[0])
	}

	ch := gochart.Chart{
		Title:      "Cumulative Distribution Function of File Sizes",
		Width:      width,
		Height:     height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 20, Right: 30, Bottom: 20}},
		XAxis: gochart.XAxis{
			Name:  "File Size (bytes, log scale)",
			Range: &gochart.ContinuousRange{Min: minX, Max: maxX},
			Ticks: sizeTicks(c.Ticks, minX, maxX),
		},
		YAxis: gochart.YAxis{
			Name:  "Cumulative Probability",
			Range: &gochart.ContinuousRange{Min: 0, Max: 1},
			Ticks: []gochart.Tick{
				{Value: 0, Label: "0.0"},
				{Value: 0.25, Label: "0.25"},
				{Value: 0.5, Label: "0.5"},
				{Value: 0.75, Label: "0.75"},
				{Value: 1, Label: "1.0"},
			},
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    "CDF",
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeColor: lineColor,
					StrokeWidth: 2,
				},
			},
		},
	}
	return ch.Render(gochart.PNG, w)
}

// sizeTicks places the size thresholds on a log10 axis. With fewer than
// two thresholds in range the axis ends are labelled with humanized sizes.
func sizeTicks(thresholds []types.SizeThreshold, minX, maxX float64) []gochart.Tick {
	if len(thresholds) >= 2 {
		ticks := make([]gochart.Tick, len(thresholds))
		for i, t := range thresholds {
			ticks[i] = gochart.Tick{Value: math.Log10(float64(t.Bytes)), Label: t.Label}
		}
		return ticks
	}

	ticks := []gochart.Tick{{Value: minX, Label: types.FormatSize(int64(math.Round(math.Pow(10, minX))))}}
	for _, t := range thresholds {
		ticks = append(ticks, gochart.Tick{Value: math.Log10(float64(t.Bytes)), Label: t.Label})
	}
	return append(ticks, gochart.Tick{Value: maxX, Label: types.FormatSize(int64(math.Round(math.Pow(10, maxX))))})
}

// countTicks returns evenly spaced integer ticks from zero covering max.
func countTicks(max int) []gochart.Tick {
	if max < 1 {
		max = 1
	}
	step := niceStep(float64(max) / 5)
	var ticks []gochart.Tick
	for v := 0.0; ; v += step {
		ticks = append(ticks, gochart.Tick{Value: v, Label: formatCount(v)})
		if v >= float64(max) {
			break
		}
	}
	return ticks
}

// niceStep rounds raw up to 1, 2 or 5 times a power of ten, never below 1.
func niceStep(raw float64) float64 {
	if raw <= 1 {
		return 1
	}
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 5, 10} {
		if m*mag >= raw {
			return m * mag
		}
	}
	return 10 * mag
}

func formatCount(v float64) string {
	return types.FormatCount(int64(v))
}

// Ensure PNGRenderer implements Renderer.
var _ Renderer = (*PNGRenderer)(nil)
