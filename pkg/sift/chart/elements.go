package chart

import (
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

type legendEntry struct {
	name  string
	color drawing.Color
}

// legend draws a titled list of color swatches to the right of the canvas.
func legend(title string, entries []legendEntry) gochart.Renderable {
	return func(r gochart.Renderer, cb gochart.Box, defaults gochart.Style) {
		const (
			swatch     = 14
			lineHeight = 24
			fontSize   = 12
		)

		if defaults.Font != nil {
			r.SetFont(defaults.Font)
		}
		r.SetFontColor(drawing.ColorBlack)

		left := cb.Right + 40
		top := cb.Top + (cb.Height()-lineHeight*(len(entries)+1))/2
		if top < cb.Top {
			top = cb.Top
		}

		r.SetFontSize(fontSize + 2)
		r.Text(title, left, top+swatch)

		r.SetFontSize(fontSize)
		for i, e := range entries {
			y := top + lineHeight*(i+1)

			r.SetFillColor(e.color)
			r.SetStrokeColor(e.color)
			r.SetStrokeWidth(1)
			r.MoveTo(left, y)
			r.LineTo(left+swatch, y)
			r.LineTo(left+swatch, y+swatch)
			r.LineTo(left, y+swatch)
			r.Close()
			r.FillStroke()

			r.SetFontColor(drawing.ColorBlack)
			r.Text(e.name, left+swatch+8, y+swatch-2)
		}
	}
}
