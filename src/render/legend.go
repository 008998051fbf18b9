package render

import (
	"fmt"
	"os"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// legendEntry is one line of the in-plot significance legend.
type legendEntry struct {
	Text  string
	Color drawing.Color
	Bold  bool
}

// significanceLegend returns a renderable drawing the per-region p-value
// box in the upper right corner of the plot. Entries are colored to match
// their region and drawn bold when the correlation is significant.
func significanceLegend(entries []legendEntry, fontSize float64) chart.Renderable {
	return func(r chart.Renderer, canvasBox chart.Box, defaults chart.Style) {
		if len(entries) == 0 {
			return
		}
		font := defaults.Font
		if font == nil {
			if df, err := chart.GetDefaultFont(); err == nil {
				font = df
			}
		}
		if fontSize <= 0 {
			fontSize = 14
		}
		r.SetFont(font)
		r.SetFontSize(fontSize)

		const pad = 8
		maxW, lineH := 0, 0
		for _, e := range entries {
			tb := r.MeasureText(e.Text)
			if tb.Width() > maxW {
				maxW = tb.Width()
			}
			if tb.Height() > lineH {
				lineH = tb.Height()
			}
		}
		lineH += 6
		boxW := maxW + 2*pad
		boxH := lineH*len(entries) + 2*pad

		right := canvasBox.Right - 12
		top := canvasBox.Top + 12
		left := right - boxW
		bottom := top + boxH

		r.SetFillColor(drawing.ColorWhite.WithAlpha(230))
		r.SetStrokeColor(drawing.Color{R: 180, G: 180, B: 180, A: 255})
		r.SetStrokeWidth(1)
		r.MoveTo(left, top)
		r.LineTo(right, top)
		r.LineTo(right, bottom)
		r.LineTo(left, bottom)
		r.Close()
		r.FillStroke()

		y := top + pad + lineH - 4
		for _, e := range entries {
			r.SetFontColor(e.Color)
			r.Text(e.Text, left+pad, y)
			if e.Bold {
				// No bold face in the default font; re-strike one pixel over.
				r.Text(e.Text, left+pad+1, y)
			}
			y += lineH
		}
	}
}

// RegionColor pairs a region name with its display color for the
// standalone legend image.
type RegionColor struct {
	Name  string
	Color drawing.Color
}

// WriteLegend renders the standalone region color key (legend_only.png):
// a color patch and name per region, laid out in two columns on white.
func WriteLegend(path string, regions []RegionColor) error {
	const width, height = 1000, 600
	r, err := chart.PNG(width, height)
	if err != nil {
		return fmt.Errorf("legend renderer: %w", err)
	}
	font, ferr := chart.GetDefaultFont()
	if ferr != nil {
		return fmt.Errorf("legend font: %w", ferr)
	}

	r.SetFillColor(drawing.ColorWhite)
	r.MoveTo(0, 0)
	r.LineTo(width, 0)
	r.LineTo(width, height)
	r.LineTo(0, height)
	r.Close()
	r.Fill()

	r.SetFont(font)
	r.SetFontSize(20)

	const (
		cols    = 2
		patchW  = 34
		patchH  = 20
		rowStep = 52
		colStep = 320
	)
	rows := (len(regions) + cols - 1) / cols
	startX := width/2 - (cols*colStep)/2 + 40
	startY := height/2 - (rows*rowStep)/2 + patchH

	for i, reg := range regions {
		colIdx := i % cols
		rowIdx := i / cols
		x := startX + colIdx*colStep
		y := startY + rowIdx*rowStep

		r.SetFillColor(reg.Color)
		r.MoveTo(x, y-patchH)
		r.LineTo(x+patchW, y-patchH)
		r.LineTo(x+patchW, y)
		r.LineTo(x, y)
		r.Close()
		r.Fill()

		r.SetFontColor(chart.ColorBlack)
		r.Text(reg.Name, x+patchW+12, y-2)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create legend %s: %w", path, err)
	}
	defer f.Close()
	if err := r.Save(f); err != nil {
		return fmt.Errorf("write legend %s: %w", path, err)
	}
	return nil
}
