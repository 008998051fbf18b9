package render

import (
	"fmt"

	chart "github.com/wcharczuk/go-chart/v2"
)

// confidenceBand is a go-chart series drawing a filled band between the
// lower and upper confidence bounds of a fitted line. It implements
// chart.BoundedValuesProvider so the band participates in axis range
// calculation like any other series.
type confidenceBand struct {
	Name    string
	Style   chart.Style
	XValues []float64
	Lower   []float64
	Upper   []float64
}

func (cb confidenceBand) GetName() string { return cb.Name }

func (cb confidenceBand) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }

func (cb confidenceBand) GetStyle() chart.Style { return cb.Style }

func (cb confidenceBand) Len() int { return len(cb.XValues) }

func (cb confidenceBand) GetBoundedValues(index int) (x, y1, y2 float64) {
	return cb.XValues[index], cb.Upper[index], cb.Lower[index]
}

func (cb confidenceBand) Validate() error {
	if len(cb.XValues) != len(cb.Lower) || len(cb.XValues) != len(cb.Upper) {
		return fmt.Errorf("confidence band: mismatched bound lengths")
	}
	if len(cb.XValues) == 0 {
		return fmt.Errorf("confidence band: no values")
	}
	return nil
}

func (cb confidenceBand) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	style := cb.Style.InheritFrom(defaults)
	chart.Draw.BoundedSeries(r, canvasBox, xrange, yrange, style, cb)
}
