// Package render turns fitted series into plot files. It consumes
// precomputed fit results; everything here is go-chart assembly.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/Domineuq/TempCorrModel/src/config"
	"github.com/Domineuq/TempCorrModel/src/stats"
)

// bandGridPoints is the sampling density of the confidence band across the
// observed temperature range.
const bandGridPoints = 50

// RegionSeries is one plottable region: its observations, fit and color.
type RegionSeries struct {
	Region string
	X      []float64
	Y      []float64
	Fit    stats.FitResult
	Color  drawing.Color
}

// ParseColor converts a "#rrggbb" hex string into a drawing color.
func ParseColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

// PlotFileNames returns the raster and vector file names for a
// metric/group pair, spaces in the group name replaced by underscores.
func PlotFileNames(metric, group string) (png, svg string) {
	base := fmt.Sprintf("%s_%s_vs_temp", metric, strings.ReplaceAll(group, " ", "_"))
	return base + ".png", base + ".svg"
}

// WriteGroupPlots renders the scatter + regression chart for one
// metric/group pair and writes it as PNG and SVG under dir. With zero
// plottable regions nothing is written and ok is false.
func WriteGroupPlots(dir, metric, group string, regions []RegionSeries, cfg config.Config) (ok bool, err error) {
	if len(regions) == 0 {
		fmt.Printf("[render] no valid data to plot for %s in %s\n", metric, group)
		return false, nil
	}
	ch := buildGroupChart(metric, regions, cfg)

	pngName, svgName := PlotFileNames(metric, group)
	if err := renderTo(ch, chart.PNG, filepath.Join(dir, pngName)); err != nil {
		return false, err
	}
	if err := renderTo(ch, chart.SVG, filepath.Join(dir, svgName)); err != nil {
		return false, err
	}
	return true, nil
}

func renderTo(ch chart.Chart, provider chart.RendererProvider, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create plot %s: %w", path, err)
	}
	defer f.Close()
	if err := ch.Render(provider, f); err != nil {
		return fmt.Errorf("render plot %s: %w", path, err)
	}
	return nil
}

func buildGroupChart(metric string, regions []RegionSeries, cfg config.Config) chart.Chart {
	var series []chart.Series
	var entries []legendEntry

	for _, rs := range regions {
		xMin, xMax := minMax(rs.X)

		// 95% confidence band over the observed range, under everything else.
		grid := linspace(xMin, xMax, bandGridPoints)
		lower, upper := rs.Fit.Band(grid)
		series = append(series, confidenceBand{
			Name:    rs.Region + " 95% CI",
			XValues: grid,
			Lower:   lower,
			Upper:   upper,
			Style: chart.Style{
				FillColor:   rs.Color.WithAlpha(45),
				StrokeColor: rs.Color.WithAlpha(45),
				StrokeWidth: 1,
			},
		})

		// Fitted line across the observed range.
		series = append(series, chart.ContinuousSeries{
			Name:    rs.Region + " fit",
			XValues: []float64{xMin, xMax},
			YValues: []float64{rs.Fit.Predict(xMin), rs.Fit.Predict(xMax)},
			Style:   chart.Style{StrokeColor: rs.Color, StrokeWidth: 2.5},
		})

		// Dashed extrapolation out to the physiological bounds.
		dash := chart.Style{
			StrokeColor:     rs.Color,
			StrokeWidth:     2,
			StrokeDashArray: []float64{6.0, 5.0},
		}
		if xMin > cfg.Plot.ExtrapolateMin {
			series = append(series, chart.ContinuousSeries{
				Name:    rs.Region + " extrapolated",
				XValues: []float64{cfg.Plot.ExtrapolateMin, xMin},
				YValues: []float64{rs.Fit.Predict(cfg.Plot.ExtrapolateMin), rs.Fit.Predict(xMin)},
				Style:   dash,
			})
		}
		if xMax < cfg.Plot.ExtrapolateMax {
			series = append(series, chart.ContinuousSeries{
				Name:    rs.Region + " extrapolated",
				XValues: []float64{xMax, cfg.Plot.ExtrapolateMax},
				YValues: []float64{rs.Fit.Predict(xMax), rs.Fit.Predict(cfg.Plot.ExtrapolateMax)},
				Style:   dash,
			})
		}

		// Scatter points on top.
		series = append(series, chart.ContinuousSeries{
			Name:    rs.Region,
			XValues: rs.X,
			YValues: rs.Y,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotColor:    rs.Color,
				DotWidth:    cfg.Plot.DotWidth,
			},
		})

		entries = append(entries, legendEntry{
			Text:  stats.FormatP(rs.Fit.P),
			Color: rs.Color,
			Bold:  rs.Fit.Significant(),
		})
	}

	ch := chart.Chart{
		Width:      cfg.Plot.Width,
		Height:     cfg.Plot.Height,
		Background: chart.Style{Padding: chart.Box{Top: 24, Left: 24, Right: 24, Bottom: 24}},
		XAxis: chart.XAxis{
			Name:      "Forehead temperature [°C]",
			NameStyle: chart.Style{FontSize: cfg.Plot.FontSize},
		},
		YAxis: chart.YAxis{
			Name:      cfg.MetricLabel(metric),
			NameStyle: chart.Style{FontSize: cfg.Plot.FontSize},
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{significanceLegend(entries, cfg.Plot.LegendFontSize)}
	return ch
}

func minMax(vals []float64) (lo, hi float64) {
	lo, hi = vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func linspace(lo, hi float64, n int) []float64 {
	if n < 2 || hi <= lo {
		return []float64{lo, hi}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}
