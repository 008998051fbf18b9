// Package pipeline runs the correlation analysis end to end: ingest the
// cohort, fit every (metric, region) series, render the group plots and
// emit the summary table. Each stage runs exactly once, top to bottom.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Domineuq/TempCorrModel/src/config"
	"github.com/Domineuq/TempCorrModel/src/ingest"
	"github.com/Domineuq/TempCorrModel/src/render"
	"github.com/Domineuq/TempCorrModel/src/report"
	"github.com/Domineuq/TempCorrModel/src/stats"
	"github.com/Domineuq/TempCorrModel/src/types"
)

// Result reports what a run produced, mainly for logging and tests.
type Result struct {
	Rows         int
	SummaryRows  int
	PlotsWritten int
	SkippedPairs int
}

// Run executes the whole pipeline under cfg. It fails only on I/O errors
// or when the cohort contributes zero rows; per-pair data-quality problems
// are logged skips.
func Run(cfg config.Config) (Result, error) {
	defer ingest.TimeTrack(time.Now(), "pipeline run")
	var res Result

	if err := cfg.Validate(); err != nil {
		return res, err
	}
	if err := os.MkdirAll(cfg.PlotDir, 0o755); err != nil {
		return res, fmt.Errorf("create plot dir: %w", err)
	}

	cases, err := ingest.DiscoverCases(cfg.BaseDir)
	if err != nil {
		return res, err
	}
	temps, err := ingest.LoadTemperatures(cfg.TempFile)
	if err != nil {
		return res, err
	}
	table, err := ingest.Aggregate(cfg, cases, temps)
	if err != nil {
		return res, err
	}
	res.Rows = table.Len()
	if table.Len() == 0 {
		return res, fmt.Errorf("no valid data found across cases: check file paths and temperature mapping")
	}
	ingest.Infof("aggregated %d measurement rows", table.Len())

	var summaries []stats.SummaryRecord
	for _, metric := range cfg.Metrics {
		for _, group := range cfg.Groups {
			var plottable []render.RegionSeries
			for _, region := range group.Regions {
				x, y := table.Series(metric, region)
				fit, err := stats.Fit(x, y)
				if err != nil {
					fmt.Printf("[stats] skipping %s (%s): %v\n", region, metric, err)
					res.SkippedPairs++
					continue
				}
				summaries = append(summaries, stats.Summarize(region, metric, fit))
				plottable = append(plottable, render.RegionSeries{
					Region: region,
					X:      x,
					Y:      y,
					Fit:    fit,
					Color:  render.ParseColor(cfg.RegionColors[region]),
				})
			}
			ok, err := render.WriteGroupPlots(cfg.PlotDir, metric, group.Name, plottable, cfg)
			if err != nil {
				return res, err
			}
			if ok {
				res.PlotsWritten++
			}
		}
	}
	res.SummaryRows = len(summaries)

	if err := report.Write(cfg.OutputCSV, summaries); err != nil {
		return res, err
	}
	ingest.Infof("analysis complete, summary saved to %s", cfg.OutputCSV)

	if err := render.WriteLegend(legendPath(cfg), legendRegions(cfg)); err != nil {
		return res, err
	}
	return res, nil
}

func legendPath(cfg config.Config) string {
	return filepath.Join(cfg.PlotDir, "legend_only.png")
}

// legendRegions flattens the configured groups into the ordered region
// color key used by the standalone legend.
func legendRegions(cfg config.Config) []render.RegionColor {
	var out []render.RegionColor
	for _, g := range cfg.Groups {
		for _, region := range g.Regions {
			out = append(out, render.RegionColor{
				Name:  region,
				Color: render.ParseColor(cfg.RegionColors[region]),
			})
		}
	}
	return out
}

// AggregateOnly runs just the ingestion fold, for callers that want the
// long table without fitting or rendering anything.
func AggregateOnly(cfg config.Config) (types.Table, error) {
	cases, err := ingest.DiscoverCases(cfg.BaseDir)
	if err != nil {
		return types.Table{}, err
	}
	temps, err := ingest.LoadTemperatures(cfg.TempFile)
	if err != nil {
		return types.Table{}, err
	}
	return ingest.Aggregate(cfg, cases, temps)
}
