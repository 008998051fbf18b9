// Package config carries every knob of the correlation pipeline as typed
// data: paths, metric list, structure groups, region colors and plot style.
// Default() mirrors the study constants; an optional YAML file can override
// individual fields so tests and reruns can substitute their own layout.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// StructureGroup names one anatomical grouping of DGM regions. Group and
// region order is meaningful: summary rows and plot legends follow it.
type StructureGroup struct {
	Name    string   `yaml:"name"`
	Regions []string `yaml:"regions"`
}

// PlotStyle holds the rendering parameters shared by all group plots.
type PlotStyle struct {
	Width          int     `yaml:"width"`
	Height         int     `yaml:"height"`
	FontSize       float64 `yaml:"font_size"`
	LegendFontSize float64 `yaml:"legend_font_size"`
	DotWidth       float64 `yaml:"dot_width"`
	// Fitted lines are extrapolated (dashed) out to this physiological
	// temperature range when the observed temperatures do not reach it.
	ExtrapolateMin float64 `yaml:"extrapolate_min"`
	ExtrapolateMax float64 `yaml:"extrapolate_max"`
}

// Config is the full pipeline configuration.
type Config struct {
	BaseDir   string `yaml:"base_dir"`
	TempFile  string `yaml:"temp_file"`
	OutputCSV string `yaml:"output_csv"`
	PlotDir   string `yaml:"plot_dir"`

	Metrics        []string `yaml:"metrics"`
	ExcludeRegions []string `yaml:"exclude_regions"`

	// TempColumns maps each MRI metric to the temperature column recorded
	// for its acquisition (DTI metrics share one probe reading).
	TempColumns map[string]string `yaml:"temp_columns"`

	Groups       []StructureGroup  `yaml:"groups"`
	RegionColors map[string]string `yaml:"region_colors"`

	// MetricLabels are the y-axis labels with units per metric.
	MetricLabels map[string]string `yaml:"metric_labels"`

	Plot PlotStyle `yaml:"plot"`
}

// Default returns the study configuration: five quantitative MRI metrics
// over seven deep gray matter regions in three structure groups.
func Default() Config {
	return Config{
		BaseDir:   "./cases",
		TempFile:  "./forehead_temperatures.xlsx",
		OutputCSV: "./temp_correlation_summary.csv",
		PlotDir:   "./plots",

		Metrics:        []string{"FA", "MD", "T1", "T2", "T2s"},
		ExcludeRegions: []string{"Accumbens"},

		TempColumns: map[string]string{
			"FA":  "temp_DTI",
			"MD":  "temp_DTI",
			"T1":  "temp_T1",
			"T2":  "temp_T2",
			"T2s": "temp_T2s",
		},

		Groups: []StructureGroup{
			{Name: "Basal Ganglia", Regions: []string{"Caudate", "Putamen", "Pallidum"}},
			{Name: "Limbic System", Regions: []string{"Hippocampus", "Amygdala"}},
			{Name: "Relay Centers", Regions: []string{"Thalamus", "Brainstem"}},
		},

		RegionColors: map[string]string{
			"Caudate":     "#1f77b4",
			"Putamen":     "#ff7f0e",
			"Pallidum":    "#2ca02c",
			"Hippocampus": "#9467bd",
			"Amygdala":    "#17becf",
			"Thalamus":    "#d62728",
			"Brainstem":   "#8c564b",
		},

		MetricLabels: map[string]string{
			"FA":  "FA",
			"MD":  "MD [mm²/s]",
			"T1":  "T1 [ms]",
			"T2":  "T2 [ms]",
			"T2s": "T2* [ms]",
		},

		Plot: PlotStyle{
			Width:          1200,
			Height:         800,
			FontSize:       18,
			LegendFontSize: 14,
			DotWidth:       6,
			ExtrapolateMin: 4,
			ExtrapolateMax: 37,
		},
	}
}

// Load reads a YAML file and overlays it on the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks internal consistency: every metric must have a
// temperature column and an axis label, every grouped region a color.
func (c Config) Validate() error {
	if len(c.Metrics) == 0 {
		return fmt.Errorf("config: no metrics configured")
	}
	for _, m := range c.Metrics {
		if _, ok := c.TempColumns[m]; !ok {
			return fmt.Errorf("config: metric %s has no temperature column", m)
		}
	}
	if len(c.Groups) == 0 {
		return fmt.Errorf("config: no structure groups configured")
	}
	for _, g := range c.Groups {
		if len(g.Regions) == 0 {
			return fmt.Errorf("config: group %q has no regions", g.Name)
		}
		for _, region := range g.Regions {
			if _, ok := c.RegionColors[region]; !ok {
				return fmt.Errorf("config: region %s has no color", region)
			}
		}
	}
	if c.Plot.ExtrapolateMin >= c.Plot.ExtrapolateMax {
		return fmt.Errorf("config: extrapolation range [%g, %g] is empty",
			c.Plot.ExtrapolateMin, c.Plot.ExtrapolateMax)
	}
	return nil
}

// Excluded reports whether a region is configured out of the analysis.
func (c Config) Excluded(region string) bool {
	for _, r := range c.ExcludeRegions {
		if r == region {
			return true
		}
	}
	return false
}

// MetricLabel returns the axis label for a metric, falling back to the
// metric name itself.
func (c Config) MetricLabel(metric string) string {
	if l, ok := c.MetricLabels[metric]; ok {
		return l
	}
	return metric
}
