// Temperature correction model entrypoint.
//
// Computes the correlation between forehead temperature during scan and
// quantitative MRI parameters (FA, MD, T1, T2, T2*) across deep gray
// matter regions: per-case result files are aggregated, each (metric,
// region) series is fitted with ordinary least squares, and the run emits
// one summary CSV plus scatter/regression plots per structure group.
//
// Design notes:
// - Configuration is constants-first: config.Default() carries the study
//   setup, an optional YAML file and the flags below only override file
//   locations and verbosity.
// - Missing files and degenerate series are narrow, logged skips; the only
//   fatal data condition is an entirely empty cohort.
// - Dependency direction: main -> pipeline for orchestration; the stage
//   packages (ingest, stats, render, report) share only the types package.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Domineuq/TempCorrModel/src/config"
	"github.com/Domineuq/TempCorrModel/src/ingest"
	"github.com/Domineuq/TempCorrModel/src/pipeline"
)

func main() {
	configPath := flag.String("config", "", "Optional YAML config overlaying the built-in study defaults")
	baseDir := flag.String("base", "", "Directory with one subfolder per case (overrides config)")
	tempFile := flag.String("temps", "", "Forehead temperature table, .xlsx or .csv (overrides config)")
	outputCSV := flag.String("out-csv", "", "Path of the summary CSV to write (overrides config)")
	plotDir := flag.String("plot-dir", "", "Directory for plot images (overrides config)")
	logLevel := flag.String("log-level", "info", "Log level (debug|info|warn|error)")
	flag.Parse()

	ingest.SetLogLevel(*logLevel)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if *baseDir != "" {
		cfg.BaseDir = *baseDir
	}
	if *tempFile != "" {
		cfg.TempFile = *tempFile
	}
	if *outputCSV != "" {
		cfg.OutputCSV = *outputCSV
	}
	if *plotDir != "" {
		cfg.PlotDir = *plotDir
	}

	res, err := pipeline.Run(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("rows=%d summary_rows=%d plots=%d skipped_pairs=%d\n",
		res.Rows, res.SummaryRows, res.PlotsWritten, res.SkippedPairs)
}
