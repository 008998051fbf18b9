// Package ingest discovers per-case result files, loads and cleans the
// measurement tables and folds them into one aggregated table with the
// per-case forehead temperature attached to every row.
package ingest

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Domineuq/TempCorrModel/src/config"
	"github.com/Domineuq/TempCorrModel/src/types"
)

// outputSubdir is the fixed per-case folder holding the segmentation results.
const outputSubdir = "00_OUTPUT"

// utf8BOM is stripped from header names so files exported by spreadsheet
// tools still resolve their columns.
const utf8BOM = "\ufeff"

// DiscoverCases lists the case folders under baseDir, one case per
// subdirectory, in directory order.
func DiscoverCases(baseDir string) ([]string, error) {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return nil, fmt.Errorf("read case dir %s: %w", baseDir, err)
	}
	var cases []string
	for _, e := range entries {
		if e.IsDir() {
			cases = append(cases, e.Name())
		}
	}
	Infof("found %d case folders in %s", len(cases), baseDir)
	return cases, nil
}

// readRows parses a result CSV into measurement rows. Required columns are
// located by header name; extra columns are ignored. Values that do not
// parse as numbers become NaN and are dropped at the statistics stage.
func readRows(path string) ([]types.MeasurementRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	col := map[string]int{}
	for i, name := range records[0] {
		col[strings.TrimSpace(strings.TrimPrefix(name, utf8BOM))] = i
	}
	for _, required := range []string{"case", "metric", "region", "value"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("%s: missing column %q", path, required)
		}
	}
	field := func(rec []string, name string) string {
		i := col[name]
		if i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}
	var rows []types.MeasurementRow
	for _, rec := range records[1:] {
		v, perr := strconv.ParseFloat(field(rec, "value"), 64)
		if perr != nil {
			v = math.NaN()
		}
		rows = append(rows, types.MeasurementRow{
			Case:   field(rec, "case"),
			Metric: field(rec, "metric"),
			Region: field(rec, "region"),
			Value:  v,
		})
	}
	return rows, nil
}

// dedupFirst keeps the first row per (case, metric, region) key, preserving
// encounter order. Later duplicates are dropped regardless of value.
func dedupFirst(rows []types.MeasurementRow) []types.MeasurementRow {
	seen := map[[3]string]bool{}
	out := rows[:0:0]
	for _, r := range rows {
		key := [3]string{r.Case, r.Metric, r.Region}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}

// clean applies region exclusion then first-occurrence dedup.
func clean(cfg config.Config, rows []types.MeasurementRow) []types.MeasurementRow {
	kept := rows[:0:0]
	for _, r := range rows {
		if cfg.Excluded(r.Region) {
			continue
		}
		kept = append(kept, r)
	}
	return dedupFirst(kept)
}

// LoadCase reads one case's primary result file, substituting corrected T1
// rows when the corrected file exists. Returns ok=false (not an error) when
// the primary file is absent so the caller can skip the case.
func LoadCase(cfg config.Config, baseDir, caseName string) ([]types.MeasurementRow, bool, error) {
	mainPath := filepath.Join(baseDir, caseName, outputSubdir, caseName+"_output.csv")
	t1Path := filepath.Join(baseDir, caseName, outputSubdir, caseName+"_output_correctT1.csv")

	if _, err := os.Stat(mainPath); err != nil {
		Warnf("case %s skipped: main file not found", caseName)
		return nil, false, nil
	}
	rows, err := readRows(mainPath)
	if err != nil {
		return nil, false, err
	}
	rows = clean(cfg, rows)

	if _, err := os.Stat(t1Path); err == nil {
		t1Rows, rerr := readRows(t1Path)
		if rerr != nil {
			return nil, false, rerr
		}
		var corrected []types.MeasurementRow
		for _, r := range t1Rows {
			if r.Metric == "T1" {
				corrected = append(corrected, r)
			}
		}
		corrected = clean(cfg, corrected)
		// Corrected values fully replace uncorrected T1 for this case.
		replaced := rows[:0:0]
		for _, r := range rows {
			if r.Metric != "T1" {
				replaced = append(replaced, r)
			}
		}
		rows = append(replaced, corrected...)
	} else {
		Infof("no corrected T1 file for case %s", caseName)
	}
	return rows, true, nil
}

// Aggregate folds all cases into one immutable table. Per case: load rows,
// attach the metric-family temperature; a case missing from the temperature
// table, or a metric missing its reading, is skipped narrowly and logged.
func Aggregate(cfg config.Config, cases []string, temps types.Temperatures) (types.Table, error) {
	var all []types.MeasurementRow
	for _, caseName := range cases {
		rows, ok, err := LoadCase(cfg, cfg.BaseDir, caseName)
		if err != nil {
			// Malformed input is a per-case skip, not a cohort failure.
			Warnf("case %s skipped: %v", caseName, err)
			continue
		}
		if !ok {
			continue
		}
		if !temps.Has(caseName) {
			Warnf("case %s skipped: no matching temperature data", caseName)
			continue
		}
		for _, metric := range cfg.Metrics {
			temp, ok := temps.Lookup(caseName, cfg.TempColumns[metric])
			if !ok {
				Warnf("case %s metric %s skipped: no temperature value in column %s",
					caseName, metric, cfg.TempColumns[metric])
				continue
			}
			for _, r := range rows {
				if r.Metric != metric {
					continue
				}
				r.Temperature = temp
				all = append(all, r)
			}
		}
	}
	return types.Table{Rows: all}, nil
}
