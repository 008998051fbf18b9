// Package types holds the row and table shapes shared between ingestion,
// statistics, rendering and reporting. Keeping them here avoids import
// cycles between the stage packages.
package types

import "math"

// MeasurementRow is one (case, metric, region) observation with the
// forehead temperature measured for that case's metric family attached.
// Value is NaN when the source cell could not be parsed as a number.
type MeasurementRow struct {
	Case        string
	Metric      string
	Region      string
	Value       float64
	Temperature float64
}

// Valid reports whether the row carries a finite value and temperature.
func (r MeasurementRow) Valid() bool {
	return isFinite(r.Value) && isFinite(r.Temperature)
}

// Table is the aggregated long table over the whole cohort, one row per
// surviving (case, metric, region). It is built once by the ingestion fold
// and never mutated afterwards.
type Table struct {
	Rows []MeasurementRow
}

// Len returns the number of rows.
func (t Table) Len() int { return len(t.Rows) }

// Series extracts the (temperature, value) pairs for one metric/region,
// dropping rows with non-finite value or temperature. The two slices are
// parallel and ordered as the rows were aggregated.
func (t Table) Series(metric, region string) (x, y []float64) {
	for _, r := range t.Rows {
		if r.Metric != metric || r.Region != region {
			continue
		}
		if !r.Valid() {
			continue
		}
		x = append(x, r.Temperature)
		y = append(y, r.Value)
	}
	return x, y
}

// Temperatures maps case name -> temperature column -> measured value (°C).
// A missing column entry means no reading exists for that metric family.
type Temperatures map[string]map[string]float64

// Lookup returns the temperature for a case and column, with ok=false when
// the case is unknown, the column is absent, or the cell was not numeric.
func (t Temperatures) Lookup(caseName, column string) (float64, bool) {
	cols, ok := t[caseName]
	if !ok {
		return 0, false
	}
	v, ok := cols[column]
	if !ok || !isFinite(v) {
		return 0, false
	}
	return v, true
}

// Has reports whether the case appears in the temperature table at all.
func (t Temperatures) Has(caseName string) bool {
	_, ok := t[caseName]
	return ok
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
