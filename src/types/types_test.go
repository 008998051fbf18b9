package types

import (
	"math"
	"testing"
)

func TestRowValidity(t *testing.T) {
	if !(MeasurementRow{Value: 1.5, Temperature: 20}).Valid() {
		t.Fatalf("finite row reported invalid")
	}
	if (MeasurementRow{Value: math.NaN(), Temperature: 20}).Valid() {
		t.Fatalf("NaN value reported valid")
	}
	if (MeasurementRow{Value: 1, Temperature: math.Inf(-1)}).Valid() {
		t.Fatalf("infinite temperature reported valid")
	}
}

func TestSeriesFiltersAndPreservesOrder(t *testing.T) {
	tb := Table{Rows: []MeasurementRow{
		{Case: "a", Metric: "FA", Region: "Caudate", Value: 0.5, Temperature: 10},
		{Case: "b", Metric: "FA", Region: "Caudate", Value: math.NaN(), Temperature: 20},
		{Case: "c", Metric: "FA", Region: "Caudate", Value: 0.7, Temperature: 30},
		{Case: "c", Metric: "T2", Region: "Caudate", Value: 80, Temperature: 30},
		{Case: "c", Metric: "FA", Region: "Putamen", Value: 0.6, Temperature: 30},
	}}
	x, y := tb.Series("FA", "Caudate")
	if len(x) != 2 || len(y) != 2 {
		t.Fatalf("expected 2 valid points, got %d/%d", len(x), len(y))
	}
	if x[0] != 10 || x[1] != 30 || y[0] != 0.5 || y[1] != 0.7 {
		t.Fatalf("series out of order: x=%v y=%v", x, y)
	}
}

func TestTemperatureLookup(t *testing.T) {
	temps := Temperatures{
		"case01": {"temp_DTI": 21.5},
		"case02": {},
	}
	if v, ok := temps.Lookup("case01", "temp_DTI"); !ok || v != 21.5 {
		t.Fatalf("lookup: %v %v", v, ok)
	}
	if _, ok := temps.Lookup("case02", "temp_DTI"); ok {
		t.Fatalf("missing column must not resolve")
	}
	if _, ok := temps.Lookup("case99", "temp_DTI"); ok {
		t.Fatalf("missing case must not resolve")
	}
	if !temps.Has("case02") || temps.Has("case99") {
		t.Fatalf("Has misreports presence")
	}
}
