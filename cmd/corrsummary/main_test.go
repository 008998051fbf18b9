package main

import (
	"testing"

	"github.com/Domineuq/TempCorrModel/src/stats"
)

func tallyRecords() []stats.SummaryRecord {
	return []stats.SummaryRecord{
		{Region: "Caudate", Metric: "FA", PValue: "3.20e-02", PearsonR: "8.1000e-01"},
		{Region: "Putamen", Metric: "FA", PValue: "4.50e-01", PearsonR: "2.0000e-01"},
		{Region: "Caudate", Metric: "T2", PValue: "1.00e-03", PearsonR: "9.0000e-01"},
	}
}

func TestTallyUnfiltered(t *testing.T) {
	total, counts, significant := tally(tallyRecords(), "")
	if total != 3 {
		t.Fatalf("total = %d, want 3", total)
	}
	if counts["FA"] != 2 || counts["T2"] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
	if len(significant) != 2 {
		t.Fatalf("expected 2 significant pairs, got %v", significant)
	}
}

func TestTallyMetricFilterAppliesToTotal(t *testing.T) {
	total, counts, significant := tally(tallyRecords(), "FA")
	if total != 2 {
		t.Fatalf("filtered total = %d, want 2", total)
	}
	if len(counts) != 1 || counts["FA"] != 2 {
		t.Fatalf("unexpected counts: %v", counts)
	}
	if len(significant) != 1 {
		t.Fatalf("expected 1 significant FA pair, got %v", significant)
	}
}
