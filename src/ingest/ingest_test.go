package ingest

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/Domineuq/TempCorrModel/src/config"
	"github.com/Domineuq/TempCorrModel/src/types"
)

// writeCaseFile writes a result CSV under <base>/<case>/00_OUTPUT/ with the
// given suffix ("" for the primary file, "_correctT1" for the corrected one).
func writeCaseFile(t *testing.T, base, caseName, suffix string, rows [][4]string) {
	t.Helper()
	dir := filepath.Join(base, caseName, "00_OUTPUT")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	content := "case,metric,region,value\n"
	for _, r := range rows {
		content += r[0] + "," + r[1] + "," + r[2] + "," + r[3] + "\n"
	}
	path := filepath.Join(dir, caseName+"_output"+suffix+".csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func writeTempCSV(t *testing.T, dir string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, "temps.csv")
	content := ""
	for _, l := range lines {
		content += l + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temps: %v", err)
	}
	return path
}

func testConfig(base, tempFile string) config.Config {
	cfg := config.Default()
	cfg.BaseDir = base
	cfg.TempFile = tempFile
	return cfg
}

func countRows(tb types.Table, match func(types.MeasurementRow) bool) int {
	n := 0
	for _, r := range tb.Rows {
		if match(r) {
			n++
		}
	}
	return n
}

func TestDedupKeepsFirstOccurrence(t *testing.T) {
	base := t.TempDir()
	writeCaseFile(t, base, "case01", "", [][4]string{
		{"case01", "FA", "Caudate", "0.51"},
		{"case01", "FA", "Caudate", "0.99"},
		{"case01", "FA", "Putamen", "0.44"},
	})
	tempPath := writeTempCSV(t, t.TempDir(), "case,temp_DTI", "case01,21.5")
	cfg := testConfig(base, tempPath)

	temps, err := LoadTemperatures(tempPath)
	if err != nil {
		t.Fatalf("temps: %v", err)
	}
	tb, err := Aggregate(cfg, []string{"case01"}, temps)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	caudate := 0
	for _, r := range tb.Rows {
		if r.Region == "Caudate" {
			caudate++
			if r.Value != 0.51 {
				t.Fatalf("expected first-occurrence value 0.51, got %v", r.Value)
			}
		}
	}
	if caudate != 1 {
		t.Fatalf("expected exactly one Caudate row, got %d", caudate)
	}
}

func TestExcludedRegionDropped(t *testing.T) {
	base := t.TempDir()
	writeCaseFile(t, base, "case01", "", [][4]string{
		{"case01", "FA", "Accumbens", "0.3"},
		{"case01", "FA", "Caudate", "0.5"},
	})
	tempPath := writeTempCSV(t, t.TempDir(), "case,temp_DTI", "case01,20")
	cfg := testConfig(base, tempPath)
	temps, _ := LoadTemperatures(tempPath)
	tb, err := Aggregate(cfg, []string{"case01"}, temps)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if n := countRows(tb, func(r types.MeasurementRow) bool { return r.Region == "Accumbens" }); n != 0 {
		t.Fatalf("excluded region survived: %d rows", n)
	}
	if tb.Len() != 1 {
		t.Fatalf("expected 1 row, got %d", tb.Len())
	}
}

func TestCorrectedT1ReplacesUncorrected(t *testing.T) {
	base := t.TempDir()
	writeCaseFile(t, base, "case01", "", [][4]string{
		{"case01", "T1", "Caudate", "900"},
		{"case01", "T1", "Putamen", "910"},
		{"case01", "T2", "Caudate", "80"},
	})
	writeCaseFile(t, base, "case01", "_correctT1", [][4]string{
		{"case01", "T1", "Caudate", "950"},
		{"case01", "T2", "Caudate", "999"}, // non-T1 rows in the corrected file are ignored
	})
	tempPath := writeTempCSV(t, t.TempDir(), "case,temp_T1,temp_T2", "case01,21,21")
	cfg := testConfig(base, tempPath)
	temps, _ := LoadTemperatures(tempPath)
	tb, err := Aggregate(cfg, []string{"case01"}, temps)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	t1 := 0
	for _, r := range tb.Rows {
		if r.Metric != "T1" {
			continue
		}
		t1++
		if r.Region != "Caudate" || r.Value != 950 {
			t.Fatalf("unexpected T1 row after replacement: %+v", r)
		}
	}
	if t1 != 1 {
		t.Fatalf("expected exactly the corrected T1 rows, got %d", t1)
	}
	if n := countRows(tb, func(r types.MeasurementRow) bool { return r.Metric == "T2" && r.Value == 80 }); n != 1 {
		t.Fatalf("uncorrected non-T1 rows must survive")
	}
}

func TestMissingMainFileSkipsCase(t *testing.T) {
	base := t.TempDir()
	if err := os.MkdirAll(filepath.Join(base, "case01", "00_OUTPUT"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeCaseFile(t, base, "case02", "", [][4]string{{"case02", "FA", "Caudate", "0.5"}})
	tempPath := writeTempCSV(t, t.TempDir(), "case,temp_DTI", "case01,20", "case02,25")
	cfg := testConfig(base, tempPath)
	temps, _ := LoadTemperatures(tempPath)
	tb, err := Aggregate(cfg, []string{"case01", "case02"}, temps)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if n := countRows(tb, func(r types.MeasurementRow) bool { return r.Case == "case01" }); n != 0 {
		t.Fatalf("case without main file contributed rows")
	}
	if tb.Len() != 1 {
		t.Fatalf("expected 1 row from case02, got %d", tb.Len())
	}
}

func TestCaseMissingFromTemperatureTable(t *testing.T) {
	base := t.TempDir()
	writeCaseFile(t, base, "case01", "", [][4]string{{"case01", "FA", "Caudate", "0.5"}})
	tempPath := writeTempCSV(t, t.TempDir(), "case,temp_DTI", "other,20")
	cfg := testConfig(base, tempPath)
	temps, _ := LoadTemperatures(tempPath)
	tb, err := Aggregate(cfg, []string{"case01"}, temps)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if tb.Len() != 0 {
		t.Fatalf("case absent from temperature table must contribute zero rows, got %d", tb.Len())
	}
}

func TestMissingMetricTemperatureSkipsMetricOnly(t *testing.T) {
	base := t.TempDir()
	writeCaseFile(t, base, "case01", "", [][4]string{
		{"case01", "FA", "Caudate", "0.5"},
		{"case01", "T2", "Caudate", "80"},
	})
	// temp_T2 column exists but the cell is blank -> missing reading.
	tempPath := writeTempCSV(t, t.TempDir(), "case,temp_DTI,temp_T2", "case01,20,")
	cfg := testConfig(base, tempPath)
	temps, _ := LoadTemperatures(tempPath)
	tb, err := Aggregate(cfg, []string{"case01"}, temps)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if n := countRows(tb, func(r types.MeasurementRow) bool { return r.Metric == "T2" }); n != 0 {
		t.Fatalf("metric without temperature reading must be skipped")
	}
	if n := countRows(tb, func(r types.MeasurementRow) bool { return r.Metric == "FA" && r.Temperature == 20 }); n != 1 {
		t.Fatalf("FA rows should carry the DTI temperature")
	}
}

func TestNonNumericValueBecomesNaN(t *testing.T) {
	base := t.TempDir()
	writeCaseFile(t, base, "case01", "", [][4]string{
		{"case01", "FA", "Caudate", "not_a_number"},
		{"case01", "FA", "Putamen", "0.4"},
	})
	tempPath := writeTempCSV(t, t.TempDir(), "case,temp_DTI", "case01,20")
	cfg := testConfig(base, tempPath)
	temps, _ := LoadTemperatures(tempPath)
	tb, err := Aggregate(cfg, []string{"case01"}, temps)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if tb.Len() != 2 {
		t.Fatalf("coerced rows stay in the table, got %d", tb.Len())
	}
	for _, r := range tb.Rows {
		if r.Region == "Caudate" && !math.IsNaN(r.Value) {
			t.Fatalf("expected NaN for unparseable value, got %v", r.Value)
		}
	}
	// The series accessor is what drops them.
	x, y := tb.Series("FA", "Caudate")
	if len(x) != 0 || len(y) != 0 {
		t.Fatalf("NaN rows must not reach a series")
	}
}

func TestBOMPrefixedHeadersResolve(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "case01", "00_OUTPUT")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	// Spreadsheet exports prepend the BOM bytes to the first header cell.
	content := "\xEF\xBB\xBFcase,metric,region,value\ncase01,FA,Caudate,0.5\n"
	if err := os.WriteFile(filepath.Join(dir, "case01_output.csv"), []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	tempPath := writeTempCSV(t, t.TempDir(), "\xEF\xBB\xBFcase,temp_DTI", "case01,21.5")
	cfg := testConfig(base, tempPath)
	temps, err := LoadTemperatures(tempPath)
	if err != nil {
		t.Fatalf("temps: %v", err)
	}
	tb, err := Aggregate(cfg, []string{"case01"}, temps)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if tb.Len() != 1 || tb.Rows[0].Temperature != 21.5 {
		t.Fatalf("BOM-prefixed headers must resolve, got %+v", tb.Rows)
	}
}

func TestMalformedCaseFileSkipsCase(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "case01", "00_OUTPUT")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	// Header lacks the required value column.
	bad := "case,metric,region\ncase01,FA,Caudate\n"
	if err := os.WriteFile(filepath.Join(dir, "case01_output.csv"), []byte(bad), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	writeCaseFile(t, base, "case02", "", [][4]string{{"case02", "FA", "Caudate", "0.6"}})
	tempPath := writeTempCSV(t, t.TempDir(), "case,temp_DTI", "case01,20", "case02,25")
	cfg := testConfig(base, tempPath)
	temps, _ := LoadTemperatures(tempPath)
	tb, err := Aggregate(cfg, []string{"case01", "case02"}, temps)
	if err != nil {
		t.Fatalf("aggregate must not fail on a malformed case: %v", err)
	}
	if tb.Len() != 1 || tb.Rows[0].Case != "case02" {
		t.Fatalf("expected only case02 rows, got %+v", tb.Rows)
	}
}

func TestDiscoverCasesListsDirectoriesOnly(t *testing.T) {
	base := t.TempDir()
	if err := os.MkdirAll(filepath.Join(base, "case01"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(base, "stray.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cases, err := DiscoverCases(base)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(cases) != 1 || cases[0] != "case01" {
		t.Fatalf("unexpected cases: %v", cases)
	}
}
