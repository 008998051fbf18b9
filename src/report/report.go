// Package report writes and reads the correlation summary artifact: one
// delimited row per (region, metric) pair that passed the fit
// preconditions. The file is UTF-8 with a byte-order mark so spreadsheet
// tools pick up the encoding (° and ± survive a double-click open).
package report

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/Domineuq/TempCorrModel/src/stats"
)

var header = []string{"DGM Region", "MRI Parameter", "Pearson r", "p-value", "Slope a", "Intercept b", "R_square"}

const utf8BOM = "\ufeff"

// Write emits the summary table to path, preserving record order.
func Write(path string, records []stats.SummaryRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create summary %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := w.WriteString(utf8BOM); err != nil {
		return fmt.Errorf("write summary %s: %w", path, err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write summary header: %w", err)
	}
	for _, rec := range records {
		row := []string{rec.Region, rec.Metric, rec.PearsonR, rec.PValue, rec.Slope, rec.Intercept, rec.RSquared}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write summary row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush summary %s: %w", path, err)
	}
	return w.Flush()
}

// Read parses a summary artifact back into records, tolerating the BOM.
func Read(path string) ([]stats.SummaryRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open summary %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse summary %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: empty summary", path)
	}
	first := strings.TrimPrefix(rows[0][0], utf8BOM)
	if first != header[0] || len(rows[0]) != len(header) {
		return nil, fmt.Errorf("%s: unexpected summary header", path)
	}
	var records []stats.SummaryRecord
	for i, row := range rows[1:] {
		if len(row) != len(header) {
			return nil, fmt.Errorf("%s: row %d has %d fields, want %d", path, i+2, len(row), len(header))
		}
		records = append(records, stats.SummaryRecord{
			Region:    row[0],
			Metric:    row[1],
			PearsonR:  row[2],
			PValue:    row[3],
			Slope:     row[4],
			Intercept: row[5],
			RSquared:  row[6],
		})
	}
	return records, nil
}
