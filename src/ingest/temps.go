package ingest

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Domineuq/TempCorrModel/src/types"
)

// LoadTemperatures reads the forehead-temperature table keyed by case name.
// The scan protocol records one column per metric family (temp_DTI, temp_T1,
// temp_T2, temp_T2s). Spreadsheets (.xlsx) and CSV exports are accepted;
// blank or non-numeric cells count as missing readings.
func LoadTemperatures(path string) (types.Temperatures, error) {
	var records [][]string
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		records, err = readSheet(path)
	default:
		records, err = readCSV(path)
	}
	if err != nil {
		return nil, err
	}
	return parseTemperatures(path, records)
}

func readSheet(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open temperature file %s: %w", path, err)
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: workbook has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s of %s: %w", sheets[0], path, err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open temperature file %s: %w", path, err)
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return records, nil
}

func parseTemperatures(path string, records [][]string) (types.Temperatures, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: temperature table is empty", path)
	}
	header := records[0]
	caseCol := -1
	for i, name := range header {
		if strings.TrimSpace(strings.TrimPrefix(name, utf8BOM)) == "case" {
			caseCol = i
			break
		}
	}
	if caseCol < 0 {
		return nil, fmt.Errorf("%s: missing column %q", path, "case")
	}
	temps := types.Temperatures{}
	for _, rec := range records[1:] {
		if caseCol >= len(rec) {
			continue
		}
		caseName := strings.TrimSpace(rec[caseCol])
		if caseName == "" {
			continue
		}
		cols := map[string]float64{}
		for i, name := range header {
			if i == caseCol || i >= len(rec) {
				continue
			}
			cell := strings.TrimSpace(rec[i])
			if cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil || math.IsNaN(v) {
				continue
			}
			cols[strings.TrimSpace(name)] = v
		}
		temps[caseName] = cols
	}
	Infof("loaded temperature records for %d cases from %s", len(temps), path)
	return temps, nil
}
