// corrsummary inspects an emitted correlation summary CSV: row counts per
// MRI parameter and the region/metric pairs significant at the 5% level.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/Domineuq/TempCorrModel/src/report"
	"github.com/Domineuq/TempCorrModel/src/stats"
)

// tally counts the records matching the optional metric filter. The total
// covers the same filtered set as the per-metric counts and the
// significance list.
func tally(records []stats.SummaryRecord, metric string) (total int, counts map[string]int, significant []string) {
	counts = map[string]int{}
	for _, rec := range records {
		if metric != "" && rec.Metric != metric {
			continue
		}
		total++
		counts[rec.Metric]++
		p, perr := strconv.ParseFloat(rec.PValue, 64)
		if perr == nil && p < 0.05 {
			significant = append(significant, fmt.Sprintf("%s / %s (p=%s, r=%s)", rec.Region, rec.Metric, rec.PValue, rec.PearsonR))
		}
	}
	return total, counts, significant
}

func main() {
	var file string
	var metric string
	flag.StringVar(&file, "file", "temp_correlation_summary.csv", "Path to summary CSV")
	flag.StringVar(&metric, "metric", "", "Optional MRI parameter filter (exact match)")
	flag.Parse()

	records, err := report.Read(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	total, counts, significant := tally(records, metric)

	fmt.Printf("Total pairs: %d\n", total)
	for k, v := range counts {
		fmt.Printf("%s: %d\n", k, v)
	}
	if len(significant) > 0 {
		fmt.Println("Significant at p < 0.05:")
		for _, s := range significant {
			fmt.Printf("  %s\n", s)
		}
	}
}
