package stats

import "fmt"

// SummaryRecord is one row of the emitted correlation table: a region/metric
// pair with the formatted fit parameters.
type SummaryRecord struct {
	Region    string
	Metric    string
	PearsonR  string
	PValue    string
	Slope     string
	Intercept string
	RSquared  string
}

// FormatSci renders a value in scientific notation at the given number of
// decimal digits, matching the precision conventions of the summary table.
func FormatSci(v float64, precision int) string {
	return fmt.Sprintf("%.*e", precision, v)
}

// Summarize formats a fit into its summary row: r and R² at 4 digits,
// p-value, slope and intercept (with their CI half-widths) at 2.
func Summarize(region, metric string, fit FitResult) SummaryRecord {
	return SummaryRecord{
		Region:    region,
		Metric:    metric,
		PearsonR:  FormatSci(fit.R, 4),
		PValue:    FormatSci(fit.P, 2),
		Slope:     fmt.Sprintf("%s ± %s", FormatSci(fit.Slope, 2), FormatSci(fit.SlopeCI, 2)),
		Intercept: fmt.Sprintf("%s ± %s", FormatSci(fit.Intercept, 2), FormatSci(fit.InterceptCI, 2)),
		RSquared:  FormatSci(fit.RSquared, 4),
	}
}

// FormatP renders a p-value for plot legends: "p < 0.001" below the
// reporting floor, otherwise three fixed decimals.
func FormatP(p float64) string {
	if p < 0.001 {
		return "p < 0.001"
	}
	return fmt.Sprintf("p = %.3f", p)
}
