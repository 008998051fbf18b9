// Package stats fits value-vs-temperature series: Pearson correlation,
// ordinary least squares slope/intercept and the analytic 95% confidence
// intervals on both. Pure computation, no rendering or I/O.
package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// FitResult holds one regression over a (temperature, value) series.
type FitResult struct {
	N         int
	R         float64 // Pearson correlation coefficient
	P         float64 // two-sided p-value of r
	Slope     float64
	Intercept float64
	RSquared  float64

	// 95% confidence half-widths on slope and intercept.
	SlopeCI     float64
	InterceptCI float64

	// Residual standard error over n-2 degrees of freedom, plus the
	// moments needed to evaluate the mean-response confidence band.
	ResidualSE float64
	XMean      float64
	SXX        float64
}

// Predict evaluates the fitted line at x.
func (f FitResult) Predict(x float64) float64 { return f.Slope*x + f.Intercept }

// Significant reports whether the correlation is significant at the 5% level.
func (f FitResult) Significant() bool { return f.P < 0.05 }

// Fit performs the regression. Series failing the preconditions (fewer than
// two points, non-finite entries, constant x or y) yield an error naming
// the reason; callers treat that as a skip, not a failure.
func Fit(x, y []float64) (FitResult, error) {
	if len(x) != len(y) {
		return FitResult{}, fmt.Errorf("mismatched series lengths %d vs %d", len(x), len(y))
	}
	n := len(x)
	if n < 2 {
		return FitResult{}, fmt.Errorf("need at least 2 points, have %d", n)
	}
	for i := 0; i < n; i++ {
		if !finite(x[i]) || !finite(y[i]) {
			return FitResult{}, fmt.Errorf("non-finite value at index %d", i)
		}
	}
	if distinct(y) < 2 {
		return FitResult{}, fmt.Errorf("constant values, regression undefined")
	}
	if distinct(x) < 2 {
		return FitResult{}, fmt.Errorf("constant temperatures, regression undefined")
	}

	r := stat.Correlation(x, y, nil)
	intercept, slope := stat.LinearRegression(x, y, nil, false)

	xMean := stat.Mean(x, nil)
	sxx := 0.0
	for _, xv := range x {
		d := xv - xMean
		sxx += d * d
	}

	fit := FitResult{
		N:         n,
		R:         r,
		Slope:     slope,
		Intercept: intercept,
		RSquared:  r * r,
		XMean:     xMean,
		SXX:       sxx,
	}

	dof := n - 2
	if dof < 1 {
		// Exact two-point fit: zero residuals, no spare degrees of freedom.
		fit.P = 1
		return fit, nil
	}

	rss := 0.0
	for i := 0; i < n; i++ {
		resid := y[i] - fit.Predict(x[i])
		rss += resid * resid
	}
	fit.ResidualSE = math.Sqrt(rss / float64(dof))

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(dof)}
	fit.P = pValue(r, dof, tDist)

	tCrit := tDist.Quantile(0.975)
	seSlope := fit.ResidualSE / math.Sqrt(sxx)
	seIntercept := fit.ResidualSE * math.Sqrt(1/float64(n)+xMean*xMean/sxx)
	fit.SlopeCI = tCrit * seSlope
	fit.InterceptCI = tCrit * seIntercept
	return fit, nil
}

// pValue converts a correlation coefficient into a two-sided p-value via
// the t statistic r*sqrt(dof/(1-r^2)).
func pValue(r float64, dof int, tDist distuv.StudentsT) float64 {
	denom := 1 - r*r
	if denom <= 0 {
		return 0 // perfect correlation
	}
	t := math.Abs(r) * math.Sqrt(float64(dof)/denom)
	p := 2 * tDist.CDF(-t)
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return p
}

// Band evaluates the 95% confidence band of the mean response on a grid of
// x positions, returning the lower and upper bounds per position. For a
// two-point fit the band collapses onto the line.
func (f FitResult) Band(xs []float64) (lower, upper []float64) {
	lower = make([]float64, len(xs))
	upper = make([]float64, len(xs))
	dof := f.N - 2
	if dof < 1 || f.SXX <= 0 {
		for i, xv := range xs {
			yv := f.Predict(xv)
			lower[i], upper[i] = yv, yv
		}
		return lower, upper
	}
	tCrit := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(dof)}.Quantile(0.975)
	for i, xv := range xs {
		yv := f.Predict(xv)
		d := xv - f.XMean
		half := tCrit * f.ResidualSE * math.Sqrt(1/float64(f.N)+d*d/f.SXX)
		lower[i] = yv - half
		upper[i] = yv + half
	}
	return lower, upper
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func distinct(vals []float64) int {
	seen := map[float64]bool{}
	for _, v := range vals {
		seen[v] = true
	}
	return len(seen)
}
