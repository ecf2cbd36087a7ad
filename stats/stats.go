// Package stats holds small diagnostics run over fitted series.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

const (
	DefaultLowerQuantile = 0.25
	DefaultUpperQuantile = 0.75
	DefaultTukeyFactor   = 1.5
)

// DetectOutliers returns the indices of y lying on or beyond the Tukey fences built from the
// lowerPerc and upperPerc quantiles widened by tukeyFactor times their spread. Non-finite
// values are ignored.
func DetectOutliers(y []float64, lowerPerc, upperPerc, tukeyFactor float64) []int {
	lowerPerc = math.Max(lowerPerc, 0.0)
	upperPerc = math.Min(upperPerc, 1.0)
	tukeyFactor = math.Max(tukeyFactor, 0.0)
	if lowerPerc > upperPerc {
		lowerPerc, upperPerc = upperPerc, lowerPerc
	}

	sorted := make([]float64, 0, len(y))
	for _, v := range y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		sorted = append(sorted, v)
	}
	if len(sorted) == 0 {
		return nil
	}
	sort.Float64s(sorted)

	lower := stat.Quantile(lowerPerc, stat.Empirical, sorted, nil)
	upper := stat.Quantile(upperPerc, stat.Empirical, sorted, nil)
	innerRange := upper - lower
	if innerRange == 0 {
		// a flat body has no spread to scale the fences with
		return nil
	}
	lower -= innerRange * tukeyFactor
	upper += innerRange * tukeyFactor

	var outlierIdx []int
	for i, v := range y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if v >= upper || v <= lower {
			outlierIdx = append(outlierIdx, i)
		}
	}
	return outlierIdx
}
