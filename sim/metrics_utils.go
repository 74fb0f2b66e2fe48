// sim/metrics_utils.go
package sim

import (
	"slices"

	"gonum.org/v1/gonum/stat"
)

// SampleSummary describes a sample of durations.
type SampleSummary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	P50    float64 `json:"p50"`
	P95    float64 `json:"p95"`
	P99    float64 `json:"p99"`
	Max    float64 `json:"max"`
}

// Summarize computes mean, standard deviation and empirical quantiles.
// The input is not modified. An empty sample yields the zero summary.
func Summarize(data []float64) SampleSummary {
	if len(data) == 0 {
		return SampleSummary{}
	}
	sorted := slices.Clone(data)
	slices.Sort(sorted)

	s := SampleSummary{
		Count: len(sorted),
		Mean:  stat.Mean(sorted, nil),
		P50:   stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P95:   stat.Quantile(0.95, stat.Empirical, sorted, nil),
		P99:   stat.Quantile(0.99, stat.Empirical, sorted, nil),
		Max:   sorted[len(sorted)-1],
	}
	// the unbiased estimator needs at least two samples
	if len(sorted) > 1 {
		s.StdDev = stat.StdDev(sorted, nil)
	}
	return s
}
