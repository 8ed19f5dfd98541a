// Package stats summarizes generator run durations.
package stats

import (
	"math"
	"sort"
)

// Percentile returns the p-th percentile (0-100) of values using linear
// interpolation between closest ranks. Empty input yields 0.
func Percentile(values []float64, p float64) float64 {
	return Percentiles(values, []float64{p})[0]
}

// Percentiles computes several percentiles with a single sort
func Percentiles(values []float64, ps []float64) []float64 {
	results := make([]float64, len(ps))
	if len(values) == 0 {
		return results
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	for i, p := range ps {
		p = math.Max(0, math.Min(100, p))
		index := p / 100 * float64(len(sorted)-1)
		lower := int(math.Floor(index))
		upper := int(math.Ceil(index))
		if lower == upper {
			results[i] = sorted[lower]
			continue
		}
		weight := index - float64(lower)
		results[i] = sorted[lower]*(1-weight) + sorted[upper]*weight
	}
	return results
}

// DurationSummary describes how long completed generator runs took
type DurationSummary struct {
	Count int     `json:"count"`
	MinMs float64 `json:"min_ms"`
	P50Ms float64 `json:"p50_ms"`
	P95Ms float64 `json:"p95_ms"`
	MaxMs float64 `json:"max_ms"`
}

// SummarizeDurations folds millisecond durations into a DurationSummary
func SummarizeDurations(ms []int64) DurationSummary {
	if len(ms) == 0 {
		return DurationSummary{}
	}
	values := make([]float64, len(ms))
	for i, v := range ms {
		values[i] = float64(v)
	}
	q := Percentiles(values, []float64{0, 50, 95, 100})
	return DurationSummary{
		Count: len(ms),
		MinMs: q[0],
		P50Ms: q[1],
		P95Ms: q[2],
		MaxMs: q[3],
	}
}
