// sim/metrics_utils.go
package sim

import (
	"slices"

	"gonum.org/v1/gonum/stat"
)

type IntOrFloat64 interface {
	int | int64 | float64
}

func toFloat64s[T IntOrFloat64](data []T) []float64 {
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = float64(v)
	}
	return out
}

// CalculatePercentile returns the p-th percentile (0-100) of data using the
// empirical CDF. Returns 0 for empty input. data is not modified.
func CalculatePercentile[T IntOrFloat64](data []T, p float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	sorted := toFloat64s(data)
	slices.Sort(sorted)
	return stat.Quantile(p/100.0, stat.Empirical, sorted, nil)
}

// CalculateMean returns the arithmetic mean of data, or 0 for empty input.
func CalculateMean[T IntOrFloat64](numbers []T) float64 {
	if len(numbers) == 0 {
		return 0.0
	}
	return stat.Mean(toFloat64s(numbers), nil)
}

// CalculateStdDev returns the sample standard deviation of data.
// Fewer than two samples have no spread and return 0.
func CalculateStdDev[T IntOrFloat64](numbers []T) float64 {
	if len(numbers) < 2 {
		return 0.0
	}
	return stat.StdDev(toFloat64s(numbers), nil)
}
