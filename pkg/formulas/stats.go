// Package formulas provides the statistical primitives shared by the
// metrics and report modules.
package formulas

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Epsilon guards ratio denominators against division by zero.
const Epsilon = 1e-8

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// StdDev calculates the sample standard deviation (Bessel-corrected)
func StdDev(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// PopStdDev calculates the population standard deviation.
// Full-sequence statistics use this estimator; windowed statistics use
// the sample estimator.
func PopStdDev(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.PopStdDev(data, nil)
}

// RollingMean returns the windowed mean aligned to the input index.
// Positions before the first full window are NaN.
func RollingMean(data []float64, window int) []float64 {
	return rolling(data, window, func(w []float64) float64 {
		return stat.Mean(w, nil)
	})
}

// RollingStdDev returns the windowed sample standard deviation aligned to
// the input index, NaN before the first full window.
func RollingStdDev(data []float64, window int) []float64 {
	return rolling(data, window, func(w []float64) float64 {
		if len(w) < 2 {
			return 0
		}
		return stat.StdDev(w, nil)
	})
}

func rolling(data []float64, window int, fn func([]float64) float64) []float64 {
	out := make([]float64, len(data))
	for i := range data {
		if window <= 0 || i < window-1 {
			out[i] = math.NaN()
			continue
		}
		out[i] = fn(data[i-window+1 : i+1])
	}
	return out
}

// MaxDrawdown treats the returns as a cumulative-sum series and reports the
// most negative gap between the running maximum and the current value.
// A strictly increasing cumulative series yields exactly 0.
func MaxDrawdown(returns []float64) float64 {
	if len(returns) == 0 {
		return 0
	}

	cumulative := 0.0
	runningMax := math.Inf(-1)
	worst := 0.0

	for _, r := range returns {
		cumulative += r
		if cumulative > runningMax {
			runningMax = cumulative
		}
		if dd := cumulative - runningMax; dd < worst {
			worst = dd
		}
	}

	return worst
}
