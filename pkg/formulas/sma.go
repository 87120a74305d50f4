package formulas

import (
	"math"

	"github.com/markcheno/go-talib"
)

// Sma returns the simple moving average aligned to the input index.
// go-talib zero-fills the warm-up prefix; we normalize it to NaN so callers
// can tell "no full window yet" apart from a genuine zero average.
func Sma(values []float64, period int) []float64 {
	if period <= 0 || len(values) == 0 {
		return nil
	}
	if len(values) < period {
		out := make([]float64, len(values))
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}

	out := talib.Sma(values, period)
	for i := 0; i < period-1; i++ {
		out[i] = math.NaN()
	}
	return out
}
