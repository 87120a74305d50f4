package metrics

import (
	"math"

	"github.com/hedgelab/hedgebench/pkg/formulas"
)

// Summary holds the cross-episode statistics computed once over the complete
// result set.
type Summary struct {
	Episodes   int     `json:"episodes"`
	MeanReturn float64 `json:"mean_return"`
	StdReturn  float64 `json:"std_return"`

	// Sharpe is mean/(std+eps), deliberately not annualized: episode-index
	// granularity, not calendar time.
	Sharpe  float64 `json:"sharpe"`
	Sortino float64 `json:"sortino"`

	MaxDrawdown float64 `json:"max_drawdown"`
	WinRate     float64 `json:"win_rate"`

	// AvgWin/AvgLoss are nil when the corresponding subsequence is empty.
	AvgWin  *float64 `json:"avg_win"`
	AvgLoss *float64 `json:"avg_loss"`

	BestReturn  float64 `json:"best_return"`
	WorstReturn float64 `json:"worst_return"`

	MeanOptimalMax float64 `json:"mean_optimal_max"`
	MeanOptimalMin float64 `json:"mean_optimal_min"`

	// CaptureRatio is mean(R)/mean(optimalMax) in percent; nil when the mean
	// optimal-max return is zero.
	CaptureRatio *float64 `json:"capture_ratio"`
}

// Summarize computes the full summary over the result set. All statistics
// are computed once, after all episodes finish.
func Summarize(rs *ResultSet) Summary {
	returns := rs.Returns()
	if len(returns) == 0 {
		return Summary{}
	}

	mean := formulas.Mean(returns)
	std := formulas.PopStdDev(returns)

	var wins, losses []float64
	best, worst := returns[0], returns[0]
	for _, r := range returns {
		switch {
		case r > 0:
			wins = append(wins, r)
		case r < 0:
			losses = append(losses, r)
		}
		if r > best {
			best = r
		}
		if r < worst {
			worst = r
		}
	}

	// Downside deviation over the negative subsequence; defined as epsilon
	// itself when no negative returns exist.
	var sortino float64
	if len(losses) == 0 {
		sortino = mean / formulas.Epsilon
	} else {
		sortino = mean / (formulas.PopStdDev(losses) + formulas.Epsilon)
	}

	summary := Summary{
		Episodes:    len(returns),
		MeanReturn:  mean,
		StdReturn:   std,
		Sharpe:      mean / (std + formulas.Epsilon),
		Sortino:     sortino,
		MaxDrawdown: formulas.MaxDrawdown(returns),
		WinRate:     float64(len(wins)) / float64(len(returns)),
		BestReturn:  best,
		WorstReturn: worst,

		MeanOptimalMax: formulas.Mean(rs.OptimalMaxReturns()),
		MeanOptimalMin: formulas.Mean(rs.OptimalMinReturns()),
	}

	if len(wins) > 0 {
		avgWin := formulas.Mean(wins)
		summary.AvgWin = &avgWin
	}
	if len(losses) > 0 {
		avgLoss := formulas.Mean(losses)
		summary.AvgLoss = &avgLoss
	}
	if summary.MeanOptimalMax != 0 {
		capture := mean / summary.MeanOptimalMax * 100
		summary.CaptureRatio = &capture
	}

	return summary
}

// RollingSharpe computes the windowed Sharpe ratio over consecutive episodes
// in recorded order: windowed mean over windowed sample standard deviation
// with the epsilon guard. Positions before the first full window are NaN.
func RollingSharpe(returns []float64, window int) []float64 {
	means := formulas.RollingMean(returns, window)
	stds := formulas.RollingStdDev(returns, window)

	out := make([]float64, len(returns))
	for i := range returns {
		if math.IsNaN(means[i]) {
			out[i] = math.NaN()
			continue
		}
		out[i] = means[i] / (stds[i] + formulas.Epsilon)
	}
	return out
}
