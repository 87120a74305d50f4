// Package report assembles the human- and API-facing views of a completed
// evaluation run: the summary table, return distribution, P&L decomposition,
// expiry breakdown and the per-episode rolling series.
package report

import (
	"time"

	"github.com/hedgelab/hedgebench/internal/modules/metrics"
)

// histogramBins is the return distribution resolution.
const histogramBins = 50

// HistogramBin is one bucket of the return distribution, bounds in percent.
type HistogramBin struct {
	LowPct  float64 `json:"low_pct"`
	HighPct float64 `json:"high_pct"`
	Count   int     `json:"count"`
}

// PnLComponents decomposes the run's P&L into its payoff and hedging legs,
// each as mean leg value over mean premium invested, in percent. NetPct is
// the mean normalized return in percent.
type PnLComponents struct {
	PayoffPct  float64 `json:"payoff_pct"`
	HedgingPct float64 `json:"hedging_pct"`
	NetPct     float64 `json:"net_pct"`
}

// ExpiryGroup summarizes the episodes that shared an initial days-to-expiry.
type ExpiryGroup struct {
	Days          int     `json:"days"`
	Episodes      int     `json:"episodes"`
	MeanReturnPct float64 `json:"mean_return_pct"`
	WinRatePct    float64 `json:"win_rate_pct"`
}

// SeriesPoint is one defined point of a per-episode series. Episodes before
// the first full window are omitted rather than carried as NaN, keeping the
// series JSON-safe.
type SeriesPoint struct {
	Episode int     `json:"episode"`
	Value   float64 `json:"value"`
}

// SummaryRow is one formatted line of the console summary table.
type SummaryRow struct {
	Metric string `json:"metric"`
	Value  string `json:"value"`
}

// Report is the complete view of one evaluation run.
type Report struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`

	Summary    metrics.Summary `json:"summary"`
	Histogram  []HistogramBin  `json:"histogram"`
	Components PnLComponents   `json:"components"`
	Expiries   []ExpiryGroup   `json:"expiries"`

	// RollingSharpe is dimensionless; the MA series are in percent, the
	// same unit as the histogram and components.
	RollingSharpe []SeriesPoint `json:"rolling_sharpe"`
	ModelMA       []SeriesPoint `json:"model_ma"`
	OptimalMaxMA  []SeriesPoint `json:"optimal_max_ma"`
	OptimalMinMA  []SeriesPoint `json:"optimal_min_ma"`

	Table []SummaryRow `json:"table"`
}
