package report

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/hedgelab/hedgebench/internal/modules/metrics"
	"github.com/hedgelab/hedgebench/pkg/formulas"
)

// Service builds reports from completed result sets.
type Service struct {
	window int // rolling window, in episodes
	log    zerolog.Logger
}

// NewService creates a report service with the given rolling window.
func NewService(window int, log zerolog.Logger) *Service {
	return &Service{
		window: window,
		log:    log.With().Str("service", "report").Logger(),
	}
}

// Build assembles the full report for a run. The result set must be complete;
// all statistics are computed over the whole run at once.
func (s *Service) Build(runID string, rs *metrics.ResultSet) *Report {
	summary := metrics.Summarize(rs)
	returns := rs.Returns()

	rep := &Report{
		RunID:       runID,
		GeneratedAt: time.Now().UTC(),
		Summary:     summary,
		Histogram:   buildHistogram(returns),
		Components:  buildComponents(rs),
		Expiries:    buildExpiries(rs),

		RollingSharpe: toSeries(metrics.RollingSharpe(returns, s.window)),
		ModelMA:       toSeries(formulas.Sma(toPercent(returns), s.window)),
		OptimalMaxMA:  toSeries(formulas.Sma(toPercent(rs.OptimalMaxReturns()), s.window)),
		OptimalMinMA:  toSeries(formulas.Sma(toPercent(rs.OptimalMinReturns()), s.window)),

		Table: buildTable(summary),
	}

	s.log.Debug().
		Str("run_id", runID).
		Int("episodes", summary.Episodes).
		Msg("Report built")

	return rep
}

// buildHistogram buckets the return distribution, in percent. A degenerate
// distribution (all returns equal) collapses to a single bin.
func buildHistogram(returns []float64) []HistogramBin {
	if len(returns) == 0 {
		return nil
	}

	minPct := returns[0] * 100
	maxPct := minPct
	for _, r := range returns[1:] {
		pct := r * 100
		if pct < minPct {
			minPct = pct
		}
		if pct > maxPct {
			maxPct = pct
		}
	}

	if minPct == maxPct {
		return []HistogramBin{{LowPct: minPct, HighPct: maxPct, Count: len(returns)}}
	}

	width := (maxPct - minPct) / histogramBins
	bins := make([]HistogramBin, histogramBins)
	for i := range bins {
		bins[i].LowPct = minPct + float64(i)*width
		bins[i].HighPct = minPct + float64(i+1)*width
	}
	for _, r := range returns {
		idx := int((r*100 - minPct) / width)
		if idx >= histogramBins {
			idx = histogramBins - 1 // the maximum lands in the last bin
		}
		bins[idx].Count++
	}
	return bins
}

// buildComponents expresses the mean payoff and mean hedging legs as a
// percentage of the mean premium invested. The legs are ratios of means,
// not means of per-episode ratios; premiums vary with expiry days and the
// two only coincide when every episode pays the same premium.
func buildComponents(rs *metrics.ResultSet) PnLComponents {
	records := rs.Records()
	if len(records) == 0 {
		return PnLComponents{}
	}

	var payoffSum, hedgingSum, premiumSum float64
	for _, rec := range records {
		payoffSum += rec.OptionPayoff
		hedgingSum += rec.HedgingPnL
		premiumSum += rec.PremiumPaid
	}

	return PnLComponents{
		PayoffPct:  payoffSum / premiumSum * 100,
		HedgingPct: hedgingSum / premiumSum * 100,
		NetPct:     formulas.Mean(rs.Returns()) * 100,
	}
}

// buildExpiries summarizes each initial days-to-expiry group, ascending.
func buildExpiries(rs *metrics.ResultSet) []ExpiryGroup {
	groups := rs.ReturnsByExpiry()

	days := make([]int, 0, len(groups))
	for d := range groups {
		days = append(days, d)
	}
	sort.Ints(days)

	out := make([]ExpiryGroup, 0, len(days))
	for _, d := range days {
		returns := groups[d]
		wins := 0
		for _, r := range returns {
			if r > 0 {
				wins++
			}
		}
		out = append(out, ExpiryGroup{
			Days:          d,
			Episodes:      len(returns),
			MeanReturnPct: formulas.Mean(returns) * 100,
			WinRatePct:    float64(wins) / float64(len(returns)) * 100,
		})
	}
	return out
}

// toPercent scales a return-fraction sequence to percent, matching the
// units of the histogram, components and table.
func toPercent(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v * 100
	}
	return out
}

// toSeries drops the undefined warm-up positions and keeps episode indexes.
func toSeries(values []float64) []SeriesPoint {
	var out []SeriesPoint
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		out = append(out, SeriesPoint{Episode: i, Value: v})
	}
	return out
}

// buildTable formats the summary for console and API consumption.
func buildTable(s metrics.Summary) []SummaryRow {
	pct := func(v float64) string { return fmt.Sprintf("%.2f%%", v*100) }
	optionalPct := func(v *float64) string {
		if v == nil {
			return "N/A"
		}
		return pct(*v)
	}

	rows := []SummaryRow{
		{Metric: "Episodes", Value: fmt.Sprintf("%d", s.Episodes)},
		{Metric: "Mean Return", Value: pct(s.MeanReturn)},
		{Metric: "Std Dev", Value: pct(s.StdReturn)},
		{Metric: "Sharpe Ratio", Value: fmt.Sprintf("%.4f", s.Sharpe)},
		{Metric: "Sortino Ratio", Value: fmt.Sprintf("%.4f", s.Sortino)},
		{Metric: "Max Drawdown", Value: pct(s.MaxDrawdown)},
		{Metric: "Win Rate", Value: pct(s.WinRate)},
		{Metric: "Avg Win", Value: optionalPct(s.AvgWin)},
		{Metric: "Avg Loss", Value: optionalPct(s.AvgLoss)},
		{Metric: "Best Return", Value: pct(s.BestReturn)},
		{Metric: "Worst Return", Value: pct(s.WorstReturn)},
		{Metric: "Mean Optimal Max", Value: pct(s.MeanOptimalMax)},
		{Metric: "Mean Optimal Min", Value: pct(s.MeanOptimalMin)},
	}

	if s.CaptureRatio != nil {
		rows = append(rows, SummaryRow{Metric: "Capture Ratio", Value: fmt.Sprintf("%.2f%%", *s.CaptureRatio)})
	} else {
		rows = append(rows, SummaryRow{Metric: "Capture Ratio", Value: "N/A"})
	}

	return rows
}
