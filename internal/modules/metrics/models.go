// Package metrics turns recorded trajectories into per-episode P&L records
// and cross-episode performance statistics.
package metrics

// EpisodeRecord holds the scalars derived from one completed episode.
// Immutable once created.
type EpisodeRecord struct {
	NormalizedReturn  float64 `json:"normalized_return"`
	FinalPnL          float64 `json:"final_pnl"`
	OptionPayoff      float64 `json:"option_payoff"`
	HedgingPnL        float64 `json:"hedging_pnl"`
	PremiumPaid       float64 `json:"premium_paid"` // initial investment
	Ticker            string  `json:"ticker"`
	InitialExpiryDays int     `json:"initial_expiry_days"`
	OptimalMaxReturn  float64 `json:"optimal_max_return"`
	OptimalMinReturn  float64 `json:"optimal_min_return"`
}

// ResultSet is the ordered collection of all episode records for a run.
// It grows monotonically while the batch runs and is read wholesale by
// Summarize once all episodes finish. Order is recorded order; windowed
// statistics depend on it.
type ResultSet struct {
	records []EpisodeRecord
}

// NewResultSet returns an empty result set.
func NewResultSet() *ResultSet {
	return &ResultSet{}
}

// Append adds one episode record in recorded order.
func (rs *ResultSet) Append(record EpisodeRecord) {
	rs.records = append(rs.records, record)
}

// Len returns the number of recorded episodes.
func (rs *ResultSet) Len() int {
	return len(rs.records)
}

// Records returns the underlying records in recorded order. Callers must
// treat the slice as read-only.
func (rs *ResultSet) Records() []EpisodeRecord {
	return rs.records
}

// Returns extracts the normalized return sequence in recorded order.
func (rs *ResultSet) Returns() []float64 {
	out := make([]float64, len(rs.records))
	for i, r := range rs.records {
		out[i] = r.NormalizedReturn
	}
	return out
}

// OptimalMaxReturns extracts the optimal-max bound sequence.
func (rs *ResultSet) OptimalMaxReturns() []float64 {
	out := make([]float64, len(rs.records))
	for i, r := range rs.records {
		out[i] = r.OptimalMaxReturn
	}
	return out
}

// OptimalMinReturns extracts the optimal-min bound sequence.
func (rs *ResultSet) OptimalMinReturns() []float64 {
	out := make([]float64, len(rs.records))
	for i, r := range rs.records {
		out[i] = r.OptimalMinReturn
	}
	return out
}

// ReturnsByExpiry partitions the return sequence by each episode's initial
// days-to-expiry, using exact equality grouping.
func (rs *ResultSet) ReturnsByExpiry() map[int][]float64 {
	groups := make(map[int][]float64)
	for _, r := range rs.records {
		groups[r.InitialExpiryDays] = append(groups[r.InitialExpiryDays], r.NormalizedReturn)
	}
	return groups
}
