// Package domain defines the boundary contracts between the harness and its
// two external collaborators: the hedging environment and the decision policy.
package domain

// Observation is the per-step view the environment exposes. The harness
// itself reads only NormalizedStockPrice (real price = normalized price x
// strike); the remaining fields are carried through to the policy untouched.
type Observation struct {
	NormalizedStockPrice float64 `json:"normalized_stock_price"`
	TimeRemaining        float64 `json:"time_remaining"` // years to expiry
	CurrentPosition      float64 `json:"current_position"`
}

// EpisodeParams are the contract terms fixed at episode inception, captured
// once after reset and immutable for the rest of the episode.
type EpisodeParams struct {
	Ticker          string  `json:"ticker"`
	TimeToExpiry    int     `json:"time_to_expiry"` // days at inception
	PremiumPerShare float64 `json:"premium_per_share"`
	NumberOfShares  float64 `json:"number_of_shares"`
	Risk            float64 `json:"risk"` // sizing multiplier, opaque to the harness
	StrikePrice     float64 `json:"strike_price"`
}

// OptimalBounds are the theoretical best/worst normalized returns achievable
// on the episode's realized price path, computed by the environment with
// perfect foresight.
type OptimalBounds struct {
	MaxReturn float64 `json:"max_return"`
	MinReturn float64 `json:"min_return"`
}

// TrajectoryStep is one recorded simulation step: the hedge position chosen
// at the start of the interval and the real stock price observed then.
type TrajectoryStep struct {
	Position   float64 `json:"position"`
	StockPrice float64 `json:"stock_price"`
}

// Trajectory is the ordered step record of one episode, one entry per
// simulation step. The final entry's price is the terminal price used for
// payoff computation.
type Trajectory []TrajectoryStep

// FinalPrice returns the last recorded stock price. ok is false for an
// empty trajectory.
func (t Trajectory) FinalPrice() (price float64, ok bool) {
	if len(t) == 0 {
		return 0, false
	}
	return t[len(t)-1].StockPrice, true
}

// Environment is the simulated option-hedging environment. Reset and Step
// advance mutable state in place, so episodes run strictly sequentially
// against a single instance.
type Environment interface {
	// Reset starts a new episode and returns its first observation.
	Reset() (Observation, error)

	// Step applies the discrete action and advances one simulation step.
	// done and truncated both terminate the episode; the harness treats
	// them identically.
	Step(action int) (obs Observation, reward float64, done bool, truncated bool, err error)

	// ActionSpace maps a discrete action index to a continuous hedge position.
	ActionSpace() []float64

	// Params returns the contract terms of the current episode. Valid after
	// Reset and fixed until the next Reset.
	Params() EpisodeParams

	// ComputeOptimalPnLs returns the perfect-foresight best and worst
	// normalized returns for the current episode. Called once, after Reset.
	ComputeOptimalPnLs() (maxReturn, minReturn float64)
}

// Policy maps an observation to a discrete action index. The harness always
// calls it with training=false; aux is policy-specific side information
// (e.g. the continuous hedge target) and is ignored by the harness.
type Policy interface {
	SelectAction(obs Observation, training bool) (action int, aux float64, err error)
}
