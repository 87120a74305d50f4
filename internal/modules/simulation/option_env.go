// Package simulation provides the reference option-hedging environment used
// for self-contained runs and tests. The external environment contract in
// internal/domain is the real boundary; nothing in the harness depends on the
// internals here.
package simulation

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/hedgelab/hedgebench/internal/domain"
	"github.com/hedgelab/hedgebench/pkg/formulas"
)

// tradingDaysPerYear converts day counts to year fractions.
const tradingDaysPerYear = 252.0

// Config holds the reference environment parameters.
type Config struct {
	Tickers       []string
	ExpiryChoices []int // days to expiry, drawn uniformly per episode
	ActionLevels  int   // discrete hedge positions spread evenly over [0, 1]
	Volatility    float64
	Drift         float64
	RiskFreeRate  float64
	Risk          float64
	Shares        float64
	StrikePrice   float64
}

// OptionEnv simulates hedging a long at-the-money European put against a
// geometric Brownian motion price path. The full path is drawn at reset, so
// ComputeOptimalPnLs can price the perfect-foresight bounds on the exact
// path the policy will see.
type OptionEnv struct {
	cfg         Config
	rng         *rand.Rand
	log         zerolog.Logger
	actionSpace []float64

	// per-episode state
	params   domain.EpisodeParams
	path     []float64
	day      int
	position float64
}

// NewOptionEnv creates a reference environment with a deterministic seed.
func NewOptionEnv(cfg Config, seed int64, log zerolog.Logger) *OptionEnv {
	actionSpace := make([]float64, cfg.ActionLevels)
	for i := range actionSpace {
		actionSpace[i] = float64(i) / float64(cfg.ActionLevels-1)
	}

	return &OptionEnv{
		cfg:         cfg,
		rng:         rand.New(rand.NewSource(seed)),
		log:         log.With().Str("component", "option_env").Logger(),
		actionSpace: actionSpace,
	}
}

// Reset starts a new episode: draws a ticker and expiry, generates the GBM
// price path and prices the put premium via Black-Scholes.
func (e *OptionEnv) Reset() (domain.Observation, error) {
	ticker := e.cfg.Tickers[e.rng.Intn(len(e.cfg.Tickers))]
	expiryDays := e.cfg.ExpiryChoices[e.rng.Intn(len(e.cfg.ExpiryChoices))]
	strike := e.cfg.StrikePrice

	// ATM inception: the path starts at the strike. One GBM step per
	// trading day: S(t+dt) = S(t) * exp((mu - sigma^2/2) dt + sigma sqrt(dt) Z).
	dt := 1.0 / tradingDaysPerYear
	path := make([]float64, expiryDays+1)
	path[0] = strike
	for d := 1; d <= expiryDays; d++ {
		z := e.rng.NormFloat64()
		growth := (e.cfg.Drift-0.5*e.cfg.Volatility*e.cfg.Volatility)*dt + e.cfg.Volatility*math.Sqrt(dt)*z
		path[d] = path[d-1] * math.Exp(growth)
	}

	yearsToExpiry := float64(expiryDays) / tradingDaysPerYear
	premium := formulas.PutPrice(strike, strike, e.cfg.Volatility, e.cfg.RiskFreeRate, yearsToExpiry)

	e.params = domain.EpisodeParams{
		Ticker:          ticker,
		TimeToExpiry:    expiryDays,
		PremiumPerShare: premium,
		NumberOfShares:  e.cfg.Shares,
		Risk:            e.cfg.Risk,
		StrikePrice:     strike,
	}
	e.path = path
	e.day = 0
	e.position = 0

	return e.observation(), nil
}

// Step applies the discrete action, advances one trading day and reports
// termination at expiry. The reward is the interval hedging P&L normalized
// by the premium invested.
func (e *OptionEnv) Step(action int) (domain.Observation, float64, bool, bool, error) {
	if e.path == nil {
		return domain.Observation{}, 0, false, false, fmt.Errorf("step before reset")
	}
	if action < 0 || action >= len(e.actionSpace) {
		return domain.Observation{}, 0, false, false, fmt.Errorf("action index %d outside action space of size %d", action, len(e.actionSpace))
	}
	if e.day >= e.params.TimeToExpiry {
		return domain.Observation{}, 0, false, false, fmt.Errorf("step past expiry")
	}

	e.position = e.actionSpace[action]
	e.day++

	priceChange := e.path[e.day] - e.path[e.day-1]
	investment := e.params.PremiumPerShare * e.params.NumberOfShares * e.params.Risk
	reward := e.position * priceChange * e.params.NumberOfShares / investment

	done := e.day >= e.params.TimeToExpiry
	return e.observation(), reward, done, false, nil
}

// ActionSpace maps action indices to hedge positions in [0, 1].
func (e *OptionEnv) ActionSpace() []float64 {
	return e.actionSpace
}

// Params returns the current episode's contract terms. Valid after Reset.
func (e *OptionEnv) Params() domain.EpisodeParams {
	return e.params
}

// ComputeOptimalPnLs prices the perfect-foresight bounds on the realized
// path, over the same horizon the recorded trajectory covers: positions act
// on the first expiry-1 price intervals and the payoff settles on the last
// recorded price. Best case holds the largest admissible position through
// up-moves and the smallest through down-moves; worst case inverts that.
func (e *OptionEnv) ComputeOptimalPnLs() (float64, float64) {
	if e.path == nil {
		return 0, 0
	}

	n := e.params.TimeToExpiry
	shares := e.params.NumberOfShares
	minPos := e.actionSpace[0]
	maxPos := e.actionSpace[len(e.actionSpace)-1]

	payoff := math.Max(e.params.StrikePrice-e.path[n-1], 0) * shares
	bestValue := payoff
	worstValue := payoff
	for t := 0; t < n-1; t++ {
		move := (e.path[t+1] - e.path[t]) * shares
		if move > 0 {
			bestValue += maxPos * move
			worstValue += minPos * move
		} else {
			bestValue += minPos * move
			worstValue += maxPos * move
		}
	}

	investment := e.params.PremiumPerShare * shares * e.params.Risk
	maxReturn := (bestValue - investment) / investment
	minReturn := (worstValue - investment) / investment
	return maxReturn, minReturn
}

func (e *OptionEnv) observation() domain.Observation {
	return domain.Observation{
		NormalizedStockPrice: e.path[e.day] / e.params.StrikePrice,
		TimeRemaining:        float64(e.params.TimeToExpiry-e.day) / tradingDaysPerYear,
		CurrentPosition:      e.position,
	}
}
