// Package policy provides the decision policies the harness can evaluate:
// a Black-Scholes delta hedger, a remote model served over HTTP, and a flat
// do-nothing baseline.
package policy

import (
	"fmt"
	"math"

	"github.com/hedgelab/hedgebench/internal/domain"
	"github.com/hedgelab/hedgebench/pkg/formulas"
)

// DeltaPolicy hedges a long put by holding the position that offsets the
// option's delta, snapped to the nearest entry of the discrete action space.
// It serves as the analytic baseline a learned policy is compared against.
type DeltaPolicy struct {
	actionSpace  []float64
	volatility   float64
	riskFreeRate float64
}

// NewDeltaPolicy creates a delta-hedging policy over the given action space.
func NewDeltaPolicy(actionSpace []float64, volatility, riskFreeRate float64) (*DeltaPolicy, error) {
	if len(actionSpace) == 0 {
		return nil, fmt.Errorf("action space is empty")
	}
	return &DeltaPolicy{
		actionSpace:  actionSpace,
		volatility:   volatility,
		riskFreeRate: riskFreeRate,
	}, nil
}

// SelectAction returns the action index whose position is closest to the
// hedge target -delta. Prices arrive normalized by strike, so the delta is
// computed against a unit strike. aux carries the continuous target.
func (p *DeltaPolicy) SelectAction(obs domain.Observation, training bool) (int, float64, error) {
	delta := formulas.PutDelta(obs.NormalizedStockPrice, 1.0, p.volatility, p.riskFreeRate, obs.TimeRemaining)
	target := -delta

	best := 0
	bestDist := math.Abs(p.actionSpace[0] - target)
	for i := 1; i < len(p.actionSpace); i++ {
		if d := math.Abs(p.actionSpace[i] - target); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best, target, nil
}
