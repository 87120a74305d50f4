// Package episodes drives single evaluation episodes against the
// environment/policy collaborators and records their trajectories.
package episodes

import (
	"fmt"

	"github.com/hedgelab/hedgebench/internal/domain"
)

// Result is everything one completed episode contributes to metrics
// reconstruction: the recorded trajectory plus the parameters and optimal
// bounds captured at inception.
type Result struct {
	Trajectory domain.Trajectory
	Params     domain.EpisodeParams
	Bounds     domain.OptimalBounds
}

// Run executes exactly one episode to termination.
//
// The contract terms and optimal bounds are captured immediately after reset,
// before the step loop, since they are fixed per episode. Each iteration
// records (position, real price) from the current observation and then steps;
// done and truncated both terminate. Collaborator failures propagate
// unmodified.
func Run(env domain.Environment, pol domain.Policy) (Result, error) {
	obs, err := env.Reset()
	if err != nil {
		return Result{}, fmt.Errorf("reset environment: %w", err)
	}

	params := env.Params()
	maxReturn, minReturn := env.ComputeOptimalPnLs()
	actions := env.ActionSpace()

	trajectory := make(domain.Trajectory, 0, params.TimeToExpiry)

	for {
		action, _, err := pol.SelectAction(obs, false)
		if err != nil {
			return Result{}, fmt.Errorf("select action: %w", err)
		}
		if action < 0 || action >= len(actions) {
			return Result{}, fmt.Errorf("action index %d outside action space of size %d", action, len(actions))
		}

		trajectory = append(trajectory, domain.TrajectoryStep{
			Position:   actions[action],
			StockPrice: obs.NormalizedStockPrice * params.StrikePrice,
		})

		next, _, done, truncated, err := env.Step(action)
		if err != nil {
			return Result{}, fmt.Errorf("step environment: %w", err)
		}
		if done || truncated {
			break
		}
		obs = next
	}

	return Result{
		Trajectory: trajectory,
		Params:     params,
		Bounds:     domain.OptimalBounds{MaxReturn: maxReturn, MinReturn: minReturn},
	}, nil
}
