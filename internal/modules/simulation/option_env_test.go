package simulation

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hedgelab/hedgebench/internal/domain"
	"github.com/hedgelab/hedgebench/internal/modules/episodes"
	"github.com/hedgelab/hedgebench/internal/modules/metrics"
)

func testConfig() Config {
	return Config{
		Tickers:       []string{"AAPL", "MSFT", "KO"},
		ExpiryChoices: []int{21, 42},
		ActionLevels:  11,
		Volatility:    0.2,
		Drift:         0.05,
		RiskFreeRate:  0.02,
		Risk:          1.0,
		Shares:        100,
		StrikePrice:   100,
	}
}

type holdPolicy struct{ action int }

func (p holdPolicy) SelectAction(obs domain.Observation, training bool) (int, float64, error) {
	return p.action, 0, nil
}

func TestResetStartsAtTheMoney(t *testing.T) {
	env := NewOptionEnv(testConfig(), 1, zerolog.Nop())

	obs, err := env.Reset()
	require.NoError(t, err)

	assert.InDelta(t, 1.0, obs.NormalizedStockPrice, 1e-12)
	assert.Equal(t, 0.0, obs.CurrentPosition)

	params := env.Params()
	assert.Contains(t, []int{21, 42}, params.TimeToExpiry)
	assert.Contains(t, testConfig().Tickers, params.Ticker)
	assert.Greater(t, params.PremiumPerShare, 0.0)
	assert.InDelta(t, float64(params.TimeToExpiry)/252.0, obs.TimeRemaining, 1e-12)
}

func TestActionSpaceSpansUnitInterval(t *testing.T) {
	env := NewOptionEnv(testConfig(), 1, zerolog.Nop())

	space := env.ActionSpace()
	require.Len(t, space, 11)
	assert.Equal(t, 0.0, space[0])
	assert.Equal(t, 1.0, space[len(space)-1])
	for i := 1; i < len(space); i++ {
		assert.Greater(t, space[i], space[i-1])
	}
}

func TestEpisodeTerminatesAtExpiry(t *testing.T) {
	env := NewOptionEnv(testConfig(), 2, zerolog.Nop())

	_, err := env.Reset()
	require.NoError(t, err)
	expiry := env.Params().TimeToExpiry

	steps := 0
	for {
		_, _, done, truncated, err := env.Step(0)
		require.NoError(t, err)
		require.False(t, truncated)
		steps++
		if done {
			break
		}
	}
	assert.Equal(t, expiry, steps)

	_, _, _, _, err = env.Step(0)
	assert.Error(t, err, "stepping past expiry must fail")
}

func TestSameSeedReplaysSamePath(t *testing.T) {
	a := NewOptionEnv(testConfig(), 7, zerolog.Nop())
	b := NewOptionEnv(testConfig(), 7, zerolog.Nop())

	obsA, err := a.Reset()
	require.NoError(t, err)
	obsB, err := b.Reset()
	require.NoError(t, err)
	assert.Equal(t, obsA, obsB)
	assert.Equal(t, a.Params(), b.Params())

	for {
		nextA, rewardA, doneA, _, err := a.Step(3)
		require.NoError(t, err)
		nextB, rewardB, doneB, _, err := b.Step(3)
		require.NoError(t, err)

		assert.Equal(t, nextA, nextB)
		assert.Equal(t, rewardA, rewardB)
		require.Equal(t, doneA, doneB)
		if doneA {
			break
		}
	}
}

func TestStepRejectsOutOfRangeAction(t *testing.T) {
	env := NewOptionEnv(testConfig(), 3, zerolog.Nop())
	_, err := env.Reset()
	require.NoError(t, err)

	_, _, _, _, err = env.Step(-1)
	assert.Error(t, err)
	_, _, _, _, err = env.Step(len(env.ActionSpace()))
	assert.Error(t, err)
}

func TestOptimalBoundsBracketAchievedReturn(t *testing.T) {
	env := NewOptionEnv(testConfig(), 11, zerolog.Nop())

	// Perfect foresight over the same path must dominate any fixed policy
	// and the worst case must lower-bound it.
	for _, action := range []int{0, 5, 10} {
		result, err := episodes.Run(env, holdPolicy{action: action})
		require.NoError(t, err)

		rec, err := metrics.Reconstruct(result.Trajectory, result.Params, result.Bounds)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, result.Bounds.MaxReturn, rec.NormalizedReturn-1e-9)
		assert.LessOrEqual(t, result.Bounds.MinReturn, rec.NormalizedReturn+1e-9)
	}
}
