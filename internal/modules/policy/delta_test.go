package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hedgelab/hedgebench/internal/domain"
)

func unitActionSpace(levels int) []float64 {
	space := make([]float64, levels)
	for i := range space {
		space[i] = float64(i) / float64(levels-1)
	}
	return space
}

func TestDeltaPolicyDeepInTheMoneyFullyHedges(t *testing.T) {
	p, err := NewDeltaPolicy(unitActionSpace(11), 0.2, 0.02)
	require.NoError(t, err)

	// Price far below strike: put delta approaches -1, hedge target 1.
	action, target, err := p.SelectAction(domain.Observation{
		NormalizedStockPrice: 0.5,
		TimeRemaining:        21.0 / 252.0,
	}, false)
	require.NoError(t, err)

	assert.Equal(t, 10, action)
	assert.InDelta(t, 1.0, target, 0.01)
}

func TestDeltaPolicyDeepOutOfTheMoneyStaysFlat(t *testing.T) {
	p, err := NewDeltaPolicy(unitActionSpace(11), 0.2, 0.02)
	require.NoError(t, err)

	action, target, err := p.SelectAction(domain.Observation{
		NormalizedStockPrice: 2.0,
		TimeRemaining:        21.0 / 252.0,
	}, false)
	require.NoError(t, err)

	assert.Equal(t, 0, action)
	assert.InDelta(t, 0.0, target, 0.01)
}

func TestDeltaPolicyAtTheMoneyHedgesRoughlyHalf(t *testing.T) {
	p, err := NewDeltaPolicy(unitActionSpace(11), 0.2, 0.02)
	require.NoError(t, err)

	action, target, err := p.SelectAction(domain.Observation{
		NormalizedStockPrice: 1.0,
		TimeRemaining:        42.0 / 252.0,
	}, false)
	require.NoError(t, err)

	assert.Greater(t, target, 0.3)
	assert.Less(t, target, 0.7)
	assert.Greater(t, action, 2)
	assert.Less(t, action, 8)
}

func TestDeltaPolicyAtExpiryIsIntrinsic(t *testing.T) {
	p, err := NewDeltaPolicy(unitActionSpace(11), 0.2, 0.02)
	require.NoError(t, err)

	action, _, err := p.SelectAction(domain.Observation{NormalizedStockPrice: 0.9, TimeRemaining: 0}, false)
	require.NoError(t, err)
	assert.Equal(t, 10, action)

	action, _, err = p.SelectAction(domain.Observation{NormalizedStockPrice: 1.1, TimeRemaining: 0}, false)
	require.NoError(t, err)
	assert.Equal(t, 0, action)
}

func TestNewDeltaPolicyRejectsEmptyActionSpace(t *testing.T) {
	_, err := NewDeltaPolicy(nil, 0.2, 0.02)
	assert.Error(t, err)
}

func TestFlatPolicyAlwaysSelectsZero(t *testing.T) {
	action, aux, err := FlatPolicy{}.SelectAction(domain.Observation{NormalizedStockPrice: 0.5}, false)
	require.NoError(t, err)
	assert.Equal(t, 0, action)
	assert.Equal(t, 0.0, aux)
}
