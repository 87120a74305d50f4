package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hedgelab/hedgebench/internal/domain"
)

func TestReconstructEndToEndScenario(t *testing.T) {
	// strike=100, final price=90, shares=10 -> payoff=100;
	// hedging = 0.5*(90-95)*10 = -25; investment = 5*10*1 = 50;
	// final value = 75; normalized = (75-50)/50 = 0.5.
	trajectory := domain.Trajectory{
		{Position: 0.5, StockPrice: 95},
		{Position: 0.3, StockPrice: 90},
	}
	params := domain.EpisodeParams{
		Ticker:          "AAPL",
		TimeToExpiry:    21,
		PremiumPerShare: 5,
		NumberOfShares:  10,
		Risk:            1,
		StrikePrice:     100,
	}
	bounds := domain.OptimalBounds{MaxReturn: 2.0, MinReturn: -1.0}

	rec, err := Reconstruct(trajectory, params, bounds)
	require.NoError(t, err)

	assert.InDelta(t, 100.0, rec.OptionPayoff, 1e-12)
	assert.InDelta(t, -25.0, rec.HedgingPnL, 1e-12)
	assert.InDelta(t, 50.0, rec.PremiumPaid, 1e-12)
	assert.InDelta(t, 25.0, rec.FinalPnL, 1e-12)
	assert.InDelta(t, 0.5, rec.NormalizedReturn, 1e-12)
	assert.Equal(t, "AAPL", rec.Ticker)
	assert.Equal(t, 21, rec.InitialExpiryDays)
	assert.Equal(t, 2.0, rec.OptimalMaxReturn)
	assert.Equal(t, -1.0, rec.OptimalMinReturn)
}

func TestReconstructSingleStepTrajectoryHasZeroHedgingPnL(t *testing.T) {
	trajectory := domain.Trajectory{{Position: 1, StockPrice: 80}}
	params := domain.EpisodeParams{PremiumPerShare: 2, NumberOfShares: 10, Risk: 1, StrikePrice: 100}

	rec, err := Reconstruct(trajectory, params, domain.OptimalBounds{})
	require.NoError(t, err)

	assert.Equal(t, 0.0, rec.HedgingPnL)
	assert.InDelta(t, 200.0, rec.OptionPayoff, 1e-12)
}

func TestReconstructPayoffNeverNegative(t *testing.T) {
	// Final price far above strike: the put expires worthless, not negative.
	trajectory := domain.Trajectory{
		{Position: 0.2, StockPrice: 100},
		{Position: 0.2, StockPrice: 250},
	}
	params := domain.EpisodeParams{PremiumPerShare: 1, NumberOfShares: 5, Risk: 1, StrikePrice: 100}

	rec, err := Reconstruct(trajectory, params, domain.OptimalBounds{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, rec.OptionPayoff)
}

func TestReconstructNormalizedReturnIsScaleInvariant(t *testing.T) {
	trajectory := domain.Trajectory{
		{Position: 0.5, StockPrice: 95},
		{Position: 0.3, StockPrice: 90},
	}
	base := domain.EpisodeParams{PremiumPerShare: 5, NumberOfShares: 10, Risk: 1, StrikePrice: 100}
	scaled := base
	scaled.NumberOfShares = 70 // scales payoff, hedging P&L and investment alike

	baseRec, err := Reconstruct(trajectory, base, domain.OptimalBounds{})
	require.NoError(t, err)
	scaledRec, err := Reconstruct(trajectory, scaled, domain.OptimalBounds{})
	require.NoError(t, err)

	assert.InDelta(t, baseRec.NormalizedReturn, scaledRec.NormalizedReturn, 1e-12)
}

func TestReconstructZeroInvestmentIsFatal(t *testing.T) {
	trajectory := domain.Trajectory{{Position: 0, StockPrice: 100}}
	params := domain.EpisodeParams{PremiumPerShare: 0, NumberOfShares: 10, Risk: 1, StrikePrice: 100}

	_, err := Reconstruct(trajectory, params, domain.OptimalBounds{})
	assert.Error(t, err)
}

func TestReconstructEmptyTrajectory(t *testing.T) {
	_, err := Reconstruct(nil, domain.EpisodeParams{PremiumPerShare: 1, NumberOfShares: 1, Risk: 1}, domain.OptimalBounds{})
	assert.Error(t, err)
}
