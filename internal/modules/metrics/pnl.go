package metrics

import (
	"fmt"
	"math"

	"github.com/hedgelab/hedgebench/internal/domain"
)

// Reconstruct turns one trajectory plus its captured episode parameters into
// an EpisodeRecord.
//
// The computation is exact and must stay bit-reproducible:
//
//	optionPayoff = max(strike - finalPrice, 0) * shares   (European put)
//	hedgingPnL   = sum_t position[t] * (price[t+1] - price[t]) * shares
//	investment   = premiumPerShare * shares * risk
//	return       = (optionPayoff + hedgingPnL - investment) / investment
//
// The position held during [t, t+1) is the one selected at the start of the
// interval; a trajectory of length 1 yields a hedging P&L of exactly 0.
// A zero initial investment is a fatal validation error: the contract is
// degenerate and every normalized statistic downstream would be meaningless.
func Reconstruct(trajectory domain.Trajectory, params domain.EpisodeParams, bounds domain.OptimalBounds) (EpisodeRecord, error) {
	finalPrice, ok := trajectory.FinalPrice()
	if !ok {
		return EpisodeRecord{}, fmt.Errorf("empty trajectory for ticker %s", params.Ticker)
	}

	optionPayoff := math.Max(params.StrikePrice-finalPrice, 0) * params.NumberOfShares

	hedgingPnL := 0.0
	for t := 0; t < len(trajectory)-1; t++ {
		priceChange := trajectory[t+1].StockPrice - trajectory[t].StockPrice
		hedgingPnL += trajectory[t].Position * priceChange * params.NumberOfShares
	}

	initialInvestment := params.PremiumPerShare * params.NumberOfShares * params.Risk
	if initialInvestment == 0 {
		return EpisodeRecord{}, fmt.Errorf("initial investment is zero for ticker %s: cannot normalize returns", params.Ticker)
	}

	finalValue := optionPayoff + hedgingPnL

	return EpisodeRecord{
		NormalizedReturn:  (finalValue - initialInvestment) / initialInvestment,
		FinalPnL:          finalValue - initialInvestment,
		OptionPayoff:      optionPayoff,
		HedgingPnL:        hedgingPnL,
		PremiumPaid:       initialInvestment,
		Ticker:            params.Ticker,
		InitialExpiryDays: params.TimeToExpiry,
		OptimalMaxReturn:  bounds.MaxReturn,
		OptimalMinReturn:  bounds.MinReturn,
	}, nil
}
