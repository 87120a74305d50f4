package formulas

import "math"

// normCDF is the standard normal cumulative distribution function.
func normCDF(x float64) float64 {
	return 0.5 * math.Erfc(-x/math.Sqrt2)
}

// d1 is the Black-Scholes d1 term. Callers guard vol > 0 and t > 0.
func d1(spot, strike, vol, rate, t float64) float64 {
	return (math.Log(spot/strike) + (rate+0.5*vol*vol)*t) / (vol * math.Sqrt(t))
}

// PutPrice returns the Black-Scholes price of a European put.
// At expiry (or zero volatility) it degenerates to intrinsic value.
func PutPrice(spot, strike, vol, rate, t float64) float64 {
	if t <= 0 || vol <= 0 {
		return math.Max(strike-spot, 0)
	}
	dOne := d1(spot, strike, vol, rate, t)
	dTwo := dOne - vol*math.Sqrt(t)
	return strike*math.Exp(-rate*t)*normCDF(-dTwo) - spot*normCDF(-dOne)
}

// PutDelta returns the Black-Scholes delta of a European put, in [-1, 0].
func PutDelta(spot, strike, vol, rate, t float64) float64 {
	if t <= 0 || vol <= 0 {
		if spot < strike {
			return -1
		}
		return 0
	}
	return normCDF(d1(spot, strike, vol, rate, t)) - 1
}
