// Package valuation derives display-ready financial metrics from positions.
// All functions are pure: they never mutate their inputs and hold no state.
//
// Market-data fields may be absent (nil) when a quote fetch has not run or
// has failed. The defaulting policy for absent values is centralized in
// orZero/orOne so that every formula treats missing data the same way, and
// every division is guarded so a zero denominator yields 0 instead of
// Inf/NaN.
package valuation

import "github.com/armyblogger/stock-tracker/internal/model"

// orZero treats an absent market value as zero.
func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// orOne substitutes 1 for an absent or zero value. Used only as a division
// guard in per-position day-gain percentage.
func orOne(v *float64) float64 {
	if v == nil || *v == 0 {
		return 1
	}
	return *v
}

// CostBasis returns the total amount paid for a position.
func CostBasis(p model.Position) float64 {
	return p.BuyPrice * float64(p.Shares)
}

// DayGain returns the per-share change attributable to the current trading
// session. Absent prices count as zero.
func DayGain(p model.Position) float64 {
	return orZero(p.CurrentPrice) - orZero(p.PrevClose)
}

// DayGainPercent returns the session change relative to the previous close.
// When the previous close is absent or zero the result is 0; the denominator
// additionally substitutes 1 to avoid division by zero.
func DayGainPercent(p model.Position) float64 {
	if orZero(p.PrevClose) == 0 {
		return 0
	}
	return DayGain(p) / orOne(p.PrevClose) * 100
}

// TotalGain returns the change in value since acquisition, treating an
// absent current price as zero.
func TotalGain(p model.Position) float64 {
	return (orZero(p.CurrentPrice) - p.BuyPrice) * float64(p.Shares)
}

// TotalGainPercent returns the gain since acquisition relative to the cost
// basis per share. A zero buy price yields 0.
func TotalGainPercent(p model.Position) float64 {
	if p.BuyPrice == 0 {
		return 0
	}
	return (orZero(p.CurrentPrice) - p.BuyPrice) / p.BuyPrice * 100
}

// PortfolioValue returns the current market value of all positions, counting
// positions without a fetched price as worth zero.
func PortfolioValue(positions []model.Position) float64 {
	var total float64
	for _, p := range positions {
		total += orZero(p.CurrentPrice) * float64(p.Shares)
	}
	return total
}

// PortfolioCost returns the total cost basis of all positions.
func PortfolioCost(positions []model.Position) float64 {
	var total float64
	for _, p := range positions {
		total += CostBasis(p)
	}
	return total
}

// PortfolioGain returns the unrealized gain over the whole portfolio.
func PortfolioGain(positions []model.Position) float64 {
	return PortfolioValue(positions) - PortfolioCost(positions)
}

// PortfolioGainPercent returns the portfolio gain relative to total cost.
// A zero cost basis yields 0.
func PortfolioGainPercent(positions []model.Position) float64 {
	cost := PortfolioCost(positions)
	if cost == 0 {
		return 0
	}
	return PortfolioGain(positions) / cost * 100
}

// PortfolioDayGain returns the session gain over the whole portfolio:
// the sum of (currentPrice - prevClose) * shares with absent values as zero.
func PortfolioDayGain(positions []model.Position) float64 {
	var total float64
	for _, p := range positions {
		total += DayGain(p) * float64(p.Shares)
	}
	return total
}

// PortfolioDayGainPercent returns the session gain relative to yesterday's
// closing value of the portfolio. When no position has a previous close the
// denominator is zero and the result is 0.
func PortfolioDayGainPercent(positions []model.Position) float64 {
	var prevValue float64
	for _, p := range positions {
		prevValue += orZero(p.PrevClose) * float64(p.Shares)
	}
	if prevValue == 0 {
		return 0
	}
	return PortfolioDayGain(positions) / prevValue * 100
}
