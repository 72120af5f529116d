package valuation_test

import (
	"math"
	"testing"

	"github.com/armyblogger/stock-tracker/internal/model"
	"github.com/armyblogger/stock-tracker/internal/valuation"
)

func ptr(v float64) *float64 {
	return &v
}

func position(t *testing.T, ticker string, buyPrice float64, shares int64) model.Position {
	t.Helper()

	p, err := model.NewPosition(ticker, buyPrice, shares)
	if err != nil {
		t.Fatalf("NewPosition(%s) returned unexpected error: %v", ticker, err)
	}
	return p
}

// TestPositionMetrics tests per-position derivations against hand-computed
// values.
//
// WHY: These formulas are the product the whole service exists to display.
// Every ratio must be guarded against zero denominators, and absent market
// data must consistently count as zero.
func TestPositionMetrics(t *testing.T) {
	t.Run("quoted position computes all metrics", func(t *testing.T) {
		p := position(t, "AAPL", 100, 10)
		p.CurrentPrice = ptr(110)
		p.PrevClose = ptr(105)

		if got := valuation.CostBasis(p); got != 1000 {
			t.Errorf("CostBasis = %v, want 1000", got)
		}
		if got := valuation.TotalGain(p); got != 100 {
			t.Errorf("TotalGain = %v, want 100", got)
		}
		if got := valuation.TotalGainPercent(p); got != 10 {
			t.Errorf("TotalGainPercent = %v, want 10", got)
		}
		if got := valuation.DayGain(p); got != 5 {
			t.Errorf("DayGain = %v, want 5", got)
		}
		if got := valuation.DayGainPercent(p); math.Abs(got-4.761904761904762) > 1e-9 {
			t.Errorf("DayGainPercent = %v, want ~4.76", got)
		}
	})

	t.Run("unquoted position treats current price as zero", func(t *testing.T) {
		p := position(t, "AAPL", 100, 10)

		// With no quote the position values at zero, so the total gain is
		// the full cost basis, negative.
		if got := valuation.TotalGain(p); got != -1000 {
			t.Errorf("TotalGain = %v, want -1000", got)
		}
		if got := valuation.TotalGainPercent(p); got != -100 {
			t.Errorf("TotalGainPercent = %v, want -100", got)
		}
		if got := valuation.DayGain(p); got != 0 {
			t.Errorf("DayGain = %v, want 0", got)
		}
		if got := valuation.DayGainPercent(p); got != 0 {
			t.Errorf("DayGainPercent = %v, want 0", got)
		}
	})

	t.Run("zero buy price yields zero total gain percent", func(t *testing.T) {
		p := position(t, "FREE", 0, 5)
		p.CurrentPrice = ptr(10)

		if got := valuation.TotalGainPercent(p); got != 0 {
			t.Errorf("TotalGainPercent = %v, want 0", got)
		}
		// The absolute gain is still computed.
		if got := valuation.TotalGain(p); got != 50 {
			t.Errorf("TotalGain = %v, want 50", got)
		}
	})

	t.Run("zero previous close yields zero day gain percent", func(t *testing.T) {
		p := position(t, "AAPL", 100, 10)
		p.CurrentPrice = ptr(110)
		p.PrevClose = ptr(0)

		if got := valuation.DayGainPercent(p); got != 0 {
			t.Errorf("DayGainPercent = %v, want 0", got)
		}
		if got := valuation.DayGain(p); got != 110 {
			t.Errorf("DayGain = %v, want 110", got)
		}
	})
}

// TestPortfolioMetrics tests portfolio-level aggregation.
//
// WHY: The summary view aggregates the same formulas over the full list.
// The zero-denominator guards must hold over the aggregates too: an empty or
// unquoted portfolio produces zeros, never NaN.
func TestPortfolioMetrics(t *testing.T) {
	t.Run("empty portfolio produces all zeros", func(t *testing.T) {
		var positions []model.Position

		if got := valuation.PortfolioValue(positions); got != 0 {
			t.Errorf("PortfolioValue = %v, want 0", got)
		}
		if got := valuation.PortfolioCost(positions); got != 0 {
			t.Errorf("PortfolioCost = %v, want 0", got)
		}
		if got := valuation.PortfolioGainPercent(positions); got != 0 {
			t.Errorf("PortfolioGainPercent = %v, want 0", got)
		}
		if got := valuation.PortfolioDayGainPercent(positions); got != 0 {
			t.Errorf("PortfolioDayGainPercent = %v, want 0", got)
		}
	})

	t.Run("cost is the exact sum of buy price times shares", func(t *testing.T) {
		positions := []model.Position{
			position(t, "AAPL", 100.25, 10),
			position(t, "MSFT", 310.10, 3),
			position(t, "AAPL", 95.50, 7), // duplicate ticker, independent lot
		}

		want := 100.25*10 + 310.10*3 + 95.50*7
		if got := valuation.PortfolioCost(positions); got != want {
			t.Errorf("PortfolioCost = %v, want %v", got, want)
		}
	})

	t.Run("mixed quoted and unquoted positions", func(t *testing.T) {
		quoted := position(t, "AAPL", 100, 10)
		quoted.CurrentPrice = ptr(110)
		quoted.PrevClose = ptr(105)

		unquoted := position(t, "MSFT", 200, 5)

		positions := []model.Position{quoted, unquoted}

		// Value counts only the quoted position.
		if got := valuation.PortfolioValue(positions); got != 1100 {
			t.Errorf("PortfolioValue = %v, want 1100", got)
		}
		if got := valuation.PortfolioCost(positions); got != 2000 {
			t.Errorf("PortfolioCost = %v, want 2000", got)
		}
		if got := valuation.PortfolioGain(positions); got != -900 {
			t.Errorf("PortfolioGain = %v, want -900", got)
		}
		if got := valuation.PortfolioGainPercent(positions); got != -45 {
			t.Errorf("PortfolioGainPercent = %v, want -45", got)
		}

		// Day gain: (110-105)*10 for AAPL, zero contribution from MSFT.
		if got := valuation.PortfolioDayGain(positions); got != 50 {
			t.Errorf("PortfolioDayGain = %v, want 50", got)
		}
		// Denominator: 105*10 = 1050.
		if got := valuation.PortfolioDayGainPercent(positions); math.Abs(got-50.0/1050*100) > 1e-9 {
			t.Errorf("PortfolioDayGainPercent = %v, want %v", got, 50.0/1050*100)
		}
	})

	t.Run("no previous closes yields zero day gain percent", func(t *testing.T) {
		a := position(t, "AAPL", 100, 10)
		a.CurrentPrice = ptr(110)
		b := position(t, "MSFT", 200, 5)
		b.CurrentPrice = ptr(210)

		positions := []model.Position{a, b}

		if got := valuation.PortfolioDayGainPercent(positions); got != 0 {
			t.Errorf("PortfolioDayGainPercent = %v, want 0", got)
		}
	})

	t.Run("results are finite for any zero denominator", func(t *testing.T) {
		p := position(t, "AAPL", 0, 1)
		p.CurrentPrice = ptr(0)
		p.PrevClose = ptr(0)
		positions := []model.Position{p}

		metrics := []float64{
			valuation.PortfolioGainPercent(positions),
			valuation.PortfolioDayGainPercent(positions),
			valuation.TotalGainPercent(p),
			valuation.DayGainPercent(p),
		}
		for i, m := range metrics {
			if math.IsNaN(m) || math.IsInf(m, 0) {
				t.Errorf("metric %d is not finite: %v", i, m)
			}
		}
	})
}
