package model_test

import (
	"errors"
	"testing"

	"github.com/armyblogger/stock-tracker/internal/apperrors"
	"github.com/armyblogger/stock-tracker/internal/model"
)

// TestNewPosition tests position construction invariants.
//
// WHY: Invalid positions must be rejected at construction so the rest of the
// system never sees a zero-share or negative-cost holding, and tickers are
// normalized once instead of at every use site.
func TestNewPosition(t *testing.T) {
	t.Run("normalizes ticker to upper case and trims spaces", func(t *testing.T) {
		p, err := model.NewPosition("  aapl ", 100, 10)
		if err != nil {
			t.Fatalf("NewPosition returned unexpected error: %v", err)
		}

		if p.Ticker != "AAPL" {
			t.Errorf("Ticker = %q, want %q", p.Ticker, "AAPL")
		}
		if p.BuyPrice != 100 || p.Shares != 10 {
			t.Errorf("Position = %+v, want buyPrice 100 shares 10", p)
		}
		if p.CurrentPrice != nil || p.PrevClose != nil {
			t.Error("new position should carry no market data")
		}
	})

	t.Run("accepts zero buy price", func(t *testing.T) {
		if _, err := model.NewPosition("GIFT", 0, 1); err != nil {
			t.Errorf("NewPosition with zero buy price returned error: %v", err)
		}
	})

	t.Run("rejects empty ticker", func(t *testing.T) {
		_, err := model.NewPosition("   ", 100, 10)
		if !errors.Is(err, apperrors.ErrEmptyTicker) {
			t.Errorf("expected ErrEmptyTicker, got %v", err)
		}
	})

	t.Run("rejects zero or negative shares", func(t *testing.T) {
		for _, shares := range []int64{0, -1} {
			_, err := model.NewPosition("AAPL", 100, shares)
			if !errors.Is(err, apperrors.ErrNonPositiveShares) {
				t.Errorf("shares=%d: expected ErrNonPositiveShares, got %v", shares, err)
			}
		}
	})

	t.Run("rejects negative buy price", func(t *testing.T) {
		_, err := model.NewPosition("AAPL", -0.01, 10)
		if !errors.Is(err, apperrors.ErrNegativeBuyPrice) {
			t.Errorf("expected ErrNegativeBuyPrice, got %v", err)
		}
	})
}
