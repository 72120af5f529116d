package model

import (
	"strings"

	"github.com/armyblogger/stock-tracker/internal/apperrors"
)

// Position represents a single tracked holding: what was bought, at which
// cost basis, plus the market-data fields filled in by the latest quote fetch.
//
// Only Ticker, BuyPrice, Shares and PrevClose survive a restart; every other
// market field is re-derived by the refresh pass that runs on load. Pointer
// fields are nil until a quote fetch has populated them. High24H/Low24H and
// High1W/Low1W exist in the model but are never supplied by Finnhub, so they
// stay nil with the current provider.
type Position struct {
	Ticker   string  `json:"ticker"`
	BuyPrice float64 `json:"buyPrice"`
	Shares   int64   `json:"shares"`

	CurrentPrice *float64 `json:"currentPrice,omitempty"`
	PrevClose    *float64 `json:"prevClose,omitempty"`
	High52W      *float64 `json:"high52w,omitempty"`
	Low52W       *float64 `json:"low52w,omitempty"`
	High24H      *float64 `json:"high24h,omitempty"`
	Low24H       *float64 `json:"low24h,omitempty"`
	High1W       *float64 `json:"high1w,omitempty"`
	Low1W        *float64 `json:"low1w,omitempty"`
}

// NewPosition constructs a Position and enforces its invariants: a non-empty
// ticker (normalized to upper case), shares > 0 and buyPrice >= 0. Duplicate
// tickers are deliberately not rejected; two positions with the same symbol
// are independent lots.
func NewPosition(ticker string, buyPrice float64, shares int64) (Position, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return Position{}, apperrors.ErrEmptyTicker
	}
	if shares <= 0 {
		return Position{}, apperrors.ErrNonPositiveShares
	}
	if buyPrice < 0 {
		return Position{}, apperrors.ErrNegativeBuyPrice
	}

	return Position{
		Ticker:   ticker,
		BuyPrice: buyPrice,
		Shares:   shares,
	}, nil
}
