package testutil

import (
	"context"
	"sync"

	"github.com/armyblogger/stock-tracker/internal/finnhub"
)

// MockQuoteClient is a mock implementation of the service.QuoteClient
// interface. It returns predefined snapshots instead of calling the
// Finnhub API, and records the order of requested symbols.
type MockQuoteClient struct {
	mu sync.Mutex

	// Snapshots maps symbols to the snapshot to return.
	Snapshots map[string]finnhub.Snapshot
	// Err, when set, is returned for every symbol.
	Err error
	// FailSymbols lists symbols whose fetch should fail even when Err is nil.
	FailSymbols map[string]error
	// Calls records requested symbols in order.
	Calls []string
}

// NewMockQuoteClient creates a mock with no configured snapshots; fetches
// for unknown symbols return a zero snapshot, mirroring Finnhub's behavior
// for unknown tickers.
func NewMockQuoteClient() *MockQuoteClient {
	return &MockQuoteClient{
		Snapshots:   make(map[string]finnhub.Snapshot),
		FailSymbols: make(map[string]error),
	}
}

// Quote returns the configured snapshot or error for symbol.
func (m *MockQuoteClient) Quote(_ context.Context, symbol string) (finnhub.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, symbol)

	if m.Err != nil {
		return finnhub.Snapshot{}, m.Err
	}
	if err, ok := m.FailSymbols[symbol]; ok {
		return finnhub.Snapshot{}, err
	}
	return m.Snapshots[symbol], nil
}

// CallCount returns how many fetches were issued.
func (m *MockQuoteClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// WithQuote configures the snapshot returned for symbol, without 52-week data.
func (m *MockQuoteClient) WithQuote(symbol string, current, prevClose float64) *MockQuoteClient {
	m.Snapshots[symbol] = finnhub.Snapshot{
		CurrentPrice: current,
		PrevClose:    prevClose,
	}
	return m
}

// WithFullQuote configures the snapshot returned for symbol, including
// 52-week high/low.
func (m *MockQuoteClient) WithFullQuote(symbol string, current, prevClose, high52w, low52w float64) *MockQuoteClient {
	m.Snapshots[symbol] = finnhub.Snapshot{
		CurrentPrice: current,
		PrevClose:    prevClose,
		High52W:      &high52w,
		Low52W:       &low52w,
	}
	return m
}

// WithError configures the mock to fail every fetch with err.
func (m *MockQuoteClient) WithError(err error) *MockQuoteClient {
	m.Err = err
	return m
}

// WithFailingSymbol configures fetches for one symbol to fail with err while
// other symbols keep succeeding.
func (m *MockQuoteClient) WithFailingSymbol(symbol string, err error) *MockQuoteClient {
	m.FailSymbols[symbol] = err
	return m
}
