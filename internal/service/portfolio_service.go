package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/armyblogger/stock-tracker/internal/apperrors"
	"github.com/armyblogger/stock-tracker/internal/finnhub"
	"github.com/armyblogger/stock-tracker/internal/model"
	"github.com/armyblogger/stock-tracker/internal/repository"
	"github.com/armyblogger/stock-tracker/internal/valuation"
)

// snapshotKey is the single key under which the whole portfolio is persisted.
const snapshotKey = "portfolio"

// QuoteClient fetches a price snapshot for one symbol. Satisfied by
// *finnhub.Client and by the test mock.
type QuoteClient interface {
	Quote(ctx context.Context, symbol string) (finnhub.Snapshot, error)
}

// EventKind identifies which mutation produced an Event.
type EventKind string

// Mutation kinds carried by Event.
const (
	EventAdd    EventKind = "add"
	EventEdit   EventKind = "edit"
	EventDelete EventKind = "delete"
)

// Event describes one successful portfolio mutation. Exactly one event is
// emitted per mutation, after persistence has completed.
type Event struct {
	ID        string
	Kind      EventKind
	Ticker    string
	Positions int
}

// snapshotEntry is the persisted form of a position. Market-data fields are
// ephemeral and deliberately not stored, with the exception of the previous
// close, which keeps day-gain figures meaningful across a restart until the
// first refresh lands.
type snapshotEntry struct {
	Ticker    string   `json:"ticker"`
	BuyPrice  float64  `json:"buyPrice"`
	Shares    int64    `json:"shares"`
	PrevClose *float64 `json:"prevClose"`
}

// PortfolioService holds the ordered list of positions, persists it, and
// keeps its market data fresh via the quote client.
//
// All operations that touch the position list are serialized by a single
// mutex, so overlapping calls cannot lose updates. Refresh passes fetch one
// symbol at a time in list order; the sequential policy caps load on the
// provider at one request in flight.
type PortfolioService struct {
	mu        sync.Mutex
	positions []model.Position

	snapshots *repository.SnapshotRepository
	quotes    QuoteClient

	inflight atomic.Int32
	refresh  singleflight.Group

	subMu       sync.Mutex
	subscribers []func(Event)
}

// NewPortfolioService creates a new PortfolioService.
func NewPortfolioService(snapshots *repository.SnapshotRepository, quotes QuoteClient) *PortfolioService {
	return &PortfolioService{
		snapshots: snapshots,
		quotes:    quotes,
	}
}

// Load restores the persisted portfolio and refreshes every position before
// returning, so callers only observe fully hydrated state.
//
// A missing snapshot yields an empty portfolio. A snapshot that cannot be
// decoded yields an empty portfolio as well, plus an error wrapping
// apperrors.ErrCorruptState so the caller can report it; the corrupt value
// is left in place for inspection and will be overwritten by the next
// mutation.
func (s *PortfolioService) Load(ctx context.Context) error {
	s.inflight.Add(1)
	defer s.inflight.Add(-1)

	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok, err := s.snapshots.Get(snapshotKey)
	if err != nil {
		return fmt.Errorf("failed to load portfolio snapshot: %w", err)
	}
	if !ok {
		s.positions = nil
		return nil
	}

	positions, err := decodeSnapshot(data)
	if err != nil {
		s.positions = nil
		return err
	}

	s.positions = positions
	return s.refreshLocked(ctx)
}

// Add validates and appends a new position, persists the list, then fetches
// a quote for the new position only. The returned position already carries
// whatever market data the fetch produced; a failed fetch is not an error,
// it just leaves the market fields absent.
func (s *PortfolioService) Add(ctx context.Context, ticker string, buyPrice float64, shares int64) (model.Position, error) {
	pos, err := model.NewPosition(ticker, buyPrice, shares)
	if err != nil {
		return model.Position{}, err
	}

	s.inflight.Add(1)
	defer s.inflight.Add(-1)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.positions = append(s.positions, pos)
	if err := s.saveLocked(); err != nil {
		s.positions = s.positions[:len(s.positions)-1]
		return model.Position{}, err
	}

	s.notify(EventAdd, pos.Ticker)

	index := len(s.positions) - 1
	if s.fetchLocked(ctx, index) {
		s.persistQuietly()
	}

	return s.positions[index], nil
}

// Edit replaces the position at index, persists the list, and re-fetches
// the replacement's quote. Returns apperrors.ErrIndexOutOfRange when index
// does not address an existing position; the list is left untouched in that
// case.
func (s *PortfolioService) Edit(ctx context.Context, index int, ticker string, buyPrice float64, shares int64) (model.Position, error) {
	pos, err := model.NewPosition(ticker, buyPrice, shares)
	if err != nil {
		return model.Position{}, err
	}

	s.inflight.Add(1)
	defer s.inflight.Add(-1)

	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.positions) {
		return model.Position{}, fmt.Errorf("%w: index %d, %d positions", apperrors.ErrIndexOutOfRange, index, len(s.positions))
	}

	previous := s.positions[index]
	s.positions[index] = pos
	if err := s.saveLocked(); err != nil {
		s.positions[index] = previous
		return model.Position{}, err
	}

	s.notify(EventEdit, pos.Ticker)

	if s.fetchLocked(ctx, index) {
		s.persistQuietly()
	}

	return s.positions[index], nil
}

// Delete removes the position at index and persists the shortened list.
// Returns apperrors.ErrIndexOutOfRange when index does not address an
// existing position.
func (s *PortfolioService) Delete(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.positions) {
		return fmt.Errorf("%w: index %d, %d positions", apperrors.ErrIndexOutOfRange, index, len(s.positions))
	}

	removed := s.positions[index]
	remaining := make([]model.Position, 0, len(s.positions)-1)
	remaining = append(remaining, s.positions[:index]...)
	remaining = append(remaining, s.positions[index+1:]...)

	previous := s.positions
	s.positions = remaining
	if err := s.saveLocked(); err != nil {
		s.positions = previous
		return err
	}

	s.notify(EventDelete, removed.Ticker)
	return nil
}

// RefreshAll fetches a quote for every position, strictly one at a time in
// list order, then persists the snapshot so updated previous closes survive
// a restart. Concurrent callers are collapsed into a single refresh pass and
// share its result.
//
// A failed fetch leaves that position's market fields exactly as they were;
// only a persistence failure is reported as an error.
func (s *PortfolioService) RefreshAll(ctx context.Context) error {
	_, err, _ := s.refresh.Do(snapshotKey, func() (any, error) {
		s.inflight.Add(1)
		defer s.inflight.Add(-1)

		s.mu.Lock()
		defer s.mu.Unlock()
		return nil, s.refreshLocked(ctx)
	})
	return err
}

// Positions returns a copy of the current position list in insertion order.
func (s *PortfolioService) Positions() []model.Position {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Position, len(s.positions))
	copy(out, s.positions)
	return out
}

// Summary computes portfolio-level metrics over the current positions.
func (s *PortfolioService) Summary() model.PortfolioSummary {
	positions := s.Positions()

	return model.PortfolioSummary{
		Positions:     len(positions),
		TotalValue:    valuation.PortfolioValue(positions),
		TotalCost:     valuation.PortfolioCost(positions),
		TotalGain:     valuation.PortfolioGain(positions),
		TotalGainPct:  valuation.PortfolioGainPercent(positions),
		DayGain:       valuation.PortfolioDayGain(positions),
		DayGainPct:    valuation.PortfolioDayGainPercent(positions),
		QuotesLoading: s.Loading(),
	}
}

// Loading reports whether any fetch-triggering operation is in flight.
// Intended for progress display only.
func (s *PortfolioService) Loading() bool {
	return s.inflight.Load() > 0
}

// Subscribe registers a callback invoked once per successful mutation, after
// persistence completes. Callbacks run synchronously on the mutating
// goroutine and must not call back into the service.
func (s *PortfolioService) Subscribe(fn func(Event)) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// refreshLocked runs the sequential fetch pass and persists the result.
// Caller must hold s.mu.
func (s *PortfolioService) refreshLocked(ctx context.Context) error {
	for i := range s.positions {
		s.fetchLocked(ctx, i)
	}
	return s.saveLocked()
}

// fetchLocked fetches a quote for the position at index and applies it.
// A failed fetch leaves the position untouched so previously fetched data
// stays visible, merely stale. Caller must hold s.mu.
func (s *PortfolioService) fetchLocked(ctx context.Context, index int) bool {
	pos := &s.positions[index]

	snapshot, err := s.quotes.Quote(ctx, pos.Ticker)
	if err != nil {
		log.Printf("quote fetch for %s failed: %v", pos.Ticker, err)
		return false
	}

	current := snapshot.CurrentPrice
	prevClose := snapshot.PrevClose
	pos.CurrentPrice = &current
	pos.PrevClose = &prevClose
	pos.High52W = snapshot.High52W
	pos.Low52W = snapshot.Low52W
	return true
}

// saveLocked serializes the portfolio wholesale and overwrites the stored
// snapshot. Caller must hold s.mu.
func (s *PortfolioService) saveLocked() error {
	entries := make([]snapshotEntry, len(s.positions))
	for i, p := range s.positions {
		entries[i] = snapshotEntry{
			Ticker:    p.Ticker,
			BuyPrice:  p.BuyPrice,
			Shares:    p.Shares,
			PrevClose: p.PrevClose,
		}
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode portfolio snapshot: %w", err)
	}

	if err := s.snapshots.Put(snapshotKey, data); err != nil {
		return fmt.Errorf("failed to persist portfolio snapshot: %w", err)
	}

	return nil
}

// persistQuietly saves after a quote fetch updated previous closes. The
// mutation itself already persisted, so a failure here only costs freshness
// and is logged rather than surfaced.
func (s *PortfolioService) persistQuietly() {
	if err := s.saveLocked(); err != nil {
		log.Printf("failed to persist refreshed quotes: %v", err)
	}
}

// notify emits one mutation event. Caller must hold s.mu so the position
// count is consistent with the mutation just persisted.
func (s *PortfolioService) notify(kind EventKind, ticker string) {
	event := Event{
		ID:        uuid.NewString(),
		Kind:      kind,
		Ticker:    ticker,
		Positions: len(s.positions),
	}

	s.subMu.Lock()
	subscribers := make([]func(Event), len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.subMu.Unlock()

	for _, fn := range subscribers {
		fn(event)
	}
}

// decodeSnapshot decodes and validates a persisted snapshot. Any decode or
// validation failure is reported as apperrors.ErrCorruptState.
func decodeSnapshot(data []byte) ([]model.Position, error) {
	var entries []snapshotEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrCorruptState, err)
	}

	positions := make([]model.Position, 0, len(entries))
	for i, e := range entries {
		pos, err := model.NewPosition(e.Ticker, e.BuyPrice, e.Shares)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", apperrors.ErrCorruptState, i, err)
		}
		pos.PrevClose = e.PrevClose
		positions = append(positions, pos)
	}

	return positions, nil
}
