package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/armyblogger/stock-tracker/internal/api/request"
	"github.com/armyblogger/stock-tracker/internal/api/response"
	"github.com/armyblogger/stock-tracker/internal/apperrors"
	"github.com/armyblogger/stock-tracker/internal/model"
	"github.com/armyblogger/stock-tracker/internal/service"
	"github.com/armyblogger/stock-tracker/internal/validation"
	"github.com/armyblogger/stock-tracker/internal/valuation"
)

// PositionHandler handles position-related HTTP requests
type PositionHandler struct {
	portfolioService *service.PortfolioService
}

// NewPositionHandler creates a new PositionHandler
func NewPositionHandler(portfolioService *service.PortfolioService) *PositionHandler {
	return &PositionHandler{
		portfolioService: portfolioService,
	}
}

// PositionResponse represents one position plus its derived metrics.
// Positions are index-addressed; the index is included so clients can build
// edit and delete requests without tracking order themselves.
type PositionResponse struct {
	Index    int     `json:"index"`
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

	CostBasis        float64 `json:"costBasis"`
	DayGain          float64 `json:"dayGain"`
	DayGainPercent   float64 `json:"dayGainPercent"`
	TotalGain        float64 `json:"totalGain"`
	TotalGainPercent float64 `json:"totalGainPercent"`
}

func toPositionResponse(index int, p model.Position) PositionResponse {
	return PositionResponse{
		Index:    index,
		Ticker:   p.Ticker,
		BuyPrice: p.BuyPrice,
		Shares:   p.Shares,

		CurrentPrice: p.CurrentPrice,
		PrevClose:    p.PrevClose,
		High52W:      p.High52W,
		Low52W:       p.Low52W,
		High24H:      p.High24H,
		Low24H:       p.Low24H,
		High1W:       p.High1W,
		Low1W:        p.Low1W,

		CostBasis:        valuation.CostBasis(p),
		DayGain:          valuation.DayGain(p),
		DayGainPercent:   valuation.DayGainPercent(p),
		TotalGain:        valuation.TotalGain(p),
		TotalGainPercent: valuation.TotalGainPercent(p),
	}
}

// List returns all positions with their derived metrics.
//
// Endpoint: GET /api/positions
func (h *PositionHandler) List(w http.ResponseWriter, r *http.Request) {
	positions := h.portfolioService.Positions()

	resp := make([]PositionResponse, len(positions))
	for i, p := range positions {
		resp[i] = toPositionResponse(i, p)
	}

	response.RespondJSON(w, http.StatusOK, resp)
}

// Create adds a new position, fetches its first quote, and returns the
// hydrated position.
//
// Endpoint: POST /api/positions
func (h *PositionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreatePosition(req); err != nil {
		response.RespondValidationError(w, err)
		return
	}

	pos, err := h.portfolioService.Add(r.Context(), req.Ticker, req.BuyPrice, req.Shares)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to add position", err.Error())
		return
	}

	index := len(h.portfolioService.Positions()) - 1
	response.RespondJSON(w, http.StatusCreated, toPositionResponse(index, pos))
}

// Update replaces the position at the given index and re-fetches its quote.
//
// Endpoint: PUT /api/positions/{index}
func (h *PositionHandler) Update(w http.ResponseWriter, r *http.Request) {
	index, err := parseIndex(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid position index", err.Error())
		return
	}

	var req request.UpdatePositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdatePosition(req); err != nil {
		response.RespondValidationError(w, err)
		return
	}

	pos, err := h.portfolioService.Edit(r.Context(), index, req.Ticker, req.BuyPrice, req.Shares)
	if errors.Is(err, apperrors.ErrIndexOutOfRange) {
		response.RespondError(w, http.StatusNotFound, "position not found", err.Error())
		return
	}
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to update position", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, toPositionResponse(index, pos))
}

// Delete removes the position at the given index.
//
// Endpoint: DELETE /api/positions/{index}
func (h *PositionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	index, err := parseIndex(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid position index", err.Error())
		return
	}

	err = h.portfolioService.Delete(index)
	if errors.Is(err, apperrors.ErrIndexOutOfRange) {
		response.RespondError(w, http.StatusNotFound, "position not found", err.Error())
		return
	}
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to delete position", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// Refresh re-fetches quotes for every position and returns the refreshed
// list.
//
// Endpoint: POST /api/positions/refresh
func (h *PositionHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.portfolioService.RefreshAll(r.Context()); err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to refresh quotes", err.Error())
		return
	}

	h.List(w, r)
}

// Summary returns portfolio-level valuation metrics.
//
// Endpoint: GET /api/positions/summary
func (h *PositionHandler) Summary(w http.ResponseWriter, r *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.portfolioService.Summary())
}

// StatusResponse reports whether a quote fetch is in flight.
type StatusResponse struct {
	Loading bool `json:"loading"`
}

// Status returns the loading flag, for progress display.
//
// Endpoint: GET /api/positions/status
func (h *PositionHandler) Status(w http.ResponseWriter, r *http.Request) {
	response.RespondJSON(w, http.StatusOK, StatusResponse{Loading: h.portfolioService.Loading()})
}

// parseIndex extracts the {index} URL parameter.
func parseIndex(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "index"))
}
