package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/armyblogger/stock-tracker/internal/api/request"
	"github.com/armyblogger/stock-tracker/internal/api/response"
	"github.com/armyblogger/stock-tracker/internal/service"
	"github.com/armyblogger/stock-tracker/internal/validation"
)

// SettingsHandler handles settings-related HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
	}
}

// SettingsResponse represents the settings get response. The API token is
// never returned in full, only masked.
type SettingsResponse struct {
	APITokenSet    bool   `json:"apiTokenSet"`
	APITokenMasked string `json:"apiTokenMasked,omitempty"`
}

// Get returns the current settings with the API token masked.
//
// Endpoint: GET /api/settings
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	masked, err := h.settingsService.MaskedAPIToken()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to read settings", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, SettingsResponse{
		APITokenSet:    masked != "",
		APITokenMasked: masked,
	})
}

// SetToken stores the provider API token, encrypted at rest.
//
// Endpoint: PUT /api/settings/token
func (h *SettingsHandler) SetToken(w http.ResponseWriter, r *http.Request) {
	var req request.SetTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateSetToken(req); err != nil {
		response.RespondValidationError(w, err)
		return
	}

	if err := h.settingsService.SetAPIToken(req.Token); err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to store api token", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
