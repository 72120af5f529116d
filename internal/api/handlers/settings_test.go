package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/armyblogger/stock-tracker/internal/api/handlers"
	"github.com/armyblogger/stock-tracker/internal/api/request"
	"github.com/armyblogger/stock-tracker/internal/testutil"
)

// TestSettingsHandler tests the settings endpoints.
//
// WHY: The API token must be settable over the API but never readable back
// in full; the get endpoint only ever exposes the masked form.
func TestSettingsHandler(t *testing.T) {
	t.Run("get with no token stored", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSettingsService(t, db)
		handler := handlers.NewSettingsHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/settings/", nil)
		rec := httptest.NewRecorder()
		handler.Get(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}

		var resp handlers.SettingsResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if resp.APITokenSet {
			t.Error("APITokenSet = true, want false")
		}
	})

	t.Run("set token then get masked", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSettingsService(t, db)
		handler := handlers.NewSettingsHandler(svc)

		body := request.SetTokenRequest{Token: "abcdefgh1234"}
		req := testutil.NewJSONRequest(t, http.MethodPut, "/api/settings/token", body, nil)
		rec := httptest.NewRecorder()
		handler.SetToken(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusNoContent, rec.Body.String())
		}

		req = httptest.NewRequest(http.MethodGet, "/api/settings/", nil)
		rec = httptest.NewRecorder()
		handler.Get(rec, req)

		var resp handlers.SettingsResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if !resp.APITokenSet {
			t.Error("APITokenSet = false, want true")
		}
		if resp.APITokenMasked != "********1234" {
			t.Errorf("APITokenMasked = %q, want %q", resp.APITokenMasked, "********1234")
		}
	})

	t.Run("blank token is rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSettingsService(t, db)
		handler := handlers.NewSettingsHandler(svc)

		body := request.SetTokenRequest{Token: "   "}
		req := testutil.NewJSONRequest(t, http.MethodPut, "/api/settings/token", body, nil)
		rec := httptest.NewRecorder()
		handler.SetToken(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})
}
