package validation

import (
	"strings"

	"github.com/armyblogger/stock-tracker/internal/api/request"
)

// maxTickerLength bounds ticker input; real exchange symbols stay well
// under this.
const maxTickerLength = 12

func validatePositionFields(ticker string, buyPrice float64, shares int64) map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(ticker) == "" {
		errors["ticker"] = "ticker is required"
	} else if len(ticker) > maxTickerLength {
		errors["ticker"] = "ticker must be 12 characters or less"
	}

	if shares <= 0 {
		errors["shares"] = "shares must be greater than zero"
	}

	if buyPrice < 0 {
		errors["buyPrice"] = "buyPrice cannot be negative"
	}

	return errors
}

// ValidateCreatePosition validates the add-position request body.
func ValidateCreatePosition(req request.CreatePositionRequest) error {
	errors := validatePositionFields(req.Ticker, req.BuyPrice, req.Shares)
	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateUpdatePosition validates the edit-position request body. Edits
// replace the whole record, so the rules match creation.
func ValidateUpdatePosition(req request.UpdatePositionRequest) error {
	errors := validatePositionFields(req.Ticker, req.BuyPrice, req.Shares)
	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateSetToken validates the set-token request body.
func ValidateSetToken(req request.SetTokenRequest) error {
	if strings.TrimSpace(req.Token) == "" {
		return &Error{Fields: map[string]string{"token": "token is required"}}
	}
	return nil
}
