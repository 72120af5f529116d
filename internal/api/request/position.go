package request

// CreatePositionRequest represents the request body for adding a position
type CreatePositionRequest struct {
	Ticker   string  `json:"ticker"`
	BuyPrice float64 `json:"buyPrice"`
	Shares   int64   `json:"shares"`
}

// UpdatePositionRequest represents the request body for replacing the
// position at an index. Edits are whole-record replacements, so the shape
// matches CreatePositionRequest.
type UpdatePositionRequest struct {
	Ticker   string  `json:"ticker"`
	BuyPrice float64 `json:"buyPrice"`
	Shares   int64   `json:"shares"`
}

// SetTokenRequest represents the request body for storing the provider
// API token.
type SetTokenRequest struct {
	Token string `json:"token"`
}
