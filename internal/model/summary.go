package model

// PortfolioSummary aggregates valuation metrics over the whole portfolio.
// All percentages are guarded: a zero denominator yields 0, never Inf/NaN.
type PortfolioSummary struct {
	Positions     int     `json:"positions"`
	TotalValue    float64 `json:"totalValue"`
	TotalCost     float64 `json:"totalCost"`
	TotalGain     float64 `json:"totalGain"`
	TotalGainPct  float64 `json:"totalGainPercent"`
	DayGain       float64 `json:"dayGain"`
	DayGainPct    float64 `json:"dayGainPercent"`
	QuotesLoading bool    `json:"quotesLoading"`
}

// VersionInfo reports the application version and the current schema
// migration version of the database.
type VersionInfo struct {
	AppVersion    string `json:"app_version"`
	SchemaVersion int64  `json:"schema_version"`
}
