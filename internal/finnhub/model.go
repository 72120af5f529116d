package finnhub

// QuoteResponse is the raw response of the Finnhub /quote endpoint.
// A symbol Finnhub does not know still returns 200 with all-zero fields.
type QuoteResponse struct {
	Current       float64 `json:"c"`
	Change        float64 `json:"d"`
	ChangePercent float64 `json:"dp"`
	High          float64 `json:"h"`
	Low           float64 `json:"l"`
	Open          float64 `json:"o"`
	PrevClose     float64 `json:"pc"`
	Timestamp     int64   `json:"t"`
}

// MetricResponse is the raw response of the Finnhub /stock/metric endpoint.
// Only the 52-week high/low are consumed; the metric map carries dozens of
// other keys that are ignored.
type MetricResponse struct {
	Symbol string             `json:"symbol"`
	Metric map[string]float64 `json:"metric"`
}

// Metric map keys consumed from MetricResponse.
const (
	metricHigh52W = "52WeekHigh"
	metricLow52W  = "52WeekLow"
)

// Snapshot is the normalized result of one quote fetch for one symbol.
// CurrentPrice and PrevClose are always present on success; the 52-week
// fields are nil when the metrics lookup failed or did not carry them.
type Snapshot struct {
	CurrentPrice float64
	PrevClose    float64
	High52W      *float64
	Low52W       *float64
}
