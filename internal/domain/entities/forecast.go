package entities

// ForecastPoint is one weekly point of a forecast series
type ForecastPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// ForecastHorizon is the projected value and change at a fixed lookahead
type ForecastHorizon struct {
	Weeks     int     `json:"weeks"`
	Value     float64 `json:"value"`
	ChangePct float64 `json:"change_pct"`
}

// ForecastConfidence buckets model accuracy by MAPE
type ForecastConfidence string

const (
	ConfidenceHigh   ForecastConfidence = "high"
	ConfidenceMedium ForecastConfidence = "medium"
	ConfidenceLow    ForecastConfidence = "low"
)

// ForecastInsight is the interpreted forecast for one specialty/state pair:
// current value, fixed horizons, trend direction and model confidence
type ForecastInsight struct {
	Specialty    string             `json:"specialty"`
	State        string             `json:"state"`
	CurrentValue float64            `json:"current_value"`
	Horizons     []ForecastHorizon  `json:"horizons"`
	Direction    TrendDirection     `json:"direction"`
	Confidence   ForecastConfidence `json:"confidence"`
	MAPE         *float64           `json:"mape,omitempty"`
}

// ForecastResult wraps one or more state insights. When the requested state
// had no usable history the fallback fields record where the numbers actually
// came from.
type ForecastResult struct {
	Specialty            string            `json:"specialty"`
	MappedSpecialty      string            `json:"mapped_specialty"`
	Insights             []ForecastInsight `json:"insights"`
	IsMultiStateFallback bool              `json:"is_multi_state_fallback"`
	FallbackReason       string            `json:"fallback_reason,omitempty"`
	RequestedLocation    string            `json:"requested_location,omitempty"`
}
