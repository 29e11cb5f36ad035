package providers

import (
	"context"

	"github.com/avaintel/staffing-rates/internal/domain/entities"
)

// ForecastRequest describes one call to the forecasting model. An empty
// States list requests the national aggregate.
type ForecastRequest struct {
	Specialties []string `json:"specialties"`
	States      []string `json:"states"`
	Metric      string   `json:"target_metric"`
	Model       string   `json:"model"`
}

// ForecastSeries is the model output for one specialty/geography pair
type ForecastSeries struct {
	Historical []entities.ForecastPoint `json:"historical"`
	Forecast   []entities.ForecastPoint `json:"forecast"`
	MAPE       *float64                 `json:"mape,omitempty"`
	Model      string                   `json:"model,omitempty"`
}

// ForecastPayload is the nested model response keyed by specialty, then by
// geography ("national" when no state was requested). Specialty keys come
// back in the model's vocabulary and may not equal the requested label
// byte-for-byte; callers fuzzy-match.
type ForecastPayload struct {
	Series map[string]map[string]ForecastSeries
}

// ForecastProvider is the port to the external forecasting model. Failures
// for lack of history surface as an insufficient-data error, unreachability
// or timeout as an unavailable error; callers must treat the two differently.
type ForecastProvider interface {
	Forecast(ctx context.Context, req ForecastRequest) (*ForecastPayload, error)
}
