// Package forecastapi is the HTTP client for the external rate forecasting
// model.
package forecastapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avaintel/staffing-rates/internal/domain/providers"
	"github.com/avaintel/staffing-rates/pkg/config"
	apperrors "github.com/avaintel/staffing-rates/pkg/errors"
)

// metadataKey is the reserved top-level key the model uses for run metadata;
// it is never a specialty.
const metadataKey = "_metadata"

// Client calls the forecasting model over HTTP. A request that fails because
// the specialty/state combination lacks history comes back as an
// insufficient-data error so the fallback cascade can act on it; timeouts and
// connection failures come back as unavailable and must never cascade.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewClient creates a forecasting client from configuration
func NewClient(cfg *config.ForecastingConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

// Forecast requests forecast series for the given specialties and states.
// An empty state list requests the national aggregate.
func (c *Client) Forecast(ctx context.Context, req providers.ForecastRequest) (*providers.ForecastPayload, error) {
	if req.Model == "" {
		req.Model = c.model
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode forecast request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/forecast", bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build forecast request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return nil, apperrors.NewUnavailableError("forecast request timed out", err)
		}
		return nil, apperrors.NewUnavailableError("forecast service unreachable", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewUnavailableError("failed to read forecast response", err)
	}

	if resp.StatusCode != http.StatusOK {
		if isInsufficientDataBody(raw) {
			return nil, apperrors.NewInsufficientDataError(
				fmt.Sprintf("no forecast history for %v in %v", req.Specialties, req.States))
		}
		return nil, apperrors.NewExternalError(
			fmt.Sprintf("forecast service returned status %d", resp.StatusCode), nil)
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, apperrors.NewExternalError("failed to decode forecast response", err)
	}

	payload := &providers.ForecastPayload{
		Series: make(map[string]map[string]providers.ForecastSeries, len(top)),
	}
	for specialty, value := range top {
		if specialty == metadataKey {
			continue
		}
		var byState map[string]providers.ForecastSeries
		if err := json.Unmarshal(value, &byState); err != nil {
			return nil, apperrors.NewExternalError(
				fmt.Sprintf("malformed forecast series for %q", specialty), err)
		}
		payload.Series[specialty] = byState
	}

	if len(payload.Series) == 0 {
		return nil, apperrors.NewInsufficientDataError(
			fmt.Sprintf("forecast response held no series for %v", req.Specialties))
	}

	return payload, nil
}

// isInsufficientDataBody recognizes the model's lack-of-history failures.
// The model reports them as errors in the response body rather than a
// dedicated status code.
func isInsufficientDataBody(body []byte) bool {
	text := strings.ToLower(string(body))
	return strings.Contains(text, "data fetch failed") ||
		strings.Contains(text, "list index out of range") ||
		strings.Contains(text, "insufficient")
}

func isTimeout(err error) bool {
	var timeoutErr interface{ Timeout() bool }
	return errors.As(err, &timeoutErr) && timeoutErr.Timeout()
}
