package forecastapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avaintel/staffing-rates/internal/domain/providers"
	"github.com/avaintel/staffing-rates/pkg/config"
	apperrors "github.com/avaintel/staffing-rates/pkg/errors"
)

func newTestClient(url string) *Client {
	return NewClient(&config.ForecastingConfig{
		BaseURL:        url,
		Model:          "prophet",
		TimeoutSeconds: 2,
	})
}

func TestForecast_ParsesNestedSeriesAndSkipsMetadata(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/forecast", r.URL.Path)

		var req providers.ForecastRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"RN - ICU"}, req.Specialties)
		assert.Equal(t, "prophet", req.Model, "client fills in the configured model")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"_metadata": {"run_id": "abc", "generated_at": "2026-08-01"},
			"RN - ICU": {
				"OH": {
					"historical": [{"date": "2026-07-01", "value": 98.2}],
					"forecast": [{"date": "2026-09-01", "value": 101.5}],
					"mape": 8.4,
					"model": "prophet"
				}
			}
		}`))
	}))
	defer server.Close()

	payload, err := newTestClient(server.URL).Forecast(context.Background(), providers.ForecastRequest{
		Specialties: []string{"RN - ICU"},
		States:      []string{"OH"},
		Metric:      "bill_rate",
	})
	require.NoError(t, err)

	require.Contains(t, payload.Series, "RN - ICU")
	assert.NotContains(t, payload.Series, "_metadata")

	series := payload.Series["RN - ICU"]["OH"]
	require.Len(t, series.Forecast, 1)
	assert.Equal(t, 101.5, series.Forecast[0].Value)
	require.NotNil(t, series.MAPE)
	assert.Equal(t, 8.4, *series.MAPE)
}

func TestForecast_LackOfHistoryIsInsufficientData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail": "Data fetch failed: list index out of range"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Forecast(context.Background(), providers.ForecastRequest{
		Specialties: []string{"Certified Nurse Anesthetist (CRNA)"},
		States:      []string{"WY"},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsInsufficientData(err))
	assert.False(t, apperrors.IsUnavailable(err))
}

func TestForecast_TimeoutIsUnavailableNotInsufficient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(&config.ForecastingConfig{BaseURL: server.URL, Model: "prophet", TimeoutSeconds: 90})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Forecast(ctx, providers.ForecastRequest{Specialties: []string{"RN - ICU"}})
	require.Error(t, err)
	assert.True(t, apperrors.IsUnavailable(err), "a timeout must never read as lack of history")
	assert.False(t, apperrors.IsInsufficientData(err))
}

func TestForecast_EmptySeriesIsInsufficientData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"_metadata": {"run_id": "empty"}}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Forecast(context.Background(), providers.ForecastRequest{
		Specialties: []string{"RN - ICU"},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsInsufficientData(err))
}

func TestForecast_OtherServerErrorsStayExternal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Forecast(context.Background(), providers.ForecastRequest{
		Specialties: []string{"RN - ICU"},
	})
	require.Error(t, err)
	assert.False(t, apperrors.IsInsufficientData(err))
	assert.False(t, apperrors.IsUnavailable(err))
}
