package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avaintel/staffing-rates/internal/api/handlers"
	"github.com/avaintel/staffing-rates/internal/application/services"
	"github.com/avaintel/staffing-rates/internal/domain/entities"
	apperrors "github.com/avaintel/staffing-rates/pkg/errors"
)

type stubForecastResolver struct {
	result *entities.ForecastResult
	err    error
}

func (s *stubForecastResolver) GetForecastInsights(ctx context.Context, query services.ForecastQuery) (*entities.ForecastResult, error) {
	return s.result, s.err
}

func TestForecastHandler_GetForecast_Success(t *testing.T) {
	resolver := &stubForecastResolver{
		result: &entities.ForecastResult{
			Specialty:       "ICU",
			MappedSpecialty: "RN - ICU",
			Insights: []entities.ForecastInsight{
				{Specialty: "RN - ICU", State: "OH", Direction: entities.TrendUp},
			},
		},
	}
	handler := handlers.NewForecastHandler(resolver)

	req := httptest.NewRequest("GET", "/api/forecast?specialty=ICU&state=OH", nil)
	w := httptest.NewRecorder()

	handler.GetForecast(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response entities.ForecastResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "RN - ICU", response.MappedSpecialty)
	require.Len(t, response.Insights, 1)
}

func TestForecastHandler_GetForecast_InsufficientHistoryIs404(t *testing.T) {
	resolver := &stubForecastResolver{
		err: apperrors.NewInsufficientDataError("not enough history for this specialty"),
	}
	handler := handlers.NewForecastHandler(resolver)

	req := httptest.NewRequest("GET", "/api/forecast?specialty=Perfusionist&state=WY", nil)
	w := httptest.NewRecorder()

	handler.GetForecast(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestForecastHandler_GetForecast_UpstreamTimeoutIs503(t *testing.T) {
	resolver := &stubForecastResolver{
		err: apperrors.NewUnavailableError("forecast request timed out", nil),
	}
	handler := handlers.NewForecastHandler(resolver)

	req := httptest.NewRequest("GET", "/api/forecast?specialty=ICU", nil)
	w := httptest.NewRecorder()

	handler.GetForecast(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestForecastHandler_GetForecast_NotConfigured(t *testing.T) {
	handler := handlers.NewForecastHandler(nil)

	req := httptest.NewRequest("GET", "/api/forecast?specialty=ICU", nil)
	w := httptest.NewRecorder()

	handler.GetForecast(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
