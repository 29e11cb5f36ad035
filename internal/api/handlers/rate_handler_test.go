package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avaintel/staffing-rates/internal/api/handlers"
	"github.com/avaintel/staffing-rates/internal/application/services"
	"github.com/avaintel/staffing-rates/internal/domain/entities"
	apperrors "github.com/avaintel/staffing-rates/pkg/errors"
)

type stubRateResolver struct {
	stats   *entities.RateStatistics
	highest *entities.HighRateStatistics
	impact  *entities.RateImpact
	err     error

	lastQuery services.MarketRateQuery
}

func (s *stubRateResolver) GetMarketRate(ctx context.Context, query services.MarketRateQuery) (*entities.RateStatistics, error) {
	s.lastQuery = query
	return s.stats, s.err
}

func (s *stubRateResolver) GetHighestRates(ctx context.Context, query services.MarketRateQuery) (*entities.HighRateStatistics, error) {
	s.lastQuery = query
	return s.highest, s.err
}

func (s *stubRateResolver) AnalyzeRateImpact(ctx context.Context, query services.MarketRateQuery, proposedRate float64) (*entities.RateImpact, error) {
	s.lastQuery = query
	return s.impact, s.err
}

func TestRateHandler_GetMarketRate_Success(t *testing.T) {
	resolver := &stubRateResolver{
		stats: &entities.RateStatistics{
			Specialty:  "RN - ICU",
			AvgRate:    102.5,
			SampleSize: 42,
			Tier:       entities.TierState,
			State:      "OH",
		},
	}
	handler := handlers.NewRateHandler(resolver)

	req := httptest.NewRequest("GET", "/api/rates/market?specialty=ICU&state=OH&rate_type=bill_rate", nil)
	w := httptest.NewRecorder()

	handler.GetMarketRate(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ICU", resolver.lastQuery.Specialty)
	assert.Equal(t, "OH", resolver.lastQuery.State)

	var response entities.RateStatistics
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, 102.5, response.AvgRate)
	assert.Equal(t, entities.TierState, response.Tier)
}

func TestRateHandler_GetMarketRate_RequiresSpecialty(t *testing.T) {
	handler := handlers.NewRateHandler(&stubRateResolver{})

	req := httptest.NewRequest("GET", "/api/rates/market?state=OH", nil)
	w := httptest.NewRecorder()

	handler.GetMarketRate(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRateHandler_GetMarketRate_NoDataIsNotFound(t *testing.T) {
	handler := handlers.NewRateHandler(&stubRateResolver{})

	req := httptest.NewRequest("GET", "/api/rates/market?specialty=Perfusionist", nil)
	w := httptest.NewRecorder()

	handler.GetMarketRate(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRateHandler_GetMarketRate_StoreOutageIs503(t *testing.T) {
	resolver := &stubRateResolver{
		err: apperrors.NewUnavailableError("assignment store unreachable", nil),
	}
	handler := handlers.NewRateHandler(resolver)

	req := httptest.NewRequest("GET", "/api/rates/market?specialty=ICU", nil)
	w := httptest.NewRecorder()

	handler.GetMarketRate(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	// Internal detail must not leak
	var response map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.NotContains(t, response["error"], "unreachable")
}

func TestRateHandler_AnalyzeRateImpact_Success(t *testing.T) {
	resolver := &stubRateResolver{
		impact: &entities.RateImpact{
			ProposedRate:        100,
			EstimatedPercentile: 50,
			WithinRange:         true,
		},
	}
	handler := handlers.NewRateHandler(resolver)

	body := `{"specialty":"ICU","state":"OH","proposed_rate":100}`
	req := httptest.NewRequest("POST", "/api/rates/impact", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.AnalyzeRateImpact(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response entities.RateImpact
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.True(t, response.WithinRange)
}

func TestRateHandler_AnalyzeRateImpact_RejectsNonPositiveRate(t *testing.T) {
	handler := handlers.NewRateHandler(&stubRateResolver{})

	body := `{"specialty":"ICU","proposed_rate":0}`
	req := httptest.NewRequest("POST", "/api/rates/impact", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.AnalyzeRateImpact(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRateHandler_AnalyzeRateImpact_RejectsMalformedBody(t *testing.T) {
	handler := handlers.NewRateHandler(&stubRateResolver{})

	req := httptest.NewRequest("POST", "/api/rates/impact", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	handler.AnalyzeRateImpact(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
