package handlers

import (
	"context"
	"net/http"

	"github.com/avaintel/staffing-rates/internal/application/services"
	"github.com/avaintel/staffing-rates/internal/domain/entities"
)

// ForecastResolver defines the handler dependency for forecast insights.
type ForecastResolver interface {
	GetForecastInsights(ctx context.Context, query services.ForecastQuery) (*entities.ForecastResult, error)
}

// ForecastHandler handles forecast HTTP requests
type ForecastHandler struct {
	resolver ForecastResolver
}

// NewForecastHandler creates a new forecast handler
func NewForecastHandler(resolver ForecastResolver) *ForecastHandler {
	return &ForecastHandler{
		resolver: resolver,
	}
}

// GetForecast handles GET /api/forecast
func (h *ForecastHandler) GetForecast(w http.ResponseWriter, r *http.Request) {
	if h.resolver == nil {
		respondWithError(w, http.StatusServiceUnavailable, "forecasting is not configured")
		return
	}

	q := r.URL.Query()
	if q.Get("specialty") == "" {
		respondWithError(w, http.StatusBadRequest, "specialty is required")
		return
	}

	result, err := h.resolver.GetForecastInsights(r.Context(), services.ForecastQuery{
		Specialty:  q.Get("specialty"),
		Profession: q.Get("profession"),
		City:       q.Get("city"),
		State:      q.Get("state"),
		RateType:   q.Get("rate_type"),
	})
	if err != nil {
		respondWithServiceError(w, err, "forecasting service unavailable")
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}
