package handlers

import (
	"context"
	"net/http"

	"github.com/avaintel/staffing-rates/internal/application/services"
	"github.com/avaintel/staffing-rates/internal/domain/entities"
)

// TrendAnalyzer defines the handler dependency for trend analysis.
type TrendAnalyzer interface {
	AnalyzeTrends(ctx context.Context, query services.TrendQuery) ([]*entities.StateTrend, error)
}

// TrendHandler handles trend-analysis HTTP requests
type TrendHandler struct {
	analyzer TrendAnalyzer
}

// NewTrendHandler creates a new trend handler
func NewTrendHandler(analyzer TrendAnalyzer) *TrendHandler {
	return &TrendHandler{
		analyzer: analyzer,
	}
}

// GetTrends handles GET /api/trends
func (h *TrendHandler) GetTrends(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("specialty") == "" {
		respondWithError(w, http.StatusBadRequest, "specialty is required")
		return
	}

	limit, _, err := queryInt(q, "limit")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	trends, err := h.analyzer.AnalyzeTrends(r.Context(), services.TrendQuery{
		Specialty:  q.Get("specialty"),
		Profession: q.Get("profession"),
		RateType:   q.Get("rate_type"),
		Direction:  q.Get("direction"),
		Limit:      limit,
	})
	if err != nil {
		respondWithServiceError(w, err, "failed to analyze trends")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"trends": trends,
		"count":  len(trends),
	})
}
