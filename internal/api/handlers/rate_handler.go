package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/avaintel/staffing-rates/internal/application/services"
	"github.com/avaintel/staffing-rates/internal/domain/entities"
	apperrors "github.com/avaintel/staffing-rates/pkg/errors"
)

// MarketRateResolver defines the handler dependency for rate lookups.
type MarketRateResolver interface {
	GetMarketRate(ctx context.Context, query services.MarketRateQuery) (*entities.RateStatistics, error)
	GetHighestRates(ctx context.Context, query services.MarketRateQuery) (*entities.HighRateStatistics, error)
	AnalyzeRateImpact(ctx context.Context, query services.MarketRateQuery, proposedRate float64) (*entities.RateImpact, error)
}

// RateHandler handles market-rate HTTP requests
type RateHandler struct {
	resolver MarketRateResolver
}

// NewRateHandler creates a new rate handler
func NewRateHandler(resolver MarketRateResolver) *RateHandler {
	return &RateHandler{
		resolver: resolver,
	}
}

// GetMarketRate handles GET /api/rates/market
func (h *RateHandler) GetMarketRate(w http.ResponseWriter, r *http.Request) {
	query := marketRateQuery(r.URL.Query())
	if query.Specialty == "" {
		respondWithError(w, http.StatusBadRequest, "specialty is required")
		return
	}

	stats, err := h.resolver.GetMarketRate(r.Context(), query)
	if err != nil {
		respondWithServiceError(w, err, "failed to resolve market rate")
		return
	}
	if stats == nil {
		respondWithError(w, http.StatusNotFound, "no geographic scope has enough recent assignments for this specialty")
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}

// GetHighestRates handles GET /api/rates/highest
func (h *RateHandler) GetHighestRates(w http.ResponseWriter, r *http.Request) {
	query := marketRateQuery(r.URL.Query())
	if query.Specialty == "" {
		respondWithError(w, http.StatusBadRequest, "specialty is required")
		return
	}

	stats, err := h.resolver.GetHighestRates(r.Context(), query)
	if err != nil {
		respondWithServiceError(w, err, "failed to resolve highest rates")
		return
	}
	if stats == nil {
		respondWithError(w, http.StatusNotFound, "no geographic scope has enough recent assignments for this specialty")
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}

// rateImpactRequest is the POST body for an impact analysis
type rateImpactRequest struct {
	Specialty    string  `json:"specialty"`
	Profession   string  `json:"profession"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	RateType     string  `json:"rate_type"`
	ProposedRate float64 `json:"proposed_rate"`
}

// AnalyzeRateImpact handles POST /api/rates/impact
func (h *RateHandler) AnalyzeRateImpact(w http.ResponseWriter, r *http.Request) {
	var req rateImpactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Specialty == "" {
		respondWithError(w, http.StatusBadRequest, "specialty is required")
		return
	}
	if req.ProposedRate <= 0 {
		respondWithError(w, http.StatusBadRequest, "proposed_rate must be positive")
		return
	}

	impact, err := h.resolver.AnalyzeRateImpact(r.Context(), services.MarketRateQuery{
		Specialty:  req.Specialty,
		Profession: req.Profession,
		City:       req.City,
		State:      req.State,
		RateType:   req.RateType,
	}, req.ProposedRate)
	if err != nil {
		respondWithServiceError(w, err, "failed to analyze rate impact")
		return
	}
	if impact == nil {
		respondWithError(w, http.StatusNotFound, "no market data to compare the proposed rate against")
		return
	}

	respondWithJSON(w, http.StatusOK, impact)
}

// marketRateQuery builds the common scope query from URL parameters
func marketRateQuery(q url.Values) services.MarketRateQuery {
	return services.MarketRateQuery{
		Specialty:  q.Get("specialty"),
		Profession: q.Get("profession"),
		City:       q.Get("city"),
		State:      q.Get("state"),
		RateType:   q.Get("rate_type"),
	}
}

// queryFloat parses an optional float parameter. Absence is not an error; a
// malformed value is.
func queryFloat(q url.Values, name string) (float64, bool, error) {
	raw := q.Get(name)
	if raw == "" {
		return 0, false, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%s must be a number", name)
	}
	return value, true, nil
}

// queryInt parses an optional integer parameter
func queryInt(q url.Values, name string) (int, bool, error) {
	raw := q.Get(name)
	if raw == "" {
		return 0, false, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("%s must be an integer", name)
	}
	return value, true, nil
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithServiceError maps service-layer error types onto HTTP statuses.
// Unavailable and external failures never leak internal detail.
func respondWithServiceError(w http.ResponseWriter, err error, fallback string) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		switch appErr.Type {
		case apperrors.ErrorTypeValidation:
			respondWithError(w, http.StatusBadRequest, appErr.Message)
		case apperrors.ErrorTypeNotFound:
			respondWithError(w, http.StatusNotFound, appErr.Message)
		case apperrors.ErrorTypeInsufficientData:
			respondWithError(w, http.StatusNotFound, appErr.Message)
		case apperrors.ErrorTypeUnavailable:
			respondWithError(w, http.StatusServiceUnavailable, fallback)
		case apperrors.ErrorTypeExternal:
			respondWithError(w, http.StatusBadGateway, fallback)
		default:
			respondWithError(w, http.StatusInternalServerError, fallback)
		}
		return
	}
	respondWithError(w, http.StatusInternalServerError, fallback)
}
