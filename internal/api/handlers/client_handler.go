package handlers

import (
	"context"
	"net/http"

	"github.com/avaintel/staffing-rates/internal/application/services"
	"github.com/avaintel/staffing-rates/internal/domain/entities"
	"github.com/avaintel/staffing-rates/internal/domain/repositories"
)

// ClientRanker defines the handler dependency for facility rankings.
type ClientRanker interface {
	RankClients(ctx context.Context, query services.ClientRankingQuery) ([]*entities.ClientRate, error)
}

// ClientHandler handles facility-ranking HTTP requests
type ClientHandler struct {
	ranker ClientRanker
}

// NewClientHandler creates a new client handler
func NewClientHandler(ranker ClientRanker) *ClientHandler {
	return &ClientHandler{
		ranker: ranker,
	}
}

// GetClientRankings handles GET /api/clients/rankings
func (h *ClientHandler) GetClientRankings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("specialty") == "" {
		respondWithError(w, http.StatusBadRequest, "specialty is required")
		return
	}

	var mode repositories.RankingMode
	switch q.Get("mode") {
	case "", "highest":
		mode = repositories.RankHighest
	case "lowest":
		mode = repositories.RankLowest
	case "similar":
		mode = repositories.RankSimilar
	default:
		respondWithError(w, http.StatusBadRequest, "mode must be one of highest, lowest, similar")
		return
	}

	targetRate, _, err := queryFloat(q, "target_rate")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	tolerancePct, _, err := queryFloat(q, "tolerance_pct")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	rankings, err := h.ranker.RankClients(r.Context(), services.ClientRankingQuery{
		Specialty:    q.Get("specialty"),
		Profession:   q.Get("profession"),
		City:         q.Get("city"),
		State:        q.Get("state"),
		RateType:     q.Get("rate_type"),
		Mode:         mode,
		TargetRate:   targetRate,
		TolerancePct: tolerancePct,
	})
	if err != nil {
		respondWithServiceError(w, err, "failed to rank clients")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"clients": rankings,
		"count":   len(rankings),
	})
}
