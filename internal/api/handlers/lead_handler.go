package handlers

import (
	"context"
	"net/http"

	"github.com/avaintel/staffing-rates/internal/application/services"
	"github.com/avaintel/staffing-rates/internal/domain/entities"
)

// LeadFinder defines the handler dependency for lead discovery.
type LeadFinder interface {
	GetLeadOpportunities(ctx context.Context, query services.LeadQuery) ([]*entities.LeadOpportunity, error)
}

// LeadHandler handles sales-lead HTTP requests
type LeadHandler struct {
	leads LeadFinder
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(leads LeadFinder) *LeadHandler {
	return &LeadHandler{
		leads: leads,
	}
}

// GetLeads handles GET /api/leads
func (h *LeadHandler) GetLeads(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("specialty") == "" {
		respondWithError(w, http.StatusBadRequest, "specialty is required")
		return
	}

	leads, err := h.leads.GetLeadOpportunities(r.Context(), services.LeadQuery{
		Specialty: q.Get("specialty"),
		State:     q.Get("state"),
		RateType:  q.Get("rate_type"),
	})
	if err != nil {
		respondWithServiceError(w, err, "failed to find lead opportunities")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"leads": leads,
		"count": len(leads),
	})
}
