package handlers

import (
	"context"
	"net/http"

	"github.com/avaintel/staffing-rates/internal/application/services"
	"github.com/avaintel/staffing-rates/internal/domain/entities"
)

// VendorIntel defines the handler dependency for vendor activity lookups.
type VendorIntel interface {
	GetVendorActivity(ctx context.Context, query services.VendorQuery) ([]*entities.VendorActivity, error)
	GetVendorSummary(ctx context.Context, vendorName string) (*entities.VendorSummary, error)
}

// VendorHandler handles vendor-intelligence HTTP requests
type VendorHandler struct {
	vendors VendorIntel
}

// NewVendorHandler creates a new vendor handler
func NewVendorHandler(vendors VendorIntel) *VendorHandler {
	return &VendorHandler{
		vendors: vendors,
	}
}

// GetVendorActivity handles GET /api/vendors/activity
func (h *VendorHandler) GetVendorActivity(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	activity, err := h.vendors.GetVendorActivity(r.Context(), services.VendorQuery{
		FacilityName: q.Get("facility"),
		City:         q.Get("city"),
		State:        q.Get("state"),
		Specialty:    q.Get("specialty"),
	})
	if err != nil {
		respondWithServiceError(w, err, "failed to look up vendor activity")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"vendors": activity,
		"count":   len(activity),
	})
}

// GetVendorSummary handles GET /api/vendors/{name}
func (h *VendorHandler) GetVendorSummary(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		respondWithError(w, http.StatusBadRequest, "vendor name is required")
		return
	}

	summary, err := h.vendors.GetVendorSummary(r.Context(), name)
	if err != nil {
		respondWithServiceError(w, err, "failed to summarize vendor")
		return
	}
	if summary == nil {
		respondWithError(w, http.StatusNotFound, "vendor has no recent activity")
		return
	}

	respondWithJSON(w, http.StatusOK, summary)
}
