package handlers

import (
	"context"
	"net/http"

	"github.com/avaintel/staffing-rates/internal/application/services"
	"github.com/avaintel/staffing-rates/internal/domain/entities"
)

// ComparableJobsFinder defines the handler dependency for rate-band job
// searches.
type ComparableJobsFinder interface {
	FindComparableJobs(ctx context.Context, query services.ComparableJobsQuery) ([]*entities.JobPosting, error)
}

// NearbyJobsFinder defines the handler dependency for radius searches.
type NearbyJobsFinder interface {
	FindJobsNearby(ctx context.Context, query services.RadiusQuery) ([]*entities.NearbyJob, error)
}

// JobHandler handles job-search HTTP requests
type JobHandler struct {
	comparable ComparableJobsFinder
	nearby     NearbyJobsFinder
}

// NewJobHandler creates a new job handler
func NewJobHandler(comparable ComparableJobsFinder, nearby NearbyJobsFinder) *JobHandler {
	return &JobHandler{
		comparable: comparable,
		nearby:     nearby,
	}
}

// GetComparableJobs handles GET /api/jobs/comparable
func (h *JobHandler) GetComparableJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("specialty") == "" {
		respondWithError(w, http.StatusBadRequest, "specialty is required")
		return
	}

	targetRate, _, err := queryFloat(q, "target_rate")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	minRate, _, err := queryFloat(q, "min_rate")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	maxRate, _, err := queryFloat(q, "max_rate")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	jobs, err := h.comparable.FindComparableJobs(r.Context(), services.ComparableJobsQuery{
		Specialty:  q.Get("specialty"),
		Profession: q.Get("profession"),
		City:       q.Get("city"),
		State:      q.Get("state"),
		RateType:   q.Get("rate_type"),
		TargetRate: targetRate,
		MinRate:    minRate,
		MaxRate:    maxRate,
	})
	if err != nil {
		respondWithServiceError(w, err, "failed to find comparable jobs")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"jobs":  jobs,
		"count": len(jobs),
	})
}

// GetNearbyJobs handles GET /api/jobs/nearby
func (h *JobHandler) GetNearbyJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	query := services.RadiusQuery{
		City:       q.Get("city"),
		State:      q.Get("state"),
		Specialty:  q.Get("specialty"),
		Profession: q.Get("profession"),
		RateType:   q.Get("rate_type"),
	}

	if lat, ok, err := queryFloat(q, "lat"); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	} else if ok {
		query.Latitude = &lat
	}
	if lon, ok, err := queryFloat(q, "lon"); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	} else if ok {
		query.Longitude = &lon
	}

	radius, _, err := queryFloat(q, "radius")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	query.RadiusMiles = radius

	minRate, _, err := queryFloat(q, "min_rate")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	query.MinRate = minRate

	jobs, err := h.nearby.FindJobsNearby(r.Context(), query)
	if err != nil {
		respondWithServiceError(w, err, "failed to search nearby jobs")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"jobs":  jobs,
		"count": len(jobs),
	})
}
