package services

import (
	"context"
	"fmt"

	"github.com/avaintel/staffing-rates/internal/domain/entities"
	"github.com/avaintel/staffing-rates/internal/domain/geo"
	"github.com/avaintel/staffing-rates/internal/domain/providers"
	"github.com/avaintel/staffing-rates/internal/domain/rates"
	"github.com/avaintel/staffing-rates/internal/domain/repositories"
	"github.com/avaintel/staffing-rates/internal/infrastructure/observability"
	"github.com/avaintel/staffing-rates/pkg/config"
	apperrors "github.com/avaintel/staffing-rates/pkg/errors"
)

// defaultRadiusMiles applies when a caller asks for "nearby" without a
// number
const defaultRadiusMiles = 50.0

// RadiusQuery describes a nearby-jobs search. The center comes from explicit
// coordinates when given, otherwise from geocoding City/State.
type RadiusQuery struct {
	City        string
	State       string
	Latitude    *float64
	Longitude   *float64
	RadiusMiles float64
	Specialty   string
	Profession  string
	RateType    string
	MinRate     float64
}

// RadiusSearchService finds postings within a great-circle distance of a
// point
type RadiusSearchService struct {
	repo     repositories.AssignmentRepository
	geocoder providers.GeocodingProvider
	engine   config.EngineConfig
}

// NewRadiusSearchService creates a new radius search service
func NewRadiusSearchService(repo repositories.AssignmentRepository, geocoder providers.GeocodingProvider, engine config.EngineConfig) *RadiusSearchService {
	return &RadiusSearchService{
		repo:     repo,
		geocoder: geocoder,
		engine:   engine,
	}
}

// FindJobsNearby lists postings within the radius, nearest first. The
// boundary is inclusive: a posting at exactly the radius distance counts.
func (s *RadiusSearchService) FindJobsNearby(ctx context.Context, query RadiusQuery) ([]*entities.NearbyJob, error) {
	ctx, span := observability.StartSpan(ctx, "RadiusSearchService.FindJobsNearby")
	defer span.End()

	lat, lon, err := s.resolveCenter(ctx, query)
	if err != nil {
		return nil, err
	}

	radius := query.RadiusMiles
	if radius <= 0 {
		radius = defaultRadiusMiles
	}

	pattern := ""
	if query.Specialty != "" {
		pattern = rates.SpecialtyPattern(query.Specialty)
	}

	jobs, err := s.repo.JobsWithinRadius(ctx, repositories.RadiusFilter{
		Latitude:         lat,
		Longitude:        lon,
		RadiusMiles:      radius,
		SpecialtyPattern: pattern,
		Profession:       query.Profession,
		Metric:           rates.ParseMetric(query.RateType),
		MinRate:          query.MinRate,
		Limit:            s.engine.DefaultResultCap,
	})
	if err != nil {
		return nil, err
	}

	// The store's filter decides inclusion; the displayed distance is
	// recomputed here so it agrees with the geocoding source
	for _, job := range jobs {
		if job.Latitude != 0 || job.Longitude != 0 {
			job.DistanceMiles = rates.Round2(geo.DistanceMiles(lat, lon, job.Latitude, job.Longitude))
		}
	}
	return jobs, nil
}

func (s *RadiusSearchService) resolveCenter(ctx context.Context, query RadiusQuery) (float64, float64, error) {
	if query.Latitude != nil && query.Longitude != nil {
		return *query.Latitude, *query.Longitude, nil
	}
	if query.City == "" {
		return 0, 0, apperrors.NewValidationError("a radius search needs coordinates or a city")
	}

	lat, lon, ok, err := s.geocoder.Coordinates(ctx, query.City, query.State)
	if err != nil {
		return 0, 0, err
	}
	if !ok {
		return 0, 0, apperrors.NewNotFoundError(fmt.Sprintf("no coordinates known for %s, %s", query.City, query.State))
	}
	return lat, lon, nil
}
