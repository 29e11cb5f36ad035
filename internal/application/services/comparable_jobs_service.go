package services

import (
	"context"

	"github.com/avaintel/staffing-rates/internal/domain/entities"
	"github.com/avaintel/staffing-rates/internal/domain/rates"
	"github.com/avaintel/staffing-rates/internal/domain/repositories"
	"github.com/avaintel/staffing-rates/internal/infrastructure/observability"
	"github.com/avaintel/staffing-rates/pkg/config"
	apperrors "github.com/avaintel/staffing-rates/pkg/errors"
)

// ComparableJobsQuery describes a search for discrete postings inside a rate
// band. Either TargetRate or an explicit MinRate/MaxRate pair is required.
type ComparableJobsQuery struct {
	Specialty  string
	Profession string
	City       string
	State      string
	RateType   string
	TargetRate float64
	MinRate    float64
	MaxRate    float64
}

// ComparableJobsService finds individual upcoming postings comparable to a
// target rate. Unlike the ranking service nothing is aggregated; every row
// is a displayable job.
type ComparableJobsService struct {
	repo   repositories.AssignmentRepository
	engine config.EngineConfig
}

// NewComparableJobsService creates a new comparable jobs service
func NewComparableJobsService(repo repositories.AssignmentRepository, engine config.EngineConfig) *ComparableJobsService {
	return &ComparableJobsService{
		repo:   repo,
		engine: engine,
	}
}

// FindComparableJobs lists postings whose active metric falls inside the
// band, soonest start first. A bare target expands to the configured
// tolerance around it.
func (s *ComparableJobsService) FindComparableJobs(ctx context.Context, query ComparableJobsQuery) ([]*entities.JobPosting, error) {
	ctx, span := observability.StartSpan(ctx, "ComparableJobsService.FindComparableJobs")
	defer span.End()

	if query.Specialty == "" {
		return nil, apperrors.NewValidationError("specialty is required to find comparable jobs")
	}

	minRate, maxRate := query.MinRate, query.MaxRate
	if minRate <= 0 && maxRate <= 0 {
		if query.TargetRate <= 0 {
			return nil, apperrors.NewValidationError("a target rate or an explicit rate band is required")
		}
		minRate = query.TargetRate * (1 - s.engine.RateTolerancePct/100)
		maxRate = query.TargetRate * (1 + s.engine.RateTolerancePct/100)
	}
	if minRate > maxRate {
		return nil, apperrors.NewValidationError("rate band minimum exceeds maximum")
	}

	return s.repo.ComparableJobs(ctx, repositories.JobFilter{
		SpecialtyPattern: rates.SpecialtyPattern(query.Specialty),
		Profession:       query.Profession,
		City:             query.City,
		State:            query.State,
		Metric:           rates.ParseMetric(query.RateType),
		MinRate:          rates.Round2(minRate),
		MaxRate:          rates.Round2(maxRate),
		Limit:            s.engine.DefaultResultCap,
	})
}
