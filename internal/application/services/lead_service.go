package services

import (
	"context"

	"github.com/avaintel/staffing-rates/internal/domain/entities"
	"github.com/avaintel/staffing-rates/internal/domain/rates"
	"github.com/avaintel/staffing-rates/internal/domain/repositories"
	"github.com/avaintel/staffing-rates/internal/infrastructure/observability"
	"github.com/avaintel/staffing-rates/pkg/config"
)

const (
	leadResultCap     = 10
	contractHoursWeek = 40
	contractWeeks     = 13
)

// LeadQuery describes a lead-opportunity lookup. All fields are optional.
type LeadQuery struct {
	Specialty string
	State     string
	RateType  string
}

// LeadService surfaces the highest-rate recent postings as sales leads
type LeadService struct {
	repo   repositories.AssignmentRepository
	engine config.EngineConfig
}

// NewLeadService creates a new lead service
func NewLeadService(repo repositories.AssignmentRepository, engine config.EngineConfig) *LeadService {
	return &LeadService{
		repo:   repo,
		engine: engine,
	}
}

// GetLeadOpportunities lists the top postings by rate over the lookback
// window, each with its estimated contract value at a standard 40-hour,
// 13-week contract
func (s *LeadService) GetLeadOpportunities(ctx context.Context, query LeadQuery) ([]*entities.LeadOpportunity, error) {
	ctx, span := observability.StartSpan(ctx, "LeadService.GetLeadOpportunities")
	defer span.End()

	pattern := ""
	if query.Specialty != "" {
		pattern = rates.SpecialtyPattern(query.Specialty)
	}

	postings, err := s.repo.LeadOpportunities(ctx, repositories.LeadFilter{
		SpecialtyPattern: pattern,
		State:            query.State,
		Metric:           rates.ParseMetric(query.RateType),
		LookbackMonths:   s.engine.LookbackMonths,
		Limit:            leadResultCap,
	})
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	leads := make([]*entities.LeadOpportunity, 0, len(postings))
	for _, posting := range postings {
		leads = append(leads, &entities.LeadOpportunity{
			JobPosting:             *posting,
			EstimatedContractValue: rates.Round2(posting.Rate * contractHoursWeek * contractWeeks),
		})
	}

	return leads, nil
}
