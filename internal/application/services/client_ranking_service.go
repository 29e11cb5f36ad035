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

// ClientRankingQuery describes a facility ranking request. TargetRate and
// TolerancePct apply to similar mode only; a zero TargetRate means "similar
// to the current market average".
type ClientRankingQuery struct {
	Specialty    string
	Profession   string
	City         string
	State        string
	RateType     string
	Mode         repositories.RankingMode
	TargetRate   float64
	TolerancePct float64
}

// ClientRankingService ranks distinct facilities by their average rate for a
// specialty
type ClientRankingService struct {
	repo       repositories.AssignmentRepository
	marketRate *MarketRateService
	engine     config.EngineConfig
}

// NewClientRankingService creates a new client ranking service
func NewClientRankingService(repo repositories.AssignmentRepository, marketRate *MarketRateService, engine config.EngineConfig) *ClientRankingService {
	return &ClientRankingService{
		repo:       repo,
		marketRate: marketRate,
		engine:     engine,
	}
}

// RankClients ranks facilities for a specialty. In similar mode without an
// explicit target, the market average for the same scope becomes the target;
// when even that cannot be resolved the result is empty, not an error.
func (s *ClientRankingService) RankClients(ctx context.Context, query ClientRankingQuery) ([]*entities.ClientRate, error) {
	ctx, span := observability.StartSpan(ctx, "ClientRankingService.RankClients")
	defer span.End()

	if query.Specialty == "" {
		return nil, apperrors.NewValidationError("specialty is required to rank clients")
	}

	mode := query.Mode
	if mode == "" {
		mode = repositories.RankHighest
	}

	tolerance := query.TolerancePct
	if tolerance <= 0 {
		tolerance = s.engine.RateTolerancePct
	}

	target := query.TargetRate
	if mode == repositories.RankSimilar && target <= 0 {
		stats, err := s.marketRate.GetMarketRate(ctx, MarketRateQuery{
			Specialty:  query.Specialty,
			Profession: query.Profession,
			City:       query.City,
			State:      query.State,
			RateType:   query.RateType,
		})
		if err != nil {
			return nil, err
		}
		if stats == nil {
			return nil, nil
		}
		target = stats.AvgRate
	}

	return s.repo.ClientRankings(ctx, repositories.RankingFilter{
		SpecialtyPattern: rates.SpecialtyPattern(query.Specialty),
		Profession:       query.Profession,
		City:             query.City,
		State:            query.State,
		Metric:           rates.ParseMetric(query.RateType),
		Mode:             mode,
		TargetRate:       target,
		TolerancePct:     tolerance,
		Limit:            s.engine.RankingResultCap,
	})
}
