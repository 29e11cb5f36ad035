package services

import (
	"context"
	"math"
	"sort"

	"github.com/avaintel/staffing-rates/internal/domain/entities"
	"github.com/avaintel/staffing-rates/internal/domain/rates"
	"github.com/avaintel/staffing-rates/internal/domain/repositories"
	"github.com/avaintel/staffing-rates/internal/infrastructure/observability"
	"github.com/avaintel/staffing-rates/pkg/config"
	apperrors "github.com/avaintel/staffing-rates/pkg/errors"
	"github.com/avaintel/staffing-rates/pkg/refdata"
)

// Trend window constants. Every caller compares the last 30 days against the
// 60 days before that; these are not tunable.
const (
	trendRecentDays       = 30
	trendPriorDays        = 90
	trendMinWindowSamples = 2
)

// TrendDirectionQuery values accepted by AnalyzeTrends
const (
	TrendQueryRising  = "rising"
	TrendQueryFalling = "falling"
)

// TrendQuery describes a trend ranking request
type TrendQuery struct {
	Specialty  string
	Profession string
	RateType   string
	Direction  string
	Limit      int
}

// TrendService ranks states by how much a specialty's rate moved between the
// recent and prior windows
type TrendService struct {
	repo   repositories.AssignmentRepository
	tables *refdata.Tables
	engine config.EngineConfig
}

// NewTrendService creates a new trend service
func NewTrendService(repo repositories.AssignmentRepository, tables *refdata.Tables, engine config.EngineConfig) *TrendService {
	return &TrendService{
		repo:   repo,
		tables: tables,
		engine: engine,
	}
}

// AnalyzeTrends returns states whose average moved in the requested
// direction by at least the noise floor, largest movement first. States
// missing from either window never appear.
func (s *TrendService) AnalyzeTrends(ctx context.Context, query TrendQuery) ([]*entities.StateTrend, error) {
	ctx, span := observability.StartSpan(ctx, "TrendService.AnalyzeTrends")
	defer span.End()

	if query.Specialty == "" {
		return nil, apperrors.NewValidationError("specialty is required for trend analysis")
	}
	direction := query.Direction
	if direction == "" {
		direction = TrendQueryRising
	}
	if direction != TrendQueryRising && direction != TrendQueryFalling {
		return nil, apperrors.NewValidationError("trend direction must be rising or falling")
	}

	trends, err := s.repo.StateTrends(ctx, repositories.TrendFilter{
		SpecialtyPattern: rates.SpecialtyPattern(query.Specialty),
		Profession:       query.Profession,
		Metric:           rates.ParseMetric(query.RateType),
		RecentDays:       trendRecentDays,
		PriorDays:        trendPriorDays,
		MinWindowSamples: trendMinWindowSamples,
	})
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	rising := direction == TrendQueryRising
	filtered := make([]*entities.StateTrend, 0, len(trends))
	for _, trend := range trends {
		if math.Abs(trend.ChangePct) < s.engine.TrendNoiseFloor {
			continue
		}
		if rising != (trend.ChangePct > 0) {
			continue
		}
		trend.RecentAvg = rates.Round2(trend.RecentAvg)
		trend.PriorAvg = rates.Round2(trend.PriorAvg)
		trend.ChangePct = rates.Round2(trend.ChangePct)
		if trend.ChangePct > 0 {
			trend.Direction = entities.TrendUp
		} else {
			trend.Direction = entities.TrendDown
		}
		trend.LicensureCompact = s.tables.IsCompactState(trend.State)
		filtered = append(filtered, trend)
	}

	sort.Slice(filtered, func(i, j int) bool {
		if rising {
			return filtered[i].ChangePct > filtered[j].ChangePct
		}
		return filtered[i].ChangePct < filtered[j].ChangePct
	})

	limit := query.Limit
	if limit <= 0 {
		limit = s.engine.TrendResultCap
	}
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}

	return filtered, nil
}
