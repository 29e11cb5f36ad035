package services

import (
	"context"

	"github.com/avaintel/staffing-rates/internal/adapters/cache"
	"github.com/avaintel/staffing-rates/internal/domain/entities"
	"github.com/avaintel/staffing-rates/internal/domain/providers"
	"github.com/avaintel/staffing-rates/internal/domain/rates"
	"github.com/avaintel/staffing-rates/internal/domain/repositories"
	"github.com/avaintel/staffing-rates/internal/infrastructure/observability"
	"github.com/avaintel/staffing-rates/pkg/config"
	apperrors "github.com/avaintel/staffing-rates/pkg/errors"
)

// MarketRateQuery describes one rate lookup. City and State are both
// optional; the cascade broadens the scope as needed.
type MarketRateQuery struct {
	Specialty  string
	Profession string
	City       string
	State      string
	RateType   string
}

// MarketRateService resolves market-rate questions through the geographic
// cascade: city+state, then state, then national, first scope that clears
// the sample threshold wins. A query that exhausts all tiers yields nil, not
// an error.
type MarketRateService struct {
	repo    repositories.AssignmentRepository
	cache   providers.CacheProvider
	engine  config.EngineConfig
	metrics *observability.Metrics
}

// NewMarketRateService creates a new market rate service
func NewMarketRateService(
	repo repositories.AssignmentRepository,
	cacheProvider providers.CacheProvider,
	engine config.EngineConfig,
	metrics *observability.Metrics,
) *MarketRateService {
	return &MarketRateService{
		repo:    repo,
		cache:   cacheProvider,
		engine:  engine,
		metrics: metrics,
	}
}

// scopeTier is one step of the geographic cascade
type scopeTier struct {
	tier  entities.GeographicTier
	city  string
	state string
}

// cascadeTiers builds the ordered tier list for a query. Tier order is the
// engine's core contract; keep it explicit and auditable.
func cascadeTiers(city, state string) []scopeTier {
	var tiers []scopeTier
	if city != "" && state != "" {
		tiers = append(tiers, scopeTier{tier: entities.TierCity, city: city, state: state})
	}
	if state != "" {
		tiers = append(tiers, scopeTier{tier: entities.TierState, state: state})
	}
	tiers = append(tiers, scopeTier{tier: entities.TierNational})
	return tiers
}

// GetMarketRate resolves rate statistics for a specialty, broadening
// geography until a scope clears the sample threshold
func (s *MarketRateService) GetMarketRate(ctx context.Context, query MarketRateQuery) (*entities.RateStatistics, error) {
	ctx, span := observability.StartSpan(ctx, "MarketRateService.GetMarketRate")
	defer span.End()

	if query.Specialty == "" {
		return nil, apperrors.NewValidationError("specialty is required for a rate lookup")
	}

	cacheKey := cache.ResolverKey("market", query.Specialty, query.Profession, query.City, query.State, query.RateType)
	cached := &entities.RateStatistics{}
	if cache.GetJSON(ctx, s.cache, cacheKey, cached) {
		observability.RecordCacheHit(ctx, s.metrics, cacheKey)
		return cached, nil
	}
	observability.RecordCacheMiss(ctx, s.metrics, cacheKey)

	metric := rates.ParseMetric(query.RateType)
	pattern := rates.SpecialtyPattern(query.Specialty)
	logger := observability.LoggerFromContext(ctx)

	for _, tier := range cascadeTiers(query.City, query.State) {
		stats, err := s.repo.ScopeStatistics(ctx, repositories.ScopeFilter{
			SpecialtyPattern: pattern,
			Profession:       query.Profession,
			City:             tier.city,
			State:            tier.state,
			Metric:           metric,
			MinSampleSize:    s.engine.MinSampleSize,
			LookbackMonths:   s.engine.LookbackMonths,
		})
		if err != nil {
			// Store failures abort the cascade; only a thin scope may fall
			// through to a broader one
			observability.RecordError(span, err)
			observability.RecordResolverMetric(ctx, s.metrics, "market_rate", "error")
			return nil, err
		}
		if stats == nil {
			continue
		}

		s.finalize(stats, tier, query)
		logger.Debug().
			Str("specialty", query.Specialty).
			Str("tier", string(tier.tier)).
			Int("sample_size", stats.SampleSize).
			Msg("market rate resolved")
		observability.RecordResolverMetric(ctx, s.metrics, "market_rate", "resolved")

		cache.SetJSON(ctx, s.cache, cacheKey, stats, s.engine.CacheTTLSeconds)
		return stats, nil
	}

	observability.RecordResolverMetric(ctx, s.metrics, "market_rate", "no_result")
	return nil, nil
}

// finalize rounds monetary outputs and stamps the scope the answer came from
func (s *MarketRateService) finalize(stats *entities.RateStatistics, tier scopeTier, query MarketRateQuery) {
	low, high := rates.RecommendedRange(stats.AvgRate)
	stats.RecommendedRange = entities.RateRange{Low: low, High: high}
	stats.AvgRate = rates.Round2(stats.AvgRate)
	stats.MinRate = rates.Round2(stats.MinRate)
	stats.MaxRate = rates.Round2(stats.MaxRate)
	stats.CompetitiveRate = rates.Round2(stats.CompetitiveRate)
	for _, avg := range []*float64{stats.AvgBillRate, stats.AvgWeeklyPay, stats.AvgHourlyPay} {
		if avg != nil {
			*avg = rates.Round2(*avg)
		}
	}
	stats.Tier = tier.tier
	stats.City = tier.city
	stats.State = tier.state
}

// GetHighestRates reports the top of the distribution for the narrowest
// scope with enough samples, for diagnosing fill problems on hard-to-staff
// postings
func (s *MarketRateService) GetHighestRates(ctx context.Context, query MarketRateQuery) (*entities.HighRateStatistics, error) {
	ctx, span := observability.StartSpan(ctx, "MarketRateService.GetHighestRates")
	defer span.End()

	if query.Specialty == "" {
		return nil, apperrors.NewValidationError("specialty is required for a rate lookup")
	}

	metric := rates.ParseMetric(query.RateType)
	pattern := rates.SpecialtyPattern(query.Specialty)

	for _, tier := range cascadeTiers(query.City, query.State) {
		stats, err := s.repo.HighestRates(ctx, repositories.ScopeFilter{
			SpecialtyPattern: pattern,
			Profession:       query.Profession,
			City:             tier.city,
			State:            tier.state,
			Metric:           metric,
			MinSampleSize:    s.engine.MinSampleSize,
			LookbackMonths:   s.engine.LookbackMonths,
		})
		if err != nil {
			observability.RecordError(span, err)
			return nil, err
		}
		if stats == nil {
			continue
		}

		stats.P75 = rates.Round2(stats.P75)
		stats.P90 = rates.Round2(stats.P90)
		stats.MaxRate = rates.Round2(stats.MaxRate)
		stats.Tier = tier.tier
		stats.City = tier.city
		stats.State = tier.state
		return stats, nil
	}

	return nil, nil
}

// AnalyzeRateImpact estimates where a proposed rate would land in the
// market. The percentile is a linear interpolation between the competitive
// floor and the mean, an approximation kept for continuity with the
// recommendations built on it.
func (s *MarketRateService) AnalyzeRateImpact(ctx context.Context, query MarketRateQuery, proposedRate float64) (*entities.RateImpact, error) {
	if proposedRate <= 0 {
		return nil, apperrors.NewValidationError("proposed rate must be positive")
	}

	stats, err := s.GetMarketRate(ctx, query)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		return nil, nil
	}

	metric := rates.ParseMetric(query.RateType)
	percentile := rates.EstimatedPercentile(proposedRate, stats.CompetitiveRate, stats.AvgRate, metric.FloorPercentile())

	return &entities.RateImpact{
		ProposedRate:        proposedRate,
		EstimatedPercentile: rates.Round2(percentile),
		MarketAverage:       stats.AvgRate,
		CompetitiveFloor:    stats.CompetitiveRate,
		RecommendedRange:    stats.RecommendedRange,
		WithinRange:         proposedRate >= stats.RecommendedRange.Low && proposedRate <= stats.RecommendedRange.High,
		SampleSize:          stats.SampleSize,
	}, nil
}
