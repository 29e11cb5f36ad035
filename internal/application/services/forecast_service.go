package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/avaintel/staffing-rates/internal/domain/entities"
	"github.com/avaintel/staffing-rates/internal/domain/providers"
	"github.com/avaintel/staffing-rates/internal/domain/rates"
	"github.com/avaintel/staffing-rates/internal/infrastructure/observability"
	apperrors "github.com/avaintel/staffing-rates/pkg/errors"
	"github.com/avaintel/staffing-rates/pkg/refdata"
)

// insightHorizonWeeks are the fixed lookaheads reported per insight. The
// model returns weekly points, so week N is forecast index N-1.
var insightHorizonWeeks = [4]int{4, 12, 26, 52}

// nursingPrefix is what the forecasting vocabulary calls plain nursing
// specialties
const nursingPrefix = "RN - "

// ForecastQuery describes a forecast lookup. State wins over City; a City
// alone works only for major metros whose state is unambiguous.
type ForecastQuery struct {
	Specialty  string
	Profession string
	City       string
	State      string
	RateType   string
}

// ForecastService translates user-facing specialties into the forecasting
// model's vocabulary, interprets its raw series into insights, and degrades
// through the location fallback cascade when the requested scope lacks
// history. Fallbacks are always labeled; the requested location is never
// silently replaced.
type ForecastService struct {
	client  providers.ForecastProvider
	tables  *refdata.Tables
	metrics *observability.Metrics
}

// NewForecastService creates a new forecast service
func NewForecastService(client providers.ForecastProvider, tables *refdata.Tables, metrics *observability.Metrics) *ForecastService {
	return &ForecastService{
		client:  client,
		tables:  tables,
		metrics: metrics,
	}
}

// MapSpecialty translates a user-facing specialty into the label the model
// was trained on. Locum/tenens professions use the alias dictionary and
// never receive the nursing prefix; everything else gets the nursing prefix
// unless it already carries a recognized one or is a standalone non-nursing
// label.
func (s *ForecastService) MapSpecialty(specialty, profession string) string {
	trimmed := strings.TrimSpace(specialty)
	if trimmed == "" {
		return trimmed
	}

	if rates.IsLocumProfession(profession) {
		if alias, ok := s.tables.LocumAlias(trimmed); ok {
			return alias
		}
		return trimmed
	}

	if s.tables.HasKnownPrefix(trimmed) || s.tables.IsLocumSpecialty(trimmed) {
		return trimmed
	}
	return nursingPrefix + trimmed
}

// GetForecastInsights resolves a forecast for a specialty and location,
// cascading to the national aggregate and then to dense-history states when
// the requested scope lacks history
func (s *ForecastService) GetForecastInsights(ctx context.Context, query ForecastQuery) (*entities.ForecastResult, error) {
	ctx, span := observability.StartSpan(ctx, "ForecastService.GetForecastInsights")
	defer span.End()

	if query.Specialty == "" {
		return nil, apperrors.NewValidationError("specialty is required for a forecast")
	}

	mapped := s.MapSpecialty(query.Specialty, query.Profession)
	metric := rates.ParseMetric(query.RateType).Column()
	state := strings.ToUpper(strings.TrimSpace(query.State))
	if state == "" && query.City != "" {
		if inferred, ok := s.tables.StateForMajorCity(query.City); ok {
			state = inferred
		}
	}

	result := &entities.ForecastResult{
		Specialty:       query.Specialty,
		MappedSpecialty: mapped,
	}

	insight, primaryErr := s.fetchInsight(ctx, mapped, metric, state)
	if primaryErr == nil {
		result.Insights = []entities.ForecastInsight{*insight}
		observability.RecordResolverMetric(ctx, s.metrics, "forecast", "resolved")
		return result, nil
	}
	if !apperrors.IsInsufficientData(primaryErr) {
		// Unreachable or timed-out upstream is surfaced as-is; the cascade
		// only recovers from missing history
		observability.RecordError(span, primaryErr)
		return nil, primaryErr
	}

	logger := observability.LoggerFromContext(ctx)
	logger.Info().
		Str("specialty", mapped).
		Str("state", state).
		Msg("forecast scope lacks history, cascading")

	// Sparse specialties skip the national tier: their history is thin
	// everywhere except the dense states, so national fails the same way
	if state != "" && !s.tables.IsSparseForecastSpecialty(mapped) {
		national, err := s.fetchInsight(ctx, mapped, metric, "")
		if err == nil {
			result.Insights = []entities.ForecastInsight{*national}
			result.FallbackReason = fmt.Sprintf("no forecast history for %s in %s; showing the national aggregate", mapped, state)
			result.RequestedLocation = state
			observability.RecordResolverMetric(ctx, s.metrics, "forecast", "fallback")
			return result, nil
		}
		if !apperrors.IsInsufficientData(err) {
			return nil, err
		}
	}

	insights, err := s.multiStateInsights(ctx, mapped, metric, state)
	if err != nil {
		return nil, err
	}
	if len(insights) < 2 {
		// Fewer than two alternate states is not a presentable comparison;
		// surface the original failure
		observability.RecordResolverMetric(ctx, s.metrics, "forecast", "no_result")
		return nil, primaryErr
	}

	result.Insights = insights
	result.IsMultiStateFallback = true
	result.RequestedLocation = requestedLocation(state, query.City)
	result.FallbackReason = fmt.Sprintf("no forecast history for %s in %s; showing states with dense history", mapped, result.RequestedLocation)
	observability.RecordResolverMetric(ctx, s.metrics, "forecast", "fallback")
	return result, nil
}

// multiStateInsights tries the dense-history states in order, stopping after
// three successes. Only missing history is skipped; any other failure
// aborts.
func (s *ForecastService) multiStateInsights(ctx context.Context, mapped, metric, excludeState string) ([]entities.ForecastInsight, error) {
	var insights []entities.ForecastInsight
	for _, alt := range s.tables.TopForecastStates(excludeState) {
		insight, err := s.fetchInsight(ctx, mapped, metric, alt)
		if err != nil {
			if apperrors.IsInsufficientData(err) {
				continue
			}
			return nil, err
		}
		insights = append(insights, *insight)
		if len(insights) >= 3 {
			break
		}
	}
	return insights, nil
}

func requestedLocation(state, city string) string {
	if state != "" {
		return state
	}
	if city != "" {
		return city
	}
	return "national"
}

// fetchInsight performs one forecast round trip and interprets the series
// for the requested scope
func (s *ForecastService) fetchInsight(ctx context.Context, mapped, metric, state string) (*entities.ForecastInsight, error) {
	req := providers.ForecastRequest{
		Specialties: []string{mapped},
		Metric:      metric,
	}
	scopeKey := "national"
	if state != "" {
		req.States = []string{state}
		scopeKey = state
	}

	payload, err := s.client.Forecast(ctx, req)
	if err != nil {
		return nil, err
	}

	series, ok := findSeries(payload, mapped, scopeKey)
	if !ok {
		return nil, apperrors.NewInsufficientDataError(
			fmt.Sprintf("forecast response held no series for %s in %s", mapped, scopeKey))
	}

	return interpretSeries(mapped, state, series)
}

// findSeries locates the series for a specialty and scope, tolerating
// specialty keys that differ from the requested label. Exact match first,
// then case-insensitive containment either way.
func findSeries(payload *providers.ForecastPayload, specialty, scopeKey string) (providers.ForecastSeries, bool) {
	byState, ok := payload.Series[specialty]
	if !ok {
		lowered := strings.ToLower(specialty)
		for key, candidate := range payload.Series {
			keyLower := strings.ToLower(key)
			if strings.Contains(keyLower, lowered) || strings.Contains(lowered, keyLower) {
				byState = candidate
				ok = true
				break
			}
		}
	}
	if !ok {
		return providers.ForecastSeries{}, false
	}

	if series, found := byState[scopeKey]; found {
		return series, true
	}
	for key, series := range byState {
		if strings.EqualFold(key, scopeKey) {
			return series, true
		}
	}
	return providers.ForecastSeries{}, false
}

// interpretSeries reduces raw model output to an insight: current value,
// fixed horizons, direction at twelve weeks, and a confidence bucket from
// the model's self-reported MAPE
func interpretSeries(specialty, state string, series providers.ForecastSeries) (*entities.ForecastInsight, error) {
	if len(series.Forecast) == 0 {
		return nil, apperrors.NewInsufficientDataError(
			fmt.Sprintf("forecast series for %s is empty", specialty))
	}

	current := series.Forecast[0].Value
	if n := len(series.Historical); n > 0 {
		current = series.Historical[n-1].Value
	}
	if current <= 0 {
		return nil, apperrors.NewInsufficientDataError(
			fmt.Sprintf("forecast series for %s has no usable baseline", specialty))
	}

	insight := &entities.ForecastInsight{
		Specialty:    specialty,
		State:        state,
		CurrentValue: rates.Round2(current),
		Confidence:   confidenceFromMAPE(series.MAPE),
		Direction:    entities.TrendStable,
		MAPE:         series.MAPE,
	}

	for _, weeks := range insightHorizonWeeks {
		idx := weeks - 1
		if idx >= len(series.Forecast) {
			break
		}
		value := series.Forecast[idx].Value
		changePct := (value - current) / current * 100
		insight.Horizons = append(insight.Horizons, entities.ForecastHorizon{
			Weeks:     weeks,
			Value:     rates.Round2(value),
			ChangePct: rates.Round2(changePct),
		})
	}

	if growth, ok := horizonChange(insight.Horizons, 12); ok {
		switch {
		case growth > 1:
			insight.Direction = entities.TrendUp
		case growth < -1:
			insight.Direction = entities.TrendDown
		}
	}

	return insight, nil
}

func horizonChange(horizons []entities.ForecastHorizon, weeks int) (float64, bool) {
	for _, h := range horizons {
		if h.Weeks == weeks {
			return h.ChangePct, true
		}
	}
	// Short forecast: judge direction from the furthest horizon available
	if n := len(horizons); n > 0 {
		return horizons[n-1].ChangePct, true
	}
	return 0, false
}

// confidenceFromMAPE buckets model accuracy: under 10 percent error is high,
// under 20 medium, anything else (or unreported) low
func confidenceFromMAPE(mape *float64) entities.ForecastConfidence {
	if mape == nil {
		return entities.ConfidenceLow
	}
	switch {
	case *mape < 10:
		return entities.ConfidenceHigh
	case *mape < 20:
		return entities.ConfidenceMedium
	default:
		return entities.ConfidenceLow
	}
}
