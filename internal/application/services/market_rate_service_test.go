package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/avaintel/staffing-rates/internal/application/services"
	"github.com/avaintel/staffing-rates/internal/domain/entities"
	"github.com/avaintel/staffing-rates/internal/domain/repositories"
	"github.com/avaintel/staffing-rates/pkg/config"
	apperrors "github.com/avaintel/staffing-rates/pkg/errors"
)

func engineConfig() config.EngineConfig {
	return config.EngineConfig{
		MinSampleSize:    5,
		TrendNoiseFloor:  1.0,
		RateTolerancePct: 10.0,
		LookbackMonths:   3,
		CacheTTLSeconds:  300,
		DefaultResultCap: 20,
		TrendResultCap:   5,
		RankingResultCap: 15,
	}
}

func tierOf(filter repositories.ScopeFilter) string {
	switch {
	case filter.City != "":
		return "city"
	case filter.State != "":
		return "state"
	default:
		return "national"
	}
}

func TestGetMarketRate_CityScopeResolvesDirectly(t *testing.T) {
	repo := &MockAssignmentRepository{}
	service := services.NewMarketRateService(repo, nil, engineConfig(), nil)

	repo.On("ScopeStatistics", mock.Anything, mock.MatchedBy(func(f repositories.ScopeFilter) bool {
		return tierOf(f) == "city"
	})).Return(&entities.RateStatistics{
		Specialty:       "RN - ICU",
		AvgRate:         100.0,
		MinRate:         80.0,
		MaxRate:         130.0,
		CompetitiveRate: 88.0,
		SampleSize:      5,
	}, nil).Once()

	stats, err := service.GetMarketRate(context.Background(), services.MarketRateQuery{
		Specialty: "ICU",
		City:      "Cincinnati",
		State:     "OH",
	})
	require.NoError(t, err)
	require.NotNil(t, stats)

	assert.Equal(t, entities.TierCity, stats.Tier)
	assert.Equal(t, 97.50, stats.RecommendedRange.Low)
	assert.Equal(t, 102.50, stats.RecommendedRange.High)
	assert.Equal(t, 5, stats.SampleSize)
	repo.AssertExpectations(t)
}

func TestGetMarketRate_ThinCityScopeFallsThroughToState(t *testing.T) {
	repo := &MockAssignmentRepository{}
	service := services.NewMarketRateService(repo, nil, engineConfig(), nil)

	// City tier comes back empty (below the sample threshold); state tier
	// holds the answer
	repo.On("ScopeStatistics", mock.Anything, mock.MatchedBy(func(f repositories.ScopeFilter) bool {
		return tierOf(f) == "city"
	})).Return(nil, nil).Once()
	repo.On("ScopeStatistics", mock.Anything, mock.MatchedBy(func(f repositories.ScopeFilter) bool {
		return tierOf(f) == "state"
	})).Return(&entities.RateStatistics{
		Specialty:       "RN - ICU",
		AvgRate:         90.0,
		MinRate:         70.0,
		MaxRate:         120.0,
		CompetitiveRate: 82.0,
		SampleSize:      20,
	}, nil).Once()

	stats, err := service.GetMarketRate(context.Background(), services.MarketRateQuery{
		Specialty: "ICU",
		City:      "Cincinnati",
		State:     "OH",
	})
	require.NoError(t, err)
	require.NotNil(t, stats)

	assert.Equal(t, entities.TierState, stats.Tier)
	assert.Equal(t, "", stats.City, "the state-tier answer carries no city")
	assert.Equal(t, 20, stats.SampleSize)
	assert.Equal(t, 90.0, stats.AvgRate)
	repo.AssertExpectations(t)
}

func TestGetMarketRate_AllTiersThinYieldsNoResult(t *testing.T) {
	repo := &MockAssignmentRepository{}
	service := services.NewMarketRateService(repo, nil, engineConfig(), nil)

	repo.On("ScopeStatistics", mock.Anything, mock.Anything).Return(nil, nil).Times(3)

	stats, err := service.GetMarketRate(context.Background(), services.MarketRateQuery{
		Specialty: "ICU",
		City:      "Cincinnati",
		State:     "OH",
	})
	assert.NoError(t, err)
	assert.Nil(t, stats, "exhausting the cascade is no result, not an error")
	repo.AssertExpectations(t)
}

func TestGetMarketRate_StoreFailureAbortsCascade(t *testing.T) {
	repo := &MockAssignmentRepository{}
	service := services.NewMarketRateService(repo, nil, engineConfig(), nil)

	repo.On("ScopeStatistics", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewUnavailableError("store down", nil)).Once()

	_, err := service.GetMarketRate(context.Background(), services.MarketRateQuery{
		Specialty: "ICU",
		City:      "Cincinnati",
		State:     "OH",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsUnavailable(err))
	// Exactly one call: an unavailable store must never cascade to broader
	// scopes
	repo.AssertNumberOfCalls(t, "ScopeStatistics", 1)
}

func TestGetMarketRate_RequiresSpecialty(t *testing.T) {
	service := services.NewMarketRateService(&MockAssignmentRepository{}, nil, engineConfig(), nil)

	_, err := service.GetMarketRate(context.Background(), services.MarketRateQuery{City: "Cincinnati"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestGetMarketRate_StateOnlyQuerySkipsCityTier(t *testing.T) {
	repo := &MockAssignmentRepository{}
	service := services.NewMarketRateService(repo, nil, engineConfig(), nil)

	repo.On("ScopeStatistics", mock.Anything, mock.MatchedBy(func(f repositories.ScopeFilter) bool {
		return tierOf(f) == "state"
	})).Return(nil, nil).Once()
	repo.On("ScopeStatistics", mock.Anything, mock.MatchedBy(func(f repositories.ScopeFilter) bool {
		return tierOf(f) == "national"
	})).Return(&entities.RateStatistics{
		Specialty:       "RN - ICU",
		AvgRate:         95.0,
		MinRate:         60.0,
		MaxRate:         140.0,
		CompetitiveRate: 85.0,
		SampleSize:      250,
	}, nil).Once()

	stats, err := service.GetMarketRate(context.Background(), services.MarketRateQuery{
		Specialty: "ICU",
		State:     "OH",
	})
	require.NoError(t, err)
	require.NotNil(t, stats)
	assert.Equal(t, entities.TierNational, stats.Tier)
	repo.AssertExpectations(t)
}

func TestAnalyzeRateImpact_WithinRecommendedRange(t *testing.T) {
	repo := &MockAssignmentRepository{}
	service := services.NewMarketRateService(repo, nil, engineConfig(), nil)

	repo.On("ScopeStatistics", mock.Anything, mock.Anything).Return(&entities.RateStatistics{
		Specialty:       "RN - ICU",
		AvgRate:         100.0,
		MinRate:         80.0,
		MaxRate:         130.0,
		CompetitiveRate: 88.0,
		SampleSize:      30,
	}, nil).Once()

	impact, err := service.AnalyzeRateImpact(context.Background(), services.MarketRateQuery{
		Specialty: "ICU",
		State:     "OH",
	}, 100)
	require.NoError(t, err)
	require.NotNil(t, impact)

	assert.True(t, impact.WithinRange)
	assert.Equal(t, 50.0, impact.EstimatedPercentile, "a rate at the mean reads as the median")
	assert.Equal(t, 30, impact.SampleSize)
}

func TestAnalyzeRateImpact_RejectsNonPositiveRate(t *testing.T) {
	service := services.NewMarketRateService(&MockAssignmentRepository{}, nil, engineConfig(), nil)

	_, err := service.AnalyzeRateImpact(context.Background(), services.MarketRateQuery{Specialty: "ICU"}, 0)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}
