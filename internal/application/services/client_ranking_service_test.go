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
)

func newRankingService(repo *MockAssignmentRepository) *services.ClientRankingService {
	marketRate := services.NewMarketRateService(repo, nil, engineConfig(), nil)
	return services.NewClientRankingService(repo, marketRate, engineConfig())
}

func TestRankClients_DefaultsToHighestWithConfiguredCap(t *testing.T) {
	repo := &MockAssignmentRepository{}
	service := newRankingService(repo)

	repo.On("ClientRankings", mock.Anything, mock.MatchedBy(func(f repositories.RankingFilter) bool {
		return f.Mode == repositories.RankHighest && f.Limit == 15
	})).Return([]*entities.ClientRate{{ClientName: "St. Elsewhere", AvgRate: 104.5}}, nil).Once()

	rankings, err := service.RankClients(context.Background(), services.ClientRankingQuery{
		Specialty: "ICU",
		State:     "OH",
	})
	require.NoError(t, err)
	require.Len(t, rankings, 1)
	repo.AssertExpectations(t)
}

func TestRankClients_SimilarModeResolvesTargetFromMarketAverage(t *testing.T) {
	repo := &MockAssignmentRepository{}
	service := newRankingService(repo)

	repo.On("ScopeStatistics", mock.Anything, mock.Anything).Return(&entities.RateStatistics{
		Specialty:       "RN - ICU",
		AvgRate:         100.0,
		CompetitiveRate: 88.0,
		SampleSize:      25,
	}, nil).Once()
	repo.On("ClientRankings", mock.Anything, mock.MatchedBy(func(f repositories.RankingFilter) bool {
		return f.Mode == repositories.RankSimilar && f.TargetRate == 100.0 && f.TolerancePct == 10.0
	})).Return([]*entities.ClientRate{{ClientName: "General Hospital", AvgRate: 98.0}}, nil).Once()

	rankings, err := service.RankClients(context.Background(), services.ClientRankingQuery{
		Specialty: "ICU",
		City:      "Cincinnati",
		State:     "OH",
		Mode:      repositories.RankSimilar,
	})
	require.NoError(t, err)
	require.Len(t, rankings, 1)
	repo.AssertExpectations(t)
}

func TestRankClients_SimilarModeWithoutResolvableTargetIsNoResult(t *testing.T) {
	repo := &MockAssignmentRepository{}
	service := newRankingService(repo)

	// No scope clears the sample threshold, so there is no market average
	// to anchor "similar" on
	repo.On("ScopeStatistics", mock.Anything, mock.Anything).Return(nil, nil).Times(3)

	rankings, err := service.RankClients(context.Background(), services.ClientRankingQuery{
		Specialty: "Perfusionist",
		City:      "Dayton",
		State:     "OH",
		Mode:      repositories.RankSimilar,
	})
	assert.NoError(t, err)
	assert.Nil(t, rankings)
	repo.AssertNotCalled(t, "ClientRankings", mock.Anything, mock.Anything)
}

func TestRankClients_ExplicitTargetSkipsMarketLookup(t *testing.T) {
	repo := &MockAssignmentRepository{}
	service := newRankingService(repo)

	repo.On("ClientRankings", mock.Anything, mock.MatchedBy(func(f repositories.RankingFilter) bool {
		return f.TargetRate == 95.0 && f.TolerancePct == 5.0
	})).Return([]*entities.ClientRate{}, nil).Once()

	_, err := service.RankClients(context.Background(), services.ClientRankingQuery{
		Specialty:    "ICU",
		Mode:         repositories.RankSimilar,
		TargetRate:   95,
		TolerancePct: 5,
	})
	require.NoError(t, err)
	repo.AssertNotCalled(t, "ScopeStatistics", mock.Anything, mock.Anything)
}
