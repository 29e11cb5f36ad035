package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/avaintel/staffing-rates/internal/domain/entities"
	"github.com/avaintel/staffing-rates/internal/domain/providers"
	"github.com/avaintel/staffing-rates/internal/domain/repositories"
)

// MockAssignmentRepository is a testify mock for AssignmentRepository
type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) ScopeStatistics(ctx context.Context, filter repositories.ScopeFilter) (*entities.RateStatistics, error) {
	args := m.Called(ctx, filter)
	if v := args.Get(0); v != nil {
		return v.(*entities.RateStatistics), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAssignmentRepository) HighestRates(ctx context.Context, filter repositories.ScopeFilter) (*entities.HighRateStatistics, error) {
	args := m.Called(ctx, filter)
	if v := args.Get(0); v != nil {
		return v.(*entities.HighRateStatistics), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAssignmentRepository) ClientRankings(ctx context.Context, filter repositories.RankingFilter) ([]*entities.ClientRate, error) {
	args := m.Called(ctx, filter)
	if v := args.Get(0); v != nil {
		return v.([]*entities.ClientRate), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAssignmentRepository) ComparableJobs(ctx context.Context, filter repositories.JobFilter) ([]*entities.JobPosting, error) {
	args := m.Called(ctx, filter)
	if v := args.Get(0); v != nil {
		return v.([]*entities.JobPosting), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAssignmentRepository) JobsWithinRadius(ctx context.Context, filter repositories.RadiusFilter) ([]*entities.NearbyJob, error) {
	args := m.Called(ctx, filter)
	if v := args.Get(0); v != nil {
		return v.([]*entities.NearbyJob), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAssignmentRepository) StateTrends(ctx context.Context, filter repositories.TrendFilter) ([]*entities.StateTrend, error) {
	args := m.Called(ctx, filter)
	if v := args.Get(0); v != nil {
		return v.([]*entities.StateTrend), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAssignmentRepository) VendorActivity(ctx context.Context, filter repositories.VendorFilter) ([]*entities.VendorActivity, error) {
	args := m.Called(ctx, filter)
	if v := args.Get(0); v != nil {
		return v.([]*entities.VendorActivity), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAssignmentRepository) VendorSummary(ctx context.Context, vendorName string) (*entities.VendorSummary, error) {
	args := m.Called(ctx, vendorName)
	if v := args.Get(0); v != nil {
		return v.(*entities.VendorSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAssignmentRepository) LeadOpportunities(ctx context.Context, filter repositories.LeadFilter) ([]*entities.JobPosting, error) {
	args := m.Called(ctx, filter)
	if v := args.Get(0); v != nil {
		return v.([]*entities.JobPosting), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockForecastProvider is a testify mock for ForecastProvider
type MockForecastProvider struct {
	mock.Mock
}

func (m *MockForecastProvider) Forecast(ctx context.Context, req providers.ForecastRequest) (*providers.ForecastPayload, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*providers.ForecastPayload), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockGeocodingProvider is a testify mock for GeocodingProvider
type MockGeocodingProvider struct {
	mock.Mock
}

func (m *MockGeocodingProvider) Coordinates(ctx context.Context, city, state string) (float64, float64, bool, error) {
	args := m.Called(ctx, city, state)
	return args.Get(0).(float64), args.Get(1).(float64), args.Bool(2), args.Error(3)
}
