package repositories

import (
	"context"

	"github.com/avaintel/staffing-rates/internal/domain/entities"
	"github.com/avaintel/staffing-rates/internal/domain/rates"
)

// AssignmentRepository is the read-only query surface over the staffing
// transaction store. Implementations return nil (not an error) when a scope
// lacks enough samples; errors are reserved for the store being unreachable
// or a malformed query.
type AssignmentRepository interface {
	// ScopeStatistics aggregates the active metric over one geographic
	// scope, returning nil when no grouping meets filter.MinSampleSize
	ScopeStatistics(ctx context.Context, filter ScopeFilter) (*entities.RateStatistics, error)

	// HighestRates reports the top of the distribution (p75/p90/max) for a
	// scope, same sample-size contract as ScopeStatistics
	HighestRates(ctx context.Context, filter ScopeFilter) (*entities.HighRateStatistics, error)

	// ClientRankings ranks distinct facilities by average active-metric value
	ClientRankings(ctx context.Context, filter RankingFilter) ([]*entities.ClientRate, error)

	// ComparableJobs lists individual postings whose active metric falls in
	// a rate band, soonest start first
	ComparableJobs(ctx context.Context, filter JobFilter) ([]*entities.JobPosting, error)

	// JobsWithinRadius lists postings within a great-circle radius of a
	// point, nearest first
	JobsWithinRadius(ctx context.Context, filter RadiusFilter) ([]*entities.NearbyJob, error)

	// StateTrends compares recent vs prior window averages per state
	StateTrends(ctx context.Context, filter TrendFilter) ([]*entities.StateTrend, error)

	// VendorActivity lists vendors active at a facility
	VendorActivity(ctx context.Context, filter VendorFilter) ([]*entities.VendorActivity, error)

	// VendorSummary aggregates one vendor across facilities, nil when the
	// vendor has no recent activity
	VendorSummary(ctx context.Context, vendorName string) (*entities.VendorSummary, error)

	// LeadOpportunities lists the highest-rate upcoming postings
	LeadOpportunities(ctx context.Context, filter LeadFilter) ([]*entities.JobPosting, error)
}

// ScopeFilter restricts an aggregate query to one geographic scope. An empty
// City and State means the national scope.
type ScopeFilter struct {
	SpecialtyPattern string
	Profession       string
	City             string
	State            string
	Metric           rates.Metric
	MinSampleSize    int
	LookbackMonths   int
}

// RankingMode selects how facilities are ranked
type RankingMode string

const (
	RankHighest RankingMode = "highest"
	RankLowest  RankingMode = "lowest"
	RankSimilar RankingMode = "similar"
)

// RankingFilter drives the client-ranking query. TargetRate and TolerancePct
// apply only in similar mode.
type RankingFilter struct {
	SpecialtyPattern string
	Profession       string
	City             string
	State            string
	Metric           rates.Metric
	Mode             RankingMode
	TargetRate       float64
	TolerancePct     float64
	Limit            int
}

// JobFilter restricts the comparable-jobs query to a rate band
type JobFilter struct {
	SpecialtyPattern string
	Profession       string
	City             string
	State            string
	Metric           rates.Metric
	MinRate          float64
	MaxRate          float64
	Limit            int
}

// RadiusFilter drives the radius search. Radius semantics are inclusive.
type RadiusFilter struct {
	Latitude         float64
	Longitude        float64
	RadiusMiles      float64
	SpecialtyPattern string
	Profession       string
	Metric           rates.Metric
	MinRate          float64
	Limit            int
}

// TrendFilter drives the two-window trend query
type TrendFilter struct {
	SpecialtyPattern string
	Profession       string
	Metric           rates.Metric
	RecentDays       int
	PriorDays        int
	MinWindowSamples int
}

// VendorFilter restricts vendor activity lookups. FacilityName is matched
// partially, case-insensitive.
type VendorFilter struct {
	FacilityName     string
	City             string
	State            string
	SpecialtyPattern string
	WindowMonths     int
	Limit            int
}

// LeadFilter drives the lead-opportunity query
type LeadFilter struct {
	SpecialtyPattern string
	State            string
	Metric           rates.Metric
	LookbackMonths   int
	Limit            int
}
