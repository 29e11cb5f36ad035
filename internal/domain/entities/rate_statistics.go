package entities

// GeographicTier identifies the scope a market-rate answer was computed at
type GeographicTier string

const (
	TierCity     GeographicTier = "city"
	TierState    GeographicTier = "state"
	TierNational GeographicTier = "national"
)

// RateRange is an inclusive low/high band, rounded to cents
type RateRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// RateStatistics is the aggregate answer for one geographic scope. AvgRate,
// MinRate and MaxRate come straight from the store; CompetitiveRate is the
// scope's floor percentile for the selected metric.
type RateStatistics struct {
	Metric           string         `json:"metric"`
	MetricLabel      string         `json:"metric_label"`
	AvgRate          float64        `json:"avg_rate"`
	MinRate          float64        `json:"min_rate"`
	MaxRate          float64        `json:"max_rate"`
	CompetitiveRate  float64        `json:"competitive_rate"`
	RecommendedRange RateRange      `json:"recommended_range"`
	AvgBillRate      *float64       `json:"avg_bill_rate,omitempty"`
	AvgWeeklyPay     *float64       `json:"avg_weekly_pay,omitempty"`
	AvgHourlyPay     *float64       `json:"avg_hourly_pay,omitempty"`
	SampleSize       int            `json:"sample_size"`
	Tier             GeographicTier `json:"tier"`
	City             string         `json:"city,omitempty"`
	State            string         `json:"state,omitempty"`
	Specialty        string         `json:"specialty"`
}

// HighRateStatistics reports the top of a scope's distribution, used for
// fill-problem diagnostics
type HighRateStatistics struct {
	Metric     string         `json:"metric"`
	P75        float64        `json:"p75"`
	P90        float64        `json:"p90"`
	MaxRate    float64        `json:"max_rate"`
	SampleSize int            `json:"sample_size"`
	Tier       GeographicTier `json:"tier"`
	City       string         `json:"city,omitempty"`
	State      string         `json:"state,omitempty"`
	Specialty  string         `json:"specialty"`
}

// RateImpact estimates where a proposed rate sits in a scope's distribution
type RateImpact struct {
	ProposedRate        float64   `json:"proposed_rate"`
	EstimatedPercentile float64   `json:"estimated_percentile"`
	MarketAverage       float64   `json:"market_average"`
	CompetitiveFloor    float64   `json:"competitive_floor"`
	RecommendedRange    RateRange `json:"recommended_range"`
	WithinRange         bool      `json:"within_range"`
	SampleSize          int       `json:"sample_size"`
}
