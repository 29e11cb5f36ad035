package entities

// TrendDirection labels which way a rate moved between windows
type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)

// StateTrend compares a state's recent average rate against the prior window
type StateTrend struct {
	State       string         `json:"state" db:"state"`
	RecentAvg   float64        `json:"recent_avg" db:"recent_avg"`
	PriorAvg    float64        `json:"prior_avg" db:"prior_avg"`
	ChangePct   float64        `json:"change_pct" db:"change_pct"`
	RecentCount int            `json:"recent_count" db:"recent_count"`
	PriorCount  int            `json:"prior_count" db:"prior_count"`
	Direction   TrendDirection `json:"direction"`

	// LicensureCompact flags states in the nurse licensure compact, where
	// travelers can pick up work without a new state license
	LicensureCompact bool `json:"licensure_compact"`
}
