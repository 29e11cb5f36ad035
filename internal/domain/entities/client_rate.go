package entities

import "time"

// ClientRate is one row of a client ranking: a client's average rate for a
// specialty within a city/state grouping
type ClientRate struct {
	ClientName      string    `json:"client_name" db:"client_name"`
	City            string    `json:"city" db:"city"`
	State           string    `json:"state" db:"state"`
	Specialty       string    `json:"specialty" db:"specialty"`
	AvgRate         float64   `json:"avg_rate" db:"avg_rate"`
	AssignmentCount int       `json:"assignment_count" db:"assignment_count"`
	LatestStart     time.Time `json:"latest_start" db:"latest_start"`
}
