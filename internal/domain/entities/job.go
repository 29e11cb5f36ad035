package entities

import "time"

// JobPosting is an upcoming assignment surfaced by the comparable-jobs and
// lead-opportunity lookups
type JobPosting struct {
	ClientName string    `json:"client_name" db:"client_name"`
	Specialty  string    `json:"specialty" db:"specialty"`
	Profession string    `json:"profession,omitempty" db:"profession"`
	City       string    `json:"city" db:"city"`
	State      string    `json:"state" db:"state"`
	Rate       float64   `json:"rate" db:"rate"`
	StartDate  time.Time `json:"start_date" db:"start_date"`
}

// NearbyJob is a job posting annotated with its great-circle distance from
// the search origin
type NearbyJob struct {
	JobPosting
	Latitude      float64 `json:"latitude" db:"latitude"`
	Longitude     float64 `json:"longitude" db:"longitude"`
	DistanceMiles float64 `json:"distance_miles" db:"distance_miles"`
}

// LeadOpportunity is a high-rate posting with its estimated contract value
// (rate x 40 hours x 13 weeks)
type LeadOpportunity struct {
	JobPosting
	EstimatedContractValue float64 `json:"estimated_contract_value"`
}
