package entities

import "time"

// VendorActivity is one vendor's footprint at a facility over the activity
// window
type VendorActivity struct {
	VendorName      string    `json:"vendor_name" db:"vendor_name"`
	ClientName      string    `json:"client_name" db:"client_name"`
	City            string    `json:"city" db:"city"`
	State           string    `json:"state" db:"state"`
	Specialties     []string  `json:"specialties" db:"-"`
	AssignmentCount int       `json:"assignment_count" db:"assignment_count"`
	AvgBillRate     float64   `json:"avg_bill_rate" db:"avg_bill_rate"`
	LatestStart     time.Time `json:"latest_start" db:"latest_start"`
}

// VendorSummary aggregates a single vendor's activity across facilities
type VendorSummary struct {
	VendorName      string   `json:"vendor_name" db:"vendor_name"`
	FacilityCount   int      `json:"facility_count" db:"facility_count"`
	AssignmentCount int      `json:"assignment_count" db:"assignment_count"`
	AvgBillRate     float64  `json:"avg_bill_rate" db:"avg_bill_rate"`
	States          []string `json:"states" db:"-"`
	TopSpecialties  []string `json:"top_specialties" db:"-"`
}
