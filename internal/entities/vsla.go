package entities

import "time"

// MeetingFrequency is how often a VSLA meets.
type MeetingFrequency string

const (
	MeetWeekly   MeetingFrequency = "weekly"
	MeetBiweekly MeetingFrequency = "biweekly"
	MeetMonthly  MeetingFrequency = "monthly"
)

// Valid reports whether f is a known frequency.
func (f MeetingFrequency) Valid() bool {
	switch f {
	case MeetWeekly, MeetBiweekly, MeetMonthly:
		return true
	}
	return false
}

// ParseMeetingFrequency accepts canonical values and register spellings.
func ParseMeetingFrequency(s string) (MeetingFrequency, bool) {
	switch normalizeToken(s) {
	case "weekly", "week", "once_a_week":
		return MeetWeekly, true
	case "biweekly", "bi_weekly", "fortnightly", "every_two_weeks":
		return MeetBiweekly, true
	case "monthly", "month", "once_a_month":
		return MeetMonthly, true
	}
	return "", false
}

// VSLAStatus is the lifecycle state of a savings group.
type VSLAStatus string

const (
	VSLAActive    VSLAStatus = "active"
	VSLAInactive  VSLAStatus = "inactive"
	VSLADissolved VSLAStatus = "dissolved"
)

// Valid reports whether s is a known VSLA status.
func (s VSLAStatus) Valid() bool {
	switch s {
	case VSLAActive, VSLAInactive, VSLADissolved:
		return true
	}
	return false
}

// VSLA is a village savings and loan association monitored by an organization.
type VSLA struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Code             string           `json:"code"`
	OrganizationID   string           `json:"organization_id"`
	ProjectID        string           `json:"project_id"`
	ClusterID        *string          `json:"cluster_id,omitempty"`
	Country          string           `json:"country"`
	District         string           `json:"district"`
	SubCounty        string           `json:"sub_county"`
	Parish           string           `json:"parish"`
	Village          string           `json:"village"`
	MeetingFrequency MeetingFrequency `json:"meeting_frequency"`
	Status           VSLAStatus       `json:"status"`
	TotalMembers     int              `json:"total_members"`
	FemaleMembers    int              `json:"female_members"`
	MaleMembers      int              `json:"male_members"`
	TotalSavings     float64          `json:"total_savings"`
	TotalLoans       float64          `json:"total_loans"`
	FormedOn         *time.Time       `json:"formed_on,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// VSLAFilter narrows VSLA listings and totals.
type VSLAFilter struct {
	PageRequest
	OrganizationID string
	ProjectID      string
	ClusterID      string
	District       string
	Status         *VSLAStatus
}

// VSLATotals aggregates member counts and currency totals.
type VSLATotals struct {
	Groups        int64   `json:"groups"`
	TotalMembers  int64   `json:"total_members"`
	FemaleMembers int64   `json:"female_members"`
	MaleMembers   int64   `json:"male_members"`
	TotalSavings  float64 `json:"total_savings"`
	TotalLoans    float64 `json:"total_loans"`
}
