package entities

import "time"

// ActivityType enumerates the kinds of programme activity.
type ActivityType string

const (
	ActivityTraining   ActivityType = "training"
	ActivityMeeting    ActivityType = "meeting"
	ActivityWorkshop   ActivityType = "workshop"
	ActivityFieldVisit ActivityType = "field_visit"
	ActivityOutreach   ActivityType = "outreach"
	ActivityOther      ActivityType = "other"
)

// Valid reports whether t is a known activity type.
func (t ActivityType) Valid() bool {
	switch t {
	case ActivityTraining, ActivityMeeting, ActivityWorkshop, ActivityFieldVisit, ActivityOutreach, ActivityOther:
		return true
	}
	return false
}

// ActivityStatus is drawn from a fixed enumeration.
type ActivityStatus string

const (
	ActivityPlanned   ActivityStatus = "planned"
	ActivityOngoing   ActivityStatus = "ongoing"
	ActivityCompleted ActivityStatus = "completed"
	ActivityCancelled ActivityStatus = "cancelled"
	ActivityPostponed ActivityStatus = "postponed"
)

// Valid reports whether s is a known activity status.
func (s ActivityStatus) Valid() bool {
	switch s {
	case ActivityPlanned, ActivityOngoing, ActivityCompleted, ActivityCancelled, ActivityPostponed:
		return true
	}
	return false
}

// Activity is a scheduled programme event with an attendance register.
type Activity struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Type           ActivityType   `json:"type"`
	Status         ActivityStatus `json:"status"`
	Description    string         `json:"description"`
	Venue          string         `json:"venue"`
	StartDate      time.Time      `json:"start_date"`
	EndDate        time.Time      `json:"end_date"`
	Budget         float64        `json:"budget"`
	OrganizationID string         `json:"organization_id"`
	ProjectID      string         `json:"project_id"`
	ClusterID      *string        `json:"cluster_id,omitempty"`
	AttendeeCount  int64          `json:"attendee_count"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// ActivityFilter narrows activity listings.
type ActivityFilter struct {
	PageRequest
	OrganizationID string
	ProjectID      string
	ClusterID      string
	Status         *ActivityStatus
	Type           *ActivityType
	From           *time.Time
	To             *time.Time
}

// ConceptNote is the planning document attached to an activity.
type ConceptNote struct {
	ID         string    `json:"id"`
	ActivityID string    `json:"activity_id"`
	Title      string    `json:"title"`
	ChargeCode string    `json:"charge_code"`
	Content    string    `json:"content"`
	Budget     float64   `json:"budget"`
	PreparedBy string    `json:"prepared_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
