package entities

import "time"

// ProjectStatus enumerates project lifecycle states.
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectOnHold    ProjectStatus = "on_hold"
)

// Valid reports whether s is a known project status.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectActive, ProjectCompleted, ProjectOnHold:
		return true
	}
	return false
}

// Project is a funded programme that organizations, participants and activities belong to.
type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Acronym     string        `json:"acronym"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status"`
	StartDate   *time.Time    `json:"start_date,omitempty"`
	EndDate     *time.Time    `json:"end_date,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// ProjectFilter narrows project listings.
type ProjectFilter struct {
	PageRequest
	Status *ProjectStatus
}
