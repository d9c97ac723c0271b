// Package dto holds the JSON shapes exchanged over HTTP.
package dto

import "impacttrack/internal/entities"

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool               `json:"success"`
	Data    any                `json:"data,omitempty"`
	Meta    *entities.PageMeta `json:"meta,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// OK wraps data in a success envelope.
func OK(data any) Response {
	return Response{Success: true, Data: data}
}

// OKPage wraps a page of items with its pagination metadata.
func OKPage[T any](page entities.Page[T]) Response {
	return Response{Success: true, Data: page.Items, Meta: &page.Meta}
}

// Fail builds an error envelope.
func Fail(msg string) Response {
	return Response{Error: msg}
}

// ProjectRequest is the body of project create and update calls.
type ProjectRequest struct {
	Name        string  `json:"name"`
	Acronym     string  `json:"acronym"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
}

// ClusterRequest is the body of cluster create and update calls.
type ClusterRequest struct {
	Name      string   `json:"name"`
	About     string   `json:"about"`
	Country   string   `json:"country"`
	Districts []string `json:"districts"`
}

// ClusterMembersRequest lists organizations to attach to a cluster.
type ClusterMembersRequest struct {
	OrganizationIDs []string `json:"organization_ids"`
}

// MembersAdded reports how many memberships were created.
type MembersAdded struct {
	Added int `json:"added"`
}

// OrganizationRequest is the body of organization create and update calls.
type OrganizationRequest struct {
	Name             string  `json:"name"`
	Acronym          string  `json:"acronym"`
	ClusterID        *string `json:"cluster_id"`
	ProjectID        *string `json:"project_id"`
	Country          string  `json:"country"`
	District         string  `json:"district"`
	SubCounty        string  `json:"sub_county"`
	OperationAddress string  `json:"operation_address"`
}

// ParticipantRequest is the body of participant create and update calls.
type ParticipantRequest struct {
	FirstName        string  `json:"first_name"`
	LastName         string  `json:"last_name"`
	Gender           string  `json:"gender"`
	Age              int     `json:"age"`
	DateOfBirth      *string `json:"date_of_birth"`
	Contact          string  `json:"contact"`
	Country          string  `json:"country"`
	District         string  `json:"district"`
	SubCounty        string  `json:"sub_county"`
	Parish           string  `json:"parish"`
	Village          string  `json:"village"`
	Setting          string  `json:"setting"`
	IsPWD            bool    `json:"is_pwd"`
	DisabilityType   string  `json:"disability_type"`
	IsRefugee        bool    `json:"is_refugee"`
	IsMother         bool    `json:"is_mother"`
	EmploymentStatus string  `json:"employment_status"`
	Occupation       string  `json:"occupation"`
	MonthlyIncome    float64 `json:"monthly_income"`
	Designation      string  `json:"designation"`
	OrganizationID   string  `json:"organization_id"`
	ProjectID        string  `json:"project_id"`
	ClusterID        *string `json:"cluster_id"`
}

// SkillRequest is the body of the add-skill call.
type SkillRequest struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Proficiency string  `json:"proficiency"`
	Certified   bool    `json:"certified"`
	AcquiredAt  *string `json:"acquired_at"`
}

// ActivityRequest is the body of activity create and update calls.
type ActivityRequest struct {
	Title          string  `json:"title"`
	Type           string  `json:"type"`
	Status         string  `json:"status"`
	Description    string  `json:"description"`
	Venue          string  `json:"venue"`
	StartDate      string  `json:"start_date"`
	EndDate        *string `json:"end_date"`
	Budget         float64 `json:"budget"`
	OrganizationID string  `json:"organization_id"`
	ProjectID      string  `json:"project_id"`
	ClusterID      *string `json:"cluster_id"`
}

// AttendanceRequest marks participants on an activity register. Attended
// defaults to true.
type AttendanceRequest struct {
	ParticipantIDs []string `json:"participant_ids"`
	Attended       *bool    `json:"attended"`
}

// AttendanceRecorded reports how many register rows were written.
type AttendanceRecorded struct {
	Recorded int `json:"recorded"`
}

// ConceptNoteRequest is the body of the concept note upsert.
type ConceptNoteRequest struct {
	Title      string  `json:"title"`
	ChargeCode string  `json:"charge_code"`
	Content    string  `json:"content"`
	Budget     float64 `json:"budget"`
	PreparedBy string  `json:"prepared_by"`
}

// VSLARequest is the body of VSLA create and update calls.
type VSLARequest struct {
	Name             string  `json:"name"`
	Code             string  `json:"code"`
	OrganizationID   string  `json:"organization_id"`
	ProjectID        string  `json:"project_id"`
	ClusterID        *string `json:"cluster_id"`
	Country          string  `json:"country"`
	District         string  `json:"district"`
	SubCounty        string  `json:"sub_county"`
	Parish           string  `json:"parish"`
	Village          string  `json:"village"`
	MeetingFrequency string  `json:"meeting_frequency"`
	Status           string  `json:"status"`
	TotalMembers     int     `json:"total_members"`
	FemaleMembers    int     `json:"female_members"`
	MaleMembers      int     `json:"male_members"`
	TotalSavings     float64 `json:"total_savings"`
	TotalLoans       float64 `json:"total_loans"`
	FormedOn         *string `json:"formed_on"`
}
