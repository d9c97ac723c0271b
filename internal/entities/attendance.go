package entities

import "time"

// AttendanceRecord is one participant on an activity register, carrying the
// demographic fields used by attendance analytics.
type AttendanceRecord struct {
	ActivityID       string           `json:"activity_id"`
	ParticipantID    string           `json:"participant_id"`
	ParticipantName  string           `json:"participant_name"`
	Attended         bool             `json:"attended"`
	Gender           Gender           `json:"gender"`
	Age              int              `json:"age"`
	Setting          Setting          `json:"setting"`
	IsPWD            bool             `json:"is_pwd"`
	EmploymentStatus EmploymentStatus `json:"employment_status"`
	RecordedAt       time.Time        `json:"recorded_at"`
}

// Breakdown is one bucket of a demographic split.
type Breakdown struct {
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// AttendanceAnalytics is the demographic summary of an activity register.
type AttendanceAnalytics struct {
	Total          int         `json:"total"`
	Attended       int         `json:"attended"`
	Absent         int         `json:"absent"`
	AttendanceRate float64     `json:"attendance_rate"`
	ByGender       []Breakdown `json:"by_gender"`
	ByAgeBand      []Breakdown `json:"by_age_band"`
	BySetting      []Breakdown `json:"by_setting"`
	ByDisability   []Breakdown `json:"by_disability"`
	ByEmployment   []Breakdown `json:"by_employment"`
}
