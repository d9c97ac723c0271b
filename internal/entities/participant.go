package entities

import "time"

// Gender of a participant.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Valid reports whether g is a known gender.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// ParseGender accepts the spellings found in field registers.
func ParseGender(s string) (Gender, bool) {
	switch normalizeToken(s) {
	case "m", "male", "man", "boy":
		return GenderMale, true
	case "f", "female", "woman", "girl":
		return GenderFemale, true
	case "o", "other":
		return GenderOther, true
	}
	return "", false
}

// Setting distinguishes urban from rural participants.
type Setting string

const (
	SettingUrban Setting = "urban"
	SettingRural Setting = "rural"
)

// Valid reports whether s is a known setting.
func (s Setting) Valid() bool {
	return s == SettingUrban || s == SettingRural
}

// ParseSetting accepts urban/rural and common abbreviations.
func ParseSetting(s string) (Setting, bool) {
	switch normalizeToken(s) {
	case "urban", "u", "town", "city":
		return SettingUrban, true
	case "rural", "r", "village":
		return SettingRural, true
	}
	return "", false
}

// EmploymentStatus is the participant's employment category.
type EmploymentStatus string

const (
	EmploymentEmployed     EmploymentStatus = "employed"
	EmploymentSelfEmployed EmploymentStatus = "self_employed"
	EmploymentUnemployed   EmploymentStatus = "unemployed"
	EmploymentStudent      EmploymentStatus = "student"
)

// Valid reports whether e is a known employment status.
func (e EmploymentStatus) Valid() bool {
	switch e {
	case EmploymentEmployed, EmploymentSelfEmployed, EmploymentUnemployed, EmploymentStudent:
		return true
	}
	return false
}

// ParseEmploymentStatus accepts canonical values and register spellings.
func ParseEmploymentStatus(s string) (EmploymentStatus, bool) {
	switch normalizeToken(s) {
	case "employed", "wage_employed", "formally_employed":
		return EmploymentEmployed, true
	case "self_employed", "selfemployed", "business", "entrepreneur":
		return EmploymentSelfEmployed, true
	case "unemployed", "none", "not_employed":
		return EmploymentUnemployed, true
	case "student", "in_school":
		return EmploymentStudent, true
	}
	return "", false
}

// Participant is a registered beneficiary of a project.
type Participant struct {
	ID               string           `json:"id"`
	FirstName        string           `json:"first_name"`
	LastName         string           `json:"last_name"`
	Gender           Gender           `json:"gender"`
	Age              int              `json:"age"`
	DateOfBirth      *time.Time       `json:"date_of_birth,omitempty"`
	Contact          string           `json:"contact"`
	Country          string           `json:"country"`
	District         string           `json:"district"`
	SubCounty        string           `json:"sub_county"`
	Parish           string           `json:"parish"`
	Village          string           `json:"village"`
	Setting          Setting          `json:"setting"`
	IsPWD            bool             `json:"is_pwd"`
	DisabilityType   string           `json:"disability_type"`
	IsRefugee        bool             `json:"is_refugee"`
	IsMother         bool             `json:"is_mother"`
	EmploymentStatus EmploymentStatus `json:"employment_status"`
	Occupation       string           `json:"occupation"`
	MonthlyIncome    float64          `json:"monthly_income"`
	Designation      string           `json:"designation"`
	OrganizationID   string           `json:"organization_id"`
	ProjectID        string           `json:"project_id"`
	ClusterID        *string          `json:"cluster_id,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// FullName joins first and last names.
func (p Participant) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// ParticipantFilter narrows participant listings.
type ParticipantFilter struct {
	PageRequest
	OrganizationID string
	ProjectID      string
	ClusterID      string
	District       string
	Gender         *Gender
	IsPWD          *bool
}
