package entities

import "time"

// SkillCategory groups skill records.
type SkillCategory string

const (
	SkillVocational SkillCategory = "vocational"
	SkillBusiness   SkillCategory = "business"
	SkillSoft       SkillCategory = "soft"
	SkillDigital    SkillCategory = "digital"
)

// Valid reports whether c is a known category.
func (c SkillCategory) Valid() bool {
	switch c {
	case SkillVocational, SkillBusiness, SkillSoft, SkillDigital:
		return true
	}
	return false
}

// Proficiency is the participant's level in a skill.
type Proficiency string

const (
	ProficiencyBeginner     Proficiency = "beginner"
	ProficiencyIntermediate Proficiency = "intermediate"
	ProficiencyAdvanced     Proficiency = "advanced"
)

// Valid reports whether p is a known proficiency.
func (p Proficiency) Valid() bool {
	switch p {
	case ProficiencyBeginner, ProficiencyIntermediate, ProficiencyAdvanced:
		return true
	}
	return false
}

// Skill is a skill a participant has acquired or is training for.
type Skill struct {
	ID            string        `json:"id"`
	ParticipantID string        `json:"participant_id"`
	Name          string        `json:"name"`
	Category      SkillCategory `json:"category"`
	Proficiency   Proficiency   `json:"proficiency"`
	Certified     bool          `json:"certified"`
	AcquiredAt    *time.Time    `json:"acquired_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}
