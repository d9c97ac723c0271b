// Package mapper converts between transport DTOs and domain models.
package mapper

import (
	"fmt"
	"strings"
	"time"

	"impacttrack/internal/entities"
	"impacttrack/internal/transport/http/dto"
)

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// ParseDate accepts RFC 3339 timestamps and plain calendar dates.
func ParseDate(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %s %q is not a date", entities.ErrInvalidArgument, field, s)
}

func optionalDate(field string, s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := ParseDate(field, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ToProject builds a project from a request body.
func ToProject(req dto.ProjectRequest) (entities.Project, error) {
	start, err := optionalDate("start_date", req.StartDate)
	if err != nil {
		return entities.Project{}, err
	}
	end, err := optionalDate("end_date", req.EndDate)
	if err != nil {
		return entities.Project{}, err
	}
	return entities.Project{
		Name:        req.Name,
		Acronym:     req.Acronym,
		Description: req.Description,
		Status:      entities.ProjectStatus(lower(req.Status)),
		StartDate:   start,
		EndDate:     end,
	}, nil
}

// ToCluster builds a cluster from a request body.
func ToCluster(req dto.ClusterRequest) entities.Cluster {
	return entities.Cluster{
		Name:      req.Name,
		About:     req.About,
		Country:   req.Country,
		Districts: req.Districts,
	}
}

// ToOrganization builds an organization from a request body.
func ToOrganization(req dto.OrganizationRequest) entities.Organization {
	return entities.Organization{
		Name:             req.Name,
		Acronym:          req.Acronym,
		ClusterID:        req.ClusterID,
		ProjectID:        req.ProjectID,
		Country:          req.Country,
		District:         req.District,
		SubCounty:        req.SubCounty,
		OperationAddress: req.OperationAddress,
	}
}

// ToParticipant builds a participant from a request body. Register spellings
// of gender, setting and employment are folded to their canonical values;
// anything else is passed through for validation to reject.
func ToParticipant(req dto.ParticipantRequest) (entities.Participant, error) {
	dob, err := optionalDate("date_of_birth", req.DateOfBirth)
	if err != nil {
		return entities.Participant{}, err
	}

	gender, ok := entities.ParseGender(req.Gender)
	if !ok {
		gender = entities.Gender(lower(req.Gender))
	}
	var setting entities.Setting
	if req.Setting != "" {
		if setting, ok = entities.ParseSetting(req.Setting); !ok {
			setting = entities.Setting(lower(req.Setting))
		}
	}
	var employment entities.EmploymentStatus
	if req.EmploymentStatus != "" {
		if employment, ok = entities.ParseEmploymentStatus(req.EmploymentStatus); !ok {
			employment = entities.EmploymentStatus(lower(req.EmploymentStatus))
		}
	}

	return entities.Participant{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Gender:           gender,
		Age:              req.Age,
		DateOfBirth:      dob,
		Contact:          req.Contact,
		Country:          req.Country,
		District:         req.District,
		SubCounty:        req.SubCounty,
		Parish:           req.Parish,
		Village:          req.Village,
		Setting:          setting,
		IsPWD:            req.IsPWD,
		DisabilityType:   req.DisabilityType,
		IsRefugee:        req.IsRefugee,
		IsMother:         req.IsMother,
		EmploymentStatus: employment,
		Occupation:       req.Occupation,
		MonthlyIncome:    req.MonthlyIncome,
		Designation:      req.Designation,
		OrganizationID:   req.OrganizationID,
		ProjectID:        req.ProjectID,
		ClusterID:        req.ClusterID,
	}, nil
}

// ToSkill builds a skill record for participantID.
func ToSkill(participantID string, req dto.SkillRequest) (entities.Skill, error) {
	acquired, err := optionalDate("acquired_at", req.AcquiredAt)
	if err != nil {
		return entities.Skill{}, err
	}
	return entities.Skill{
		ParticipantID: participantID,
		Name:          req.Name,
		Category:      entities.SkillCategory(lower(req.Category)),
		Proficiency:   entities.Proficiency(lower(req.Proficiency)),
		Certified:     req.Certified,
		AcquiredAt:    acquired,
	}, nil
}

// ToActivity builds an activity from a request body.
func ToActivity(req dto.ActivityRequest) (entities.Activity, error) {
	var (
		start time.Time
		err   error
	)
	if strings.TrimSpace(req.StartDate) != "" {
		if start, err = ParseDate("start_date", req.StartDate); err != nil {
			return entities.Activity{}, err
		}
	}
	end, err := optionalDate("end_date", req.EndDate)
	if err != nil {
		return entities.Activity{}, err
	}

	a := entities.Activity{
		Title:          req.Title,
		Type:           entities.ActivityType(lower(req.Type)),
		Status:         entities.ActivityStatus(lower(req.Status)),
		Description:    req.Description,
		Venue:          req.Venue,
		StartDate:      start,
		Budget:         req.Budget,
		OrganizationID: req.OrganizationID,
		ProjectID:      req.ProjectID,
		ClusterID:      req.ClusterID,
	}
	if end != nil {
		a.EndDate = *end
	}
	return a, nil
}

// ToConceptNote builds the concept note of activityID.
func ToConceptNote(activityID string, req dto.ConceptNoteRequest) entities.ConceptNote {
	return entities.ConceptNote{
		ActivityID: activityID,
		Title:      req.Title,
		ChargeCode: req.ChargeCode,
		Content:    req.Content,
		Budget:     req.Budget,
		PreparedBy: req.PreparedBy,
	}
}

// ToVSLA builds a savings group from a request body.
func ToVSLA(req dto.VSLARequest) (entities.VSLA, error) {
	formed, err := optionalDate("formed_on", req.FormedOn)
	if err != nil {
		return entities.VSLA{}, err
	}
	freq, ok := entities.ParseMeetingFrequency(req.MeetingFrequency)
	if !ok {
		freq = entities.MeetingFrequency(lower(req.MeetingFrequency))
	}
	return entities.VSLA{
		Name:             req.Name,
		Code:             req.Code,
		OrganizationID:   req.OrganizationID,
		ProjectID:        req.ProjectID,
		ClusterID:        req.ClusterID,
		Country:          req.Country,
		District:         req.District,
		SubCounty:        req.SubCounty,
		Parish:           req.Parish,
		Village:          req.Village,
		MeetingFrequency: freq,
		Status:           entities.VSLAStatus(lower(req.Status)),
		TotalMembers:     req.TotalMembers,
		FemaleMembers:    req.FemaleMembers,
		MaleMembers:      req.MaleMembers,
		TotalSavings:     req.TotalSavings,
		TotalLoans:       req.TotalLoans,
		FormedOn:         formed,
	}, nil
}
