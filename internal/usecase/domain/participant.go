package domain

import (
	"context"
	"strings"
	"time"

	"impacttrack/internal/entities"
	"impacttrack/internal/importer"
)

var now = time.Now

func normalizeParticipant(p entities.Participant) (entities.Participant, error) {
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)
	p.Contact = strings.TrimSpace(p.Contact)
	p.ClusterID = trimPtr(p.ClusterID)

	if p.Age == 0 && p.DateOfBirth != nil {
		p.Age = importer.AgeAt(*p.DateOfBirth, now())
	}

	err := firstErr(
		required("first_name", p.FirstName),
		checkID("organization_id", p.OrganizationID),
		checkID("project_id", p.ProjectID),
		checkOptionalID("cluster_id", p.ClusterID),
		nonNegative("monthly_income", p.MonthlyIncome),
	)
	if err != nil {
		return p, err
	}
	if !p.Gender.Valid() {
		return p, invalid("gender %q is not one of male, female, other", p.Gender)
	}
	if p.Age < 0 || p.Age > 120 {
		return p, invalid("age must be between 0 and 120")
	}
	if p.DateOfBirth != nil && p.DateOfBirth.After(now()) {
		return p, invalid("date_of_birth is in the future")
	}
	if p.Setting != "" && !p.Setting.Valid() {
		return p, invalid("setting %q is not one of urban, rural", p.Setting)
	}
	if p.EmploymentStatus != "" && !p.EmploymentStatus.Valid() {
		return p, invalid("employment_status %q is not a known status", p.EmploymentStatus)
	}
	return p, nil
}

// CreateParticipant validates and stores a new participant.
func (u *Usecase) CreateParticipant(ctx context.Context, p entities.Participant) (*entities.Participant, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	p, err := normalizeParticipant(p)
	if err != nil {
		return nil, err
	}
	p.ID = assignID(p.ID)
	return u.repo.CreateParticipant(ctx, p)
}

// Participant returns a participant by id.
func (u *Usecase) Participant(ctx context.Context, id string) (*entities.Participant, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := checkID("id", id); err != nil {
		return nil, err
	}
	return u.repo.GetParticipant(ctx, id)
}

func checkParticipantFilter(filter entities.ParticipantFilter) error {
	if filter.Gender != nil && !filter.Gender.Valid() {
		return invalid("gender %q is not one of male, female, other", *filter.Gender)
	}
	return firstErr(
		checkOptionalID("organization_id", &filter.OrganizationID),
		checkOptionalID("project_id", &filter.ProjectID),
		checkOptionalID("cluster_id", &filter.ClusterID),
	)
}

// Participants returns a page of participants.
func (u *Usecase) Participants(ctx context.Context, filter entities.ParticipantFilter) (entities.Page[entities.Participant], error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := checkParticipantFilter(filter); err != nil {
		return entities.Page[entities.Participant]{}, err
	}
	filter.PageRequest = filter.PageRequest.Normalize()
	items, total, err := u.repo.ListParticipants(ctx, filter)
	if err != nil {
		return entities.Page[entities.Participant]{}, err
	}
	return entities.NewPage(items, filter.PageRequest, total), nil
}

// UpdateParticipant replaces the mutable fields of a participant.
func (u *Usecase) UpdateParticipant(ctx context.Context, p entities.Participant) (*entities.Participant, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := checkID("id", p.ID); err != nil {
		return nil, err
	}
	p, err := normalizeParticipant(p)
	if err != nil {
		return nil, err
	}
	return u.repo.UpdateParticipant(ctx, p)
}

// DeleteParticipant removes a participant with their skills and attendance.
func (u *Usecase) DeleteParticipant(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := checkID("id", id); err != nil {
		return err
	}
	return u.repo.DeleteParticipant(ctx, id)
}

// AddSkill records a skill for a participant.
func (u *Usecase) AddSkill(ctx context.Context, s entities.Skill) (*entities.Skill, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	s.Name = strings.TrimSpace(s.Name)
	if s.Proficiency == "" {
		s.Proficiency = entities.ProficiencyBeginner
	}
	if err := firstErr(checkID("participant_id", s.ParticipantID), required("name", s.Name)); err != nil {
		return nil, err
	}
	if !s.Category.Valid() {
		return nil, invalid("category %q is not one of vocational, business, soft, digital", s.Category)
	}
	if !s.Proficiency.Valid() {
		return nil, invalid("proficiency %q is not one of beginner, intermediate, advanced", s.Proficiency)
	}

	if _, err := u.repo.GetParticipant(ctx, s.ParticipantID); err != nil {
		return nil, err
	}
	s.ID = assignID(s.ID)
	return u.repo.CreateSkill(ctx, s)
}

// ParticipantSkills lists the skills of a participant.
func (u *Usecase) ParticipantSkills(ctx context.Context, participantID string) ([]entities.Skill, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := checkID("participant_id", participantID); err != nil {
		return nil, err
	}
	return u.repo.ListSkills(ctx, participantID)
}

// DeleteSkill removes one skill of a participant.
func (u *Usecase) DeleteSkill(ctx context.Context, participantID, skillID string) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := firstErr(checkID("participant_id", participantID), checkID("skill_id", skillID)); err != nil {
		return err
	}
	return u.repo.DeleteSkill(ctx, participantID, skillID)
}
