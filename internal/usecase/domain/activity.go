package domain

import (
	"context"
	"strings"

	"impacttrack/internal/analytics"
	"impacttrack/internal/entities"
)

func normalizeActivity(a entities.Activity) (entities.Activity, error) {
	a.Title = strings.TrimSpace(a.Title)
	a.ClusterID = trimPtr(a.ClusterID)
	if a.Status == "" {
		a.Status = entities.ActivityPlanned
	}

	err := firstErr(
		required("title", a.Title),
		checkID("organization_id", a.OrganizationID),
		checkID("project_id", a.ProjectID),
		checkOptionalID("cluster_id", a.ClusterID),
		nonNegative("budget", a.Budget),
	)
	if err != nil {
		return a, err
	}
	if !a.Type.Valid() {
		return a, invalid("type %q is not a known activity type", a.Type)
	}
	if !a.Status.Valid() {
		return a, invalid("status %q is not a known activity status", a.Status)
	}
	if a.StartDate.IsZero() {
		return a, invalid("start_date is required")
	}
	if a.EndDate.IsZero() {
		a.EndDate = a.StartDate
	}
	if a.EndDate.Before(a.StartDate) {
		return a, invalid("end_date must not be before start_date")
	}
	return a, nil
}

// CreateActivity validates and stores a new activity.
func (u *Usecase) CreateActivity(ctx context.Context, a entities.Activity) (*entities.Activity, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	a, err := normalizeActivity(a)
	if err != nil {
		return nil, err
	}
	a.ID = assignID(a.ID)
	return u.repo.CreateActivity(ctx, a)
}

// Activity returns an activity by id.
func (u *Usecase) Activity(ctx context.Context, id string) (*entities.Activity, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := checkID("id", id); err != nil {
		return nil, err
	}
	return u.repo.GetActivity(ctx, id)
}

// Activities returns a page of activities.
func (u *Usecase) Activities(ctx context.Context, filter entities.ActivityFilter) (entities.Page[entities.Activity], error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if filter.Status != nil && !filter.Status.Valid() {
		return entities.Page[entities.Activity]{}, invalid("status %q is not a known activity status", *filter.Status)
	}
	if filter.Type != nil && !filter.Type.Valid() {
		return entities.Page[entities.Activity]{}, invalid("type %q is not a known activity type", *filter.Type)
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return entities.Page[entities.Activity]{}, invalid("to must not be before from")
	}
	if err := firstErr(
		checkOptionalID("organization_id", &filter.OrganizationID),
		checkOptionalID("project_id", &filter.ProjectID),
		checkOptionalID("cluster_id", &filter.ClusterID),
	); err != nil {
		return entities.Page[entities.Activity]{}, err
	}
	filter.PageRequest = filter.PageRequest.Normalize()
	items, total, err := u.repo.ListActivities(ctx, filter)
	if err != nil {
		return entities.Page[entities.Activity]{}, err
	}
	return entities.NewPage(items, filter.PageRequest, total), nil
}

// UpdateActivity replaces the mutable fields of an activity.
func (u *Usecase) UpdateActivity(ctx context.Context, a entities.Activity) (*entities.Activity, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := checkID("id", a.ID); err != nil {
		return nil, err
	}
	a, err := normalizeActivity(a)
	if err != nil {
		return nil, err
	}
	return u.repo.UpdateActivity(ctx, a)
}

// DeleteActivity removes an activity with its register and concept note.
func (u *Usecase) DeleteActivity(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := checkID("id", id); err != nil {
		return err
	}
	return u.repo.DeleteActivity(ctx, id)
}

// RecordAttendance marks participants as attended or absent for an activity.
func (u *Usecase) RecordAttendance(ctx context.Context, activityID string, participantIDs []string, attended bool) (int, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := checkID("activity_id", activityID); err != nil {
		return 0, err
	}
	ids, err := checkIDs("participant_ids", participantIDs)
	if err != nil {
		return 0, err
	}
	return u.repo.RecordAttendance(ctx, activityID, ids, attended)
}

// RemoveAttendance takes a participant off an activity register.
func (u *Usecase) RemoveAttendance(ctx context.Context, activityID, participantID string) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := firstErr(checkID("activity_id", activityID), checkID("participant_id", participantID)); err != nil {
		return err
	}
	return u.repo.RemoveAttendance(ctx, activityID, participantID)
}

// ActivityAttendance returns the register of an activity.
func (u *Usecase) ActivityAttendance(ctx context.Context, activityID string) ([]entities.AttendanceRecord, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := checkID("activity_id", activityID); err != nil {
		return nil, err
	}
	return u.repo.ListAttendance(ctx, activityID)
}

// AttendanceAnalytics summarises the register of an activity by demographics.
func (u *Usecase) AttendanceAnalytics(ctx context.Context, activityID string) (entities.AttendanceAnalytics, error) {
	records, err := u.ActivityAttendance(ctx, activityID)
	if err != nil {
		return entities.AttendanceAnalytics{}, err
	}
	return analytics.AttendanceBreakdown(records), nil
}

// SaveConceptNote creates or replaces the concept note of an activity.
func (u *Usecase) SaveConceptNote(ctx context.Context, n entities.ConceptNote) (*entities.ConceptNote, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	n.Title = strings.TrimSpace(n.Title)
	err := firstErr(
		checkID("activity_id", n.ActivityID),
		required("title", n.Title),
		nonNegative("budget", n.Budget),
	)
	if err != nil {
		return nil, err
	}
	n.ID = assignID(n.ID)
	return u.repo.UpsertConceptNote(ctx, n)
}

// ConceptNote returns the concept note of an activity.
func (u *Usecase) ConceptNote(ctx context.Context, activityID string) (*entities.ConceptNote, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := checkID("activity_id", activityID); err != nil {
		return nil, err
	}
	return u.repo.GetConceptNote(ctx, activityID)
}

// DeleteConceptNote removes the concept note of an activity.
func (u *Usecase) DeleteConceptNote(ctx context.Context, activityID string) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := checkID("activity_id", activityID); err != nil {
		return err
	}
	return u.repo.DeleteConceptNote(ctx, activityID)
}
