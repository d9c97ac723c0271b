package domain

import (
	"context"
	"strings"

	"impacttrack/internal/entities"
)

func normalizeVSLA(v entities.VSLA) (entities.VSLA, error) {
	v.Name = strings.TrimSpace(v.Name)
	v.Code = strings.ToUpper(strings.TrimSpace(v.Code))
	v.ClusterID = trimPtr(v.ClusterID)
	if v.Status == "" {
		v.Status = entities.VSLAActive
	}

	err := firstErr(
		required("name", v.Name),
		required("code", v.Code),
		checkID("organization_id", v.OrganizationID),
		checkID("project_id", v.ProjectID),
		checkOptionalID("cluster_id", v.ClusterID),
		nonNegative("total_members", float64(v.TotalMembers)),
		nonNegative("female_members", float64(v.FemaleMembers)),
		nonNegative("male_members", float64(v.MaleMembers)),
		nonNegative("total_savings", v.TotalSavings),
		nonNegative("total_loans", v.TotalLoans),
	)
	if err != nil {
		return v, err
	}
	if !v.MeetingFrequency.Valid() {
		return v, invalid("meeting_frequency %q is not one of weekly, biweekly, monthly", v.MeetingFrequency)
	}
	if !v.Status.Valid() {
		return v, invalid("status %q is not one of active, inactive, dissolved", v.Status)
	}
	if v.FemaleMembers+v.MaleMembers > v.TotalMembers {
		return v, invalid("female_members and male_members exceed total_members")
	}
	return v, nil
}

// CreateVSLA validates and stores a new savings group.
func (u *Usecase) CreateVSLA(ctx context.Context, v entities.VSLA) (*entities.VSLA, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	v, err := normalizeVSLA(v)
	if err != nil {
		return nil, err
	}
	v.ID = assignID(v.ID)
	return u.repo.CreateVSLA(ctx, v)
}

// VSLA returns a savings group by id.
func (u *Usecase) VSLA(ctx context.Context, id string) (*entities.VSLA, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := checkID("id", id); err != nil {
		return nil, err
	}
	return u.repo.GetVSLA(ctx, id)
}

func checkVSLAFilter(filter entities.VSLAFilter) error {
	if filter.Status != nil && !filter.Status.Valid() {
		return invalid("status %q is not a VSLA status", *filter.Status)
	}
	return firstErr(
		checkOptionalID("organization_id", &filter.OrganizationID),
		checkOptionalID("project_id", &filter.ProjectID),
		checkOptionalID("cluster_id", &filter.ClusterID),
	)
}

// VSLAs returns a page of savings groups.
func (u *Usecase) VSLAs(ctx context.Context, filter entities.VSLAFilter) (entities.Page[entities.VSLA], error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := checkVSLAFilter(filter); err != nil {
		return entities.Page[entities.VSLA]{}, err
	}
	filter.PageRequest = filter.PageRequest.Normalize()
	items, total, err := u.repo.ListVSLAs(ctx, filter)
	if err != nil {
		return entities.Page[entities.VSLA]{}, err
	}
	return entities.NewPage(items, filter.PageRequest, total), nil
}

// UpdateVSLA replaces the mutable fields of a savings group.
func (u *Usecase) UpdateVSLA(ctx context.Context, v entities.VSLA) (*entities.VSLA, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := checkID("id", v.ID); err != nil {
		return nil, err
	}
	v, err := normalizeVSLA(v)
	if err != nil {
		return nil, err
	}
	return u.repo.UpdateVSLA(ctx, v)
}

// DeleteVSLA removes a savings group.
func (u *Usecase) DeleteVSLA(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := checkID("id", id); err != nil {
		return err
	}
	return u.repo.DeleteVSLA(ctx, id)
}
