package domain

import (
	"context"
	"strings"

	"impacttrack/internal/entities"
)

func normalizeOrganization(o entities.Organization) (entities.Organization, error) {
	o.Name = strings.TrimSpace(o.Name)
	o.Acronym = strings.ToUpper(strings.TrimSpace(o.Acronym))
	o.ClusterID = trimPtr(o.ClusterID)
	o.ProjectID = trimPtr(o.ProjectID)
	return o, firstErr(
		required("name", o.Name),
		required("acronym", o.Acronym),
		checkOptionalID("cluster_id", o.ClusterID),
		checkOptionalID("project_id", o.ProjectID),
	)
}

// CreateOrganization validates and stores a new organization.
func (u *Usecase) CreateOrganization(ctx context.Context, o entities.Organization) (*entities.Organization, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	o, err := normalizeOrganization(o)
	if err != nil {
		return nil, err
	}
	o.ID = assignID(o.ID)
	return u.repo.CreateOrganization(ctx, o)
}

// Organization returns an organization by id.
func (u *Usecase) Organization(ctx context.Context, id string) (*entities.Organization, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := checkID("id", id); err != nil {
		return nil, err
	}
	return u.repo.GetOrganization(ctx, id)
}

// Organizations returns a page of organizations.
func (u *Usecase) Organizations(ctx context.Context, filter entities.OrganizationFilter) (entities.Page[entities.Organization], error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := firstErr(checkOptionalID("cluster_id", &filter.ClusterID), checkOptionalID("project_id", &filter.ProjectID)); err != nil {
		return entities.Page[entities.Organization]{}, err
	}
	filter.PageRequest = filter.PageRequest.Normalize()
	items, total, err := u.repo.ListOrganizations(ctx, filter)
	if err != nil {
		return entities.Page[entities.Organization]{}, err
	}
	return entities.NewPage(items, filter.PageRequest, total), nil
}

// UpdateOrganization replaces the mutable fields of an organization.
func (u *Usecase) UpdateOrganization(ctx context.Context, o entities.Organization) (*entities.Organization, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := checkID("id", o.ID); err != nil {
		return nil, err
	}
	o, err := normalizeOrganization(o)
	if err != nil {
		return nil, err
	}
	return u.repo.UpdateOrganization(ctx, o)
}

// DeleteOrganization removes an organization nothing references.
func (u *Usecase) DeleteOrganization(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := checkID("id", id); err != nil {
		return err
	}
	return u.repo.DeleteOrganization(ctx, id)
}
