package domain

import (
	"context"
	"strings"

	"impacttrack/internal/entities"
)

func normalizeProject(p entities.Project) (entities.Project, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Acronym = strings.TrimSpace(p.Acronym)
	if p.Status == "" {
		p.Status = entities.ProjectActive
	}
	if err := required("name", p.Name); err != nil {
		return p, err
	}
	if !p.Status.Valid() {
		return p, invalid("status %q is not one of active, completed, on_hold", p.Status)
	}
	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(*p.StartDate) {
		return p, invalid("end_date must not be before start_date")
	}
	return p, nil
}

// CreateProject validates and stores a new project.
func (u *Usecase) CreateProject(ctx context.Context, p entities.Project) (*entities.Project, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	p, err := normalizeProject(p)
	if err != nil {
		u.log.Infow("project rejected", "error", err)
		return nil, err
	}
	p.ID = assignID(p.ID)
	return u.repo.CreateProject(ctx, p)
}

// Project returns a project by id.
func (u *Usecase) Project(ctx context.Context, id string) (*entities.Project, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := checkID("id", id); err != nil {
		return nil, err
	}
	return u.repo.GetProject(ctx, id)
}

// Projects returns a page of projects.
func (u *Usecase) Projects(ctx context.Context, filter entities.ProjectFilter) (entities.Page[entities.Project], error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if filter.Status != nil && !filter.Status.Valid() {
		return entities.Page[entities.Project]{}, invalid("status %q is not a project status", *filter.Status)
	}
	filter.PageRequest = filter.PageRequest.Normalize()
	items, total, err := u.repo.ListProjects(ctx, filter)
	if err != nil {
		return entities.Page[entities.Project]{}, err
	}
	return entities.NewPage(items, filter.PageRequest, total), nil
}

// UpdateProject replaces the mutable fields of a project.
func (u *Usecase) UpdateProject(ctx context.Context, p entities.Project) (*entities.Project, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := checkID("id", p.ID); err != nil {
		return nil, err
	}
	p, err := normalizeProject(p)
	if err != nil {
		return nil, err
	}
	return u.repo.UpdateProject(ctx, p)
}

// DeleteProject removes a project nothing references.
func (u *Usecase) DeleteProject(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := checkID("id", id); err != nil {
		return err
	}
	return u.repo.DeleteProject(ctx, id)
}
