package postgres

import (
	"context"
	"errors"
	"fmt"

	"impacttrack/internal/entities"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	projectColumns     = `id, name, acronym, description, status, start_date, end_date, created_at, updated_at`
	insertProjectQuery = `
INSERT INTO projects(id, name, acronym, description, status, start_date, end_date)
VALUES ($1,$2,$3,$4,$5,$6,$7)
RETURNING ` + projectColumns
	selectProjectQuery = `SELECT ` + projectColumns + ` FROM projects WHERE id=$1`
	updateProjectQuery = `
UPDATE projects
SET name=$2, acronym=$3, description=$4, status=$5, start_date=$6, end_date=$7, updated_at=NOW()
WHERE id=$1
RETURNING ` + projectColumns
	deleteProjectQuery = `DELETE FROM projects WHERE id=$1`
)

func scanProject(row pgx.Row) (entities.Project, error) {
	var p entities.Project
	err := row.Scan(&p.ID, &p.Name, &p.Acronym, &p.Description, &p.Status, &p.StartDate, &p.EndDate, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// CreateProject inserts a project.
func (p *Postgres) CreateProject(ctx context.Context, in entities.Project) (*entities.Project, error) {
	res, err := scanProject(p.db.QueryRow(ctx, insertProjectQuery,
		in.ID, in.Name, in.Acronym, in.Description, in.Status, in.StartDate, in.EndDate))
	if err != nil {
		p.log.Errorw("failed to insert project", "error", err, "name", in.Name)
		return nil, fmt.Errorf("insert project: %w", mapWriteError(err, entities.ErrProjectExists))
	}
	p.log.Infow("project created", "project_id", res.ID)
	return &res, nil
}

// GetProject fetches a project by id.
func (p *Postgres) GetProject(ctx context.Context, id string) (*entities.Project, error) {
	res, err := scanProject(p.db.QueryRow(ctx, selectProjectQuery, id))
	if err != nil {
		return nil, mapReadError(err, entities.ErrProjectNotFound)
	}
	return &res, nil
}

// ListProjects returns a filtered page of projects and the total match count.
func (p *Postgres) ListProjects(ctx context.Context, filter entities.ProjectFilter) ([]entities.Project, int64, error) {
	w := &where{}
	w.search(filter.Search, "name", "acronym")
	if filter.Status != nil {
		w.add("status = ?", *filter.Status)
	}

	var total int64
	if err := p.db.QueryRow(ctx, "SELECT COUNT(*) FROM projects"+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count projects: %w", err)
	}

	limit, args := w.page(filter.PageRequest)
	rows, err := p.db.Query(ctx, "SELECT "+projectColumns+" FROM projects"+w.String()+" ORDER BY created_at DESC"+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	res := make([]entities.Project, 0)
	for rows.Next() {
		item, err := scanProject(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan project: %w", err)
		}
		res = append(res, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate projects: %w", err)
	}
	return res, total, nil
}

// UpdateProject overwrites mutable project fields.
func (p *Postgres) UpdateProject(ctx context.Context, in entities.Project) (*entities.Project, error) {
	res, err := scanProject(p.db.QueryRow(ctx, updateProjectQuery,
		in.ID, in.Name, in.Acronym, in.Description, in.Status, in.StartDate, in.EndDate))
	if err != nil {
		return nil, fmt.Errorf("update project: %w", mapUpdateError(err, entities.ErrProjectNotFound, entities.ErrProjectExists))
	}
	return &res, nil
}

// DeleteProject removes a project. Projects still referenced by participants,
// activities or VSLAs cannot be deleted.
func (p *Postgres) DeleteProject(ctx context.Context, id string) error {
	return p.deleteByID(ctx, deleteProjectQuery, id, entities.ErrProjectNotFound)
}

func (p *Postgres) deleteByID(ctx context.Context, query, id string, notFound error) error {
	tag, err := p.db.Exec(ctx, query, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return fmt.Errorf("%w by %s", entities.ErrInUse, pgErr.TableName)
		}
		return fmt.Errorf("delete: %w", mapUpdateError(err, notFound, nil))
	}
	if tag.RowsAffected() == 0 {
		return notFound
	}
	p.log.Infow("record deleted", "id", id, "kind", notFound.Error())
	return nil
}
