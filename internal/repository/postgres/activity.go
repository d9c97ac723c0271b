package postgres

import (
	"context"
	"fmt"

	"impacttrack/internal/entities"

	"github.com/jackc/pgx/v5"
)

const (
	activityColumns       = `a.id, a.title, a.type, a.status, a.description, a.venue, a.start_date, a.end_date, a.budget, a.organization_id, a.project_id, a.cluster_id, a.created_at, a.updated_at`
	activityAttendeeCount = `(SELECT COUNT(*) FROM activity_participants ap WHERE ap.activity_id = a.id AND ap.attended)`
	insertActivityQuery   = `
INSERT INTO activities AS a (id, title, type, status, description, venue, start_date, end_date, budget, organization_id, project_id, cluster_id)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
RETURNING ` + activityColumns + `, 0::bigint`
	selectActivityQuery = `SELECT ` + activityColumns + `, ` + activityAttendeeCount + ` FROM activities a WHERE a.id=$1`
	updateActivityQuery = `
UPDATE activities AS a
SET title=$2, type=$3, status=$4, description=$5, venue=$6, start_date=$7, end_date=$8, budget=$9,
organization_id=$10, project_id=$11, cluster_id=$12, updated_at=NOW()
WHERE a.id=$1
RETURNING ` + activityColumns + `, ` + activityAttendeeCount
	deleteActivityQuery = `DELETE FROM activities WHERE id=$1`

	conceptNoteColumns     = `id, activity_id, title, charge_code, content, budget, prepared_by, created_at, updated_at`
	upsertConceptNoteQuery = `
INSERT INTO concept_notes(id, activity_id, title, charge_code, content, budget, prepared_by)
VALUES ($1,$2,$3,$4,$5,$6,$7)
ON CONFLICT (activity_id) DO UPDATE
SET title=EXCLUDED.title, charge_code=EXCLUDED.charge_code, content=EXCLUDED.content,
    budget=EXCLUDED.budget, prepared_by=EXCLUDED.prepared_by, updated_at=NOW()
RETURNING ` + conceptNoteColumns
	selectConceptNoteQuery = `SELECT ` + conceptNoteColumns + ` FROM concept_notes WHERE activity_id=$1`
	deleteConceptNoteQuery = `DELETE FROM concept_notes WHERE activity_id=$1`
)

func scanActivity(row pgx.Row) (entities.Activity, error) {
	var a entities.Activity
	err := row.Scan(&a.ID, &a.Title, &a.Type, &a.Status, &a.Description, &a.Venue, &a.StartDate, &a.EndDate,
		&a.Budget, &a.OrganizationID, &a.ProjectID, &a.ClusterID, &a.CreatedAt, &a.UpdatedAt, &a.AttendeeCount)
	return a, err
}

func scanConceptNote(row pgx.Row) (entities.ConceptNote, error) {
	var n entities.ConceptNote
	err := row.Scan(&n.ID, &n.ActivityID, &n.Title, &n.ChargeCode, &n.Content, &n.Budget, &n.PreparedBy, &n.CreatedAt, &n.UpdatedAt)
	return n, err
}

// CreateActivity inserts an activity.
func (p *Postgres) CreateActivity(ctx context.Context, in entities.Activity) (*entities.Activity, error) {
	res, err := scanActivity(p.db.QueryRow(ctx, insertActivityQuery,
		in.ID, in.Title, in.Type, in.Status, in.Description, in.Venue, in.StartDate, in.EndDate,
		in.Budget, in.OrganizationID, in.ProjectID, nullable(in.ClusterID)))
	if err != nil {
		p.log.Errorw("failed to insert activity", "error", err, "title", in.Title)
		return nil, fmt.Errorf("insert activity: %w", mapWriteError(err, nil))
	}
	p.log.Infow("activity created", "activity_id", res.ID)
	return &res, nil
}

// GetActivity fetches an activity with its attendee count.
func (p *Postgres) GetActivity(ctx context.Context, id string) (*entities.Activity, error) {
	res, err := scanActivity(p.db.QueryRow(ctx, selectActivityQuery, id))
	if err != nil {
		return nil, mapReadError(err, entities.ErrActivityNotFound)
	}
	return &res, nil
}

// ListActivities returns a filtered page of activities ordered by start date.
func (p *Postgres) ListActivities(ctx context.Context, filter entities.ActivityFilter) ([]entities.Activity, int64, error) {
	w := &where{}
	w.search(filter.Search, "a.title", "a.venue")
	w.addIf(filter.OrganizationID != "", "a.organization_id = ?", filter.OrganizationID)
	w.addIf(filter.ProjectID != "", "a.project_id = ?", filter.ProjectID)
	w.addIf(filter.ClusterID != "", "a.cluster_id = ?", filter.ClusterID)
	if filter.Status != nil {
		w.add("a.status = ?", *filter.Status)
	}
	if filter.Type != nil {
		w.add("a.type = ?", *filter.Type)
	}
	if filter.From != nil {
		w.add("a.start_date >= ?", *filter.From)
	}
	if filter.To != nil {
		w.add("a.start_date < ?", *filter.To)
	}

	var total int64
	if err := p.db.QueryRow(ctx, "SELECT COUNT(*) FROM activities a"+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count activities: %w", err)
	}

	limit, args := w.page(filter.PageRequest)
	query := "SELECT " + activityColumns + ", " + activityAttendeeCount + " FROM activities a" + w.String() + " ORDER BY a.start_date DESC, a.id" + limit
	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	res := make([]entities.Activity, 0)
	for rows.Next() {
		item, err := scanActivity(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan activity: %w", err)
		}
		res = append(res, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate activities: %w", err)
	}
	return res, total, nil
}

// UpdateActivity overwrites mutable activity fields.
func (p *Postgres) UpdateActivity(ctx context.Context, in entities.Activity) (*entities.Activity, error) {
	res, err := scanActivity(p.db.QueryRow(ctx, updateActivityQuery,
		in.ID, in.Title, in.Type, in.Status, in.Description, in.Venue, in.StartDate, in.EndDate,
		in.Budget, in.OrganizationID, in.ProjectID, nullable(in.ClusterID)))
	if err != nil {
		return nil, fmt.Errorf("update activity: %w", mapUpdateError(err, entities.ErrActivityNotFound, nil))
	}
	return &res, nil
}

// DeleteActivity removes an activity with its register and concept note.
func (p *Postgres) DeleteActivity(ctx context.Context, id string) error {
	return p.deleteByID(ctx, deleteActivityQuery, id, entities.ErrActivityNotFound)
}

// UpsertConceptNote creates or replaces the concept note of an activity.
func (p *Postgres) UpsertConceptNote(ctx context.Context, in entities.ConceptNote) (*entities.ConceptNote, error) {
	res, err := scanConceptNote(p.db.QueryRow(ctx, upsertConceptNoteQuery,
		in.ID, in.ActivityID, in.Title, in.ChargeCode, in.Content, in.Budget, in.PreparedBy))
	if err != nil {
		if isForeignKey(err) {
			return nil, entities.ErrActivityNotFound
		}
		return nil, fmt.Errorf("upsert concept note: %w", mapWriteError(err, nil))
	}
	p.log.Infow("concept note saved", "activity_id", res.ActivityID)
	return &res, nil
}

// GetConceptNote fetches the concept note of an activity.
func (p *Postgres) GetConceptNote(ctx context.Context, activityID string) (*entities.ConceptNote, error) {
	res, err := scanConceptNote(p.db.QueryRow(ctx, selectConceptNoteQuery, activityID))
	if err != nil {
		return nil, mapReadError(err, entities.ErrConceptNoteNotFound)
	}
	return &res, nil
}

// DeleteConceptNote removes the concept note of an activity.
func (p *Postgres) DeleteConceptNote(ctx context.Context, activityID string) error {
	return p.deleteByID(ctx, deleteConceptNoteQuery, activityID, entities.ErrConceptNoteNotFound)
}
