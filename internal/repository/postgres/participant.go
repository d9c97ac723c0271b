package postgres

import (
	"context"
	"fmt"

	"impacttrack/internal/entities"

	"github.com/jackc/pgx/v5"
)

const (
	participantColumns = `id, first_name, last_name, gender, age, date_of_birth, contact, country, district, sub_county, parish, village,
setting, is_pwd, disability_type, is_refugee, is_mother, employment_status, occupation, monthly_income, designation,
organization_id, project_id, cluster_id, created_at, updated_at`
	insertParticipantQuery = `
INSERT INTO participants(id, first_name, last_name, gender, age, date_of_birth, contact, country, district, sub_county, parish, village,
setting, is_pwd, disability_type, is_refugee, is_mother, employment_status, occupation, monthly_income, designation,
organization_id, project_id, cluster_id)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24)
RETURNING ` + participantColumns
	selectParticipantQuery = `SELECT ` + participantColumns + ` FROM participants WHERE id=$1`
	updateParticipantQuery = `
UPDATE participants
SET first_name=$2, last_name=$3, gender=$4, age=$5, date_of_birth=$6, contact=$7, country=$8, district=$9, sub_county=$10,
parish=$11, village=$12, setting=$13, is_pwd=$14, disability_type=$15, is_refugee=$16, is_mother=$17, employment_status=$18,
occupation=$19, monthly_income=$20, designation=$21, organization_id=$22, project_id=$23, cluster_id=$24, updated_at=NOW()
WHERE id=$1
RETURNING ` + participantColumns
	deleteParticipantQuery = `DELETE FROM participants WHERE id=$1`
)

func scanParticipant(row pgx.Row) (entities.Participant, error) {
	var p entities.Participant
	err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Gender, &p.Age, &p.DateOfBirth, &p.Contact, &p.Country,
		&p.District, &p.SubCounty, &p.Parish, &p.Village, &p.Setting, &p.IsPWD, &p.DisabilityType, &p.IsRefugee,
		&p.IsMother, &p.EmploymentStatus, &p.Occupation, &p.MonthlyIncome, &p.Designation, &p.OrganizationID,
		&p.ProjectID, &p.ClusterID, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func participantArgs(in entities.Participant) []any {
	return []any{in.ID, in.FirstName, in.LastName, in.Gender, in.Age, in.DateOfBirth, in.Contact, in.Country,
		in.District, in.SubCounty, in.Parish, in.Village, in.Setting, in.IsPWD, in.DisabilityType, in.IsRefugee,
		in.IsMother, in.EmploymentStatus, in.Occupation, in.MonthlyIncome, in.Designation, in.OrganizationID,
		in.ProjectID, nullable(in.ClusterID)}
}

func participantWhere(filter entities.ParticipantFilter) *where {
	w := &where{}
	w.search(filter.Search, "first_name", "last_name", "contact", "village")
	w.addIf(filter.OrganizationID != "", "organization_id = ?", filter.OrganizationID)
	w.addIf(filter.ProjectID != "", "project_id = ?", filter.ProjectID)
	w.addIf(filter.ClusterID != "", "cluster_id = ?", filter.ClusterID)
	w.like("district", filter.District)
	if filter.Gender != nil {
		w.add("gender = ?", *filter.Gender)
	}
	if filter.IsPWD != nil {
		w.add("is_pwd = ?", *filter.IsPWD)
	}
	return w
}

// CreateParticipant inserts a participant.
func (p *Postgres) CreateParticipant(ctx context.Context, in entities.Participant) (*entities.Participant, error) {
	res, err := scanParticipant(p.db.QueryRow(ctx, insertParticipantQuery, participantArgs(in)...))
	if err != nil {
		p.log.Errorw("failed to insert participant", "error", err, "organization_id", in.OrganizationID)
		return nil, fmt.Errorf("insert participant: %w", mapWriteError(err, entities.ErrParticipantExists))
	}
	p.log.Infow("participant created", "participant_id", res.ID)
	return &res, nil
}

// GetParticipant fetches a participant by id.
func (p *Postgres) GetParticipant(ctx context.Context, id string) (*entities.Participant, error) {
	res, err := scanParticipant(p.db.QueryRow(ctx, selectParticipantQuery, id))
	if err != nil {
		return nil, mapReadError(err, entities.ErrParticipantNotFound)
	}
	return &res, nil
}

// ListParticipants returns a filtered page of participants, newest first.
func (p *Postgres) ListParticipants(ctx context.Context, filter entities.ParticipantFilter) ([]entities.Participant, int64, error) {
	w := participantWhere(filter)

	var total int64
	if err := p.db.QueryRow(ctx, "SELECT COUNT(*) FROM participants"+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count participants: %w", err)
	}

	limit, args := w.page(filter.PageRequest)
	rows, err := p.db.Query(ctx, "SELECT "+participantColumns+" FROM participants"+w.String()+" ORDER BY created_at DESC, id"+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list participants: %w", err)
	}
	defer rows.Close()

	res := make([]entities.Participant, 0)
	for rows.Next() {
		item, err := scanParticipant(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan participant: %w", err)
		}
		res = append(res, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate participants: %w", err)
	}
	return res, total, nil
}

// AllParticipants returns every participant matching the filter, ignoring paging.
func (p *Postgres) AllParticipants(ctx context.Context, filter entities.ParticipantFilter) ([]entities.Participant, error) {
	w := participantWhere(filter)
	rows, err := p.db.Query(ctx, "SELECT "+participantColumns+" FROM participants"+w.String()+" ORDER BY last_name, first_name", w.args...)
	if err != nil {
		return nil, fmt.Errorf("export participants: %w", err)
	}
	defer rows.Close()

	res := make([]entities.Participant, 0)
	for rows.Next() {
		item, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		res = append(res, item)
	}
	return res, rows.Err()
}

// UpdateParticipant overwrites mutable participant fields.
func (p *Postgres) UpdateParticipant(ctx context.Context, in entities.Participant) (*entities.Participant, error) {
	res, err := scanParticipant(p.db.QueryRow(ctx, updateParticipantQuery, participantArgs(in)...))
	if err != nil {
		return nil, fmt.Errorf("update participant: %w", mapUpdateError(err, entities.ErrParticipantNotFound, entities.ErrParticipantExists))
	}
	return &res, nil
}

// DeleteParticipant removes a participant with their skills and attendance.
func (p *Postgres) DeleteParticipant(ctx context.Context, id string) error {
	return p.deleteByID(ctx, deleteParticipantQuery, id, entities.ErrParticipantNotFound)
}
