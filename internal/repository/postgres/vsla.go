package postgres

import (
	"context"
	"fmt"

	"impacttrack/internal/entities"

	"github.com/jackc/pgx/v5"
)

const (
	vslaColumns = `id, name, code, organization_id, project_id, cluster_id, country, district, sub_county, parish, village,
meeting_frequency, status, total_members, female_members, male_members, total_savings, total_loans, formed_on, created_at, updated_at`
	insertVSLAQuery = `
INSERT INTO vslas(id, name, code, organization_id, project_id, cluster_id, country, district, sub_county, parish, village,
meeting_frequency, status, total_members, female_members, male_members, total_savings, total_loans, formed_on)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
RETURNING ` + vslaColumns
	selectVSLAQuery = `SELECT ` + vslaColumns + ` FROM vslas WHERE id=$1`
	updateVSLAQuery = `
UPDATE vslas
SET name=$2, code=$3, organization_id=$4, project_id=$5, cluster_id=$6, country=$7, district=$8, sub_county=$9,
parish=$10, village=$11, meeting_frequency=$12, status=$13, total_members=$14, female_members=$15, male_members=$16,
total_savings=$17, total_loans=$18, formed_on=$19, updated_at=NOW()
WHERE id=$1
RETURNING ` + vslaColumns
	deleteVSLAQuery = `DELETE FROM vslas WHERE id=$1`
	vslaTotalsQuery = `
SELECT COUNT(*), COALESCE(SUM(total_members),0), COALESCE(SUM(female_members),0), COALESCE(SUM(male_members),0),
       COALESCE(SUM(total_savings),0)::float8, COALESCE(SUM(total_loans),0)::float8
FROM vslas`
)

func scanVSLA(row pgx.Row) (entities.VSLA, error) {
	var v entities.VSLA
	err := row.Scan(&v.ID, &v.Name, &v.Code, &v.OrganizationID, &v.ProjectID, &v.ClusterID, &v.Country, &v.District,
		&v.SubCounty, &v.Parish, &v.Village, &v.MeetingFrequency, &v.Status, &v.TotalMembers, &v.FemaleMembers,
		&v.MaleMembers, &v.TotalSavings, &v.TotalLoans, &v.FormedOn, &v.CreatedAt, &v.UpdatedAt)
	return v, err
}

func vslaArgs(in entities.VSLA) []any {
	return []any{in.ID, in.Name, in.Code, in.OrganizationID, in.ProjectID, nullable(in.ClusterID), in.Country,
		in.District, in.SubCounty, in.Parish, in.Village, in.MeetingFrequency, in.Status, in.TotalMembers,
		in.FemaleMembers, in.MaleMembers, in.TotalSavings, in.TotalLoans, in.FormedOn}
}

func vslaWhere(filter entities.VSLAFilter) *where {
	w := &where{}
	w.search(filter.Search, "name", "code", "village")
	w.addIf(filter.OrganizationID != "", "organization_id = ?", filter.OrganizationID)
	w.addIf(filter.ProjectID != "", "project_id = ?", filter.ProjectID)
	w.addIf(filter.ClusterID != "", "cluster_id = ?", filter.ClusterID)
	w.like("district", filter.District)
	if filter.Status != nil {
		w.add("status = ?", *filter.Status)
	}
	return w
}

// CreateVSLA inserts a savings group.
func (p *Postgres) CreateVSLA(ctx context.Context, in entities.VSLA) (*entities.VSLA, error) {
	res, err := scanVSLA(p.db.QueryRow(ctx, insertVSLAQuery, vslaArgs(in)...))
	if err != nil {
		p.log.Errorw("failed to insert vsla", "error", err, "code", in.Code)
		return nil, fmt.Errorf("insert vsla: %w", mapWriteError(err, entities.ErrVSLAExists))
	}
	p.log.Infow("vsla created", "vsla_id", res.ID)
	return &res, nil
}

// GetVSLA fetches a savings group by id.
func (p *Postgres) GetVSLA(ctx context.Context, id string) (*entities.VSLA, error) {
	res, err := scanVSLA(p.db.QueryRow(ctx, selectVSLAQuery, id))
	if err != nil {
		return nil, mapReadError(err, entities.ErrVSLANotFound)
	}
	return &res, nil
}

// ListVSLAs returns a filtered page of savings groups.
func (p *Postgres) ListVSLAs(ctx context.Context, filter entities.VSLAFilter) ([]entities.VSLA, int64, error) {
	w := vslaWhere(filter)

	var total int64
	if err := p.db.QueryRow(ctx, "SELECT COUNT(*) FROM vslas"+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count vslas: %w", err)
	}

	limit, args := w.page(filter.PageRequest)
	rows, err := p.db.Query(ctx, "SELECT "+vslaColumns+" FROM vslas"+w.String()+" ORDER BY created_at DESC, id"+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list vslas: %w", err)
	}
	defer rows.Close()

	res := make([]entities.VSLA, 0)
	for rows.Next() {
		item, err := scanVSLA(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan vsla: %w", err)
		}
		res = append(res, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate vslas: %w", err)
	}
	return res, total, nil
}

// AllVSLAs returns every savings group matching the filter, ignoring paging.
func (p *Postgres) AllVSLAs(ctx context.Context, filter entities.VSLAFilter) ([]entities.VSLA, error) {
	w := vslaWhere(filter)
	rows, err := p.db.Query(ctx, "SELECT "+vslaColumns+" FROM vslas"+w.String()+" ORDER BY code", w.args...)
	if err != nil {
		return nil, fmt.Errorf("export vslas: %w", err)
	}
	defer rows.Close()

	res := make([]entities.VSLA, 0)
	for rows.Next() {
		item, err := scanVSLA(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vsla: %w", err)
		}
		res = append(res, item)
	}
	return res, rows.Err()
}

// UpdateVSLA overwrites mutable savings group fields.
func (p *Postgres) UpdateVSLA(ctx context.Context, in entities.VSLA) (*entities.VSLA, error) {
	res, err := scanVSLA(p.db.QueryRow(ctx, updateVSLAQuery, vslaArgs(in)...))
	if err != nil {
		return nil, fmt.Errorf("update vsla: %w", mapUpdateError(err, entities.ErrVSLANotFound, entities.ErrVSLAExists))
	}
	return &res, nil
}

// DeleteVSLA removes a savings group.
func (p *Postgres) DeleteVSLA(ctx context.Context, id string) error {
	return p.deleteByID(ctx, deleteVSLAQuery, id, entities.ErrVSLANotFound)
}

// VSLATotals sums members and currency totals over the filtered groups.
func (p *Postgres) VSLATotals(ctx context.Context, filter entities.VSLAFilter) (entities.VSLATotals, error) {
	w := vslaWhere(filter)
	var t entities.VSLATotals
	err := p.db.QueryRow(ctx, vslaTotalsQuery+w.String(), w.args...).
		Scan(&t.Groups, &t.TotalMembers, &t.FemaleMembers, &t.MaleMembers, &t.TotalSavings, &t.TotalLoans)
	if err != nil {
		return entities.VSLATotals{}, fmt.Errorf("vsla totals: %w", err)
	}
	return t, nil
}
