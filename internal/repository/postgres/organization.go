package postgres

import (
	"context"
	"fmt"

	"impacttrack/internal/entities"

	"github.com/jackc/pgx/v5"
)

const (
	organizationColumns     = `o.id, o.name, o.acronym, o.cluster_id, o.project_id, o.country, o.district, o.sub_county, o.operation_address, o.created_at, o.updated_at`
	insertOrganizationQuery = `
INSERT INTO organizations AS o (id, name, acronym, cluster_id, project_id, country, district, sub_county, operation_address)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
RETURNING ` + organizationColumns
	insertOrgMembershipQuery = `INSERT INTO cluster_members(cluster_id, organization_id) VALUES ($1,$2) ON CONFLICT DO NOTHING`
	selectOrganizationQuery  = `SELECT ` + organizationColumns + ` FROM organizations o WHERE o.id=$1`
	updateOrganizationQuery  = `
UPDATE organizations AS o
SET name=$2, acronym=$3, cluster_id=$4, project_id=$5, country=$6, district=$7, sub_county=$8, operation_address=$9, updated_at=NOW()
WHERE o.id=$1
RETURNING ` + organizationColumns
	deleteOrganizationQuery = `DELETE FROM organizations WHERE id=$1`
)

func scanOrganization(row pgx.Row) (entities.Organization, error) {
	var o entities.Organization
	err := row.Scan(&o.ID, &o.Name, &o.Acronym, &o.ClusterID, &o.ProjectID, &o.Country, &o.District, &o.SubCounty, &o.OperationAddress, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

// CreateOrganization inserts an organization and, when it names a cluster,
// records the membership in the same transaction.
func (p *Postgres) CreateOrganization(ctx context.Context, in entities.Organization) (*entities.Organization, error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	res, err := scanOrganization(tx.QueryRow(ctx, insertOrganizationQuery,
		in.ID, in.Name, in.Acronym, nullable(in.ClusterID), nullable(in.ProjectID),
		in.Country, in.District, in.SubCounty, in.OperationAddress))
	if err != nil {
		p.log.Errorw("failed to insert organization", "error", err, "acronym", in.Acronym)
		return nil, fmt.Errorf("insert organization: %w", mapWriteError(err, entities.ErrOrganizationExists))
	}

	if res.ClusterID != nil {
		if _, err := tx.Exec(ctx, insertOrgMembershipQuery, *res.ClusterID, res.ID); err != nil {
			return nil, fmt.Errorf("insert membership: %w", mapWriteError(err, nil))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	p.log.Infow("organization created", "organization_id", res.ID)
	return &res, nil
}

// GetOrganization fetches an organization by id.
func (p *Postgres) GetOrganization(ctx context.Context, id string) (*entities.Organization, error) {
	res, err := scanOrganization(p.db.QueryRow(ctx, selectOrganizationQuery, id))
	if err != nil {
		return nil, mapReadError(err, entities.ErrOrganizationNotFound)
	}
	return &res, nil
}

// ListOrganizations returns a filtered page of organizations.
func (p *Postgres) ListOrganizations(ctx context.Context, filter entities.OrganizationFilter) ([]entities.Organization, int64, error) {
	w := &where{}
	w.search(filter.Search, "o.name", "o.acronym")
	w.addIf(filter.ClusterID != "", "o.cluster_id = ?", filter.ClusterID)
	w.addIf(filter.ProjectID != "", "o.project_id = ?", filter.ProjectID)
	w.like("o.district", filter.District)

	var total int64
	if err := p.db.QueryRow(ctx, "SELECT COUNT(*) FROM organizations o"+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count organizations: %w", err)
	}

	limit, args := w.page(filter.PageRequest)
	rows, err := p.db.Query(ctx, "SELECT "+organizationColumns+" FROM organizations o"+w.String()+" ORDER BY o.created_at DESC"+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list organizations: %w", err)
	}
	defer rows.Close()

	res := make([]entities.Organization, 0)
	for rows.Next() {
		item, err := scanOrganization(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan organization: %w", err)
		}
		res = append(res, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate organizations: %w", err)
	}
	return res, total, nil
}

// UpdateOrganization overwrites mutable organization fields.
func (p *Postgres) UpdateOrganization(ctx context.Context, in entities.Organization) (*entities.Organization, error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	res, err := scanOrganization(tx.QueryRow(ctx, updateOrganizationQuery,
		in.ID, in.Name, in.Acronym, nullable(in.ClusterID), nullable(in.ProjectID),
		in.Country, in.District, in.SubCounty, in.OperationAddress))
	if err != nil {
		return nil, fmt.Errorf("update organization: %w", mapUpdateError(err, entities.ErrOrganizationNotFound, entities.ErrOrganizationExists))
	}
	if res.ClusterID != nil {
		if _, err := tx.Exec(ctx, insertOrgMembershipQuery, *res.ClusterID, res.ID); err != nil {
			return nil, fmt.Errorf("insert membership: %w", mapWriteError(err, nil))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &res, nil
}

// DeleteOrganization removes an organization that no participant, activity or VSLA references.
func (p *Postgres) DeleteOrganization(ctx context.Context, id string) error {
	return p.deleteByID(ctx, deleteOrganizationQuery, id, entities.ErrOrganizationNotFound)
}
