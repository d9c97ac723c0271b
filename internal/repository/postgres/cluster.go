package postgres

import (
	"context"
	"fmt"

	"impacttrack/internal/entities"

	"github.com/jackc/pgx/v5"
)

const (
	clusterColumns     = `c.id, c.name, c.about, c.country, c.districts, c.created_at, c.updated_at`
	clusterMemberCount = `(SELECT COUNT(*) FROM cluster_members m WHERE m.cluster_id = c.id)`
	insertClusterQuery = `
INSERT INTO clusters AS c (id, name, about, country, districts)
VALUES ($1,$2,$3,$4,$5)
RETURNING ` + clusterColumns + `, 0::bigint`
	selectClusterQuery = `SELECT ` + clusterColumns + `, ` + clusterMemberCount + ` FROM clusters c WHERE c.id=$1`
	updateClusterQuery = `
UPDATE clusters AS c
SET name=$2, about=$3, country=$4, districts=$5, updated_at=NOW()
WHERE c.id=$1
RETURNING ` + clusterColumns + `, ` + clusterMemberCount
	deleteClusterQuery  = `DELETE FROM clusters WHERE id=$1`
	clusterExistsQuery  = `SELECT EXISTS(SELECT 1 FROM clusters WHERE id=$1)`
	insertMemberQuery   = `INSERT INTO cluster_members(cluster_id, organization_id) VALUES ($1,$2) ON CONFLICT DO NOTHING`
	syncMemberOrgQuery  = `UPDATE organizations SET cluster_id=$1, updated_at=NOW() WHERE id=$2 AND cluster_id IS NULL`
	deleteMemberQuery   = `DELETE FROM cluster_members WHERE cluster_id=$1 AND organization_id=$2`
	clearMemberOrgQuery = `UPDATE organizations SET cluster_id=NULL, updated_at=NOW() WHERE id=$2 AND cluster_id=$1`
	selectMembersQuery  = `
SELECT m.cluster_id, m.joined_at, ` + organizationColumns + `
FROM cluster_members m
JOIN organizations o ON o.id = m.organization_id
WHERE m.cluster_id=$1
ORDER BY o.name`
)

func scanCluster(row pgx.Row) (entities.Cluster, error) {
	var c entities.Cluster
	err := row.Scan(&c.ID, &c.Name, &c.About, &c.Country, &c.Districts, &c.CreatedAt, &c.UpdatedAt, &c.MemberCount)
	if c.Districts == nil {
		c.Districts = make([]string, 0)
	}
	return c, err
}

func districtsOrEmpty(d []string) []string {
	if d == nil {
		return []string{}
	}
	return d
}

// CreateCluster inserts a cluster.
func (p *Postgres) CreateCluster(ctx context.Context, in entities.Cluster) (*entities.Cluster, error) {
	res, err := scanCluster(p.db.QueryRow(ctx, insertClusterQuery, in.ID, in.Name, in.About, in.Country, districtsOrEmpty(in.Districts)))
	if err != nil {
		p.log.Errorw("failed to insert cluster", "error", err, "name", in.Name)
		return nil, fmt.Errorf("insert cluster: %w", mapWriteError(err, entities.ErrClusterExists))
	}
	p.log.Infow("cluster created", "cluster_id", res.ID)
	return &res, nil
}

// GetCluster fetches a cluster with its member count.
func (p *Postgres) GetCluster(ctx context.Context, id string) (*entities.Cluster, error) {
	res, err := scanCluster(p.db.QueryRow(ctx, selectClusterQuery, id))
	if err != nil {
		return nil, mapReadError(err, entities.ErrClusterNotFound)
	}
	return &res, nil
}

// ListClusters returns a filtered page of clusters.
func (p *Postgres) ListClusters(ctx context.Context, filter entities.ClusterFilter) ([]entities.Cluster, int64, error) {
	w := &where{}
	w.search(filter.Search, "c.name", "c.about")
	w.like("c.country", filter.Country)

	var total int64
	if err := p.db.QueryRow(ctx, "SELECT COUNT(*) FROM clusters c"+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count clusters: %w", err)
	}

	limit, args := w.page(filter.PageRequest)
	query := "SELECT " + clusterColumns + ", " + clusterMemberCount + " FROM clusters c" + w.String() + " ORDER BY c.created_at DESC" + limit
	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list clusters: %w", err)
	}
	defer rows.Close()

	res := make([]entities.Cluster, 0)
	for rows.Next() {
		item, err := scanCluster(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan cluster: %w", err)
		}
		res = append(res, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate clusters: %w", err)
	}
	return res, total, nil
}

// UpdateCluster overwrites mutable cluster fields.
func (p *Postgres) UpdateCluster(ctx context.Context, in entities.Cluster) (*entities.Cluster, error) {
	res, err := scanCluster(p.db.QueryRow(ctx, updateClusterQuery, in.ID, in.Name, in.About, in.Country, districtsOrEmpty(in.Districts)))
	if err != nil {
		return nil, fmt.Errorf("update cluster: %w", mapUpdateError(err, entities.ErrClusterNotFound, entities.ErrClusterExists))
	}
	return &res, nil
}

// DeleteCluster removes a cluster; memberships cascade and references are nulled.
func (p *Postgres) DeleteCluster(ctx context.Context, id string) error {
	return p.deleteByID(ctx, deleteClusterQuery, id, entities.ErrClusterNotFound)
}

// AddClusterMembers attaches organizations to a cluster idempotently and
// returns how many memberships were newly created. Organizations without a
// home cluster adopt this one.
func (p *Postgres) AddClusterMembers(ctx context.Context, clusterID string, orgIDs []string) (int, error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var exists bool
	if err := tx.QueryRow(ctx, clusterExistsQuery, clusterID).Scan(&exists); err != nil {
		return 0, fmt.Errorf("cluster lookup: %w", mapReadError(err, entities.ErrClusterNotFound))
	}
	if !exists {
		return 0, entities.ErrClusterNotFound
	}

	added := 0
	for _, orgID := range orgIDs {
		tag, err := tx.Exec(ctx, insertMemberQuery, clusterID, orgID)
		if err != nil {
			return 0, fmt.Errorf("insert member: %w", mapWriteError(err, nil))
		}
		added += int(tag.RowsAffected())
		if _, err := tx.Exec(ctx, syncMemberOrgQuery, clusterID, orgID); err != nil {
			return 0, fmt.Errorf("sync member organization: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	p.log.Infow("cluster members added", "cluster_id", clusterID, "requested", len(orgIDs), "added", added)
	return added, nil
}

// RemoveClusterMember detaches an organization from a cluster.
func (p *Postgres) RemoveClusterMember(ctx context.Context, clusterID, orgID string) error {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, deleteMemberQuery, clusterID, orgID)
	if err != nil {
		return fmt.Errorf("delete member: %w", mapUpdateError(err, entities.ErrMemberNotFound, nil))
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrMemberNotFound
	}
	if _, err := tx.Exec(ctx, clearMemberOrgQuery, clusterID, orgID); err != nil {
		return fmt.Errorf("clear member organization: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}
	p.log.Infow("cluster member removed", "cluster_id", clusterID, "organization_id", orgID)
	return nil
}

// ListClusterMembers returns the organizations in a cluster.
func (p *Postgres) ListClusterMembers(ctx context.Context, clusterID string) ([]entities.ClusterMember, error) {
	if _, err := p.GetCluster(ctx, clusterID); err != nil {
		return nil, err
	}

	rows, err := p.db.Query(ctx, selectMembersQuery, clusterID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	res := make([]entities.ClusterMember, 0)
	for rows.Next() {
		var m entities.ClusterMember
		o := &m.Organization
		if err := rows.Scan(&m.ClusterID, &m.JoinedAt,
			&o.ID, &o.Name, &o.Acronym, &o.ClusterID, &o.ProjectID, &o.Country, &o.District, &o.SubCounty, &o.OperationAddress, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		res = append(res, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate members: %w", err)
	}
	return res, nil
}
