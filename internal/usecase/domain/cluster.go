package domain

import (
	"context"
	"strings"

	"impacttrack/internal/entities"
)

func normalizeCluster(c entities.Cluster) (entities.Cluster, error) {
	c.Name = strings.TrimSpace(c.Name)
	if err := required("name", c.Name); err != nil {
		return c, err
	}

	seen := make(map[string]struct{}, len(c.Districts))
	districts := make([]string, 0, len(c.Districts))
	for _, d := range c.Districts {
		d = strings.TrimSpace(d)
		key := strings.ToLower(d)
		if _, dup := seen[key]; d == "" || dup {
			continue
		}
		seen[key] = struct{}{}
		districts = append(districts, d)
	}
	c.Districts = districts
	return c, nil
}

// CreateCluster validates and stores a new cluster.
func (u *Usecase) CreateCluster(ctx context.Context, c entities.Cluster) (*entities.Cluster, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	c, err := normalizeCluster(c)
	if err != nil {
		return nil, err
	}
	c.ID = assignID(c.ID)
	return u.repo.CreateCluster(ctx, c)
}

// Cluster returns a cluster by id.
func (u *Usecase) Cluster(ctx context.Context, id string) (*entities.Cluster, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := checkID("id", id); err != nil {
		return nil, err
	}
	return u.repo.GetCluster(ctx, id)
}

// Clusters returns a page of clusters.
func (u *Usecase) Clusters(ctx context.Context, filter entities.ClusterFilter) (entities.Page[entities.Cluster], error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	filter.PageRequest = filter.PageRequest.Normalize()
	items, total, err := u.repo.ListClusters(ctx, filter)
	if err != nil {
		return entities.Page[entities.Cluster]{}, err
	}
	return entities.NewPage(items, filter.PageRequest, total), nil
}

// UpdateCluster replaces the mutable fields of a cluster.
func (u *Usecase) UpdateCluster(ctx context.Context, c entities.Cluster) (*entities.Cluster, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := checkID("id", c.ID); err != nil {
		return nil, err
	}
	c, err := normalizeCluster(c)
	if err != nil {
		return nil, err
	}
	return u.repo.UpdateCluster(ctx, c)
}

// DeleteCluster removes a cluster and its memberships.
func (u *Usecase) DeleteCluster(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := checkID("id", id); err != nil {
		return err
	}
	return u.repo.DeleteCluster(ctx, id)
}

// AddClusterMembers attaches organizations to a cluster and reports how many were new.
func (u *Usecase) AddClusterMembers(ctx context.Context, clusterID string, orgIDs []string) (int, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := checkID("cluster_id", clusterID); err != nil {
		return 0, err
	}
	ids, err := checkIDs("organization_ids", orgIDs)
	if err != nil {
		return 0, err
	}
	return u.repo.AddClusterMembers(ctx, clusterID, ids)
}

// RemoveClusterMember detaches an organization from a cluster.
func (u *Usecase) RemoveClusterMember(ctx context.Context, clusterID, orgID string) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := firstErr(checkID("cluster_id", clusterID), checkID("organization_id", orgID)); err != nil {
		return err
	}
	return u.repo.RemoveClusterMember(ctx, clusterID, orgID)
}

// ClusterMembers lists the organizations of a cluster.
func (u *Usecase) ClusterMembers(ctx context.Context, clusterID string) ([]entities.ClusterMember, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := checkID("cluster_id", clusterID); err != nil {
		return nil, err
	}
	return u.repo.ListClusterMembers(ctx, clusterID)
}
