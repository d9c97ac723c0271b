package handlers_fiber

import (
	"impacttrack/internal/entities"
	"impacttrack/internal/mapper"
	"impacttrack/internal/transport/http/dto"

	"github.com/gofiber/fiber/v2"
)

// CreateCluster registers a new cluster.
func (h *Handler) CreateCluster(c *fiber.Ctx) error {
	var body dto.ClusterRequest
	if err := bind(c, &body); err != nil {
		return h.fail(c, err)
	}
	cl, err := h.uc.CreateCluster(c.UserContext(), mapper.ToCluster(body))
	if err != nil {
		return h.fail(c, err)
	}
	return created(c, cl)
}

// GetCluster returns one cluster with its member count.
func (h *Handler) GetCluster(c *fiber.Ctx) error {
	cl, err := h.uc.Cluster(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return ok(c, cl)
}

// ListClusters returns a page of clusters.
func (h *Handler) ListClusters(c *fiber.Ctx) error {
	req, err := pageRequest(c)
	if err != nil {
		return h.fail(c, err)
	}
	page, err := h.uc.Clusters(c.UserContext(), entities.ClusterFilter{PageRequest: req, Country: c.Query("country")})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.OKPage(page))
}

// UpdateCluster replaces a cluster.
func (h *Handler) UpdateCluster(c *fiber.Ctx) error {
	var body dto.ClusterRequest
	if err := bind(c, &body); err != nil {
		return h.fail(c, err)
	}
	in := mapper.ToCluster(body)
	in.ID = c.Params("id")
	cl, err := h.uc.UpdateCluster(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return ok(c, cl)
}

// DeleteCluster removes a cluster and its memberships.
func (h *Handler) DeleteCluster(c *fiber.Ctx) error {
	if err := h.uc.DeleteCluster(c.UserContext(), c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return deleted(c)
}

// AddClusterMembers attaches organizations to a cluster.
func (h *Handler) AddClusterMembers(c *fiber.Ctx) error {
	var body dto.ClusterMembersRequest
	if err := bind(c, &body); err != nil {
		return h.fail(c, err)
	}
	n, err := h.uc.AddClusterMembers(c.UserContext(), c.Params("id"), body.OrganizationIDs)
	if err != nil {
		return h.fail(c, err)
	}
	return ok(c, dto.MembersAdded{Added: n})
}

// ListClusterMembers returns the organizations of a cluster.
func (h *Handler) ListClusterMembers(c *fiber.Ctx) error {
	members, err := h.uc.ClusterMembers(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return ok(c, members)
}

// RemoveClusterMember detaches one organization from a cluster.
func (h *Handler) RemoveClusterMember(c *fiber.Ctx) error {
	if err := h.uc.RemoveClusterMember(c.UserContext(), c.Params("id"), c.Params("orgId")); err != nil {
		return h.fail(c, err)
	}
	return deleted(c)
}
