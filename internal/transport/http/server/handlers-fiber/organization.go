package handlers_fiber

import (
	"impacttrack/internal/entities"
	"impacttrack/internal/mapper"
	"impacttrack/internal/transport/http/dto"

	"github.com/gofiber/fiber/v2"
)

// CreateOrganization registers an implementing partner.
func (h *Handler) CreateOrganization(c *fiber.Ctx) error {
	var body dto.OrganizationRequest
	if err := bind(c, &body); err != nil {
		return h.fail(c, err)
	}
	o, err := h.uc.CreateOrganization(c.UserContext(), mapper.ToOrganization(body))
	if err != nil {
		return h.fail(c, err)
	}
	return created(c, o)
}

// GetOrganization returns one organization.
func (h *Handler) GetOrganization(c *fiber.Ctx) error {
	o, err := h.uc.Organization(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return ok(c, o)
}

// ListOrganizations returns a page of organizations.
func (h *Handler) ListOrganizations(c *fiber.Ctx) error {
	req, err := pageRequest(c)
	if err != nil {
		return h.fail(c, err)
	}
	page, err := h.uc.Organizations(c.UserContext(), entities.OrganizationFilter{
		PageRequest: req,
		ClusterID:   c.Query("cluster_id"),
		ProjectID:   c.Query("project_id"),
		District:    c.Query("district"),
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.OKPage(page))
}

// UpdateOrganization replaces an organization.
func (h *Handler) UpdateOrganization(c *fiber.Ctx) error {
	var body dto.OrganizationRequest
	if err := bind(c, &body); err != nil {
		return h.fail(c, err)
	}
	in := mapper.ToOrganization(body)
	in.ID = c.Params("id")
	o, err := h.uc.UpdateOrganization(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return ok(c, o)
}

// DeleteOrganization removes an organization nothing references.
func (h *Handler) DeleteOrganization(c *fiber.Ctx) error {
	if err := h.uc.DeleteOrganization(c.UserContext(), c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return deleted(c)
}
