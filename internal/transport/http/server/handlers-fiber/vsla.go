package handlers_fiber

import (
	"impacttrack/internal/entities"
	"impacttrack/internal/mapper"
	"impacttrack/internal/transport/http/dto"

	"github.com/gofiber/fiber/v2"
)

// CreateVSLA registers a savings group.
func (h *Handler) CreateVSLA(c *fiber.Ctx) error {
	var body dto.VSLARequest
	if err := bind(c, &body); err != nil {
		return h.fail(c, err)
	}
	in, err := mapper.ToVSLA(body)
	if err != nil {
		return h.fail(c, err)
	}
	v, err := h.uc.CreateVSLA(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return created(c, v)
}

// GetVSLA returns one savings group.
func (h *Handler) GetVSLA(c *fiber.Ctx) error {
	v, err := h.uc.VSLA(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return ok(c, v)
}

func vslaFilter(c *fiber.Ctx) (entities.VSLAFilter, error) {
	req, err := pageRequest(c)
	if err != nil {
		return entities.VSLAFilter{}, err
	}
	return entities.VSLAFilter{
		PageRequest:    req,
		OrganizationID: c.Query("organization_id"),
		ProjectID:      c.Query("project_id"),
		ClusterID:      c.Query("cluster_id"),
		District:       c.Query("district"),
		Status:         enum[entities.VSLAStatus](c, "status"),
	}, nil
}

// ListVSLAs returns a page of savings groups.
func (h *Handler) ListVSLAs(c *fiber.Ctx) error {
	filter, err := vslaFilter(c)
	if err != nil {
		return h.fail(c, err)
	}
	page, err := h.uc.VSLAs(c.UserContext(), filter)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.OKPage(page))
}

// UpdateVSLA replaces a savings group.
func (h *Handler) UpdateVSLA(c *fiber.Ctx) error {
	var body dto.VSLARequest
	if err := bind(c, &body); err != nil {
		return h.fail(c, err)
	}
	in, err := mapper.ToVSLA(body)
	if err != nil {
		return h.fail(c, err)
	}
	in.ID = c.Params("id")
	v, err := h.uc.UpdateVSLA(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return ok(c, v)
}

// DeleteVSLA removes a savings group.
func (h *Handler) DeleteVSLA(c *fiber.Ctx) error {
	if err := h.uc.DeleteVSLA(c.UserContext(), c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return deleted(c)
}
