package handlers_fiber

import (
	"impacttrack/internal/entities"
	"impacttrack/internal/mapper"
	"impacttrack/internal/transport/http/dto"

	"github.com/gofiber/fiber/v2"
)

// CreateProject registers a new project.
func (h *Handler) CreateProject(c *fiber.Ctx) error {
	var body dto.ProjectRequest
	if err := bind(c, &body); err != nil {
		return h.fail(c, err)
	}
	in, err := mapper.ToProject(body)
	if err != nil {
		return h.fail(c, err)
	}
	p, err := h.uc.CreateProject(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return created(c, p)
}

// GetProject returns one project.
func (h *Handler) GetProject(c *fiber.Ctx) error {
	p, err := h.uc.Project(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return ok(c, p)
}

// ListProjects returns a page of projects.
func (h *Handler) ListProjects(c *fiber.Ctx) error {
	req, err := pageRequest(c)
	if err != nil {
		return h.fail(c, err)
	}
	page, err := h.uc.Projects(c.UserContext(), entities.ProjectFilter{
		PageRequest: req,
		Status:      enum[entities.ProjectStatus](c, "status"),
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.OKPage(page))
}

// UpdateProject replaces a project.
func (h *Handler) UpdateProject(c *fiber.Ctx) error {
	var body dto.ProjectRequest
	if err := bind(c, &body); err != nil {
		return h.fail(c, err)
	}
	in, err := mapper.ToProject(body)
	if err != nil {
		return h.fail(c, err)
	}
	in.ID = c.Params("id")
	p, err := h.uc.UpdateProject(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return ok(c, p)
}

// DeleteProject removes a project nothing references.
func (h *Handler) DeleteProject(c *fiber.Ctx) error {
	if err := h.uc.DeleteProject(c.UserContext(), c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return deleted(c)
}
