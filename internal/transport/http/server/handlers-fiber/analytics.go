package handlers_fiber

import (
	"time"

	"impacttrack/internal/entities"

	"github.com/gofiber/fiber/v2"
)

var now = time.Now

// KPIOverview returns this month's headline figures against last month's.
func (h *Handler) KPIOverview(c *fiber.Ctx) error {
	res, err := h.uc.KPIOverview(c.UserContext(), now())
	if err != nil {
		return h.fail(c, err)
	}
	return ok(c, res)
}

// Dashboard returns the chart series for the overview page.
func (h *Handler) Dashboard(c *fiber.Ctx) error {
	res, err := h.uc.Dashboard(c.UserContext(), entities.DashboardFilter{
		OrganizationID: c.Query("organization_id"),
		ProjectID:      c.Query("project_id"),
		ClusterID:      c.Query("cluster_id"),
	}, now())
	if err != nil {
		return h.fail(c, err)
	}
	return ok(c, res)
}
