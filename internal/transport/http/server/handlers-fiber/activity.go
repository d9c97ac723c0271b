package handlers_fiber

import (
	"impacttrack/internal/entities"
	"impacttrack/internal/mapper"
	"impacttrack/internal/transport/http/dto"

	"github.com/gofiber/fiber/v2"
)

// CreateActivity schedules an activity.
func (h *Handler) CreateActivity(c *fiber.Ctx) error {
	var body dto.ActivityRequest
	if err := bind(c, &body); err != nil {
		return h.fail(c, err)
	}
	in, err := mapper.ToActivity(body)
	if err != nil {
		return h.fail(c, err)
	}
	a, err := h.uc.CreateActivity(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return created(c, a)
}

// GetActivity returns one activity with its attendee count.
func (h *Handler) GetActivity(c *fiber.Ctx) error {
	a, err := h.uc.Activity(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return ok(c, a)
}

// ListActivities returns a page of activities.
func (h *Handler) ListActivities(c *fiber.Ctx) error {
	req, err := pageRequest(c)
	if err != nil {
		return h.fail(c, err)
	}
	from, err := queryDate(c, "from")
	if err != nil {
		return h.fail(c, err)
	}
	to, err := queryDate(c, "to")
	if err != nil {
		return h.fail(c, err)
	}
	page, err := h.uc.Activities(c.UserContext(), entities.ActivityFilter{
		PageRequest:    req,
		OrganizationID: c.Query("organization_id"),
		ProjectID:      c.Query("project_id"),
		ClusterID:      c.Query("cluster_id"),
		Status:         enum[entities.ActivityStatus](c, "status"),
		Type:           enum[entities.ActivityType](c, "type"),
		From:           from,
		To:             to,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.OKPage(page))
}

// UpdateActivity replaces an activity.
func (h *Handler) UpdateActivity(c *fiber.Ctx) error {
	var body dto.ActivityRequest
	if err := bind(c, &body); err != nil {
		return h.fail(c, err)
	}
	in, err := mapper.ToActivity(body)
	if err != nil {
		return h.fail(c, err)
	}
	in.ID = c.Params("id")
	a, err := h.uc.UpdateActivity(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return ok(c, a)
}

// DeleteActivity removes an activity.
func (h *Handler) DeleteActivity(c *fiber.Ctx) error {
	if err := h.uc.DeleteActivity(c.UserContext(), c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return deleted(c)
}

// RecordAttendance marks participants on the register.
func (h *Handler) RecordAttendance(c *fiber.Ctx) error {
	var body dto.AttendanceRequest
	if err := bind(c, &body); err != nil {
		return h.fail(c, err)
	}
	attended := body.Attended == nil || *body.Attended
	n, err := h.uc.RecordAttendance(c.UserContext(), c.Params("id"), body.ParticipantIDs, attended)
	if err != nil {
		return h.fail(c, err)
	}
	return ok(c, dto.AttendanceRecorded{Recorded: n})
}

// ListAttendance returns the register of an activity.
func (h *Handler) ListAttendance(c *fiber.Ctx) error {
	records, err := h.uc.ActivityAttendance(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return ok(c, records)
}

// RemoveAttendance takes one participant off the register.
func (h *Handler) RemoveAttendance(c *fiber.Ctx) error {
	if err := h.uc.RemoveAttendance(c.UserContext(), c.Params("id"), c.Params("participantId")); err != nil {
		return h.fail(c, err)
	}
	return deleted(c)
}

// AttendanceAnalytics returns the demographic summary of the register.
func (h *Handler) AttendanceAnalytics(c *fiber.Ctx) error {
	res, err := h.uc.AttendanceAnalytics(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return ok(c, res)
}

// SaveConceptNote creates or replaces the concept note of an activity.
func (h *Handler) SaveConceptNote(c *fiber.Ctx) error {
	var body dto.ConceptNoteRequest
	if err := bind(c, &body); err != nil {
		return h.fail(c, err)
	}
	n, err := h.uc.SaveConceptNote(c.UserContext(), mapper.ToConceptNote(c.Params("id"), body))
	if err != nil {
		return h.fail(c, err)
	}
	return ok(c, n)
}

// GetConceptNote returns the concept note of an activity.
func (h *Handler) GetConceptNote(c *fiber.Ctx) error {
	n, err := h.uc.ConceptNote(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return ok(c, n)
}

// DeleteConceptNote removes the concept note of an activity.
func (h *Handler) DeleteConceptNote(c *fiber.Ctx) error {
	if err := h.uc.DeleteConceptNote(c.UserContext(), c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return deleted(c)
}
