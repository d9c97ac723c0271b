package handlers_fiber

import (
	"impacttrack/internal/entities"
	"impacttrack/internal/mapper"
	"impacttrack/internal/transport/http/dto"

	"github.com/gofiber/fiber/v2"
)

// CreateParticipant registers a beneficiary.
func (h *Handler) CreateParticipant(c *fiber.Ctx) error {
	var body dto.ParticipantRequest
	if err := bind(c, &body); err != nil {
		return h.fail(c, err)
	}
	in, err := mapper.ToParticipant(body)
	if err != nil {
		return h.fail(c, err)
	}
	p, err := h.uc.CreateParticipant(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return created(c, p)
}

// GetParticipant returns one participant.
func (h *Handler) GetParticipant(c *fiber.Ctx) error {
	p, err := h.uc.Participant(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return ok(c, p)
}

func participantFilter(c *fiber.Ctx) (entities.ParticipantFilter, error) {
	req, err := pageRequest(c)
	if err != nil {
		return entities.ParticipantFilter{}, err
	}
	pwd, err := queryBool(c, "is_pwd")
	if err != nil {
		return entities.ParticipantFilter{}, err
	}
	f := entities.ParticipantFilter{
		PageRequest:    req,
		OrganizationID: c.Query("organization_id"),
		ProjectID:      c.Query("project_id"),
		ClusterID:      c.Query("cluster_id"),
		District:       c.Query("district"),
		IsPWD:          pwd,
	}
	if raw := c.Query("gender"); raw != "" {
		g, ok := entities.ParseGender(raw)
		if !ok {
			g = entities.Gender(raw)
		}
		f.Gender = &g
	}
	return f, nil
}

// ListParticipants returns a page of participants.
func (h *Handler) ListParticipants(c *fiber.Ctx) error {
	filter, err := participantFilter(c)
	if err != nil {
		return h.fail(c, err)
	}
	page, err := h.uc.Participants(c.UserContext(), filter)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.OKPage(page))
}

// UpdateParticipant replaces a participant.
func (h *Handler) UpdateParticipant(c *fiber.Ctx) error {
	var body dto.ParticipantRequest
	if err := bind(c, &body); err != nil {
		return h.fail(c, err)
	}
	in, err := mapper.ToParticipant(body)
	if err != nil {
		return h.fail(c, err)
	}
	in.ID = c.Params("id")
	p, err := h.uc.UpdateParticipant(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return ok(c, p)
}

// DeleteParticipant removes a participant.
func (h *Handler) DeleteParticipant(c *fiber.Ctx) error {
	if err := h.uc.DeleteParticipant(c.UserContext(), c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return deleted(c)
}

// AddSkill records a skill for a participant.
func (h *Handler) AddSkill(c *fiber.Ctx) error {
	var body dto.SkillRequest
	if err := bind(c, &body); err != nil {
		return h.fail(c, err)
	}
	in, err := mapper.ToSkill(c.Params("id"), body)
	if err != nil {
		return h.fail(c, err)
	}
	s, err := h.uc.AddSkill(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return created(c, s)
}

// ListSkills returns the skills of a participant.
func (h *Handler) ListSkills(c *fiber.Ctx) error {
	skills, err := h.uc.ParticipantSkills(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return ok(c, skills)
}

// DeleteSkill removes one skill.
func (h *Handler) DeleteSkill(c *fiber.Ctx) error {
	if err := h.uc.DeleteSkill(c.UserContext(), c.Params("id"), c.Params("skillId")); err != nil {
		return h.fail(c, err)
	}
	return deleted(c)
}
