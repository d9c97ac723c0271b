package handlers_fiber

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"impacttrack/internal/entities"

	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type importFunc func(ctx context.Context, r io.Reader, opts entities.ImportOptions) (entities.ImportResult, error)

func (h *Handler) importSheet(c *fiber.Ctx, run importFunc) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return h.fail(c, fmt.Errorf("%w: multipart field file is required", entities.ErrInvalidArgument))
	}
	f, err := fh.Open()
	if err != nil {
		return h.fail(c, fmt.Errorf("open upload: %w", err))
	}
	defer func() { _ = f.Close() }()

	res, err := run(c.UserContext(), f, entities.ImportOptions{
		Sheet: c.FormValue("sheet"),
		Defaults: entities.ImportDefaults{
			OrganizationID: c.FormValue("organization_id"),
			ProjectID:      c.FormValue("project_id"),
			ClusterID:      c.FormValue("cluster_id"),
		},
	})
	if err != nil {
		return h.fail(c, err)
	}
	h.log.Infow("sheet imported", "kind", res.Kind, "file", fh.Filename, "imported", res.Imported, "skipped", res.Skipped)
	return ok(c, res)
}

// ImportParticipants loads a participant register from an uploaded workbook.
func (h *Handler) ImportParticipants(c *fiber.Ctx) error {
	return h.importSheet(c, h.uc.ImportParticipants)
}

// ImportVSLAs loads savings groups from an uploaded workbook.
func (h *Handler) ImportVSLAs(c *fiber.Ctx) error {
	return h.importSheet(c, h.uc.ImportVSLAs)
}

func sendWorkbook(c *fiber.Ctx, name string, data []byte) error {
	c.Attachment(name)
	c.Set(fiber.HeaderContentType, xlsxContentType)
	return c.Send(data)
}

// ExportParticipants downloads the filtered participants as a workbook.
func (h *Handler) ExportParticipants(c *fiber.Ctx) error {
	filter, err := participantFilter(c)
	if err != nil {
		return h.fail(c, err)
	}
	var buf bytes.Buffer
	if err := h.uc.ExportParticipants(c.UserContext(), &buf, filter); err != nil {
		return h.fail(c, err)
	}
	return sendWorkbook(c, "participants.xlsx", buf.Bytes())
}

// ExportVSLAs downloads the filtered savings groups as a workbook.
func (h *Handler) ExportVSLAs(c *fiber.Ctx) error {
	filter, err := vslaFilter(c)
	if err != nil {
		return h.fail(c, err)
	}
	var buf bytes.Buffer
	if err := h.uc.ExportVSLAs(c.UserContext(), &buf, filter); err != nil {
		return h.fail(c, err)
	}
	return sendWorkbook(c, "vslas.xlsx", buf.Bytes())
}

func (h *Handler) template(c *fiber.Ctx, kind entities.ImportKind) error {
	data, err := h.uc.ImportTemplate(kind)
	if err != nil {
		return h.fail(c, err)
	}
	return sendWorkbook(c, string(kind)+"-template.xlsx", data)
}

// ParticipantTemplate downloads an empty participant register.
func (h *Handler) ParticipantTemplate(c *fiber.Ctx) error {
	return h.template(c, entities.ImportParticipants)
}

// VSLATemplate downloads an empty savings group register.
func (h *Handler) VSLATemplate(c *fiber.Ctx) error {
	return h.template(c, entities.ImportVSLAs)
}
