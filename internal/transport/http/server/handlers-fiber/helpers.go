package handlers_fiber

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"impacttrack/internal/entities"
	"impacttrack/internal/mapper"
	"impacttrack/internal/transport/http/dto"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const internalMessage = "internal error"

// statusOf maps an error to its HTTP status and client-facing message.
func statusOf(err error) (int, string) {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code, fe.Message
	case errors.Is(err, entities.ErrInvalidArgument),
		errors.Is(err, entities.ErrImportMissingColumns),
		errors.Is(err, entities.ErrImportEmpty):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, entities.ErrUnauthorized):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, entities.ErrForbidden):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, entities.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, entities.ErrAlreadyExists), errors.Is(err, entities.ErrInUse):
		return http.StatusConflict, err.Error()
	case errors.Is(err, entities.ErrImportTooLarge):
		return http.StatusRequestEntityTooLarge, err.Error()
	}
	return http.StatusInternalServerError, internalMessage
}

func writeError(c *fiber.Ctx, err error) error {
	status, msg := statusOf(err)
	return c.Status(status).JSON(dto.Fail(msg))
}

// ErrorHandler renders errors returned by middleware and handlers in the
// response envelope. Server-side failures are logged, never echoed.
func ErrorHandler(log *zap.SugaredLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if status, _ := statusOf(err); status >= http.StatusInternalServerError {
			log.Errorw("request failed", "method", c.Method(), "path", c.Path(), "error", err)
		}
		return writeError(c, err)
	}
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status, _ := statusOf(err)
	if status >= http.StatusInternalServerError {
		h.log.Errorw("request failed", "method", c.Method(), "path", c.Path(), "error", err)
	} else {
		h.log.Debugw("request rejected", "path", c.Path(), "status", status, "error", err)
	}
	return writeError(c, err)
}

func ok(c *fiber.Ctx, data any) error {
	return c.Status(http.StatusOK).JSON(dto.OK(data))
}

func created(c *fiber.Ctx, data any) error {
	return c.Status(http.StatusCreated).JSON(dto.OK(data))
}

func deleted(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(dto.Response{Success: true})
}

func bind(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fmt.Errorf("%w: invalid body", entities.ErrInvalidArgument)
	}
	return nil
}

func pageRequest(c *fiber.Ctx) (entities.PageRequest, error) {
	page, err := queryInt(c, "page")
	if err != nil {
		return entities.PageRequest{}, err
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return entities.PageRequest{}, err
	}
	return entities.PageRequest{Page: page, Limit: limit, Search: c.Query("search")}, nil
}

func queryInt(c *fiber.Ctx, key string) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", entities.ErrInvalidArgument, key)
	}
	return n, nil
}

func queryBool(c *fiber.Ctx, key string) (*bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be true or false", entities.ErrInvalidArgument, key)
	}
	return &b, nil
}

func queryDate(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, err := mapper.ParseDate(key, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// enum returns a pointer to the typed query value, or nil when absent.
func enum[T ~string](c *fiber.Ctx, key string) *T {
	raw := strings.ToLower(strings.TrimSpace(c.Query(key)))
	if raw == "" {
		return nil
	}
	v := T(raw)
	return &v
}
