package handlers_fiber

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"impacttrack/internal/auth"
	"impacttrack/internal/entities"
	"impacttrack/internal/transport/http/dto"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func decode(t *testing.T, resp *http.Response) dto.Response {
	t.Helper()
	var body dto.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestWriteErrorStatuses(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"invalid", fmt.Errorf("%w: name is required", entities.ErrInvalidArgument), http.StatusBadRequest, "invalid argument: name is required"},
		{"missing columns", fmt.Errorf("%w: gender", entities.ErrImportMissingColumns), http.StatusBadRequest, "missing required columns: gender"},
		{"empty import", entities.ErrImportEmpty, http.StatusBadRequest, entities.ErrImportEmpty.Error()},
		{"unauthorized", auth.ErrMissingToken, http.StatusUnauthorized, "unauthorized: missing bearer token"},
		{"forbidden", fmt.Errorf("%w: requires admin role", entities.ErrForbidden), http.StatusForbidden, "forbidden: requires admin role"},
		{"not found", fmt.Errorf("get: %w", entities.ErrVSLANotFound), http.StatusNotFound, "get: vsla not found"},
		{"exists", entities.ErrProjectExists, http.StatusConflict, "project already exists"},
		{"in use", fmt.Errorf("%w by participants", entities.ErrInUse), http.StatusConflict, "record is still referenced by participants"},
		{"too large", entities.ErrImportTooLarge, http.StatusRequestEntityTooLarge, entities.ErrImportTooLarge.Error()},
		{"fiber", fiber.ErrMethodNotAllowed, http.StatusMethodNotAllowed, fiber.ErrMethodNotAllowed.Message},
		{"unknown", errors.New("connection reset by peer"), http.StatusInternalServerError, internalMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return writeError(c, tt.err)
			})

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			require.Equal(t, tt.status, resp.StatusCode)
			body := decode(t, resp)
			require.False(t, body.Success)
			require.Equal(t, tt.message, body.Error)
		})
	}
}

func TestErrorHandlerRendersEnvelope(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zap.NewNop().Sugar())})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("pool exhausted")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.False(t, decode(t, resp).Success)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.Equal(t, internalMessage, decode(t, resp).Error)
}

func TestQueryHelpers(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zap.NewNop().Sugar())})
	app.Get("/", func(c *fiber.Ctx) error {
		req, err := pageRequest(c)
		if err != nil {
			return err
		}
		pwd, err := queryBool(c, "is_pwd")
		if err != nil {
			return err
		}
		from, err := queryDate(c, "from")
		if err != nil {
			return err
		}
		status := enum[entities.VSLAStatus](c, "status")
		return c.JSON(fiber.Map{"page": req.Page, "limit": req.Limit, "pwd": pwd, "from": from, "status": status})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/?page=2&limit=5&is_pwd=true&from=2026-01-31&status=Active", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Equal(t, 2.0, got["page"])
	require.Equal(t, true, got["pwd"])
	require.Equal(t, "active", got["status"])
	require.Equal(t, "2026-01-31T00:00:00Z", got["from"])

	for _, q := range []string{"?page=two", "?is_pwd=maybe", "?from=yesterday"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/"+q, nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
	}
}
