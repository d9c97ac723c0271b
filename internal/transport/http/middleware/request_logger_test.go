package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"impacttrack/internal/entities"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLoggerRecordsRenderedStatus(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	app := fiber.New(fiber.Config{ErrorHandler: func(c *fiber.Ctx, err error) error {
		return c.Status(http.StatusForbidden).SendString(err.Error())
	}})
	app.Use(requestid.New())
	app.Use(RequestLogger(zap.New(core).Sugar()))
	app.Get("/denied", func(c *fiber.Ctx) error { return entities.ErrForbidden })
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusNoContent) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/denied", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	require.Equal(t, 1, logs.FilterMessage("http auth rejected").Len())
	entries := logs.FilterMessage("http").All()
	require.Len(t, entries, 2)
	require.EqualValues(t, http.StatusForbidden, entries[0].ContextMap()["status"])
	require.EqualValues(t, http.StatusNoContent, entries[1].ContextMap()["status"])
	require.NotEmpty(t, entries[0].ContextMap()["request_id"])
}
