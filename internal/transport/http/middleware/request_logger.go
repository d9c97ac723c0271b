// Package middleware contains HTTP middlewares for delivery.
package middleware

import (
	"time"

	"impacttrack/internal/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestLogger logs HTTP requests with method, path, status and duration.
// A returned error is rendered through the app error handler first so the
// logged status matches the response.
func RequestLogger(log *zap.SugaredLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
			if auth.IsAuthError(err) {
				log.Warnw("http auth rejected", "path", c.Path(), "error", err)
			}
		}
		dur := time.Since(start)
		reqID, _ := c.Locals("requestid").(string)
		if reqID == "" {
			reqID = c.Get(fiber.HeaderXRequestID)
		}
		subject := ""
		if claims, ok := auth.FromCtx(c); ok {
			subject = claims.Subject
		}
		log.Infow("http",
			"method", c.Method(),
			"path", c.OriginalURL(),
			"status", c.Response().StatusCode(),
			"duration_ms", float64(dur.Microseconds())/1000.0,
			"request_id", reqID,
			"subject", subject,
		)
		return nil
	}
}
