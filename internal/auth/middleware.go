package auth

import (
	"fmt"

	"impacttrack/internal/entities"

	"github.com/gofiber/fiber/v2"
)

const claimsKey = "auth.claims"

// devClaims stand in for a real token when verification is disabled.
var devClaims = &Claims{Subject: "dev", Role: RoleSuperAdmin}

// Authenticate verifies the bearer token and stores claims on the request.
// Failures are returned as errors for the app error handler to render.
func Authenticate(cfg Config) fiber.Handler {
	skip := make(map[string]struct{}, len(cfg.Skip))
	for _, p := range cfg.Skip {
		skip[p] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		if _, ok := skip[c.Path()]; ok {
			return c.Next()
		}
		if cfg.Disabled {
			c.Locals(claimsKey, devClaims)
			return c.Next()
		}

		token, err := bearer(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return err
		}
		claims, err := Parse(token, cfg)
		if err != nil {
			return err
		}
		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// RequireRole rejects callers without claims (401) or below min (403).
func RequireRole(min Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := FromCtx(c)
		if !ok {
			return ErrMissingToken
		}
		if !claims.Allows(min) {
			return fmt.Errorf("%w: requires %s role", entities.ErrForbidden, min)
		}
		return c.Next()
	}
}

// FromCtx returns the claims stored by Authenticate.
func FromCtx(c *fiber.Ctx) (*Claims, bool) {
	claims, ok := c.Locals(claimsKey).(*Claims)
	return claims, ok && claims != nil
}
