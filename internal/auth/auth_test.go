package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"impacttrack/internal/entities"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var testCfg = Config{Secret: "test-secret", Issuer: "impacttrack", Skip: []string{"/healthz"}}

func mint(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func validClaims(role Role) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":             "user-1",
		"role":            string(role),
		"organization_id": "org-1",
		"iss":             "impacttrack",
		"exp":             time.Now().Add(time.Hour).Unix(),
	}
}

// adminClaimsWith overrides one claim of a valid admin token; nil removes it.
func adminClaimsWith(key string, value any) jwt.MapClaims {
	c := validClaims(RoleAdmin)
	if value == nil {
		delete(c, key)
	} else {
		c[key] = value
	}
	return c
}

func TestParse(t *testing.T) {
	claims, err := Parse(mint(t, testCfg.Secret, validClaims(RoleAdmin)), testCfg)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, RoleAdmin, claims.Role)
	require.Equal(t, "org-1", claims.OrganizationID)

	tests := []struct {
		name   string
		token  string
		target error
	}{
		{"empty", "", ErrMissingToken},
		{"garbage", "abc.def.ghi", ErrInvalidToken},
		{"wrong secret", mint(t, "other", validClaims(RoleAdmin)), ErrInvalidToken},
		{"wrong issuer", mint(t, testCfg.Secret, adminClaimsWith("iss", "evil")), ErrInvalidToken},
		{"expired", mint(t, testCfg.Secret, adminClaimsWith("exp", time.Now().Add(-time.Minute).Unix())), ErrInvalidToken},
		{"no expiry", mint(t, testCfg.Secret, adminClaimsWith("exp", nil)), ErrInvalidToken},
		{"unknown role", mint(t, testCfg.Secret, validClaims("owner")), ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.token, testCfg)
			require.ErrorIs(t, err, tt.target)
			require.ErrorIs(t, err, entities.ErrUnauthorized)
		})
	}
}

func TestAllows(t *testing.T) {
	admin := &Claims{Role: RoleAdmin}
	require.True(t, admin.Allows(RoleUser))
	require.True(t, admin.Allows(RoleClusterManager))
	require.True(t, admin.Allows(RoleAdmin))
	require.False(t, admin.Allows(RoleSuperAdmin))

	var none *Claims
	require.False(t, none.Allows(RoleUser))
}

func newApp(cfg Config) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: func(c *fiber.Ctx, err error) error {
		switch {
		case errors.Is(err, entities.ErrUnauthorized):
			return c.SendStatus(http.StatusUnauthorized)
		case errors.Is(err, entities.ErrForbidden):
			return c.SendStatus(http.StatusForbidden)
		}
		return c.SendStatus(http.StatusInternalServerError)
	}})
	app.Use(Authenticate(cfg))
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/read", RequireRole(RoleUser), func(c *fiber.Ctx) error {
		claims, _ := FromCtx(c)
		return c.SendString(claims.Subject)
	})
	app.Delete("/write", RequireRole(RoleAdmin), func(c *fiber.Ctx) error { return c.SendStatus(http.StatusNoContent) })
	return app
}

func TestMiddleware(t *testing.T) {
	app := newApp(testCfg)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		status int
	}{
		{"health skips auth", http.MethodGet, "/healthz", "", http.StatusOK},
		{"missing token", http.MethodGet, "/read", "", http.StatusUnauthorized},
		{"bad scheme", http.MethodGet, "/read", "Basic abc", http.StatusUnauthorized},
		{"user reads", http.MethodGet, "/read", "Bearer " + mint(t, testCfg.Secret, validClaims(RoleUser)), http.StatusOK},
		{"user cannot delete", http.MethodDelete, "/write", "Bearer " + mint(t, testCfg.Secret, validClaims(RoleUser)), http.StatusForbidden},
		{"manager cannot delete", http.MethodDelete, "/write", "Bearer " + mint(t, testCfg.Secret, validClaims(RoleClusterManager)), http.StatusForbidden},
		{"admin deletes", http.MethodDelete, "/write", "Bearer " + mint(t, testCfg.Secret, validClaims(RoleAdmin)), http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.token)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestMiddlewareDisabled(t *testing.T) {
	app := newApp(Config{Disabled: true})

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/write", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
}
