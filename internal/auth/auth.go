// Package auth verifies bearer tokens minted by the identity provider and
// gates routes by role.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"impacttrack/internal/entities"

	"github.com/golang-jwt/jwt/v5"
)

// Role is a privilege level carried in the token.
type Role string

// Roles from most to least privileged.
const (
	RoleSuperAdmin     Role = "super_admin"
	RoleAdmin          Role = "admin"
	RoleClusterManager Role = "cluster_manager"
	RoleUser           Role = "user"
)

func (r Role) rank() int {
	switch r {
	case RoleSuperAdmin:
		return 4
	case RoleAdmin:
		return 3
	case RoleClusterManager:
		return 2
	case RoleUser:
		return 1
	}
	return 0
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool { return r.rank() > 0 }

// Config holds verification parameters.
type Config struct {
	Secret   string
	Issuer   string
	Disabled bool
	// Skip lists request paths served without a token.
	Skip []string
}

// Claims is the verified identity of a caller.
type Claims struct {
	Subject        string    `json:"sub"`
	Role           Role      `json:"role"`
	OrganizationID string    `json:"organization_id,omitempty"`
	ExpiresAt      time.Time `json:"expires_at"`
}

// Allows reports whether the caller's role is at least min.
func (c *Claims) Allows(min Role) bool {
	if c == nil {
		return false
	}
	return c.Role.rank() >= min.rank()
}

var (
	// ErrMissingToken is returned when the Authorization header is absent.
	ErrMissingToken = fmt.Errorf("%w: missing bearer token", entities.ErrUnauthorized)
	// ErrInvalidToken wraps parsing and validation failures.
	ErrInvalidToken = fmt.Errorf("%w: invalid bearer token", entities.ErrUnauthorized)
)

// Parse validates an HS256 token and returns its claims.
func Parse(token string, cfg Config) (*Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrMissingToken
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.Secret), nil
	}, jwt.WithIssuer(cfg.Issuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	subject, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if subject == "" || !Role(role).Valid() {
		return nil, ErrInvalidToken
	}
	orgID, _ := claims["organization_id"].(string)

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, ErrInvalidToken
	}

	return &Claims{
		Subject:        subject,
		Role:           Role(role),
		OrganizationID: orgID,
		ExpiresAt:      exp.Time,
	}, nil
}

func bearer(header string) (string, error) {
	if header == "" {
		return "", ErrMissingToken
	}
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return "", ErrInvalidToken
	}
	return strings.TrimSpace(header[len("Bearer "):]), nil
}

// IsAuthError reports whether err should surface as a 401 or 403.
func IsAuthError(err error) bool {
	return errors.Is(err, entities.ErrUnauthorized) || errors.Is(err, entities.ErrForbidden)
}
