package identity

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Locals keys. user_id and role are set by middleware.ActiveUser after the
// token subject has been resolved to a live user record.
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
)

// UserID extracts the authenticated user's UUID from Fiber context locals,
// falling back to the verified JWT claims.
func UserID(c *fiber.Ctx) (uuid.UUID, error) {
	if id, ok := c.Locals(LocalUserID).(uuid.UUID); ok {
		return id, nil
	}

	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}

	return uuid.Parse(sub)
}

// Role returns the authenticated user's role, or "" when unresolved.
func Role(c *fiber.Ctx) string {
	if role, ok := c.Locals(LocalRole).(string); ok {
		return role
	}
	return ""
}
