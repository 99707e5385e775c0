package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/careertrackhq/careertrack-backend/internal/config"
	"github.com/careertrackhq/careertrack-backend/internal/identity"
	"github.com/careertrackhq/careertrack-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminTestApp(cfg *config.Config, role string) *fiber.App {
	app := fiber.New()
	app.Get("/admin",
		func(c *fiber.Ctx) error {
			if role != "" {
				c.Locals(identity.LocalRole, role)
			}
			return c.Next()
		},
		AdminRequired(cfg),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)
	return app
}

func TestAdminRequiredRejectsCandidate(t *testing.T) {
	app := adminTestApp(&config.Config{}, models.RoleCandidate)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAdminRequiredAllowsAdminRole(t *testing.T) {
	app := adminTestApp(&config.Config{}, models.RoleAdmin)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminRequiredAllowsAdminToken(t *testing.T) {
	cfg := &config.Config{AdminToken: "secret-admin-token"}
	app := adminTestApp(cfg, models.RoleCandidate)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("X-Admin-Token", "secret-admin-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("X-Admin-Token", "wrong-token")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
