package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/careertrackhq/careertrack-backend/internal/config"
	"github.com/careertrackhq/careertrack-backend/internal/dto"
	"github.com/careertrackhq/careertrack-backend/internal/middleware"
	"github.com/careertrackhq/careertrack-backend/internal/models"
	"github.com/careertrackhq/careertrack-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestApp wires the auth and job-application surface over a throwaway
// sqlite database, returning the app and a bearer token for a registered user.
func newTestApp(t *testing.T) (*fiber.App, string) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Application{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiry: time.Hour}

	authService := services.NewAuthService(db, cfg)
	authHandler := NewAuthHandler(authService)
	applicationHandler := NewApplicationHandler(services.NewApplicationService(db))

	app := fiber.New()
	api := app.Group("/api/v1")
	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)

	apps := api.Group("/job-applications", middleware.Protected(cfg), middleware.ActiveUser(db))
	apps.Post("/", applicationHandler.Create)
	apps.Get("/", applicationHandler.List)
	apps.Delete("/bulk", applicationHandler.BulkDelete)
	apps.Get("/:id", applicationHandler.Get)

	reg, err := authService.Register(&dto.RegisterRequest{
		Name: "Ada", Email: "ada@example.com", Password: "super-secret",
	})
	require.NoError(t, err)

	return app, reg.Token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

func TestApplicationRoutesRequireToken(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/v1/job-applications/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/v1/job-applications/", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreateAndGetApplicationOverHTTP(t *testing.T) {
	app, token := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/job-applications/", token, map[string]string{
		"jobTitle":        "Backend Engineer",
		"companyName":     "Acme",
		"applicationDate": "2026-01-15",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created dto.ApplicationResponse
	decodeBody(t, resp, &created)
	assert.Equal(t, "Backend Engineer", created.JobTitle)
	assert.Equal(t, models.StatusApplied, created.Status)

	resp = doJSON(t, app, http.MethodGet, "/api/v1/job-applications/"+created.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got dto.ApplicationResponse
	decodeBody(t, resp, &got)
	assert.Equal(t, created.ID, got.ID)
}

func TestCreateApplicationMissingFieldsOverHTTP(t *testing.T) {
	app, token := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/job-applications/", token, map[string]string{
		"jobTitle": "Engineer",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBulkDeleteRouteNotShadowedByID(t *testing.T) {
	app, token := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/job-applications/", token, map[string]string{
		"jobTitle":        "Engineer",
		"companyName":     "Acme",
		"applicationDate": "2026-01-15",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created dto.ApplicationResponse
	decodeBody(t, resp, &created)

	// "/bulk" must hit the bulk handler, not parse as an application id.
	resp = doJSON(t, app, http.MethodDelete, "/api/v1/job-applications/bulk", token, dto.BulkDeleteRequest{
		IDs: []uuid.UUID{created.ID},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result dto.BulkDeleteResponse
	decodeBody(t, resp, &result)
	assert.Equal(t, int64(1), result.DeletedCount)
}
