package services

import (
	"testing"
	"time"

	"github.com/careertrackhq/careertrack-backend/internal/config"
	"github.com/careertrackhq/careertrack-backend/internal/dto"
	"github.com/careertrackhq/careertrack-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (*AuthService, *config.Config) {
	t.Helper()
	db := newTestDB(t)
	cfg := &config.Config{
		JWTSecret: "test-secret",
		JWTExpiry: time.Hour,
	}
	return NewAuthService(db, cfg), cfg
}

func TestRegisterAndLogin(t *testing.T) {
	svc, cfg := newAuthService(t)

	reg, err := svc.Register(&dto.RegisterRequest{
		Name:     "Ada Lovelace",
		Email:    "Ada@Example.com",
		Password: "super-secret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, "Ada Lovelace", reg.User.Name)
	assert.Equal(t, models.RoleCandidate, reg.User.Role)

	// Email is stored lowercase, so login with different casing works.
	login, err := svc.Login(&dto.LoginRequest{
		Email:    "ada@example.com",
		Password: "super-secret",
	})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)

	// The token carries the expected claims and verifies with the secret.
	token, err := jwt.Parse(login.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, reg.User.ID.String(), claims["sub"])
	assert.Equal(t, models.RoleCandidate, claims["role"])
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(&dto.RegisterRequest{Email: "x@example.com", Password: "super-secret"})
	assert.Error(t, err)

	_, err = svc.Register(&dto.RegisterRequest{Name: "X", Email: "x@example.com", Password: "short"})
	assert.Error(t, err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(&dto.RegisterRequest{
		Name: "Ada", Email: "ada@example.com", Password: "super-secret",
	})
	require.NoError(t, err)

	_, err = svc.Register(&dto.RegisterRequest{
		Name: "Impostor", Email: "ADA@example.com", Password: "super-secret",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(&dto.RegisterRequest{
		Name: "Ada", Email: "ada@example.com", Password: "super-secret",
	})
	require.NoError(t, err)

	_, err = svc.Login(&dto.LoginRequest{Email: "ada@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(&dto.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveAccount(t *testing.T) {
	svc, _ := newAuthService(t)

	reg, err := svc.Register(&dto.RegisterRequest{
		Name: "Ada", Email: "ada@example.com", Password: "super-secret",
	})
	require.NoError(t, err)

	require.NoError(t, svc.db.Model(&models.User{}).
		Where("id = ?", reg.User.ID).
		Update("status", models.StatusInactive).Error)

	_, err = svc.Login(&dto.LoginRequest{Email: "ada@example.com", Password: "super-secret"})
	assert.ErrorIs(t, err, ErrAccountInactive)
}

func TestLoginUpdatesLastLogin(t *testing.T) {
	svc, _ := newAuthService(t)

	reg, err := svc.Register(&dto.RegisterRequest{
		Name: "Ada", Email: "ada@example.com", Password: "super-secret",
	})
	require.NoError(t, err)

	_, err = svc.Login(&dto.LoginRequest{Email: "ada@example.com", Password: "super-secret"})
	require.NoError(t, err)

	user, err := svc.CurrentUser(reg.User.ID)
	require.NoError(t, err)
	assert.NotNil(t, user.LastLogin)
}
