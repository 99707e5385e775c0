package services

import (
	"strings"
	"testing"
	"time"

	"github.com/careertrackhq/careertrack-backend/internal/dto"
	"github.com/careertrackhq/careertrack-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetUserStatus(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "admin-target@example.com")
	svc := NewAdminService(db)

	resp, err := svc.SetUserStatus(user.ID, models.StatusInactive)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInactive, resp.Status)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, "id = ?", user.ID).Error)
	assert.Equal(t, models.StatusInactive, reloaded.Status)

	_, err = svc.SetUserStatus(user.ID, "banned")
	assert.ErrorIs(t, err, ErrInvalidUserStatus)

	_, err = svc.SetUserStatus(uuid.New(), models.StatusActive)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAdminListApplicationsIncludesOwner(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice-admin@example.com")
	bob := createTestUser(t, db, "bob-admin@example.com")

	appSvc := NewApplicationService(db)
	_, err := appSvc.Create(alice.ID, &dto.CreateApplicationRequest{
		JobTitle: "Engineer", CompanyName: "Acme", ApplicationDate: "2026-01-15",
	})
	require.NoError(t, err)
	_, err = appSvc.Create(bob.ID, &dto.CreateApplicationRequest{
		JobTitle: "Designer", CompanyName: "Globex", ApplicationDate: "2026-01-16",
	})
	require.NoError(t, err)

	svc := NewAdminService(db)
	apps, err := svc.ListApplications()
	require.NoError(t, err)
	require.Len(t, apps, 2)

	owners := []string{apps[0].User.Email, apps[1].User.Email}
	assert.Contains(t, owners, "alice-admin@example.com")
	assert.Contains(t, owners, "bob-admin@example.com")
}

func TestAdminStats(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice-stats@example.com")
	bob := createTestUser(t, db, "bob-stats@example.com")

	require.NoError(t, db.Model(&models.User{}).
		Where("id = ?", bob.ID).
		Update("status", models.StatusInactive).Error)

	appSvc := NewApplicationService(db)
	_, err := appSvc.Create(alice.ID, &dto.CreateApplicationRequest{
		JobTitle: "Engineer", CompanyName: "Acme", ApplicationDate: "2026-01-15",
	})
	require.NoError(t, err)

	docSvc := NewDocumentService(db, &stubBlobStore{})
	_, err = docSvc.Upload(alice.ID, "cv", "", "resume.pdf", "application/pdf", 100, strings.NewReader("x"))
	require.NoError(t, err)

	seedInteraction(t, db, alice.ID, uuid.New(), "q", "a", time.Now().UTC())

	svc := NewAdminService(db)
	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Totals.Users)
	assert.Equal(t, int64(1), stats.Totals.ActiveUsers)
	assert.Equal(t, int64(1), stats.Totals.Applications)
	assert.Equal(t, int64(1), stats.Totals.Documents)
	assert.Equal(t, int64(1), stats.Totals.Interactions)
}
