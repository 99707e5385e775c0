package services

import (
	"path/filepath"
	"testing"

	"github.com/careertrackhq/careertrack-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Application{},
		&models.Document{},
		&models.AIInteraction{},
		&models.SystemLog{},
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := models.User{
		ID:       uuid.New(),
		Name:     "Test User",
		Email:    email,
		Password: "not-a-real-hash",
		Role:     models.RoleCandidate,
		Status:   models.StatusActive,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}
