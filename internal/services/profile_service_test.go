package services

import (
	"encoding/json"
	"testing"

	"github.com/careertrackhq/careertrack-backend/internal/dto"
	"github.com/careertrackhq/careertrack-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skillsPtr(skills ...string) *dto.SkillList {
	list := dto.SkillList(skills)
	return &list
}

func TestGetProfileWithoutProfileRow(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "profile@example.com")
	svc := NewProfileService(db)

	resp, err := svc.Get(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), resp.ID)
	assert.Equal(t, "profile@example.com", resp.Email)
	assert.Equal(t, models.RoleCandidate, resp.Role)
	assert.NotNil(t, resp.Skills)
	assert.Empty(t, resp.Skills)
}

func TestUpdateProfileCreatesThenUpdates(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "profile-upsert@example.com")
	svc := NewProfileService(db)

	resp, err := svc.Update(user.ID, &dto.UpdateProfileRequest{
		Bio:    strPtr("Backend developer"),
		Skills: skillsPtr("Go", "SQL"),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Bio)
	assert.Equal(t, "Backend developer", *resp.Bio)
	assert.Equal(t, []string{"Go", "SQL"}, resp.Skills)

	// Second update touches one field; the rest survive.
	resp, err = svc.Update(user.ID, &dto.UpdateProfileRequest{
		Occupation: strPtr("Software Engineer"),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Bio)
	assert.Equal(t, "Backend developer", *resp.Bio)
	require.NotNil(t, resp.Occupation)
	assert.Equal(t, "Software Engineer", *resp.Occupation)

	// Exactly one profile row exists for the user.
	var count int64
	db.Model(&models.Profile{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUpdateProfileFullnameSplitting(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "profile-name@example.com")
	svc := NewProfileService(db)

	resp, err := svc.Update(user.ID, &dto.UpdateProfileRequest{
		Fullname: strPtr("Ada Marie Lovelace"),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.FirstName)
	assert.Equal(t, "Ada", *resp.FirstName)
	require.NotNil(t, resp.LastName)
	assert.Equal(t, "Marie Lovelace", *resp.LastName)
	require.NotNil(t, resp.Fullname)
	assert.Equal(t, "Ada Marie Lovelace", *resp.Fullname)
}

func TestUpdateProfileEmailValidation(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "profile-email@example.com")
	createTestUser(t, db, "taken@example.com")
	svc := NewProfileService(db)

	_, err := svc.Update(user.ID, &dto.UpdateProfileRequest{Email: strPtr("not-an-email")})
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = svc.Update(user.ID, &dto.UpdateProfileRequest{Email: strPtr("taken@example.com")})
	assert.ErrorIs(t, err, ErrEmailExists)

	resp, err := svc.Update(user.ID, &dto.UpdateProfileRequest{Email: strPtr("New@Example.com")})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", resp.Email)
}

func TestUpdateProfileUsernameUniqueness(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice-prof@example.com")
	bob := createTestUser(t, db, "bob-prof@example.com")
	svc := NewProfileService(db)

	_, err := svc.Update(alice.ID, &dto.UpdateProfileRequest{Username: strPtr("ada")})
	require.NoError(t, err)

	_, err = svc.Update(bob.ID, &dto.UpdateProfileRequest{Username: strPtr("ada")})
	assert.ErrorIs(t, err, ErrUsernameExists)

	// Setting your own existing username again is fine.
	_, err = svc.Update(alice.ID, &dto.UpdateProfileRequest{Username: strPtr("ada")})
	assert.NoError(t, err)
}

func TestSkillListUnmarshal(t *testing.T) {
	var fromArray dto.SkillList
	require.NoError(t, json.Unmarshal([]byte(`["Go"," SQL ","Go",""]`), &fromArray))
	assert.Equal(t, dto.SkillList{"Go", "SQL"}, fromArray)

	var fromString dto.SkillList
	require.NoError(t, json.Unmarshal([]byte(`"Go, SQL,Go"`), &fromString))
	assert.Equal(t, dto.SkillList{"Go", "SQL"}, fromString)
}
