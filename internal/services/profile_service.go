package services

import (
	"errors"
	"regexp"
	"strings"

	"github.com/careertrackhq/careertrack-backend/internal/dto"
	"github.com/careertrackhq/careertrack-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrEmailExists    = errors.New("email already exists")
	ErrUsernameExists = errors.New("username already exists")
	ErrInvalidEmail   = errors.New("email must be a valid email address")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

func (s *ProfileService) Get(userID uuid.UUID) (*dto.ProfileResponse, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var profile *models.Profile
	var p models.Profile
	if err := s.db.Where("user_id = ?", userID).First(&p).Error; err == nil {
		profile = &p
	}

	return formatProfile(&user, profile), nil
}

func (s *ProfileService) Update(userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	userUpdate := map[string]interface{}{}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email == "" || !emailPattern.MatchString(email) {
			return nil, ErrInvalidEmail
		}
		var existing models.User
		if err := s.db.Where("email = ? AND id <> ?", email, userID).First(&existing).Error; err == nil {
			return nil, ErrEmailExists
		}
		userUpdate["email"] = email
	}

	if req.Username != nil {
		if *req.Username != "" {
			var existing models.User
			if err := s.db.Where("username = ? AND id <> ?", *req.Username, userID).First(&existing).Error; err == nil {
				return nil, ErrUsernameExists
			}
			userUpdate["username"] = *req.Username
		} else {
			userUpdate["username"] = nil
		}
	}

	if req.Phone != nil {
		userUpdate["phone"] = nilIfEmpty(*req.Phone)
	}
	if req.Language != nil {
		lang := *req.Language
		if lang == "" {
			lang = "en"
		}
		userUpdate["language"] = lang
	}
	if req.Pic != nil {
		userUpdate["pic"] = nilIfEmpty(*req.Pic)
	}

	if req.Fullname != nil {
		first, last := splitName(*req.Fullname)
		userUpdate["first_name"] = first
		userUpdate["last_name"] = last
		if *req.Fullname != "" {
			userUpdate["name"] = *req.Fullname
		}
	} else if req.FirstName != nil || req.LastName != nil {
		first := valueOr(req.FirstName, user.FirstName)
		last := valueOr(req.LastName, user.LastName)
		userUpdate["first_name"] = first
		userUpdate["last_name"] = last
		if combined := combineName(first, last); combined != nil {
			userUpdate["name"] = *combined
		}
	}

	if len(userUpdate) > 0 {
		if err := s.db.Model(&user).Updates(userUpdate).Error; err != nil {
			return nil, err
		}
	}

	if err := s.upsertProfile(userID, req); err != nil {
		return nil, err
	}

	return s.Get(userID)
}

// upsertProfile writes the profile fields as a single conditional insert:
// the unique index on user_id plus ON CONFLICT DO UPDATE keeps concurrent
// first-time updates from creating two profiles for one user.
func (s *ProfileService) upsertProfile(userID uuid.UUID, req *dto.UpdateProfileRequest) error {
	profile := models.Profile{ID: uuid.New(), UserID: userID}
	cols := []string{}

	set := func(col string, apply func()) {
		apply()
		cols = append(cols, col)
	}

	if req.Fullname != nil {
		set("fullname", func() { profile.Fullname = nilIfEmpty(*req.Fullname) })
	}
	if req.Education != nil {
		set("education", func() { profile.Education = nilIfEmpty(*req.Education) })
	}
	if req.Occupation != nil {
		set("occupation", func() { profile.Occupation = nilIfEmpty(*req.Occupation) })
	}
	if req.CompanyName != nil {
		set("company_name", func() { profile.CompanyName = nilIfEmpty(*req.CompanyName) })
	}
	if req.Availability != nil {
		set("availability", func() { profile.Availability = nilIfEmpty(*req.Availability) })
	}
	if req.HourlyRate != nil {
		set("hourly_rate", func() { profile.HourlyRate = nilIfEmpty(*req.HourlyRate) })
	}
	if req.Bio != nil {
		set("bio", func() { profile.Bio = nilIfEmpty(*req.Bio) })
	}
	if req.Location != nil {
		set("location", func() { profile.Location = nilIfEmpty(*req.Location) })
	}
	if req.Skills != nil {
		set("skills", func() { profile.Skills = []string(*req.Skills) })
	}

	if len(cols) == 0 {
		return nil
	}
	cols = append(cols, "updated_at")

	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns(cols),
	}).Create(&profile).Error
}

func formatProfile(user *models.User, profile *models.Profile) *dto.ProfileResponse {
	resp := &dto.ProfileResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Phone:     user.Phone,
		Language:  user.Language,
		Pic:       user.Pic,
		Skills:    []string{},
	}

	fullname := combineName(user.FirstName, user.LastName)
	if profile != nil {
		if profile.Fullname != nil {
			fullname = profile.Fullname
			first, last := splitName(*profile.Fullname)
			resp.FirstName = first
			resp.LastName = last
		}
		resp.Education = profile.Education
		resp.Occupation = profile.Occupation
		resp.CompanyName = profile.CompanyName
		resp.Availability = profile.Availability
		resp.HourlyRate = profile.HourlyRate
		resp.Bio = profile.Bio
		resp.Location = profile.Location
		if profile.Skills != nil {
			resp.Skills = profile.Skills
		}
	}
	if fullname == nil && user.Name != "" {
		fullname = &user.Name
	}
	resp.Fullname = fullname

	return resp
}

func splitName(fullname string) (*string, *string) {
	trimmed := strings.TrimSpace(fullname)
	if trimmed == "" {
		return nil, nil
	}
	parts := strings.Fields(trimmed)
	if len(parts) == 1 {
		return &parts[0], nil
	}
	first := parts[0]
	last := strings.Join(parts[1:], " ")
	return &first, &last
}

func combineName(first, last *string) *string {
	switch {
	case first == nil && last == nil:
		return nil
	case first == nil:
		return last
	case last == nil:
		return first
	}
	combined := strings.TrimSpace(*first + " " + *last)
	return &combined
}

func valueOr(v, fallback *string) *string {
	if v != nil {
		if *v == "" {
			return nil
		}
		return v
	}
	return fallback
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
