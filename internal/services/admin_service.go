package services

import (
	"errors"

	"github.com/careertrackhq/careertrack-backend/internal/dto"
	"github.com/careertrackhq/careertrack-backend/internal/models"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var ErrInvalidUserStatus = errors.New("status must be active or inactive")

// AdminService serves the review surface: all users, applications, and
// documents regardless of owner. Routes using it sit behind AdminRequired.
type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

func (s *AdminService) ListUsers() ([]dto.AdminUserResponse, error) {
	var users []models.User
	if err := s.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}

	out := make([]dto.AdminUserResponse, 0, len(users))
	for i := range users {
		out = append(out, formatAdminUser(&users[i]))
	}
	return out, nil
}

func (s *AdminService) SetUserStatus(id uuid.UUID, status string) (*dto.AdminUserResponse, error) {
	if status != models.StatusActive && status != models.StatusInactive {
		return nil, ErrInvalidUserStatus
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := s.db.Model(&user).Update("status", status).Error; err != nil {
		return nil, err
	}
	user.Status = status

	resp := formatAdminUser(&user)
	return &resp, nil
}

func (s *AdminService) ListApplications() ([]dto.AdminApplicationResponse, error) {
	var apps []models.Application
	err := s.db.Preload("User").Order("created_at DESC").Find(&apps).Error
	if err != nil {
		return nil, err
	}

	out := make([]dto.AdminApplicationResponse, 0, len(apps))
	for i := range apps {
		entry := dto.AdminApplicationResponse{
			ApplicationResponse: formatApplication(&apps[i]),
		}
		if apps[i].User != nil {
			entry.User = dto.OwnerSummary{
				ID:    apps[i].User.ID,
				Name:  apps[i].User.Name,
				Email: apps[i].User.Email,
			}
		}
		out = append(out, entry)
	}
	return out, nil
}

func (s *AdminService) ListDocuments() ([]dto.AdminDocumentResponse, error) {
	var docs []models.Document
	err := s.db.Preload("User").Order("uploaded_at DESC").Find(&docs).Error
	if err != nil {
		return nil, err
	}

	out := make([]dto.AdminDocumentResponse, 0, len(docs))
	for i := range docs {
		entry := dto.AdminDocumentResponse{
			DocumentResponse: formatDocument(&docs[i]),
		}
		if docs[i].User != nil {
			entry.User = dto.OwnerSummary{
				ID:    docs[i].User.ID,
				Name:  docs[i].User.Name,
				Email: docs[i].User.Email,
			}
		}
		out = append(out, entry)
	}
	return out, nil
}

func (s *AdminService) Stats() (*dto.AdminStatsResponse, error) {
	var totals dto.AdminTotals

	var g errgroup.Group
	count := func(dst *int64, query *gorm.DB) func() error {
		return func() error {
			return query.Count(dst).Error
		}
	}

	g.Go(count(&totals.Users, s.db.Model(&models.User{})))
	g.Go(count(&totals.ActiveUsers, s.db.Model(&models.User{}).Where("status = ?", models.StatusActive)))
	g.Go(count(&totals.Applications, s.db.Model(&models.Application{})))
	g.Go(count(&totals.Documents, s.db.Model(&models.Document{})))
	g.Go(count(&totals.Interactions, s.db.Model(&models.AIInteraction{})))

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dto.AdminStatsResponse{Totals: totals}, nil
}

func formatAdminUser(user *models.User) dto.AdminUserResponse {
	return dto.AdminUserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Status:    user.Status,
		LastLogin: user.LastLogin,
		CreatedAt: user.CreatedAt,
	}
}
