package services

import (
	"errors"
	"strings"
	"time"

	"github.com/careertrackhq/careertrack-backend/internal/dto"
	"github.com/careertrackhq/careertrack-backend/internal/identity"
	"github.com/careertrackhq/careertrack-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrInvalidStatus       = errors.New("invalid application status")
	ErrInvalidDate         = errors.New("invalid date format, expected YYYY-MM-DD")
	ErrMissingFields       = errors.New("jobTitle (or title), companyName (or company), and applicationDate (or dateApplied) are required")
)

type ApplicationService struct {
	db *gorm.DB
}

func NewApplicationService(db *gorm.DB) *ApplicationService {
	return &ApplicationService{db: db}
}

// ListOptions carries the query-string filters for List.
type ListOptions struct {
	Status    string
	Search    string
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

func (s *ApplicationService) Create(userID uuid.UUID, req *dto.CreateApplicationRequest) (*dto.ApplicationResponse, error) {
	title := req.CanonicalTitle()
	company := req.CanonicalCompany()
	rawDate := req.CanonicalDate()
	if title == "" || company == "" || rawDate == "" {
		return nil, ErrMissingFields
	}

	date, err := parseDate(rawDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	status := req.Status
	if status == "" {
		status = models.StatusApplied
	}
	if !models.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	app := models.Application{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Company:     company,
		Status:      status,
		DateApplied: date,
		Notes:       req.Notes,
		Location:    req.Location,
		Salary:      req.Salary,
		CompanyLogo: req.CompanyLogo,
	}

	if err := s.db.Create(&app).Error; err != nil {
		return nil, err
	}

	resp := formatApplication(&app)
	return &resp, nil
}

func (s *ApplicationService) List(userID uuid.UUID, opts ListOptions) (*dto.ApplicationListResponse, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 || opts.Limit > 100 {
		opts.Limit = 10
	}

	query := s.db.Model(&models.Application{}).Scopes(identity.OwnedBy(userID))

	if opts.Status != "" && opts.Status != "all" {
		query = query.Where("status = ?", opts.Status)
	}
	if opts.Search != "" {
		pattern := "%" + strings.ToLower(opts.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(company) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var apps []models.Application
	err := query.Order(sortClause(opts.SortBy, opts.SortOrder)).
		Offset((opts.Page - 1) * opts.Limit).
		Limit(opts.Limit).
		Find(&apps).Error
	if err != nil {
		return nil, err
	}

	out := make([]dto.ApplicationResponse, 0, len(apps))
	for i := range apps {
		out = append(out, formatApplication(&apps[i]))
	}

	return &dto.ApplicationListResponse{
		Applications: out,
		Pagination:   dto.NewPagination(opts.Page, opts.Limit, total),
	}, nil
}

func (s *ApplicationService) Get(userID, id uuid.UUID) (*dto.ApplicationResponse, error) {
	app, err := s.find(userID, id)
	if err != nil {
		return nil, err
	}
	resp := formatApplication(app)
	return &resp, nil
}

func (s *ApplicationService) Update(userID, id uuid.UUID, req *dto.UpdateApplicationRequest) (*dto.ApplicationResponse, error) {
	app, err := s.find(userID, id)
	if err != nil {
		return nil, err
	}

	if title := req.CanonicalTitle(); title != nil {
		app.Title = *title
	}
	if company := req.CanonicalCompany(); company != nil {
		app.Company = *company
	}
	if req.Status != nil {
		if !models.ValidStatus(*req.Status) {
			return nil, ErrInvalidStatus
		}
		app.Status = *req.Status
	}
	if rawDate := req.CanonicalDate(); rawDate != nil {
		date, err := parseDate(*rawDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		app.DateApplied = date
	}
	if req.Notes != nil {
		app.Notes = req.Notes
	}
	if req.Location != nil {
		app.Location = req.Location
	}
	if req.Salary != nil {
		app.Salary = req.Salary
	}
	if req.CompanyLogo != nil {
		app.CompanyLogo = req.CompanyLogo
	}

	if err := s.db.Save(app).Error; err != nil {
		return nil, err
	}

	resp := formatApplication(app)
	return &resp, nil
}

func (s *ApplicationService) Delete(userID, id uuid.UUID) error {
	result := s.db.Scopes(identity.OwnedBy(userID)).Where("id = ?", id).Delete(&models.Application{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

// BulkDelete removes the caller's applications among ids and reports the
// count actually deleted. Foreign-owned ids are silently skipped.
func (s *ApplicationService) BulkDelete(userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, errors.New("ids array is required")
	}

	result := s.db.Scopes(identity.OwnedBy(userID)).Where("id IN ?", ids).Delete(&models.Application{})
	return result.RowsAffected, result.Error
}

func (s *ApplicationService) find(userID, id uuid.UUID) (*models.Application, error) {
	var app models.Application
	err := s.db.Scopes(identity.OwnedBy(userID)).First(&app, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func sortClause(sortBy, sortOrder string) string {
	dir := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		dir = "ASC"
	}
	switch sortBy {
	case "date":
		return "date_applied " + dir
	case "company":
		return "company " + dir
	case "status":
		return "status " + dir
	default:
		return "created_at " + dir
	}
}

func formatApplication(app *models.Application) dto.ApplicationResponse {
	return dto.ApplicationResponse{
		ID:              app.ID,
		JobTitle:        app.Title,
		CompanyName:     app.Company,
		ApplicationDate: app.DateApplied.UTC().Format("2006-01-02"),
		Status:          app.Status,
		Notes:           app.Notes,
		Location:        app.Location,
		Salary:          app.Salary,
		CompanyLogo:     app.CompanyLogo,
		CreatedAt:       app.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       app.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
