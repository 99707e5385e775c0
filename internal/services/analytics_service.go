package services

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/careertrackhq/careertrack-backend/internal/dto"
	"github.com/careertrackhq/careertrack-backend/internal/identity"
	"github.com/careertrackhq/careertrack-backend/internal/models"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// AnalyticsService derives aggregate metrics over an owner's applications
// without mutating them. Every query is owner-scoped before any other
// predicate is applied.
type AnalyticsService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db, now: time.Now}
}

// windowDays parses the dateRange query value. "all", empty, and anything
// non-numeric mean an unbounded window.
func windowDays(dateRange string) (int, bool) {
	if dateRange == "" || dateRange == "all" {
		return 0, false
	}
	days, err := strconv.Atoi(dateRange)
	if err != nil || days <= 0 {
		return 0, false
	}
	return days, true
}

// calculateChange is the period-over-period delta in percent. Growth from a
// zero base counts as a flat 100% jump rather than a division by zero.
func calculateChange(current, previous int64) int {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return int(math.Round(float64(current-previous) / float64(previous) * 100))
}

type windowMetrics struct {
	Total      int64 `gorm:"column:total"`
	Interviews int64 `gorm:"column:interviews"`
	Offers     int64 `gorm:"column:offers"`
	Rejections int64 `gorm:"column:rejections"`
}

func (s *AnalyticsService) scoped(userID uuid.UUID, status string) *gorm.DB {
	query := s.db.Model(&models.Application{}).Scopes(identity.OwnedBy(userID))
	if status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}
	return query
}

func (s *AnalyticsService) windowMetrics(userID uuid.UUID, status string, from, to *time.Time) (windowMetrics, error) {
	query := s.scoped(userID, status)
	if from != nil {
		query = query.Where("date_applied >= ?", *from)
	}
	if to != nil {
		query = query.Where("date_applied < ?", *to)
	}

	var m windowMetrics
	err := query.Select(
		"COUNT(*) AS total, " +
			"COALESCE(SUM(CASE WHEN status = 'Interview' THEN 1 ELSE 0 END), 0) AS interviews, " +
			"COALESCE(SUM(CASE WHEN status = 'Offer' THEN 1 ELSE 0 END), 0) AS offers, " +
			"COALESCE(SUM(CASE WHEN status = 'Rejected' THEN 1 ELSE 0 END), 0) AS rejections",
	).Scan(&m).Error
	return m, err
}

// KPIs compares the window [now-R, now) against the immediately preceding
// equal-length window [now-2R, now-R). An unbounded range compares the full
// set against itself, so every delta reads as 0.
func (s *AnalyticsService) KPIs(userID uuid.UUID, dateRange, status string) (*dto.KPIResponse, error) {
	now := s.now()

	var current, previous windowMetrics
	days, bounded := windowDays(dateRange)

	if bounded {
		curFrom := now.AddDate(0, 0, -days)
		prevFrom := now.AddDate(0, 0, -2*days)

		var g errgroup.Group
		g.Go(func() error {
			var err error
			current, err = s.windowMetrics(userID, status, &curFrom, nil)
			return err
		})
		g.Go(func() error {
			var err error
			previous, err = s.windowMetrics(userID, status, &prevFrom, &curFrom)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		var err error
		current, err = s.windowMetrics(userID, status, nil, nil)
		if err != nil {
			return nil, err
		}
		previous = current
	}

	return &dto.KPIResponse{
		TotalApplications:         current.Total,
		TotalApplicationsChange:   calculateChange(current.Total, previous.Total),
		InterviewsScheduled:       current.Interviews,
		InterviewsScheduledChange: calculateChange(current.Interviews, previous.Interviews),
		OffersReceived:            current.Offers,
		OffersReceivedChange:      calculateChange(current.Offers, previous.Offers),
		Rejections:                current.Rejections,
		RejectionsChange:          calculateChange(current.Rejections, previous.Rejections),
	}, nil
}

// Charts returns the day-bucketed time series, the status distribution, and
// the recent-application timeline over one filtered set. Days with no
// applications are absent rather than zero-filled.
func (s *AnalyticsService) Charts(userID uuid.UUID, dateRange, status string) (*dto.ChartsResponse, error) {
	filtered := func() *gorm.DB {
		query := s.scoped(userID, status)
		if days, bounded := windowDays(dateRange); bounded {
			query = query.Where("date_applied >= ?", s.now().AddDate(0, 0, -days))
		}
		return query
	}

	var rows []models.Application
	if err := filtered().Select("date_applied").Order("date_applied ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	overTime := make([]dto.DateCount, 0)
	for i := range rows {
		day := rows[i].DateApplied.UTC().Format("2006-01-02")
		if n := len(overTime); n > 0 && overTime[n-1].Date == day {
			overTime[n-1].Count++
		} else {
			overTime = append(overTime, dto.DateCount{Date: day, Count: 1})
		}
	}

	type statusRow struct {
		Status string
		Count  int64
	}
	var statusRows []statusRow
	err := filtered().Select("status, COUNT(*) AS count").Group("status").Scan(&statusRows).Error
	if err != nil {
		return nil, err
	}

	distribution := make(map[string]int64, len(models.ApplicationStatuses))
	for _, st := range models.ApplicationStatuses {
		distribution[st] = 0
	}
	for _, r := range statusRows {
		distribution[r.Status] = r.Count
	}

	var recent []models.Application
	err = filtered().Select("id", "title", "company", "status", "date_applied").
		Order("date_applied DESC").
		Limit(50).
		Find(&recent).Error
	if err != nil {
		return nil, err
	}

	timeline := make([]dto.TimelineEntry, 0, len(recent))
	for i := range recent {
		timeline = append(timeline, dto.TimelineEntry{
			Date:          recent[i].DateApplied.UTC().Format("2006-01-02"),
			Event:         recent[i].Status,
			ApplicationID: recent[i].ID.String(),
			JobTitle:      recent[i].Title,
			CompanyName:   recent[i].Company,
		})
	}

	return &dto.ChartsResponse{
		ApplicationsOverTime: overTime,
		StatusDistribution:   distribution,
		Timeline:             timeline,
	}, nil
}

// Activity lists the most recently touched applications, classifying each as
// created or updated by exact create/update timestamp equality.
func (s *AnalyticsService) Activity(userID uuid.UUID, limit int) (*dto.ActivityResponse, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	var apps []models.Application
	err := s.db.Scopes(identity.OwnedBy(userID)).
		Select("id", "title", "company", "status", "created_at", "updated_at").
		Order("updated_at DESC").
		Limit(limit).
		Find(&apps).Error
	if err != nil {
		return nil, err
	}

	activities := make([]dto.ActivityEntry, 0, len(apps))
	for i := range apps {
		app := &apps[i]
		isNew := app.CreatedAt.Equal(app.UpdatedAt)

		entry := dto.ActivityEntry{
			ID:            fmt.Sprintf("activity_%s_%d", app.ID, i),
			ApplicationID: app.ID.String(),
			JobTitle:      app.Title,
			CompanyName:   app.Company,
			Timestamp:     app.UpdatedAt.UTC().Format(time.RFC3339),
		}
		if isNew {
			entry.Type = "application_created"
			entry.Description = fmt.Sprintf("New application: %s at %s", app.Title, app.Company)
		} else {
			entry.Type = "application_updated"
			entry.Description = fmt.Sprintf("Application updated: %s at %s - Status: %s", app.Title, app.Company, app.Status)
		}
		activities = append(activities, entry)
	}

	return &dto.ActivityResponse{Activities: activities}, nil
}

// StatusCounts tallies all of a user's applications by status; statuses with
// no applications report 0.
func (s *AnalyticsService) StatusCounts(userID uuid.UUID) (map[string]int64, error) {
	type statusRow struct {
		Status string
		Count  int64
	}
	var rows []statusRow
	err := s.db.Model(&models.Application{}).
		Scopes(identity.OwnedBy(userID)).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(models.ApplicationStatuses))
	for _, st := range models.ApplicationStatuses {
		counts[st] = 0
	}
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

// Summary is the simple status-bucketed progress overview.
func (s *AnalyticsService) Summary(userID uuid.UUID) (*dto.ProgressSummary, error) {
	counts, err := s.StatusCounts(userID)
	if err != nil {
		return nil, err
	}

	chart := make([]dto.ChartSlice, 0, len(models.ApplicationStatuses))
	for _, st := range models.ApplicationStatuses {
		chart = append(chart, dto.ChartSlice{Label: st, Value: counts[st]})
	}

	return &dto.ProgressSummary{
		Applications: counts[models.StatusApplied] + counts[models.StatusInterview] + counts[models.StatusOffer] + counts[models.StatusRejected],
		Interviews:   counts[models.StatusInterview],
		Offers:       counts[models.StatusOffer],
		Rejections:   counts[models.StatusRejected],
		ChartData:    chart,
	}, nil
}

// DashboardStats backs the landing dashboard cards.
func (s *AnalyticsService) DashboardStats(userID uuid.UUID) (*dto.DashboardStats, error) {
	counts, err := s.StatusCounts(userID)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, c := range counts {
		total += c
	}

	return &dto.DashboardStats{
		TotalApplications:   total,
		InterviewsScheduled: counts[models.StatusInterview],
		OffersReceived:      counts[models.StatusOffer],
	}, nil
}
