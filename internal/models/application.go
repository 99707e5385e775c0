package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusApplied   = "Applied"
	StatusInterview = "Interview"
	StatusOffer     = "Offer"
	StatusRejected  = "Rejected"
)

// ApplicationStatuses lists the valid statuses in display order.
var ApplicationStatuses = []string{StatusApplied, StatusInterview, StatusOffer, StatusRejected}

// Application is one tracked job application, always owned by a user.
type Application struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Title       string         `gorm:"size:150;not null" json:"title"`
	Company     string         `gorm:"size:150;not null" json:"company"`
	Status      string         `gorm:"size:20;default:'Applied';index" json:"status"`
	DateApplied time.Time      `gorm:"not null;index" json:"date_applied"`
	Notes       *string        `gorm:"size:500" json:"notes,omitempty"`
	Location    *string        `gorm:"size:200" json:"location,omitempty"`
	Salary      *string        `gorm:"size:100" json:"salary,omitempty"`
	CompanyLogo *string        `gorm:"type:text" json:"company_logo,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (a *Application) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// ValidStatus reports whether s is one of the four application statuses.
func ValidStatus(s string) bool {
	for _, v := range ApplicationStatuses {
		if s == v {
			return true
		}
	}
	return false
}
