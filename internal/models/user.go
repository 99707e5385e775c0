package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleCandidate = "candidate"
	RoleAdmin     = "admin"

	StatusActive   = "active"
	StatusInactive = "inactive"
)

// User is the identity record. Email (and username, when set) are unique
// across the whole system. Users are soft-deleted only.
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Email     string         `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Role      string         `gorm:"size:20;default:'candidate'" json:"role"`
	Status    string         `gorm:"size:20;default:'active'" json:"status"`
	Username  *string        `gorm:"size:100;uniqueIndex" json:"username,omitempty"`
	FirstName *string        `gorm:"size:100" json:"first_name,omitempty"`
	LastName  *string        `gorm:"size:100" json:"last_name,omitempty"`
	Phone     *string        `gorm:"size:50" json:"phone,omitempty"`
	Language  string         `gorm:"size:10;default:'en'" json:"language"`
	Pic       *string        `gorm:"type:text" json:"pic,omitempty"`
	LastLogin *time.Time     `json:"last_login,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
