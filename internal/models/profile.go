package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Profile is the 1:1 extension of a User, created lazily on the first
// profile update. The unique index on user_id backs the atomic upsert.
type Profile struct {
	ID           uuid.UUID                    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID                    `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Fullname     *string                      `gorm:"size:100" json:"fullname,omitempty"`
	Education    *string                      `gorm:"size:200" json:"education,omitempty"`
	Skills       datatypes.JSONSlice[string]  `json:"skills"`
	Bio          *string                      `gorm:"size:1000" json:"bio,omitempty"`
	Occupation   *string                      `gorm:"size:100" json:"occupation,omitempty"`
	CompanyName  *string                      `gorm:"size:150" json:"company_name,omitempty"`
	Availability *string                      `gorm:"size:100" json:"availability,omitempty"`
	HourlyRate   *string                      `gorm:"size:50" json:"hourly_rate,omitempty"`
	Location     *string                      `gorm:"size:200" json:"location,omitempty"`
	CreatedAt    time.Time                    `json:"created_at"`
	UpdatedAt    time.Time                    `json:"updated_at"`
}

func (p *Profile) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
