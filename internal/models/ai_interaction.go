package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AIInteraction is one query/response exchange with the career assistant.
// Interactions sharing a ConversationID form one logical thread; a thread
// never spans users.
type AIInteraction struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	ConversationID uuid.UUID `gorm:"type:uuid;not null;index" json:"conversation_id"`
	UserQuery      string    `gorm:"size:2000;not null" json:"user_query"`
	AIResponse     string    `gorm:"size:2000" json:"ai_response"`
	InputMode      string    `gorm:"size:10;default:'text'" json:"input_mode"`
	ResponseMode   string    `gorm:"size:10;default:'text'" json:"response_mode"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (i *AIInteraction) BeforeCreate(_ *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
