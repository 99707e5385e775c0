package dto

import (
	"time"

	"github.com/google/uuid"
)

type AdminUserResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	Status    string     `json:"status"`
	LastLogin *time.Time `json:"last_login"`
	CreatedAt time.Time  `json:"created_at"`
}

type SetUserStatusRequest struct {
	Status string `json:"status"`
}

type OwnerSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type AdminApplicationResponse struct {
	ApplicationResponse
	User OwnerSummary `json:"user"`
}

type AdminDocumentResponse struct {
	DocumentResponse
	User OwnerSummary `json:"user"`
}

type AdminStatsResponse struct {
	Totals AdminTotals `json:"totals"`
}

type AdminTotals struct {
	Users        int64 `json:"users"`
	ActiveUsers  int64 `json:"activeUsers"`
	Applications int64 `json:"applications"`
	Documents    int64 `json:"documents"`
	Interactions int64 `json:"interactions"`
}
