package dto

import (
	"time"

	"github.com/google/uuid"
)

type DocumentResponse struct {
	ID         uuid.UUID `json:"id"`
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	FileName   string    `json:"fileName"`
	FileURL    string    `json:"fileUrl"`
	FileSize   int64     `json:"fileSize"`
	MimeType   string    `json:"mimeType"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type DocumentListResponse struct {
	Documents  []DocumentResponse `json:"documents"`
	Pagination Pagination         `json:"pagination"`
}

type UploadDocumentResponse struct {
	ID      uuid.UUID `json:"id"`
	FileURL string    `json:"fileUrl"`
}

type UpdateDocumentRequest struct {
	Name *string `json:"name"`
	Type *string `json:"type"`
}

// DocumentTypeStatus summarizes one canonical type for the upload checklist.
type DocumentTypeStatus struct {
	Count      int64      `json:"count"`
	LastUpload *time.Time `json:"lastUpload"`
}

type DocumentStatusResponse struct {
	Types map[string]DocumentTypeStatus `json:"types"`
	Total int64                         `json:"total"`
}
