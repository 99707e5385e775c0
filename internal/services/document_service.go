package services

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/careertrackhq/careertrack-backend/internal/dto"
	"github.com/careertrackhq/careertrack-backend/internal/identity"
	"github.com/careertrackhq/careertrack-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxUploadSize = 10 * 1024 * 1024

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrInvalidDocType   = errors.New("invalid document type")
	ErrFileTooLarge     = errors.New("file exceeds the 10MB limit")
	ErrInvalidFileType  = errors.New("invalid file format")
)

var allowedMimeTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"image/png":  true,
	"image/jpeg": true,
}

type DocumentService struct {
	db    *gorm.DB
	blobs BlobStore
}

func NewDocumentService(db *gorm.DB, blobs BlobStore) *DocumentService {
	return &DocumentService{db: db, blobs: blobs}
}

// Upload normalizes the type, persists the blob, and records the metadata.
func (s *DocumentService) Upload(userID uuid.UUID, docType, name, fileName, mimeType string, size int64, r io.Reader) (*dto.UploadDocumentResponse, error) {
	if docType == "" {
		docType = models.DocTypeCV
	}
	canonical, ok := models.NormalizeDocType(docType)
	if !ok {
		return nil, ErrInvalidDocType
	}

	if size > maxUploadSize {
		return nil, ErrFileTooLarge
	}
	if !allowedMimeTypes[mimeType] {
		return nil, ErrInvalidFileType
	}

	url, err := s.blobs.Save(fileName, io.LimitReader(r, maxUploadSize))
	if err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	if name == "" {
		name = fileName
	}

	doc := models.Document{
		ID:         uuid.New(),
		UserID:     userID,
		Type:       canonical,
		Name:       name,
		FileName:   fileName,
		FileURL:    url,
		FileSize:   size,
		MimeType:   mimeType,
		UploadedAt: time.Now().UTC(),
	}

	if err := s.db.Create(&doc).Error; err != nil {
		// The record failed, so the blob is orphaned; clean it up.
		if delErr := s.blobs.Delete(url); delErr != nil {
			slog.Warn("failed to remove orphaned blob", "url", url, "error", delErr)
		}
		return nil, err
	}

	return &dto.UploadDocumentResponse{ID: doc.ID, FileURL: doc.FileURL}, nil
}

func (s *DocumentService) List(userID uuid.UUID, typeFilter string, page, limit int) (*dto.DocumentListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	query := s.db.Model(&models.Document{}).Scopes(identity.OwnedBy(userID))
	if typeFilter != "" && typeFilter != "all" {
		canonical, ok := models.NormalizeDocType(typeFilter)
		if !ok {
			return nil, ErrInvalidDocType
		}
		query = query.Where("type = ?", canonical)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var docs []models.Document
	err := query.Order("uploaded_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&docs).Error
	if err != nil {
		return nil, err
	}

	out := make([]dto.DocumentResponse, 0, len(docs))
	for i := range docs {
		out = append(out, formatDocument(&docs[i]))
	}

	return &dto.DocumentListResponse{
		Documents:  out,
		Pagination: dto.NewPagination(page, limit, total),
	}, nil
}

func (s *DocumentService) Get(userID, id uuid.UUID) (*dto.DocumentResponse, error) {
	doc, err := s.find(userID, id)
	if err != nil {
		return nil, err
	}
	resp := formatDocument(doc)
	return &resp, nil
}

func (s *DocumentService) Update(userID, id uuid.UUID, req *dto.UpdateDocumentRequest) (*dto.DocumentResponse, error) {
	doc, err := s.find(userID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != "" {
		doc.Name = *req.Name
	}
	if req.Type != nil {
		canonical, ok := models.NormalizeDocType(*req.Type)
		if !ok {
			return nil, ErrInvalidDocType
		}
		doc.Type = canonical
	}

	if err := s.db.Save(doc).Error; err != nil {
		return nil, err
	}

	resp := formatDocument(doc)
	return &resp, nil
}

// Delete removes the metadata row, then deletes the blob best-effort: a
// failed blob delete is logged and never surfaced to the caller.
func (s *DocumentService) Delete(userID, id uuid.UUID) error {
	doc, err := s.find(userID, id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(doc).Error; err != nil {
		return err
	}

	if err := s.blobs.Delete(doc.FileURL); err != nil {
		slog.Warn("failed to delete blob", "url", doc.FileURL, "error", err)
	}
	return nil
}

// Download resolves the stored blob for serving.
func (s *DocumentService) Download(userID, id uuid.UUID) (path, fileName, mimeType string, err error) {
	doc, err := s.find(userID, id)
	if err != nil {
		return "", "", "", err
	}

	path, err = s.blobs.Resolve(doc.FileURL)
	if err != nil {
		return "", "", "", ErrDocumentNotFound
	}
	return path, doc.FileName, doc.MimeType, nil
}

// Status summarizes the caller's documents per canonical type.
func (s *DocumentService) Status(userID uuid.UUID) (*dto.DocumentStatusResponse, error) {
	var docs []models.Document
	err := s.db.Scopes(identity.OwnedBy(userID)).
		Select("type", "uploaded_at").
		Order("uploaded_at ASC").
		Find(&docs).Error
	if err != nil {
		return nil, err
	}

	types := make(map[string]dto.DocumentTypeStatus, len(models.DocumentTypes))
	for _, t := range models.DocumentTypes {
		types[t] = dto.DocumentTypeStatus{}
	}

	var total int64
	for i := range docs {
		entry := types[docs[i].Type]
		entry.Count++
		uploaded := docs[i].UploadedAt
		entry.LastUpload = &uploaded
		types[docs[i].Type] = entry
		total++
	}

	return &dto.DocumentStatusResponse{Types: types, Total: total}, nil
}

func (s *DocumentService) find(userID, id uuid.UUID) (*models.Document, error) {
	var doc models.Document
	err := s.db.Scopes(identity.OwnedBy(userID)).First(&doc, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func formatDocument(doc *models.Document) dto.DocumentResponse {
	return dto.DocumentResponse{
		ID:         doc.ID,
		Type:       doc.Type,
		Name:       doc.Name,
		FileName:   doc.FileName,
		FileURL:    doc.FileURL,
		FileSize:   doc.FileSize,
		MimeType:   doc.MimeType,
		UploadedAt: doc.UploadedAt,
	}
}
