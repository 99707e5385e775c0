package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DocTypeCV          = "CV"
	DocTypeCoverLetter = "CoverLetter"
	DocTypeCertificate = "Certificate"
)

// DocumentTypes lists the canonical document types.
var DocumentTypes = []string{DocTypeCV, DocTypeCoverLetter, DocTypeCertificate}

// docTypeAliases maps legacy lowercase/hyphenated type names onto the
// canonical enum. Canonical names map to themselves.
var docTypeAliases = map[string]string{
	"cv":           DocTypeCV,
	"coverletter":  DocTypeCoverLetter,
	"cover-letter": DocTypeCoverLetter,
	"certificate":  DocTypeCertificate,
}

// NormalizeDocType collapses a type string (canonical or legacy alias) to its
// canonical form. The second return is false for unknown types.
func NormalizeDocType(t string) (string, bool) {
	for _, canonical := range DocumentTypes {
		if t == canonical {
			return canonical, true
		}
	}
	if canonical, ok := docTypeAliases[strings.ToLower(t)]; ok {
		return canonical, true
	}
	return "", false
}

// Document is an uploaded artifact (CV, cover letter, certificate). The type
// column always holds the canonical form; blobs live outside the database and
// are referenced by FileURL.
type Document struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User       *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Type       string    `gorm:"size:20;not null;index" json:"type"`
	Name       string    `gorm:"size:255" json:"name"`
	FileName   string    `gorm:"size:255;not null" json:"file_name"`
	FileURL    string    `gorm:"type:text;not null" json:"file_url"`
	FileSize   int64     `gorm:"not null" json:"file_size"`
	MimeType   string    `gorm:"size:100" json:"mime_type"`
	UploadedAt time.Time `gorm:"index" json:"uploaded_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (d *Document) BeforeCreate(_ *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
