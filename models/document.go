package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DocumentStatus defines the status of a document
type DocumentStatus string

const (
	DocumentStatusDraft    DocumentStatus = "draft"
	DocumentStatusActive   DocumentStatus = "active"
	DocumentStatusArchived DocumentStatus = "archived"
)

// DocumentMetadata stores flexible metadata as JSON
type DocumentMetadata map[string]interface{}

// Scan implements sql.Scanner interface
func (m *DocumentMetadata) Scan(value interface{}) error {
	if value == nil {
		*m = make(DocumentMetadata)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, m)
}

// Value implements driver.Valuer interface
func (m DocumentMetadata) Value() (driver.Value, error) {
	if m == nil {
		return json.Marshal(make(DocumentMetadata))
	}
	return json.Marshal(m)
}

// DocumentCategory groups documents for navigation (certificates,
// manuals, vendor paperwork, survey reports, ...).
type DocumentCategory struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (dc *DocumentCategory) BeforeCreate(tx *gorm.DB) (err error) {
	dc.ID = uuid.New()
	return
}

// Document is a versioned file attached to a procurement or compliance
// entity (RFQ, quote, purchase order, compliance report) or standalone.
type Document struct {
	ID            uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	Title         string            `gorm:"size:255;not null" json:"title"`
	Description   string            `gorm:"type:text" json:"description"`
	FileName      string            `gorm:"size:255;not null" json:"file_name"`
	FileSize      int64             `gorm:"not null" json:"file_size"` // bytes
	FileType      string            `gorm:"size:100;not null" json:"file_type"` // MIME type
	FilePath      string            `gorm:"size:500;not null" json:"file_path"`
	FileHash      string            `gorm:"size:64" json:"file_hash"` // SHA256
	Status        DocumentStatus    `gorm:"type:varchar(20);default:'draft'" json:"status"`
	Version       int               `gorm:"default:1" json:"version"`
	CategoryID    *uuid.UUID        `gorm:"type:uuid" json:"category_id"`
	Category      *DocumentCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	EntityType    string            `gorm:"size:50;index:idx_document_entity" json:"entity_type"` // optional attachment target
	EntityID      *uuid.UUID        `gorm:"type:uuid;index:idx_document_entity" json:"entity_id"`
	VesselName    string            `gorm:"size:100;index" json:"vessel_name"`
	Metadata      DocumentMetadata  `gorm:"type:jsonb;default:'{}'" json:"metadata"`
	UploadedByID  uuid.UUID         `gorm:"type:uuid;not null" json:"uploaded_by_id"`
	UploadedBy    *User             `gorm:"foreignKey:UploadedByID" json:"uploaded_by,omitempty"`
	DownloadCount int               `gorm:"default:0" json:"download_count"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	DeletedAt     gorm.DeletedAt    `gorm:"index" json:"-"`

	Versions []DocumentVersion `gorm:"foreignKey:DocumentID" json:"versions,omitempty"`
}

func (d *Document) BeforeCreate(tx *gorm.DB) (err error) {
	d.ID = uuid.New()
	return
}

// DocumentVersion represents one immutable version of a document
type DocumentVersion struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DocumentID       uuid.UUID `gorm:"type:uuid;not null;index" json:"document_id"`
	Document         *Document `gorm:"foreignKey:DocumentID" json:"document,omitempty"`
	VersionNumber    int       `gorm:"not null" json:"version_number"`
	FileName         string    `gorm:"size:255;not null" json:"file_name"`
	FileSize         int64     `gorm:"not null" json:"file_size"`
	FileType         string    `gorm:"size:100;not null" json:"file_type"`
	FilePath         string    `gorm:"size:500;not null" json:"file_path"`
	FileHash         string    `gorm:"size:64" json:"file_hash"`
	ChangeLog        string    `gorm:"type:text" json:"change_log"`
	CreatedByID      uuid.UUID `gorm:"type:uuid;not null" json:"created_by_id"`
	CreatedBy        *User     `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	IsCurrentVersion bool      `gorm:"default:false" json:"is_current_version"`
}

func (dv *DocumentVersion) BeforeCreate(tx *gorm.DB) (err error) {
	dv.ID = uuid.New()
	return
}
