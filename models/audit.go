package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditAction defines the type of audited action
type AuditAction string

const (
	AuditActionCreate       AuditAction = "create"
	AuditActionUpdate       AuditAction = "update"
	AuditActionDelete       AuditAction = "delete"
	AuditActionStatusChange AuditAction = "status_change"
	AuditActionCompare      AuditAction = "compare"
	AuditActionApprove      AuditAction = "approve"
	AuditActionReject       AuditAction = "reject"
	AuditActionIssue        AuditAction = "issue"
	AuditActionExport       AuditAction = "export"
)

// AuditDetails stores flexible audit payloads as JSON
type AuditDetails map[string]interface{}

// Scan implements sql.Scanner interface
func (d *AuditDetails) Scan(value interface{}) error {
	if value == nil {
		*d = make(AuditDetails)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, d)
}

// Value implements driver.Valuer interface
func (d AuditDetails) Value() (driver.Value, error) {
	if d == nil {
		return json.Marshal(make(AuditDetails))
	}
	return json.Marshal(d)
}

// AuditLog is the append-only trail of decisions and mutations across
// the procurement domain. Rows are never updated or deleted.
type AuditLog struct {
	ID         uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	EntityType string       `gorm:"size:50;not null;index:idx_audit_entity" json:"entity_type"` // "rfq", "quote", "purchase_order", ...
	EntityID   uuid.UUID    `gorm:"type:uuid;not null;index:idx_audit_entity" json:"entity_id"`
	Action     AuditAction  `gorm:"type:varchar(30);not null" json:"action"`
	UserID     *uuid.UUID   `gorm:"type:uuid;index" json:"user_id"`
	User       *User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Details    AuditDetails `gorm:"type:jsonb;default:'{}'" json:"details"`
	IPAddress  string       `gorm:"size:45" json:"ip_address"`
	UserAgent  string       `gorm:"size:255" json:"user_agent"`
	CreatedAt  time.Time    `gorm:"index" json:"created_at"`
}

func (al *AuditLog) BeforeCreate(tx *gorm.DB) (err error) {
	al.ID = uuid.New()
	return
}
