package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationType defines the type of notification
type NotificationType string

const (
	NotificationTypeQuoteSubmitted   NotificationType = "quote_submitted"
	NotificationTypeComparisonReady  NotificationType = "comparison_ready"
	NotificationTypeQuoteAwarded     NotificationType = "quote_awarded"
	NotificationTypePOIssued         NotificationType = "po_issued"
	NotificationTypeComplianceIssued NotificationType = "compliance_issued"
	NotificationTypeSystemAlert      NotificationType = "system_alert"
)

// NotificationStatus defines the status of a notification
type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "pending"
	NotificationStatusSent    NotificationStatus = "sent"
	NotificationStatusRead    NotificationStatus = "read"
	NotificationStatusFailed  NotificationStatus = "failed"
)

// Notification is an in-app notification row; email delivery is handled
// by services.EmailService and recorded via Status.
type Notification struct {
	ID         uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	User       *User              `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Type       NotificationType   `gorm:"type:varchar(40);not null" json:"type"`
	Title      string             `gorm:"size:255;not null" json:"title"`
	Message    string             `gorm:"type:text" json:"message"`
	EntityType string             `gorm:"size:50" json:"entity_type"`
	EntityID   *uuid.UUID         `gorm:"type:uuid" json:"entity_id"`
	Status     NotificationStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	ReadAt     *time.Time         `json:"read_at"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	n.ID = uuid.New()
	return
}
