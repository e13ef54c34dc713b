package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequisitionStatus defines the lifecycle of a requisition
type RequisitionStatus string

const (
	RequisitionStatusDraft     RequisitionStatus = "draft"
	RequisitionStatusSubmitted RequisitionStatus = "submitted"
	RequisitionStatusApproved  RequisitionStatus = "approved"
	RequisitionStatusConverted RequisitionStatus = "converted" // converted to RFQ
	RequisitionStatusRejected  RequisitionStatus = "rejected"
)

// RequisitionPriority for ordering on dashboards
type RequisitionPriority string

const (
	RequisitionPriorityRoutine  RequisitionPriority = "routine"
	RequisitionPriorityUrgent   RequisitionPriority = "urgent"
	RequisitionPriorityCritical RequisitionPriority = "critical" // safety / class items
)

// Requisition is a vessel's procurement need raised by crew or the
// superintendent, later converted into an RFQ for competitive quoting.
type Requisition struct {
	ID                    uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	Reference             string              `gorm:"size:30;uniqueIndex;not null" json:"reference"` // e.g. REQ-2026-0877
	Title                 string              `gorm:"size:255;not null" json:"title"`
	Description           string              `gorm:"type:text" json:"description"`
	VesselName            string              `gorm:"size:100;not null" json:"vessel_name"`
	IMONumber             string              `gorm:"size:10" json:"imo_number"`
	Category              string              `gorm:"size:50" json:"category"` // deck, engine, provisions, safety
	Priority              RequisitionPriority `gorm:"type:varchar(20);default:'routine'" json:"priority"`
	DeliveryLocation      string              `gorm:"size:255" json:"delivery_location"`
	RequestedDeliveryDate *time.Time          `json:"requested_delivery_date"`
	Status                RequisitionStatus   `gorm:"type:varchar(20);default:'draft'" json:"status"`
	RequestedByID         uuid.UUID           `gorm:"type:uuid" json:"requested_by_id"`
	RequestedBy           *User               `gorm:"foreignKey:RequestedByID" json:"requested_by,omitempty"`
	ApprovedByID          *uuid.UUID          `gorm:"type:uuid" json:"approved_by_id"`
	ApprovedBy            *User               `gorm:"foreignKey:ApprovedByID" json:"approved_by,omitempty"`
	ApprovedAt            *time.Time          `json:"approved_at"`
	CreatedAt             time.Time           `json:"created_at"`
	UpdatedAt             time.Time           `json:"updated_at"`
	DeletedAt             gorm.DeletedAt      `gorm:"index" json:"-"`

	LineItems []RequisitionLineItem `gorm:"foreignKey:RequisitionID" json:"line_items,omitempty"`
}

func (r *Requisition) BeforeCreate(tx *gorm.DB) (err error) {
	r.ID = uuid.New()
	return
}

// RequisitionLineItem is one requested item on a requisition.
type RequisitionLineItem struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RequisitionID uuid.UUID `gorm:"type:uuid;not null;index" json:"requisition_id"`
	ItemName      string    `gorm:"size:255;not null" json:"item_name"`
	ImpaCode      string    `gorm:"size:10" json:"impa_code"`
	Description   string    `gorm:"type:text" json:"description"`
	Quantity      float64   `gorm:"not null" json:"quantity"`
	Unit          string    `gorm:"size:20" json:"unit"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (li *RequisitionLineItem) BeforeCreate(tx *gorm.DB) (err error) {
	li.ID = uuid.New()
	return
}
