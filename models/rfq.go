package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RFQStatus defines the lifecycle of a request for quote
type RFQStatus string

const (
	RFQStatusOpen      RFQStatus = "open"
	RFQStatusAwarded   RFQStatus = "awarded"
	RFQStatusCancelled RFQStatus = "cancelled"
)

// QuoteStatus defines the lifecycle of a vendor quote
type QuoteStatus string

const (
	QuoteStatusSubmitted QuoteStatus = "submitted"
	QuoteStatusAccepted  QuoteStatus = "accepted"
	QuoteStatusRejected  QuoteStatus = "rejected"
	QuoteStatusWithdrawn QuoteStatus = "withdrawn"
)

// RFQ groups competing vendor quotes for a single procurement need.
// RequestedDeliveryDate and DeliveryLocation are the reference points
// for delivery and location scoring. Once a quote is approved the RFQ
// moves to "awarded" and no further scoring is meaningful.
type RFQ struct {
	ID                    uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Reference             string      `gorm:"size:30;uniqueIndex;not null" json:"reference"` // e.g. RFQ-2026-0142
	Title                 string      `gorm:"size:255;not null" json:"title"`
	Description           string      `gorm:"type:text" json:"description"`
	RequisitionID         *uuid.UUID  `gorm:"type:uuid;index" json:"requisition_id"`
	Requisition           *Requisition `gorm:"foreignKey:RequisitionID" json:"requisition,omitempty"`
	VesselName            string      `gorm:"size:100" json:"vessel_name"`
	IMONumber             string      `gorm:"size:10" json:"imo_number"`
	DeliveryLocation      string      `gorm:"size:255" json:"delivery_location"` // free text, "Port, Country"
	DeliveryLatitude      *float64    `json:"delivery_latitude"`                 // optional port coordinates, informational
	DeliveryLongitude     *float64    `json:"delivery_longitude"`
	RequestedDeliveryDate *time.Time  `json:"requested_delivery_date"`
	Status                RFQStatus   `gorm:"type:varchar(20);default:'open'" json:"status"`
	CreatedByID           uuid.UUID   `gorm:"type:uuid" json:"created_by_id"`
	CreatedBy             *User       `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	CreatedAt             time.Time   `json:"created_at"`
	UpdatedAt             time.Time   `json:"updated_at"`
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"-"`

	Quotes []Quote `gorm:"foreignKey:RFQID" json:"quotes,omitempty"`
}

func (r *RFQ) BeforeCreate(tx *gorm.DB) (err error) {
	r.ID = uuid.New()
	return
}

// Quote is a vendor's priced response to an RFQ. The four component score
// fields plus TotalScore are written by the comparison step and recomputed
// on every run; everything else is immutable after submission except the
// status transition performed by the award step.
type Quote struct {
	ID                   uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	RFQID                uuid.UUID   `gorm:"type:uuid;not null;index" json:"rfq_id"`
	RFQ                  *RFQ        `gorm:"foreignKey:RFQID" json:"rfq,omitempty"`
	VendorID             uuid.UUID   `gorm:"type:uuid;not null;index" json:"vendor_id"`
	Vendor               *Vendor     `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
	TotalAmount          float64     `gorm:"not null" json:"total_amount"`
	Currency             string      `gorm:"size:3;default:'USD'" json:"currency"`
	ProposedDeliveryDate *time.Time  `json:"proposed_delivery_date"`
	ValidUntil           *time.Time  `json:"valid_until"`
	Notes                string      `gorm:"type:text" json:"notes"`
	Status               QuoteStatus `gorm:"type:varchar(20);default:'submitted'" json:"status"`
	SubmittedAt          time.Time   `json:"submitted_at"`

	// Score fields, persisted by the comparison step
	PriceScore    *float64 `json:"price_score"`
	DeliveryScore *float64 `json:"delivery_score"`
	QualityScore  *float64 `json:"quality_score"`
	LocationScore *float64 `json:"location_score"`
	TotalScore    *float64 `json:"total_score"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	LineItems []QuoteLineItem `gorm:"foreignKey:QuoteID" json:"line_items,omitempty"`
}

func (q *Quote) BeforeCreate(tx *gorm.DB) (err error) {
	q.ID = uuid.New()
	if q.SubmittedAt.IsZero() {
		q.SubmittedAt = time.Now()
	}
	return
}

// QuoteLineItem is a priced line on a quote, mirroring a requisition line.
type QuoteLineItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	QuoteID     uuid.UUID `gorm:"type:uuid;not null;index" json:"quote_id"`
	ItemName    string    `gorm:"size:255;not null" json:"item_name"`
	ImpaCode    string    `gorm:"size:10" json:"impa_code"` // IMPA marine stores code
	Description string    `gorm:"type:text" json:"description"`
	Quantity    float64   `gorm:"not null" json:"quantity"`
	Unit        string    `gorm:"size:20" json:"unit"`
	UnitPrice   float64   `gorm:"not null" json:"unit_price"`
	TotalPrice  float64   `gorm:"not null" json:"total_price"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (li *QuoteLineItem) BeforeCreate(tx *gorm.DB) (err error) {
	li.ID = uuid.New()
	return
}
