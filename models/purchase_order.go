package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PurchaseOrderStatus defines the lifecycle of a purchase order
type PurchaseOrderStatus string

const (
	POStatusIssued       PurchaseOrderStatus = "issued"
	POStatusAcknowledged PurchaseOrderStatus = "acknowledged"
	POStatusFulfilled    PurchaseOrderStatus = "fulfilled"
	POStatusClosed       PurchaseOrderStatus = "closed"
	POStatusCancelled    PurchaseOrderStatus = "cancelled"
)

// PurchaseOrder is generated from the accepted quote of an awarded RFQ,
// carrying that quote's commercial terms and line items.
type PurchaseOrder struct {
	ID               uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	PONumber         string              `gorm:"size:30;uniqueIndex;not null" json:"po_number"` // e.g. PO-2026-0311
	RFQID            uuid.UUID           `gorm:"type:uuid;not null;index" json:"rfq_id"`
	RFQ              *RFQ                `gorm:"foreignKey:RFQID" json:"rfq,omitempty"`
	QuoteID          uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex" json:"quote_id"`
	Quote            *Quote              `gorm:"foreignKey:QuoteID" json:"quote,omitempty"`
	VendorID         uuid.UUID           `gorm:"type:uuid;not null;index" json:"vendor_id"`
	Vendor           *Vendor             `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
	TotalAmount      float64             `gorm:"not null" json:"total_amount"`
	Currency         string              `gorm:"size:3;default:'USD'" json:"currency"`
	DeliveryLocation string              `gorm:"size:255" json:"delivery_location"`
	DeliveryDate     *time.Time          `json:"delivery_date"`
	PaymentTerms     string              `gorm:"size:100" json:"payment_terms"`
	Status           PurchaseOrderStatus `gorm:"type:varchar(20);default:'issued'" json:"status"`
	IssuedByID       uuid.UUID           `gorm:"type:uuid" json:"issued_by_id"`
	IssuedBy         *User               `gorm:"foreignKey:IssuedByID" json:"issued_by,omitempty"`
	IssuedAt         time.Time           `json:"issued_at"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
	DeletedAt        gorm.DeletedAt      `gorm:"index" json:"-"`

	LineItems []PurchaseOrderLineItem `gorm:"foreignKey:PurchaseOrderID" json:"line_items,omitempty"`
}

func (po *PurchaseOrder) BeforeCreate(tx *gorm.DB) (err error) {
	po.ID = uuid.New()
	if po.IssuedAt.IsZero() {
		po.IssuedAt = time.Now()
	}
	return
}

// PurchaseOrderLineItem is copied from the accepted quote's line items.
type PurchaseOrderLineItem struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PurchaseOrderID uuid.UUID `gorm:"type:uuid;not null;index" json:"purchase_order_id"`
	ItemName        string    `gorm:"size:255;not null" json:"item_name"`
	ImpaCode        string    `gorm:"size:10" json:"impa_code"`
	Description     string    `gorm:"type:text" json:"description"`
	Quantity        float64   `gorm:"not null" json:"quantity"`
	Unit            string    `gorm:"size:20" json:"unit"`
	UnitPrice       float64   `gorm:"not null" json:"unit_price"`
	TotalPrice      float64   `gorm:"not null" json:"total_price"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (li *PurchaseOrderLineItem) BeforeCreate(tx *gorm.DB) (err error) {
	li.ID = uuid.New()
	return
}
