package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// VendorStatus defines the lifecycle status of a vendor
type VendorStatus string

const (
	VendorStatusActive      VendorStatus = "active"
	VendorStatusSuspended   VendorStatus = "suspended"
	VendorStatusBlacklisted VendorStatus = "blacklisted"
)

// Vendor is a ship chandler or supplier in the vendor master.
// QualityRating is maintained externally (vendor audits) and is a
// read-only input to quote scoring.
type Vendor struct {
	ID            uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string       `gorm:"size:150;not null" json:"name"`
	Code          string       `gorm:"size:30;uniqueIndex;not null" json:"code"`
	Email         string       `gorm:"size:100" json:"email"`
	Phone         string       `gorm:"size:20" json:"phone"`
	Address       string       `gorm:"type:text" json:"address"`
	Country       string       `gorm:"size:80" json:"country"`
	TaxID         string       `gorm:"size:50" json:"tax_id"`
	QualityRating *float64     `json:"quality_rating"` // 0-10, externally curated; nil = not yet rated
	Status        VendorStatus `gorm:"type:varchar(20);default:'active'" json:"status"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	ServiceAreas     []VendorServiceArea     `gorm:"foreignKey:VendorID" json:"service_areas,omitempty"`
	PortCapabilities []VendorPortCapability  `gorm:"foreignKey:VendorID" json:"port_capabilities,omitempty"`
}

func (v *Vendor) BeforeCreate(tx *gorm.DB) (err error) {
	v.ID = uuid.New()
	return
}

// ServesCountry reports whether the vendor lists the country among its
// service areas. Matching is case-insensitive on the trimmed name.
func (v *Vendor) ServesCountry(country string) bool {
	country = strings.TrimSpace(country)
	for _, sa := range v.ServiceAreas {
		if strings.EqualFold(strings.TrimSpace(sa.Country), country) {
			return true
		}
	}
	return false
}

// HasLocalPresence reports whether the vendor has a service area for the
// country with a named sub-region (branch office, local agent).
func (v *Vendor) HasLocalPresence(country string) bool {
	country = strings.TrimSpace(country)
	for _, sa := range v.ServiceAreas {
		if strings.EqualFold(strings.TrimSpace(sa.Country), country) && strings.TrimSpace(sa.SubRegion) != "" {
			return true
		}
	}
	return false
}

// HasPortCapability reports whether any of the vendor's port records lists
// the given capability (e.g. "delivery", "bunkering", "customs").
func (v *Vendor) HasPortCapability(capability string) bool {
	for _, pc := range v.PortCapabilities {
		for _, c := range pc.Capabilities {
			if strings.EqualFold(strings.TrimSpace(c), capability) {
				return true
			}
		}
	}
	return false
}

// VendorServiceArea is a country (and optional sub-region) the vendor can
// deliver to with its own logistics.
type VendorServiceArea struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	VendorID  uuid.UUID `gorm:"type:uuid;not null;index" json:"vendor_id"`
	Country   string    `gorm:"size:80;not null" json:"country"`
	SubRegion string    `gorm:"size:100" json:"sub_region"` // named sub-region = local presence
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (sa *VendorServiceArea) BeforeCreate(tx *gorm.DB) (err error) {
	sa.ID = uuid.New()
	return
}

// VendorPortCapability records what the vendor can do at a specific port.
type VendorPortCapability struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	VendorID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"vendor_id"`
	PortName     string         `gorm:"size:100;not null" json:"port_name"`
	Locode       string         `gorm:"size:10" json:"locode"` // UN/LOCODE, e.g. SGSIN
	Latitude     float64        `json:"latitude"`
	Longitude    float64        `json:"longitude"`
	Capabilities pq.StringArray `gorm:"type:text[]" json:"capabilities"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (pc *VendorPortCapability) BeforeCreate(tx *gorm.DB) (err error) {
	pc.ID = uuid.New()
	return
}
