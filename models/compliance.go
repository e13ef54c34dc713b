package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ComplianceRegime identifies the convention a report is filed under
type ComplianceRegime string

const (
	RegimeSOLAS  ComplianceRegime = "SOLAS"
	RegimeISM    ComplianceRegime = "ISM"
	RegimeMARPOL ComplianceRegime = "MARPOL"
)

// ComplianceReportStatus defines the report lifecycle
type ComplianceReportStatus string

const (
	ComplianceStatusDraft     ComplianceReportStatus = "draft"
	ComplianceStatusSubmitted ComplianceReportStatus = "submitted"
	ComplianceStatusClosed    ComplianceReportStatus = "closed"
)

// FindingSeverity grades a compliance finding
type FindingSeverity string

const (
	SeverityObservation   FindingSeverity = "observation"
	SeverityMinor         FindingSeverity = "minor"
	SeverityMajor         FindingSeverity = "major"
	SeverityNonConformity FindingSeverity = "non_conformity"
)

// ComplianceReport is a per-vessel, per-period report under one regime.
// Monthly reports are generated by the scheduler; ad hoc ones by hand.
type ComplianceReport struct {
	ID          uuid.UUID              `gorm:"type:uuid;primaryKey" json:"id"`
	Reference   string                 `gorm:"size:40;uniqueIndex;not null" json:"reference"` // e.g. CR-MARPOL-2026-08
	Regime      ComplianceRegime       `gorm:"type:varchar(10);not null;index" json:"regime"`
	VesselName  string                 `gorm:"size:100;not null;index" json:"vessel_name"`
	IMONumber   string                 `gorm:"size:10" json:"imo_number"`
	PeriodStart time.Time              `gorm:"not null" json:"period_start"`
	PeriodEnd   time.Time              `gorm:"not null" json:"period_end"`
	Summary     string                 `gorm:"type:text" json:"summary"`
	Status      ComplianceReportStatus `gorm:"type:varchar(20);default:'draft'" json:"status"`
	GeneratedBy string                 `gorm:"size:50" json:"generated_by"` // "scheduler" or user id
	SubmittedAt *time.Time             `json:"submitted_at"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	DeletedAt   gorm.DeletedAt         `gorm:"index" json:"-"`

	Findings []ComplianceFinding `gorm:"foreignKey:ReportID" json:"findings,omitempty"`
}

func (cr *ComplianceReport) BeforeCreate(tx *gorm.DB) (err error) {
	cr.ID = uuid.New()
	return
}

// ComplianceFinding is one observation on a compliance report.
type ComplianceFinding struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ReportID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"report_id"`
	Clause           string          `gorm:"size:50" json:"clause"` // regulation clause, e.g. "Annex I Reg. 15"
	Description      string          `gorm:"type:text;not null" json:"description"`
	Severity         FindingSeverity `gorm:"type:varchar(20);default:'observation'" json:"severity"`
	CorrectiveAction string          `gorm:"type:text" json:"corrective_action"`
	Evidence         datatypes.JSON  `gorm:"type:jsonb;default:'[]'" json:"evidence"` // e.g. ["photo1.jpg","oil_record_p12.pdf"]
	DueDate          *time.Time      `json:"due_date"`
	ClosedAt         *time.Time      `json:"closed_at"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func (cf *ComplianceFinding) BeforeCreate(tx *gorm.DB) (err error) {
	cf.ID = uuid.New()
	return
}
