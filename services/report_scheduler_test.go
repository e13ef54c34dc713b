package services

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shipproc/models"
)

func TestSanitizeRef(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple name", "Nordic Star", "NORDIC-STAR"},
		{"mixed case with digits", "mv Atlantic 7", "MV-ATLANTIC-7"},
		{"punctuation stripped", "M/V \"Pacific\"", "MV-PACIFIC"},
		{"long name truncated", "Extraordinarily Long Vessel Name", "EXTRAORDINARILY-LONG"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeRef(tt.input); got != tt.expected {
				t.Errorf("sanitizeRef(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func setupSchedulerDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	if err := db.AutoMigrate(&models.RFQ{}, &models.ComplianceReport{}); err != nil {
		t.Fatalf("migrating test db: %v", err)
	}
	return db
}

func seedRFQ(t *testing.T, db *gorm.DB, reference, vessel string, createdAt time.Time) {
	t.Helper()
	rfq := models.RFQ{
		Reference:  reference,
		Title:      "Stores for " + vessel,
		VesselName: vessel,
		Status:     models.RFQStatusOpen,
		CreatedAt:  createdAt,
	}
	if err := db.Create(&rfq).Error; err != nil {
		t.Fatalf("seeding rfq %s: %v", reference, err)
	}
}

func TestGenerateMonthlyComplianceReports(t *testing.T) {
	db := setupSchedulerDB(t)

	// run dated 10 March covers the February period
	now := time.Date(2026, time.March, 10, 4, 0, 0, 0, time.UTC)
	inPeriod := time.Date(2026, time.February, 10, 12, 0, 0, 0, time.UTC)

	seedRFQ(t, db, "RFQ-2026-0001", "Nordic Star", inPeriod)
	seedRFQ(t, db, "RFQ-2026-0002", "Nordic Star", inPeriod.AddDate(0, 0, 2)) // same vessel, deduplicated
	seedRFQ(t, db, "RFQ-2026-0003", "Baltic Dawn", inPeriod.AddDate(0, 0, 10))
	seedRFQ(t, db, "RFQ-2026-0004", "Pacific Wave", time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)) // outside period
	seedRFQ(t, db, "RFQ-2026-0005", "", inPeriod) // blank vessel skipped

	if err := GenerateMonthlyComplianceReports(db, now); err != nil {
		t.Fatalf("generation failed: %v", err)
	}

	var total int64
	db.Model(&models.ComplianceReport{}).Count(&total)
	if total != 6 {
		t.Fatalf("created %d reports, expected 6 (2 vessels x 3 regimes)", total)
	}

	var report models.ComplianceReport
	if err := db.Where("regime = ? AND vessel_name = ?", models.RegimeSOLAS, "Nordic Star").
		First(&report).Error; err != nil {
		t.Fatalf("SOLAS report for Nordic Star not created: %v", err)
	}
	if report.Reference != "CR-SOLAS-202602-NORDIC-STAR" {
		t.Errorf("reference = %q", report.Reference)
	}
	if report.Status != models.ComplianceStatusDraft {
		t.Errorf("status = %q, expected draft", report.Status)
	}
	if report.GeneratedBy != "scheduler" {
		t.Errorf("generated_by = %q", report.GeneratedBy)
	}

	wantStart := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2026, time.February, 28, 23, 59, 59, 0, time.UTC)
	if !report.PeriodStart.UTC().Equal(wantStart) {
		t.Errorf("period start = %v, expected %v", report.PeriodStart, wantStart)
	}
	if !report.PeriodEnd.UTC().Equal(wantEnd) {
		t.Errorf("period end = %v, expected %v", report.PeriodEnd, wantEnd)
	}

	// a second run over the same period must not duplicate anything
	if err := GenerateMonthlyComplianceReports(db, now); err != nil {
		t.Fatalf("re-run failed: %v", err)
	}
	db.Model(&models.ComplianceReport{}).Count(&total)
	if total != 6 {
		t.Errorf("re-run grew report count to %d, generation must be idempotent", total)
	}

	// the next month picks up the vessel the February run skipped
	april := time.Date(2026, time.April, 1, 4, 0, 0, 0, time.UTC)
	if err := GenerateMonthlyComplianceReports(db, april); err != nil {
		t.Fatalf("march-period run failed: %v", err)
	}
	var marchReports int64
	db.Model(&models.ComplianceReport{}).Where("vessel_name = ?", "Pacific Wave").Count(&marchReports)
	if marchReports != 3 {
		t.Errorf("march period created %d Pacific Wave reports, expected 3", marchReports)
	}
}
