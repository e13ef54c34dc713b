package services

import (
	"fmt"
	"log"
	"os"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"shipproc/config"
	"shipproc/models"
)

var schedulerRunning int32

// ReportScheduler generates draft compliance reports on a monthly
// schedule so that compliance officers start each period with a
// pre-filled report per regime and vessel.
type ReportScheduler struct {
	cron *cron.Cron
}

// NewReportScheduler creates the scheduler with verbose cron logging.
func NewReportScheduler() *ReportScheduler {
	c := cron.New(
		cron.WithLogger(cron.VerbosePrintfLogger(log.New(os.Stdout, "cron: ", log.LstdFlags))),
	)
	return &ReportScheduler{cron: c}
}

// Start registers the monthly job and begins the cron loop. The
// schedule defaults to 02:00 on the first of each month and can be
// overridden with COMPLIANCE_CRON_SPEC.
func (rs *ReportScheduler) Start() error {
	spec := config.Getenv("COMPLIANCE_CRON_SPEC", "0 2 1 * *")

	_, err := rs.cron.AddFunc(spec, func() {
		if !atomic.CompareAndSwapInt32(&schedulerRunning, 0, 1) {
			log.Println("Previous compliance generation still running. Skipping this run.")
			return
		}
		defer atomic.StoreInt32(&schedulerRunning, 0)

		if err := GenerateMonthlyComplianceReports(config.DB, time.Now()); err != nil {
			log.Printf("Monthly compliance generation failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	rs.cron.Start()
	return nil
}

// Stop halts the cron loop. Running jobs finish.
func (rs *ReportScheduler) Stop() {
	rs.cron.Stop()
}

// GenerateMonthlyComplianceReports creates a draft report per regime and
// vessel for the month preceding now. Vessels are taken from RFQs issued
// in that period; a report that already exists for the same regime,
// vessel and period is left alone, so re-runs are safe.
func GenerateMonthlyComplianceReports(db *gorm.DB, now time.Time) error {
	periodEnd := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	periodStart := periodEnd.AddDate(0, -1, 0)

	var vessels []string
	if err := db.Model(&models.RFQ{}).
		Where("created_at >= ? AND created_at < ?", periodStart, periodEnd).
		Distinct("vessel_name").
		Pluck("vessel_name", &vessels).Error; err != nil {
		return fmt.Errorf("listing vessels for period: %w", err)
	}

	regimes := []models.ComplianceRegime{
		models.RegimeSOLAS,
		models.RegimeISM,
		models.RegimeMARPOL,
	}

	created := 0
	for _, vessel := range vessels {
		if vessel == "" {
			continue
		}
		for _, regime := range regimes {
			var count int64
			if err := db.Model(&models.ComplianceReport{}).
				Where("regime = ? AND vessel_name = ? AND period_start = ?", regime, vessel, periodStart).
				Count(&count).Error; err != nil {
				return fmt.Errorf("checking existing report: %w", err)
			}
			if count > 0 {
				continue
			}

			report := models.ComplianceReport{
				Regime:      regime,
				Reference:   fmt.Sprintf("CR-%s-%s-%s", regime, periodStart.Format("200601"), sanitizeRef(vessel)),
				Summary:     fmt.Sprintf("%s monthly report for %s", regime, vessel),
				VesselName:  vessel,
				PeriodStart: periodStart,
				PeriodEnd:   periodEnd.Add(-time.Second),
				Status:      models.ComplianceStatusDraft,
				GeneratedBy: "scheduler",
			}
			if err := db.Create(&report).Error; err != nil {
				return fmt.Errorf("creating %s report for %s: %w", regime, vessel, err)
			}
			created++
		}
	}

	log.Printf("Monthly compliance generation for %s: %d reports created across %d vessels",
		periodStart.Format("2006-01"), created, len(vessels))
	return nil
}

// sanitizeRef turns a vessel name into a reference-safe token short
// enough to fit the reference column.
func sanitizeRef(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
			out = append(out, r-32)
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		case r == ' ', r == '-', r == '_':
			out = append(out, '-')
		}
	}
	if len(out) > 20 {
		out = out[:20]
	}
	return string(out)
}
