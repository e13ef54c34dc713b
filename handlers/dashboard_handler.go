package handlers

import (
	"net/http"
	"time"

	"shipproc/config"
	"shipproc/models"
	"shipproc/utils"
)

var analytics = utils.NewAnalyticsEngine()

// GetProcurementDashboard returns the fleet manager's KPI view: open
// workload, monthly spend with trend, awarded totals per vendor and a
// statistical summary of recent quote scores.
func GetProcurementDashboard(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	prevMonthStart := monthStart.AddDate(0, -1, 0)

	var openRFQs, pendingRequisitions, activeVendors int64
	config.DB.Model(&models.RFQ{}).Where("status = ?", models.RFQStatusOpen).Count(&openRFQs)
	config.DB.Model(&models.Requisition{}).
		Where("status IN ?", []models.RequisitionStatus{models.RequisitionStatusSubmitted, models.RequisitionStatusApproved}).
		Count(&pendingRequisitions)
	config.DB.Model(&models.Vendor{}).Where("status = ?", models.VendorStatusActive).Count(&activeVendors)

	// monthly PO spend, current vs previous month
	var currentSpend, previousSpend float64
	config.DB.Model(&models.PurchaseOrder{}).
		Where("issued_at >= ? AND status <> ?", monthStart, models.POStatusCancelled).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&currentSpend)
	config.DB.Model(&models.PurchaseOrder{}).
		Where("issued_at >= ? AND issued_at < ? AND status <> ?", prevMonthStart, monthStart, models.POStatusCancelled).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&previousSpend)
	spendKPI := analytics.CalculateKPI(currentSpend, previousSpend, 0)

	var currentPOs, previousPOs int64
	config.DB.Model(&models.PurchaseOrder{}).Where("issued_at >= ?", monthStart).Count(&currentPOs)
	config.DB.Model(&models.PurchaseOrder{}).Where("issued_at >= ? AND issued_at < ?", prevMonthStart, monthStart).Count(&previousPOs)
	poKPI := analytics.CalculateKPI(float64(currentPOs), float64(previousPOs), 0)

	// awarded amount per vendor, top 5 over the last 90 days
	type vendorSpend struct {
		VendorID   string  `json:"vendor_id"`
		VendorName string  `json:"vendor_name"`
		Total      float64 `json:"total"`
		OrderCount int64   `json:"order_count"`
	}
	var topVendors []vendorSpend
	config.DB.Model(&models.PurchaseOrder{}).
		Select("purchase_orders.vendor_id, vendors.name AS vendor_name, SUM(purchase_orders.total_amount) AS total, COUNT(*) AS order_count").
		Joins("JOIN vendors ON vendors.id = purchase_orders.vendor_id").
		Where("purchase_orders.issued_at >= ? AND purchase_orders.status <> ?", now.AddDate(0, 0, -90), models.POStatusCancelled).
		Group("purchase_orders.vendor_id, vendors.name").
		Order("total DESC").
		Limit(5).
		Scan(&topVendors)

	// distribution of recent total scores
	var totalScores []float64
	config.DB.Model(&models.Quote{}).
		Where("total_score IS NOT NULL AND created_at >= ?", now.AddDate(0, -3, 0)).
		Pluck("total_score", &totalScores)
	scoreStats := analytics.CalculateStatistics(totalScores)

	// six-month spend trend
	type monthlySpend struct {
		Month string  `json:"month"`
		Total float64 `json:"total"`
	}
	var trend []monthlySpend
	config.DB.Model(&models.PurchaseOrder{}).
		Select("TO_CHAR(DATE_TRUNC('month', issued_at), 'YYYY-MM') AS month, SUM(total_amount) AS total").
		Where("issued_at >= ? AND status <> ?", monthStart.AddDate(0, -5, 0), models.POStatusCancelled).
		Group("month").
		Order("month").
		Scan(&trend)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"open_rfqs":            openRFQs,
		"pending_requisitions": pendingRequisitions,
		"active_vendors":       activeVendors,
		"monthly_spend":        spendKPI,
		"monthly_po_count":     poKPI,
		"top_vendors":          topVendors,
		"score_statistics":     scoreStats,
		"spend_trend":          trend,
		"generated_at":         now,
	})
}

// GetComplianceDashboard summarises open compliance work per regime.
func GetComplianceDashboard(w http.ResponseWriter, r *http.Request) {
	type regimeSummary struct {
		Regime       string `json:"regime"`
		DraftCount   int64  `json:"draft_count"`
		OpenFindings int64  `json:"open_findings"`
	}

	regimes := []models.ComplianceRegime{models.RegimeSOLAS, models.RegimeISM, models.RegimeMARPOL}
	summaries := make([]regimeSummary, 0, len(regimes))
	for _, regime := range regimes {
		var s regimeSummary
		s.Regime = string(regime)
		config.DB.Model(&models.ComplianceReport{}).
			Where("regime = ? AND status = ?", regime, models.ComplianceStatusDraft).
			Count(&s.DraftCount)
		config.DB.Model(&models.ComplianceFinding{}).
			Joins("JOIN compliance_reports ON compliance_reports.id = compliance_findings.report_id").
			Where("compliance_reports.regime = ? AND compliance_findings.closed_at IS NULL", regime).
			Count(&s.OpenFindings)
		summaries = append(summaries, s)
	}

	var overdueFindings int64
	config.DB.Model(&models.ComplianceFinding{}).
		Where("closed_at IS NULL AND due_date IS NOT NULL AND due_date < ?", time.Now()).
		Count(&overdueFindings)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"regimes":          summaries,
		"overdue_findings": overdueFindings,
		"generated_at":     time.Now(),
	})
}
