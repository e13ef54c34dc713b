package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"

	"shipproc/config"
	"shipproc/middleware"
	"shipproc/models"
)

type complianceReportReq struct {
	Regime      models.ComplianceRegime `json:"regime" validate:"required,oneof=SOLAS ISM MARPOL"`
	Reference   string                  `json:"reference" validate:"required"`
	VesselName  string                  `json:"vessel_name" validate:"required"`
	IMONumber   string                  `json:"imo_number"`
	PeriodStart models.JSONDate         `json:"period_start" validate:"required"`
	PeriodEnd   models.JSONDate         `json:"period_end" validate:"required"`
	Summary     string                  `json:"summary"`
}

// CreateComplianceReport opens an ad hoc compliance report. Monthly
// reports come from the scheduler instead.
func CreateComplianceReport(w http.ResponseWriter, r *http.Request) {
	var req complianceReportReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	start := req.PeriodStart.Time()
	end := req.PeriodEnd.Time()
	if start == nil || end == nil || !start.Before(*end) {
		http.Error(w, "period_start must be before period_end", http.StatusBadRequest)
		return
	}

	report := models.ComplianceReport{
		Regime:      req.Regime,
		Reference:   req.Reference,
		VesselName:  req.VesselName,
		IMONumber:   req.IMONumber,
		PeriodStart: *start,
		PeriodEnd:   *end,
		Summary:     req.Summary,
		Status:      models.ComplianceStatusDraft,
		GeneratedBy: middleware.GetUserID(r),
	}
	if err := config.DB.Create(&report).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	recordAudit(r, "compliance_report", report.ID, models.AuditActionCreate, models.AuditDetails{
		"regime":    report.Regime,
		"reference": report.Reference,
	})
	writeJSON(w, http.StatusCreated, report)
}

// GetComplianceReports lists reports with regime, vessel and status filters.
func GetComplianceReports(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := pagination(r)

	q := config.DB.Model(&models.ComplianceReport{})
	if regime := r.URL.Query().Get("regime"); regime != "" {
		q = q.Where("regime = ?", regime)
	}
	if vessel := r.URL.Query().Get("vessel"); vessel != "" {
		q = q.Where("vessel_name ILIKE ?", "%"+vessel+"%")
	}
	if status := r.URL.Query().Get("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		http.Error(w, "db count error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var reports []models.ComplianceReport
	if err := q.Order("period_start DESC").Limit(limit).Offset(offset).Find(&reports).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total": total,
		"page":  page,
		"limit": limit,
		"data":  reports,
	})
}

// GetComplianceReport returns one report with its findings.
func GetComplianceReport(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, muxVar(r, "id"))
	if !ok {
		return
	}

	var report models.ComplianceReport
	if err := config.DB.Preload("Findings").First(&report, "id = ?", id).Error; err != nil {
		http.Error(w, "compliance report not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

type findingReq struct {
	Clause           string                 `json:"clause"`
	Description      string                 `json:"description" validate:"required"`
	Severity         models.FindingSeverity `json:"severity" validate:"omitempty,oneof=observation minor major non_conformity"`
	CorrectiveAction string                 `json:"corrective_action"`
	Evidence         []string               `json:"evidence"`
	DueDate          *models.JSONDate       `json:"due_date"`
}

// AddComplianceFinding records a finding on a draft or submitted report.
func AddComplianceFinding(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, muxVar(r, "id"))
	if !ok {
		return
	}

	var report models.ComplianceReport
	if err := config.DB.First(&report, "id = ?", id).Error; err != nil {
		http.Error(w, "compliance report not found", http.StatusNotFound)
		return
	}
	if report.Status == models.ComplianceStatusClosed {
		http.Error(w, "report is closed", http.StatusBadRequest)
		return
	}

	var req findingReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	severity := req.Severity
	if severity == "" {
		severity = models.SeverityObservation
	}

	evidence := datatypes.JSON("[]")
	if len(req.Evidence) > 0 {
		b, err := json.Marshal(req.Evidence)
		if err != nil {
			http.Error(w, "invalid evidence list", http.StatusBadRequest)
			return
		}
		evidence = datatypes.JSON(b)
	}

	finding := models.ComplianceFinding{
		ReportID:         report.ID,
		Clause:           req.Clause,
		Description:      req.Description,
		Severity:         severity,
		CorrectiveAction: req.CorrectiveAction,
		Evidence:         evidence,
		DueDate:          req.DueDate.Time(),
	}
	if err := config.DB.Create(&finding).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	recordAudit(r, "compliance_report", report.ID, models.AuditActionUpdate, models.AuditDetails{
		"finding_id": finding.ID,
		"severity":   finding.Severity,
	})
	writeJSON(w, http.StatusCreated, finding)
}

// SubmitComplianceReport moves a draft to submitted.
func SubmitComplianceReport(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, muxVar(r, "id"))
	if !ok {
		return
	}

	var report models.ComplianceReport
	if err := config.DB.First(&report, "id = ?", id).Error; err != nil {
		http.Error(w, "compliance report not found", http.StatusNotFound)
		return
	}
	if report.Status != models.ComplianceStatusDraft {
		http.Error(w, "only draft reports can be submitted", http.StatusBadRequest)
		return
	}

	now := time.Now()
	report.Status = models.ComplianceStatusSubmitted
	report.SubmittedAt = &now
	if err := config.DB.Save(&report).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	recordAudit(r, "compliance_report", report.ID, models.AuditActionStatusChange, models.AuditDetails{
		"from": models.ComplianceStatusDraft,
		"to":   models.ComplianceStatusSubmitted,
	})
	writeJSON(w, http.StatusOK, report)
}

// CloseComplianceReport closes a submitted report. Open major or
// non-conformity findings block closing.
func CloseComplianceReport(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, muxVar(r, "id"))
	if !ok {
		return
	}

	var report models.ComplianceReport
	if err := config.DB.Preload("Findings").First(&report, "id = ?", id).Error; err != nil {
		http.Error(w, "compliance report not found", http.StatusNotFound)
		return
	}
	if report.Status != models.ComplianceStatusSubmitted {
		http.Error(w, "only submitted reports can be closed", http.StatusBadRequest)
		return
	}
	for _, f := range report.Findings {
		if f.ClosedAt == nil && (f.Severity == models.SeverityMajor || f.Severity == models.SeverityNonConformity) {
			http.Error(w, "report has open major findings", http.StatusBadRequest)
			return
		}
	}

	report.Status = models.ComplianceStatusClosed
	if err := config.DB.Save(&report).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	recordAudit(r, "compliance_report", report.ID, models.AuditActionStatusChange, models.AuditDetails{
		"from": models.ComplianceStatusSubmitted,
		"to":   models.ComplianceStatusClosed,
	})
	writeJSON(w, http.StatusOK, report)
}

// ExportComplianceReportToExcel exports a report and its findings to
// an Excel workbook for flag-state or class submission.
func ExportComplianceReportToExcel(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, muxVar(r, "id"))
	if !ok {
		return
	}

	var report models.ComplianceReport
	if err := config.DB.Preload("Findings").First(&report, "id = ?", id).Error; err != nil {
		http.Error(w, "compliance report not found", http.StatusNotFound)
		return
	}

	excelFile, err := buildComplianceWorkbook(&report)
	if err != nil {
		http.Error(w, "failed to generate Excel file", http.StatusInternalServerError)
		return
	}

	buffer, err := excelFile.WriteToBuffer()
	if err != nil {
		http.Error(w, "failed to write Excel file", http.StatusInternalServerError)
		return
	}

	recordAudit(r, "compliance_report", report.ID, models.AuditActionExport, models.AuditDetails{
		"format": "xlsx",
	})

	filename := fmt.Sprintf("%s_%s.xlsx", sanitizeFilename(report.Reference), time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buffer.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buffer.Bytes())
}

func buildComplianceWorkbook(report *models.ComplianceReport) (*excelize.File, error) {
	f := excelize.NewFile()
	sheetName := "Report"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{
			Horizontal: "left",
			Vertical:   "center",
		},
	})
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s Compliance Report - %s", report.Regime, report.VesselName))
	f.SetCellStyle(sheetName, "A1", "A1", titleStyle)
	f.SetRowHeight(sheetName, 1, 30)

	meta := [][2]string{
		{"Reference", report.Reference},
		{"Vessel", report.VesselName},
		{"IMO Number", report.IMONumber},
		{"Period", fmt.Sprintf("%s to %s", report.PeriodStart.Format("2006-01-02"), report.PeriodEnd.Format("2006-01-02"))},
		{"Status", string(report.Status)},
		{"Generated", time.Now().Format("2006-01-02 15:04:05")},
	}
	for i, kv := range meta {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", i+3), kv[0])
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", i+3), kv[1])
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#4472C4"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	headers := []string{"Clause", "Description", "Severity", "Corrective Action", "Due Date", "Closed"}
	headerRow := len(meta) + 4
	for colIdx, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, headerRow)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
		f.SetColWidth(sheetName, columnIndexToLetter(colIdx+1), columnIndexToLetter(colIdx+1), 25)
	}

	for rowIdx, finding := range report.Findings {
		row := headerRow + 1 + rowIdx
		values := []interface{}{
			finding.Clause,
			finding.Description,
			string(finding.Severity),
			finding.CorrectiveAction,
			"",
			"",
		}
		if finding.DueDate != nil {
			values[4] = finding.DueDate.Format("2006-01-02")
		}
		if finding.ClosedAt != nil {
			values[5] = finding.ClosedAt.Format("2006-01-02")
		}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, row)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}
