package handlers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"

	"shipproc/config"
	"shipproc/models"
	"shipproc/pkg/scoring"
)

// ExportComparisonToExcel exports the scoring matrix of an RFQ's latest
// comparison to Excel. The matrix is rebuilt from the scores the last
// compare run persisted, so the export always matches that run even
// when it used custom weights or quote statuses changed since.
func ExportComparisonToExcel(w http.ResponseWriter, r *http.Request) {
	rfq, cmp, ok := loadComparison(w, r)
	if !ok {
		return
	}

	excelFile, err := buildComparisonWorkbook(rfq, cmp)
	if err != nil {
		http.Error(w, "failed to generate Excel file", http.StatusInternalServerError)
		return
	}

	buffer, err := excelFile.WriteToBuffer()
	if err != nil {
		http.Error(w, "failed to write Excel file", http.StatusInternalServerError)
		return
	}

	recordAudit(r, "rfq", rfq.ID, models.AuditActionExport, models.AuditDetails{
		"format": "xlsx",
	})

	filename := fmt.Sprintf("%s_comparison_%s.xlsx", sanitizeFilename(rfq.Reference), time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buffer.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buffer.Bytes())
}

// ExportComparisonToCSV exports the same matrix as CSV.
func ExportComparisonToCSV(w http.ResponseWriter, r *http.Request) {
	rfq, cmp, ok := loadComparison(w, r)
	if !ok {
		return
	}

	csvData, err := buildComparisonCSV(cmp)
	if err != nil {
		http.Error(w, "failed to generate CSV file", http.StatusInternalServerError)
		return
	}

	recordAudit(r, "rfq", rfq.ID, models.AuditActionExport, models.AuditDetails{
		"format": "csv",
	})

	filename := fmt.Sprintf("%s_comparison_%s.csv", sanitizeFilename(rfq.Reference), time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(csvData)))
	w.WriteHeader(http.StatusOK)
	w.Write(csvData)
}

// loadComparison fetches the RFQ and rebuilds its comparison from the
// persisted score fields. Withdrawn quotes are excluded even if an
// earlier run scored them.
func loadComparison(w http.ResponseWriter, r *http.Request) (*models.RFQ, *scoring.Comparison, bool) {
	rfqID, ok := parseIDParam(w, muxVar(r, "id"))
	if !ok {
		return nil, nil, false
	}

	var rfq models.RFQ
	if err := config.DB.First(&rfq, "id = ?", rfqID).Error; err != nil {
		http.Error(w, "rfq not found", http.StatusNotFound)
		return nil, nil, false
	}

	var quotes []*models.Quote
	if err := config.DB.
		Preload("Vendor").
		Where("rfq_id = ? AND status <> ? AND total_score IS NOT NULL", rfq.ID, models.QuoteStatusWithdrawn).
		Find(&quotes).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return nil, nil, false
	}

	cmp, err := scoring.Rebuild(quotes)
	if err != nil {
		if errors.Is(err, scoring.ErrNoQuotes) || errors.Is(err, scoring.ErrNotScored) {
			http.Error(w, "rfq has no scored quotes to export", http.StatusBadRequest)
			return nil, nil, false
		}
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return nil, nil, false
	}
	return &rfq, cmp, true
}

func buildComparisonWorkbook(rfq *models.RFQ, cmp *scoring.Comparison) (*excelize.File, error) {
	f := excelize.NewFile()
	sheetName := "Comparison"

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
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("Quote Comparison - %s", rfq.Reference))
	f.SetCellStyle(sheetName, "A1", "A1", titleStyle)
	f.SetRowHeight(sheetName, 1, 30)
	f.SetCellValue(sheetName, "A2", fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04:05")))

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
	})

	// criterion column plus one column per vendor
	f.SetCellValue(sheetName, "A4", "Criterion")
	f.SetCellStyle(sheetName, "A4", "A4", headerStyle)
	f.SetColWidth(sheetName, "A", "A", 24)
	for colIdx, vendor := range cmp.Matrix.Vendors {
		cell, _ := excelize.CoordinatesToCellName(colIdx+2, 4)
		f.SetCellValue(sheetName, cell, vendor)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
		f.SetColWidth(sheetName, columnIndexToLetter(colIdx+2), columnIndexToLetter(colIdx+2), 22)
	}

	for rowIdx, row := range cmp.Matrix.Rows {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", rowIdx+5), row.Criterion)
		for colIdx, value := range row.Values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+2, rowIdx+5)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	// narrative below the matrix
	narrativeRow := len(cmp.Matrix.Rows) + 7
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", narrativeRow), fmt.Sprintf("Recommended: %s", cmp.Recommended.VendorName))
	for i, line := range cmp.Narrative {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", narrativeRow+1+i), line)
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

func buildComparisonCSV(cmp *scoring.Comparison) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	writer.Write(append([]string{"Criterion"}, cmp.Matrix.Vendors...))
	for _, row := range cmp.Matrix.Rows {
		writer.Write(append([]string{row.Criterion}, row.Values...))
	}

	writer.Write([]string{})
	writer.Write([]string{"Recommended", cmp.Recommended.VendorName})
	for _, line := range cmp.Narrative {
		writer.Write([]string{line})
	}

	writer.Flush()
	return buf.Bytes(), writer.Error()
}

func sanitizeFilename(filename string) string {
	replacements := map[rune]rune{
		'/':  '_',
		'\\': '_',
		':':  '_',
		'*':  '_',
		'?':  '_',
		'"':  '_',
		'<':  '_',
		'>':  '_',
		'|':  '_',
		' ':  '_',
	}

	result := []rune{}
	for _, char := range filename {
		if replacement, exists := replacements[char]; exists {
			result = append(result, replacement)
		} else {
			result = append(result, char)
		}
	}
	return string(result)
}

func columnIndexToLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+(col%26))) + result
		col /= 26
	}
	return result
}
