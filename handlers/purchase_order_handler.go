package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"gorm.io/gorm"

	"shipproc/config"
	"shipproc/middleware"
	"shipproc/models"
	"shipproc/services"
)

type createPOReq struct {
	PaymentTerms string `json:"payment_terms"`
}

// CreatePurchaseOrder issues a purchase order from the accepted quote
// of an awarded RFQ. Line items and commercial terms are copied from
// the quote; the quote's unique index guarantees at most one PO per
// quote.
func CreatePurchaseOrder(w http.ResponseWriter, r *http.Request) {
	quoteID, ok := parseIDParam(w, muxVar(r, "quoteId"))
	if !ok {
		return
	}

	var quote models.Quote
	if err := config.DB.
		Preload("Vendor").
		Preload("RFQ").
		Preload("LineItems").
		First(&quote, "id = ?", quoteID).Error; err != nil {
		http.Error(w, "quote not found", http.StatusNotFound)
		return
	}
	if quote.Status != models.QuoteStatusAccepted {
		http.Error(w, "purchase orders are issued from accepted quotes only", http.StatusBadRequest)
		return
	}
	if quote.RFQ == nil || quote.RFQ.Status != models.RFQStatusAwarded {
		http.Error(w, "rfq is not awarded", http.StatusBadRequest)
		return
	}

	var req createPOReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	userID, err := uuid.Parse(middleware.GetUserID(r))
	if err != nil {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	po := models.PurchaseOrder{
		PONumber:         nextReference("PO", &models.PurchaseOrder{}),
		RFQID:            quote.RFQID,
		QuoteID:          quote.ID,
		VendorID:         quote.VendorID,
		TotalAmount:      quote.TotalAmount,
		Currency:         quote.Currency,
		DeliveryLocation: quote.RFQ.DeliveryLocation,
		DeliveryDate:     quote.ProposedDeliveryDate,
		PaymentTerms:     req.PaymentTerms,
		Status:           models.POStatusIssued,
		IssuedByID:       userID,
	}
	for _, li := range quote.LineItems {
		po.LineItems = append(po.LineItems, models.PurchaseOrderLineItem{
			ItemName:    li.ItemName,
			ImpaCode:    li.ImpaCode,
			Description: li.Description,
			Quantity:    li.Quantity,
			Unit:        li.Unit,
			UnitPrice:   li.UnitPrice,
			TotalPrice:  li.TotalPrice,
		})
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&po).Error; err != nil {
			return err
		}
		entry := models.AuditLog{
			EntityType: "purchase_order",
			EntityID:   po.ID,
			Action:     models.AuditActionIssue,
			UserID:     &userID,
			Details: models.AuditDetails{
				"po_number": po.PONumber,
				"quote_id":  quote.ID,
				"vendor_id": quote.VendorID,
			},
			IPAddress: clientIP(r),
			UserAgent: r.UserAgent(),
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	notifyUser(quote.RFQ.CreatedByID, models.NotificationTypePOIssued,
		"Purchase order "+po.PONumber+" issued",
		"PO issued to "+quote.Vendor.Name+" for "+quote.RFQ.Title,
		"purchase_order", po.ID)

	if quote.Vendor != nil {
		email := services.NewEmailService()
		if err := email.SendPurchaseOrderEmail(quote.Vendor, &po, quote.RFQ); err != nil {
			log.Printf("po email to %s failed: %v", quote.Vendor.Name, err)
		}
	}

	writeJSON(w, http.StatusCreated, po)
}

// GetPurchaseOrders lists POs with status and vendor filters.
func GetPurchaseOrders(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := pagination(r)

	q := config.DB.Model(&models.PurchaseOrder{})
	if status := r.URL.Query().Get("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if vendorID := r.URL.Query().Get("vendor_id"); vendorID != "" {
		q = q.Where("vendor_id = ?", vendorID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		http.Error(w, "db count error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var orders []models.PurchaseOrder
	if err := q.Preload("Vendor").Order("issued_at DESC").Limit(limit).Offset(offset).Find(&orders).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total": total,
		"page":  page,
		"limit": limit,
		"data":  orders,
	})
}

// GetPurchaseOrder returns one PO with vendor, RFQ and line items.
func GetPurchaseOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, muxVar(r, "id"))
	if !ok {
		return
	}

	var po models.PurchaseOrder
	if err := config.DB.
		Preload("Vendor").
		Preload("RFQ").
		Preload("LineItems").
		First(&po, "id = ?", id).Error; err != nil {
		http.Error(w, "purchase order not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, po)
}

type poStatusReq struct {
	Status models.PurchaseOrderStatus `json:"status" validate:"required,oneof=acknowledged fulfilled closed cancelled"`
}

// poTransitions defines the allowed forward transitions.
var poTransitions = map[models.PurchaseOrderStatus][]models.PurchaseOrderStatus{
	models.POStatusIssued:       {models.POStatusAcknowledged, models.POStatusCancelled},
	models.POStatusAcknowledged: {models.POStatusFulfilled, models.POStatusCancelled},
	models.POStatusFulfilled:    {models.POStatusClosed},
}

// UpdatePurchaseOrderStatus advances a PO through its lifecycle.
func UpdatePurchaseOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, muxVar(r, "id"))
	if !ok {
		return
	}

	var po models.PurchaseOrder
	if err := config.DB.First(&po, "id = ?", id).Error; err != nil {
		http.Error(w, "purchase order not found", http.StatusNotFound)
		return
	}

	var req poStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	allowed := false
	for _, next := range poTransitions[po.Status] {
		if next == req.Status {
			allowed = true
			break
		}
	}
	if !allowed {
		http.Error(w, fmt.Sprintf("cannot move purchase order from %s to %s", po.Status, req.Status), http.StatusBadRequest)
		return
	}

	previous := po.Status
	po.Status = req.Status
	if err := config.DB.Save(&po).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	recordAudit(r, "purchase_order", po.ID, models.AuditActionStatusChange, models.AuditDetails{
		"from": previous,
		"to":   req.Status,
	})
	writeJSON(w, http.StatusOK, po)
}

// DownloadPurchaseOrderPDF renders the PO as a PDF for sending to the
// vendor or the vessel.
func DownloadPurchaseOrderPDF(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, muxVar(r, "id"))
	if !ok {
		return
	}

	var po models.PurchaseOrder
	if err := config.DB.
		Preload("Vendor").
		Preload("RFQ").
		Preload("LineItems").
		First(&po, "id = ?", id).Error; err != nil {
		http.Error(w, "purchase order not found", http.StatusNotFound)
		return
	}

	pdfData, err := buildPurchaseOrderPDF(&po)
	if err != nil {
		http.Error(w, "failed to generate PDF: "+err.Error(), http.StatusInternalServerError)
		return
	}

	recordAudit(r, "purchase_order", po.ID, models.AuditActionExport, models.AuditDetails{
		"format": "pdf",
	})

	filename := fmt.Sprintf("%s.pdf", sanitizeFilename(po.PONumber))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(pdfData)))
	w.WriteHeader(http.StatusOK)
	w.Write(pdfData)
}

func buildPurchaseOrderPDF(po *models.PurchaseOrder) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetMargins(10, 10, 10)

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(190, 10, "PURCHASE ORDER")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(95, 6, fmt.Sprintf("PO Number: %s", po.PONumber))
	pdf.Cell(95, 6, fmt.Sprintf("Issued: %s", po.IssuedAt.Format("02-Jan-2006")))
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	if po.Vendor != nil {
		pdf.Cell(190, 6, fmt.Sprintf("Vendor: %s (%s)", po.Vendor.Name, po.Vendor.Code))
		pdf.Ln(6)
	}
	if po.RFQ != nil {
		pdf.Cell(190, 6, fmt.Sprintf("RFQ: %s - %s", po.RFQ.Reference, po.RFQ.Title))
		pdf.Ln(6)
		pdf.Cell(190, 6, fmt.Sprintf("Vessel: %s", po.RFQ.VesselName))
		pdf.Ln(6)
	}
	pdf.Cell(190, 6, fmt.Sprintf("Delivery location: %s", po.DeliveryLocation))
	pdf.Ln(6)
	if po.DeliveryDate != nil {
		pdf.Cell(190, 6, fmt.Sprintf("Delivery date: %s", po.DeliveryDate.Format("02-Jan-2006")))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(70, 8, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 8, "IMPA", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 8, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 8, "Unit Price", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 8, "Total", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, li := range po.LineItems {
		pdf.CellFormat(70, 8, li.ItemName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, li.ImpaCode, "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 8, fmt.Sprintf("%.2f %s", li.Quantity, li.Unit), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", li.UnitPrice), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", li.TotalPrice), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(150, 8, "Order Total")
	pdf.CellFormat(40, 8, fmt.Sprintf("%.2f %s", po.TotalAmount, po.Currency), "1", 1, "R", false, 0, "")

	if po.PaymentTerms != "" {
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(190, 8, "Payment Terms:")
		pdf.Ln(6)
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(190, 6, po.PaymentTerms, "", "L", false)
	}

	pdf.Ln(10)
	pdf.SetFont("Arial", "I", 8)
	pdf.Cell(190, 6, fmt.Sprintf("Generated %s", time.Now().Format("2006-01-02 15:04")))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
