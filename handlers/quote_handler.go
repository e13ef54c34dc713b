package handlers

import (
	"encoding/json"
	"net/http"

	"shipproc/config"
	"shipproc/models"
)

type quoteLineItemReq struct {
	ItemName    string  `json:"item_name" validate:"required"`
	ImpaCode    string  `json:"impa_code"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity" validate:"required,gt=0"`
	Unit        string  `json:"unit"`
	UnitPrice   float64 `json:"unit_price" validate:"gte=0"`
}

type quoteReq struct {
	VendorID             string             `json:"vendor_id" validate:"required,uuid"`
	TotalAmount          float64            `json:"total_amount" validate:"required,gt=0"`
	Currency             string             `json:"currency" validate:"omitempty,len=3"`
	ProposedDeliveryDate *models.JSONDate   `json:"proposed_delivery_date"`
	ValidUntil           *models.JSONDate   `json:"valid_until"`
	Notes                string             `json:"notes"`
	LineItems            []quoteLineItemReq `json:"line_items" validate:"omitempty,dive"`
}

// SubmitQuote records a vendor's quote against an open RFQ. One active
// quote per vendor per RFQ; a resubmission replaces nothing, the vendor
// must withdraw first.
func SubmitQuote(w http.ResponseWriter, r *http.Request) {
	rfqID, ok := parseIDParam(w, muxVar(r, "id"))
	if !ok {
		return
	}

	var rfq models.RFQ
	if err := config.DB.First(&rfq, "id = ?", rfqID).Error; err != nil {
		http.Error(w, "rfq not found", http.StatusNotFound)
		return
	}
	if rfq.Status != models.RFQStatusOpen {
		http.Error(w, "rfq is not open for quotes", http.StatusBadRequest)
		return
	}

	var req quoteReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var vendor models.Vendor
	if err := config.DB.First(&vendor, "id = ?", req.VendorID).Error; err != nil {
		http.Error(w, "vendor not found", http.StatusNotFound)
		return
	}
	if vendor.Status != models.VendorStatusActive {
		http.Error(w, "vendor is not active", http.StatusBadRequest)
		return
	}

	var existing int64
	config.DB.Model(&models.Quote{}).
		Where("rfq_id = ? AND vendor_id = ? AND status = ?", rfq.ID, vendor.ID, models.QuoteStatusSubmitted).
		Count(&existing)
	if existing > 0 {
		http.Error(w, "vendor already has a submitted quote on this rfq", http.StatusConflict)
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	quote := models.Quote{
		RFQID:                rfq.ID,
		VendorID:             vendor.ID,
		TotalAmount:          req.TotalAmount,
		Currency:             currency,
		ProposedDeliveryDate: req.ProposedDeliveryDate.Time(),
		ValidUntil:           req.ValidUntil.Time(),
		Notes:                req.Notes,
		Status:               models.QuoteStatusSubmitted,
	}
	for _, li := range req.LineItems {
		quote.LineItems = append(quote.LineItems, models.QuoteLineItem{
			ItemName:    li.ItemName,
			ImpaCode:    li.ImpaCode,
			Description: li.Description,
			Quantity:    li.Quantity,
			Unit:        li.Unit,
			UnitPrice:   li.UnitPrice,
			TotalPrice:  li.Quantity * li.UnitPrice,
		})
	}

	if err := config.DB.Create(&quote).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	recordAudit(r, "quote", quote.ID, models.AuditActionCreate, models.AuditDetails{
		"rfq_id":       rfq.ID,
		"vendor":       vendor.Name,
		"total_amount": quote.TotalAmount,
	})
	notifyUser(rfq.CreatedByID, models.NotificationTypeQuoteSubmitted,
		"Quote submitted on "+rfq.Reference,
		vendor.Name+" submitted a quote on "+rfq.Title,
		"rfq", rfq.ID)
	writeJSON(w, http.StatusCreated, quote)
}

// GetQuotesForRFQ lists all quotes on an RFQ with their vendors.
func GetQuotesForRFQ(w http.ResponseWriter, r *http.Request) {
	rfqID, ok := parseIDParam(w, muxVar(r, "id"))
	if !ok {
		return
	}

	var quotes []models.Quote
	if err := config.DB.
		Preload("Vendor").
		Preload("LineItems").
		Where("rfq_id = ?", rfqID).
		Order("submitted_at").
		Find(&quotes).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": quotes, "count": len(quotes)})
}

// GetQuote returns one quote with vendor and line items.
func GetQuote(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, muxVar(r, "id"))
	if !ok {
		return
	}

	var quote models.Quote
	if err := config.DB.
		Preload("Vendor").
		Preload("LineItems").
		Preload("RFQ").
		First(&quote, "id = ?", id).Error; err != nil {
		http.Error(w, "quote not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

// WithdrawQuote withdraws a submitted quote before award.
func WithdrawQuote(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, muxVar(r, "id"))
	if !ok {
		return
	}

	var quote models.Quote
	if err := config.DB.First(&quote, "id = ?", id).Error; err != nil {
		http.Error(w, "quote not found", http.StatusNotFound)
		return
	}
	if quote.Status != models.QuoteStatusSubmitted {
		http.Error(w, "only submitted quotes can be withdrawn", http.StatusBadRequest)
		return
	}

	quote.Status = models.QuoteStatusWithdrawn
	if err := config.DB.Save(&quote).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	recordAudit(r, "quote", quote.ID, models.AuditActionStatusChange, models.AuditDetails{
		"from": models.QuoteStatusSubmitted,
		"to":   models.QuoteStatusWithdrawn,
	})
	writeJSON(w, http.StatusOK, quote)
}
