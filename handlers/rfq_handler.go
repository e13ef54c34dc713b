package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"shipproc/config"
	"shipproc/middleware"
	"shipproc/models"
	"shipproc/utils"
)

type rfqReq struct {
	Title                 string           `json:"title" validate:"required"`
	Description           string           `json:"description"`
	VesselName            string           `json:"vessel_name" validate:"required"`
	IMONumber             string           `json:"imo_number"`
	DeliveryLocation      string           `json:"delivery_location" validate:"required"`
	DeliveryLatitude      *float64         `json:"delivery_latitude"`
	DeliveryLongitude     *float64         `json:"delivery_longitude"`
	RequestedDeliveryDate *models.JSONDate `json:"requested_delivery_date"`
}

// CreateRFQ opens a standalone RFQ (not converted from a requisition).
func CreateRFQ(w http.ResponseWriter, r *http.Request) {
	var req rfqReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.DeliveryLatitude != nil && req.DeliveryLongitude != nil {
		if err := utils.ValidateCoordinate(*req.DeliveryLatitude, *req.DeliveryLongitude); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	userID, err := uuid.Parse(middleware.GetUserID(r))
	if err != nil {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	rfq := models.RFQ{
		Reference:             nextReference("RFQ", &models.RFQ{}),
		Title:                 req.Title,
		Description:           req.Description,
		VesselName:            req.VesselName,
		IMONumber:             req.IMONumber,
		DeliveryLocation:      req.DeliveryLocation,
		DeliveryLatitude:      req.DeliveryLatitude,
		DeliveryLongitude:     req.DeliveryLongitude,
		RequestedDeliveryDate: req.RequestedDeliveryDate.Time(),
		Status:                models.RFQStatusOpen,
		CreatedByID:           userID,
	}
	if err := config.DB.Create(&rfq).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	recordAudit(r, "rfq", rfq.ID, models.AuditActionCreate, models.AuditDetails{
		"reference": rfq.Reference,
		"vessel":    rfq.VesselName,
	})
	writeJSON(w, http.StatusCreated, rfq)
}

// GetRFQs lists RFQs with status and vessel filters.
func GetRFQs(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := pagination(r)

	q := config.DB.Model(&models.RFQ{})
	if status := r.URL.Query().Get("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if vessel := r.URL.Query().Get("vessel"); vessel != "" {
		q = q.Where("vessel_name ILIKE ?", "%"+vessel+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		http.Error(w, "db count error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var rfqs []models.RFQ
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&rfqs).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total": total,
		"page":  page,
		"limit": limit,
		"data":  rfqs,
	})
}

// GetRFQ returns one RFQ with its quotes and their vendors.
func GetRFQ(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, muxVar(r, "id"))
	if !ok {
		return
	}

	var rfq models.RFQ
	if err := config.DB.
		Preload("Quotes.Vendor").
		Preload("Quotes.LineItems").
		Preload("Requisition").
		Preload("CreatedBy").
		First(&rfq, "id = ?", id).Error; err != nil {
		http.Error(w, "rfq not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, rfq)
}

// CancelRFQ cancels an open RFQ. Awarded RFQs cannot be cancelled.
func CancelRFQ(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, muxVar(r, "id"))
	if !ok {
		return
	}

	var rfq models.RFQ
	if err := config.DB.First(&rfq, "id = ?", id).Error; err != nil {
		http.Error(w, "rfq not found", http.StatusNotFound)
		return
	}
	if rfq.Status != models.RFQStatusOpen {
		http.Error(w, "only open RFQs can be cancelled", http.StatusBadRequest)
		return
	}

	var body struct {
		Reason string `json:"reason"`
	}
	json.NewDecoder(r.Body).Decode(&body)

	rfq.Status = models.RFQStatusCancelled
	if err := config.DB.Save(&rfq).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	recordAudit(r, "rfq", rfq.ID, models.AuditActionStatusChange, models.AuditDetails{
		"from":   models.RFQStatusOpen,
		"to":     models.RFQStatusCancelled,
		"reason": body.Reason,
	})
	writeJSON(w, http.StatusOK, rfq)
}
