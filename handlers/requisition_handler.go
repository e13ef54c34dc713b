package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shipproc/config"
	"shipproc/middleware"
	"shipproc/models"
)

type requisitionLineItemReq struct {
	ItemName    string  `json:"item_name" validate:"required"`
	ImpaCode    string  `json:"impa_code"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity" validate:"required,gt=0"`
	Unit        string  `json:"unit"`
}

type requisitionReq struct {
	Title                 string                     `json:"title" validate:"required"`
	Description           string                     `json:"description"`
	VesselName            string                     `json:"vessel_name" validate:"required"`
	IMONumber             string                     `json:"imo_number"`
	Category              string                     `json:"category"`
	Priority              models.RequisitionPriority `json:"priority" validate:"omitempty,oneof=routine urgent critical"`
	DeliveryLocation      string                     `json:"delivery_location"`
	RequestedDeliveryDate *models.JSONDate           `json:"requested_delivery_date"`
	LineItems             []requisitionLineItemReq   `json:"line_items" validate:"required,min=1,dive"`
}

// CreateRequisition raises a draft requisition for a vessel.
func CreateRequisition(w http.ResponseWriter, r *http.Request) {
	var req requisitionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	userID, err := uuid.Parse(middleware.GetUserID(r))
	if err != nil {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	priority := req.Priority
	if priority == "" {
		priority = models.RequisitionPriorityRoutine
	}

	requisition := models.Requisition{
		Reference:             nextReference("REQ", &models.Requisition{}),
		Title:                 req.Title,
		Description:           req.Description,
		VesselName:            req.VesselName,
		IMONumber:             req.IMONumber,
		Category:              req.Category,
		Priority:              priority,
		DeliveryLocation:      req.DeliveryLocation,
		RequestedDeliveryDate: req.RequestedDeliveryDate.Time(),
		Status:                models.RequisitionStatusDraft,
		RequestedByID:         userID,
	}
	for _, li := range req.LineItems {
		requisition.LineItems = append(requisition.LineItems, models.RequisitionLineItem{
			ItemName:    li.ItemName,
			ImpaCode:    li.ImpaCode,
			Description: li.Description,
			Quantity:    li.Quantity,
			Unit:        li.Unit,
		})
	}

	if err := config.DB.Create(&requisition).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	recordAudit(r, "requisition", requisition.ID, models.AuditActionCreate, models.AuditDetails{
		"reference": requisition.Reference,
		"vessel":    requisition.VesselName,
	})
	writeJSON(w, http.StatusCreated, requisition)
}

// GetRequisitions lists requisitions with vessel, status and priority filters.
func GetRequisitions(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := pagination(r)

	q := config.DB.Model(&models.Requisition{})
	if vessel := r.URL.Query().Get("vessel"); vessel != "" {
		q = q.Where("vessel_name ILIKE ?", "%"+vessel+"%")
	}
	if status := r.URL.Query().Get("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if priority := r.URL.Query().Get("priority"); priority != "" {
		q = q.Where("priority = ?", priority)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		http.Error(w, "db count error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var requisitions []models.Requisition
	if err := q.Preload("LineItems").Order("created_at DESC").Limit(limit).Offset(offset).Find(&requisitions).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total": total,
		"page":  page,
		"limit": limit,
		"data":  requisitions,
	})
}

// GetRequisition returns one requisition with its line items.
func GetRequisition(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, muxVar(r, "id"))
	if !ok {
		return
	}

	var requisition models.Requisition
	if err := config.DB.
		Preload("LineItems").
		Preload("RequestedBy").
		Preload("ApprovedBy").
		First(&requisition, "id = ?", id).Error; err != nil {
		http.Error(w, "requisition not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, requisition)
}

// SubmitRequisition moves a draft to submitted so it can be approved.
func SubmitRequisition(w http.ResponseWriter, r *http.Request) {
	transitionRequisition(w, r, models.RequisitionStatusDraft, models.RequisitionStatusSubmitted, models.AuditActionStatusChange)
}

// ApproveRequisition approves a submitted requisition.
func ApproveRequisition(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, muxVar(r, "id"))
	if !ok {
		return
	}

	var requisition models.Requisition
	if err := config.DB.First(&requisition, "id = ?", id).Error; err != nil {
		http.Error(w, "requisition not found", http.StatusNotFound)
		return
	}
	if requisition.Status != models.RequisitionStatusSubmitted {
		http.Error(w, "only submitted requisitions can be approved", http.StatusBadRequest)
		return
	}

	userID, err := uuid.Parse(middleware.GetUserID(r))
	if err != nil {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}
	now := time.Now()
	requisition.Status = models.RequisitionStatusApproved
	requisition.ApprovedByID = &userID
	requisition.ApprovedAt = &now

	if err := config.DB.Save(&requisition).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	recordAudit(r, "requisition", requisition.ID, models.AuditActionApprove, nil)
	writeJSON(w, http.StatusOK, requisition)
}

// RejectRequisition sends a submitted requisition back with a reason.
func RejectRequisition(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, muxVar(r, "id"))
	if !ok {
		return
	}

	var requisition models.Requisition
	if err := config.DB.First(&requisition, "id = ?", id).Error; err != nil {
		http.Error(w, "requisition not found", http.StatusNotFound)
		return
	}
	if requisition.Status != models.RequisitionStatusSubmitted {
		http.Error(w, "only submitted requisitions can be rejected", http.StatusBadRequest)
		return
	}

	var body struct {
		Reason string `json:"reason"`
	}
	json.NewDecoder(r.Body).Decode(&body)

	requisition.Status = models.RequisitionStatusRejected
	if err := config.DB.Save(&requisition).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	recordAudit(r, "requisition", requisition.ID, models.AuditActionReject, models.AuditDetails{
		"reason": body.Reason,
	})
	writeJSON(w, http.StatusOK, requisition)
}

// ConvertRequisitionToRFQ creates an open RFQ from an approved
// requisition and marks the requisition converted. Both writes happen
// in one transaction.
func ConvertRequisitionToRFQ(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, muxVar(r, "id"))
	if !ok {
		return
	}

	var requisition models.Requisition
	if err := config.DB.Preload("LineItems").First(&requisition, "id = ?", id).Error; err != nil {
		http.Error(w, "requisition not found", http.StatusNotFound)
		return
	}
	if requisition.Status != models.RequisitionStatusApproved {
		http.Error(w, "only approved requisitions can be converted", http.StatusBadRequest)
		return
	}

	userID, err := uuid.Parse(middleware.GetUserID(r))
	if err != nil {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	rfq := models.RFQ{
		Reference:             nextReference("RFQ", &models.RFQ{}),
		Title:                 requisition.Title,
		Description:           requisition.Description,
		RequisitionID:         &requisition.ID,
		VesselName:            requisition.VesselName,
		IMONumber:             requisition.IMONumber,
		DeliveryLocation:      requisition.DeliveryLocation,
		RequestedDeliveryDate: requisition.RequestedDeliveryDate,
		Status:                models.RFQStatusOpen,
		CreatedByID:           userID,
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rfq).Error; err != nil {
			return err
		}
		requisition.Status = models.RequisitionStatusConverted
		return tx.Save(&requisition).Error
	})
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	recordAudit(r, "requisition", requisition.ID, models.AuditActionStatusChange, models.AuditDetails{
		"to":            models.RequisitionStatusConverted,
		"rfq_id":        rfq.ID,
		"rfq_reference": rfq.Reference,
	})
	writeJSON(w, http.StatusCreated, rfq)
}

func transitionRequisition(w http.ResponseWriter, r *http.Request, from, to models.RequisitionStatus, action models.AuditAction) {
	id, ok := parseIDParam(w, muxVar(r, "id"))
	if !ok {
		return
	}

	var requisition models.Requisition
	if err := config.DB.First(&requisition, "id = ?", id).Error; err != nil {
		http.Error(w, "requisition not found", http.StatusNotFound)
		return
	}
	if requisition.Status != from {
		http.Error(w, fmt.Sprintf("requisition must be %s", from), http.StatusBadRequest)
		return
	}

	requisition.Status = to
	if err := config.DB.Save(&requisition).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	recordAudit(r, "requisition", requisition.ID, action, models.AuditDetails{
		"from": from,
		"to":   to,
	})
	writeJSON(w, http.StatusOK, requisition)
}

// nextReference builds the next sequential reference like REQ-2026-0042.
// The count-based scheme matches how references are generated elsewhere;
// gaps after deletes are acceptable.
func nextReference(prefix string, model interface{}) string {
	var count int64
	config.DB.Unscoped().Model(model).Count(&count)
	return fmt.Sprintf("%s-%d-%04d", prefix, time.Now().Year(), count+1)
}
