package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/lib/pq"

	"shipproc/config"
	"shipproc/models"
)

type vendorReq struct {
	Name          string   `json:"name" validate:"required"`
	Code          string   `json:"code" validate:"required"`
	Email         string   `json:"email" validate:"omitempty,email"`
	Phone         string   `json:"phone"`
	Address       string   `json:"address"`
	Country       string   `json:"country"`
	TaxID         string   `json:"tax_id"`
	QualityRating *float64 `json:"quality_rating" validate:"omitempty,gte=0,lte=10"`
}

// CreateVendor registers a vendor in the vendor master.
func CreateVendor(w http.ResponseWriter, r *http.Request) {
	var req vendorReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	vendor := models.Vendor{
		Name:          req.Name,
		Code:          strings.ToUpper(strings.TrimSpace(req.Code)),
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		Country:       req.Country,
		TaxID:         req.TaxID,
		QualityRating: req.QualityRating,
		Status:        models.VendorStatusActive,
	}
	if err := config.DB.Create(&vendor).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			http.Error(w, "vendor code already exists", http.StatusConflict)
		} else {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}

	recordAudit(r, "vendor", vendor.ID, models.AuditActionCreate, models.AuditDetails{
		"name": vendor.Name,
		"code": vendor.Code,
	})
	writeJSON(w, http.StatusCreated, vendor)
}

// GetVendors lists vendors with optional status and country filters.
func GetVendors(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := pagination(r)

	q := config.DB.Model(&models.Vendor{})
	if status := r.URL.Query().Get("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if country := r.URL.Query().Get("country"); country != "" {
		q = q.Where("country ILIKE ?", country)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		http.Error(w, "db count error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var vendors []models.Vendor
	if err := q.Preload("ServiceAreas").Limit(limit).Offset(offset).Order("name").Find(&vendors).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total": total,
		"page":  page,
		"limit": limit,
		"data":  vendors,
	})
}

// GetVendor returns one vendor with service areas and port capabilities.
func GetVendor(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, muxVar(r, "id"))
	if !ok {
		return
	}

	var vendor models.Vendor
	if err := config.DB.
		Preload("ServiceAreas").
		Preload("PortCapabilities").
		First(&vendor, "id = ?", id).Error; err != nil {
		http.Error(w, "vendor not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, vendor)
}

// UpdateVendor updates master data fields; status changes go through
// UpdateVendorStatus so they are audited as transitions.
func UpdateVendor(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, muxVar(r, "id"))
	if !ok {
		return
	}

	var vendor models.Vendor
	if err := config.DB.First(&vendor, "id = ?", id).Error; err != nil {
		http.Error(w, "vendor not found", http.StatusNotFound)
		return
	}

	var req vendorReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	vendor.Name = req.Name
	vendor.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	vendor.Email = req.Email
	vendor.Phone = req.Phone
	vendor.Address = req.Address
	vendor.Country = req.Country
	vendor.TaxID = req.TaxID
	vendor.QualityRating = req.QualityRating

	if err := config.DB.Save(&vendor).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	recordAudit(r, "vendor", vendor.ID, models.AuditActionUpdate, nil)
	writeJSON(w, http.StatusOK, vendor)
}

type vendorStatusReq struct {
	Status models.VendorStatus `json:"status" validate:"required,oneof=active suspended blacklisted"`
	Reason string              `json:"reason"`
}

// UpdateVendorStatus suspends, blacklists or reactivates a vendor.
func UpdateVendorStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, muxVar(r, "id"))
	if !ok {
		return
	}

	var vendor models.Vendor
	if err := config.DB.First(&vendor, "id = ?", id).Error; err != nil {
		http.Error(w, "vendor not found", http.StatusNotFound)
		return
	}

	var req vendorStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	previous := vendor.Status
	vendor.Status = req.Status
	if err := config.DB.Save(&vendor).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	recordAudit(r, "vendor", vendor.ID, models.AuditActionStatusChange, models.AuditDetails{
		"from":   previous,
		"to":     req.Status,
		"reason": req.Reason,
	})
	writeJSON(w, http.StatusOK, vendor)
}

// DeleteVendor soft-deletes a vendor. Quotes already submitted keep
// their vendor reference through the soft delete.
func DeleteVendor(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, muxVar(r, "id"))
	if !ok {
		return
	}

	var vendor models.Vendor
	if err := config.DB.First(&vendor, "id = ?", id).Error; err != nil {
		http.Error(w, "vendor not found", http.StatusNotFound)
		return
	}
	if err := config.DB.Delete(&vendor).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	recordAudit(r, "vendor", vendor.ID, models.AuditActionDelete, nil)
	w.WriteHeader(http.StatusNoContent)
}

type serviceAreaReq struct {
	Country   string `json:"country" validate:"required"`
	SubRegion string `json:"sub_region"`
}

// AddVendorServiceArea adds a country (and optional sub-region) to the
// vendor's delivery coverage.
func AddVendorServiceArea(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, muxVar(r, "id"))
	if !ok {
		return
	}

	var vendor models.Vendor
	if err := config.DB.First(&vendor, "id = ?", id).Error; err != nil {
		http.Error(w, "vendor not found", http.StatusNotFound)
		return
	}

	var req serviceAreaReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	area := models.VendorServiceArea{
		VendorID:  vendor.ID,
		Country:   strings.TrimSpace(req.Country),
		SubRegion: strings.TrimSpace(req.SubRegion),
	}
	if err := config.DB.Create(&area).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, area)
}

// DeleteVendorServiceArea removes one service area row.
func DeleteVendorServiceArea(w http.ResponseWriter, r *http.Request) {
	areaID, ok := parseIDParam(w, muxVar(r, "areaId"))
	if !ok {
		return
	}
	if err := config.DB.Delete(&models.VendorServiceArea{}, "id = ?", areaID).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type portCapabilityReq struct {
	PortName     string   `json:"port_name" validate:"required"`
	Locode       string   `json:"locode"`
	Latitude     float64  `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude    float64  `json:"longitude" validate:"gte=-180,lte=180"`
	Capabilities []string `json:"capabilities" validate:"required,min=1"`
}

// AddVendorPortCapability records what the vendor can do at a port.
func AddVendorPortCapability(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, muxVar(r, "id"))
	if !ok {
		return
	}

	var vendor models.Vendor
	if err := config.DB.First(&vendor, "id = ?", id).Error; err != nil {
		http.Error(w, "vendor not found", http.StatusNotFound)
		return
	}

	var req portCapabilityReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	capability := models.VendorPortCapability{
		VendorID:     vendor.ID,
		PortName:     strings.TrimSpace(req.PortName),
		Locode:       strings.ToUpper(strings.TrimSpace(req.Locode)),
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Capabilities: pq.StringArray(req.Capabilities),
	}
	if err := config.DB.Create(&capability).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, capability)
}

// DeleteVendorPortCapability removes one port capability row.
func DeleteVendorPortCapability(w http.ResponseWriter, r *http.Request) {
	capID, ok := parseIDParam(w, muxVar(r, "capId"))
	if !ok {
		return
	}
	if err := config.DB.Delete(&models.VendorPortCapability{}, "id = ?", capID).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
