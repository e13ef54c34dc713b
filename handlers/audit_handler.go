package handlers

import (
	"net/http"

	"shipproc/config"
	"shipproc/models"
)

// GetAuditLogs lists audit entries filtered by entity, user or action,
// newest first. The trail is read-only over the API.
func GetAuditLogs(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := pagination(r)

	q := config.DB.Model(&models.AuditLog{})
	if entityType := r.URL.Query().Get("entity_type"); entityType != "" {
		q = q.Where("entity_type = ?", entityType)
	}
	if entityID := r.URL.Query().Get("entity_id"); entityID != "" {
		q = q.Where("entity_id = ?", entityID)
	}
	if userID := r.URL.Query().Get("user_id"); userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	if action := r.URL.Query().Get("action"); action != "" {
		q = q.Where("action = ?", action)
	}
	if from := r.URL.Query().Get("from"); from != "" {
		q = q.Where("created_at >= ?", from)
	}
	if to := r.URL.Query().Get("to"); to != "" {
		q = q.Where("created_at <= ?", to)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		http.Error(w, "db count error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var logs []models.AuditLog
	if err := q.Preload("User").Order("created_at DESC").Limit(limit).Offset(offset).Find(&logs).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total": total,
		"page":  page,
		"limit": limit,
		"data":  logs,
	})
}

// GetEntityAuditTrail returns the full trail for one entity in
// chronological order.
func GetEntityAuditTrail(w http.ResponseWriter, r *http.Request) {
	entityType := muxVar(r, "entityType")
	entityID, ok := parseIDParam(w, muxVar(r, "entityId"))
	if !ok {
		return
	}

	var logs []models.AuditLog
	if err := config.DB.
		Preload("User").
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at").
		Find(&logs).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": logs, "count": len(logs)})
}
