package handlers

import (
	"encoding/json"
	"log"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"shipproc/config"
	"shipproc/middleware"
	"shipproc/models"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// pagination reads ?page and ?limit with sane defaults.
func pagination(r *http.Request) (page, limit, offset int) {
	page = 1
	limit = 20
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 && l <= 100 {
		limit = l
	}
	offset = (page - 1) * limit
	return
}

// recordAudit appends an audit trail entry for the current request.
// Audit writes never fail the business operation; errors are logged.
func recordAudit(r *http.Request, entityType string, entityID uuid.UUID, action models.AuditAction, details models.AuditDetails) {
	entry := models.AuditLog{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Details:    details,
		IPAddress:  clientIP(r),
		UserAgent:  r.UserAgent(),
	}
	if id, err := uuid.Parse(middleware.GetUserID(r)); err == nil {
		entry.UserID = &id
	}
	if err := config.DB.Create(&entry).Error; err != nil {
		log.Printf("audit write failed for %s %s: %v", entityType, entityID, err)
	}
}

// notifyUser creates an in-app notification row. Like audit writes,
// failures are logged and swallowed.
func notifyUser(userID uuid.UUID, nType models.NotificationType, title, message, entityType string, entityID uuid.UUID) {
	n := models.Notification{
		UserID:     userID,
		Type:       nType,
		Title:      title,
		Message:    message,
		EntityType: entityType,
		EntityID:   &entityID,
		Status:     models.NotificationStatusSent,
	}
	if err := config.DB.Create(&n).Error; err != nil {
		log.Printf("notification write failed for user %s: %v", userID, err)
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func muxVar(r *http.Request, key string) string {
	return mux.Vars(r)[key]
}

// parseIDParam parses a uuid path variable, writing a 400 on failure.
func parseIDParam(w http.ResponseWriter, raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}
