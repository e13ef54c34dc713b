package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"shipproc/config"
	"shipproc/middleware"
	"shipproc/models"
)

// GetMyNotifications lists the authenticated user's notifications,
// unread first.
func GetMyNotifications(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(middleware.GetUserID(r))
	if err != nil {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	page, limit, offset := pagination(r)

	q := config.DB.Model(&models.Notification{}).Where("user_id = ?", userID)
	if unread := r.URL.Query().Get("unread"); unread == "true" {
		q = q.Where("read_at IS NULL")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		http.Error(w, "db count error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var notifications []models.Notification
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&notifications).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var unreadCount int64
	config.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Count(&unreadCount)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total":  total,
		"unread": unreadCount,
		"page":   page,
		"limit":  limit,
		"data":   notifications,
	})
}

// MarkNotificationRead marks one of the user's notifications as read.
func MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(middleware.GetUserID(r))
	if err != nil {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	id, ok := parseIDParam(w, muxVar(r, "id"))
	if !ok {
		return
	}

	var notification models.Notification
	if err := config.DB.Where("id = ? AND user_id = ?", id, userID).First(&notification).Error; err != nil {
		http.Error(w, "notification not found", http.StatusNotFound)
		return
	}

	now := time.Now()
	notification.ReadAt = &now
	notification.Status = models.NotificationStatusRead
	if err := config.DB.Save(&notification).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, notification)
}

// MarkAllNotificationsRead marks all of the user's unread notifications.
func MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(middleware.GetUserID(r))
	if err != nil {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	now := time.Now()
	result := config.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Updates(map[string]interface{}{
			"read_at": now,
			"status":  models.NotificationStatusRead,
		})
	if result.Error != nil {
		http.Error(w, "db error: "+result.Error.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"marked": result.RowsAffected})
}
