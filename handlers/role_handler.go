package handlers

import (
	"net/http"

	"shipproc/config"
	"shipproc/models"
)

// GetRoles lists all roles with their permissions for the admin screen.
func GetRoles(w http.ResponseWriter, r *http.Request) {
	var roles []models.Role
	if err := config.DB.Preload("Permissions").Order("level").Find(&roles).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": roles})
}

// GetPermissions lists the permission catalogue.
func GetPermissions(w http.ResponseWriter, r *http.Request) {
	var permissions []models.Permission
	if err := config.DB.Order("resource, action").Find(&permissions).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": permissions})
}
