package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"shipproc/config"
	"shipproc/models"
)

type documentCategoryReq struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// CreateDocumentCategory adds a category for document navigation.
func CreateDocumentCategory(w http.ResponseWriter, r *http.Request) {
	var req documentCategoryReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	category := models.DocumentCategory{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		IsActive:    true,
	}
	if err := config.DB.Create(&category).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			http.Error(w, "category already exists", http.StatusConflict)
		} else {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

// GetDocumentCategories lists active categories.
func GetDocumentCategories(w http.ResponseWriter, r *http.Request) {
	var categories []models.DocumentCategory
	if err := config.DB.Where("is_active = ?", true).Order("name").Find(&categories).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": categories})
}
