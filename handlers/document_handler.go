package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shipproc/config"
	"shipproc/middleware"
	"shipproc/models"
)

const uploadDir = "./uploads/documents"

// DocumentUploadRequest carries the metadata part of a multipart upload.
type DocumentUploadRequest struct {
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	CategoryID  string                 `json:"category_id"`
	EntityType  string                 `json:"entity_type"` // rfq, quote, purchase_order, compliance_report
	EntityID    string                 `json:"entity_id"`
	VesselName  string                 `json:"vessel_name"`
	Metadata    map[string]interface{} `json:"metadata"`
}

// UploadDocument stores an uploaded file under ./uploads and creates
// the document plus its initial version. A file whose SHA256 already
// exists is not stored twice; the existing document is returned.
func UploadDocument(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	// max 100MB
	if err := r.ParseMultipartForm(100 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	var req DocumentUploadRequest
	if metadataStr := r.FormValue("metadata"); metadataStr != "" {
		if err := json.Unmarshal([]byte(metadataStr), &req); err != nil {
			http.Error(w, "invalid metadata: "+err.Error(), http.StatusBadRequest)
			return
		}
	}
	if req.Title == "" {
		req.Title = header.Filename
	}

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		http.Error(w, "failed to calculate hash: "+err.Error(), http.StatusInternalServerError)
		return
	}
	fileHash := hex.EncodeToString(hasher.Sum(nil))
	file.Seek(0, 0)

	var existingDoc models.Document
	if err := config.DB.Where("file_hash = ?", fileHash).First(&existingDoc).Error; err == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message":  "file already exists",
			"document": existingDoc,
		})
		return
	}

	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		http.Error(w, "failed to create upload directory: "+err.Error(), http.StatusInternalServerError)
		return
	}

	timestamp := time.Now().Format("20060102-150405")
	ext := filepath.Ext(header.Filename)
	fileName := fmt.Sprintf("%s-%s%s", timestamp, uuid.New().String()[:8], ext)
	filePath := filepath.Join(uploadDir, fileName)

	dst, err := os.Create(filePath)
	if err != nil {
		http.Error(w, "failed to create file: "+err.Error(), http.StatusInternalServerError)
		return
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		http.Error(w, "failed to save file: "+err.Error(), http.StatusInternalServerError)
		return
	}

	fileInfo, _ := os.Stat(filePath)
	fileSize := fileInfo.Size()

	var categoryID *uuid.UUID
	if req.CategoryID != "" {
		if cid, err := uuid.Parse(req.CategoryID); err == nil {
			categoryID = &cid
		}
	}
	var entityID *uuid.UUID
	if req.EntityID != "" {
		if eid, err := uuid.Parse(req.EntityID); err == nil {
			entityID = &eid
		}
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		http.Error(w, "invalid user id: "+err.Error(), http.StatusBadRequest)
		return
	}

	document := models.Document{
		Title:        req.Title,
		Description:  req.Description,
		FileName:     header.Filename,
		FileSize:     fileSize,
		FileType:     header.Header.Get("Content-Type"),
		FilePath:     filePath,
		FileHash:     fileHash,
		Status:       models.DocumentStatusDraft,
		Version:      1,
		CategoryID:   categoryID,
		EntityType:   req.EntityType,
		EntityID:     entityID,
		VesselName:   req.VesselName,
		Metadata:     req.Metadata,
		UploadedByID: userID,
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&document).Error; err != nil {
			return err
		}
		version := models.DocumentVersion{
			DocumentID:       document.ID,
			VersionNumber:    1,
			FileName:         header.Filename,
			FileSize:         fileSize,
			FileType:         header.Header.Get("Content-Type"),
			FilePath:         filePath,
			FileHash:         fileHash,
			ChangeLog:        "Initial upload",
			CreatedByID:      userID,
			IsCurrentVersion: true,
		}
		return tx.Create(&version).Error
	})
	if err != nil {
		http.Error(w, "failed to create document: "+err.Error(), http.StatusInternalServerError)
		return
	}

	recordAudit(r, "document", document.ID, models.AuditActionCreate, models.AuditDetails{
		"file_name": header.Filename,
		"file_size": fileSize,
	})

	config.DB.Preload("Category").Preload("UploadedBy").First(&document, document.ID)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "document uploaded successfully",
		"document": document,
	})
}

// GetDocuments lists documents with category, entity, vessel and status
// filters.
func GetDocuments(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := pagination(r)

	q := config.DB.Model(&models.Document{})
	if categoryID := r.URL.Query().Get("category_id"); categoryID != "" {
		q = q.Where("category_id = ?", categoryID)
	}
	if entityType := r.URL.Query().Get("entity_type"); entityType != "" {
		q = q.Where("entity_type = ?", entityType)
	}
	if entityID := r.URL.Query().Get("entity_id"); entityID != "" {
		q = q.Where("entity_id = ?", entityID)
	}
	if vessel := r.URL.Query().Get("vessel"); vessel != "" {
		q = q.Where("vessel_name ILIKE ?", "%"+vessel+"%")
	}
	if status := r.URL.Query().Get("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if search := r.URL.Query().Get("search"); search != "" {
		q = q.Where("title ILIKE ? OR description ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		http.Error(w, "db count error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var documents []models.Document
	if err := q.Preload("Category").Order("created_at DESC").Limit(limit).Offset(offset).Find(&documents).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total": total,
		"page":  page,
		"limit": limit,
		"data":  documents,
	})
}

// GetDocument returns one document with category, uploader and versions.
func GetDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, muxVar(r, "id"))
	if !ok {
		return
	}

	var document models.Document
	if err := config.DB.
		Preload("Category").
		Preload("UploadedBy").
		Preload("Versions").
		First(&document, "id = ?", id).Error; err != nil {
		http.Error(w, "document not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, document)
}

type documentUpdateReq struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Status      models.DocumentStatus `json:"status" validate:"omitempty,oneof=draft active archived"`
	VesselName  string                `json:"vessel_name"`
}

// UpdateDocument changes document metadata, not file content; new file
// content goes through UploadDocumentVersion.
func UpdateDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, muxVar(r, "id"))
	if !ok {
		return
	}

	var document models.Document
	if err := config.DB.First(&document, "id = ?", id).Error; err != nil {
		http.Error(w, "document not found", http.StatusNotFound)
		return
	}

	var req documentUpdateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Title != "" {
		document.Title = req.Title
	}
	if req.Description != "" {
		document.Description = req.Description
	}
	if req.Status != "" {
		document.Status = req.Status
	}
	if req.VesselName != "" {
		document.VesselName = req.VesselName
	}

	if err := config.DB.Save(&document).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	recordAudit(r, "document", document.ID, models.AuditActionUpdate, nil)
	writeJSON(w, http.StatusOK, document)
}

// DeleteDocument soft-deletes the document record; stored files are
// kept for the retention period and cleaned up out of band.
func DeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, muxVar(r, "id"))
	if !ok {
		return
	}

	var document models.Document
	if err := config.DB.First(&document, "id = ?", id).Error; err != nil {
		http.Error(w, "document not found", http.StatusNotFound)
		return
	}
	if err := config.DB.Delete(&document).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	recordAudit(r, "document", document.ID, models.AuditActionDelete, nil)
	w.WriteHeader(http.StatusNoContent)
}

// DownloadDocument streams the current version's file and bumps the
// download counter.
func DownloadDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, muxVar(r, "id"))
	if !ok {
		return
	}

	var document models.Document
	if err := config.DB.First(&document, "id = ?", id).Error; err != nil {
		http.Error(w, "document not found", http.StatusNotFound)
		return
	}

	f, err := os.Open(document.FilePath)
	if err != nil {
		http.Error(w, "stored file is missing", http.StatusNotFound)
		return
	}
	defer f.Close()

	config.DB.Model(&document).UpdateColumn("download_count", gorm.Expr("download_count + 1"))

	w.Header().Set("Content-Type", document.FileType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", sanitizeFilename(document.FileName)))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", document.FileSize))
	io.Copy(w, f)
}
