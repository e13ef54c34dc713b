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
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shipproc/config"
	"shipproc/middleware"
	"shipproc/models"
)

// UploadDocumentVersion stores a new file version of an existing
// document. Previous versions stay downloadable; the document record
// points at the newest one.
func UploadDocumentVersion(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	docID, ok := parseIDParam(w, muxVar(r, "id"))
	if !ok {
		return
	}

	var document models.Document
	if err := config.DB.First(&document, "id = ?", docID).Error; err != nil {
		http.Error(w, "document not found", http.StatusNotFound)
		return
	}

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

	changeLog := r.FormValue("change_log")
	if changeLog == "" {
		changeLog = "Updated document"
	}

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		http.Error(w, "failed to calculate hash: "+err.Error(), http.StatusInternalServerError)
		return
	}
	fileHash := hex.EncodeToString(hasher.Sum(nil))
	file.Seek(0, 0)

	if fileHash == document.FileHash {
		http.Error(w, "file is identical to the current version", http.StatusConflict)
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

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		http.Error(w, "invalid user id: "+err.Error(), http.StatusBadRequest)
		return
	}

	newVersionNumber := document.Version + 1
	version := models.DocumentVersion{
		DocumentID:       document.ID,
		VersionNumber:    newVersionNumber,
		FileName:         header.Filename,
		FileSize:         fileSize,
		FileType:         header.Header.Get("Content-Type"),
		FilePath:         filePath,
		FileHash:         fileHash,
		ChangeLog:        changeLog,
		CreatedByID:      userID,
		IsCurrentVersion: true,
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.DocumentVersion{}).
			Where("document_id = ?", document.ID).
			Update("is_current_version", false).Error; err != nil {
			return err
		}
		if err := tx.Create(&version).Error; err != nil {
			return err
		}
		return tx.Model(&document).Updates(map[string]interface{}{
			"version":   newVersionNumber,
			"file_name": header.Filename,
			"file_size": fileSize,
			"file_type": header.Header.Get("Content-Type"),
			"file_path": filePath,
			"file_hash": fileHash,
		}).Error
	})
	if err != nil {
		http.Error(w, "failed to create version: "+err.Error(), http.StatusInternalServerError)
		return
	}

	recordAudit(r, "document", document.ID, models.AuditActionUpdate, models.AuditDetails{
		"version":   newVersionNumber,
		"file_name": header.Filename,
	})
	writeJSON(w, http.StatusCreated, version)
}

// GetDocumentVersions lists all versions of a document, newest first.
func GetDocumentVersions(w http.ResponseWriter, r *http.Request) {
	docID, ok := parseIDParam(w, muxVar(r, "id"))
	if !ok {
		return
	}

	var versions []models.DocumentVersion
	if err := config.DB.
		Preload("CreatedBy").
		Where("document_id = ?", docID).
		Order("version_number DESC").
		Find(&versions).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": versions, "count": len(versions)})
}

// DownloadDocumentVersion streams a specific version's file.
func DownloadDocumentVersion(w http.ResponseWriter, r *http.Request) {
	docID, ok := parseIDParam(w, muxVar(r, "id"))
	if !ok {
		return
	}
	versionNumber, err := strconv.Atoi(muxVar(r, "version"))
	if err != nil {
		http.Error(w, "invalid version number", http.StatusBadRequest)
		return
	}

	var version models.DocumentVersion
	if err := config.DB.
		Where("document_id = ? AND version_number = ?", docID, versionNumber).
		First(&version).Error; err != nil {
		http.Error(w, "version not found", http.StatusNotFound)
		return
	}

	f, err := os.Open(version.FilePath)
	if err != nil {
		http.Error(w, "stored file is missing", http.StatusNotFound)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", version.FileType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", sanitizeFilename(version.FileName)))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", version.FileSize))
	io.Copy(w, f)
}

type rollbackReq struct {
	Reason string `json:"reason"`
}

// RollbackDocumentVersion makes an older version current by recording
// it as a new version. History is never rewritten.
func RollbackDocumentVersion(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	docID, ok := parseIDParam(w, muxVar(r, "id"))
	if !ok {
		return
	}
	versionNumber, err := strconv.Atoi(muxVar(r, "version"))
	if err != nil {
		http.Error(w, "invalid version number", http.StatusBadRequest)
		return
	}

	var document models.Document
	if err := config.DB.First(&document, "id = ?", docID).Error; err != nil {
		http.Error(w, "document not found", http.StatusNotFound)
		return
	}
	if versionNumber == document.Version {
		http.Error(w, "version is already current", http.StatusBadRequest)
		return
	}

	var target models.DocumentVersion
	if err := config.DB.
		Where("document_id = ? AND version_number = ?", docID, versionNumber).
		First(&target).Error; err != nil {
		http.Error(w, "version not found", http.StatusNotFound)
		return
	}

	var req rollbackReq
	json.NewDecoder(r.Body).Decode(&req)

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		http.Error(w, "invalid user id: "+err.Error(), http.StatusBadRequest)
		return
	}

	newVersionNumber := document.Version + 1
	rollback := models.DocumentVersion{
		DocumentID:       document.ID,
		VersionNumber:    newVersionNumber,
		FileName:         target.FileName,
		FileSize:         target.FileSize,
		FileType:         target.FileType,
		FilePath:         target.FilePath,
		FileHash:         target.FileHash,
		ChangeLog:        fmt.Sprintf("Rollback to version %d: %s", versionNumber, req.Reason),
		CreatedByID:      userID,
		IsCurrentVersion: true,
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.DocumentVersion{}).
			Where("document_id = ?", document.ID).
			Update("is_current_version", false).Error; err != nil {
			return err
		}
		if err := tx.Create(&rollback).Error; err != nil {
			return err
		}
		return tx.Model(&document).Updates(map[string]interface{}{
			"version":   newVersionNumber,
			"file_name": target.FileName,
			"file_size": target.FileSize,
			"file_type": target.FileType,
			"file_path": target.FilePath,
			"file_hash": target.FileHash,
		}).Error
	})
	if err != nil {
		http.Error(w, "failed to rollback: "+err.Error(), http.StatusInternalServerError)
		return
	}

	recordAudit(r, "document", document.ID, models.AuditActionUpdate, models.AuditDetails{
		"rollback_to": versionNumber,
		"new_version": newVersionNumber,
		"reason":      req.Reason,
	})
	writeJSON(w, http.StatusOK, rollback)
}
