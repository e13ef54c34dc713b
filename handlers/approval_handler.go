package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shipproc/config"
	"shipproc/middleware"
	"shipproc/models"
	"shipproc/services"
)

type approveQuoteReq struct {
	Comment string `json:"comment"`
}

// ApproveQuote awards an RFQ to one quote. In a single transaction the
// quote becomes accepted, every other submitted quote on the RFQ is
// rejected, the RFQ moves to awarded and the decision is written to the
// audit trail. Withdrawn quotes are left untouched.
func ApproveQuote(w http.ResponseWriter, r *http.Request) {
	quoteID, ok := parseIDParam(w, muxVar(r, "id"))
	if !ok {
		return
	}

	var quote models.Quote
	if err := config.DB.Preload("Vendor").Preload("RFQ").First(&quote, "id = ?", quoteID).Error; err != nil {
		http.Error(w, "quote not found", http.StatusNotFound)
		return
	}
	if quote.Status != models.QuoteStatusSubmitted {
		http.Error(w, "only submitted quotes can be approved", http.StatusBadRequest)
		return
	}
	if quote.RFQ == nil {
		http.Error(w, "quote has no rfq", http.StatusInternalServerError)
		return
	}
	if quote.RFQ.Status != models.RFQStatusOpen {
		http.Error(w, "rfq is not open", http.StatusBadRequest)
		return
	}

	var req approveQuoteReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	var approverID *uuid.UUID
	if id, err := uuid.Parse(middleware.GetUserID(r)); err == nil {
		approverID = &id
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Quote{}).
			Where("id = ?", quote.ID).
			Update("status", models.QuoteStatusAccepted).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Quote{}).
			Where("rfq_id = ? AND id <> ? AND status = ?", quote.RFQID, quote.ID, models.QuoteStatusSubmitted).
			Update("status", models.QuoteStatusRejected).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.RFQ{}).
			Where("id = ?", quote.RFQID).
			Update("status", models.RFQStatusAwarded).Error; err != nil {
			return err
		}

		entry := models.AuditLog{
			EntityType: "rfq",
			EntityID:   quote.RFQID,
			Action:     models.AuditActionApprove,
			UserID:     approverID,
			Details: models.AuditDetails{
				"quote_id":  quote.ID,
				"vendor_id": quote.VendorID,
				"comment":   req.Comment,
			},
			IPAddress: clientIP(r),
			UserAgent: r.UserAgent(),
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	quote.Status = models.QuoteStatusAccepted
	quote.RFQ.Status = models.RFQStatusAwarded

	notifyUser(quote.RFQ.CreatedByID, models.NotificationTypeQuoteAwarded,
		"RFQ "+quote.RFQ.Reference+" awarded",
		"The RFQ was awarded to "+quote.Vendor.Name,
		"rfq", quote.RFQID)

	if quote.Vendor != nil {
		email := services.NewEmailService()
		if err := email.SendQuoteAwardedEmail(quote.Vendor, quote.RFQ, &quote); err != nil {
			log.Printf("award email to %s failed: %v", quote.Vendor.Name, err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"quote":  quote,
		"status": "awarded",
	})
}
