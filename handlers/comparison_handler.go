package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"gorm.io/gorm"

	"shipproc/config"
	"shipproc/models"
	"shipproc/pkg/scoring"
	"shipproc/utils"
)

// comparisonReport is the response of a comparison run. Everything here
// except the persisted quote scores is derived on the fly.
type comparisonReport struct {
	RFQID         string                        `json:"rfq_id"`
	RFQReference  string                        `json:"rfq_reference"`
	RFQTitle      string                        `json:"rfq_title"`
	QuoteCount    int                           `json:"quote_count"`
	Results       []scoring.VendorScoringResult `json:"results"`
	Recommended   *scoring.VendorScoringResult  `json:"recommended"`
	Alternatives  []scoring.VendorScoringResult `json:"alternatives"`
	Matrix        scoring.Matrix                `json:"matrix"`
	Narrative     []string                      `json:"narrative"`
	Weights       scoring.Weights               `json:"weights"`
	PortDistances map[string]*float64           `json:"port_distances_nm,omitempty"`
	GeneratedAt   time.Time                     `json:"generated_at"`
}

type compareReq struct {
	Weights *scoring.Weights `json:"weights"`
}

// CompareQuotes scores and ranks all submitted quotes on an RFQ,
// persists the component scores on each quote and returns the full
// comparison report. Re-running the comparison overwrites the stored
// scores with identical values unless the quotes changed in between.
func CompareQuotes(w http.ResponseWriter, r *http.Request) {
	rfqID, ok := parseIDParam(w, muxVar(r, "id"))
	if !ok {
		return
	}

	var rfq models.RFQ
	if err := config.DB.First(&rfq, "id = ?", rfqID).Error; err != nil {
		http.Error(w, "rfq not found", http.StatusNotFound)
		return
	}

	// optional body: weight overrides
	weights := scoring.DefaultWeights()
	var req compareReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Weights != nil {
		weights = *req.Weights
	}
	if err := weights.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var quotes []*models.Quote
	if err := config.DB.
		Preload("Vendor.ServiceAreas").
		Preload("Vendor.PortCapabilities").
		Preload("LineItems").
		Where("rfq_id = ? AND status = ?", rfq.ID, models.QuoteStatusSubmitted).
		Find(&quotes).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	cmp, err := scoring.Compare(&rfq, quotes, weights)
	if err != nil {
		if errors.Is(err, scoring.ErrNoQuotes) {
			http.Error(w, "no quotes found for comparison", http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// persist the scores written onto the quotes
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		for _, q := range quotes {
			if err := tx.Model(&models.Quote{}).Where("id = ?", q.ID).Updates(map[string]interface{}{
				"price_score":    q.PriceScore,
				"delivery_score": q.DeliveryScore,
				"quality_score":  q.QualityScore,
				"location_score": q.LocationScore,
				"total_score":    q.TotalScore,
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	report := comparisonReport{
		RFQID:        rfq.ID.String(),
		RFQReference: rfq.Reference,
		RFQTitle:     rfq.Title,
		QuoteCount:   len(quotes),
		Results:      cmp.Results,
		Recommended:  cmp.Recommended,
		Alternatives: cmp.Alternatives,
		Matrix:       cmp.Matrix,
		Narrative:    cmp.Narrative,
		Weights:      cmp.Weights,
		GeneratedAt:  time.Now(),
	}

	// informational only: great-circle distance from each vendor's
	// nearest capable port to the delivery point
	if rfq.DeliveryLatitude != nil && rfq.DeliveryLongitude != nil {
		report.PortDistances = make(map[string]*float64, len(quotes))
		for _, q := range quotes {
			if q.Vendor != nil {
				report.PortDistances[q.Vendor.Name] = utils.NearestPortDistanceNm(
					q.Vendor, *rfq.DeliveryLatitude, *rfq.DeliveryLongitude)
			}
		}
	}

	recordAudit(r, "rfq", rfq.ID, models.AuditActionCompare, models.AuditDetails{
		"quote_count": len(quotes),
		"weights":     weights,
		"recommended": cmp.Recommended.VendorName,
	})
	notifyUser(rfq.CreatedByID, models.NotificationTypeComparisonReady,
		"Comparison ready for "+rfq.Reference,
		"Quote comparison has been generated for "+rfq.Title,
		"rfq", rfq.ID)

	writeJSON(w, http.StatusOK, report)
}
