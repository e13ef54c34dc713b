package scoring

import (
	"errors"
	"sort"

	"shipproc/models"
)

// ErrNoQuotes is returned when a comparison is requested for an RFQ
// with no submitted quotes. The caller must surface it before any
// scoring or persistence happens.
var ErrNoQuotes = errors.New("no quotes found for comparison")

// ErrNotScored is returned when a comparison is rebuilt for quotes that
// never went through a compare run.
var ErrNotScored = errors.New("no scored quotes for this rfq")

// VendorScoringResult is the derived, non-persisted view of one scored
// quote. Only the component scores and total are written back onto the
// Quote record; the result itself is rebuilt on every comparison run.
type VendorScoringResult struct {
	Quote          *models.Quote   `json:"quote"`
	VendorName     string          `json:"vendor_name"`
	Scores         ComponentScores `json:"scores"`
	TotalScore     float64         `json:"total_score"`
	Rank           int             `json:"rank"`
	Recommendation string          `json:"recommendation"`
}

// Comparison is the full outcome of scoring and ranking one RFQ's
// submitted quotes.
type Comparison struct {
	Results      []VendorScoringResult `json:"results"`
	Recommended  *VendorScoringResult  `json:"recommended"`
	Alternatives []VendorScoringResult `json:"alternatives"`
	Matrix       Matrix                `json:"matrix"`
	Narrative    []string              `json:"narrative"`
	Weights      Weights               `json:"weights"`
}

// Compare scores every quote against its siblings, ranks them and
// derives the recommendation, matrix and narrative. The component
// scores and total are written onto each quote in memory; persisting
// them is the caller's job. Re-running on unchanged input yields
// identical output.
func Compare(rfq *models.RFQ, quotes []*models.Quote, w Weights) (*Comparison, error) {
	if len(quotes) == 0 {
		return nil, ErrNoQuotes
	}

	siblingAmounts := make([]float64, len(quotes))
	for i, q := range quotes {
		siblingAmounts[i] = q.TotalAmount
	}

	results := make([]VendorScoringResult, len(quotes))
	for i, q := range quotes {
		raw := ComponentScores{
			Price:    PriceScore(q.TotalAmount, siblingAmounts),
			Delivery: DeliveryScore(q.ProposedDeliveryDate, rfq.RequestedDeliveryDate),
			Quality:  QualityScore(q.Vendor),
			Location: LocationScore(q.Vendor, rfq.DeliveryLocation),
		}
		scores, total := Aggregate(raw, w)

		q.PriceScore = &scores.Price
		q.DeliveryScore = &scores.Delivery
		q.QualityScore = &scores.Quality
		q.LocationScore = &scores.Location
		q.TotalScore = &total

		vendorName := ""
		if q.Vendor != nil {
			vendorName = q.Vendor.Name
		}
		results[i] = VendorScoringResult{
			Quote:          q,
			VendorName:     vendorName,
			Scores:         scores,
			TotalScore:     total,
			Recommendation: RecommendationFor(total),
		}
	}

	rankResults(results)

	cmp := &Comparison{
		Results:     results,
		Recommended: &results[0],
		Weights:     w,
	}
	if len(results) > 1 {
		end := 4
		if len(results) < end {
			end = len(results)
		}
		cmp.Alternatives = results[1:end]
	}
	cmp.Matrix = BuildMatrix(results)
	cmp.Narrative = Narrative(results[0])
	return cmp, nil
}

// Rebuild reconstructs a comparison from the score fields a previous
// compare run persisted, without rescoring anything. The ranking,
// matrix and narrative therefore reflect exactly what that run wrote,
// including any custom weights it used. Quotes with no persisted total
// are skipped.
func Rebuild(quotes []*models.Quote) (*Comparison, error) {
	if len(quotes) == 0 {
		return nil, ErrNoQuotes
	}

	deref := func(p *float64) float64 {
		if p == nil {
			return 0
		}
		return *p
	}

	results := make([]VendorScoringResult, 0, len(quotes))
	for _, q := range quotes {
		if q.TotalScore == nil {
			continue
		}
		vendorName := ""
		if q.Vendor != nil {
			vendorName = q.Vendor.Name
		}
		results = append(results, VendorScoringResult{
			Quote:      q,
			VendorName: vendorName,
			Scores: ComponentScores{
				Price:    deref(q.PriceScore),
				Delivery: deref(q.DeliveryScore),
				Quality:  deref(q.QualityScore),
				Location: deref(q.LocationScore),
			},
			TotalScore:     *q.TotalScore,
			Recommendation: RecommendationFor(*q.TotalScore),
		})
	}
	if len(results) == 0 {
		return nil, ErrNotScored
	}

	rankResults(results)

	cmp := &Comparison{
		Results:     results,
		Recommended: &results[0],
	}
	if len(results) > 1 {
		end := 4
		if len(results) < end {
			end = len(results)
		}
		cmp.Alternatives = results[1:end]
	}
	cmp.Matrix = BuildMatrix(results)
	cmp.Narrative = Narrative(results[0])
	return cmp, nil
}

// rankResults sorts descending by total score and assigns 1-based
// ranks. Ties are broken deterministically: the earlier submitted quote
// wins, so repeated runs over unchanged data rank identically no matter
// what order storage returned the rows in.
func rankResults(results []VendorScoringResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].TotalScore != results[j].TotalScore {
			return results[i].TotalScore > results[j].TotalScore
		}
		return results[i].Quote.SubmittedAt.Before(results[j].Quote.SubmittedAt)
	})
	for i := range results {
		results[i].Rank = i + 1
	}
}
