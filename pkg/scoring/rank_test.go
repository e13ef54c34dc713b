package scoring

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"shipproc/models"
)

// fullFitVendor serves the destination country with delivery capability
// and a local presence, so its location score is the full 10.
func fullFitVendor(name string, quality float64) *models.Vendor {
	return &models.Vendor{
		ID:            uuid.New(),
		Name:          name,
		QualityRating: &quality,
		ServiceAreas: []models.VendorServiceArea{
			{Country: "Netherlands", SubRegion: "Rotterdam-Rijnmond"},
		},
		PortCapabilities: []models.VendorPortCapability{
			{PortName: "Rotterdam", Capabilities: pq.StringArray{"delivery"}},
		},
	}
}

func testRFQ() *models.RFQ {
	return &models.RFQ{
		ID:                    uuid.New(),
		Reference:             "RFQ-2026-0101",
		Title:                 "Main engine spares",
		DeliveryLocation:      "Port of Rotterdam, Netherlands",
		RequestedDeliveryDate: date(2026, time.September, 15),
	}
}

func quoteFor(vendor *models.Vendor, amount float64, delivery *time.Time, submitted time.Time) *models.Quote {
	return &models.Quote{
		ID:                   uuid.New(),
		VendorID:             vendor.ID,
		Vendor:               vendor,
		TotalAmount:          amount,
		Currency:             "USD",
		ProposedDeliveryDate: delivery,
		Status:               models.QuoteStatusSubmitted,
		SubmittedAt:          submitted,
	}
}

func TestCompareNoQuotes(t *testing.T) {
	_, err := Compare(testRFQ(), nil, DefaultWeights())
	if !errors.Is(err, ErrNoQuotes) {
		t.Fatalf("Compare with zero quotes returned %v, expected ErrNoQuotes", err)
	}
}

// Three quotes priced {100, 150, 200}, identical on-time delivery,
// identical quality 8 and full location fit: price is the only
// differentiator, so the ranking must follow the price order exactly.
func TestComparePriceOnlyDifferentiation(t *testing.T) {
	rfq := testRFQ()
	onTime := date(2026, time.September, 15)
	base := time.Date(2026, time.August, 1, 10, 0, 0, 0, time.UTC)

	q100 := quoteFor(fullFitVendor("Alpha Marine", 8), 100, onTime, base)
	q150 := quoteFor(fullFitVendor("Bravo Supply", 8), 150, onTime, base.Add(time.Hour))
	q200 := quoteFor(fullFitVendor("Charlie Chandlers", 8), 200, onTime, base.Add(2*time.Hour))

	// deliberately out of price order to prove sorting is by score
	cmp, err := Compare(rfq, []*models.Quote{q150, q200, q100}, DefaultWeights())
	if err != nil {
		t.Fatalf("Compare returned error: %v", err)
	}

	wantPrice := []float64{10, 5, 0}
	wantTotal := []float64{9.6, 7.6, 5.6}
	wantVendor := []string{"Alpha Marine", "Bravo Supply", "Charlie Chandlers"}
	wantTier := []string{RecommendationHigh, RecommendationStandard, RecommendationAcceptable}

	for i, r := range cmp.Results {
		if r.Rank != i+1 {
			t.Errorf("result %d has rank %d", i, r.Rank)
		}
		if r.VendorName != wantVendor[i] {
			t.Errorf("rank %d is %q, expected %q", i+1, r.VendorName, wantVendor[i])
		}
		if r.Scores.Price != wantPrice[i] {
			t.Errorf("rank %d price score = %v, expected %v", i+1, r.Scores.Price, wantPrice[i])
		}
		if r.TotalScore != wantTotal[i] {
			t.Errorf("rank %d total = %v, expected %v", i+1, r.TotalScore, wantTotal[i])
		}
		if r.Recommendation != wantTier[i] {
			t.Errorf("rank %d tier = %q, expected %q", i+1, r.Recommendation, wantTier[i])
		}
	}

	if cmp.Recommended.VendorName != "Alpha Marine" {
		t.Errorf("recommended vendor = %q", cmp.Recommended.VendorName)
	}
	if len(cmp.Alternatives) != 2 {
		t.Errorf("expected 2 alternatives, got %d", len(cmp.Alternatives))
	}
}

func TestCompareSingleQuote(t *testing.T) {
	rfq := testRFQ()
	vendor := fullFitVendor("Solo Supplies", 6)
	q := quoteFor(vendor, 4200, date(2026, time.September, 20), time.Now())

	cmp, err := Compare(rfq, []*models.Quote{q}, DefaultWeights())
	if err != nil {
		t.Fatalf("Compare returned error: %v", err)
	}

	r := cmp.Results[0]
	if r.Scores.Price != 10 {
		t.Errorf("single quote price score = %v, expected 10 (no variance)", r.Scores.Price)
	}
	if r.Rank != 1 {
		t.Errorf("single quote rank = %d, expected 1", r.Rank)
	}
	// 10*0.4 + 8*0.3 + 6*0.2 + 10*0.1 = 8.6
	if r.TotalScore != 8.6 {
		t.Errorf("single quote total = %v, expected 8.6", r.TotalScore)
	}
	if len(cmp.Alternatives) != 0 {
		t.Errorf("single quote produced %d alternatives", len(cmp.Alternatives))
	}
}

func TestComparePersistsScoresOntoQuotes(t *testing.T) {
	rfq := testRFQ()
	q := quoteFor(fullFitVendor("Alpha Marine", 8), 100, date(2026, time.September, 15), time.Now())

	if _, err := Compare(rfq, []*models.Quote{q}, DefaultWeights()); err != nil {
		t.Fatalf("Compare returned error: %v", err)
	}
	if q.PriceScore == nil || q.DeliveryScore == nil || q.QualityScore == nil ||
		q.LocationScore == nil || q.TotalScore == nil {
		t.Fatal("Compare did not write score fields onto the quote")
	}
	if *q.TotalScore != 9.6 {
		t.Errorf("persisted total = %v, expected 9.6", *q.TotalScore)
	}
}

func TestCompareIsIdempotent(t *testing.T) {
	rfq := testRFQ()
	base := time.Date(2026, time.August, 1, 10, 0, 0, 0, time.UTC)
	quotes := []*models.Quote{
		quoteFor(fullFitVendor("Alpha Marine", 7.5), 1200, date(2026, time.September, 18), base),
		quoteFor(fullFitVendor("Bravo Supply", 9), 1350, date(2026, time.September, 14), base.Add(time.Minute)),
		quoteFor(fullFitVendor("Charlie Chandlers", 4), 980, nil, base.Add(2*time.Minute)),
	}

	first, err := Compare(rfq, quotes, DefaultWeights())
	if err != nil {
		t.Fatalf("first Compare: %v", err)
	}
	second, err := Compare(rfq, quotes, DefaultWeights())
	if err != nil {
		t.Fatalf("second Compare: %v", err)
	}

	for i := range first.Results {
		a, b := first.Results[i], second.Results[i]
		if a.Quote.ID != b.Quote.ID || a.Rank != b.Rank || a.TotalScore != b.TotalScore || a.Scores != b.Scores {
			t.Errorf("run 1 and run 2 differ at position %d: %+v vs %+v", i, a, b)
		}
	}
}

func TestCompareTieBreakBySubmissionTime(t *testing.T) {
	rfq := testRFQ()
	onTime := date(2026, time.September, 15)
	early := time.Date(2026, time.August, 1, 9, 0, 0, 0, time.UTC)
	late := early.Add(3 * time.Hour)

	// identical in every scoring dimension
	qLate := quoteFor(fullFitVendor("Later Bidder", 8), 100, onTime, late)
	qEarly := quoteFor(fullFitVendor("Earlier Bidder", 8), 100, onTime, early)

	cmp, err := Compare(rfq, []*models.Quote{qLate, qEarly}, DefaultWeights())
	if err != nil {
		t.Fatalf("Compare returned error: %v", err)
	}
	if cmp.Results[0].VendorName != "Earlier Bidder" {
		t.Errorf("tie broken in favor of %q, expected the earlier submission", cmp.Results[0].VendorName)
	}
	if cmp.Results[0].TotalScore != cmp.Results[1].TotalScore {
		t.Fatalf("test setup broken: scores differ")
	}
}

// All component scores and totals must land in [0,10] for any
// well-formed input mix.
func TestCompareScoreBounds(t *testing.T) {
	rfq := testRFQ()
	base := time.Now()
	quotes := []*models.Quote{
		quoteFor(fullFitVendor("A", 10), 50, date(2026, time.September, 1), base),
		quoteFor(fullFitVendor("B", 0), 5000, date(2027, time.January, 1), base.Add(time.Second)),
		quoteFor(&models.Vendor{ID: uuid.New(), Name: "C"}, 2500, nil, base.Add(2*time.Second)),
	}

	cmp, err := Compare(rfq, quotes, DefaultWeights())
	if err != nil {
		t.Fatalf("Compare returned error: %v", err)
	}
	for _, r := range cmp.Results {
		for name, v := range map[string]float64{
			"price":    r.Scores.Price,
			"delivery": r.Scores.Delivery,
			"quality":  r.Scores.Quality,
			"location": r.Scores.Location,
			"total":    r.TotalScore,
		} {
			if v < 0 || v > 10 {
				t.Errorf("%s score %v out of [0,10] for vendor %s", name, v, r.VendorName)
			}
		}
	}

	// sorted non-increasing by total
	for i := 1; i < len(cmp.Results); i++ {
		if cmp.Results[i].TotalScore > cmp.Results[i-1].TotalScore {
			t.Errorf("results not sorted: position %d (%v) above %d (%v)",
				i, cmp.Results[i].TotalScore, i-1, cmp.Results[i-1].TotalScore)
		}
	}
}

func TestBuildMatrix(t *testing.T) {
	rfq := testRFQ()
	base := time.Now()
	quotes := []*models.Quote{
		quoteFor(fullFitVendor("Alpha Marine", 8), 100, date(2026, time.September, 15), base),
		quoteFor(fullFitVendor("Bravo Supply", 8), 200, nil, base.Add(time.Second)),
	}

	cmp, err := Compare(rfq, quotes, DefaultWeights())
	if err != nil {
		t.Fatalf("Compare returned error: %v", err)
	}

	m := cmp.Matrix
	if len(m.Vendors) != 2 || m.Vendors[0] != "Alpha Marine" {
		t.Errorf("matrix vendor header = %v", m.Vendors)
	}

	criteria := make(map[string][]string, len(m.Rows))
	for _, row := range m.Rows {
		if len(row.Values) != len(m.Vendors) {
			t.Errorf("row %q has %d values for %d vendors", row.Criterion, len(row.Values), len(m.Vendors))
		}
		criteria[row.Criterion] = row.Values
	}

	for _, want := range []string{
		"Total Amount", "Delivery Date", "Price Score", "Delivery Score",
		"Quality Score", "Location Score", "Total Score", "Recommendation",
	} {
		if _, ok := criteria[want]; !ok {
			t.Errorf("matrix is missing criterion %q", want)
		}
	}
	if got := criteria["Total Amount"][0]; got != "100.00 USD" {
		t.Errorf("total amount cell = %q", got)
	}
	if got := criteria["Delivery Date"][1]; got != "not stated" {
		t.Errorf("missing delivery date cell = %q", got)
	}
	if got := criteria["Price Score"][0]; got != "10.00" {
		t.Errorf("price score cell = %q", got)
	}
}

func TestNarrative(t *testing.T) {
	tests := []struct {
		name     string
		result   VendorScoringResult
		expected int
	}{
		{
			"excellent across the board",
			VendorScoringResult{Scores: ComponentScores{10, 10, 8, 10}, TotalScore: 9.6},
			5,
		},
		{
			"price only",
			VendorScoringResult{Scores: ComponentScores{Price: 9, Delivery: 5, Quality: 5, Location: 3}, TotalScore: 6.4},
			1,
		},
		{
			"nothing remarkable",
			VendorScoringResult{Scores: ComponentScores{5, 5, 5, 5}, TotalScore: 5},
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Narrative(tt.result)
			if len(got) != tt.expected {
				t.Errorf("Narrative returned %d lines (%v), expected %d", len(got), got, tt.expected)
			}
		})
	}
}

// scoredQuote builds a quote the way a persisted compare run leaves it,
// with component and total scores filled in.
func scoredQuote(vendorName string, scores ComponentScores, total float64, submitted time.Time) *models.Quote {
	return &models.Quote{
		ID:            uuid.New(),
		Vendor:        &models.Vendor{ID: uuid.New(), Name: vendorName},
		TotalAmount:   1000,
		Currency:      "USD",
		Status:        models.QuoteStatusAccepted,
		SubmittedAt:   submitted,
		PriceScore:    &scores.Price,
		DeliveryScore: &scores.Delivery,
		QualityScore:  &scores.Quality,
		LocationScore: &scores.Location,
		TotalScore:    &total,
	}
}

// Rebuild must reproduce the ranking from the stored scores alone, even
// ones a non-default weighting produced, without rescoring anything.
func TestRebuildFromPersistedScores(t *testing.T) {
	base := time.Date(2026, time.August, 1, 10, 0, 0, 0, time.UTC)

	winner := scoredQuote("Bravo Supply", ComponentScores{Price: 5, Delivery: 10, Quality: 9, Location: 10}, 8.9, base.Add(time.Hour))
	runnerUp := scoredQuote("Alpha Marine", ComponentScores{Price: 10, Delivery: 5, Quality: 8, Location: 10}, 7.1, base)
	unscored := &models.Quote{
		ID:          uuid.New(),
		Vendor:      &models.Vendor{ID: uuid.New(), Name: "Charlie Chandlers"},
		Status:      models.QuoteStatusRejected,
		SubmittedAt: base.Add(2 * time.Hour),
	}

	cmp, err := Rebuild([]*models.Quote{runnerUp, winner, unscored})
	if err != nil {
		t.Fatalf("Rebuild returned error: %v", err)
	}

	if len(cmp.Results) != 2 {
		t.Fatalf("Rebuild kept %d results, expected 2 (unscored quote skipped)", len(cmp.Results))
	}
	if cmp.Recommended.VendorName != "Bravo Supply" {
		t.Errorf("recommended = %q, expected the stored top scorer", cmp.Recommended.VendorName)
	}
	if cmp.Results[0].TotalScore != 8.9 || cmp.Results[1].TotalScore != 7.1 {
		t.Errorf("totals = %.1f, %.1f; stored totals must pass through unchanged",
			cmp.Results[0].TotalScore, cmp.Results[1].TotalScore)
	}
	if cmp.Results[0].Rank != 1 || cmp.Results[1].Rank != 2 {
		t.Errorf("ranks = %d, %d", cmp.Results[0].Rank, cmp.Results[1].Rank)
	}
	if cmp.Results[0].Scores.Delivery != 10 || cmp.Results[1].Scores.Price != 10 {
		t.Errorf("component scores not carried over: %+v", cmp.Results)
	}
	if len(cmp.Matrix.Vendors) != 2 || cmp.Matrix.Vendors[0] != "Bravo Supply" {
		t.Errorf("matrix header = %v", cmp.Matrix.Vendors)
	}
}

func TestRebuildErrors(t *testing.T) {
	if _, err := Rebuild(nil); !errors.Is(err, ErrNoQuotes) {
		t.Errorf("Rebuild(nil) returned %v, expected ErrNoQuotes", err)
	}

	never := &models.Quote{ID: uuid.New(), Status: models.QuoteStatusSubmitted}
	if _, err := Rebuild([]*models.Quote{never}); !errors.Is(err, ErrNotScored) {
		t.Errorf("Rebuild with unscored quotes returned %v, expected ErrNotScored", err)
	}
}
