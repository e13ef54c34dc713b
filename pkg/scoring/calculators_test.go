package scoring

import (
	"testing"
	"time"

	"github.com/lib/pq"

	"shipproc/models"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func rating(v float64) *float64 {
	return &v
}

func TestPriceScore(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		siblings []float64
		expected float64
	}{
		{"lowest price scores ten", 100, []float64{100, 150, 200}, 10},
		{"midpoint interpolates", 150, []float64{100, 150, 200}, 5},
		{"highest price scores zero", 200, []float64{100, 150, 200}, 0},
		{"all equal amounts score ten", 500, []float64{500, 500, 500}, 10},
		{"single quote scores ten", 750, []float64{750}, 10},
		{"quarter of the range", 125, []float64{100, 200}, 7.5},
		{"no siblings defaults to ten", 42, nil, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PriceScore(tt.amount, tt.siblings)
			if got != tt.expected {
				t.Errorf("PriceScore(%v, %v) = %v, expected %v",
					tt.amount, tt.siblings, got, tt.expected)
			}
		})
	}
}

func TestPriceScoreNeverNegative(t *testing.T) {
	// floating-point drift near the top of the range must clamp to 0
	siblings := []float64{0.1, 0.2, 0.3}
	for _, amount := range siblings {
		if got := PriceScore(amount, siblings); got < 0 || got > 10 {
			t.Errorf("PriceScore(%v) = %v, out of [0,10]", amount, got)
		}
	}
}

func TestDeliveryScore(t *testing.T) {
	requested := date(2026, time.September, 15)

	tests := []struct {
		name      string
		proposed  *time.Time
		requested *time.Time
		expected  float64
	}{
		{"on time", date(2026, time.September, 15), requested, 10},
		{"one week early", date(2026, time.September, 8), requested, 10},
		{"two months early", date(2026, time.July, 15), requested, 10},
		{"one day late", date(2026, time.September, 16), requested, 8},
		{"seven days late", date(2026, time.September, 22), requested, 8},
		{"eight days late", date(2026, time.September, 23), requested, 6},
		{"fourteen days late", date(2026, time.September, 29), requested, 6},
		{"fifteen days late", date(2026, time.September, 30), requested, 4},
		{"thirty days late", date(2026, time.October, 15), requested, 4},
		{"thirty-one days late", date(2026, time.October, 16), requested, 2},
		{"half a year late", date(2027, time.March, 15), requested, 2},
		{"missing proposed date is neutral", nil, requested, 5},
		{"missing requested date is neutral", date(2026, time.September, 15), nil, 5},
		{"both dates missing is neutral", nil, nil, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeliveryScore(tt.proposed, tt.requested)
			if got != tt.expected {
				t.Errorf("DeliveryScore = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestDeliveryScoreIgnoresTimeOfDay(t *testing.T) {
	requested := time.Date(2026, time.September, 15, 8, 0, 0, 0, time.UTC)
	proposed := time.Date(2026, time.September, 15, 23, 30, 0, 0, time.UTC)
	if got := DeliveryScore(&proposed, &requested); got != 10 {
		t.Errorf("same-day delivery scored %v, expected 10", got)
	}
}

func TestQualityScore(t *testing.T) {
	tests := []struct {
		name     string
		vendor   *models.Vendor
		expected float64
	}{
		{"rated vendor passes through", &models.Vendor{QualityRating: rating(8.2)}, 8.2},
		{"zero rating is respected", &models.Vendor{QualityRating: rating(0)}, 0},
		{"unrated vendor is neutral", &models.Vendor{}, 5},
		{"nil vendor is neutral", nil, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := QualityScore(tt.vendor); got != tt.expected {
				t.Errorf("QualityScore = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestCountryFromLocation(t *testing.T) {
	tests := []struct {
		location string
		expected string
	}{
		{"Port of Rotterdam, Netherlands", "Netherlands"},
		{"Jurong Port, Singapore", "Singapore"},
		{"Terminal 3, Port Klang, Malaysia", "Malaysia"},
		{"Houston", "Houston"},
		{"  Piraeus,  Greece  ", "Greece"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := CountryFromLocation(tt.location); got != tt.expected {
			t.Errorf("CountryFromLocation(%q) = %q, expected %q", tt.location, got, tt.expected)
		}
	}
}

func TestLocationScore(t *testing.T) {
	fullVendor := &models.Vendor{
		ServiceAreas: []models.VendorServiceArea{
			{Country: "Netherlands", SubRegion: "Rotterdam-Rijnmond"},
		},
		PortCapabilities: []models.VendorPortCapability{
			{PortName: "Rotterdam", Capabilities: pq.StringArray{"delivery", "bunkering"}},
		},
	}
	countryOnlyVendor := &models.Vendor{
		ServiceAreas: []models.VendorServiceArea{{Country: "Netherlands"}},
	}
	deliveryNoPresence := &models.Vendor{
		ServiceAreas: []models.VendorServiceArea{{Country: "Netherlands"}},
		PortCapabilities: []models.VendorPortCapability{
			{PortName: "Amsterdam", Capabilities: pq.StringArray{"delivery"}},
		},
	}
	elsewhereVendor := &models.Vendor{
		ServiceAreas: []models.VendorServiceArea{{Country: "Singapore"}},
	}

	tests := []struct {
		name     string
		vendor   *models.Vendor
		location string
		expected float64
	}{
		{"full logistics fit caps at ten", fullVendor, "Port of Rotterdam, Netherlands", 10},
		{"country only", countryOnlyVendor, "Port of Rotterdam, Netherlands", 5},
		{"country plus delivery capability", deliveryNoPresence, "Port of Rotterdam, Netherlands", 8},
		{"unserved country is penalized flat", elsewhereVendor, "Port of Rotterdam, Netherlands", 3},
		{"nil vendor is penalized flat", nil, "Port of Rotterdam, Netherlands", 3},
		{"no delivery location is neutral", fullVendor, "", 5},
		{"case-insensitive country match", countryOnlyVendor, "Rotterdam, NETHERLANDS", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LocationScore(tt.vendor, tt.location); got != tt.expected {
				t.Errorf("LocationScore = %v, expected %v", got, tt.expected)
			}
		})
	}
}
