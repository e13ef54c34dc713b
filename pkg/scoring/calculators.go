package scoring

import (
	"strings"
	"time"

	"shipproc/models"
)

const (
	// MaxScore is the ceiling for every component score.
	MaxScore = 10.0
	// NeutralScore is returned when a component cannot be assessed
	// (missing dates, missing delivery location, unrated vendor).
	NeutralScore = 5.0
	// UnservedCountryScore is the flat penalty when the vendor does not
	// list the destination country: penalized but not zero, since
	// courier or partner delivery may still be possible.
	UnservedCountryScore = 3.0
)

// PriceScore maps a quote's amount onto [0,10] against its siblings:
// the cheapest sibling scores 10, the most expensive 0, linear in
// between. When all amounts are equal (including the single-quote case)
// there is no price differentiation and every quote scores 10.
func PriceScore(amount float64, siblingAmounts []float64) float64 {
	if len(siblingAmounts) == 0 {
		return MaxScore
	}
	min, max := siblingAmounts[0], siblingAmounts[0]
	for _, a := range siblingAmounts[1:] {
		if a < min {
			min = a
		}
		if a > max {
			max = a
		}
	}
	if max == min {
		return MaxScore
	}
	score := MaxScore - ((amount-min)/(max-min))*MaxScore
	// guard against floating-point drift
	if score < 0 {
		return 0
	}
	return score
}

// DeliveryScore grades the proposed delivery date against the requested
// one via a step function on the signed day difference. On time or early
// is a 10 regardless of how early. Either date missing means the
// component cannot be assessed and scores neutral.
func DeliveryScore(proposed, requested *time.Time) float64 {
	if proposed == nil || requested == nil {
		return NeutralScore
	}
	days := daysBetween(*requested, *proposed)
	switch {
	case days <= 0:
		return 10
	case days <= 7:
		return 8
	case days <= 14:
		return 6
	case days <= 30:
		return 4
	default:
		return 2
	}
}

// daysBetween returns the whole calendar days from a to b, ignoring the
// time-of-day component of either value.
func daysBetween(a, b time.Time) int {
	au := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bu := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au).Hours() / 24)
}

// QualityScore passes through the vendor's externally curated quality
// rating, defaulting to neutral when the vendor is unrated.
func QualityScore(vendor *models.Vendor) float64 {
	if vendor == nil || vendor.QualityRating == nil {
		return NeutralScore
	}
	return *vendor.QualityRating
}

// LocationScore grades the vendor's logistics fit for the RFQ delivery
// location. The destination country is parsed from the free-text
// location ("Port of Rotterdam, Netherlands" -> "Netherlands").
// Additive: serving the country +5, a "delivery" port capability +3,
// a local presence in the country +2, capped at 10. A vendor that does
// not serve the country at all gets the flat unserved penalty.
func LocationScore(vendor *models.Vendor, deliveryLocation string) float64 {
	country := CountryFromLocation(deliveryLocation)
	if country == "" {
		return NeutralScore
	}
	if vendor == nil || !vendor.ServesCountry(country) {
		return UnservedCountryScore
	}
	score := 5.0
	if vendor.HasPortCapability("delivery") {
		score += 3
	}
	if vendor.HasLocalPresence(country) {
		score += 2
	}
	if score > MaxScore {
		score = MaxScore
	}
	return score
}

// CountryFromLocation extracts the country from a free-text delivery
// location: the substring after the last comma, or the whole string
// when there is no comma.
func CountryFromLocation(location string) string {
	location = strings.TrimSpace(location)
	if location == "" {
		return ""
	}
	if idx := strings.LastIndex(location, ","); idx >= 0 {
		return strings.TrimSpace(location[idx+1:])
	}
	return location
}
