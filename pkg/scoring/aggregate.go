package scoring

import "math"

// Recommendation tiers. Thresholds are fixed company policy, not
// configurable per request.
const (
	RecommendationHigh       = "highly recommended"
	RecommendationStandard   = "recommended"
	RecommendationAcceptable = "acceptable"
	RecommendationNone       = "not recommended"

	highThreshold       = 8.5
	standardThreshold   = 7.0
	acceptableThreshold = 5.5
)

// ComponentScores holds the four component scores of one quote, each
// rounded to two decimal places.
type ComponentScores struct {
	Price    float64 `json:"price"`
	Delivery float64 `json:"delivery"`
	Quality  float64 `json:"quality"`
	Location float64 `json:"location"`
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Aggregate combines the four component scores into a weighted total.
// Components and the total are rounded to two decimal places.
func Aggregate(s ComponentScores, w Weights) (ComponentScores, float64) {
	rounded := ComponentScores{
		Price:    Round2(s.Price),
		Delivery: Round2(s.Delivery),
		Quality:  Round2(s.Quality),
		Location: Round2(s.Location),
	}
	total := rounded.Price*w.Price +
		rounded.Delivery*w.Delivery +
		rounded.Quality*w.Quality +
		rounded.Location*w.Location
	return rounded, Round2(total)
}

// RecommendationFor maps a total score onto its qualitative tier.
func RecommendationFor(total float64) string {
	switch {
	case total >= highThreshold:
		return RecommendationHigh
	case total >= standardThreshold:
		return RecommendationStandard
	case total >= acceptableThreshold:
		return RecommendationAcceptable
	default:
		return RecommendationNone
	}
}
