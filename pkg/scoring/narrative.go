package scoring

// componentNarrativeThreshold is the component score at or above which a
// reasoning line is added for the top-ranked quote.
const componentNarrativeThreshold = 8.0

// Narrative builds the human-readable reasoning for the top-ranked
// result. Lines are purely additive and order-independent.
func Narrative(top VendorScoringResult) []string {
	var reasons []string
	if top.Scores.Price >= componentNarrativeThreshold {
		reasons = append(reasons, "Highly competitive pricing")
	}
	if top.Scores.Delivery >= componentNarrativeThreshold {
		reasons = append(reasons, "Meets the requested delivery date")
	}
	if top.Scores.Quality >= componentNarrativeThreshold {
		reasons = append(reasons, "Strong vendor quality track record")
	}
	if top.Scores.Location >= componentNarrativeThreshold {
		reasons = append(reasons, "Established logistics at the delivery location")
	}
	if top.TotalScore >= highThreshold {
		reasons = append(reasons, "Excellent overall fit across all criteria")
	}
	return reasons
}
