package scoring

import (
	"fmt"
	"strconv"
)

// Matrix is the row-per-criterion, column-per-vendor presentation of a
// ranked comparison. Purely a transform of the ranked results; it holds
// no decision logic.
type Matrix struct {
	Vendors []string    `json:"vendors"`
	Rows    []MatrixRow `json:"rows"`
}

// MatrixRow is one criterion across all vendors, in rank order.
type MatrixRow struct {
	Criterion string   `json:"criterion"`
	Values    []string `json:"values"`
}

// BuildMatrix transposes per-vendor results into the comparison table.
func BuildMatrix(ranked []VendorScoringResult) Matrix {
	m := Matrix{Vendors: make([]string, len(ranked))}
	for i, r := range ranked {
		m.Vendors[i] = r.VendorName
	}

	row := func(criterion string, value func(VendorScoringResult) string) {
		values := make([]string, len(ranked))
		for i, r := range ranked {
			values[i] = value(r)
		}
		m.Rows = append(m.Rows, MatrixRow{Criterion: criterion, Values: values})
	}

	row("Total Amount", func(r VendorScoringResult) string {
		return fmt.Sprintf("%.2f %s", r.Quote.TotalAmount, r.Quote.Currency)
	})
	row("Delivery Date", func(r VendorScoringResult) string {
		if r.Quote.ProposedDeliveryDate == nil {
			return "not stated"
		}
		return r.Quote.ProposedDeliveryDate.Format("2006-01-02")
	})
	row("Price Score", func(r VendorScoringResult) string {
		return formatScore(r.Scores.Price)
	})
	row("Delivery Score", func(r VendorScoringResult) string {
		return formatScore(r.Scores.Delivery)
	})
	row("Quality Score", func(r VendorScoringResult) string {
		return formatScore(r.Scores.Quality)
	})
	row("Location Score", func(r VendorScoringResult) string {
		return formatScore(r.Scores.Location)
	})
	row("Total Score", func(r VendorScoringResult) string {
		return formatScore(r.TotalScore)
	})
	row("Recommendation", func(r VendorScoringResult) string {
		return r.Recommendation
	})

	return m
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
