// Package scoring implements the vendor quote scoring and ranking core:
// four component calculators, a weighted aggregator, a ranker with a
// deterministic tie-break, and the presentation transforms built on the
// ranked output. Everything here is pure arithmetic over already-fetched
// records; persistence belongs to the handlers.
package scoring

import (
	"fmt"
	"math"
)

// Weights defines the relative importance of each scoring component.
// All weights must sum to 1.0 (±0.001 tolerance).
type Weights struct {
	Price    float64 `json:"price"`
	Delivery float64 `json:"delivery"`
	Quality  float64 `json:"quality"`
	Location float64 `json:"location"`
}

// DefaultWeights returns the company-standard weight distribution.
func DefaultWeights() Weights {
	return Weights{
		Price:    0.4,
		Delivery: 0.3,
		Quality:  0.2,
		Location: 0.1,
	}
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Price + w.Delivery + w.Quality + w.Location
}

// Validate checks that weights sum to 1.0 and none are negative.
// Callers must reject invalid overrides rather than renormalize, so an
// under- or over-weighted total score can never be produced silently.
func (w Weights) Validate() error {
	if math.Abs(w.Sum()-1.0) > 0.001 {
		return fmt.Errorf("scoring weights sum to %.4f, must sum to 1.0", w.Sum())
	}
	for _, v := range []float64{w.Price, w.Delivery, w.Quality, w.Location} {
		if v < 0 {
			return fmt.Errorf("negative scoring weight: %f", v)
		}
	}
	return nil
}
