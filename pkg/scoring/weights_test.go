package scoring

import "testing"

func TestDefaultWeights(t *testing.T) {
	w := DefaultWeights()
	if w.Price != 0.4 || w.Delivery != 0.3 || w.Quality != 0.2 || w.Location != 0.1 {
		t.Errorf("unexpected default weights: %+v", w)
	}
	if err := w.Validate(); err != nil {
		t.Errorf("default weights failed validation: %v", err)
	}
}

func TestWeightsValidate(t *testing.T) {
	tests := []struct {
		name    string
		weights Weights
		wantErr bool
	}{
		{"defaults are valid", DefaultWeights(), false},
		{"equal quarters are valid", Weights{0.25, 0.25, 0.25, 0.25}, false},
		{"price only is valid", Weights{Price: 1.0}, false},
		{"within tolerance", Weights{0.4, 0.3, 0.2, 0.1001}, false},
		{"sum below one", Weights{0.4, 0.3, 0.2, 0}, true},
		{"sum above one", Weights{0.5, 0.4, 0.3, 0.2}, true},
		{"negative weight", Weights{1.2, 0.1, -0.2, -0.1}, true},
		{"all zero", Weights{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.weights.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%+v) error = %v, wantErr %v", tt.weights, err, tt.wantErr)
			}
		})
	}
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name          string
		scores        ComponentScores
		weights       Weights
		expectedTotal float64
	}{
		{
			"perfect scores with defaults",
			ComponentScores{10, 10, 10, 10},
			DefaultWeights(),
			10,
		},
		{
			"mixed scores with defaults",
			ComponentScores{Price: 10, Delivery: 10, Quality: 8, Location: 10},
			DefaultWeights(),
			9.6,
		},
		{
			"component rounding feeds the total",
			ComponentScores{Price: 3.333333, Delivery: 6.666666, Quality: 5, Location: 5},
			DefaultWeights(),
			Round2(3.33*0.4 + 6.67*0.3 + 5*0.2 + 5*0.1),
		},
		{
			"all zero scores",
			ComponentScores{},
			DefaultWeights(),
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, total := Aggregate(tt.scores, tt.weights)
			if total != tt.expectedTotal {
				t.Errorf("Aggregate total = %v, expected %v", total, tt.expectedTotal)
			}
		})
	}
}

func TestRecommendationFor(t *testing.T) {
	tests := []struct {
		total    float64
		expected string
	}{
		{10, RecommendationHigh},
		{8.5, RecommendationHigh},
		{8.49, RecommendationStandard},
		{7.0, RecommendationStandard},
		{6.99, RecommendationAcceptable},
		{5.5, RecommendationAcceptable},
		{5.49, RecommendationNone},
		{0, RecommendationNone},
	}

	for _, tt := range tests {
		if got := RecommendationFor(tt.total); got != tt.expected {
			t.Errorf("RecommendationFor(%v) = %q, expected %q", tt.total, got, tt.expected)
		}
	}
}
