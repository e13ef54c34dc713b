package utils

import (
	"math"
	"testing"
	"time"
)

func TestCalculateKPI(t *testing.T) {
	ae := NewAnalyticsEngine()

	tests := []struct {
		name           string
		current        float64
		previous       float64
		target         float64
		expectedTrend  string
		expectedStatus string
	}{
		{"growth without target", 120, 100, 0, "up", "good"},
		{"decline without target", 80, 100, 0, "down", "warning"},
		{"flat without target", 100, 100, 0, "stable", "stable"},
		{"target met", 105, 90, 100, "up", "good"},
		{"target in reach", 75, 70, 100, "up", "warning"},
		{"target missed badly", 30, 60, 100, "down", "critical"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kpi := ae.CalculateKPI(tt.current, tt.previous, tt.target)
			if kpi.Trend != tt.expectedTrend {
				t.Errorf("trend = %q, expected %q", kpi.Trend, tt.expectedTrend)
			}
			if kpi.Status != tt.expectedStatus {
				t.Errorf("status = %q, expected %q", kpi.Status, tt.expectedStatus)
			}
		})
	}
}

func TestCalculateKPIChangePercent(t *testing.T) {
	ae := NewAnalyticsEngine()
	kpi := ae.CalculateKPI(150, 100, 0)
	if kpi.Change != 50 || kpi.ChangePercent != 50 {
		t.Errorf("change = %v (%v%%), expected 50 (50%%)", kpi.Change, kpi.ChangePercent)
	}

	// zero previous value must not divide by zero
	kpi = ae.CalculateKPI(150, 0, 0)
	if kpi.ChangePercent != 0 {
		t.Errorf("change percent with zero base = %v, expected 0", kpi.ChangePercent)
	}
}

func TestCalculateStatistics(t *testing.T) {
	ae := NewAnalyticsEngine()

	s := ae.CalculateStatistics([]float64{4, 2, 8, 6, 10})
	if s == nil {
		t.Fatal("summary is nil")
	}
	if s.Count != 5 || s.Sum != 30 || s.Mean != 6 {
		t.Errorf("count/sum/mean = %d/%v/%v", s.Count, s.Sum, s.Mean)
	}
	if s.Median != 6 || s.Min != 2 || s.Max != 10 || s.Range != 8 {
		t.Errorf("median/min/max/range = %v/%v/%v/%v", s.Median, s.Min, s.Max, s.Range)
	}
	if math.Abs(s.StdDev-2.8284271) > 1e-6 {
		t.Errorf("stddev = %v", s.StdDev)
	}

	if ae.CalculateStatistics(nil) != nil {
		t.Error("empty input should return nil")
	}
}

func TestCalculateStatisticsEvenCount(t *testing.T) {
	ae := NewAnalyticsEngine()
	s := ae.CalculateStatistics([]float64{1, 2, 3, 4})
	if s.Median != 2.5 {
		t.Errorf("median of even set = %v, expected 2.5", s.Median)
	}
}

func TestCalculateMovingAverage(t *testing.T) {
	ae := NewAnalyticsEngine()
	base := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	series := []TimeSeriesData{
		{Timestamp: base, Value: 10},
		{Timestamp: base.AddDate(0, 0, 1), Value: 20},
		{Timestamp: base.AddDate(0, 0, 2), Value: 30},
		{Timestamp: base.AddDate(0, 0, 3), Value: 40},
	}

	smoothed := ae.CalculateMovingAverage(series, 2)
	if len(smoothed) != 3 {
		t.Fatalf("got %d points, expected 3", len(smoothed))
	}
	if smoothed[0].Value != 15 || smoothed[1].Value != 25 || smoothed[2].Value != 35 {
		t.Errorf("smoothed values = %v, %v, %v", smoothed[0].Value, smoothed[1].Value, smoothed[2].Value)
	}

	// window larger than the series is a no-op
	same := ae.CalculateMovingAverage(series, 10)
	if len(same) != len(series) {
		t.Errorf("oversized window changed the series length")
	}
}

func TestPortDistanceNm(t *testing.T) {
	// Rotterdam (51.95N, 4.14E) to Hamburg (53.55N, 9.97E) is roughly 230 nm
	d := PortDistanceNm(51.95, 4.14, 53.55, 9.97)
	if d < 200 || d > 260 {
		t.Errorf("Rotterdam-Hamburg distance = %.1f nm, expected ~230", d)
	}

	// identical points
	if d := PortDistanceNm(1.26, 103.84, 1.26, 103.84); d != 0 {
		t.Errorf("zero distance = %v", d)
	}
}

func TestValidateCoordinate(t *testing.T) {
	tests := []struct {
		lat, lng float64
		wantErr  bool
	}{
		{51.95, 4.14, false},
		{-90, 180, false},
		{91, 0, true},
		{-91, 0, true},
		{0, 181, true},
		{0, -181, true},
	}
	for _, tt := range tests {
		err := ValidateCoordinate(tt.lat, tt.lng)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateCoordinate(%v, %v) error = %v, wantErr %v", tt.lat, tt.lng, err, tt.wantErr)
		}
	}
}
