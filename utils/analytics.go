package utils

import (
	"math"
	"sort"
	"time"
)

// AnalyticsEngine provides the statistical helpers behind the
// procurement dashboards.
type AnalyticsEngine struct{}

// NewAnalyticsEngine creates a new analytics engine
func NewAnalyticsEngine() *AnalyticsEngine {
	return &AnalyticsEngine{}
}

// KPIMetrics represents one dashboard key performance indicator
type KPIMetrics struct {
	CurrentValue   float64 `json:"current_value"`
	PreviousValue  float64 `json:"previous_value"`
	Change         float64 `json:"change"`
	ChangePercent  float64 `json:"change_percent"`
	Trend          string  `json:"trend"`  // up, down, stable
	Status         string  `json:"status"` // good, warning, critical, stable
	Target         float64 `json:"target,omitempty"`
	TargetProgress float64 `json:"target_progress,omitempty"`
}

// TimeSeriesData represents one point of time-series analytics
type TimeSeriesData struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
	Label     string    `json:"label,omitempty"`
}

// StatisticalSummary provides statistical analysis over a value set
type StatisticalSummary struct {
	Count    int     `json:"count"`
	Sum      float64 `json:"sum"`
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Range    float64 `json:"range"`
	Variance float64 `json:"variance"`
	StdDev   float64 `json:"std_dev"`
	Q1       float64 `json:"q1"`
	Q3       float64 `json:"q3"`
	IQR      float64 `json:"iqr"`
}

// CalculateKPI builds a KPI from a current value, the prior-period value
// and an optional target (0 = no target).
func (ae *AnalyticsEngine) CalculateKPI(currentValue, previousValue, target float64) *KPIMetrics {
	kpi := &KPIMetrics{
		CurrentValue:  currentValue,
		PreviousValue: previousValue,
		Target:        target,
	}

	kpi.Change = currentValue - previousValue
	if previousValue != 0 {
		kpi.ChangePercent = (kpi.Change / previousValue) * 100
	}

	if kpi.Change > 0 {
		kpi.Trend = "up"
	} else if kpi.Change < 0 {
		kpi.Trend = "down"
	} else {
		kpi.Trend = "stable"
	}

	if target != 0 {
		kpi.TargetProgress = (currentValue / target) * 100
		if kpi.TargetProgress >= 100 {
			kpi.Status = "good"
		} else if kpi.TargetProgress >= 70 {
			kpi.Status = "warning"
		} else {
			kpi.Status = "critical"
		}
	} else {
		switch kpi.Trend {
		case "up":
			kpi.Status = "good"
		case "down":
			kpi.Status = "warning"
		default:
			kpi.Status = "stable"
		}
	}

	return kpi
}

// CalculateStatistics calculates a statistical summary over the values.
// Returns nil for an empty set.
func (ae *AnalyticsEngine) CalculateStatistics(values []float64) *StatisticalSummary {
	if len(values) == 0 {
		return nil
	}

	sortedValues := make([]float64, len(values))
	copy(sortedValues, values)
	sort.Float64s(sortedValues)

	summary := &StatisticalSummary{Count: len(values)}
	for _, v := range values {
		summary.Sum += v
	}
	summary.Mean = summary.Sum / float64(summary.Count)
	summary.Min = sortedValues[0]
	summary.Max = sortedValues[len(sortedValues)-1]
	summary.Range = summary.Max - summary.Min
	summary.Median = calculateMedian(sortedValues)

	var sumSquaredDiff float64
	for _, v := range values {
		diff := v - summary.Mean
		sumSquaredDiff += diff * diff
	}
	summary.Variance = sumSquaredDiff / float64(summary.Count)
	summary.StdDev = math.Sqrt(summary.Variance)

	summary.Q1 = calculatePercentile(sortedValues, 25)
	summary.Q3 = calculatePercentile(sortedValues, 75)
	summary.IQR = summary.Q3 - summary.Q1

	return summary
}

// CalculateMovingAverage smooths a time series with a trailing window.
func (ae *AnalyticsEngine) CalculateMovingAverage(timeSeries []TimeSeriesData, window int) []TimeSeriesData {
	if window <= 0 || len(timeSeries) < window {
		return timeSeries
	}

	result := make([]TimeSeriesData, 0, len(timeSeries)-window+1)
	for i := window - 1; i < len(timeSeries); i++ {
		var sum float64
		for j := i - window + 1; j <= i; j++ {
			sum += timeSeries[j].Value
		}
		result = append(result, TimeSeriesData{
			Timestamp: timeSeries[i].Timestamp,
			Value:     sum / float64(window),
			Label:     timeSeries[i].Label,
		})
	}
	return result
}

func calculateMedian(sortedValues []float64) float64 {
	n := len(sortedValues)
	if n%2 == 0 {
		return (sortedValues[n/2-1] + sortedValues[n/2]) / 2
	}
	return sortedValues[n/2]
}

func calculatePercentile(sortedValues []float64, percentile float64) float64 {
	if len(sortedValues) == 0 {
		return 0
	}
	index := (percentile / 100) * float64(len(sortedValues)-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if lower == upper {
		return sortedValues[lower]
	}
	weight := index - float64(lower)
	return sortedValues[lower]*(1-weight) + sortedValues[upper]*weight
}
