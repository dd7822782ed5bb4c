// Package health wraps the wearable-data aggregation service. The rest
// of the app treats it as an opaque asynchronous data provider.
package health

import (
	"context"
	"time"
)

// SourceType identifies a wearable data source.
type SourceType string

const (
	SourceAppleHealth SourceType = "apple_health"
	SourceGarmin      SourceType = "garmin"
	SourceFitbit      SourceType = "fitbit"
)

// Provider is the aggregator surface the health dashboard depends on.
type Provider interface {
	// Connect authenticates against the aggregator and initializes the
	// connection for the given source.
	Connect(ctx context.Context, source SourceType) error

	Activity(ctx context.Context, source SourceType, start, end time.Time) (*ActivityPayload, error)
	Daily(ctx context.Context, source SourceType, start, end time.Time) (*DailyPayload, error)
	Sleep(ctx context.Context, source SourceType, start, end time.Time) (*SleepPayload, error)
}

// ActivityPayload is the slice of the aggregator's activity payload the
// dashboard displays.
type ActivityPayload struct {
	Metadata  Metadata      `json:"metadata"`
	HeartRate HeartRateData `json:"heart_rate_data"`
	Calories  CaloriesData  `json:"calories_data"`
	Distance  DistanceData  `json:"distance_data"`
	Movement  MovementData  `json:"movement_data"`
}

// Metadata describes one recorded activity.
type Metadata struct {
	Name      string `json:"name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// HeartRateData carries summary and sampled heart rate readings.
type HeartRateData struct {
	Summary struct {
		MaxBPM  float64 `json:"max_hr_bpm"`
		MinBPM  float64 `json:"min_hr_bpm"`
		AvgBPM  float64 `json:"avg_hr_bpm"`
		AvgHRV  float64 `json:"avg_hrv_sdnn"`
	} `json:"summary"`
	Detailed struct {
		Samples []float64 `json:"hr_samples"`
	} `json:"detailed"`
}

// CaloriesData carries burned-calorie totals.
type CaloriesData struct {
	TotalBurned float64 `json:"total_burned_calories"`
	BMR         float64 `json:"BMR_calories"`
	NetActivity float64 `json:"net_activity_calories"`
}

// DistanceData carries step and distance totals.
type DistanceData struct {
	Summary struct {
		DistanceMeters float64 `json:"distance_meters"`
		Steps          int     `json:"steps"`
		FloorsClimbed  int     `json:"floors_climbed"`
	} `json:"summary"`
}

// MovementData carries speed summaries.
type MovementData struct {
	AvgSpeed float64 `json:"avg_speed_meters_per_second"`
	MaxSpeed float64 `json:"max_speed_meters_per_second"`
}

// DailyPayload is the aggregator's daily rollup.
type DailyPayload struct {
	Steps          int     `json:"steps"`
	DistanceMeters float64 `json:"distance_meters"`
	ActiveSeconds  float64 `json:"active_seconds"`
	RestingBPM     float64 `json:"resting_hr_bpm"`
}

// SleepPayload is the aggregator's sleep rollup.
type SleepPayload struct {
	DurationSeconds float64 `json:"duration_seconds"`
	DeepSeconds     float64 `json:"deep_seconds"`
	REMSeconds      float64 `json:"rem_seconds"`
	Efficiency      float64 `json:"efficiency"`
}
