package schema

import (
	"math"
	"time"
)

type HealthAxis string

const (
	AxisCardiovascular HealthAxis = "cardiovascular"
	AxisMetabolic      HealthAxis = "metabolic"
	AxisRespiratory    HealthAxis = "respiratory"
	AxisMentalHealth   HealthAxis = "mental_health"
	AxisSleep          HealthAxis = "sleep"
	AxisActivity       HealthAxis = "activity"
	AxisNutrition      HealthAxis = "nutrition"
	AxisStress         HealthAxis = "stress"
)

// NeutralAxisValue is the prior used for an axis nobody has reported on yet
const NeutralAxisValue = 0.7

// HealthAxes lists every axis of a health vector in a fixed order
var HealthAxes = []HealthAxis{
	AxisCardiovascular,
	AxisMetabolic,
	AxisRespiratory,
	AxisMentalHealth,
	AxisSleep,
	AxisActivity,
	AxisNutrition,
	AxisStress,
}

// HealthVector is an 8-axis wellness snapshot with every value in [0, 1]
type HealthVector map[HealthAxis]float64

// NewHealthVector returns a vector with all axes set to the neutral prior
func NewHealthVector() HealthVector {
	v := make(HealthVector, len(HealthAxes))
	for _, axis := range HealthAxes {
		v[axis] = NeutralAxisValue
	}
	return v
}

// Normalize returns a copy holding exactly the 8 known axes. Missing or NaN
// values take the neutral prior and everything is clamped to [0, 1].
func (v HealthVector) Normalize() HealthVector {
	n := make(HealthVector, len(HealthAxes))
	for _, axis := range HealthAxes {
		value, ok := v[axis]
		if !ok || math.IsNaN(value) {
			value = NeutralAxisValue
		}
		n[axis] = math.Min(1, math.Max(0, value))
	}
	return n
}

const (
	StatusExcellent = "excellent"
	StatusGood      = "good"
	StatusFair      = "fair"
	StatusPoor      = "poor"
	StatusCritical  = "critical"
)

// Vitals are the readings submitted for a health insight request
type Vitals struct {
	HeartRate     *float64 `json:"heartRate"`
	OxygenLevel   *float64 `json:"oxygenLevel"`
	Age           *int     `json:"age,omitempty"`
	Gender        string   `json:"gender,omitempty"`
	ActivityLevel string   `json:"activityLevel,omitempty"`
	SleepHours    *float64 `json:"sleepHours,omitempty"`
	Medications   []string `json:"medications,omitempty"`
	Conditions    []string `json:"conditions,omitempty"`
}

type HealthInsights struct {
	HealthVector    HealthVector `json:"healthVector"`
	Score           int          `json:"score"`
	OverallStatus   string       `json:"overallStatus"`
	RiskFactors     []string     `json:"riskFactors"`
	Recommendations []string     `json:"recommendations"`
	Summary         string       `json:"summary"`
	Fallback        bool         `json:"fallback"`
	Error           string       `json:"error,omitempty"`
	Timestamp       time.Time    `json:"timestamp"`
}
