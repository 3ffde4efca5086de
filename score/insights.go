package score

import (
	"math"
	"strings"
	"time"

	"github.com/bitmark-inc/safecare-api/schema"
)

const (
	fallbackBaseScore = 75

	heartRatePenalty = 15
	oxygenPenalty    = 20
	sleepPenalty     = 5

	minNormalHeartRate = 60
	maxNormalHeartRate = 100
	minNormalOxygen    = 95
	minHealthySleep    = 6
)

// FallbackInsights derives insights from the vitals alone. It is used when
// no language model is available or its answer cannot be used.
func FallbackInsights(v schema.Vitals) schema.HealthInsights {
	vector := schema.NewHealthVector()
	score := fallbackBaseScore
	riskFactors := []string{}
	recommendations := []string{}

	if v.HeartRate != nil {
		hr := *v.HeartRate
		if hr < minNormalHeartRate || hr > maxNormalHeartRate {
			score -= heartRatePenalty
			vector[schema.AxisCardiovascular] = 0.45
			vector[schema.AxisStress] = 0.5
			if hr > maxNormalHeartRate {
				riskFactors = append(riskFactors, "Elevated heart rate (tachycardia)")
			} else {
				riskFactors = append(riskFactors, "Low heart rate (bradycardia)")
			}
			recommendations = append(recommendations, "Recheck your heart rate after resting for five minutes and contact a doctor if it stays outside 60-100 bpm.")
		} else {
			vector[schema.AxisCardiovascular] = 0.85
		}
	}

	if v.OxygenLevel != nil {
		if *v.OxygenLevel < minNormalOxygen {
			score -= oxygenPenalty
			vector[schema.AxisRespiratory] = 0.4
			riskFactors = append(riskFactors, "Low blood oxygen saturation")
			recommendations = append(recommendations, "Seek medical attention promptly if blood oxygen stays below 95%, and immediately if below 90% or you are short of breath.")
		} else {
			vector[schema.AxisRespiratory] = 0.9
		}
	}

	if v.SleepHours != nil {
		switch {
		case *v.SleepHours < minHealthySleep:
			score -= sleepPenalty
			vector[schema.AxisSleep] = 0.45
			riskFactors = append(riskFactors, "Insufficient sleep")
			recommendations = append(recommendations, "Aim for 7-9 hours of sleep with a regular bedtime.")
		case *v.SleepHours >= 7:
			vector[schema.AxisSleep] = 0.85
		}
	}

	switch strings.ToLower(v.ActivityLevel) {
	case "high", "active", "very_active":
		vector[schema.AxisActivity] = 0.85
	case "low", "sedentary":
		vector[schema.AxisActivity] = 0.45
		recommendations = append(recommendations, "Add at least 30 minutes of light activity, such as walking, on most days.")
	}

	if n := len(v.Conditions); n > 0 {
		vector[schema.AxisMetabolic] = math.Max(0.3, schema.NeutralAxisValue-0.1*float64(n))
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations, "Keep up your current routine and keep tracking your vitals.")
	}

	score = clampScore(score)
	status := Status(score)

	return schema.HealthInsights{
		HealthVector:    vector,
		Score:           score,
		OverallStatus:   status,
		RiskFactors:     riskFactors,
		Recommendations: recommendations,
		Summary:         "Estimated locally from your vitals; overall status is " + status + ".",
		Fallback:        true,
		Timestamp:       time.Now().UTC(),
	}
}
