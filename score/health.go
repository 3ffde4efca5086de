package score

import (
	"math"

	"github.com/bitmark-inc/safecare-api/schema"
)

// maxDistance is the distance between the all-zero and all-one vectors
var maxDistance = math.Sqrt(float64(len(schema.HealthAxes)))

// ComputeScore scores a health vector by its L2 distance to the ideal
// all-ones vector, scaled to [0, 100]. Missing axes take the neutral prior
// and out of range values are clamped first.
func ComputeScore(v schema.HealthVector) int {
	n := v.Normalize()

	var sum float64
	for _, axis := range schema.HealthAxes {
		gap := 1 - n[axis]
		sum += gap * gap
	}

	s := math.Round(100 * (1 - math.Sqrt(sum)/maxDistance))

	return clampScore(int(s))
}

// Status bands a score into a human readable status.
// Currently,
// excellent: 80 ~ 100
// good:      65 ~ 79
// fair:      50 ~ 64
// poor:      35 ~ 49
// critical:   0 ~ 34
func Status(score int) string {
	switch {
	case score >= 80:
		return schema.StatusExcellent
	case score >= 65:
		return schema.StatusGood
	case score >= 50:
		return schema.StatusFair
	case score >= 35:
		return schema.StatusPoor
	default:
		return schema.StatusCritical
	}
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
