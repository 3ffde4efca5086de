package score

import (
	"sort"

	"github.com/bitmark-inc/safecare-api/geo"
	"github.com/bitmark-inc/safecare-api/schema"
)

const (
	// DangerRadiusMeters is how close a route point may get to a danger pin
	// before it counts as exposed
	DangerRadiusMeters = 200.0

	DangerPenaltyPerPoint = 2.0
	CapabilityBonus       = 5.0
)

// DangerPins returns the pins classified as danger, in order
func DangerPins(pins []schema.HazardPin) []schema.HazardPin {
	danger := make([]schema.HazardPin, 0, len(pins))
	for _, p := range pins {
		if p.Type == schema.PinDanger {
			danger = append(danger, p)
		}
	}
	return danger
}

// DangerCount counts the route points lying within DangerRadiusMeters of
// any of the pins
func DangerCount(route []schema.Location, pins []schema.HazardPin) int {
	count := 0
	for _, point := range route {
		for _, p := range pins {
			if geo.DistanceMeters(point, p.Location) < DangerRadiusMeters {
				count++
				break
			}
		}
	}
	return count
}

// FacilityScore is the lower-is-better composite of travel time, hazard
// exposure and capability
func FacilityScore(estimatedMinutes float64, dangerCount int, hasCapability bool) float64 {
	s := estimatedMinutes + float64(dangerCount)*DangerPenaltyPerPoint
	if hasCapability {
		s -= CapabilityBonus
	}
	return s
}

// RankFacilities scores every candidate against the danger pins and orders
// them best first. Equal scores keep their input order.
func RankFacilities(user schema.Location, candidates []schema.FacilityCandidate, pins []schema.HazardPin) schema.RouteRanking {
	danger := DangerPins(pins)

	ranked := make([]schema.FacilityCandidate, len(candidates))
	for i, c := range candidates {
		c.Route = geo.Interpolate(user, c.Location, geo.DefaultRouteSteps)
		c.DangerCount = DangerCount(c.Route, danger)
		c.Score = FacilityScore(c.EstimatedMinutes, c.DangerCount, c.HasCapability)
		ranked[i] = c
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score < ranked[j].Score
	})

	ranking := schema.RouteRanking{Ranked: ranked}
	if len(ranked) > 0 {
		best := ranked[0]
		ranking.Best = &best
	}

	return ranking
}
