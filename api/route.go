package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bitmark-inc/safecare-api/geo"
	"github.com/bitmark-inc/safecare-api/schema"
	"github.com/bitmark-inc/safecare-api/score"
	"github.com/bitmark-inc/safecare-api/utils"
)

// storedPinRadius limits which stored danger pins are considered for a route
const storedPinRadius = 20000.0

type safeRouteResponse struct {
	BestFacility     *schema.FacilityCandidate  `json:"bestFacility"`
	RankedFacilities []schema.FacilityCandidate `json:"rankedFacilities"`
	Route            []schema.Location          `json:"route"`
	SafetyNote       string                     `json:"safetyNote"`
	DangerPinCount   int                        `json:"dangerPinCount"`
	Timestamp        time.Time                  `json:"timestamp"`
}

// safeRoute ranks nearby facilities by travel time, capability and danger
// exposure along the way
func (s *Server) safeRoute(c *gin.Context) {
	logger := log.WithField("api", "safeRoute")

	var params struct {
		UserLocation  *schema.Location   `json:"userLocation"`
		EmergencyType string             `json:"emergencyType"`
		CommunityPins []schema.HazardPin `json:"communityPins"`
	}

	if err := c.ShouldBindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	if params.UserLocation == nil || !params.UserLocation.Valid() {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}
	origin := *params.UserLocation

	pins := make([]schema.HazardPin, 0, len(params.CommunityPins))
	for _, p := range params.CommunityPins {
		if p.Location.Valid() {
			pins = append(pins, p)
		}
	}

	stored, err := s.pins.ListPins(c.Request.Context(), schema.PinFilter{
		Type:         schema.PinDanger,
		Near:         &origin,
		RadiusMeters: storedPinRadius,
	})
	if err != nil {
		logger.WithError(err).Warn("list stored danger pins")
	} else {
		pins = append(pins, stored...)
	}

	if s.finder == nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorNotConfigured)
		return
	}

	candidates, err := s.finder.FindFacilities(c.Request.Context(), origin, params.EmergencyType)
	if err != nil {
		if err == geo.ErrFinderNotConfigured {
			abortWithEncoding(c, http.StatusInternalServerError, errorNotConfigured)
			return
		}
		logger.WithError(err).Error("find facilities")
		abortWithEncoding(c, http.StatusServiceUnavailable, errorUpstreamUnavailable, err)
		return
	}

	ranking := score.RankFacilities(origin, candidates, pins)
	if ranking.Best == nil {
		abortWithEncoding(c, http.StatusNotFound, errorFacilityNotFound)
		return
	}

	dangerPinCount := len(score.DangerPins(pins))
	loc := utils.NewLocalizer(c.GetHeader("Accept-Language"))

	c.JSON(http.StatusOK, safeRouteResponse{
		BestFacility:     ranking.Best,
		RankedFacilities: ranking.Ranked,
		Route:            ranking.Best.Route,
		SafetyNote:       utils.SafetyNote(loc, ranking.Best.DangerCount, dangerPinCount),
		DangerPinCount:   dangerPinCount,
		Timestamp:        time.Now().UTC(),
	})
}
