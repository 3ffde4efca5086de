package api

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bitmark-inc/safecare-api/schema"
)

// parseGeoPosition will parse latitude and longitude from the geo-position string
func parseGeoPosition(geoPosition string) (float64, float64, error) {
	positions := strings.Split(geoPosition, ";")

	if len(positions) != 2 {
		return 0, 0, fmt.Errorf("invalid geo-position value")
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(positions[0]), 64)
	if err != nil {
		return 0, 0, err
	}

	long, err := strconv.ParseFloat(strings.TrimSpace(positions[1]), 64)
	if err != nil {
		return 0, 0, err
	}

	return lat, long, nil
}

// requestLocation reads the caller location from the lat and lng query
// parameters, then from the Geo-Position header. It returns nil when
// neither is given.
func requestLocation(c *gin.Context) (*schema.Location, error) {
	var lat, long float64
	var err error

	if qLat, qLng := c.Query("lat"), c.Query("lng"); qLat != "" || qLng != "" {
		if lat, err = strconv.ParseFloat(qLat, 64); err != nil {
			return nil, err
		}
		if long, err = strconv.ParseFloat(qLng, 64); err != nil {
			return nil, err
		}
	} else if gp := c.GetHeader("Geo-Position"); gp != "" {
		if lat, long, err = parseGeoPosition(gp); err != nil {
			return nil, err
		}
	} else {
		return nil, nil
	}

	loc := schema.Location{Latitude: lat, Longitude: long}
	if !loc.Valid() {
		return nil, fmt.Errorf("coordinate out of range")
	}

	return &loc, nil
}
