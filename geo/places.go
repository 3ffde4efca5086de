package geo

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"googlemaps.github.io/maps"

	"github.com/bitmark-inc/safecare-api/schema"
)

const (
	placesLogPrefix = "places"
	placesTimeout   = 10 * time.Second

	DefaultSearchRadius = 15000
	DefaultMaxResults   = 5

	// fallbackSpeed is the assumed travel speed in meters per minute (40 km/h)
	// used when no travel time is known
	fallbackSpeed = 40000.0 / 60
)

var ErrNoGeoInfoFound = fmt.Errorf("no geo information found")

// PlacesFacilityFinder finds hospitals through the google maps places api
// and estimates travel time with the distance matrix api
type PlacesFacilityFinder struct {
	client     *maps.Client
	radius     uint
	maxResults int
}

func NewPlacesFacilityFinder(client *maps.Client, radius uint, maxResults int) *PlacesFacilityFinder {
	if radius == 0 {
		radius = DefaultSearchRadius
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	return &PlacesFacilityFinder{
		client:     client,
		radius:     radius,
		maxResults: maxResults,
	}
}

// NewPlacesClient creates a google maps client from an api key
func NewPlacesClient(apiKey string) (*maps.Client, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		log.WithFields(log.Fields{
			"prefix": placesLogPrefix,
			"error":  err,
		}).Error("new map client")

		return nil, err
	}

	return client, nil
}

func (f *PlacesFacilityFinder) FindFacilities(ctx context.Context, origin schema.Location, emergencyType string) ([]schema.FacilityCandidate, error) {
	ctx, cancel := context.WithTimeout(ctx, placesTimeout)
	defer cancel()

	resp, err := f.client.NearbySearch(ctx, &maps.NearbySearchRequest{
		Location: &maps.LatLng{
			Lat: origin.Latitude,
			Lng: origin.Longitude,
		},
		Radius: f.radius,
		Type:   maps.PlaceTypeHospital,
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Results) == 0 {
		return nil, ErrNoGeoInfoFound
	}

	results := resp.Results
	if len(results) > f.maxResults {
		results = results[:f.maxResults]
	}

	candidates := make([]schema.FacilityCandidate, 0, len(results))
	destinations := make([]string, 0, len(results))
	for _, r := range results {
		loc := schema.Location{
			Latitude:  r.Geometry.Location.Lat,
			Longitude: r.Geometry.Location.Lng,
		}
		candidates = append(candidates, schema.FacilityCandidate{
			Name:             r.Name,
			Address:          r.Vicinity,
			Location:         loc,
			EstimatedMinutes: estimateMinutes(origin, loc),
			HasCapability:    HasCapability(emergencyType, r.Name, r.Types),
			Source:           SourcePlaces,
		})
		destinations = append(destinations, loc.String())
	}

	f.applyTravelTimes(ctx, origin, destinations, candidates)

	return candidates, nil
}

// applyTravelTimes replaces straight line estimates with driving durations.
// Failures are logged and leave the estimates untouched.
func (f *PlacesFacilityFinder) applyTravelTimes(ctx context.Context, origin schema.Location, destinations []string, candidates []schema.FacilityCandidate) {
	matrix, err := f.client.DistanceMatrix(ctx, &maps.DistanceMatrixRequest{
		Origins:      []string{origin.String()},
		Destinations: destinations,
		Mode:         maps.TravelModeDriving,
	})
	if err != nil {
		log.WithFields(log.Fields{
			"prefix": placesLogPrefix,
			"error":  err,
		}).Warn("distance matrix unavailable, using straight line estimates")
		return
	}

	if len(matrix.Rows) == 0 {
		return
	}

	for i, e := range matrix.Rows[0].Elements {
		if i >= len(candidates) || e == nil || e.Status != "OK" {
			continue
		}
		candidates[i].EstimatedMinutes = e.Duration.Minutes()
	}
}

func estimateMinutes(origin, destination schema.Location) float64 {
	return DistanceMeters(origin, destination) / fallbackSpeed
}
