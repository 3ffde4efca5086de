package schema

import (
	"fmt"
)

type Location struct {
	Latitude  float64 `json:"latitude" bson:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude"`
}

// Valid reports whether the coordinate lies within the WGS 84 ranges
func (l Location) Valid() bool {
	return l.Latitude >= -90 && l.Latitude <= 90 &&
		l.Longitude >= -180 && l.Longitude <= 180
}

func (l Location) String() string {
	return fmt.Sprintf("%f,%f", l.Latitude, l.Longitude)
}

// GeoJSON is the point representation used by mongodb geo indexes.
// Coordinates are ordered as [longitude, latitude].
type GeoJSON struct {
	Type        string    `bson:"type"`
	Coordinates []float64 `bson:"coordinates"`
}

func NewGeoJSONPoint(l Location) *GeoJSON {
	return &GeoJSON{
		Type:        "Point",
		Coordinates: []float64{l.Longitude, l.Latitude},
	}
}

// Location converts a GeoJSON point back to a Location
func (g *GeoJSON) Location() Location {
	if g == nil || len(g.Coordinates) != 2 {
		return Location{}
	}

	return Location{
		Longitude: g.Coordinates[0],
		Latitude:  g.Coordinates[1],
	}
}
