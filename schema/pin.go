package schema

import (
	"time"
)

const (
	PinCollection = "pins"

	// PinDescriptionLimit is the maximum number of characters kept from a
	// submitted description
	PinDescriptionLimit = 280
)

type PinType string

const (
	PinSafe    PinType = "safe"
	PinCaution PinType = "caution"
	PinDanger  PinType = "danger"
)

func (t PinType) Valid() bool {
	switch t {
	case PinSafe, PinCaution, PinDanger:
		return true
	}
	return false
}

type PinCategory string

const (
	CategoryCrime          PinCategory = "crime"
	CategoryTraffic        PinCategory = "traffic"
	CategoryEnvironmental  PinCategory = "environmental"
	CategoryInfrastructure PinCategory = "infrastructure"
	CategoryMedical        PinCategory = "medical"
	CategoryOther          PinCategory = "other"
)

func (c PinCategory) Valid() bool {
	switch c {
	case CategoryCrime, CategoryTraffic, CategoryEnvironmental,
		CategoryInfrastructure, CategoryMedical, CategoryOther:
		return true
	}
	return false
}

// HazardPin is a user submitted annotation of a place
type HazardPin struct {
	ID          string      `json:"id"`
	Location    Location    `json:"location"`
	Type        PinType     `json:"type"`
	Category    PinCategory `json:"category"`
	Description string      `json:"description"`
	CreatedAt   time.Time   `json:"createdAt"`
	Upvotes     int64       `json:"upvotes"`
}

// TruncateDescription caps a description to PinDescriptionLimit runes
func TruncateDescription(s string) string {
	r := []rune(s)
	if len(r) <= PinDescriptionLimit {
		return s
	}
	return string(r[:PinDescriptionLimit])
}

// PinFilter narrows a pin listing. Zero values mean no restriction.
type PinFilter struct {
	Type         PinType
	Near         *Location
	RadiusMeters float64
}
