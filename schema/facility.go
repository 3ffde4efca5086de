package schema

// FacilityCandidate is a medical facility considered for a routing request
type FacilityCandidate struct {
	Name             string     `json:"name"`
	Address          string     `json:"address,omitempty"`
	Location         Location   `json:"location"`
	EstimatedMinutes float64    `json:"estimatedMinutes"`
	HasCapability    bool       `json:"hasCapability"`
	Source           string     `json:"source,omitempty"`
	Route            []Location `json:"route,omitempty"`
	DangerCount      int        `json:"dangerCount"`
	Score            float64    `json:"score"`
}

type RouteRanking struct {
	Best   *FacilityCandidate  `json:"bestFacility"`
	Ranked []FacilityCandidate `json:"rankedFacilities"`
}
