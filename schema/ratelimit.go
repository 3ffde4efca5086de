package schema

import (
	"time"
)

// RateLimitRecord tracks admissions of one client within the current window
type RateLimitRecord struct {
	Count   int       `json:"count"`
	ResetAt time.Time `json:"resetAt"`
}
