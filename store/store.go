package store

import (
	"context"
	"fmt"
	"time"

	"github.com/bitmark-inc/safecare-api/schema"
)

const defaultTimeout = 5 * time.Second

var (
	ErrPinNotFound    = fmt.Errorf("pin not found")
	ErrRecordNotFound = fmt.Errorf("rate limit record not found")
)

// Pins - interface for community hazard pin storage
type Pins interface {
	AddPin(ctx context.Context, pin schema.HazardPin) (*schema.HazardPin, error)
	GetPin(ctx context.Context, id string) (*schema.HazardPin, error)
	ListPins(ctx context.Context, filter schema.PinFilter) ([]schema.HazardPin, error)
	UpvotePin(ctx context.Context, id string) (*schema.HazardPin, error)
	DeletePin(ctx context.Context, id string) error
	Pinger
	Closer
}

// RateLimitRecords - key value storage of rate limit windows
type RateLimitRecords interface {
	Get(ctx context.Context, key string) (*schema.RateLimitRecord, error)
	Put(ctx context.Context, key string, record schema.RateLimitRecord) error
	Delete(ctx context.Context, key string) error
	Scan(ctx context.Context, fn func(key string, record schema.RateLimitRecord) bool) error
}

// Closer - close db connection
type Closer interface {
	Close()
}

// Pinger - ping database
type Pinger interface {
	Ping() error
}
