package store

import (
	"context"
	"sort"
	"sync"

	"github.com/bitmark-inc/safecare-api/geo"
	"github.com/bitmark-inc/safecare-api/schema"
)

type memoryPins struct {
	sync.RWMutex
	pins map[string]schema.HazardPin
}

// NewMemoryPins returns a process local pin store
func NewMemoryPins() Pins {
	return &memoryPins{
		pins: make(map[string]schema.HazardPin),
	}
}

func (m *memoryPins) Ping() error {
	return nil
}

func (m *memoryPins) Close() {}

func (m *memoryPins) AddPin(_ context.Context, pin schema.HazardPin) (*schema.HazardPin, error) {
	m.Lock()
	defer m.Unlock()

	m.pins[pin.ID] = pin
	return &pin, nil
}

func (m *memoryPins) GetPin(_ context.Context, id string) (*schema.HazardPin, error) {
	m.RLock()
	defer m.RUnlock()

	pin, ok := m.pins[id]
	if !ok {
		return nil, ErrPinNotFound
	}
	return &pin, nil
}

// ListPins returns matching pins, newest first
func (m *memoryPins) ListPins(_ context.Context, filter schema.PinFilter) ([]schema.HazardPin, error) {
	m.RLock()
	defer m.RUnlock()

	pins := make([]schema.HazardPin, 0, len(m.pins))
	for _, p := range m.pins {
		if filter.Type != "" && p.Type != filter.Type {
			continue
		}
		if filter.Near != nil && filter.RadiusMeters > 0 &&
			geo.DistanceMeters(*filter.Near, p.Location) > filter.RadiusMeters {
			continue
		}
		pins = append(pins, p)
	}

	sort.Slice(pins, func(i, j int) bool {
		if pins[i].CreatedAt.Equal(pins[j].CreatedAt) {
			return pins[i].ID < pins[j].ID
		}
		return pins[i].CreatedAt.After(pins[j].CreatedAt)
	})

	return pins, nil
}

func (m *memoryPins) UpvotePin(_ context.Context, id string) (*schema.HazardPin, error) {
	m.Lock()
	defer m.Unlock()

	pin, ok := m.pins[id]
	if !ok {
		return nil, ErrPinNotFound
	}
	pin.Upvotes++
	m.pins[id] = pin

	return &pin, nil
}

func (m *memoryPins) DeletePin(_ context.Context, id string) error {
	m.Lock()
	defer m.Unlock()

	if _, ok := m.pins[id]; !ok {
		return ErrPinNotFound
	}
	delete(m.pins, id)

	return nil
}

type memoryRecords struct {
	sync.RWMutex
	records map[string]schema.RateLimitRecord
}

// NewMemoryRateLimitRecords returns a process local rate limit record store
func NewMemoryRateLimitRecords() RateLimitRecords {
	return &memoryRecords{
		records: make(map[string]schema.RateLimitRecord),
	}
}

func (m *memoryRecords) Get(_ context.Context, key string) (*schema.RateLimitRecord, error) {
	m.RLock()
	defer m.RUnlock()

	r, ok := m.records[key]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &r, nil
}

func (m *memoryRecords) Put(_ context.Context, key string, record schema.RateLimitRecord) error {
	m.Lock()
	defer m.Unlock()

	m.records[key] = record
	return nil
}

func (m *memoryRecords) Delete(_ context.Context, key string) error {
	m.Lock()
	defer m.Unlock()

	delete(m.records, key)
	return nil
}

// Scan visits a snapshot of all records until fn returns false
func (m *memoryRecords) Scan(_ context.Context, fn func(key string, record schema.RateLimitRecord) bool) error {
	m.RLock()
	snapshot := make(map[string]schema.RateLimitRecord, len(m.records))
	for k, r := range m.records {
		snapshot[k] = r
	}
	m.RUnlock()

	for k, r := range snapshot {
		if !fn(k, r) {
			break
		}
	}
	return nil
}
