package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bitmark-inc/safecare-api/schema"
	"github.com/bitmark-inc/safecare-api/store"
)

const (
	DefaultWindow = 60 * time.Second
	DefaultMax    = 20
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "ratelimit")
}

// Limiter is a fixed window admission counter keyed by client identity.
// It is meant for a single instance; records are not shared across
// processes.
type Limiter struct {
	sync.Mutex

	records store.RateLimitRecords
	window  time.Duration
	max     int
	now     func() time.Time
}

func New(records store.RateLimitRecords, window time.Duration, max int) *Limiter {
	if window <= 0 {
		window = DefaultWindow
	}
	if max <= 0 {
		max = DefaultMax
	}

	return &Limiter{
		records: records,
		window:  window,
		max:     max,
		now:     time.Now,
	}
}

// Allow reports whether one more request from key is admitted in the
// current window. A failing record store admits the request.
func (l *Limiter) Allow(ctx context.Context, key string) bool {
	l.Lock()
	defer l.Unlock()

	now := l.now()

	record, err := l.records.Get(ctx, key)
	if err != nil && err != store.ErrRecordNotFound {
		log.WithError(err).WithField("key", key).Error("read rate limit record")
		return true
	}

	if record == nil || now.After(record.ResetAt) {
		l.put(ctx, key, schema.RateLimitRecord{Count: 1, ResetAt: now.Add(l.window)})
		return true
	}

	if record.Count < l.max {
		record.Count++
		l.put(ctx, key, *record)
		return true
	}

	return false
}

func (l *Limiter) put(ctx context.Context, key string, record schema.RateLimitRecord) {
	if err := l.records.Put(ctx, key, record); err != nil {
		log.WithError(err).WithField("key", key).Error("write rate limit record")
	}
}

// Sweep removes records whose window has already passed and returns how
// many were removed
func (l *Limiter) Sweep(ctx context.Context) (int, error) {
	l.Lock()
	defer l.Unlock()

	now := l.now()

	var expired []string
	if err := l.records.Scan(ctx, func(key string, record schema.RateLimitRecord) bool {
		if now.After(record.ResetAt) {
			expired = append(expired, key)
		}
		return true
	}); err != nil {
		return 0, err
	}

	for _, key := range expired {
		if err := l.records.Delete(ctx, key); err != nil {
			return 0, err
		}
	}

	return len(expired), nil
}
