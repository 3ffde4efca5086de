package background

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunExecutesJobsUntilCancelled(t *testing.T) {
	m := New()

	var runs int32
	assert.Nil(t, m.RegisterJob("count", 5*time.Millisecond, func(context.Context) error {
		atomic.AddInt32(&runs, 1)
		return nil
	}))
	assert.Nil(t, m.RegisterJob("fail", 5*time.Millisecond, func(context.Context) error {
		return fmt.Errorf("boom")
	}))

	ctx, cancel := context.WithCancel(context.Background())
	assert.Nil(t, m.Run(ctx))

	deadline := time.Now().Add(time.Second)
	for atomic.LoadInt32(&runs) < 3 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	assert.True(t, atomic.LoadInt32(&runs) >= 3)

	cancel()
	m.Wait()

	after := atomic.LoadInt32(&runs)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, atomic.LoadInt32(&runs))
}

func TestRegisterAfterRun(t *testing.T) {
	m := New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	assert.Nil(t, m.Run(ctx))
	assert.NotNil(t, m.Run(ctx))
	assert.NotNil(t, m.RegisterJob("late", time.Second, func(context.Context) error { return nil }))
}

func TestRegisterInvalidInterval(t *testing.T) {
	assert.NotNil(t, New().RegisterJob("zero", 0, func(context.Context) error { return nil }))
}
