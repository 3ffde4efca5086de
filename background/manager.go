package background

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "background")
}

// JobFunc is one run of a periodic job
type JobFunc func(ctx context.Context) error

type job struct {
	name     string
	interval time.Duration
	run      JobFunc
}

// BackgroundManager runs registered jobs on their own tickers until the
// context given to Run is cancelled
type BackgroundManager struct {
	sync.Mutex

	jobs    []job
	running bool
	wg      sync.WaitGroup
}

func New() *BackgroundManager {
	return &BackgroundManager{}
}

func (m *BackgroundManager) RegisterJob(name string, interval time.Duration, run JobFunc) error {
	m.Lock()
	defer m.Unlock()

	if m.running {
		return errors.New("background manager has started")
	}
	if interval <= 0 {
		return errors.New("job interval must be positive")
	}

	m.jobs = append(m.jobs, job{name: name, interval: interval, run: run})
	return nil
}

// Run spawns one goroutine per job and returns immediately
func (m *BackgroundManager) Run(ctx context.Context) error {
	m.Lock()
	defer m.Unlock()

	if m.running {
		return errors.New("background manager has started")
	}
	m.running = true

	for _, j := range m.jobs {
		m.wg.Add(1)
		go m.loop(ctx, j)
	}

	return nil
}

// Wait blocks until every job loop has exited
func (m *BackgroundManager) Wait() {
	m.wg.Wait()
}

func (m *BackgroundManager) loop(ctx context.Context, j job) {
	defer m.wg.Done()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.WithField("job", j.name).Info("job stopped")
			return
		case <-ticker.C:
			if err := j.run(ctx); err != nil {
				log.WithError(err).WithField("job", j.name).Error("job failed")
			}
		}
	}
}
