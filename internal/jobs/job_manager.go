package jobs

import (
	"context"
	"sync"
	"time"

	"dispatch/internal/core/ports"

	"go.uber.org/zap"
)

// JobManager hands out pollers to live views and stops the ones still
// running at shutdown.
type JobManager struct {
	interval time.Duration
	logger   *zap.Logger

	mu      sync.Mutex
	pollers map[*Poller]struct{}
	stopped bool
}

// NewJobManager creates a manager whose pollers tick every interval.
func NewJobManager(interval time.Duration, logger *zap.Logger) *JobManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JobManager{
		interval: interval,
		logger:   logger.With(zap.String("component", "poller")),
		pollers:  make(map[*Poller]struct{}),
	}
}

// Watch starts a poller bound to ctx. It has the same signature as
// ports.ParcelRepository.Watch so views can use either source.
func (jm *JobManager) Watch(ctx context.Context) (ports.Watcher, error) {
	jm.mu.Lock()
	defer jm.mu.Unlock()

	if jm.stopped {
		return nil, context.Canceled
	}

	p, err := startPoller(ctx, jm.interval, jm.logger, jm.forget)
	if err != nil {
		return nil, err
	}
	jm.pollers[p] = struct{}{}
	return p, nil
}

// Active returns the number of running pollers.
func (jm *JobManager) Active() int {
	jm.mu.Lock()
	defer jm.mu.Unlock()
	return len(jm.pollers)
}

// StopAll stops every running poller and refuses new ones.
func (jm *JobManager) StopAll() {
	jm.mu.Lock()
	jm.stopped = true
	running := make([]*Poller, 0, len(jm.pollers))
	for p := range jm.pollers {
		running = append(running, p)
	}
	jm.mu.Unlock()

	for _, p := range running {
		_ = p.Close()
	}
	jm.logger.Info("all pollers stopped", zap.Int("count", len(running)))
}

func (jm *JobManager) forget(p *Poller) {
	jm.mu.Lock()
	defer jm.mu.Unlock()
	delete(jm.pollers, p)
}
