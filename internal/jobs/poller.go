package jobs

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/adapters/out/documentstore/changefeed"
	"dispatch/internal/core/ports"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultPollInterval is used when no interval is configured.
const DefaultPollInterval = 2 * time.Second

var _ ports.Watcher = (*Poller)(nil)

// Poller is a ports.Watcher for stores without push. It signals a change on
// every tick of its own cron schedule, and the subscriber re-reads the whole
// collection.
type Poller struct {
	feed   *changefeed.Feed
	cron   *cron.Cron
	logger *zap.Logger
}

// StartPoller creates a poller ticking every interval and starts it.
// Intervals below one second are rounded up by the scheduler. The poller
// stops when ctx is cancelled or Close is called.
func StartPoller(ctx context.Context, interval time.Duration, logger *zap.Logger) (*Poller, error) {
	return startPoller(ctx, interval, logger, nil)
}

func startPoller(ctx context.Context, interval time.Duration, logger *zap.Logger, onStop func(*Poller)) (*Poller, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &Poller{
		cron:   cron.New(cron.WithSeconds()),
		logger: logger,
	}
	p.feed = changefeed.New(func() error {
		<-p.cron.Stop().Done()
		if onStop != nil {
			onStop(p)
		}
		p.logger.Debug("poller stopped")
		return nil
	})

	if _, err := p.cron.AddFunc(fmt.Sprintf("@every %s", interval), p.feed.Notify); err != nil {
		return nil, fmt.Errorf("schedule poller: %w", err)
	}

	p.cron.Start()
	p.logger.Debug("poller started", zap.Duration("interval", interval))

	go func() {
		select {
		case <-ctx.Done():
			_ = p.Close()
		case <-p.feed.Done():
		}
	}()

	return p, nil
}

// Changes implements ports.Watcher.
func (p *Poller) Changes() <-chan struct{} {
	return p.feed.Changes()
}

// Err implements ports.Watcher. A poller never fails on its own, so Err is
// always nil.
func (p *Poller) Err() error {
	return p.feed.Err()
}

// Close stops the schedule. Only the first call has an effect.
func (p *Poller) Close() error {
	return p.feed.Close()
}

// Done is closed once the poller stopped.
func (p *Poller) Done() <-chan struct{} {
	return p.feed.Done()
}
