package views

import (
	"sync"

	"dispatch/internal/core/ports"
)

// Subscription is the cancellation handle of a live view.
type Subscription struct {
	watcher ports.Watcher

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	doneOnce sync.Once

	mu  sync.Mutex
	err error
}

func newSubscription(watcher ports.Watcher) *Subscription {
	return &Subscription{
		watcher: watcher,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Cancel stops delivery and releases the upstream watcher. The watcher is
// closed exactly once no matter how many times Cancel is called, including
// after the subscription already ended with an error.
func (s *Subscription) Cancel() {
	s.stopOnce.Do(func() {
		close(s.stop)
		_ = s.watcher.Close()
	})
}

// Done is closed when the subscription stops delivering states.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Err returns the upstream failure that ended the subscription, or nil when
// it is still running or was cancelled.
func (s *Subscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Subscription) stopped() bool {
	select {
	case <-s.stop:
		return true
	default:
		return false
	}
}

func (s *Subscription) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// finish runs when delivery ends for any reason. It releases the watcher
// through Cancel so the release still happens once.
func (s *Subscription) finish() {
	s.Cancel()
	s.doneOnce.Do(func() { close(s.done) })
}
