// Package changefeed implements ports.Watcher for stores that learn about
// changes from a background source (an in-process hub, a pub/sub channel or a
// change stream).
package changefeed

import (
	"sync"
)

// Feed is a coalescing change signal. Notifications that arrive while a
// previous one is still unread are merged into it.
type Feed struct {
	mu      sync.Mutex
	changes chan struct{}
	done    chan struct{}
	closed  bool
	err     error
	onClose func() error
}

// New creates an open feed. onClose, when not nil, runs once when the feed
// stops, whichever of Close or Fail stops it.
func New(onClose func() error) *Feed {
	return &Feed{
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
		onClose: onClose,
	}
}

// Notify signals a change. It never blocks and is a no-op once the feed stopped.
func (f *Feed) Notify() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	select {
	case f.changes <- struct{}{}:
	default:
	}
}

// Fail stops the feed with err.
func (f *Feed) Fail(err error) {
	f.stop(err)
}

// Changes implements ports.Watcher.
func (f *Feed) Changes() <-chan struct{} {
	return f.changes
}

// Done is closed when the feed stops. Unlike Changes it never carries a
// notification, so background goroutines can wait on it without consuming one.
func (f *Feed) Done() <-chan struct{} {
	return f.done
}

// Err implements ports.Watcher.
func (f *Feed) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Close implements ports.Watcher. Only the first call releases the source.
func (f *Feed) Close() error {
	return f.stop(nil)
}

func (f *Feed) stop(err error) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true
	f.err = err
	close(f.changes)
	close(f.done)
	onClose := f.onClose
	f.mu.Unlock()

	if onClose != nil {
		return onClose()
	}
	return nil
}
