package views

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"go.uber.org/zap"
)

// View names, also used as metric labels and in the HTTP event routes.
const (
	DispatcherNew      = "dispatcher-new"
	DispatcherAssigned = "dispatcher-assigned"
	Driver             = "driver"
)

// WatchSource opens a change signal. ports.ParcelRepository and
// jobs.JobManager both satisfy it.
type WatchSource interface {
	Watch(ctx context.Context) (ports.Watcher, error)
}

// RefreshObserver records how long a projection took to compute.
// *metrics.DispatchMetrics satisfies it.
type RefreshObserver interface {
	ObserveViewRefresh(view string, d time.Duration)
}

// Option configures a View.
type Option func(*View)

// WithFallback sets the polling source used when the store has no push.
func WithFallback(source WatchSource) Option {
	return func(v *View) { v.fallback = source }
}

// WithObserver sets the refresh duration observer.
func WithObserver(observer RefreshObserver) Option {
	return func(v *View) { v.observer = observer }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(v *View) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// View is one parcel projection over the parcel repository.
type View struct {
	name     string
	parcels  ports.ParcelRepository
	project  func([]*parcel.Parcel) []*parcel.Parcel
	fallback WatchSource
	observer RefreshObserver
	logger   *zap.Logger
}

// NewDispatcherNewView returns the view of unassigned parcels, newest first.
func NewDispatcherNewView(parcels ports.ParcelRepository, opts ...Option) *View {
	projector := services.NewParcelProjector()
	return newView(DispatcherNew, parcels, projector.Unassigned, opts)
}

// NewDispatcherAssignedView returns the view of parcels with a concrete
// driver, newest first.
func NewDispatcherAssignedView(parcels ports.ParcelRepository, opts ...Option) *View {
	projector := services.NewParcelProjector()
	return newView(DispatcherAssigned, parcels, projector.AssignedToAny, opts)
}

// NewDriverView returns the view of the parcels assigned to driverID.
//
// Returns:
//   - *View on success
//   - ValueIsRequiredError for a blank driver id or the unassigned sentinel
func NewDriverView(parcels ports.ParcelRepository, driverID string, opts ...Option) (*View, error) {
	normalized := parcel.NormalizeDriver(driverID)
	if normalized == "" {
		return nil, errs.NewValueIsRequiredError("driverId")
	}

	projector := services.NewParcelProjector()
	project := func(all []*parcel.Parcel) []*parcel.Parcel {
		return projector.AssignedToDriver(all, normalized)
	}
	return newView(Driver, parcels, project, opts), nil
}

func newView(
	name string,
	parcels ports.ParcelRepository,
	project func([]*parcel.Parcel) []*parcel.Parcel,
	opts []Option,
) *View {
	v := &View{
		name:    name,
		parcels: parcels,
		project: project,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	v.logger = v.logger.With(zap.String("view", name))
	return v
}

// Name returns the view name.
func (v *View) Name() string {
	return v.name
}

// Refresh reads a snapshot of all parcels and returns the projection.
// Store failures are returned as StoreUnavailableError.
func (v *View) Refresh(ctx context.Context) ([]*parcel.Parcel, error) {
	started := time.Now()

	all, err := v.parcels.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	projected := v.project(all)

	if v.observer != nil {
		v.observer.ObserveViewRefresh(v.name, time.Since(started))
	}
	return projected, nil
}

// Subscribe starts live mode and calls fn with every new state.
//
// fn first receives Loading, then the result of an initial refresh, then one
// state per upstream change. Calls to fn never overlap. A failed refresh
// delivers Error and the subscription keeps listening; a failed upstream
// delivers Error and ends the subscription.
//
// Parameters:
//   - ctx: bounds the subscription; cancelling it is equivalent to Cancel
//   - fn: receives each state
//
// Returns:
//   - *Subscription on success
//   - ports.ErrWatchUnsupported when the store has no push and no fallback is set
//   - StoreUnavailableError when the change signal cannot be opened
//
// Example:
//
//	sub, err := view.Subscribe(ctx, func(s views.State) {
//	    render(s)
//	})
//	if err != nil {
//	    return err
//	}
//	defer sub.Cancel()
func (v *View) Subscribe(ctx context.Context, fn func(State)) (*Subscription, error) {
	if fn == nil {
		return nil, errs.NewValueIsRequiredError("listener")
	}

	watcher, err := v.openWatcher(ctx)
	if err != nil {
		return nil, err
	}

	sub := newSubscription(watcher)
	go v.run(ctx, sub, fn)
	return sub, nil
}

func (v *View) openWatcher(ctx context.Context) (ports.Watcher, error) {
	watcher, err := v.parcels.Watch(ctx)
	if err == nil {
		return watcher, nil
	}
	if !errors.Is(err, ports.ErrWatchUnsupported) || v.fallback == nil {
		return nil, err
	}

	v.logger.Debug("store has no push, polling instead")
	return v.fallback.Watch(ctx)
}

func (v *View) run(ctx context.Context, sub *Subscription, fn func(State)) {
	defer sub.finish()

	emit := func(s State) bool {
		if sub.stopped() {
			return false
		}
		fn(s)
		return true
	}

	if !emit(LoadingState()) || !emit(v.load(ctx)) {
		return
	}

	changes := sub.watcher.Changes()
	for {
		select {
		case <-ctx.Done():
			sub.Cancel()
			return
		case <-sub.stop:
			return
		case _, ok := <-changes:
			if !ok {
				if err := sub.watcher.Err(); err != nil {
					v.logger.Warn("upstream failed", zap.Error(err))
					failure := errs.NewStoreUnavailableError("watch parcels", err)
					sub.setErr(failure)
					emit(ErrorState(failure))
				}
				return
			}
			if !emit(v.load(ctx)) {
				return
			}
		}
	}
}

func (v *View) load(ctx context.Context) State {
	parcels, err := v.Refresh(ctx)
	if err != nil {
		v.logger.Warn("refresh failed", zap.Error(err))
		return ErrorState(err)
	}
	return SuccessState(parcels)
}
