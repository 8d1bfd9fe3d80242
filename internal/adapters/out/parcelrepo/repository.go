package parcelrepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// DefaultTimeout bounds every store call when no timeout is configured.
const DefaultTimeout = 10 * time.Second

var _ ports.ParcelRepository = (*Repository)(nil)

// FailureRecorder counts store failures per operation. Optional.
type FailureRecorder interface {
	StoreFailure(operation string)
}

// Repository implements ports.ParcelRepository on a document store.
type Repository struct {
	store    ports.DocumentStore
	clock    kernel.Clock
	timeout  time.Duration
	failures FailureRecorder
}

// NewRepository creates a parcel repository.
//
// Parameters:
//   - store: the document store holding the parcels collection
//   - clock: supplies the fallback createdAt for legacy records
//   - timeout: per-call deadline; zero selects DefaultTimeout
//   - failures: optional store failure counter, may be nil
func NewRepository(store ports.DocumentStore, clock kernel.Clock, timeout time.Duration, failures FailureRecorder) *Repository {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Repository{
		store:    store,
		clock:    clock,
		timeout:  timeout,
		failures: failures,
	}
}

// Add saves a new parcel and returns it carrying the generated id.
func (r *Repository) Add(ctx context.Context, aggregate *parcel.Parcel) (*parcel.Parcel, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	id, err := r.store.Add(ctx, Collection, ToRecord(aggregate))
	if err != nil {
		return nil, r.classify("add parcel", "", err)
	}

	return aggregate.WithID(id)
}

// Get loads a parcel by id.
func (r *Repository) Get(ctx context.Context, id string) (*parcel.Parcel, error) {
	if id == "" {
		return nil, errs.NewValueIsRequiredError("parcelId")
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rec, err := r.store.Get(ctx, Collection, id)
	if err != nil {
		return nil, r.classify("get parcel", id, err)
	}

	return FromRecord(id, rec, r.clock.Now())
}

// ListAll reads the whole collection.
func (r *Repository) ListAll(ctx context.Context) ([]*parcel.Parcel, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	docs, err := r.store.Find(ctx, Collection, ports.Query{})
	if err != nil {
		return nil, r.classify("list parcels", "", err)
	}

	now := r.clock.Now()
	parcels := make([]*parcel.Parcel, 0, len(docs))
	for _, doc := range docs {
		p, err := FromRecord(doc.ID, doc.Data, now)
		if err != nil {
			// Only a blank id fails decoding; such a document cannot be
			// addressed by any operation anyway.
			continue
		}
		parcels = append(parcels, p)
	}
	return parcels, nil
}

// UpdateAssignment writes the driver and the status in one update.
func (r *Repository) UpdateAssignment(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	full := ToRecord(aggregate)
	return r.update(ctx, "assign driver", aggregate.ID(), ports.Record{
		FieldAssignedDriver: full[FieldAssignedDriver],
		FieldStatus:         full[FieldStatus],
	})
}

// UpdateStatus writes the status, and the delivery fields when delivered,
// in one update.
func (r *Repository) UpdateStatus(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	full := ToRecord(aggregate)
	fields := ports.Record{FieldStatus: full[FieldStatus]}
	if aggregate.Status() == parcel.Delivered {
		fields[FieldDeliveredAt] = full[FieldDeliveredAt]
		fields[FieldDeliveryPhotoURL] = full[FieldDeliveryPhotoURL]
	}

	return r.update(ctx, "update parcel status", aggregate.ID(), fields)
}

// Watch opens a change feed on the parcels collection. The store timeout does
// not apply: the feed lives as long as ctx.
func (r *Repository) Watch(ctx context.Context) (ports.Watcher, error) {
	w, err := r.store.Watch(ctx, Collection)
	if errors.Is(err, ports.ErrWatchUnsupported) {
		return nil, err
	}
	if err != nil {
		return nil, r.classify("watch parcels", "", err)
	}
	return w, nil
}

func (r *Repository) update(ctx context.Context, operation, id string, fields ports.Record) error {
	if id == "" {
		return errs.NewValueIsRequiredError("parcelId")
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.store.Update(ctx, Collection, id, fields); err != nil {
		return r.classify(operation, id, err)
	}
	return nil
}

// classify turns store errors into domain errors: a missing document is
// ObjectNotFound, anything else StoreUnavailable.
func (r *Repository) classify(operation, id string, err error) error {
	if errors.Is(err, ports.ErrDocumentNotFound) {
		return errs.NewObjectNotFoundErrorWithCause("parcelId", id, err)
	}
	if r.failures != nil {
		r.failures.StoreFailure(operation)
	}
	return errs.NewStoreUnavailableError(operation, err)
}
