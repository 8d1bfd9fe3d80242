package ports

import (
	"context"

	"dispatch/internal/core/domain/model/parcel"
)

// ParcelRepository is the only gateway to stored parcel records. It maps
// between raw records and the Parcel aggregate and classifies store failures
// into errs.StoreUnavailableError and errs.ObjectNotFoundError.
type ParcelRepository interface {
	// Add persists a new parcel and returns it with its store-assigned id.
	Add(ctx context.Context, aggregate *parcel.Parcel) (*parcel.Parcel, error)

	// Get loads a parcel by id.
	Get(ctx context.Context, id string) (*parcel.Parcel, error)

	// ListAll returns every parcel in unspecified order. Filtering and
	// ordering are done by services.ParcelProjector.
	ListAll(ctx context.Context) ([]*parcel.Parcel, error)

	// UpdateAssignment writes assignedDriver and status in one field-level update.
	UpdateAssignment(ctx context.Context, aggregate *parcel.Parcel) error

	// UpdateStatus writes status, plus deliveredAt and deliveryPhotoUrl when
	// the parcel is delivered, in one field-level update.
	UpdateStatus(ctx context.Context, aggregate *parcel.Parcel) error

	// Watch signals every change to the parcel collection, or returns
	// ErrWatchUnsupported.
	Watch(ctx context.Context) (Watcher, error)
}
