package commands

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/core/ports"
)

// AdvanceParcelStatusCommandHandler moves a parcel one step along its
// lifecycle.
//
// The handler loads the parcel, validates and applies the transition in
// memory, issues one store write and reloads the parcel. A failed write
// leaves the stored record as it was; there is no automatic retry. Actor
// roles are not checked here.
//
// Example:
//
//	handler := NewAdvanceParcelStatusCommandHandler(parcelRepo, kernel.SystemClock{}, dispatchMetrics)
//	updated, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrInvalidTransition) {
//	    log.Println("Not the next status")
//	}
type AdvanceParcelStatusCommandHandler struct {
	parcels  ports.ParcelRepository
	clock    kernel.Clock
	recorder LifecycleRecorder
}

// NewAdvanceParcelStatusCommandHandler creates the handler. recorder may be nil.
func NewAdvanceParcelStatusCommandHandler(
	parcels ports.ParcelRepository,
	clock kernel.Clock,
	recorder LifecycleRecorder,
) AdvanceParcelStatusCommandHandler {
	return AdvanceParcelStatusCommandHandler{
		parcels:  parcels,
		clock:    clock,
		recorder: recorderOrNoop(recorder),
	}
}

// Handle processes the transition.
//
// Returns:
//   - the reloaded parcel
//   - ObjectNotFoundError when the parcel does not exist
//   - InvalidTransitionError when the requested status is not the next one
//   - ValueIsRequiredError for pending -> assigned on a parcel without a driver
//   - StoreUnavailableError when a read or the write fails
func (h *AdvanceParcelStatusCommandHandler) Handle(
	ctx context.Context,
	cmd AdvanceParcelStatusCommand,
) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return advance(ctx, h.parcels, h.recorder, cmd.ParcelID(), cmd.Status(), h.clock.Now(), cmd.PhotoURL())
}

func advance(
	ctx context.Context,
	parcels ports.ParcelRepository,
	recorder LifecycleRecorder,
	parcelID string,
	requested parcel.Status,
	now kernel.Timestamp,
	photoURL *string,
) (*parcel.Parcel, error) {
	aggregate, err := parcels.Get(ctx, parcelID)
	if err != nil {
		return nil, err
	}

	if err = aggregate.Advance(requested, now, photoURL); err != nil {
		return nil, err
	}

	if err = parcels.UpdateStatus(ctx, aggregate); err != nil {
		return nil, err
	}

	recorder.StatusChanged(requested.String())

	return parcels.Get(ctx, parcelID)
}
