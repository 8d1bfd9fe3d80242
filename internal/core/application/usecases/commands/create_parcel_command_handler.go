package commands

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/core/ports"
)

// CreateParcelCommandHandler persists new parcels. A new parcel starts in
// pending status with the unassigned sentinel as its driver, so it shows up in
// the dispatcher's "new" view right away.
//
// Example:
//
//	handler := NewCreateParcelCommandHandler(parcelRepo, kernel.SystemClock{}, dispatchMetrics)
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    log.Printf("Failed to create parcel: %v", err)
//	}
//	log.Printf("Parcel %s created", created.ID())
type CreateParcelCommandHandler struct {
	parcels  ports.ParcelRepository
	clock    kernel.Clock
	recorder LifecycleRecorder
}

// NewCreateParcelCommandHandler creates the handler. recorder may be nil.
func NewCreateParcelCommandHandler(
	parcels ports.ParcelRepository,
	clock kernel.Clock,
	recorder LifecycleRecorder,
) CreateParcelCommandHandler {
	return CreateParcelCommandHandler{
		parcels:  parcels,
		clock:    clock,
		recorder: recorderOrNoop(recorder),
	}
}

// Handle builds the parcel stamped with the current time and adds it to the
// store.
//
// Returns:
//   - the stored parcel carrying its store-assigned id
//   - ErrCreateParcelCommandIsNotConstructed for a zero-value command
//   - StoreUnavailableError when the write fails
func (h *CreateParcelCommandHandler) Handle(ctx context.Context, cmd CreateParcelCommand) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := parcel.NewParcel(cmd.Details(), h.clock.Now())
	if err != nil {
		return nil, err
	}

	created, err := h.parcels.Add(ctx, aggregate)
	if err != nil {
		return nil, err
	}

	h.recorder.ParcelCreated()
	return created, nil
}
