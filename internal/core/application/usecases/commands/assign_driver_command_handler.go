package commands

import (
	"context"

	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/core/ports"
)

// AssignDriverCommandHandler assigns a driver to a parcel.
// The driver id and the assigned status are written together in one
// field-level update. Re-assigning overwrites the previous driver (last write
// wins); assigning the same driver twice leaves the parcel unchanged.
// The driver's own availability status is not touched.
//
// Example:
//
//	handler := NewAssignDriverCommandHandler(parcelRepo, dispatchMetrics)
//	assigned, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    log.Println("No such parcel")
//	case errors.Is(err, errs.ErrInvalidTransition):
//	    log.Println("Parcel already picked up")
//	case err != nil:
//	    log.Printf("Assignment failed: %v", err)
//	}
type AssignDriverCommandHandler struct {
	parcels  ports.ParcelRepository
	recorder LifecycleRecorder
}

// NewAssignDriverCommandHandler creates the handler. recorder may be nil.
func NewAssignDriverCommandHandler(parcels ports.ParcelRepository, recorder LifecycleRecorder) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{
		parcels:  parcels,
		recorder: recorderOrNoop(recorder),
	}
}

// Handle loads the parcel, applies the assignment in memory and writes it.
//
// Returns:
//   - the parcel as written
//   - ObjectNotFoundError when the parcel does not exist
//   - InvalidTransitionError when the parcel is already picked up or later
//   - StoreUnavailableError when a read or the write fails
func (h *AssignDriverCommandHandler) Handle(ctx context.Context, cmd AssignDriverCommand) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := h.parcels.Get(ctx, cmd.ParcelID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.AssignTo(cmd.DriverID()); err != nil {
		return nil, err
	}

	if err = h.parcels.UpdateAssignment(ctx, aggregate); err != nil {
		return nil, err
	}

	h.recorder.DriverAssigned()
	return aggregate, nil
}
