package commands

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/core/ports"
)

// RecordDeliveryCommandHandler uploads the proof-of-delivery photo and then
// moves the parcel from in_transit to delivered with the returned URL.
//
// The transition is checked before the upload so a parcel in the wrong
// status does not leave an orphaned image behind. If the upload fails the
// parcel is not written.
//
// Example:
//
//	handler := NewRecordDeliveryCommandHandler(parcelRepo, uploader, kernel.SystemClock{}, dispatchMetrics)
//	delivered, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    log.Printf("Delivery failed: %v", err)
//	}
type RecordDeliveryCommandHandler struct {
	parcels  ports.ParcelRepository
	uploader ports.PhotoUploader
	clock    kernel.Clock
	recorder LifecycleRecorder
}

// NewRecordDeliveryCommandHandler creates the handler. recorder may be nil.
func NewRecordDeliveryCommandHandler(
	parcels ports.ParcelRepository,
	uploader ports.PhotoUploader,
	clock kernel.Clock,
	recorder LifecycleRecorder,
) RecordDeliveryCommandHandler {
	return RecordDeliveryCommandHandler{
		parcels:  parcels,
		uploader: uploader,
		clock:    clock,
		recorder: recorderOrNoop(recorder),
	}
}

// Handle processes the delivery.
//
// Returns:
//   - the reloaded, delivered parcel
//   - ObjectNotFoundError when the parcel does not exist
//   - InvalidTransitionError when the parcel is not in transit
//   - ValueIsInvalidError for an unsupported image type
//   - StoreUnavailableError when the upload, a read or the write fails
func (h *RecordDeliveryCommandHandler) Handle(ctx context.Context, cmd RecordDeliveryCommand) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	current, err := h.parcels.Get(ctx, cmd.ParcelID())
	if err != nil {
		return nil, err
	}

	if err = current.Status().ValidateAdvance(parcel.Delivered); err != nil {
		return nil, err
	}

	url, err := h.uploader.Upload(ctx, cmd.ParcelID(), cmd.ContentType(), cmd.Photo())
	if err != nil {
		return nil, err
	}

	return advance(ctx, h.parcels, h.recorder, cmd.ParcelID(), parcel.Delivered, h.clock.Now(), &url)
}
