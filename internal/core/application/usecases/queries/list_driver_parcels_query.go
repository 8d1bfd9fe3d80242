package queries

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrListDriverParcelsQueryIsNotConstructed = errors.New(
	"ListDriverParcelsQuery must be created via NewListDriverParcelsQuery constructor",
)

// ListDriverParcelsQuery asks for the parcels assigned to one driver, in any
// status. It backs the driver's own work list.
type ListDriverParcelsQuery struct {
	driverID string

	guard guard.ConstructorGuard
}

// NewListDriverParcelsQuery creates the query. A blank driver id or the
// unassigned sentinel is a ValueIsRequiredError.
func NewListDriverParcelsQuery(driverID string) (ListDriverParcelsQuery, error) {
	normalized := parcel.NormalizeDriver(driverID)
	if normalized == "" {
		return ListDriverParcelsQuery{}, errs.NewValueIsRequiredError("driverId")
	}
	return ListDriverParcelsQuery{driverID: normalized, guard: guard.NewConstructorGuard()}, nil
}

func (q ListDriverParcelsQuery) DriverID() string {
	return q.driverID
}

// Validate ensures the query was created through the constructor.
func (q ListDriverParcelsQuery) Validate() error {
	return q.guard.Validate(ErrListDriverParcelsQueryIsNotConstructed)
}

// ListDriverParcelsQueryHandler reads the parcels of one driver.
//
// Example:
//
//	query, err := NewListDriverParcelsQuery(actor.ID)
//	if err != nil {
//	    return err
//	}
//	parcels, err := NewListDriverParcelsQueryHandler(parcelRepo).Handle(ctx, query)
type ListDriverParcelsQueryHandler struct {
	parcels   ports.ParcelRepository
	projector services.ParcelProjector
}

func NewListDriverParcelsQueryHandler(parcels ports.ParcelRepository) ListDriverParcelsQueryHandler {
	return ListDriverParcelsQueryHandler{
		parcels:   parcels,
		projector: services.NewParcelProjector(),
	}
}

// Handle returns the driver's parcels newest first, ties by id.
func (h ListDriverParcelsQueryHandler) Handle(
	ctx context.Context,
	query ListDriverParcelsQuery,
) ([]ParcelResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	all, err := h.parcels.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	return NewParcelResponses(h.projector.AssignedToDriver(all, query.DriverID())), nil
}
