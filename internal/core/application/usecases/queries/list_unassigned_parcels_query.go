package queries

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/guard"
)

var ErrListUnassignedParcelsQueryIsNotConstructed = errors.New(
	"ListUnassignedParcelsQuery must be created via NewListUnassignedParcelsQuery constructor",
)

// ListUnassignedParcelsQuery asks for the dispatcher's "new" list: pending
// parcels without a concrete driver.
//
// Example:
//
//	query := NewListUnassignedParcelsQuery()
//	handler := NewListUnassignedParcelsQueryHandler(parcelRepo)
//
//	parcels, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list new parcels: %w", err)
//	}
//	fmt.Printf("%d parcels waiting for a driver\n", len(parcels))
type ListUnassignedParcelsQuery struct {
	guard guard.ConstructorGuard
}

// NewListUnassignedParcelsQuery creates the parameterless query.
func NewListUnassignedParcelsQuery() ListUnassignedParcelsQuery {
	return ListUnassignedParcelsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ListUnassignedParcelsQuery) Validate() error {
	return q.guard.Validate(ErrListUnassignedParcelsQueryIsNotConstructed)
}

// ListUnassignedParcelsQueryHandler reads every parcel and keeps the
// unassigned ones. The store is not asked to filter: "unassigned" covers
// records with no driver field, a blank driver or the sentinel, and no
// single equality filter matches all three.
type ListUnassignedParcelsQueryHandler struct {
	parcels   ports.ParcelRepository
	projector services.ParcelProjector
}

func NewListUnassignedParcelsQueryHandler(parcels ports.ParcelRepository) ListUnassignedParcelsQueryHandler {
	return ListUnassignedParcelsQueryHandler{
		parcels:   parcels,
		projector: services.NewParcelProjector(),
	}
}

// Handle returns unassigned parcels newest first, ties by id.
func (h ListUnassignedParcelsQueryHandler) Handle(
	ctx context.Context,
	query ListUnassignedParcelsQuery,
) ([]ParcelResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	all, err := h.parcels.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	return NewParcelResponses(h.projector.Unassigned(all)), nil
}
