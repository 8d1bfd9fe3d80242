package queries

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/guard"
)

var ErrListAssignedParcelsQueryIsNotConstructed = errors.New(
	"ListAssignedParcelsQuery must be created via NewListAssignedParcelsQuery constructor",
)

// ListAssignedParcelsQuery asks for every parcel that has a concrete driver,
// whatever its status.
type ListAssignedParcelsQuery struct {
	guard guard.ConstructorGuard
}

// NewListAssignedParcelsQuery creates the parameterless query.
func NewListAssignedParcelsQuery() ListAssignedParcelsQuery {
	return ListAssignedParcelsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ListAssignedParcelsQuery) Validate() error {
	return q.guard.Validate(ErrListAssignedParcelsQueryIsNotConstructed)
}

// ListAssignedParcelsResponse carries the flat list and the same parcels
// grouped per driver.
type ListAssignedParcelsResponse struct {
	Parcels []ParcelResponse
	Groups  []DriverGroupResponse
}

// ListAssignedParcelsQueryHandler builds the dispatcher's "assigned" list.
//
// Example:
//
//	handler := NewListAssignedParcelsQueryHandler(parcelRepo)
//	resp, err := handler.Handle(ctx, NewListAssignedParcelsQuery())
//	for _, g := range resp.Groups {
//	    fmt.Printf("%s holds %d parcels\n", g.DriverID, len(g.Parcels))
//	}
type ListAssignedParcelsQueryHandler struct {
	parcels   ports.ParcelRepository
	projector services.ParcelProjector
}

func NewListAssignedParcelsQueryHandler(parcels ports.ParcelRepository) ListAssignedParcelsQueryHandler {
	return ListAssignedParcelsQueryHandler{
		parcels:   parcels,
		projector: services.NewParcelProjector(),
	}
}

// Handle returns assigned parcels newest first, ties by driver id then
// parcel id, plus the per-driver groups ordered by driver id.
func (h ListAssignedParcelsQueryHandler) Handle(
	ctx context.Context,
	query ListAssignedParcelsQuery,
) (ListAssignedParcelsResponse, error) {
	if err := query.Validate(); err != nil {
		return ListAssignedParcelsResponse{}, err
	}

	all, err := h.parcels.ListAll(ctx)
	if err != nil {
		return ListAssignedParcelsResponse{}, err
	}

	assigned := h.projector.AssignedToAny(all)
	return ListAssignedParcelsResponse{
		Parcels: NewParcelResponses(assigned),
		Groups:  newDriverGroupResponses(h.projector.GroupByDriver(assigned)),
	}, nil
}
