package queries

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/guard"
)

var ErrListAvailableDriversQueryIsNotConstructed = errors.New(
	"ListAvailableDriversQuery must be created via NewListAvailableDriversQuery constructor",
)

// ListAvailableDriversQuery asks for the drivers a dispatcher may pick from.
type ListAvailableDriversQuery struct {
	guard guard.ConstructorGuard
}

// NewListAvailableDriversQuery creates the parameterless query.
func NewListAvailableDriversQuery() ListAvailableDriversQuery {
	return ListAvailableDriversQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ListAvailableDriversQuery) Validate() error {
	return q.guard.Validate(ErrListAvailableDriversQueryIsNotConstructed)
}

// ListAvailableDriversQueryHandler lists drivers whose status is AVAILABLE,
// ordered by name.
type ListAvailableDriversQueryHandler struct {
	drivers ports.DriverRepository
}

func NewListAvailableDriversQueryHandler(drivers ports.DriverRepository) ListAvailableDriversQueryHandler {
	return ListAvailableDriversQueryHandler{drivers: drivers}
}

func (h ListAvailableDriversQueryHandler) Handle(
	ctx context.Context,
	query ListAvailableDriversQuery,
) ([]DriverResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	found, err := h.drivers.ListByStatus(ctx, driver.Available)
	if err != nil {
		return nil, err
	}

	out := make([]DriverResponse, 0, len(found))
	for _, d := range found {
		out = append(out, newDriverResponse(d))
	}
	return out, nil
}
