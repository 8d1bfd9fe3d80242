package queries

import (
	"context"
	"errors"
	"strings"

	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrGetParcelQueryIsNotConstructed = errors.New(
	"GetParcelQuery must be created via NewGetParcelQuery constructor",
)

// GetParcelQuery loads a single parcel by id.
type GetParcelQuery struct {
	parcelID string

	guard guard.ConstructorGuard
}

// NewGetParcelQuery creates the query. A blank id is a ValueIsRequiredError.
func NewGetParcelQuery(parcelID string) (GetParcelQuery, error) {
	trimmed := strings.TrimSpace(parcelID)
	if trimmed == "" {
		return GetParcelQuery{}, errs.NewValueIsRequiredError("parcelId")
	}
	return GetParcelQuery{parcelID: trimmed, guard: guard.NewConstructorGuard()}, nil
}

func (q GetParcelQuery) ParcelID() string {
	return q.parcelID
}

// Validate ensures the query was created through the constructor.
func (q GetParcelQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelQueryIsNotConstructed)
}

// GetParcelQueryHandler reads one parcel.
//
// Example:
//
//	handler := NewGetParcelQueryHandler(parcelRepo)
//	query, _ := NewGetParcelQuery("parcel-1")
//	resp, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // 404
//	}
type GetParcelQueryHandler struct {
	parcels ports.ParcelRepository
}

func NewGetParcelQueryHandler(parcels ports.ParcelRepository) GetParcelQueryHandler {
	return GetParcelQueryHandler{parcels: parcels}
}

// Handle returns the parcel read model, ObjectNotFoundError, or
// StoreUnavailableError.
func (h GetParcelQueryHandler) Handle(ctx context.Context, query GetParcelQuery) (ParcelResponse, error) {
	if err := query.Validate(); err != nil {
		return ParcelResponse{}, err
	}

	p, err := h.parcels.Get(ctx, query.ParcelID())
	if err != nil {
		return ParcelResponse{}, err
	}

	return NewParcelResponse(p), nil
}
