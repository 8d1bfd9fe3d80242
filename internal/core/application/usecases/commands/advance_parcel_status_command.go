package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrAdvanceParcelStatusCommandIsNotConstructed = errors.New(
	"AdvanceParcelStatusCommand must be created via NewAdvanceParcelStatusCommand constructor",
)

// AdvanceParcelStatusCommand requests the next lifecycle step for a parcel.
// The requested status is given as text and parsed leniently, so "Picked Up"
// and "picked_up" are the same request.
//
// Example:
//
//	cmd, err := NewAdvanceParcelStatusCommand("parcel-1", "in_transit", nil)
//	if err != nil {
//	    return err
//	}
//	updated, err := handler.Handle(ctx, cmd)
type AdvanceParcelStatusCommand struct { //nolint:recvcheck //using for validation
	parcelID string
	status   parcel.Status
	photoURL *string

	guard guard.ConstructorGuard
}

// NewAdvanceParcelStatusCommand creates a validated command.
//
// Parameters:
//   - parcelID: the parcel to advance (required)
//   - status: the requested status (required, must name a known status)
//   - photoURL: optional proof-of-delivery URL, only used for delivered
//
// Returns:
//   - AdvanceParcelStatusCommand on success
//   - error joining ValueIsRequiredError / ValueIsInvalidError values
func NewAdvanceParcelStatusCommand(parcelID, status string, photoURL *string) (AdvanceParcelStatusCommand, error) {
	cmd := AdvanceParcelStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setStatus(status),
	); err != nil {
		return AdvanceParcelStatusCommand{}, err
	}

	if photoURL != nil && strings.TrimSpace(*photoURL) != "" {
		url := strings.TrimSpace(*photoURL)
		cmd.photoURL = &url
	}

	return cmd, nil
}

func (c AdvanceParcelStatusCommand) ParcelID() string {
	return c.parcelID
}

func (c AdvanceParcelStatusCommand) Status() parcel.Status {
	return c.status
}

func (c AdvanceParcelStatusCommand) PhotoURL() *string {
	if c.photoURL == nil {
		return nil
	}
	v := *c.photoURL
	return &v
}

// Validate ensures the command was created through the constructor.
func (c *AdvanceParcelStatusCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceParcelStatusCommandIsNotConstructed)
}

func (c *AdvanceParcelStatusCommand) setParcelID(parcelID string) error {
	trimmed := strings.TrimSpace(parcelID)
	if trimmed == "" {
		return errs.NewValueIsRequiredError("parcelId")
	}
	c.parcelID = trimmed
	return nil
}

func (c *AdvanceParcelStatusCommand) setStatus(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return errs.NewValueIsRequiredError("status")
	}
	status, err := parcel.ParseStatus(raw)
	if err != nil {
		return err
	}
	c.status = status
	return nil
}
