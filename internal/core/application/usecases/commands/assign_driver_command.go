package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrAssignDriverCommandIsNotConstructed = errors.New(
	"AssignDriverCommand must be created via NewAssignDriverCommand constructor",
)

// AssignDriverCommand asks to put a parcel in a driver's queue.
// This command represents a dispatcher picking an assignee for a pending
// parcel, or overriding an earlier choice.
//
// Example:
//
//	cmd, err := NewAssignDriverCommand("parcel-1", "driver-42")
//	if err != nil {
//	    return err
//	}
//	assigned, err := handler.Handle(ctx, cmd)
type AssignDriverCommand struct { //nolint:recvcheck //using for validation
	parcelID string
	driverID string

	guard guard.ConstructorGuard
}

// NewAssignDriverCommand creates a validated command.
//
// Parameters:
//   - parcelID: the parcel to assign (required)
//   - driverID: the driver account id (required, must not be the unassigned sentinel)
//
// Returns:
//   - AssignDriverCommand on success
//   - error joining a ValueIsRequiredError per missing value
func NewAssignDriverCommand(parcelID, driverID string) (AssignDriverCommand, error) {
	cmd := AssignDriverCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setDriverID(driverID),
	); err != nil {
		return AssignDriverCommand{}, err
	}

	return cmd, nil
}

func (c AssignDriverCommand) ParcelID() string {
	return c.parcelID
}

func (c AssignDriverCommand) DriverID() string {
	return c.driverID
}

// Validate ensures the command was created through the constructor.
func (c *AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}

func (c *AssignDriverCommand) setParcelID(parcelID string) error {
	trimmed := strings.TrimSpace(parcelID)
	if trimmed == "" {
		return errs.NewValueIsRequiredError("parcelId")
	}
	c.parcelID = trimmed
	return nil
}

func (c *AssignDriverCommand) setDriverID(driverID string) error {
	normalized := parcel.NormalizeDriver(driverID)
	if normalized == "" {
		return errs.NewValueIsRequiredError("driverId")
	}
	c.driverID = normalized
	return nil
}
