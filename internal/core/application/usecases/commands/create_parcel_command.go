package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/pkg/guard"
)

var ErrCreateParcelCommandIsNotConstructed = errors.New(
	"CreateParcelCommand must be created via NewCreateParcelCommand constructor",
)

// CreateParcelCommand carries the shipment description a dispatcher enters
// for a new parcel. Text fields are trimmed; the required ones are checked
// against parcel.Details rules.
//
// Example:
//
//	cmd, err := NewCreateParcelCommand(parcel.Details{
//	    SenderName:     "Acme",
//	    ReceiverName:   "Jane",
//	    PickupAddress:  "1 Depot Rd",
//	    DropoffAddress: "9 Elm St",
//	})
//	if err != nil {
//	    return err
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateParcelCommand struct { //nolint:recvcheck //using for validation
	details parcel.Details

	guard guard.ConstructorGuard
}

// NewCreateParcelCommand creates a validated command.
//
// Returns:
//   - CreateParcelCommand on success
//   - error joining a ValueIsRequiredError per blank required field
func NewCreateParcelCommand(details parcel.Details) (CreateParcelCommand, error) {
	cmd := CreateParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	trimmed := parcel.Details{
		SenderName:     strings.TrimSpace(details.SenderName),
		ReceiverName:   strings.TrimSpace(details.ReceiverName),
		ReceiverPhone:  strings.TrimSpace(details.ReceiverPhone),
		PickupAddress:  strings.TrimSpace(details.PickupAddress),
		DropoffAddress: strings.TrimSpace(details.DropoffAddress),
		PackageDetails: strings.TrimSpace(details.PackageDetails),
	}

	if err := trimmed.Validate(); err != nil {
		return CreateParcelCommand{}, err
	}

	cmd.details = trimmed
	return cmd, nil
}

func (c CreateParcelCommand) Details() parcel.Details {
	return c.details
}

// Validate ensures the command was created through the constructor.
func (c *CreateParcelCommand) Validate() error {
	return c.guard.Validate(ErrCreateParcelCommandIsNotConstructed)
}
