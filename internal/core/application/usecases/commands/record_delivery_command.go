package commands

import (
	"errors"
	"strings"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrRecordDeliveryCommandIsNotConstructed = errors.New(
	"RecordDeliveryCommand must be created via NewRecordDeliveryCommand constructor",
)

// RecordDeliveryCommand completes a parcel with a proof-of-delivery photo.
//
// Example:
//
//	cmd, err := NewRecordDeliveryCommand("parcel-1", "image/jpeg", photoBytes)
//	if err != nil {
//	    return err
//	}
//	delivered, err := handler.Handle(ctx, cmd)
type RecordDeliveryCommand struct { //nolint:recvcheck //using for validation
	parcelID    string
	contentType string
	photo       []byte

	guard guard.ConstructorGuard
}

// NewRecordDeliveryCommand creates a validated command. The photo must be
// non-empty; contentType is checked by the uploader.
func NewRecordDeliveryCommand(parcelID, contentType string, photo []byte) (RecordDeliveryCommand, error) {
	cmd := RecordDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setPhoto(contentType, photo),
	); err != nil {
		return RecordDeliveryCommand{}, err
	}

	return cmd, nil
}

func (c RecordDeliveryCommand) ParcelID() string {
	return c.parcelID
}

func (c RecordDeliveryCommand) ContentType() string {
	return c.contentType
}

func (c RecordDeliveryCommand) Photo() []byte {
	return c.photo
}

// Validate ensures the command was created through the constructor.
func (c *RecordDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrRecordDeliveryCommandIsNotConstructed)
}

func (c *RecordDeliveryCommand) setParcelID(parcelID string) error {
	trimmed := strings.TrimSpace(parcelID)
	if trimmed == "" {
		return errs.NewValueIsRequiredError("parcelId")
	}
	c.parcelID = trimmed
	return nil
}

func (c *RecordDeliveryCommand) setPhoto(contentType string, photo []byte) error {
	if len(photo) == 0 {
		return errs.NewValueIsRequiredError("photo")
	}
	c.contentType = strings.TrimSpace(contentType)
	c.photo = photo
	return nil
}
