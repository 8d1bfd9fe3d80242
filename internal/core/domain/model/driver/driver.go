package driver

import (
	"errors"
	"fmt"
	"strings"

	"dispatch/internal/pkg/errs"
)

// Status is the self-reported availability of a driver.
type Status string

const (
	OffDuty     Status = "OFF_DUTY"
	Available   Status = "AVAILABLE"
	OnDelivery  Status = "ON_DELIVERY"
	Unavailable Status = "UNAVAILABLE"
)

var statuses = []Status{OffDuty, Available, OnDelivery, Unavailable}

// ErrDriverIsNotConstructed is returned when a Driver instance was not created
// through RestoreDriver.
var ErrDriverIsNotConstructed = errors.New("Driver must be created via RestoreDriver constructor")

// ParseStatus converts a raw status string into a Status. Matching is
// case-insensitive and accepts spaces or hyphens for underscores.
func ParseStatus(raw string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	normalized = strings.NewReplacer(" ", "_", "-", "_").Replace(normalized)

	for _, s := range statuses {
		if string(s) == normalized {
			return s, nil
		}
	}
	return "", errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("unknown driver status %q", raw))
}

// String returns the canonical tag.
func (s Status) String() string {
	return string(s)
}

// IsAvailable reports whether a driver in this status may be given new parcels.
func (s Status) IsAvailable() bool {
	return s == Available
}

// Driver is a courier account as seen by dispatch.
type Driver struct {
	id            string
	name          string
	status        Status
	isConstructed bool
}

// RestoreDriver rebuilds a driver from a stored user record.
//
// Parameters:
//   - id: the account id (required)
//   - name: display name, may be blank on legacy records
//   - status: a parsed Status
//
// Returns:
//   - *Driver on success
//   - ValueIsRequiredError for a blank id, ValueIsInvalidError for an unknown status
func RestoreDriver(id, name string, status Status) (*Driver, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errs.NewValueIsRequiredError("id")
	}
	parsed, err := ParseStatus(string(status))
	if err != nil {
		return nil, err
	}

	return &Driver{
		id:            id,
		name:          strings.TrimSpace(name),
		status:        parsed,
		isConstructed: true,
	}, nil
}

// Validate ensures the Driver instance was properly constructed.
func (d *Driver) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDriverIsNotConstructed
	}
	return nil
}

func (d *Driver) ID() string {
	return d.id
}

func (d *Driver) Name() string {
	return d.name
}

func (d *Driver) Status() Status {
	return d.status
}

// IsAvailable reports whether the driver can be offered as an assignee.
func (d *Driver) IsAvailable() bool {
	return d.status.IsAvailable()
}
