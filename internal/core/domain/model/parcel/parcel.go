package parcel

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// UnassignedDriver is the sentinel persisted in assignedDriver when a parcel
// has no driver. Older records may instead omit the field or store a blank
// string; all three mean the same thing.
const UnassignedDriver = "UNASSIGNED"

var (
	// ErrParcelIsNotConstructed is returned when a Parcel instance was not created
	// through NewParcel or RestoreParcel.
	ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel or RestoreParcel constructor")
)

// Details holds the free-text description of a shipment. It is set when the
// parcel is created and never edited afterwards.
type Details struct {
	SenderName     string
	ReceiverName   string
	ReceiverPhone  string
	PickupAddress  string
	DropoffAddress string
	PackageDetails string
}

// Validate checks the fields a dispatcher must fill in to create a parcel.
// ReceiverPhone and PackageDetails are optional.
func (d Details) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"senderName", d.SenderName},
		{"receiverName", d.ReceiverName},
		{"pickupAddress", d.PickupAddress},
		{"dropoffAddress", d.DropoffAddress},
	}

	var joined []error
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			joined = append(joined, errs.NewValueIsRequiredError(field.name))
		}
	}
	return errors.Join(joined...)
}

// Parcel is the aggregate root of the dispatch domain: a single shipment
// tracked from creation through pickup to delivery.
//
// Parcel follows these invariants:
//   - id is assigned by the store when the parcel is first persisted and never changes
//   - status only moves forward along pending -> assigned -> picked_up -> in_transit -> delivered
//   - a driver and the Assigned status are set together by AssignTo
//   - deliveredAt and deliveryPhotoURL are only set by the transition to Delivered
//
// The struct keeps its fields private; state changes go through AssignTo and
// Advance, which validate before mutating.
type Parcel struct {
	// id is the store-assigned identifier; empty until the parcel is persisted
	id string

	// details is the immutable shipment description
	details Details

	// status is the current lifecycle state
	status Status

	// assignedDriver is the normalized driver id; empty when unassigned
	assignedDriver string

	// createdAt is the creation instant, the primary sort key of every list view
	createdAt kernel.Timestamp

	// deliveredAt is set only on delivery
	deliveredAt *kernel.Timestamp

	// deliveryPhotoURL is set only on delivery, and only if a photo was supplied
	deliveryPhotoURL *string

	// isConstructed ensures the parcel was created via a constructor
	isConstructed bool
}

// NewParcel creates a parcel that has not been persisted yet.
//
// Parameters:
//   - details: the shipment description; sender, receiver, pickup and drop-off are required
//   - createdAt: the creation instant
//
// Returns:
//   - *Parcel in Pending status with no driver and an empty id
//   - error: joined ValueIsRequiredErrors for every blank required field
//
// Example:
//
//	p, err := parcel.NewParcel(parcel.Details{
//	    SenderName:     "Acme",
//	    ReceiverName:   "Jane",
//	    PickupAddress:  "1 Depot Rd",
//	    DropoffAddress: "9 Elm St",
//	}, clock.Now())
//	if err != nil {
//	    // Handle validation error
//	}
func NewParcel(details Details, createdAt kernel.Timestamp) (*Parcel, error) {
	if err := details.Validate(); err != nil {
		return nil, err
	}

	return &Parcel{
		details:       details,
		status:        Pending,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// RestoreParcel rebuilds a persisted parcel.
//
// Unlike NewParcel it does not enforce creation-time validation: records
// written by older clients may lack fields, and reading them must not fail.
// The driver value is normalized, so the sentinel UnassignedDriver and blank
// strings both restore as "no driver".
//
// Parameters:
//   - id: the store identifier (required)
//   - details: the shipment description as stored
//   - status: the stored status (must be valid)
//   - driver: the stored driver value, possibly blank or the sentinel
//   - createdAt: the stored creation instant
//   - deliveredAt, deliveryPhotoURL: the stored delivery data, nil when absent
//
// Returns:
//   - *Parcel on success
//   - error if id is blank or status is invalid
func RestoreParcel(
	id string,
	details Details,
	status Status,
	driver string,
	createdAt kernel.Timestamp,
	deliveredAt *kernel.Timestamp,
	deliveryPhotoURL *string,
) (*Parcel, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errs.NewValueIsRequiredError("id")
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	p := &Parcel{
		id:             id,
		details:        details,
		status:         status,
		assignedDriver: NormalizeDriver(driver),
		createdAt:      createdAt,
		isConstructed:  true,
	}

	// Delivery data only exists on delivered parcels.
	if status == Delivered {
		p.deliveredAt = deliveredAt
		p.deliveryPhotoURL = deliveryPhotoURL
	}

	return p, nil
}

// NormalizeDriver maps every persisted "no driver" representation (blank,
// whitespace, the UnassignedDriver sentinel) to the empty string and trims
// concrete ids.
func NormalizeDriver(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == UnassignedDriver {
		return ""
	}
	return trimmed
}

// Validate ensures the Parcel instance was properly constructed.
func (p *Parcel) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrParcelIsNotConstructed
	}
	return nil
}

// ID returns the store-assigned identifier, empty for unsaved parcels.
func (p *Parcel) ID() string {
	return p.id
}

// Details returns the shipment description.
func (p *Parcel) Details() Details {
	return p.details
}

// Status returns the current lifecycle status.
func (p *Parcel) Status() Status {
	return p.status
}

// AssignedDriver returns the driver id and true when a concrete driver is assigned.
func (p *Parcel) AssignedDriver() (string, bool) {
	return p.assignedDriver, p.assignedDriver != ""
}

// HasDriver reports whether a concrete driver id is present.
func (p *Parcel) HasDriver() bool {
	return p.assignedDriver != ""
}

// IsAssignedTo reports whether the parcel is assigned to driverID.
func (p *Parcel) IsAssignedTo(driverID string) bool {
	normalized := NormalizeDriver(driverID)
	return normalized != "" && p.assignedDriver == normalized
}

// IsUnassigned reports whether the parcel is waiting for a dispatcher: it is
// Pending and carries no concrete driver.
func (p *Parcel) IsUnassigned() bool {
	return p.status == Pending && !p.HasDriver()
}

// CreatedAt returns the creation instant.
func (p *Parcel) CreatedAt() kernel.Timestamp {
	return p.createdAt
}

// DeliveredAt returns the delivery instant, or nil before delivery.
func (p *Parcel) DeliveredAt() *kernel.Timestamp {
	if p.deliveredAt == nil {
		return nil
	}
	v := *p.deliveredAt
	return &v
}

// DeliveryPhotoURL returns the proof-of-delivery URL, or nil when none was recorded.
func (p *Parcel) DeliveryPhotoURL() *string {
	if p.deliveryPhotoURL == nil {
		return nil
	}
	v := *p.deliveryPhotoURL
	return &v
}

// AssignTo assigns a driver and moves the parcel to Assigned in one step.
//
// This method enforces the following business rules:
//   - driverID must not be blank or the unassigned sentinel
//   - the parcel must be Pending or Assigned (re-assignment overwrites the driver)
//
// Parameters:
//   - driverID: the driver to assign
//
// Returns:
//   - nil on success
//   - ValueIsRequiredError for a blank driver id
//   - InvalidTransitionError once the parcel has been picked up
//
// Example:
//
//	if err := p.AssignTo("driver-42"); err != nil {
//	    // Handle assignment failure
//	}
func (p *Parcel) AssignTo(driverID string) error {
	normalized := NormalizeDriver(driverID)
	if normalized == "" {
		return errs.NewValueIsRequiredError("driverId")
	}

	if err := p.status.ValidateAssign(); err != nil {
		return err
	}

	p.assignedDriver = normalized
	p.status = Assigned
	return nil
}

// Advance moves the parcel to the requested status.
//
// This method enforces the following business rules:
//   - requested must be the immediate successor of the current status
//   - Pending -> Assigned is only possible when a driver is already on the
//     record; the regular path is AssignTo
//   - entering Delivered records deliveredAt = now and the optional photo URL
//   - every other transition changes the status only
//
// Parameters:
//   - requested: the target status
//   - now: the transition instant, used for deliveredAt
//   - photoURL: optional proof-of-delivery URL, only used for Delivered
//
// Returns:
//   - nil on success
//   - InvalidTransitionError if requested is not the next status
//   - ValueIsRequiredError for Pending -> Assigned without a driver
//
// Example:
//
//	url := "https://cdn.example.com/pod/p1.jpg"
//	err := p.Advance(parcel.Delivered, clock.Now(), &url)
func (p *Parcel) Advance(requested Status, now kernel.Timestamp, photoURL *string) error {
	if err := p.status.ValidateAdvance(requested); err != nil {
		return err
	}

	if requested == Assigned && !p.HasDriver() {
		return errs.NewValueIsRequiredError("assignedDriver")
	}

	if requested == Delivered {
		deliveredAt := now
		p.deliveredAt = &deliveredAt
		if photoURL != nil && strings.TrimSpace(*photoURL) != "" {
			url := strings.TrimSpace(*photoURL)
			p.deliveryPhotoURL = &url
		}
	}

	p.status = requested
	return nil
}

// WithID returns a copy of the parcel carrying the store-assigned id.
// Used by repositories right after the first write.
func (p *Parcel) WithID(id string) (*Parcel, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errs.NewValueIsRequiredError("id")
	}
	cp := *p
	cp.id = id
	return &cp, nil
}
