// Package parcelrepo maps parcel records to and from the Parcel aggregate and
// implements ports.ParcelRepository on top of a ports.DocumentStore.
//
// Stored parcels were written by several generations of clients, so reading
// is lenient: missing or odd optional fields get defaults, a few legacy field
// names are still understood, and decoding a record never fails because of
// its content. Writing always produces the current, fully keyed shape.
package parcelrepo

import (
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/core/ports"

	"github.com/spf13/cast"
)

// Collection is the document collection holding parcels.
const Collection = "parcels"

// Record field names.
const (
	FieldSenderName       = "senderName"
	FieldReceiverName     = "receiverName"
	FieldReceiverPhone    = "receiverPhone"
	FieldPickupAddress    = "pickupAddress"
	FieldDropoffAddress   = "dropoffAddress"
	FieldPackageDetails   = "packageDetails"
	FieldStatus           = "status"
	FieldAssignedDriver   = "assignedDriver"
	FieldCreatedAt        = "createdAt"
	FieldDeliveredAt      = "deliveredAt"
	FieldDeliveryPhotoURL = "deliveryPhotoUrl"
)

// Legacy spellings, checked after the current name.
var (
	driverAliases      = []string{FieldAssignedDriver, "assignedDriverId", "driverId"}
	createdAtAliases   = []string{FieldCreatedAt, "created_at", "timestamp"}
	deliveredAtAliases = []string{FieldDeliveredAt, "delivered_at"}
	photoAliases       = []string{FieldDeliveryPhotoURL, "photoUrl", "proofOfDeliveryUrl"}
)

// ToRecord renders a parcel in the current record shape. Every field is
// present: a parcel without a driver stores parcel.UnassignedDriver, and
// delivery fields hold nil and "" until delivery.
func ToRecord(p *parcel.Parcel) ports.Record {
	details := p.Details()

	driver, ok := p.AssignedDriver()
	if !ok {
		driver = parcel.UnassignedDriver
	}

	rec := ports.Record{
		FieldSenderName:       details.SenderName,
		FieldReceiverName:     details.ReceiverName,
		FieldReceiverPhone:    details.ReceiverPhone,
		FieldPickupAddress:    details.PickupAddress,
		FieldDropoffAddress:   details.DropoffAddress,
		FieldPackageDetails:   details.PackageDetails,
		FieldStatus:           p.Status().String(),
		FieldAssignedDriver:   driver,
		FieldCreatedAt:        p.CreatedAt().Millis(),
		FieldDeliveredAt:      nil,
		FieldDeliveryPhotoURL: "",
	}

	if at := p.DeliveredAt(); at != nil {
		rec[FieldDeliveredAt] = at.Millis()
	}
	if url := p.DeliveryPhotoURL(); url != nil {
		rec[FieldDeliveryPhotoURL] = *url
	}

	return rec
}

// FromRecord rebuilds a parcel from a stored record.
//
// Decoding rules:
//   - missing or non-text text fields become ""
//   - a missing or unknown status becomes pending; known statuses are matched
//     case-insensitively
//   - a missing, zero or unparseable createdAt becomes now
//   - timestamps may be epoch milliseconds of any numeric type, numeric
//     strings, RFC 3339 strings, time.Time, or {seconds, nanoseconds} maps
//
// The only error is a blank id.
func FromRecord(id string, rec ports.Record, now kernel.Timestamp) (*parcel.Parcel, error) {
	details := parcel.Details{
		SenderName:     text(rec, FieldSenderName),
		ReceiverName:   text(rec, FieldReceiverName),
		ReceiverPhone:  text(rec, FieldReceiverPhone),
		PickupAddress:  text(rec, FieldPickupAddress),
		DropoffAddress: text(rec, FieldDropoffAddress),
		PackageDetails: text(rec, FieldPackageDetails),
	}

	status, err := parcel.ParseStatus(text(rec, FieldStatus))
	if err != nil {
		status = parcel.Pending
	}

	createdAt, ok := timestamp(rec, createdAtAliases...)
	if !ok {
		createdAt = now
	}

	var deliveredAt *kernel.Timestamp
	if at, ok := timestamp(rec, deliveredAtAliases...); ok {
		deliveredAt = &at
	}

	var photoURL *string
	if url := strings.TrimSpace(text(rec, photoAliases...)); url != "" {
		photoURL = &url
	}

	return parcel.RestoreParcel(
		id,
		details,
		status,
		text(rec, driverAliases...),
		createdAt,
		deliveredAt,
		photoURL,
	)
}

// text returns the first non-blank string value among keys.
func text(rec ports.Record, keys ...string) string {
	for _, key := range keys {
		v, ok := rec[key]
		if !ok || v == nil {
			continue
		}
		switch v.(type) {
		case map[string]any, []any:
			continue
		}
		s, err := cast.ToStringE(v)
		if err != nil || strings.TrimSpace(s) == "" {
			continue
		}
		return s
	}
	return ""
}

// timestamp returns the first positive instant among keys.
func timestamp(rec ports.Record, keys ...string) (kernel.Timestamp, bool) {
	for _, key := range keys {
		v, ok := rec[key]
		if !ok || v == nil {
			continue
		}
		if ts, ok := decodeTimestamp(v); ok && ts > 0 {
			return ts, true
		}
	}
	return 0, false
}

func decodeTimestamp(v any) (kernel.Timestamp, bool) {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return 0, false
		}
		return kernel.TimestampFromTime(t), true
	case string:
		s := strings.TrimSpace(t)
		if ms, err := cast.ToInt64E(s); err == nil {
			return kernel.Timestamp(ms), true
		}
		if ms, err := cast.ToFloat64E(s); err == nil {
			return kernel.Timestamp(int64(ms)), true
		}
		if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return kernel.TimestampFromTime(parsed), true
		}
		return 0, false
	case map[string]any:
		return decodeSecondsMap(t)
	case bool:
		return 0, false
	}

	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, false
	}
	return kernel.Timestamp(int64(f)), true
}

// decodeSecondsMap reads {seconds, nanoseconds} objects, the serialized form
// of server timestamps in older exports.
func decodeSecondsMap(m map[string]any) (kernel.Timestamp, bool) {
	secs, ok := firstOf(m, "seconds", "_seconds")
	if !ok {
		return 0, false
	}
	s, err := cast.ToInt64E(secs)
	if err != nil {
		return 0, false
	}

	var ns int64
	if raw, ok := firstOf(m, "nanoseconds", "_nanoseconds"); ok {
		ns = cast.ToInt64(raw)
	}
	return kernel.TimestampFromTime(time.Unix(s, ns)), true
}

func firstOf(m map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}
