package http

import (
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/parcel"
)

// Error is the body of every failed response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewParcel is the body of POST /parcels.
type NewParcel struct {
	SenderName     string `json:"senderName" validate:"required"`
	ReceiverName   string `json:"receiverName" validate:"required"`
	ReceiverPhone  string `json:"receiverPhone"`
	PickupAddress  string `json:"pickupAddress" validate:"required"`
	DropoffAddress string `json:"dropoffAddress" validate:"required"`
	PackageDetails string `json:"packageDetails"`
}

// Created is the body of a 201 response.
type Created struct {
	ID string `json:"id"`
}

// Assignment is the body of POST /parcels/{parcelId}/assignment.
type Assignment struct {
	DriverID string `json:"driverId" validate:"required"`
}

// StatusChange is the body of POST /parcels/{parcelId}/status.
type StatusChange struct {
	Status           string  `json:"status" validate:"required"`
	DeliveryPhotoURL *string `json:"deliveryPhotoUrl,omitempty" validate:"omitempty,url"`
}

// Parcel is the JSON form of a parcel. Timestamps are epoch milliseconds.
type Parcel struct {
	ID               string  `json:"id"`
	SenderName       string  `json:"senderName"`
	ReceiverName     string  `json:"receiverName"`
	ReceiverPhone    string  `json:"receiverPhone"`
	PickupAddress    string  `json:"pickupAddress"`
	DropoffAddress   string  `json:"dropoffAddress"`
	PackageDetails   string  `json:"packageDetails"`
	Status           string  `json:"status"`
	AssignedDriver   *string `json:"assignedDriver"`
	CreatedAt        int64   `json:"createdAt"`
	DeliveredAt      *int64  `json:"deliveredAt"`
	DeliveryPhotoURL *string `json:"deliveryPhotoUrl"`
}

// DriverGroup is one driver's share of the assigned list.
type DriverGroup struct {
	DriverID string   `json:"driverId"`
	Parcels  []Parcel `json:"parcels"`
}

// AssignedParcels is the body of GET /parcels/assigned.
type AssignedParcels struct {
	Parcels []Parcel      `json:"parcels"`
	Groups  []DriverGroup `json:"groups"`
}

// Driver is an eligible assignee.
type Driver struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// ViewEvent is the data of one server-sent event.
type ViewEvent struct {
	State   string   `json:"state"`
	Parcels []Parcel `json:"parcels,omitempty"`
	Message string   `json:"message,omitempty"`
}

func toParcel(r queries.ParcelResponse) Parcel {
	out := Parcel{
		ID:               r.ID,
		SenderName:       r.SenderName,
		ReceiverName:     r.ReceiverName,
		ReceiverPhone:    r.ReceiverPhone,
		PickupAddress:    r.PickupAddress,
		DropoffAddress:   r.DropoffAddress,
		PackageDetails:   r.PackageDetails,
		Status:           r.Status,
		CreatedAt:        r.CreatedAt,
		DeliveredAt:      r.DeliveredAt,
		DeliveryPhotoURL: r.DeliveryPhotoURL,
	}
	if r.AssignedDriver != "" {
		driver := r.AssignedDriver
		out.AssignedDriver = &driver
	}
	return out
}

func toParcels(rs []queries.ParcelResponse) []Parcel {
	out := make([]Parcel, 0, len(rs))
	for _, r := range rs {
		out = append(out, toParcel(r))
	}
	return out
}

func fromAggregate(p *parcel.Parcel) Parcel {
	return toParcel(queries.NewParcelResponse(p))
}

func fromAggregates(ps []*parcel.Parcel) []Parcel {
	return toParcels(queries.NewParcelResponses(ps))
}
