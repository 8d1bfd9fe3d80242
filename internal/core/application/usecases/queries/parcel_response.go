// Package queries contains read-only operations over parcels and drivers.
// Every handler reads a snapshot through a port and shapes it with
// services.ParcelProjector; none of them writes.
package queries

import (
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/core/domain/services"
)

// ParcelResponse is the flat read model of a parcel.
// AssignedDriver is empty when no driver is assigned; the delivery fields are
// nil until the parcel is delivered.
type ParcelResponse struct {
	ID               string
	SenderName       string
	ReceiverName     string
	ReceiverPhone    string
	PickupAddress    string
	DropoffAddress   string
	PackageDetails   string
	Status           string
	AssignedDriver   string
	CreatedAt        int64
	DeliveredAt      *int64
	DeliveryPhotoURL *string
}

// NewParcelResponse converts an aggregate into its read model.
func NewParcelResponse(p *parcel.Parcel) ParcelResponse {
	d := p.Details()
	driverID, _ := p.AssignedDriver()

	resp := ParcelResponse{
		ID:               p.ID(),
		SenderName:       d.SenderName,
		ReceiverName:     d.ReceiverName,
		ReceiverPhone:    d.ReceiverPhone,
		PickupAddress:    d.PickupAddress,
		DropoffAddress:   d.DropoffAddress,
		PackageDetails:   d.PackageDetails,
		Status:           p.Status().String(),
		AssignedDriver:   driverID,
		CreatedAt:        p.CreatedAt().Millis(),
		DeliveryPhotoURL: p.DeliveryPhotoURL(),
	}
	if at := p.DeliveredAt(); at != nil {
		ms := at.Millis()
		resp.DeliveredAt = &ms
	}
	return resp
}

// NewParcelResponses converts a projection, keeping its order.
func NewParcelResponses(parcels []*parcel.Parcel) []ParcelResponse {
	out := make([]ParcelResponse, 0, len(parcels))
	for _, p := range parcels {
		out = append(out, NewParcelResponse(p))
	}
	return out
}

// DriverGroupResponse is the read model of services.DriverGroup.
type DriverGroupResponse struct {
	DriverID string
	Parcels  []ParcelResponse
}

func newDriverGroupResponses(groups []services.DriverGroup) []DriverGroupResponse {
	out := make([]DriverGroupResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, DriverGroupResponse{
			DriverID: g.DriverID,
			Parcels:  NewParcelResponses(g.Parcels),
		})
	}
	return out
}

// DriverResponse is the read model of an eligible assignee.
type DriverResponse struct {
	ID     string
	Name   string
	Status string
}

func newDriverResponse(d *driver.Driver) DriverResponse {
	return DriverResponse{
		ID:     d.ID(),
		Name:   d.Name(),
		Status: string(d.Status()),
	}
}
