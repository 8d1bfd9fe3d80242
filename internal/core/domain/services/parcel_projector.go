package services

import (
	"cmp"
	"slices"

	"dispatch/internal/core/domain/model/parcel"
)

// DriverGroup is the set of parcels currently held by one driver, in the same
// order as the flat assigned projection.
type DriverGroup struct {
	DriverID string
	Parcels  []*parcel.Parcel
}

// ParcelProjector is a domain service that turns a snapshot of parcels into the
// lists shown to dispatchers and drivers.
//
// Ordering rules:
//   - every projection is sorted by createdAt, newest first
//   - Unassigned and AssignedToDriver break ties by parcel id
//   - AssignedToAny breaks ties by driver id, then parcel id
//
// The input slice is never modified. Invalid (unconstructed) parcels are skipped.
//
// Example usage:
//
//	projector := services.NewParcelProjector()
//	fresh := projector.Unassigned(all)
//	mine := projector.AssignedToDriver(all, "driver-42")
type ParcelProjector struct{}

// NewParcelProjector creates a new ParcelProjector instance.
func NewParcelProjector() ParcelProjector {
	return ParcelProjector{}
}

// Unassigned returns the parcels waiting for a dispatcher: status pending and
// no concrete driver.
//
// Parameters:
//   - parcels: a snapshot of every parcel
//
// Returns:
//   - a new slice sorted by createdAt descending, ties by id
func (ParcelProjector) Unassigned(parcels []*parcel.Parcel) []*parcel.Parcel {
	out := filter(parcels, (*parcel.Parcel).IsUnassigned)
	slices.SortStableFunc(out, byNewest)
	return out
}

// AssignedToAny returns every parcel that carries a concrete driver,
// regardless of its status.
//
// Returns:
//   - a new slice sorted by createdAt descending, ties by driver id then parcel id
func (ParcelProjector) AssignedToAny(parcels []*parcel.Parcel) []*parcel.Parcel {
	out := filter(parcels, (*parcel.Parcel).HasDriver)
	slices.SortStableFunc(out, func(a, b *parcel.Parcel) int {
		if c := cmp.Compare(b.CreatedAt(), a.CreatedAt()); c != 0 {
			return c
		}
		da, _ := a.AssignedDriver()
		db, _ := b.AssignedDriver()
		if c := cmp.Compare(da, db); c != 0 {
			return c
		}
		return cmp.Compare(a.ID(), b.ID())
	})
	return out
}

// AssignedToDriver returns the parcels assigned to driverID, regardless of
// their status. A blank driver id yields an empty result.
func (ParcelProjector) AssignedToDriver(parcels []*parcel.Parcel, driverID string) []*parcel.Parcel {
	out := filter(parcels, func(p *parcel.Parcel) bool {
		return p.IsAssignedTo(driverID)
	})
	slices.SortStableFunc(out, byNewest)
	return out
}

// GroupByDriver splits the assigned projection into one group per driver.
// Groups are ordered by driver id; parcels inside a group keep the
// AssignedToAny order.
func (p ParcelProjector) GroupByDriver(parcels []*parcel.Parcel) []DriverGroup {
	index := make(map[string]int)
	var groups []DriverGroup

	for _, item := range p.AssignedToAny(parcels) {
		driverID, _ := item.AssignedDriver()
		i, ok := index[driverID]
		if !ok {
			i = len(groups)
			index[driverID] = i
			groups = append(groups, DriverGroup{DriverID: driverID})
		}
		groups[i].Parcels = append(groups[i].Parcels, item)
	}

	slices.SortFunc(groups, func(a, b DriverGroup) int {
		return cmp.Compare(a.DriverID, b.DriverID)
	})
	return groups
}

func filter(parcels []*parcel.Parcel, keep func(*parcel.Parcel) bool) []*parcel.Parcel {
	out := make([]*parcel.Parcel, 0, len(parcels))
	for _, p := range parcels {
		if p.Validate() != nil {
			continue
		}
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func byNewest(a, b *parcel.Parcel) int {
	if c := cmp.Compare(b.CreatedAt(), a.CreatedAt()); c != 0 {
		return c
	}
	return cmp.Compare(a.ID(), b.ID())
}
