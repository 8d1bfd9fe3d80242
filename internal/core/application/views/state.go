// Package views implements the three parcel projections shown to users: the
// dispatcher's "new" list, the dispatcher's "assigned" list and a driver's
// own list.
//
// Each view can be refreshed on demand or subscribed to. A subscription
// re-runs the projection on every upstream change and delivers the whole
// result as a replacement of the previous one; subscribers never merge.
//
// Upstream changes come from the store's push channel when it has one
// (ports.ParcelRepository.Watch), otherwise from a polling source such as
// jobs.JobManager.
package views

import "dispatch/internal/core/domain/model/parcel"

// StateKind tags a State.
type StateKind int

const (
	// Loading is delivered once, before the first read completes.
	Loading StateKind = iota

	// Success carries a complete projection.
	Success

	// Error carries a displayable failure message.
	Error
)

func (k StateKind) String() string {
	switch k {
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// State is what a subscriber renders: Loading, Success(parcels) or
// Error(message). Only the field matching Kind is meaningful.
type State struct {
	Kind    StateKind
	Parcels []*parcel.Parcel
	Message string
}

// LoadingState returns the Loading variant.
func LoadingState() State {
	return State{Kind: Loading}
}

// SuccessState returns the Success variant. A nil slice is replaced by an
// empty one so subscribers can tell "no parcels" from "not loaded".
func SuccessState(parcels []*parcel.Parcel) State {
	if parcels == nil {
		parcels = []*parcel.Parcel{}
	}
	return State{Kind: Success, Parcels: parcels}
}

// ErrorState returns the Error variant for err.
func ErrorState(err error) State {
	return State{Kind: Error, Message: err.Error()}
}
