package parcel

import (
	"fmt"
	"strings"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of a parcel.
// It implements a forward-only state machine: every status has at most one
// legal successor and a parcel never moves backwards.
//
// State transitions:
//
//	pending ──> assigned ──> picked_up ──> in_transit ──> delivered
//
// Status values are the canonical lower-case tags persisted in parcel records.
// Records written by older clients may carry other spellings ("Delivered",
// "IN_TRANSIT", "picked up"); ParseStatus folds them onto these constants so
// that every comparison in the system is made against a single representation.
type Status string

const (
	// Pending is the initial status of a newly created parcel.
	// A pending parcel without a concrete driver is "unassigned".
	Pending Status = "pending"

	// Assigned indicates a dispatcher has assigned a driver to the parcel.
	Assigned Status = "assigned"

	// PickedUp indicates the driver has collected the parcel from the sender.
	PickedUp Status = "picked_up"

	// InTransit indicates the parcel is on its way to the drop-off address.
	InTransit Status = "in_transit"

	// Delivered is the terminal status. No transition is defined from it.
	Delivered Status = "delivered"
)

// lifecycle lists the statuses in their only legal order.
var lifecycle = []Status{Pending, Assigned, PickedUp, InTransit, Delivered}

// Statuses returns every valid status in lifecycle order.
func Statuses() []Status {
	out := make([]Status, len(lifecycle))
	copy(out, lifecycle)
	return out
}

// ParseStatus converts a raw status string into a Status.
//
// Parsing is case-insensitive and treats spaces and hyphens as underscores,
// so "Picked Up", "PICKED-UP" and "picked_up" all yield PickedUp.
//
// Returns:
//   - the canonical Status on success
//   - ValueIsInvalidError if the string names no known status
//
// Example:
//
//	s, err := parcel.ParseStatus("In Transit")
//	// s == parcel.InTransit, err == nil
func ParseStatus(raw string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.NewReplacer(" ", "_", "-", "_").Replace(normalized)

	for _, s := range lifecycle {
		if string(s) == normalized {
			return s, nil
		}
	}

	return "", errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("unknown status %q, want one of %v", raw, Statuses()))
}

// Validate checks that s is one of the canonical statuses.
func (s Status) Validate() error {
	if s.index() < 0 {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("unknown status %q", string(s)))
	}
	return nil
}

// String returns the canonical tag.
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no transition is defined from s.
func (s Status) IsTerminal() bool {
	return s == Delivered
}

// Next returns the single legal successor of s.
//
// Returns:
//   - (successor, true) for every non-terminal valid status
//   - ("", false) for Delivered and for invalid values
func (s Status) Next() (Status, bool) {
	i := s.index()
	if i < 0 || s.IsTerminal() {
		return "", false
	}
	return lifecycle[i+1], true
}

// ValidateAdvance checks whether moving from s to the requested status is
// legal.
//
// Only the immediate successor is accepted. Duplicates (s -> s), skips
// (picked_up -> delivered), backward moves (picked_up -> pending) and any
// request from the terminal status are rejected.
//
// Returns:
//   - nil if requested is the next status
//   - InvalidTransitionError otherwise
//
// Example:
//
//	err := parcel.PickedUp.ValidateAdvance(parcel.InTransit) // nil
//	err = parcel.PickedUp.ValidateAdvance(parcel.Delivered) // InvalidTransitionError
func (s Status) ValidateAdvance(requested Status) error {
	if err := requested.Validate(); err != nil {
		return errs.NewInvalidTransitionErrorWithCause(string(s), string(requested), err)
	}

	next, ok := s.Next()
	if !ok {
		return errs.NewInvalidTransitionErrorWithCause(
			string(s), string(requested), fmt.Errorf("%s is a terminal status", s),
		)
	}

	if requested != next {
		return errs.NewInvalidTransitionErrorWithCause(
			string(s), string(requested), fmt.Errorf("next status is %s", next),
		)
	}

	return nil
}

// ValidateAssign checks whether a driver may be (re)assigned in status s.
//
// Assignment is allowed from Pending (first assignment) and from Assigned
// (re-assignment, last write wins). Once the driver has picked the parcel up
// the assignment is frozen, since re-assigning would move the status back to
// Assigned.
func (s Status) ValidateAssign() error {
	if s.index() < 0 || !s.Before(PickedUp) {
		return errs.NewInvalidTransitionErrorWithCause(
			string(s), string(Assigned), fmt.Errorf("%s parcels cannot be reassigned", s),
		)
	}
	return nil
}

// Before reports whether s comes earlier in the lifecycle than other.
func (s Status) Before(other Status) bool {
	return s.index() < other.index()
}

func (s Status) index() int {
	for i, candidate := range lifecycle {
		if candidate == s {
			return i
		}
	}
	return -1
}
