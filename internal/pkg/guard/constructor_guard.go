// Package guard provides ConstructorGuard, a marker that distinguishes values
// built through their constructor from zero values.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the guarded value is
// a zero value and no specific error was supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in commands and queries so handlers can reject
// values that bypassed their constructor and therefore their validation.
//
// Example:
//
//	type AssignDriverCommand struct {
//	    parcelID string
//	    driverID string
//	    guard    guard.ConstructorGuard
//	}
//
//	func (c AssignDriverCommand) Validate() error {
//	    return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard. For a zero value it returns
// validationError, or ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
