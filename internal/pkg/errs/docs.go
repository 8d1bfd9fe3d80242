// Package errs provides standardized error types for the dispatch application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes one error type per failure class of the parcel engine:
//   - ValueIsRequiredError: a required value is missing or blank
//   - ValueIsInvalidError: a value is present but malformed
//   - ObjectNotFoundError: a referenced parcel, driver or document does not resolve
//   - StoreUnavailableError: any I/O, network, permission or timeout failure of the store
//   - InvalidTransitionError: a requested status change is not the legal next step
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Callers classify failures with errors.Is against the sentinels, or errors.As
// against the struct types when they need the details.
package errs
