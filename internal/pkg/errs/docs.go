// Package errs provides standardized error types for the vendor ordering application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: bad input values
//   - ObjectNotFoundError: an order (or other aggregate) cannot be found
//   - UnknownItemError, UnavailableItemError: an order references a bad menu item
//   - InvalidTransitionError: an order action is not allowed from its current state
//   - AuthorizationError: a caller lacks the capability a command requires
//   - NotificationDeliveryError: a transport failed to deliver a notification
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Callers classify errors with errors.Is against the sentinels, or with IsValidation
// for the three input validation kinds.
package errs
