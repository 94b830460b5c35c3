// Package errs provides standardized error types for the dinner service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers two groups of errors:
//   - Input validation errors (ValueIsRequiredError, ValueIsInvalidError,
//     ValueIsOutOfRangeError, ObjectNotFoundError): caller-correctable,
//     returned immediately and never retried.
//   - Operational errors (BusinessRuleError, CapacityExceededError,
//     StorageContentionError, PaymentError): StorageContentionError marks
//     transient lock/busy failures of the single-writer store and is the only
//     kind the orchestration layer retries; the others require the caller to
//     change the request or escalate to an operator.
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// This standardized approach to error handling improves error reporting,
// makes error handling more consistent, and enables better error classification
// and handling throughout the application.
package errs
