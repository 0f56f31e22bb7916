// Package errs provides standardized error types for the production scheduling service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a value falls outside its allowed bounds
//   - ObjectNotFoundError: For when an object cannot be found
//   - PreconditionFailedError: For when an operation is not allowed in the current state
//   - PersistenceError: For when the underlying storage rejects a read or write
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// On top of the types, KindOf classifies any error into a machine-discriminable
// Kind so that inbound adapters can choose a distinct path per failure class
// without matching on messages.
package errs
