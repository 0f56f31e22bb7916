// Package kernel provides the shared domain primitives of the production
// scheduling core.
//
// The package includes:
//   - UUID: the identifier value object used by every aggregate
//
// Primitives are immutable values; a zero value is never valid and is rejected
// by Validate so that aggregates cannot be built from uninitialised identifiers.
package kernel
