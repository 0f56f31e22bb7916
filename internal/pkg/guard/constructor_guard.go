// Package guard holds the constructor guard used by aggregates, commands and
// queries to tell a value built by its constructor apart from a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when it is called with a nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded as a field and set only by constructors.
//
// Example:
//
//	type AdvanceStepCommand struct {
//	    stepID kernel.UUID
//	    guard  guard.ConstructorGuard
//	}
//
//	func (c AdvanceStepCommand) Validate() error {
//	    return c.guard.Validate(ErrAdvanceStepCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
