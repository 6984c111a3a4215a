// Package guard lets value objects, commands and queries detect whether they
// were built through their constructor or are an unusable zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in types whose zero value is invalid.
// Only NewConstructorGuard produces a guard that passes validation.
//
// Example:
//
//	type AutomateOrderStatusCommand struct {
//	    orderID string
//	    guard   guard.ConstructorGuard
//	}
//
//	func (c AutomateOrderStatusCommand) Validate() error {
//	    return c.guard.Validate(ErrAutomateOrderStatusCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// for a zero-value guard and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
