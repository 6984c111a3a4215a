package commands

import (
	"errors"

	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrAutomateOrderStatusCommandIsNotConstructed = errors.New(
	"AutomateOrderStatusCommand must be created via NewAutomateOrderStatusCommand constructor",
)

// AutomateOrderStatusCommand carries one modification of an orders document:
// the document id and its fields before and after the change.
//
// Example:
//
//	cmd, err := NewAutomateOrderStatusCommand(change.DocumentID, change.Before, change.After)
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
type AutomateOrderStatusCommand struct {
	orderID string
	before  map[string]any
	after   map[string]any

	guard guard.ConstructorGuard
}

// NewAutomateOrderStatusCommand creates a command for a single order change.
// The before snapshot may be nil; the after snapshot is required.
func NewAutomateOrderStatusCommand(
	orderID string,
	before map[string]any,
	after map[string]any,
) (AutomateOrderStatusCommand, error) {
	var err error
	if orderID == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("orderID"))
	}
	if after == nil {
		err = errors.Join(err, errs.NewValueIsRequiredError("after"))
	}
	if err != nil {
		return AutomateOrderStatusCommand{}, err
	}

	return AutomateOrderStatusCommand{
		orderID: orderID,
		before:  before,
		after:   after,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the id of the changed order.
func (c AutomateOrderStatusCommand) OrderID() string {
	return c.orderID
}

// Before returns the document fields before the change, nil when unknown.
func (c AutomateOrderStatusCommand) Before() map[string]any {
	return c.before
}

// After returns the document fields after the change.
func (c AutomateOrderStatusCommand) After() map[string]any {
	return c.after
}

// Validate ensures the command was created through the constructor.
// Returns ErrAutomateOrderStatusCommandIsNotConstructed if validation fails.
func (c AutomateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrAutomateOrderStatusCommandIsNotConstructed)
}
