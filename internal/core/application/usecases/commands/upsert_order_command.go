package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"
)

var ErrUpsertOrderCommandIsNotConstructed = errors.New(
	"UpsertOrderCommand must be created via NewUpsertOrderCommand constructor",
)

// UpsertOrderCommand writes a complete order document.
// Replacing an existing order is a modification and reaches the change feed.
type UpsertOrderCommand struct {
	orderID string
	fields  map[string]any

	guard guard.ConstructorGuard
}

// NewUpsertOrderCommand creates an upsert command. The fields must decode as an
// order: a string status and a list of item objects, both optional.
func NewUpsertOrderCommand(orderID string, fields map[string]any) (UpsertOrderCommand, error) {
	if _, err := order.FromFields(orderID, fields); err != nil {
		return UpsertOrderCommand{}, err
	}

	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}

	return UpsertOrderCommand{
		orderID: orderID,
		fields:  copied,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UpsertOrderCommand) OrderID() string {
	return c.orderID
}

func (c UpsertOrderCommand) Fields() map[string]any {
	return c.fields
}

// Validate ensures the command was created through the constructor.
func (c UpsertOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpsertOrderCommandIsNotConstructed)
}
