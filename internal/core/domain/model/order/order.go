package order

import (
	"errors"

	"orderflow/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through NewOrder or FromFields.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Collection is the document collection holding orders.
const Collection = "orders"

// Document field names used by the automation.
const (
	FieldStatus            = "status"
	FieldItems             = "items"
	FieldFulfillmentStatus = "fulfillmentStatus"
	FieldStatusAutomatedBy = "statusAutomatedBy"
	FieldStatusAutomatedAt = "statusAutomatedAt"
)

// Order is a snapshot of an orders document.
//
// Order follows these invariants:
//   - Must have a non-empty identifier
//   - Items keep their document order
//   - Can only be created through NewOrder or FromFields
type Order struct {
	id     string
	status Status
	items  []Item

	isConstructed bool
}

// NewOrder creates an order snapshot.
//
// Example:
//
//	o, err := order.NewOrder("ord-42", order.Pending, []order.Item{
//	    order.NewItem(order.ItemFulfilled),
//	    order.NewItem(order.ItemBackordered),
//	})
func NewOrder(id string, status Status, items []Item) (*Order, error) {
	o := &Order{
		status:        status,
		isConstructed: true,
	}

	if err := o.setID(id); err != nil {
		return nil, err
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)

	return o, nil
}

// Validate ensures the Order was built through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the order identifier.
func (o *Order) ID() string {
	return o.id
}

// Status returns the status label observed in the snapshot.
func (o *Order) Status() Status {
	return o.status
}

// Items returns a copy of the order's line items.
func (o *Order) Items() []Item {
	out := make([]Item, len(o.items))
	copy(out, o.items)
	return out
}

// HasItems reports whether the order has at least one line item.
func (o *Order) HasItems() bool {
	return len(o.items) > 0
}

// AllItems reports whether every item has the given fulfillment status.
// It is false for an order without items.
func (o *Order) AllItems(status FulfillmentStatus) bool {
	if !o.HasItems() {
		return false
	}
	for _, item := range o.items {
		if !item.Is(status) {
			return false
		}
	}
	return true
}

// AnyItem reports whether at least one item has the given fulfillment status.
func (o *Order) AnyItem(status FulfillmentStatus) bool {
	for _, item := range o.items {
		if item.Is(status) {
			return true
		}
	}
	return false
}

func (o *Order) setID(id string) error {
	if id == "" {
		return errs.NewValueIsRequiredError("order id")
	}
	o.id = id
	return nil
}
