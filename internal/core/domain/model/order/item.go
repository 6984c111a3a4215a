package order

// Item is a line entry of an order. Only the fulfillment status matters to the
// automation; the remaining item attributes are kept verbatim so a snapshot can
// be written back without loss.
type Item struct {
	fulfillmentStatus FulfillmentStatus
	attributes        map[string]any
}

// NewItem creates an item with the given fulfillment status and no extra attributes.
func NewItem(fulfillmentStatus FulfillmentStatus) Item {
	return Item{fulfillmentStatus: fulfillmentStatus}
}

// FulfillmentStatus returns the item's fulfillment label ("" when unset).
func (i Item) FulfillmentStatus() FulfillmentStatus {
	return i.fulfillmentStatus
}

// Is reports whether the item carries the given fulfillment status.
func (i Item) Is(status FulfillmentStatus) bool {
	return i.fulfillmentStatus == status
}

// Attributes returns a copy of the attributes other than the fulfillment status.
func (i Item) Attributes() map[string]any {
	out := make(map[string]any, len(i.attributes))
	for k, v := range i.attributes {
		out[k] = v
	}
	return out
}
