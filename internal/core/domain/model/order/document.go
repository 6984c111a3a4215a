package order

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// FromFields rebuilds an order snapshot from raw document fields as they come
// out of the document store or the change feed. Missing status and items are
// allowed; malformed ones are not.
func FromFields(id string, fields map[string]any) (*Order, error) {
	status, err := statusFromField(fields[FieldStatus])
	if err != nil {
		return nil, err
	}

	items, err := itemsFromField(fields[FieldItems])
	if err != nil {
		return nil, err
	}

	return NewOrder(id, status, items)
}

// Fields renders the snapshot back into document fields.
func (o *Order) Fields() map[string]any {
	items := make([]any, 0, len(o.items))
	for _, item := range o.items {
		m := item.Attributes()
		if item.fulfillmentStatus != "" {
			m[FieldFulfillmentStatus] = item.fulfillmentStatus.String()
		}
		items = append(items, m)
	}

	fields := map[string]any{FieldItems: items}
	if !o.status.IsEmpty() {
		fields[FieldStatus] = o.status.String()
	}
	return fields
}

// NewItemWithAttributes creates an item carrying extra attributes such as name or quantity.
func NewItemWithAttributes(fulfillmentStatus FulfillmentStatus, attributes map[string]any) Item {
	item := NewItem(fulfillmentStatus)
	item.attributes = make(map[string]any, len(attributes))
	for k, v := range attributes {
		if k == FieldFulfillmentStatus {
			continue
		}
		item.attributes[k] = v
	}
	return item
}

func statusFromField(raw any) (Status, error) {
	switch v := raw.(type) {
	case nil:
		return "", nil
	case string:
		return Status(v), nil
	case Status:
		return v, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause(FieldStatus, fmt.Errorf("%T is not a string", raw))
	}
}

func itemsFromField(raw any) ([]Item, error) {
	var list []any
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []any:
		list = v
	case []map[string]any:
		list = make([]any, len(v))
		for i := range v {
			list[i] = v[i]
		}
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause(FieldItems, fmt.Errorf("%T is not a list", raw))
	}

	items := make([]Item, 0, len(list))
	for i, entry := range list {
		attrs, ok := entry.(map[string]any)
		if !ok {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("%s[%d]", FieldItems, i),
				fmt.Errorf("%T is not an object", entry),
			)
		}

		var fulfillment FulfillmentStatus
		switch fs := attrs[FieldFulfillmentStatus].(type) {
		case nil:
		case string:
			fulfillment = FulfillmentStatus(fs)
		default:
			return nil, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("%s[%d].%s", FieldItems, i, FieldFulfillmentStatus),
				fmt.Errorf("%T is not a string", fs),
			)
		}

		items = append(items, NewItemWithAttributes(fulfillment, attrs))
	}
	return items, nil
}
