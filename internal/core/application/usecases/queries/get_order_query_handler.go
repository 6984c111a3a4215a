package queries

import (
	"context"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
)

// OrderView is the read model of an order document: the raw fields plus the
// automation metadata pulled out of them.
type OrderView struct {
	ID                string
	Status            order.Status
	StatusAutomatedBy string
	Fields            map[string]any
}

// GetOrderQueryHandler reads order documents.
// Returns errs.ErrObjectNotFound for an unknown order.
type GetOrderQueryHandler struct {
	store ports.DocumentStore
}

func NewGetOrderQueryHandler(store ports.DocumentStore) GetOrderQueryHandler {
	return GetOrderQueryHandler{store: store}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	fields, err := h.store.Get(ctx, order.Collection, query.OrderID())
	if err != nil {
		return OrderView{}, err
	}

	view := OrderView{ID: query.OrderID(), Fields: fields}
	if s, ok := fields[order.FieldStatus].(string); ok {
		view.Status = order.Status(s)
	}
	if by, ok := fields[order.FieldStatusAutomatedBy].(string); ok {
		view.StatusAutomatedBy = by
	}
	return view, nil
}
