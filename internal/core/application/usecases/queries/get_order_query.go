package queries

import (
	"errors"

	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New("GetOrderQuery must be created via NewGetOrderQuery constructor")

// GetOrderQuery retrieves one order document.
type GetOrderQuery struct {
	orderID string

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID string) (GetOrderQuery, error) {
	if orderID == "" {
		return GetOrderQuery{}, errs.NewValueIsRequiredError("orderID")
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderQuery) OrderID() string {
	return q.orderID
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}
