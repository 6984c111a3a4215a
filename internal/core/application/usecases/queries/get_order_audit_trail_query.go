// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var (
	ErrGetOrderAuditTrailQueryIsNotConstructed = errors.New(
		"GetOrderAuditTrailQuery must be created via NewGetOrderAuditTrailQuery constructor",
	)
)

// GetOrderAuditTrailQuery retrieves the audit entries written for one order.
//
// Example:
//
//	query, err := NewGetOrderAuditTrailQuery("ord-42")
//	if err != nil {
//	    return err
//	}
//
//	entries, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve audit trail: %w", err)
//	}
//
//	for _, e := range entries {
//	    fmt.Printf("%s %s\n", e.Timestamp, e.Action)
//	}
type GetOrderAuditTrailQuery struct {
	orderID string

	guard guard.ConstructorGuard
}

// NewGetOrderAuditTrailQuery creates a query for the audit trail of orderID.
func NewGetOrderAuditTrailQuery(orderID string) (GetOrderAuditTrailQuery, error) {
	if orderID == "" {
		return GetOrderAuditTrailQuery{}, errs.NewValueIsRequiredError("orderID")
	}

	return GetOrderAuditTrailQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderAuditTrailQuery) OrderID() string {
	return q.orderID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderAuditTrailQueryIsNotConstructed if validation fails.
func (q GetOrderAuditTrailQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderAuditTrailQueryIsNotConstructed)
}
