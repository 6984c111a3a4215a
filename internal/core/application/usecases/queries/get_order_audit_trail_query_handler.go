package queries

import (
	"context"

	"orderflow/internal/core/domain/model/audit"
	"orderflow/internal/core/ports"
)

// GetOrderAuditTrailQueryHandler reads an order's audit entries in append order.
//
// Example:
//
//	handler := NewGetOrderAuditTrailQueryHandler(finder)
//	query, _ := NewGetOrderAuditTrailQuery("ord-42")
//
//	entries, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get audit trail: %v", err)
//	    return err
//	}
//
//	fmt.Printf("Found %d entries\n", len(entries))
type GetOrderAuditTrailQueryHandler struct {
	finder ports.DocumentFinder
}

// NewGetOrderAuditTrailQueryHandler creates a handler reading through finder.
func NewGetOrderAuditTrailQueryHandler(finder ports.DocumentFinder) GetOrderAuditTrailQueryHandler {
	return GetOrderAuditTrailQueryHandler{finder: finder}
}

// Handle returns the entries of the queried order, oldest first. An order
// without entries yields an empty slice.
func (h GetOrderAuditTrailQueryHandler) Handle(
	ctx context.Context,
	query GetOrderAuditTrailQuery,
) ([]audit.Entry, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	docs, err := h.finder.FindByField(ctx, audit.Collection, audit.FieldOrderID, query.OrderID())
	if err != nil {
		return nil, err
	}

	entries := make([]audit.Entry, 0, len(docs))
	for _, doc := range docs {
		entry, entryErr := audit.FromFields(doc.ID, doc.Fields)
		if entryErr != nil {
			return nil, entryErr
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
