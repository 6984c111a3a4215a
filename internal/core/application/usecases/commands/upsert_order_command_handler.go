package commands

import (
	"context"
	"fmt"

	"orderflow/internal/core/domain/model/order"
)

// UpsertOrderCommandHandler stores order documents.
type UpsertOrderCommandHandler struct {
	uowFactory UoWFactory
}

func NewUpsertOrderCommandHandler(uowFactory UoWFactory) UpsertOrderCommandHandler {
	return UpsertOrderCommandHandler{uowFactory: uowFactory}
}

func (h UpsertOrderCommandHandler) Handle(ctx context.Context, command UpsertOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.DocumentStore().Set(ctx, order.Collection, command.OrderID(), command.Fields()); err != nil {
		return fmt.Errorf("store order %s: %w", command.OrderID(), err)
	}

	return uow.Commit(ctx)
}
