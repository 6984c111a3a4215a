package queries_test

import (
	"testing"

	"orderflow/internal/adapters/out/memory"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrderQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore(nil)
	require.NoError(t, store.Set(ctx, "orders", "ord-1", map[string]any{
		"status":            "fulfilled",
		"statusAutomatedBy": "cloud",
		"items":             []any{map[string]any{"fulfillmentStatus": "fulfilled"}},
	}))

	query, err := queries.NewGetOrderQuery("ord-1")
	require.NoError(t, err)

	view, err := queries.NewGetOrderQueryHandler(store).Handle(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, "ord-1", view.ID)
	assert.Equal(t, order.Fulfilled, view.Status)
	assert.Equal(t, "cloud", view.StatusAutomatedBy)
	assert.Len(t, view.Fields["items"], 1)
}

func TestGetOrderQueryHandler_Handle_NotFound(t *testing.T) {
	query, err := queries.NewGetOrderQuery("missing")
	require.NoError(t, err)

	_, err = queries.NewGetOrderQueryHandler(memory.NewStore(nil)).Handle(t.Context(), query)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestNewGetOrderQuery_Invalid(t *testing.T) {
	_, err := queries.NewGetOrderQuery("")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = queries.NewGetOrderQueryHandler(memory.NewStore(nil)).Handle(t.Context(), queries.GetOrderQuery{})
	require.ErrorIs(t, err, queries.ErrGetOrderQueryIsNotConstructed)
}
