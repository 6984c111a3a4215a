package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/audit"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDocumentFinder struct{ mock.Mock }

func (m *MockDocumentFinder) FindByField(ctx context.Context, collection, field, value string) ([]ports.Document, error) {
	args := m.Called(ctx, collection, field, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.Document), args.Error(1)
}

func TestGetOrderAuditTrailQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	at := time.Date(2025, 5, 17, 12, 30, 0, 0, time.UTC)

	changed, err := audit.NewStatusChangedEntry("ord-1", "pending", "fulfilled", audit.AutomatedByCloud, at)
	require.NoError(t, err)
	sent, err := audit.NewNotificationSentEntry("ord-1", "FCM", "order-updates", "tok", at.Add(time.Second))
	require.NoError(t, err)

	finder := new(MockDocumentFinder)
	finder.On("FindByField", ctx, "order_audit_trail", "orderId", "ord-1").Return([]ports.Document{
		{Collection: audit.Collection, ID: "a-1", Fields: changed.Fields()},
		{Collection: audit.Collection, ID: "a-2", Fields: sent.Fields()},
	}, nil).Once()

	query, err := queries.NewGetOrderAuditTrailQuery("ord-1")
	require.NoError(t, err)

	entries, err := queries.NewGetOrderAuditTrailQueryHandler(finder).Handle(ctx, query)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a-1", entries[0].ID())
	assert.Equal(t, audit.StatusChanged, entries[0].Action())
	assert.Equal(t, "a-2", entries[1].ID())
	assert.Equal(t, "tok", entries[1].Result())
	finder.AssertExpectations(t)
}

func TestGetOrderAuditTrailQueryHandler_Handle_Empty(t *testing.T) {
	ctx := t.Context()
	finder := new(MockDocumentFinder)
	finder.On("FindByField", ctx, "order_audit_trail", "orderId", "ord-2").Return([]ports.Document{}, nil).Once()

	query, err := queries.NewGetOrderAuditTrailQuery("ord-2")
	require.NoError(t, err)

	entries, err := queries.NewGetOrderAuditTrailQueryHandler(finder).Handle(ctx, query)

	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestGetOrderAuditTrailQueryHandler_Handle_Errors(t *testing.T) {
	ctx := t.Context()

	t.Run("finder error", func(t *testing.T) {
		finder := new(MockDocumentFinder)
		finder.On("FindByField", ctx, "order_audit_trail", "orderId", "ord-1").
			Return(nil, errors.New("connection reset")).Once()

		query, err := queries.NewGetOrderAuditTrailQuery("ord-1")
		require.NoError(t, err)

		_, err = queries.NewGetOrderAuditTrailQueryHandler(finder).Handle(ctx, query)
		require.EqualError(t, err, "connection reset")
	})

	t.Run("corrupt entry", func(t *testing.T) {
		finder := new(MockDocumentFinder)
		finder.On("FindByField", ctx, "order_audit_trail", "orderId", "ord-1").Return([]ports.Document{
			{Collection: audit.Collection, ID: "a-1", Fields: map[string]any{"orderId": "ord-1", "action": "bogus"}},
		}, nil).Once()

		query, err := queries.NewGetOrderAuditTrailQuery("ord-1")
		require.NoError(t, err)

		_, err = queries.NewGetOrderAuditTrailQueryHandler(finder).Handle(ctx, query)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("invalid query", func(t *testing.T) {
		_, err := queries.NewGetOrderAuditTrailQueryHandler(new(MockDocumentFinder)).Handle(ctx, queries.GetOrderAuditTrailQuery{})
		require.ErrorIs(t, err, queries.ErrGetOrderAuditTrailQueryIsNotConstructed)
	})
}
