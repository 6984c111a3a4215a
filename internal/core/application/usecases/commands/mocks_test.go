package commands_test

import (
	"context"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/notification"
	"orderflow/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockDocumentStore struct{ mock.Mock }

func (m *MockDocumentStore) Get(ctx context.Context, collection, id string) (map[string]any, error) {
	args := m.Called(ctx, collection, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

func (m *MockDocumentStore) Set(ctx context.Context, collection, id string, fields map[string]any) error {
	args := m.Called(ctx, collection, id, fields)
	return args.Error(0)
}

func (m *MockDocumentStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	args := m.Called(ctx, collection, id, fields)
	return args.Error(0)
}

func (m *MockDocumentStore) Append(ctx context.Context, collection string, fields map[string]any) (string, error) {
	args := m.Called(ctx, collection, fields)
	return args.String(0), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) DocumentStore() ports.DocumentStore {
	args := m.Called()
	return args.Get(0).(ports.DocumentStore)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockNotificationSender struct{ mock.Mock }

func (m *MockNotificationSender) Type() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockNotificationSender) Send(ctx context.Context, msg notification.Message) (string, error) {
	args := m.Called(ctx, msg)
	return args.String(0), args.Error(1)
}

type MockAutomationRecorder struct{ mock.Mock }

func (m *MockAutomationRecorder) RecordOutcome(outcome string) {
	m.Called(outcome)
}

func (m *MockAutomationRecorder) RecordNotification(delivered bool) {
	m.Called(delivered)
}

// auditAction matches audit fields carrying the given action.
func auditAction(action string) any {
	return mock.MatchedBy(func(fields map[string]any) bool {
		return fields["action"] == action
	})
}
