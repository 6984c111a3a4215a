package commands_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/directory"
	"orderflow/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func seedFixture(t *testing.T) commands.SeedDirectoryCommand {
	t.Helper()

	dev, err := directory.NewDepartment("dev001", "Developers", "Software Development Team", "", "Floor 3")
	require.NoError(t, err)
	fac, err := directory.NewDepartment("fac001", "Factory", "Main Production Facility", "", "Building A")
	require.NoError(t, err)

	admin, err := directory.NewUser("admin-1", "admin@example.com", "Admin User", directory.UserProfile{
		Role:        "admin",
		Department:  "dev001",
		JobTitle:    "Administrator",
		Permissions: []string{"full_access"},
	})
	require.NoError(t, err)
	guest, err := directory.NewUser("guest-1", "guest@example.com", "Guest", directory.UserProfile{})
	require.NoError(t, err)

	cmd, err := commands.NewSeedDirectoryCommand([]*directory.Department{dev, fac}, []*directory.User{admin, guest})
	require.NoError(t, err)
	return cmd
}

func TestSeedDirectoryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := seedFixture(t)

	uow := new(MockUoW)
	store := new(MockDocumentStore)
	factory := new(MockUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DocumentStore").Return(store).Once(),
		store.On("Set", ctx, "departments", "dev001", mock.Anything).Return(nil).Once(),
		store.On("Set", ctx, "departments", "fac001", mock.Anything).Return(nil).Once(),
		store.On("Set", ctx, "users", "admin-1", mock.MatchedBy(func(fields map[string]any) bool {
			return fields["role"] == "admin" && fields["department"] == "dev001"
		})).Return(nil).Once(),
		store.On("Set", ctx, "departments/dev001/members", "admin-1", mock.MatchedBy(func(fields map[string]any) bool {
			return fields["uid"] == "admin-1" && fields["role"] == "admin"
		})).Return(nil).Once(),
		store.On("Set", ctx, "users", "guest-1", mock.Anything).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewSeedDirectoryCommandHandler(factory, kernel.FixedClock(automatedAt), slog.New(slog.NewTextHandler(io.Discard, nil)))

	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, commands.SeedDirectoryResult{Departments: 2, Users: 2, Memberships: 1}, result)
	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestSeedDirectoryCommandHandler_Handle_WriteFailureRollsBack(t *testing.T) {
	ctx := t.Context()
	cmd := seedFixture(t)

	uow := new(MockUoW)
	store := new(MockDocumentStore)
	factory := new(MockUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DocumentStore").Return(store).Once()
	store.On("Set", ctx, "departments", "dev001", mock.Anything).Return(nil).Once()
	store.On("Set", ctx, "departments", "fac001", mock.Anything).Return(errors.New("disk full")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewSeedDirectoryCommandHandler(factory, nil, nil)

	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed department fac001")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestSeedDirectoryCommandHandler_Handle_InvalidCommand(t *testing.T) {
	factory := new(MockUoWFactory)
	handler := commands.NewSeedDirectoryCommandHandler(factory, nil, nil)

	_, err := handler.Handle(t.Context(), commands.SeedDirectoryCommand{})

	require.ErrorIs(t, err, commands.ErrSeedDirectoryCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
