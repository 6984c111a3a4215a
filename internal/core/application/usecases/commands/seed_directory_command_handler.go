package commands

import (
	"context"
	"fmt"
	"log/slog"

	"orderflow/internal/core/domain/model/directory"
	"orderflow/internal/core/domain/model/kernel"
)

// SeedDirectoryResult counts the documents written by a seed run.
type SeedDirectoryResult struct {
	Departments int
	Users       int
	Memberships int
}

// SeedDirectoryCommandHandler writes departments, users and department
// memberships in a single unit of work. Existing documents with the same ids
// are replaced.
type SeedDirectoryCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
	logger     *slog.Logger
}

func NewSeedDirectoryCommandHandler(uowFactory UoWFactory, clock kernel.Clock, logger *slog.Logger) SeedDirectoryCommandHandler {
	if clock == nil {
		clock = kernel.SystemClock()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return SeedDirectoryCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		logger:     logger.With("component", "SeedDirectoryCommandHandler"),
	}
}

func (h SeedDirectoryCommandHandler) Handle(ctx context.Context, command SeedDirectoryCommand) (SeedDirectoryResult, error) {
	if err := command.Validate(); err != nil {
		return SeedDirectoryResult{}, err
	}

	now := h.clock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return SeedDirectoryResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	store := uow.DocumentStore()
	var result SeedDirectoryResult

	for _, d := range command.Departments() {
		if err := store.Set(ctx, directory.DepartmentsCollection, d.ID(), d.Fields(now)); err != nil {
			return SeedDirectoryResult{}, fmt.Errorf("seed department %s: %w", d.ID(), err)
		}
		result.Departments++
		h.logger.InfoContext(ctx, "department created", "departmentId", d.ID())
	}

	for _, u := range command.Users() {
		if err := store.Set(ctx, directory.UsersCollection, u.UID(), u.Fields(now)); err != nil {
			return SeedDirectoryResult{}, fmt.Errorf("seed user %s: %w", u.UID(), err)
		}
		result.Users++
		h.logger.InfoContext(ctx, "user created", "uid", u.UID())

		if !u.HasDepartment() {
			continue
		}

		if err := store.Set(ctx, directory.MembersCollection(u.Department()), u.UID(), u.MembershipFields(now)); err != nil {
			return SeedDirectoryResult{}, fmt.Errorf("seed membership %s/%s: %w", u.Department(), u.UID(), err)
		}
		result.Memberships++
		h.logger.InfoContext(ctx, "user added to department", "uid", u.UID(), "departmentId", u.Department())
	}

	if err := uow.Commit(ctx); err != nil {
		return SeedDirectoryResult{}, err
	}

	return result, nil
}
