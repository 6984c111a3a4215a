package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/directory"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrSeedDirectoryCommandIsNotConstructed = errors.New(
	"SeedDirectoryCommand must be created via NewSeedDirectoryCommand constructor",
)

// SeedDirectoryCommand writes an initial set of departments and users.
type SeedDirectoryCommand struct {
	departments []*directory.Department
	users       []*directory.User

	guard guard.ConstructorGuard
}

// NewSeedDirectoryCommand creates a seed command. At least one department or user is required
// and every record must be constructed.
func NewSeedDirectoryCommand(departments []*directory.Department, users []*directory.User) (SeedDirectoryCommand, error) {
	if len(departments) == 0 && len(users) == 0 {
		return SeedDirectoryCommand{}, errs.NewValueIsRequiredError("departments or users")
	}

	var err error
	for _, d := range departments {
		err = errors.Join(err, d.Validate())
	}
	for _, u := range users {
		err = errors.Join(err, u.Validate())
	}
	if err != nil {
		return SeedDirectoryCommand{}, err
	}

	return SeedDirectoryCommand{
		departments: append([]*directory.Department(nil), departments...),
		users:       append([]*directory.User(nil), users...),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c SeedDirectoryCommand) Departments() []*directory.Department {
	return c.departments
}

func (c SeedDirectoryCommand) Users() []*directory.User {
	return c.users
}

// Validate ensures the command was created through the constructor.
func (c SeedDirectoryCommand) Validate() error {
	return c.guard.Validate(ErrSeedDirectoryCommandIsNotConstructed)
}
