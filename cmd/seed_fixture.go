package cmd

import (
	"errors"
	"fmt"
	"io"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/directory"

	"gopkg.in/yaml.v3"
)

// SeedFixture is the YAML document read by the seed command.
type SeedFixture struct {
	Departments []DepartmentFixture `yaml:"departments"`
	Users       []UserFixture       `yaml:"users"`
}

type DepartmentFixture struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	ManagerID   string `yaml:"managerId"`
	Location    string `yaml:"location"`
}

type UserFixture struct {
	UID             string    `yaml:"uid"`
	Email           string    `yaml:"email"`
	Name            string    `yaml:"name"`
	PhoneNumber     string    `yaml:"phoneNumber"`
	ProfileImageURL string    `yaml:"profileImageUrl"`
	Department      string    `yaml:"department"`
	Role            string    `yaml:"role"`
	DepartmentRole  string    `yaml:"departmentRole"`
	JobTitle        string    `yaml:"jobTitle"`
	DateJoined      time.Time `yaml:"dateJoined"`
	Permissions     []string  `yaml:"permissions"`
	CreatedBy       string    `yaml:"createdBy"`
}

// LoadSeedFixture parses a fixture, rejecting unknown fields.
func LoadSeedFixture(r io.Reader) (SeedFixture, error) {
	var fixture SeedFixture
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&fixture); err != nil {
		return SeedFixture{}, fmt.Errorf("failed to parse seed fixture: %w", err)
	}
	return fixture, nil
}

// Command converts the fixture into a seed command. Every invalid record is reported.
func (f SeedFixture) Command() (commands.SeedDirectoryCommand, error) {
	var err error

	departments := make([]*directory.Department, 0, len(f.Departments))
	for i, d := range f.Departments {
		department, depErr := directory.NewDepartment(d.ID, d.Name, d.Description, d.ManagerID, d.Location)
		if depErr != nil {
			err = errors.Join(err, fmt.Errorf("departments[%d]: %w", i, depErr))
			continue
		}
		departments = append(departments, department)
	}

	users := make([]*directory.User, 0, len(f.Users))
	for i, u := range f.Users {
		user, userErr := directory.NewUser(u.UID, u.Email, u.Name, directory.UserProfile{
			PhoneNumber:     u.PhoneNumber,
			ProfileImageURL: u.ProfileImageURL,
			Department:      u.Department,
			Role:            u.Role,
			DepartmentRole:  u.DepartmentRole,
			JobTitle:        u.JobTitle,
			DateJoined:      u.DateJoined,
			Permissions:     u.Permissions,
			CreatedBy:       u.CreatedBy,
		})
		if userErr != nil {
			err = errors.Join(err, fmt.Errorf("users[%d]: %w", i, userErr))
			continue
		}
		users = append(users, user)
	}

	if err != nil {
		return commands.SeedDirectoryCommand{}, err
	}
	return commands.NewSeedDirectoryCommand(departments, users)
}
