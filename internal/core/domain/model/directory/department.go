package directory

import (
	"errors"
	"time"

	"orderflow/internal/pkg/errs"
)

var ErrDepartmentIsNotConstructed = errors.New("Department must be created via NewDepartment constructor")

// DepartmentsCollection holds department documents keyed by department id.
const DepartmentsCollection = "departments"

// MembersCollection returns the member sub-collection of a department.
func MembersCollection(departmentID string) string {
	return DepartmentsCollection + "/" + departmentID + "/members"
}

// Department is an organisational unit users can belong to.
type Department struct {
	id          string
	name        string
	description string
	managerID   string
	location    string

	isConstructed bool
}

// NewDepartment creates a department. ManagerID and location are optional.
func NewDepartment(id, name, description, managerID, location string) (*Department, error) {
	if id == "" {
		return nil, errs.NewValueIsRequiredError("department id")
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("department name")
	}

	return &Department{
		id:            id,
		name:          name,
		description:   description,
		managerID:     managerID,
		location:      location,
		isConstructed: true,
	}, nil
}

func (d *Department) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDepartmentIsNotConstructed
	}
	return nil
}

func (d *Department) ID() string {
	return d.id
}

func (d *Department) Name() string {
	return d.name
}

// Fields renders the department document. New departments are always active.
func (d *Department) Fields(at time.Time) map[string]any {
	return map[string]any{
		"name":        d.name,
		"description": d.description,
		"managerId":   nullable(d.managerID),
		"isActive":    true,
		"location":    nullable(d.location),
		"metadata": map[string]any{
			"createdAt": at,
			"updatedAt": at,
		},
	}
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
