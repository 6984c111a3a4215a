package directory

import (
	"errors"
	"time"

	"orderflow/internal/pkg/errs"
)

var ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")

// UsersCollection holds user documents keyed by uid.
const UsersCollection = "users"

const (
	DefaultRole       = "employee"
	DefaultMemberRole = "member"
)

// UserProfile carries the optional attributes of a user.
type UserProfile struct {
	PhoneNumber     string
	ProfileImageURL string
	Department      string
	Role            string
	DepartmentRole  string
	JobTitle        string
	DateJoined      time.Time
	Permissions     []string
	CreatedBy       string
}

// User is a person known to the directory.
//
// A user with a department is also listed in that department's member sub-collection.
type User struct {
	uid     string
	email   string
	name    string
	profile UserProfile

	isConstructed bool
}

// NewUser creates a user.
func NewUser(uid, email, name string, profile UserProfile) (*User, error) {
	var err error
	if uid == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("uid"))
	}
	if email == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("email"))
	}
	if name == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("name"))
	}
	if err != nil {
		return nil, err
	}

	profile.Permissions = append([]string(nil), profile.Permissions...)

	return &User{
		uid:           uid,
		email:         email,
		name:          name,
		profile:       profile,
		isConstructed: true,
	}, nil
}

func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

func (u *User) UID() string {
	return u.uid
}

// Role returns the user's role, DefaultRole when none was given.
func (u *User) Role() string {
	if u.profile.Role == "" {
		return DefaultRole
	}
	return u.profile.Role
}

// Department returns the id of the user's department, empty when unassigned.
func (u *User) Department() string {
	return u.profile.Department
}

// HasDepartment reports whether a membership entry must be written for the user.
func (u *User) HasDepartment() bool {
	return u.profile.Department != ""
}

// MemberRole is the role recorded in the department member list. It ignores
// the DefaultRole fallback so a user without any role joins as DefaultMemberRole.
func (u *User) MemberRole() string {
	switch {
	case u.profile.DepartmentRole != "":
		return u.profile.DepartmentRole
	case u.profile.Role != "":
		return u.profile.Role
	default:
		return DefaultMemberRole
	}
}

// Fields renders the user document as of at.
func (u *User) Fields(at time.Time) map[string]any {
	joined := u.profile.DateJoined
	if joined.IsZero() {
		joined = at
	}

	permissions := u.profile.Permissions
	if permissions == nil {
		permissions = []string{}
	}

	return map[string]any{
		"uid":             u.uid,
		"email":           u.email,
		"name":            u.name,
		"phoneNumber":     nullable(u.profile.PhoneNumber),
		"profileImageUrl": nullable(u.profile.ProfileImageURL),
		"department":      nullable(u.profile.Department),
		"role":            u.Role(),
		"jobTitle":        nullable(u.profile.JobTitle),
		"dateJoined":      joined,
		"lastActive":      at,
		"isActive":        true,
		"permissions":     permissions,
		"preferences": map[string]any{
			"theme":         "light",
			"language":      "en",
			"notifications": true,
		},
		"metadata": map[string]any{
			"createdAt": at,
			"updatedAt": at,
			"createdBy": nullable(u.profile.CreatedBy),
		},
	}
}

// MembershipFields renders the department member entry as of at.
func (u *User) MembershipFields(at time.Time) map[string]any {
	return map[string]any{
		"uid":                  u.uid,
		"role":                 u.MemberRole(),
		"joinedDepartmentDate": at,
	}
}
