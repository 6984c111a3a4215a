package cmd_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"orderflow/cmd"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureYAML = `
departments:
  - id: dev001
    name: Developers
    description: Software Development Team
    location: Floor 3
  - id: fac001
    name: Factory
    description: Main Production Facility
    managerId: mgr-1
    location: Building A
users:
  - uid: admin-1
    email: admin@example.com
    name: Admin User
    department: dev001
    role: admin
    jobTitle: Administrator
    dateJoined: 2024-01-15T00:00:00Z
    permissions: [full_access]
  - uid: guest-1
    email: guest@example.com
    name: Guest
`

func TestLoadSeedFixture(t *testing.T) {
	fixture, err := cmd.LoadSeedFixture(strings.NewReader(fixtureYAML))
	require.NoError(t, err)

	require.Len(t, fixture.Departments, 2)
	assert.Equal(t, "mgr-1", fixture.Departments[1].ManagerID)
	require.Len(t, fixture.Users, 2)
	assert.Equal(t, []string{"full_access"}, fixture.Users[0].Permissions)
	assert.Equal(t, 2024, fixture.Users[0].DateJoined.Year())

	command, err := fixture.Command()
	require.NoError(t, err)
	assert.Len(t, command.Departments(), 2)
	assert.Len(t, command.Users(), 2)
}

func TestLoadSeedFixture_RejectsUnknownFields(t *testing.T) {
	_, err := cmd.LoadSeedFixture(strings.NewReader("departments:\n  - id: d1\n    title: typo\n"))
	require.ErrorContains(t, err, "failed to parse seed fixture")
}

func TestSeedFixture_Command_ReportsEveryInvalidRecord(t *testing.T) {
	fixture := cmd.SeedFixture{
		Departments: []cmd.DepartmentFixture{{ID: "d1"}},
		Users:       []cmd.UserFixture{{UID: "u1"}},
	}

	_, err := fixture.Command()
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.ErrorContains(t, err, "departments[0]")
	assert.ErrorContains(t, err, "users[0]")
}

func TestSeedCommand_MemoryStore(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("LOG_LEVEL", "error")

	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixtureYAML), 0o600))

	var out bytes.Buffer
	root := cmd.NewRootCommand()
	root.SetArgs([]string{"seed", path})
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})

	require.NoError(t, root.ExecuteContext(t.Context()))
	assert.Equal(t, "seeded 2 departments, 2 users, 1 memberships\n", out.String())
}

func TestSeedCommand_MissingFixture(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")

	root := cmd.NewRootCommand()
	root.SetArgs([]string{"seed", filepath.Join(t.TempDir(), "absent.yaml")})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	err := root.ExecuteContext(t.Context())
	require.ErrorIs(t, err, os.ErrNotExist)
}
