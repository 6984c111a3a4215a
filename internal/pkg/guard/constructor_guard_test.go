package guard_test

import (
	"errors"
	"testing"

	"orderflow/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errOrderRefNotConstructed = errors.New("orderRef must be created via newOrderRef")

// orderRef mirrors how commands and queries embed the guard.
type orderRef struct {
	id    string
	guard guard.ConstructorGuard
}

func newOrderRef(id string) orderRef {
	return orderRef{id: id, guard: guard.NewConstructorGuard()}
}

func (r orderRef) Validate() error {
	return r.guard.Validate(errOrderRefNotConstructed)
}

func TestConstructorGuard_Validate(t *testing.T) {
	tests := []struct {
		name    string
		guard   guard.ConstructorGuard
		passed  error
		wantErr error
	}{
		{name: "constructed", guard: guard.NewConstructorGuard(), passed: errOrderRefNotConstructed},
		{name: "constructed with nil error", guard: guard.NewConstructorGuard()},
		{name: "zero value", passed: errOrderRefNotConstructed, wantErr: errOrderRefNotConstructed},
		{name: "zero value with nil error", wantErr: guard.ErrDefaultConstructorGuard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.guard.Validate(tt.passed)

			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestConstructorGuard_Embedded(t *testing.T) {
	require.NoError(t, newOrderRef("ord-1").Validate())
	require.ErrorIs(t, orderRef{id: "ord-1"}.Validate(), errOrderRefNotConstructed)

	original := newOrderRef("ord-2")
	copied := original
	assert.NoError(t, copied.Validate(), "copies keep the constructed mark")
}
