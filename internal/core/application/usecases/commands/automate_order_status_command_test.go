package commands_test

import (
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAutomateOrderStatusCommand_Success(t *testing.T) {
	before := map[string]any{"status": "pending"}
	after := map[string]any{"status": "pending", "items": []any{}}

	cmd, err := commands.NewAutomateOrderStatusCommand("ord-1", before, after)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, "ord-1", cmd.OrderID())
	assert.Equal(t, before, cmd.Before())
	assert.Equal(t, after, cmd.After())
}

func TestNewAutomateOrderStatusCommand_NilBeforeIsAllowed(t *testing.T) {
	cmd, err := commands.NewAutomateOrderStatusCommand("ord-1", nil, map[string]any{})

	require.NoError(t, err)
	assert.Nil(t, cmd.Before())
}

func TestNewAutomateOrderStatusCommand_InvalidInput(t *testing.T) {
	_, err := commands.NewAutomateOrderStatusCommand("", nil, nil)

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Contains(t, err.Error(), "orderID")
	assert.Contains(t, err.Error(), "after")
}

func TestAutomateOrderStatusCommand_Validate_ZeroValue(t *testing.T) {
	var cmd commands.AutomateOrderStatusCommand

	err := cmd.Validate()

	require.ErrorIs(t, err, commands.ErrAutomateOrderStatusCommandIsNotConstructed)
}
