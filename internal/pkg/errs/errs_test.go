package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	cause := errors.New("connection reset")

	tests := []struct {
		name     string
		err      error
		sentinel error
		want     string
	}{
		{
			name:     "object not found",
			err:      errs.NewObjectNotFoundError("orders", "ord-1"),
			sentinel: errs.ErrObjectNotFound,
			want:     "object not found: ord-1",
		},
		{
			name:     "object not found with cause",
			err:      errs.NewObjectNotFoundErrorWithCause("orders", "ord-1", cause),
			sentinel: errs.ErrObjectNotFound,
			want:     "object not found: param is: orders, ID is: ord-1 (cause: connection reset)",
		},
		{
			name:     "value is invalid",
			err:      errs.NewValueIsInvalidError("STORE_DRIVER"),
			sentinel: errs.ErrValueIsInvalid,
			want:     "value is invalid: STORE_DRIVER",
		},
		{
			name:     "value is invalid with cause",
			err:      errs.NewValueIsInvalidErrorWithCause("timestamp", cause),
			sentinel: errs.ErrValueIsInvalid,
			want:     "value is invalid: timestamp (cause: connection reset)",
		},
		{
			name:     "value is out of range",
			err:      errs.NewValueIsOutOfRangeError("RELAY_BATCH_SIZE", 0, 1, "unbounded"),
			sentinel: errs.ErrValueIsOutOfRange,
			want:     "value is invalid: 0 is RELAY_BATCH_SIZE, min value is 1, max value is unbounded",
		},
		{
			name:     "value is out of range with cause",
			err:      errs.NewValueIsOutOfRangeErrorWithCause("limit", -1, 0, 100, cause),
			sentinel: errs.ErrValueIsOutOfRange,
			want:     "value is invalid: -1 is limit, min value is 0, max value is 100 (cause: connection reset)",
		},
		{
			name:     "value is required",
			err:      errs.NewValueIsRequiredError("orderID"),
			sentinel: errs.ErrValueIsRequired,
			want:     "value is required: orderID",
		},
		{
			name:     "value is required with cause",
			err:      errs.NewValueIsRequiredErrorWithCause("after", cause),
			sentinel: errs.ErrValueIsRequired,
			want:     "value is required: after (cause: connection reset)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			require.ErrorIs(t, tt.err, tt.sentinel)
		})
	}
}

func TestValueIsOutOfRangeError_FlattensNewlines(t *testing.T) {
	err := errs.NewValueIsOutOfRangeError("status", "pending\nfulfilled", 0, 10)

	assert.Contains(t, err.Error(), "pending fulfilled")
	assert.NotContains(t, err.Error(), "\n")
}

func TestErrors_SurviveJoinAndWrap(t *testing.T) {
	joined := errors.Join(
		errs.NewValueIsRequiredError("orderID"),
		errs.NewValueIsRequiredError("after"),
	)
	wrapped := fmt.Errorf("invalid command: %w", joined)

	require.ErrorIs(t, wrapped, errs.ErrValueIsRequired)
	assert.NotErrorIs(t, wrapped, errs.ErrObjectNotFound)

	var required *errs.ValueIsRequiredError
	require.ErrorAs(t, wrapped, &required)
	assert.Equal(t, "orderID", required.ParamName)

	var notFound *errs.ObjectNotFoundError
	require.ErrorAs(t, fmt.Errorf("load: %w", errs.NewObjectNotFoundError("orders", "ord-9")), &notFound)
	assert.Equal(t, "ord-9", notFound.ID)
}
