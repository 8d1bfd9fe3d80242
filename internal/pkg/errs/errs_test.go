package errs_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("parcelId", "p1")

		assert.Equal(t, "parcelId", err.ParamName)
		assert.Equal(t, "p1", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: p1", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("document missing")
		err := errs.NewObjectNotFoundErrorWithCause("parcelId", "p1", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: parcelId, ID is: p1 (cause: document missing)",
			err.Error())
	})

	t.Run("Error with different ID types", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", 456)
		assert.Equal(t, "object not found: %!s(int=456)", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("status")

		assert.Equal(t, "status", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: status", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("unknown status \"lost\"")
		err := errs.NewValueIsInvalidErrorWithCause("status", cause)

		assert.Equal(t, `value is invalid: status (cause: unknown status "lost")`, err.Error())
	})

	t.Run("cause with newlines is flattened", func(t *testing.T) {
		err := errs.NewValueIsInvalidErrorWithCause("status", errors.New("hello\nworld"))
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("driverId")

		assert.Equal(t, "driverId", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: driverId", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("blank string")
		err := errs.NewValueIsRequiredErrorWithCause("driverId", cause)

		assert.Equal(t, "value is required: driverId (cause: blank string)", err.Error())
	})
}

func TestStoreUnavailableError(t *testing.T) {
	t.Run("wraps sentinel and cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := errs.NewStoreUnavailableError("update parcel", cause)

		assert.Equal(t, "store unavailable: update parcel (cause: connection refused)", err.Error())
		require.ErrorIs(t, err, errs.ErrStoreUnavailable)
		require.ErrorIs(t, err, cause)
	})

	t.Run("timeout stays matchable", func(t *testing.T) {
		err := errs.NewStoreUnavailableError("get parcel", context.DeadlineExceeded)

		require.ErrorIs(t, err, errs.ErrStoreUnavailable)
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("without cause", func(t *testing.T) {
		err := errs.NewStoreUnavailableError("find parcels", nil)

		assert.Equal(t, "store unavailable: find parcels", err.Error())
		require.ErrorIs(t, err, errs.ErrStoreUnavailable)
	})
}

func TestInvalidTransitionError(t *testing.T) {
	err := errs.NewInvalidTransitionError("picked_up", "pending")

	assert.Equal(t, "invalid transition: picked_up -> pending", err.Error())
	require.ErrorIs(t, err, errs.ErrInvalidTransition)

	withCause := errs.NewInvalidTransitionErrorWithCause("delivered", "delivered", errors.New("terminal status"))
	assert.Equal(t, "invalid transition: delivered -> delivered (cause: terminal status)", withCause.Error())
}

func TestIsValidation(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want bool
	}{
		{name: "required", err: errs.NewValueIsRequiredError("driverId"), want: true},
		{name: "invalid", err: errs.NewValueIsInvalidError("status"), want: true},
		{name: "wrapped required", err: fmt.Errorf("assign: %w", errs.NewValueIsRequiredError("x")), want: true},
		{name: "not found", err: errs.NewObjectNotFoundError("parcel", "p1"), want: false},
		{name: "store", err: errs.NewStoreUnavailableError("get", nil), want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, errs.IsValidation(tc.err))
		})
	}
}

func TestSentinelErrors(t *testing.T) {
	assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
	assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
	assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
	assert.Equal(t, "store unavailable", errs.ErrStoreUnavailable.Error())
	assert.Equal(t, "invalid transition", errs.ErrInvalidTransition.Error())
}
