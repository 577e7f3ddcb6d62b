package errs_test

import (
	"errors"
	"testing"

	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("deliveryId", "123")

		assert.Equal(t, "deliveryId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: deliveryId is 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("deliveryId", "123", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: deliveryId is 123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("phone")

		assert.Equal(t, "phone", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: phone", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("phone", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: phone (cause: invalid format)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("zipCode")

		assert.Equal(t, "zipCode", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: zipCode", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("missing required field")
		err := errs.NewValueIsRequiredErrorWithCause("zipCode", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: zipCode (cause: missing required field)", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})
}

func TestInvalidStateError(t *testing.T) {
	err := errs.NewInvalidStateError("place", "PickedUp")

	assert.Equal(t, "place", err.Operation)
	assert.Equal(t, "PickedUp", err.Status)
	assert.Equal(t, "invalid state: cannot place in status PickedUp", err.Error())
	assert.Equal(t, errs.ErrInvalidState, err.Unwrap())
}

func TestNoCourierAvailableError(t *testing.T) {
	err := errs.NewNoCourierAvailableError("42")

	assert.Equal(t, "42", err.DeliveryID)
	assert.Equal(t, "no courier available: delivery 42", err.Error())
	assert.Equal(t, errs.ErrNoCourierAvailable, err.Unwrap())
}

func TestAssignmentNotFoundError(t *testing.T) {
	err := errs.NewAssignmentNotFoundError("42")

	assert.Equal(t, "42", err.DeliveryID)
	assert.Equal(t, "assignment not found: delivery 42 is not assigned to any courier", err.Error())
	assert.Equal(t, errs.ErrAssignmentNotFound, err.Unwrap())
}

func TestTransientEstimationError(t *testing.T) {
	cause := errors.New("injected failure")
	err := errs.NewTransientEstimationError(cause)

	assert.Equal(t, cause, err.Cause)
	assert.Equal(t, "transient estimation failure (cause: injected failure)", err.Error())
	assert.Equal(t, errs.ErrTransientEstimation, err.Unwrap())
}

func TestConcurrentModificationError(t *testing.T) {
	err := errs.NewConcurrentModificationError("courier", "abc")

	assert.Equal(t, "courier", err.ParamName)
	assert.Equal(t, "concurrent modification: courier is abc", err.Error())
	assert.Equal(t, errs.ErrConcurrentModification, err.Unwrap())
}

func TestSentinelErrors(t *testing.T) {
	t.Run("error messages match expectations", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
		assert.Equal(t, "invalid state", errs.ErrInvalidState.Error())
		assert.Equal(t, "no courier available", errs.ErrNoCourierAvailable.Error())
		assert.Equal(t, "assignment not found", errs.ErrAssignmentNotFound.Error())
		assert.Equal(t, "transient estimation failure", errs.ErrTransientEstimation.Error())
		assert.Equal(t, "concurrent modification", errs.ErrConcurrentModification.Error())
	})

	t.Run("sanitize strips newlines", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("param", "hello\nworld")
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	require.ErrorIs(t, errs.NewObjectNotFoundError("deliveryId", "123"), errs.ErrObjectNotFound)
	require.ErrorIs(t, errs.NewValueIsInvalidError("phone"), errs.ErrValueIsInvalid)
	require.ErrorIs(t, errs.NewValueIsRequiredError("zipCode"), errs.ErrValueIsRequired)
	require.ErrorIs(t, errs.NewInvalidStateError("pickUp", "Draft"), errs.ErrInvalidState)
	require.ErrorIs(t, errs.NewNoCourierAvailableError("1"), errs.ErrNoCourierAvailable)
	require.ErrorIs(t, errs.NewAssignmentNotFoundError("1"), errs.ErrAssignmentNotFound)
	require.ErrorIs(t, errs.NewTransientEstimationError(nil), errs.ErrTransientEstimation)
	require.ErrorIs(t, errs.NewConcurrentModificationError("courier", "1"), errs.ErrConcurrentModification)
}
