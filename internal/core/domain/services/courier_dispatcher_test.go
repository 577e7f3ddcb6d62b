package services_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoredCourier(t *testing.T, name string, clock time.Time, pending ...kernel.UUID) *courier.Courier {
	t.Helper()
	c, err := courier.RestoreCourier(kernel.NewUUID(), name, pending, clock, 0)
	require.NoError(t, err)
	return c
}

func TestCourierDispatcher_Assign(t *testing.T) {
	dispatcher := services.NewCourierDispatcher()
	now := time.Now().UTC()

	t.Run("should pick the courier with the earliest fairness clock", func(t *testing.T) {
		oldest := restoredCourier(t, "oldest", now.Add(-3*time.Hour))
		middle := restoredCourier(t, "middle", now.Add(-2*time.Hour))
		newest := restoredCourier(t, "newest", now.Add(-time.Hour))
		deliveryID := kernel.NewUUID()

		selected, err := dispatcher.Assign(deliveryID, []*courier.Courier{newest, oldest, middle})

		require.NoError(t, err)
		assert.True(t, selected.IsEqual(oldest))
		assert.True(t, oldest.Holds(deliveryID))
		assert.False(t, middle.Holds(deliveryID))
		assert.False(t, newest.Holds(deliveryID))
	})

	t.Run("should ignore workload size when picking", func(t *testing.T) {
		// Fairness is clock-based only: the least recently active courier
		// wins even when it already holds more deliveries.
		busy := restoredCourier(t, "busy", now.Add(-2*time.Hour),
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID())
		idle := restoredCourier(t, "idle", now.Add(-time.Hour))

		selected, err := dispatcher.Assign(kernel.NewUUID(), []*courier.Courier{idle, busy})

		require.NoError(t, err)
		assert.True(t, selected.IsEqual(busy))
	})

	t.Run("should break clock ties by courier id ascending", func(t *testing.T) {
		clock := now.Add(-time.Hour)
		a := restoredCourier(t, "a", clock)
		b := restoredCourier(t, "b", clock)

		want := a
		if b.ID().String() < a.ID().String() {
			want = b
		}

		selected, err := dispatcher.Assign(kernel.NewUUID(), []*courier.Courier{a, b})

		require.NoError(t, err)
		assert.True(t, selected.IsEqual(want))

		// Same population, same outcome regardless of input order.
		selectedAgain, err := dispatcher.Assign(kernel.NewUUID(), []*courier.Courier{b, a})
		require.NoError(t, err)
		assert.True(t, selectedAgain.IsEqual(want))
	})

	t.Run("should fail with no couriers available", func(t *testing.T) {
		deliveryID := kernel.NewUUID()

		selected, err := dispatcher.Assign(deliveryID, nil)

		require.Error(t, err)
		assert.Nil(t, selected)
		assert.ErrorIs(t, err, errs.ErrNoCourierAvailable)
		assert.Contains(t, err.Error(), deliveryID.String())
	})

	t.Run("should fail with unconstructed delivery id", func(t *testing.T) {
		c := restoredCourier(t, "c", now)
		var deliveryID kernel.UUID

		_, err := dispatcher.Assign(deliveryID, []*courier.Courier{c})

		require.Error(t, err)
		assert.Empty(t, c.PendingDeliveries())
	})

	t.Run("should fail with unconstructed courier in population", func(t *testing.T) {
		var bad courier.Courier

		_, err := dispatcher.Assign(kernel.NewUUID(), []*courier.Courier{&bad})

		require.Error(t, err)
		assert.Equal(t, courier.ErrCourierIsNotConstructed, err)
	})
}

func TestCourierDispatcher_Fulfill(t *testing.T) {
	dispatcher := services.NewCourierDispatcher()
	now := time.Now().UTC()

	t.Run("should fulfill on the courier holding the delivery", func(t *testing.T) {
		deliveryID := kernel.NewUUID()
		holder := restoredCourier(t, "holder", now.Add(-2*time.Hour), deliveryID)
		bystander := restoredCourier(t, "bystander", now.Add(-time.Hour))

		fulfilled, err := dispatcher.Fulfill(deliveryID, []*courier.Courier{bystander, holder})

		require.NoError(t, err)
		assert.True(t, fulfilled.IsEqual(holder))
		assert.False(t, holder.Holds(deliveryID))
		assert.True(t, holder.LastFulfilledAt().After(now.Add(-2*time.Hour)))
	})

	t.Run("should fail when no courier holds the delivery", func(t *testing.T) {
		deliveryID := kernel.NewUUID()
		c := restoredCourier(t, "c", now, kernel.NewUUID())

		fulfilled, err := dispatcher.Fulfill(deliveryID, []*courier.Courier{c})

		require.Error(t, err)
		assert.Nil(t, fulfilled)
		assert.ErrorIs(t, err, errs.ErrAssignmentNotFound)
		assert.Len(t, c.PendingDeliveries(), 1)
	})

	t.Run("should fail on empty population", func(t *testing.T) {
		_, err := dispatcher.Fulfill(kernel.NewUUID(), nil)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrAssignmentNotFound)
	})

	t.Run("should send the fulfilling courier to the back of the queue", func(t *testing.T) {
		deliveryID := kernel.NewUUID()
		first := restoredCourier(t, "first", now.Add(-2*time.Hour), deliveryID)
		second := restoredCourier(t, "second", now.Add(-time.Hour))

		_, err := dispatcher.Fulfill(deliveryID, []*courier.Courier{first, second})
		require.NoError(t, err)

		selected, err := dispatcher.Assign(kernel.NewUUID(), []*courier.Courier{first, second})
		require.NoError(t, err)
		assert.True(t, selected.IsEqual(second))
	})
}
