package delivery_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/delivery"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSender(t *testing.T) delivery.ContactPoint {
	t.Helper()
	cp, err := delivery.NewContactPoint("01001-000", "Sender St", "10", "", "Alice", "+5511988880000")
	require.NoError(t, err)
	return cp
}

func validRecipient(t *testing.T) delivery.ContactPoint {
	t.Helper()
	cp, err := delivery.NewContactPoint("02002-000", "Recipient Ave", "20", "suite 3", "Bob", "+5511977770000")
	require.NoError(t, err)
	return cp
}

func TestNewPreparationDetails(t *testing.T) {
	distanceFee := decimal.RequireFromString("15.00")
	courierPayout := decimal.RequireFromString("5.00")

	t.Run("should create valid details", func(t *testing.T) {
		details, err := delivery.NewPreparationDetails(
			validSender(t), validRecipient(t),
			distanceFee, courierPayout, 50*time.Minute,
		)

		require.NoError(t, err)
		require.NoError(t, details.Validate())
		assert.True(t, details.Sender().IsEqual(validSender(t)))
		assert.True(t, details.Recipient().IsEqual(validRecipient(t)))
		assert.True(t, details.DistanceFee().Equal(distanceFee))
		assert.True(t, details.CourierPayout().Equal(courierPayout))
		assert.Equal(t, 50*time.Minute, details.ExpectedDeliveryTime())
	})

	t.Run("should accept zero fees", func(t *testing.T) {
		details, err := delivery.NewPreparationDetails(
			validSender(t), validRecipient(t),
			decimal.Zero, decimal.Zero, time.Hour,
		)

		require.NoError(t, err)
		assert.True(t, details.TotalCost().IsZero())
	})

	t.Run("should fail with unconstructed sender", func(t *testing.T) {
		var sender delivery.ContactPoint

		_, err := delivery.NewPreparationDetails(
			sender, validRecipient(t),
			distanceFee, courierPayout, 50*time.Minute,
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "sender")
	})

	t.Run("should fail with unconstructed recipient", func(t *testing.T) {
		var recipient delivery.ContactPoint

		_, err := delivery.NewPreparationDetails(
			validSender(t), recipient,
			distanceFee, courierPayout, 50*time.Minute,
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "recipient")
	})

	t.Run("should fail with negative distance fee", func(t *testing.T) {
		_, err := delivery.NewPreparationDetails(
			validSender(t), validRecipient(t),
			decimal.RequireFromString("-0.01"), courierPayout, 50*time.Minute,
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "distanceFee")
	})

	t.Run("should fail with negative courier payout", func(t *testing.T) {
		_, err := delivery.NewPreparationDetails(
			validSender(t), validRecipient(t),
			distanceFee, decimal.RequireFromString("-1"), 50*time.Minute,
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "courierPayout")
	})

	t.Run("should fail with non-positive expected delivery time", func(t *testing.T) {
		_, err := delivery.NewPreparationDetails(
			validSender(t), validRecipient(t),
			distanceFee, courierPayout, 0,
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "expectedDeliveryTime")
	})
}

func TestPreparationDetails_TotalCost(t *testing.T) {
	t.Run("should sum distance fee and courier payout", func(t *testing.T) {
		details, err := delivery.NewPreparationDetails(
			validSender(t), validRecipient(t),
			decimal.RequireFromString("15.00"), decimal.RequireFromString("5.00"), 50*time.Minute,
		)

		require.NoError(t, err)
		assert.True(t, details.TotalCost().Equal(decimal.RequireFromString("20.00")))
	})
}

func TestPreparationDetails_Validate(t *testing.T) {
	t.Run("should fail for zero value details", func(t *testing.T) {
		var details delivery.PreparationDetails

		err := details.Validate()

		require.Error(t, err)
		assert.Equal(t, delivery.ErrPreparationDetailsAreNotConstructed, err)
	})
}
