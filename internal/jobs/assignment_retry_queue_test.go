package jobs

import (
	"testing"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignmentRetryQueue_Enqueue_DeduplicatesParkedDeliveries(t *testing.T) {
	queue := NewAssignmentRetryQueue()
	deliveryID := kernel.NewUUID()

	queue.Enqueue(deliveryID)
	queue.Enqueue(deliveryID)
	queue.Enqueue(kernel.NewUUID())

	assert.Equal(t, 2, queue.Len())
}

func TestAssignmentRetryQueue_DequeueAll_DrainsInFIFOOrder(t *testing.T) {
	queue := NewAssignmentRetryQueue()
	first := kernel.NewUUID()
	second := kernel.NewUUID()

	queue.Enqueue(first)
	queue.Enqueue(second)

	entries := queue.dequeueAll()

	require.Len(t, entries, 2)
	assert.True(t, first.IsEqual(entries[0].deliveryID))
	assert.True(t, second.IsEqual(entries[1].deliveryID))
	assert.Equal(t, 0, queue.Len())
}

func TestAssignmentRetryQueue_Enqueue_AfterDrainIsAccepted(t *testing.T) {
	queue := NewAssignmentRetryQueue()
	deliveryID := kernel.NewUUID()

	queue.Enqueue(deliveryID)
	queue.dequeueAll()
	queue.Enqueue(deliveryID)

	assert.Equal(t, 1, queue.Len())
}

func TestAssignmentRetryQueue_Requeue_PreservesAttemptCount(t *testing.T) {
	queue := NewAssignmentRetryQueue()

	queue.requeue(retryEntry{deliveryID: kernel.NewUUID(), attempts: 5})

	entries := queue.dequeueAll()
	require.Len(t, entries, 1)
	assert.Equal(t, 5, entries[0].attempts)
}
