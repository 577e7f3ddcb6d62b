package jobs

import (
	"sync"

	"dispatch/internal/core/domain/model/kernel"
)

// retryEntry is one parked delivery with its attempt count so far.
type retryEntry struct {
	deliveryID kernel.UUID
	attempts   int
}

// AssignmentRetryQueue holds deliveries awaiting an assignment retry. Safe
// for concurrent use: the event consumer enqueues while the retry job
// drains. Enqueueing a delivery that is already parked is a no-op, so a
// redelivered placed event cannot duplicate an entry.
type AssignmentRetryQueue struct {
	mu      sync.Mutex
	entries []retryEntry
	parked  map[string]struct{}
}

// NewAssignmentRetryQueue creates an empty queue.
func NewAssignmentRetryQueue() *AssignmentRetryQueue {
	return &AssignmentRetryQueue{
		parked: make(map[string]struct{}),
	}
}

// Enqueue parks a delivery for retry. Duplicates are ignored.
func (q *AssignmentRetryQueue) Enqueue(deliveryID kernel.UUID) {
	q.mu.Lock()
	defer q.mu.Unlock()

	key := deliveryID.String()
	if _, ok := q.parked[key]; ok {
		return
	}

	q.parked[key] = struct{}{}
	q.entries = append(q.entries, retryEntry{deliveryID: deliveryID})
}

// Len returns the number of parked deliveries.
func (q *AssignmentRetryQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// dequeueAll removes and returns every parked entry in FIFO order.
func (q *AssignmentRetryQueue) dequeueAll() []retryEntry {
	q.mu.Lock()
	defer q.mu.Unlock()

	entries := q.entries
	q.entries = nil
	q.parked = make(map[string]struct{})
	return entries
}

// requeue puts an entry back, preserving its attempt count. Used by the
// retry job when an attempt fails but the budget is not exhausted.
func (q *AssignmentRetryQueue) requeue(entry retryEntry) {
	q.mu.Lock()
	defer q.mu.Unlock()

	key := entry.deliveryID.String()
	if _, ok := q.parked[key]; ok {
		return
	}

	q.parked[key] = struct{}{}
	q.entries = append(q.entries, entry)
}
