// Package queue defines the contract for enqueuing and consuming taps.
//
// The in-memory implementation is a bounded buffered channel; enqueue never
// blocks and reports backpressure instead.
package queue

import (
	"context"
	"sync"

	"github.com/okian/dhand/internal/domain/model"
	"github.com/okian/dhand/pkg/metrics"
)

const defaultQueueCapacity = 10_000

// Tap is the payload type flowing through the queue.
type Tap = model.Tap

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a tap to the queue.
	// Returns false if the queue is full or closed.
	Enqueue(ctx context.Context, t Tap) bool

	// Dequeue returns a channel that will receive taps as they become available.
	// The channel will be closed when the queue is closed and drained.
	Dequeue(ctx context.Context) <-chan Tap

	// Len returns the current number of queued taps.
	Len(ctx context.Context) int

	// Close stops accepting taps. Already queued taps can still be dequeued.
	Close() error

	// IsClosed returns true if the queue has been closed.
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	taps     chan Tap
	capacity int

	mu     sync.RWMutex
	closed bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{capacity: defaultQueueCapacity}
	for _, opt := range opts {
		opt(q)
	}
	q.taps = make(chan Tap, q.capacity)
	metrics.UpdateQueue(0, q.capacity)
	return q
}

// Enqueue adds a tap to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, t Tap) bool { //nolint:gocritic // hugeParam: Tap is passed by value for channel semantics
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueEnqueueError("closed")
		return false
	}
	if err := ctx.Err(); err != nil {
		metrics.RecordQueueEnqueueError("context_cancelled")
		return false
	}

	select {
	case q.taps <- t:
		metrics.RecordQueueEnqueue()
		metrics.UpdateQueue(len(q.taps), q.capacity)
		return true
	default:
		metrics.RecordQueueEnqueueError("queue_full")
		return false
	}
}

// Dequeue returns a channel that will receive taps as they become available.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Tap {
	out := make(chan Tap)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case t, ok := <-q.taps:
				if !ok {
					return
				}
				select {
				case out <- t:
					metrics.RecordQueueDequeue()
					metrics.UpdateQueue(len(q.taps), q.capacity)
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

// Len returns the current number of queued taps.
func (q *InMemoryQueue) Len(_ context.Context) int {
	return len(q.taps)
}

// Cap returns the queue capacity.
func (q *InMemoryQueue) Cap() int {
	return q.capacity
}

// Close stops accepting taps.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	close(q.taps)
	q.closed = true
	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
