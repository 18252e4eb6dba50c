// Package pipeline feeds parsed employee rows through a bounded queue to a
// pool of derivation workers during the one-time dataset load.
package pipeline

import (
	"context"
	"sync"

	"github.com/staffscope/staffscope/internal/domain/model"
	"github.com/staffscope/staffscope/pkg/metrics"
)

// defaultQueueCapacity bounds the row queue when no option overrides it.
const defaultQueueCapacity = 10_000

// Row is the payload type flowing through the queue: a parsed employee record
// awaiting its derived fields.
type Row = model.EmployeeRecord

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a row. Returns false if the queue is full or closed.
	Enqueue(ctx context.Context, r Row) bool

	// Dequeue returns the channel workers consume rows from. The channel is
	// closed when the queue is closed.
	Dequeue(ctx context.Context) <-chan Row

	// Len returns the current number of queued rows.
	Len(ctx context.Context) int

	// Close signals that no further rows will arrive. Workers drain what
	// remains and stop.
	Close() error

	// IsClosed reports whether Close has been called.
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	rows     chan Row
	capacity int

	mu     sync.RWMutex
	closed bool
}

// NewInMemoryQueue creates a row queue with configuration options.
func NewInMemoryQueue(opts ...QueueOption) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity: defaultQueueCapacity,
	}

	for _, opt := range opts {
		opt(q)
	}

	q.rows = make(chan Row, q.capacity)

	metrics.UpdatePipelineQueueCapacity(q.capacity)
	metrics.UpdatePipelineQueueSize(0)

	return q
}

// Enqueue adds a row to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, r Row) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordPipelineEnqueueError()
		return false
	}

	select {
	case q.rows <- r:
		metrics.UpdatePipelineQueueSize(len(q.rows))
		return true
	case <-ctx.Done():
		metrics.RecordPipelineEnqueueError()
		return false
	default:
		metrics.RecordPipelineEnqueueError()
		return false // queue is full
	}
}

// Dequeue returns the channel workers consume rows from.
func (q *InMemoryQueue) Dequeue(_ context.Context) <-chan Row {
	return q.rows
}

// Len returns the current number of queued rows.
func (q *InMemoryQueue) Len(_ context.Context) int {
	size := len(q.rows)
	metrics.UpdatePipelineQueueSize(size)
	return size
}

// Close signals end of input. Safe to call more than once.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}

	close(q.rows)
	q.closed = true
	return nil
}

// IsClosed reports whether Close has been called.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
