package pipeline

// QueueOption applies a configuration option to the InMemoryQueue.
type QueueOption func(*InMemoryQueue)

// WithCapacity sets the maximum number of buffered rows.
func WithCapacity(capacity int) QueueOption {
	return func(q *InMemoryQueue) {
		if capacity > 0 {
			q.capacity = capacity
		}
	}
}

// PoolOption applies a configuration option to the worker Pool.
type PoolOption func(*Pool)

// WithWorkerName sets the base name used for worker loggers.
func WithWorkerName(name string) PoolOption {
	return func(p *Pool) {
		if name != "" {
			p.name = name
		}
	}
}
