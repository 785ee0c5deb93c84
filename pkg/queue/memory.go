// queue package

package queue

import (
	"context"
	"fmt"
	"sync"
)

// ErrQueueFull is returned by Enqueue when the queue is at capacity.
type ErrQueueFull struct {
	Capacity int
}

func (e *ErrQueueFull) Error() string {
	return fmt.Sprintf("queue is full (capacity %d)", e.Capacity)
}

// InMemoryQueue implements an in-memory bounded queue.
type InMemoryQueue[T any] struct {
	ch   chan T
	lock sync.Mutex
}

var _ Queue[int] = &InMemoryQueue[int]{}

// NewInMemoryQueue creates a new queue holding at most size items.
func NewInMemoryQueue[T any](size int) *InMemoryQueue[T] {
	return &InMemoryQueue[T]{
		ch: make(chan T, size),
	}
}

// Enqueue adds an item to the end of the queue without blocking.
func (q *InMemoryQueue[T]) Enqueue(item T) error {
	select {
	case q.ch <- item:
		return nil
	default:
		return &ErrQueueFull{Capacity: cap(q.ch)}
	}
}

// EnqueueContext adds an item to the end of the queue, waiting for room
// until ctx is done.
func (q *InMemoryQueue[T]) EnqueueContext(ctx context.Context, item T) error {
	select {
	case q.ch <- item:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Size returns the current size of the queue.
func (q *InMemoryQueue[T]) Size() int {
	return len(q.ch)
}

// ReadAll drains the items pending at the time of the call, in arrival order.
func (q *InMemoryQueue[T]) ReadAll() []T {
	q.lock.Lock()
	defer q.lock.Unlock()

	n := len(q.ch)
	items := make([]T, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, <-q.ch)
	}

	return items
}

// Clear drops all pending items.
func (q *InMemoryQueue[T]) Clear() {
	q.lock.Lock()
	defer q.lock.Unlock()

	for len(q.ch) > 0 {
		<-q.ch
	}
}
