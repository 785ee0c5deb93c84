package queue

import "context"

// Queue is a FIFO handoff between producer goroutines and the single consumer
// that drains it once per frame.
type Queue[T any] interface {
	Enqueue(item T) error
	EnqueueContext(ctx context.Context, item T) error
	Size() int
	ReadAll() []T
	Clear()
}
