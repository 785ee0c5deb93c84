package network

import (
	"context"
	"fmt"

	"github.com/cbodonnell/arena/pkg/log"
	"github.com/cbodonnell/arena/pkg/queue"
)

type EventKind int

const (
	EventOpen EventKind = iota
	EventMessage
	EventClose
	EventError
)

func (k EventKind) String() string {
	switch k {
	case EventOpen:
		return "open"
	case EventMessage:
		return "message"
	case EventClose:
		return "close"
	case EventError:
		return "error"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is something that happened on a transport. Message events carry one
// text frame in Data; close and error events may carry the cause in Err.
type Event struct {
	Kind EventKind
	Data []byte
	Err  error
}

// Transport owns at most one connection to a server. Open returns once the
// attempt has started; the outcome arrives later as an open or close event.
// Every attempt that starts ends with exactly one close event. Events are
// never dropped: a full queue holds the transport back until the consumer
// catches up or the context passed to Open is done.
type Transport interface {
	Open(ctx context.Context, address string) error
	Send(b []byte) error
	Close() error
}

// post hands ev to the consumer, waiting while the queue is full. Events are
// only lost once ctx is done.
func post(ctx context.Context, events queue.Queue[Event], ev Event) error {
	if err := events.EnqueueContext(ctx, ev); err != nil {
		log.Error("Failed to enqueue %s event: %v", ev.Kind, err)
		return err
	}
	return nil
}
