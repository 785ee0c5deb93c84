package network

import (
	"context"
	"sync"
	"time"

	"github.com/cbodonnell/arena/pkg/log"
	"github.com/cbodonnell/arena/pkg/queue"
)

// ReplayTransport plays a recording back as if a server were sending it.
// Frames keep their recorded spacing; sends are discarded.
type ReplayTransport struct {
	events    queue.Queue[Event]
	recording *Recording

	mu     sync.Mutex
	open   bool
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewReplayTransport(events queue.Queue[Event], recording *Recording) *ReplayTransport {
	return &ReplayTransport{
		events:    events,
		recording: recording,
	}
}

// Open starts the replay. The address is only logged.
func (t *ReplayTransport) Open(ctx context.Context, address string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		return ErrAlreadyOpen
	}
	lifetime := ctx
	ctx, cancel := context.WithCancel(lifetime)
	t.cancel = cancel

	log.Info("Replaying recording %s in place of %s", t.recording.ID, address)
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		defer cancel()
		t.run(ctx, lifetime)
	}()
	return nil
}

func (t *ReplayTransport) run(ctx, lifetime context.Context) {
	t.mu.Lock()
	t.open = true
	t.mu.Unlock()
	post(lifetime, t.events, Event{Kind: EventOpen})

	start := time.Now()
	for _, frame := range t.recording.Frames {
		wait := time.Until(start.Add(frame.Offset))
		if wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				t.finish(lifetime, Event{Kind: EventClose, Err: &ErrConnectionClosedByClient{}})
				return
			case <-timer.C:
			}
		}
		if ctx.Err() != nil {
			t.finish(lifetime, Event{Kind: EventClose, Err: &ErrConnectionClosedByClient{}})
			return
		}
		if post(ctx, t.events, Event{Kind: EventMessage, Data: frame.Data}) != nil {
			t.finish(lifetime, Event{Kind: EventClose, Err: &ErrConnectionClosedByClient{}})
			return
		}
	}

	t.finish(lifetime, Event{Kind: EventClose, Err: &ErrConnectionClosedByServer{Reason: "end of recording"}})
}

func (t *ReplayTransport) finish(ctx context.Context, ev Event) {
	t.mu.Lock()
	t.open = false
	t.cancel = nil
	t.mu.Unlock()
	post(ctx, t.events, ev)
}

func (t *ReplayTransport) Send(b []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.open {
		return ErrNotConnected
	}
	log.Trace("Replay discarded %d byte frame", len(b))
	return nil
}

func (t *ReplayTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel == nil {
		return nil
	}
	t.cancel()
	return nil
}

// Wait blocks until the replay goroutine has exited.
func (t *ReplayTransport) Wait() {
	t.wg.Wait()
}
