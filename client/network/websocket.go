package network

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/cbodonnell/arena/pkg/log"
	"github.com/cbodonnell/arena/pkg/queue"
	"nhooyr.io/websocket"
)

const (
	DefaultOutboxSize = 64
	// DefaultReadLimit fits a full room snapshot
	DefaultReadLimit = 1 << 20
)

type wsState int

const (
	wsIdle wsState = iota
	wsConnecting
	wsOpen
)

// WSTransport is a Transport over a websocket carrying text frames.
type WSTransport struct {
	events     queue.Queue[Event]
	recorder   *Recorder
	outboxSize int
	readLimit  int64

	mu      sync.Mutex
	state   wsState
	outbox  chan []byte
	cancel  context.CancelFunc
	closing bool
	wg      sync.WaitGroup
}

type NewWSTransportOptions struct {
	Events queue.Queue[Event]
	// Recorder, if set, receives every inbound frame.
	Recorder   *Recorder
	OutboxSize int
	ReadLimit  int64
}

func NewWSTransport(options NewWSTransportOptions) *WSTransport {
	outboxSize := options.OutboxSize
	if outboxSize <= 0 {
		outboxSize = DefaultOutboxSize
	}
	readLimit := options.ReadLimit
	if readLimit <= 0 {
		readLimit = DefaultReadLimit
	}
	return &WSTransport{
		events:     options.Events,
		recorder:   options.Recorder,
		outboxSize: outboxSize,
		readLimit:  readLimit,
	}
}

func (t *WSTransport) Open(ctx context.Context, address string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != wsIdle {
		return ErrAlreadyOpen
	}

	// lifetime outlives Close so the final events still reach the consumer
	lifetime := ctx
	ctx, cancel := context.WithCancel(lifetime)
	t.state = wsConnecting
	t.cancel = cancel
	t.closing = false

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		defer cancel()
		t.run(ctx, lifetime, cancel, address)
	}()
	return nil
}

func (t *WSTransport) run(ctx, lifetime context.Context, cancel context.CancelFunc, address string) {
	log.Info("Connecting to WebSocket server at %s", address)
	conn, _, err := websocket.Dial(ctx, address, nil)
	if err != nil {
		if t.isClosing() {
			t.finish(lifetime, Event{Kind: EventClose, Err: &ErrConnectionClosedByClient{}})
			return
		}
		t.finish(
			lifetime,
			Event{Kind: EventError, Err: fmt.Errorf("failed to connect to server: %v", err)},
			Event{Kind: EventClose, Err: err},
		)
		return
	}
	conn.SetReadLimit(t.readLimit)

	outbox := make(chan []byte, t.outboxSize)
	t.mu.Lock()
	t.outbox = outbox
	t.state = wsOpen
	t.mu.Unlock()
	post(lifetime, t.events, Event{Kind: EventOpen})

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		t.writeLoop(ctx, conn, outbox)
	}()

	err = t.readLoop(ctx, conn)
	cancel()
	<-writerDone
	conn.Close(websocket.StatusNormalClosure, "")

	switch {
	case t.isClosing():
		t.finish(lifetime, Event{Kind: EventClose, Err: &ErrConnectionClosedByClient{}})
	case websocket.CloseStatus(err) != -1:
		t.finish(lifetime, Event{Kind: EventClose, Err: &ErrConnectionClosedByServer{Reason: closeReason(err)}})
	default:
		log.Error("Error reading WebSocket message from %s: %v", address, err)
		t.finish(lifetime, Event{Kind: EventError, Err: err}, Event{Kind: EventClose, Err: err})
	}
}

func (t *WSTransport) readLoop(ctx context.Context, conn *websocket.Conn) error {
	for {
		typ, b, err := conn.Read(ctx)
		if err != nil {
			return err
		}
		if typ != websocket.MessageText {
			log.Warn("Ignoring non-text frame (type %v) from WebSocket server", typ)
			continue
		}
		if t.recorder != nil {
			if err := t.recorder.Record(b); err != nil {
				log.Warn("Failed to record frame: %v", err)
			}
		}
		if err := post(ctx, t.events, Event{Kind: EventMessage, Data: b}); err != nil {
			return err
		}
	}
}

func (t *WSTransport) writeLoop(ctx context.Context, conn *websocket.Conn, outbox <-chan []byte) {
	for {
		select {
		case <-ctx.Done():
			return
		case b := <-outbox:
			if err := conn.Write(ctx, websocket.MessageText, b); err != nil {
				if ctx.Err() == nil {
					log.Error("Failed to write message to WebSocket connection: %v", err)
				}
				return
			}
		}
	}
}

// finish returns the transport to idle before posting the final events so
// that a handler reacting to the close can open again.
func (t *WSTransport) finish(ctx context.Context, events ...Event) {
	t.mu.Lock()
	t.state = wsIdle
	t.outbox = nil
	t.cancel = nil
	t.mu.Unlock()
	for _, ev := range events {
		if post(ctx, t.events, ev) != nil {
			return
		}
	}
}

func (t *WSTransport) isClosing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closing
}

// Send queues b for the writer. It never blocks.
func (t *WSTransport) Send(b []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != wsOpen {
		return ErrNotConnected
	}
	select {
	case t.outbox <- b:
		return nil
	default:
		return ErrOutboxFull
	}
}

// Close ends the current connection attempt. The close event follows once
// the connection is torn down.
func (t *WSTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == wsIdle {
		log.Warn("WebSocket connection is already closed")
		return nil
	}
	t.closing = true
	t.cancel()
	return nil
}

// Wait blocks until the connection goroutines have exited.
func (t *WSTransport) Wait() {
	t.wg.Wait()
}

func closeReason(err error) string {
	var ce websocket.CloseError
	if errors.As(err, &ce) {
		if ce.Reason != "" {
			return ce.Reason
		}
		return fmt.Sprintf("status %d", ce.Code)
	}
	return ""
}
