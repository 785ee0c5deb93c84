package loop

import (
	"time"

	"github.com/cbodonnell/arena/client/schedule"
)

type FrameRequester interface {
	RequestFrame(fn func(now time.Time)) *schedule.Frame
}

// Loop is the per-frame driver of a match. Each tick runs update with the
// time elapsed since the previous tick, then render, and requests the next
// frame only while active reports true.
type Loop struct {
	frames FrameRequester
	update func(dt time.Duration)
	render func()
	active func() bool

	frame   *schedule.Frame
	running bool
	last    time.Time
	// generation invalidates ticks of a stopped run
	generation uint64
}

func New(frames FrameRequester, update func(dt time.Duration), render func(), active func() bool) *Loop {
	return &Loop{
		frames: frames,
		update: update,
		render: render,
		active: active,
	}
}

// Start begins a run. It reports false and does nothing when a run is
// already in progress.
func (l *Loop) Start() bool {
	if l.running {
		return false
	}
	l.running = true
	l.generation++
	l.last = time.Time{}
	l.schedule()
	return true
}

// Stop ends the current run and drops its pending frame.
func (l *Loop) Stop() {
	if !l.running {
		return
	}
	l.running = false
	l.generation++
	l.frame.Cancel()
	l.frame = nil
}

func (l *Loop) Running() bool {
	return l.running
}

func (l *Loop) schedule() {
	gen := l.generation
	l.frame = l.frames.RequestFrame(func(now time.Time) {
		l.tick(gen, now)
	})
}

func (l *Loop) tick(gen uint64, now time.Time) {
	if gen != l.generation {
		return
	}
	l.frame = nil

	var dt time.Duration
	if !l.last.IsZero() {
		dt = now.Sub(l.last)
	}
	l.last = now

	l.update(dt)
	l.render()

	// update or render may have stopped or restarted the loop
	if gen != l.generation {
		return
	}
	if !l.active() {
		l.running = false
		return
	}
	l.schedule()
}
