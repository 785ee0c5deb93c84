package schedule

import (
	"sort"
	"time"
)

// Scheduler runs one-shot timers and animation-frame callbacks on the
// goroutine that calls Advance. It is not safe for concurrent use; the game
// loop owns it.
type Scheduler struct {
	now    time.Time
	seq    uint64
	timers []*Timer
	frames []*Frame
}

// Timer is a pending one-shot callback.
type Timer struct {
	s        *Scheduler
	seq      uint64
	deadline time.Time
	fn       func()
	stopped  bool
	fired    bool
}

// Frame is a pending animation-frame callback.
type Frame struct {
	s        *Scheduler
	fn       func(now time.Time)
	canceled bool
}

func New(now time.Time) *Scheduler {
	return &Scheduler{now: now}
}

// Now returns the time of the last Advance.
func (s *Scheduler) Now() time.Time {
	return s.now
}

// AfterFunc schedules fn to run on the first Advance at or after now+d.
func (s *Scheduler) AfterFunc(d time.Duration, fn func()) *Timer {
	s.seq++
	t := &Timer{
		s:        s,
		seq:      s.seq,
		deadline: s.now.Add(d),
		fn:       fn,
	}
	s.timers = append(s.timers, t)
	return t
}

// Stop prevents the timer from firing. It reports whether the call stopped
// the timer, false if it already fired or was stopped.
func (t *Timer) Stop() bool {
	if t == nil || t.stopped || t.fired {
		return false
	}
	t.stopped = true
	t.s.removeTimer(t)
	return true
}

// Pending reports whether the timer will still fire.
func (t *Timer) Pending() bool {
	return t != nil && !t.stopped && !t.fired
}

// RequestFrame schedules fn for the next Advance. Frames requested from
// inside a frame callback run on the Advance after that.
func (s *Scheduler) RequestFrame(fn func(now time.Time)) *Frame {
	f := &Frame{s: s, fn: fn}
	s.frames = append(s.frames, f)
	return f
}

// Cancel drops the frame if it has not run yet.
func (f *Frame) Cancel() {
	if f == nil || f.canceled {
		return
	}
	f.canceled = true
	f.s.removeFrame(f)
}

// PendingFrames returns the number of frame callbacks waiting to run.
func (s *Scheduler) PendingFrames() int {
	return len(s.frames)
}

// PendingTimers returns the number of timers waiting to fire.
func (s *Scheduler) PendingTimers() int {
	return len(s.timers)
}

// Advance moves the clock to now, fires every due timer in deadline order and
// then runs the frames that were requested before this call.
func (s *Scheduler) Advance(now time.Time) {
	if now.After(s.now) {
		s.now = now
	}

	for {
		t := s.nextDue()
		if t == nil {
			break
		}
		s.removeTimer(t)
		t.fired = true
		t.fn()
	}

	frames := s.frames
	s.frames = nil
	for _, f := range frames {
		// a callback may cancel frames queued alongside it
		if f.canceled {
			continue
		}
		f.canceled = true
		f.fn(s.now)
	}
}

func (s *Scheduler) nextDue() *Timer {
	if len(s.timers) == 0 {
		return nil
	}
	sort.SliceStable(s.timers, func(i, j int) bool {
		if s.timers[i].deadline.Equal(s.timers[j].deadline) {
			return s.timers[i].seq < s.timers[j].seq
		}
		return s.timers[i].deadline.Before(s.timers[j].deadline)
	})
	if s.timers[0].deadline.After(s.now) {
		return nil
	}
	return s.timers[0]
}

func (s *Scheduler) removeTimer(t *Timer) {
	for i, other := range s.timers {
		if other == t {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return
		}
	}
}

func (s *Scheduler) removeFrame(f *Frame) {
	for i, other := range s.frames {
		if other == f {
			s.frames = append(s.frames[:i], s.frames[i+1:]...)
			return
		}
	}
}
