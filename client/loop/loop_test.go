package loop

import (
	"testing"
	"time"

	"github.com/cbodonnell/arena/client/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type harness struct {
	sched   *schedule.Scheduler
	loop    *Loop
	steps   []string
	dts     []time.Duration
	playing bool
	now     time.Time
}

func newHarness() *harness {
	h := &harness{sched: schedule.New(epoch), playing: true, now: epoch}
	h.loop = New(h.sched,
		func(dt time.Duration) {
			h.steps = append(h.steps, "update")
			h.dts = append(h.dts, dt)
		},
		func() { h.steps = append(h.steps, "render") },
		func() bool { return h.playing },
	)
	return h
}

func (h *harness) frame() {
	h.now = h.now.Add(16 * time.Millisecond)
	h.sched.Advance(h.now)
}

func TestLoop_TickOrderAndElapsed(t *testing.T) {
	h := newHarness()
	require.True(t, h.loop.Start())

	h.frame()
	h.frame()
	h.frame()

	assert.Equal(t, []string{"update", "render", "update", "render", "update", "render"}, h.steps)
	assert.Equal(t, []time.Duration{0, 16 * time.Millisecond, 16 * time.Millisecond}, h.dts)
	assert.Equal(t, 1, h.sched.PendingFrames())
}

func TestLoop_StartIsIdempotent(t *testing.T) {
	h := newHarness()
	assert.True(t, h.loop.Start())
	assert.False(t, h.loop.Start())
	assert.Equal(t, 1, h.sched.PendingFrames())

	h.frame()
	assert.False(t, h.loop.Start())
	assert.Equal(t, 1, h.sched.PendingFrames())
	assert.Equal(t, []string{"update", "render"}, h.steps)
}

func TestLoop_StopCancelsPendingFrame(t *testing.T) {
	h := newHarness()
	h.loop.Start()
	h.frame()

	h.loop.Stop()
	assert.False(t, h.loop.Running())
	assert.Equal(t, 0, h.sched.PendingFrames())

	h.frame()
	assert.Len(t, h.steps, 2)
}

func TestLoop_DoesNotRescheduleWhenInactive(t *testing.T) {
	h := newHarness()
	h.loop.Start()
	h.frame()

	h.playing = false
	h.frame()
	assert.False(t, h.loop.Running())
	assert.Equal(t, 0, h.sched.PendingFrames())
	assert.Len(t, h.steps, 4)
}

func TestLoop_RestartDoesNotAccumulate(t *testing.T) {
	h := newHarness()
	for i := 0; i < 5; i++ {
		h.loop.Start()
		h.frame()
		h.loop.Stop()
		h.loop.Start()
		assert.Equal(t, 1, h.sched.PendingFrames())
		h.loop.Stop()
		assert.Equal(t, 0, h.sched.PendingFrames())
	}
}

func TestLoop_StopAndStartInsideTick(t *testing.T) {
	h := newHarness()
	h.loop = New(h.sched,
		func(time.Duration) {
			h.loop.Stop()
			h.loop.Start()
		},
		func() {},
		func() bool { return true },
	)
	h.loop.Start()
	h.frame()

	assert.True(t, h.loop.Running())
	assert.Equal(t, 1, h.sched.PendingFrames())
}

func TestLoop_ElapsedResetsOnRestart(t *testing.T) {
	h := newHarness()
	h.loop.Start()
	h.frame()
	h.frame()
	h.loop.Stop()

	h.now = h.now.Add(time.Second)
	h.loop.Start()
	h.frame()
	assert.Equal(t, time.Duration(0), h.dts[len(h.dts)-1])
}
