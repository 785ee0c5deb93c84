package input

import (
	"time"

	"github.com/cbodonnell/arena/client/schedule"
	"github.com/cbodonnell/arena/pkg/messages"
)

// Input identifiers sent to the server. They follow browser key codes.
const (
	KeyW          = "KeyW"
	KeyA          = "KeyA"
	KeyS          = "KeyS"
	KeyD          = "KeyD"
	KeyE          = "KeyE"
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeySpace      = "Space"
	KeyShiftLeft  = "ShiftLeft"
	// PointerPrimary is the synthetic identifier for a primary pointer press.
	PointerPrimary = "Mouse0"
)

// Tracked is every identifier reported in each input sample.
var Tracked = []string{
	KeyW, KeyA, KeyS, KeyD, KeyE,
	KeyArrowUp, KeyArrowDown, KeyArrowLeft, KeyArrowRight,
	KeySpace, KeyShiftLeft, PointerPrimary,
}

// ClickPulse is how long a pointer press stays held when no release arrives.
const ClickPulse = 100 * time.Millisecond

type TimerScheduler interface {
	AfterFunc(d time.Duration, fn func()) *schedule.Timer
}

// Sampler holds the current held state of every input identifier and the
// pointer position. Events update it as they arrive; the render loop reads
// one Sample per frame.
type Sampler struct {
	timers     TimerScheduler
	held       map[string]bool
	mouseX     float64
	mouseY     float64
	clickTimer *schedule.Timer
}

func NewSampler(timers TimerScheduler) *Sampler {
	s := &Sampler{timers: timers}
	s.Reset()
	return s
}

func (s *Sampler) Press(id string) {
	s.held[id] = true
}

func (s *Sampler) Release(id string) {
	s.held[id] = false
}

// PointerPress holds PointerPrimary and arms the release pulse.
func (s *Sampler) PointerPress() {
	s.held[PointerPrimary] = true
	s.clickTimer.Stop()
	s.clickTimer = s.timers.AfterFunc(ClickPulse, func() {
		s.held[PointerPrimary] = false
	})
}

// PointerRelease releases PointerPrimary and disarms the pulse.
func (s *Sampler) PointerRelease() {
	s.held[PointerPrimary] = false
	s.clickTimer.Stop()
	s.clickTimer = nil
}

func (s *Sampler) MoveTo(x, y float64) {
	s.mouseX, s.mouseY = x, y
}

func (s *Sampler) Held(id string) bool {
	return s.held[id]
}

// Sample returns the input command for this frame.
func (s *Sampler) Sample() messages.Input {
	keys := make(map[string]bool, len(s.held))
	for id, held := range s.held {
		keys[id] = held
	}
	return messages.Input{
		Keys:   keys,
		MouseX: s.mouseX,
		MouseY: s.mouseY,
	}
}

// Reset releases everything.
func (s *Sampler) Reset() {
	s.clickTimer.Stop()
	s.clickTimer = nil
	s.held = make(map[string]bool, len(Tracked))
	for _, id := range Tracked {
		s.held[id] = false
	}
}
