package input

import (
	"image"
	"testing"

	"github.com/cbodonnell/arena/client/schedule"
	"github.com/stretchr/testify/assert"
)

func TestTouchState(t *testing.T) {
	buttons := DefaultTouchButtons()

	tests := []struct {
		name       string
		points     []image.Point
		wantHeld   map[string]bool
		wantAim    image.Point
		wantAiming bool
	}{
		{
			name:     "no touches",
			wantHeld: map[string]bool{},
		},
		{
			name:     "move pad and attack",
			points:   []image.Point{image.Pt(100, 460), image.Pt(750, 500)},
			wantHeld: map[string]bool{KeyW: true, PointerPrimary: true},
		},
		{
			name:       "free touch aims",
			points:     []image.Point{image.Pt(400, 300), image.Pt(650, 520)},
			wantHeld:   map[string]bool{KeySpace: true},
			wantAim:    image.Pt(400, 300),
			wantAiming: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			held, aim, aiming := TouchState(buttons, tt.points)
			assert.Equal(t, tt.wantHeld, held)
			assert.Equal(t, tt.wantAim, aim)
			assert.Equal(t, tt.wantAiming, aiming)
		})
	}
}

func TestDefaultTouchButtonsUseTrackedIdentifiers(t *testing.T) {
	tracked := map[string]bool{}
	for _, id := range Tracked {
		tracked[id] = true
	}
	for _, b := range DefaultTouchButtons() {
		assert.True(t, tracked[b.ID], b.ID)
	}
}

func TestApplyTouches(t *testing.T) {
	sched := schedule.New(epoch)
	s := NewSampler(sched)

	held := ApplyTouches(s, map[string]bool{}, map[string]bool{KeyW: true, PointerPrimary: true})
	assert.True(t, s.Held(KeyW))
	assert.True(t, s.Held(PointerPrimary))
	assert.Equal(t, 1, sched.PendingTimers())

	held = ApplyTouches(s, held, map[string]bool{KeyW: true})
	assert.True(t, s.Held(KeyW))
	assert.False(t, s.Held(PointerPrimary))
	assert.Equal(t, 0, sched.PendingTimers())

	ApplyTouches(s, held, map[string]bool{})
	assert.False(t, s.Held(KeyW))
}
