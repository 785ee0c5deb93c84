package input

import "image"

// TouchButton is an on-screen region that holds an identifier while touched.
type TouchButton struct {
	ID     string
	Bounds image.Rectangle
}

// DefaultTouchButtons lays out a movement pad on the left and dash/attack on
// the right of an 800x600 screen.
func DefaultTouchButtons() []TouchButton {
	return []TouchButton{
		{ID: KeyW, Bounds: image.Rect(70, 430, 130, 490)},
		{ID: KeyA, Bounds: image.Rect(10, 490, 70, 550)},
		{ID: KeyS, Bounds: image.Rect(70, 490, 130, 550)},
		{ID: KeyD, Bounds: image.Rect(130, 490, 190, 550)},
		{ID: KeySpace, Bounds: image.Rect(620, 480, 700, 560)},
		{ID: PointerPrimary, Bounds: image.Rect(710, 460, 790, 540)},
	}
}

// TouchState maps touch points onto buttons. Touches that hit no button aim
// the pointer; the last such touch wins.
func TouchState(buttons []TouchButton, points []image.Point) (held map[string]bool, aim image.Point, aiming bool) {
	held = make(map[string]bool)
	for _, pt := range points {
		hit := false
		for _, b := range buttons {
			if pt.In(b.Bounds) {
				held[b.ID] = true
				hit = true
			}
		}
		if !hit {
			aim, aiming = pt, true
		}
	}
	return held, aim, aiming
}

// ApplyTouches presses and releases sampler identifiers for the change from
// the previously held set to the current one and returns the current set.
func ApplyTouches(s *Sampler, prev, next map[string]bool) map[string]bool {
	for id := range next {
		if prev[id] {
			continue
		}
		if id == PointerPrimary {
			s.PointerPress()
		} else {
			s.Press(id)
		}
	}
	for id := range prev {
		if next[id] {
			continue
		}
		if id == PointerPrimary {
			s.PointerRelease()
		} else {
			s.Release(id)
		}
	}
	return next
}
