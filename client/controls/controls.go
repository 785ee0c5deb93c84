package controls

import (
	"image"

	"github.com/cbodonnell/arena/client/input"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var keyCodes = map[ebiten.Key]string{
	ebiten.KeyW:          input.KeyW,
	ebiten.KeyA:          input.KeyA,
	ebiten.KeyS:          input.KeyS,
	ebiten.KeyD:          input.KeyD,
	ebiten.KeyE:          input.KeyE,
	ebiten.KeyArrowUp:    input.KeyArrowUp,
	ebiten.KeyArrowDown:  input.KeyArrowDown,
	ebiten.KeyArrowLeft:  input.KeyArrowLeft,
	ebiten.KeyArrowRight: input.KeyArrowRight,
	ebiten.KeySpace:      input.KeySpace,
	ebiten.KeyShiftLeft:  input.KeyShiftLeft,
}

// Poller turns ebiten's polled input state into press and release events on
// a Sampler. Call Poll once per Update.
type Poller struct {
	sampler      *input.Sampler
	touchButtons []input.TouchButton
	touchHeld    map[string]bool
	touchIDs     []ebiten.TouchID
}

func NewPoller(sampler *input.Sampler, touchButtons []input.TouchButton) *Poller {
	return &Poller{
		sampler:      sampler,
		touchButtons: touchButtons,
		touchHeld:    make(map[string]bool),
	}
}

func (p *Poller) Poll() {
	for key, id := range keyCodes {
		if inpututil.IsKeyJustPressed(key) {
			p.sampler.Press(id)
		}
		if inpututil.IsKeyJustReleased(key) {
			p.sampler.Release(id)
		}
	}

	x, y := ebiten.CursorPosition()
	p.sampler.MoveTo(float64(x), float64(y))
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		p.sampler.PointerPress()
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		p.sampler.PointerRelease()
	}

	p.pollTouches()
}

func (p *Poller) pollTouches() {
	p.touchIDs = ebiten.AppendTouchIDs(p.touchIDs[:0])
	if len(p.touchIDs) == 0 && len(p.touchHeld) == 0 {
		return
	}

	points := make([]image.Point, 0, len(p.touchIDs))
	for _, id := range p.touchIDs {
		x, y := ebiten.TouchPosition(id)
		points = append(points, image.Pt(x, y))
	}

	held, aim, aiming := input.TouchState(p.touchButtons, points)
	if aiming {
		p.sampler.MoveTo(float64(aim.X), float64(aim.Y))
	}
	p.touchHeld = input.ApplyTouches(p.sampler, p.touchHeld, held)
}

// IsPositiveJustPressed returns a boolean value indicating whether the generic positive input is just pressed.
// This is used to handle both keyboard and touch inputs.
func IsPositiveJustPressed() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		return true
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return true
	}
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	return len(touchIDs) > 0
}

// IsNegativeJustPressed returns a boolean value indicating whether the generic negative input is just pressed.
func IsNegativeJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape)
}

// IsSubmitJustPressed reports whether Enter was just pressed. Pointer input is
// left to the focused widgets.
func IsSubmitJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter)
}

func IsReadyToggleJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyR)
}

// JustClicked returns where the mouse or a touch was just pressed.
func JustClicked() (image.Point, bool) {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return image.Pt(ebiten.CursorPosition()), true
	}
	if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
		return image.Pt(ebiten.TouchPosition(ids[0])), true
	}
	return image.Point{}, false
}

// JustPressedDigit returns the 1-based digit key pressed this frame, or 0.
func JustPressedDigit() int {
	digits := []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5, ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9}
	for i, k := range digits {
		if inpututil.IsKeyJustPressed(k) {
			return i + 1
		}
	}
	return 0
}
