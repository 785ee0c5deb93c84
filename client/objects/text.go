package objects

import (
	"image/color"

	"github.com/cbodonnell/arena/client/fonts"
	"github.com/cbodonnell/arena/client/render"
	"github.com/cbodonnell/arena/client/theme"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
)

// TextObject draws text that is read again every frame.
type TextObject struct {
	*BaseObject

	text     func() string
	x        float64
	y        float64
	color    color.Color
	face     font.Face
	centered bool
}

type NewTextObjectOptions struct {
	// Text returns the text to display.
	Text func() string
	// X is the x-coordinate of the text, its center when Centered.
	X float64
	// Y is the y-coordinate of the baseline, or the center when Centered.
	Y float64
	// Color defaults to the theme text color.
	Color color.Color
	// Face defaults to the small font.
	Face     font.Face
	Centered bool
}

func NewTextObject(id string, opts NewTextObjectOptions) *TextObject {
	clr := opts.Color
	if clr == nil {
		clr = theme.Text
	}
	face := opts.Face
	if face == nil {
		face = fonts.TTFSmallFont
	}
	return &TextObject{
		BaseObject: NewBaseObject(id),
		text:       opts.Text,
		x:          opts.X,
		y:          opts.Y,
		color:      clr,
		face:       face,
		centered:   opts.Centered,
	}
}

func (o *TextObject) Draw(screen *ebiten.Image) {
	t := o.text()
	if t == "" {
		return
	}
	if o.centered {
		render.DrawCentered(screen, t, o.face, o.x, o.y, o.color)
		return
	}
	text.Draw(screen, t, o.face, int(o.x), int(o.y), o.color)
}
