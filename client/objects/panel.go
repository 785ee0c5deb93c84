package objects

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// PanelObject is a filled rectangle whose fill and outline are read every frame.
type PanelObject struct {
	*BaseObject

	x, y    float32
	w, h    float32
	fill    func() color.Color
	outline func() color.Color
}

type NewPanelObjectOptions struct {
	// X is the x-coordinate of the panel.
	X float32
	// Y is the y-coordinate of the panel.
	Y float32
	// W is the width of the panel.
	W float32
	// H is the height of the panel.
	H float32
	// Fill returns the fill color.
	Fill func() color.Color
	// Outline returns the outline color, nil for none.
	Outline func() color.Color
}

func NewPanelObject(id string, opts NewPanelObjectOptions) *PanelObject {
	return &PanelObject{
		BaseObject: NewBaseObject(id),
		x:          opts.X,
		y:          opts.Y,
		w:          opts.W,
		h:          opts.H,
		fill:       opts.Fill,
		outline:    opts.Outline,
	}
}

func (o *PanelObject) Draw(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, o.x, o.y, o.w, o.h, o.fill(), false)
	if o.outline == nil {
		return
	}
	if clr := o.outline(); clr != nil {
		vector.StrokeRect(screen, o.x, o.y, o.w, o.h, 3, clr, false)
	}
}
