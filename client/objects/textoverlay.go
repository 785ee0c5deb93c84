package objects

import (
	"strings"

	"github.com/cbodonnell/arena/client/fonts"
	"github.com/cbodonnell/arena/client/render"
	"github.com/cbodonnell/arena/client/theme"
	"github.com/hajimehoshi/ebiten/v2"
)

// TextOverlayObject draws a large centered title with an optional subtitle below it.
type TextOverlayObject struct {
	*BaseObject

	text     string
	subtitle func() string
}

func NewTextOverlayObject(id string, text string, subtitle func() string) GameObject {
	return &TextOverlayObject{
		BaseObject: NewBaseObject(id),
		text:       text,
		subtitle:   subtitle,
	}
}

func (o *TextOverlayObject) Draw(screen *ebiten.Image) {
	cx := float64(screen.Bounds().Dx()) / 2
	cy := float64(screen.Bounds().Dy()) / 2
	render.DrawCentered(screen, strings.ToUpper(o.text), fonts.TTFLargeFont, cx, cy-30, theme.Text)
	if o.subtitle == nil {
		return
	}
	if sub := o.subtitle(); sub != "" {
		render.DrawCentered(screen, sub, fonts.TTFNormalFont, cx, cy+30, theme.TextDim)
	}
}
