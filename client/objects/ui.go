package objects

import (
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
)

// UIObject places an ebitenui UI in an object tree.
type UIObject struct {
	*BaseObject

	ui *ebitenui.UI
}

func NewUIObject(id string, ui *ebitenui.UI) *UIObject {
	return &UIObject{
		BaseObject: NewBaseObject(id),
		ui:         ui,
	}
}

// SetUI replaces the UI, for scenes that rebuild their widgets.
func (o *UIObject) SetUI(ui *ebitenui.UI) {
	o.ui = ui
}

func (o *UIObject) Update() error {
	if o.ui != nil {
		o.ui.Update()
	}
	return nil
}

func (o *UIObject) Draw(screen *ebiten.Image) {
	if o.ui != nil {
		o.ui.Draw(screen)
	}
}
