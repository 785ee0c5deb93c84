package scenes

import (
	"image/color"

	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"golang.org/x/image/font"
)

var (
	neutralButtonImage = &widget.ButtonImage{
		Idle:     image.NewNineSliceColor(color.NRGBA{R: 170, G: 170, B: 180, A: 255}),
		Hover:    image.NewNineSliceColor(color.NRGBA{R: 135, G: 135, B: 150, A: 255}),
		Pressed:  image.NewNineSliceColor(color.NRGBA{R: 100, G: 100, B: 120, A: 255}),
		Disabled: image.NewNineSliceColor(color.NRGBA{R: 80, G: 80, B: 90, A: 255}),
	}

	positiveButtonImage = &widget.ButtonImage{
		Idle:     image.NewNineSliceColor(color.NRGBA{R: 46, G: 160, B: 90, A: 255}),
		Hover:    image.NewNineSliceColor(color.NRGBA{R: 36, G: 130, B: 72, A: 255}),
		Pressed:  image.NewNineSliceColor(color.NRGBA{R: 26, G: 100, B: 56, A: 255}),
		Disabled: image.NewNineSliceColor(color.NRGBA{R: 80, G: 80, B: 90, A: 255}),
	}

	negativeButtonImage = &widget.ButtonImage{
		Idle:     image.NewNineSliceColor(color.NRGBA{R: 170, G: 60, B: 60, A: 255}),
		Hover:    image.NewNineSliceColor(color.NRGBA{R: 140, G: 45, B: 45, A: 255}),
		Pressed:  image.NewNineSliceColor(color.NRGBA{R: 110, G: 35, B: 35, A: 255}),
		Disabled: image.NewNineSliceColor(color.NRGBA{R: 80, G: 80, B: 90, A: 255}),
	}
)

func newColumn(top, sides int) *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(16),
			widget.RowLayoutOpts.Padding(widget.Insets{
				Top:    top,
				Left:   sides,
				Right:  sides,
				Bottom: 40,
			}))),
	)
}

func newRow() *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(12),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{
				Position: widget.RowLayoutPositionCenter,
			}),
		),
	)
}

func newLabel(text string, face font.Face, clr color.Color) *widget.Text {
	return widget.NewText(
		widget.TextOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{
				Position: widget.RowLayoutPositionCenter,
			}),
		),
		widget.TextOpts.Text(text, face, clr),
	)
}

func newTextInput(placeholder, initial string, face font.Face, onChange func(string)) *widget.TextInput {
	input := widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{
				Position: widget.RowLayoutPositionCenter,
				Stretch:  true,
			}),
		),
		widget.TextInputOpts.MobileInputMode("text"),
		widget.TextInputOpts.Image(&widget.TextInputImage{
			Idle:     image.NewNineSliceColor(color.NRGBA{R: 100, G: 100, B: 100, A: 255}),
			Disabled: image.NewNineSliceColor(color.NRGBA{R: 100, G: 100, B: 100, A: 255}),
		}),
		widget.TextInputOpts.Face(face),
		widget.TextInputOpts.Color(&widget.TextInputColor{
			Idle:          color.NRGBA{254, 255, 255, 255},
			Disabled:      color.NRGBA{R: 200, G: 200, B: 200, A: 255},
			Caret:         color.NRGBA{254, 255, 255, 255},
			DisabledCaret: color.NRGBA{R: 200, G: 200, B: 200, A: 255},
		}),
		widget.TextInputOpts.Padding(widget.NewInsetsSimple(5)),
		widget.TextInputOpts.CaretOpts(
			widget.CaretOpts.Size(face, 2),
		),
		widget.TextInputOpts.Placeholder(placeholder),
		widget.TextInputOpts.ChangedHandler(func(args *widget.TextInputChangedEventArgs) {
			onChange(args.InputText)
		}),
	)
	input.SetText(initial)
	return input
}

func newButton(label string, img *widget.ButtonImage, face font.Face, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{
				Position: widget.RowLayoutPositionCenter,
				Stretch:  true,
			}),
		),
		widget.ButtonOpts.Image(img),
		widget.ButtonOpts.Text(label, face, &widget.ButtonTextColor{
			Idle:     color.NRGBA{254, 255, 255, 255},
			Disabled: color.NRGBA{R: 200, G: 200, B: 200, A: 255},
		}),
		widget.ButtonOpts.TextPadding(widget.Insets{
			Left:   30,
			Right:  30,
			Top:    5,
			Bottom: 5,
		}),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}
