package scenes

import (
	"fmt"
	"image/color"

	"github.com/cbodonnell/arena/client/controls"
	"github.com/cbodonnell/arena/client/fonts"
	"github.com/cbodonnell/arena/client/objects"
	"github.com/cbodonnell/arena/client/roster"
	"github.com/cbodonnell/arena/client/session"
	"github.com/cbodonnell/arena/client/theme"
	"github.com/cbodonnell/arena/client/ui"
	"github.com/cbodonnell/arena/pkg/log"
	"github.com/ebitenui/ebitenui"
)

const (
	slotWidth   = 160
	slotHeight  = 120
	slotSpacing = 20
	slotTop     = 160
)

// RoomScene shows the room code, the four player slots and the readiness
// summary while waiting for a match to start.
type RoomScene struct {
	*BaseScene

	machine   *session.Machine
	uiObject  *objects.UIObject
	wasReady  bool
	actionErr string
}

type RoomSceneOptions struct {
	Machine *session.Machine
}

var _ Scene = &RoomScene{}

func NewRoomScene(opts RoomSceneOptions) (Scene, error) {
	m := opts.Machine
	root := objects.NewBaseObject("room-root")

	title := objects.NewTextObject("room-code", objects.NewTextObjectOptions{
		Text:     func() string { return "Room " + m.RoomCode() },
		X:        400,
		Y:        80,
		Face:     fonts.TTFLargeFont,
		Centered: true,
	})
	if err := root.AddChild(title); err != nil {
		return nil, err
	}

	for i, r := range ui.CenteredRow(roster.MaxSlots, m.ArenaWidth(), slotWidth, slotHeight, slotSpacing, slotTop) {
		i := i
		x := float32(r.Min.X)
		slot := func() roster.DisplaySlot { return m.Roster().DisplaySlots()[i] }

		panel := objects.NewPanelObject(fmt.Sprintf("room-slot-%d", i), objects.NewPanelObjectOptions{
			X: x,
			Y: slotTop,
			W: slotWidth,
			H: slotHeight,
			Fill: func() color.Color {
				switch d := slot(); {
				case d.Empty:
					return theme.PanelEmpty
				case d.Ready:
					return theme.PanelReady
				default:
					return theme.Panel
				}
			},
			Outline: func() color.Color {
				if d := slot(); !d.Empty && d.ID == m.LocalPlayerID() {
					return theme.LocalPlayer
				}
				return nil
			},
		})
		label := objects.NewTextObject(fmt.Sprintf("room-slot-label-%d", i), objects.NewTextObjectOptions{
			Text:     func() string { return slot().Label() },
			X:        float64(x) + slotWidth/2,
			Y:        slotTop + slotHeight/2,
			Face:     fonts.TTFBoldFont,
			Centered: true,
		})
		if err := panel.AddChild(label); err != nil {
			return nil, err
		}
		if err := root.AddChild(panel); err != nil {
			return nil, err
		}
	}

	summary := objects.NewTextObject("room-summary", objects.NewTextObjectOptions{
		Text:     func() string { return m.Roster().Summary() },
		X:        400,
		Y:        slotTop + slotHeight + 50,
		Face:     fonts.TTFNormalFont,
		Centered: true,
	})
	if err := root.AddChild(summary); err != nil {
		return nil, err
	}

	uiObject := objects.NewUIObject("room-ui", nil)
	if err := root.AddChild(uiObject); err != nil {
		return nil, err
	}

	status := objects.NewTextObject("room-status", objects.NewTextObjectOptions{
		Text:     m.Status,
		X:        400,
		Y:        570,
		Color:    theme.TextDim,
		Centered: true,
	})
	if err := root.AddChild(status); err != nil {
		return nil, err
	}

	return &RoomScene{
		BaseScene: NewBaseScene(root),
		machine:   m,
		uiObject:  uiObject,
	}, nil
}

func (s *RoomScene) Init() error {
	s.renderUI()
	return s.BaseScene.Init()
}

func (s *RoomScene) Update() error {
	if controls.IsReadyToggleJustPressed() {
		s.toggleReady()
	}
	if controls.IsNegativeJustPressed() {
		s.machine.Disconnect()
		return nil
	}
	if s.machine.IsReady() != s.wasReady {
		s.renderUI()
	}
	return s.BaseScene.Update()
}

func (s *RoomScene) toggleReady() {
	if err := s.machine.ToggleReady(); err != nil {
		log.Debug("Failed to toggle ready: %v", err)
		s.actionErr = ui.MessageFor(err, "Failed to change ready state")
	} else {
		s.actionErr = ""
	}
	s.renderUI()
}

func (s *RoomScene) renderUI() {
	s.wasReady = s.machine.IsReady()
	fontFace := fonts.TTFNormalFont

	rootContainer := newColumn(slotTop+slotHeight+90, 240)

	label, img := "Ready (R)", positiveButtonImage
	if s.wasReady {
		label, img = "Not Ready (R)", neutralButtonImage
	}
	rootContainer.AddChild(newButton(label, img, fontFace, s.toggleReady))
	rootContainer.AddChild(newButton("Leave (Esc)", negativeButtonImage, fontFace, s.machine.Disconnect))

	if s.actionErr != "" {
		rootContainer.AddChild(newLabel(s.actionErr, fonts.TTFSmallFont, theme.TextError))
	}

	s.uiObject.SetUI(&ebitenui.UI{
		Container: rootContainer,
	})
}
