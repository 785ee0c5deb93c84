package scenes

import (
	"github.com/cbodonnell/arena/client/controls"
	"github.com/cbodonnell/arena/client/fonts"
	"github.com/cbodonnell/arena/client/objects"
	"github.com/cbodonnell/arena/client/session"
	"github.com/cbodonnell/arena/client/theme"
	"github.com/cbodonnell/arena/client/ui"
	"github.com/cbodonnell/arena/pkg/log"
	"github.com/ebitenui/ebitenui"
)

type GameOverScene struct {
	*BaseScene

	machine   *session.Machine
	uiObject  *objects.UIObject
	actionErr string
}

type GameOverSceneOptions struct {
	Machine *session.Machine
}

var _ Scene = &GameOverScene{}

func NewGameOverScene(opts GameOverSceneOptions) (Scene, error) {
	m := opts.Machine
	root := objects.NewBaseObject("gameover-root")
	overlay := objects.NewTextOverlayObject("overlay-gameover", "Game Over!", func() string {
		return m.GameOver().Message
	})
	if err := root.AddChild(overlay); err != nil {
		return nil, err
	}
	uiObject := objects.NewUIObject("gameover-ui", nil)
	if err := root.AddChild(uiObject); err != nil {
		return nil, err
	}
	return &GameOverScene{
		BaseScene: NewBaseScene(root),
		machine:   m,
		uiObject:  uiObject,
	}, nil
}

func (s *GameOverScene) Init() error {
	s.renderUI()
	return s.BaseScene.Init()
}

func (s *GameOverScene) Update() error {
	if controls.IsSubmitJustPressed() {
		s.returnToLobby()
		return nil
	}
	if controls.IsNegativeJustPressed() {
		s.machine.Disconnect()
		return nil
	}
	return s.BaseScene.Update()
}

func (s *GameOverScene) returnToLobby() {
	if err := s.machine.ReturnToLobby(); err != nil {
		log.Debug("Failed to return to lobby: %v", err)
		s.actionErr = ui.MessageFor(err, "Failed to return to the room")
		s.renderUI()
	}
}

func (s *GameOverScene) renderUI() {
	rootContainer := newColumn(400, 240)
	rootContainer.AddChild(newButton("Back to Room (Enter)", positiveButtonImage, fonts.TTFNormalFont, s.returnToLobby))
	if s.actionErr != "" {
		rootContainer.AddChild(newLabel(s.actionErr, fonts.TTFSmallFont, theme.TextError))
	}
	s.uiObject.SetUI(&ebitenui.UI{
		Container: rootContainer,
	})
}
