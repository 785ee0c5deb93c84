package scenes

import (
	"context"

	"github.com/cbodonnell/arena/client/controls"
	"github.com/cbodonnell/arena/client/flow"
	"github.com/cbodonnell/arena/client/fonts"
	"github.com/cbodonnell/arena/client/objects"
	"github.com/cbodonnell/arena/client/session"
	"github.com/cbodonnell/arena/client/theme"
	"github.com/cbodonnell/arena/client/ui"
	"github.com/cbodonnell/arena/pkg/log"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
)

// MenuScene covers every phase before a room is joined: entering the
// server address, waiting for the handshake and creating or joining a room.
type MenuScene struct {
	*BaseScene

	ctx       context.Context
	machine   *session.Machine
	onConnect func(playerName, serverAddress string)

	uiObject      *objects.UIObject
	renderedPhase flow.Phase
	playerName    string
	serverAddress string
	roomCode      string
	actionErr     string
}

type MenuSceneOptions struct {
	Ctx     context.Context
	Machine *session.Machine
	// PlayerName and ServerAddress prefill the inputs.
	PlayerName    string
	ServerAddress string
	// OnConnect is called after a connection attempt was started.
	OnConnect func(playerName, serverAddress string)
}

var _ Scene = &MenuScene{}

func NewMenuScene(opts MenuSceneOptions) (Scene, error) {
	root := objects.NewBaseObject("menu-root")
	uiObject := objects.NewUIObject("menu-ui", nil)
	if err := root.AddChild(uiObject); err != nil {
		return nil, err
	}
	status := objects.NewTextObject("menu-status", objects.NewTextObjectOptions{
		Text:     opts.Machine.Status,
		X:        400,
		Y:        570,
		Color:    theme.TextDim,
		Centered: true,
	})
	if err := root.AddChild(status); err != nil {
		return nil, err
	}

	return &MenuScene{
		BaseScene:     NewBaseScene(root),
		ctx:           opts.Ctx,
		machine:       opts.Machine,
		onConnect:     opts.OnConnect,
		uiObject:      uiObject,
		playerName:    opts.PlayerName,
		serverAddress: opts.ServerAddress,
	}, nil
}

func (s *MenuScene) Init() error {
	s.renderUI()
	return s.BaseScene.Init()
}

func (s *MenuScene) Update() error {
	if s.machine.Phase() != s.renderedPhase {
		s.actionErr = ""
		s.renderUI()
	}
	if s.machine.Phase() == flow.PhaseDisconnected && ebiten.IsFocused() && controls.IsSubmitJustPressed() {
		s.connect()
	}
	return s.BaseScene.Update()
}

func (s *MenuScene) connect() {
	if err := s.machine.Connect(s.ctx, s.serverAddress); err != nil {
		s.fail("Failed to connect", err)
		return
	}
	if s.onConnect != nil {
		s.onConnect(s.playerName, s.serverAddress)
	}
	s.renderUI()
}

func (s *MenuScene) fail(what string, err error) {
	log.Debug("%s: %v", what, err)
	s.actionErr = ui.MessageFor(err, what)
	s.renderUI()
}

func (s *MenuScene) renderUI() {
	s.renderedPhase = s.machine.Phase()
	fontFace := fonts.TTFNormalFont

	rootContainer := newColumn(110, 160)
	rootContainer.AddChild(newLabel("ARENA", fonts.MPlusTitleFont, theme.Text))

	rootContainer.AddChild(newTextInput("Player Name", s.playerName, fontFace, func(text string) {
		s.playerName = text
	}))

	switch s.renderedPhase {
	case flow.PhaseDisconnected:
		rootContainer.AddChild(newTextInput("Server Address", s.serverAddress, fontFace, func(text string) {
			s.serverAddress = text
		}))
		rootContainer.AddChild(newButton("Connect", positiveButtonImage, fontFace, s.connect))

	case flow.PhaseConnected:
		connecting := newButton("Connecting...", neutralButtonImage, fontFace, func() {})
		connecting.GetWidget().Disabled = true
		rootContainer.AddChild(connecting)
		rootContainer.AddChild(newButton("Cancel", negativeButtonImage, fontFace, s.machine.Disconnect))

	case flow.PhaseLobby:
		rootContainer.AddChild(newButton("Create Room", positiveButtonImage, fontFace, func() {
			if err := s.machine.CreateRoom(s.playerName); err != nil {
				s.fail("Failed to create room", err)
			}
		}))

		joinRow := newRow()
		joinRow.AddChild(newTextInput("Room Code", s.roomCode, fontFace, func(text string) {
			s.roomCode = text
		}))
		joinRow.AddChild(newButton("Join Room", neutralButtonImage, fontFace, func() {
			if err := s.machine.JoinRoom(s.roomCode, s.playerName); err != nil {
				s.fail("Failed to join room", err)
			}
		}))
		rootContainer.AddChild(joinRow)

		rootContainer.AddChild(newButton("Disconnect", negativeButtonImage, fontFace, s.machine.Disconnect))
	}

	if s.actionErr != "" {
		rootContainer.AddChild(newLabel(s.actionErr, fonts.TTFSmallFont, theme.TextError))
	}

	s.uiObject.SetUI(&ebitenui.UI{
		Container: rootContainer,
	})
}
