package scenes

import (
	"context"

	"github.com/cbodonnell/arena/client/flow"
	"github.com/cbodonnell/arena/client/objects"
	"github.com/cbodonnell/arena/client/render"
	"github.com/cbodonnell/arena/client/session"
	"github.com/hajimehoshi/ebiten/v2"
)

type Scene interface {
	objects.Lifecycle

	// Scene specific methods
	GetRoot() objects.GameObject
}

// BaseScene runs the lifecycle of an object tree. Scenes embed it and
// override the methods they need.
type BaseScene struct {
	Root objects.GameObject
}

func NewBaseScene(root objects.GameObject) *BaseScene {
	return &BaseScene{Root: root}
}

func (s *BaseScene) GetRoot() objects.GameObject {
	return s.Root
}

func (s *BaseScene) Init() error {
	return objects.InitTree(s.Root)
}

func (s *BaseScene) Destroy() error {
	return objects.DestroyTree(s.Root)
}

func (s *BaseScene) Update() error {
	return objects.UpdateTree(s.Root)
}

func (s *BaseScene) Draw(screen *ebiten.Image) {
	objects.DrawTree(s.Root, screen)
}

// Dependencies are what scenes are built from.
type Dependencies struct {
	Ctx      context.Context
	Machine  *session.Machine
	Renderer *render.ArenaRenderer
	// PlayerName and ServerAddress prefill the menu.
	PlayerName    string
	ServerAddress string
	// OnConnect is called when the player starts a connection from the menu.
	OnConnect func(playerName, serverAddress string)
}

// New builds the scene for screen.
func New(screen flow.Screen, deps Dependencies) (Scene, error) {
	switch screen {
	case flow.ScreenMenu:
		return NewMenuScene(MenuSceneOptions{
			Ctx:           deps.Ctx,
			Machine:       deps.Machine,
			PlayerName:    deps.PlayerName,
			ServerAddress: deps.ServerAddress,
			OnConnect:     deps.OnConnect,
		})
	case flow.ScreenRoom:
		return NewRoomScene(RoomSceneOptions{Machine: deps.Machine})
	case flow.ScreenArena:
		return NewGameScene(GameSceneOptions{Machine: deps.Machine, Renderer: deps.Renderer})
	case flow.ScreenUpgrade:
		return NewUpgradeScene(UpgradeSceneOptions{Machine: deps.Machine})
	case flow.ScreenGameOver:
		return NewGameOverScene(GameOverSceneOptions{Machine: deps.Machine})
	}
	return NewStatusScene(screen.String(), deps.Machine.Status)
}
