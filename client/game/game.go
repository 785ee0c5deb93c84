package game

import (
	"context"
	"fmt"
	"time"

	"github.com/cbodonnell/arena/client/controls"
	"github.com/cbodonnell/arena/client/flow"
	"github.com/cbodonnell/arena/client/network"
	"github.com/cbodonnell/arena/client/render"
	"github.com/cbodonnell/arena/client/scenes"
	"github.com/cbodonnell/arena/client/schedule"
	"github.com/cbodonnell/arena/client/session"
	"github.com/cbodonnell/arena/pkg/log"
	"github.com/cbodonnell/arena/pkg/queue"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const (
	DefaultScreenWidth  = session.DefaultArenaWidth
	DefaultScreenHeight = session.DefaultArenaHeight
)

// Game implements ebiten.Game interface, which has Update, Draw and Layout methods.
// Update is the only goroutine that touches the session: transport events are
// drained from the queue here, then timers and frames run, then the scene.
type Game struct {
	ctx   context.Context
	debug bool
	// events carries transport events from the network goroutines.
	events    queue.Queue[network.Event]
	scheduler *schedule.Scheduler
	machine   *session.Machine
	poller    *controls.Poller
	renderer  *render.ArenaRenderer

	playerName    string
	serverAddress string
	onConnect     func(playerName, serverAddress string)

	// screen is the screen of the current scene.
	screen flow.Screen
	// scene is the current scene.
	scene scenes.Scene
	now   func() time.Time
}

type NewGameOptions struct {
	Ctx       context.Context
	Debug     bool
	Events    queue.Queue[network.Event]
	Scheduler *schedule.Scheduler
	Machine   *session.Machine
	Poller    *controls.Poller
	Renderer  *render.ArenaRenderer
	// PlayerName and ServerAddress prefill the menu.
	PlayerName    string
	ServerAddress string
	// OnConnect is called when the player starts a connection from the menu.
	OnConnect func(playerName, serverAddress string)
}

func NewGame(opts NewGameOptions) (*Game, error) {
	ctx := opts.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	g := &Game{
		ctx:           ctx,
		debug:         opts.Debug,
		events:        opts.Events,
		scheduler:     opts.Scheduler,
		machine:       opts.Machine,
		poller:        opts.Poller,
		renderer:      opts.Renderer,
		playerName:    opts.PlayerName,
		serverAddress: opts.ServerAddress,
		onConnect:     opts.OnConnect,
		now:           time.Now,
	}

	if err := g.loadScreen(flow.ScreenMenu); err != nil {
		return nil, fmt.Errorf("failed to load menu scene: %v", err)
	}

	return g, nil
}

func (g *Game) SetScene(scene scenes.Scene) error {
	if g.scene != nil {
		if err := g.scene.Destroy(); err != nil {
			return fmt.Errorf("failed to destroy previous scene: %v", err)
		}
	}

	g.scene = scene
	if err := g.scene.Init(); err != nil {
		return fmt.Errorf("failed to initialize scene: %v", err)
	}

	return nil
}

func (g *Game) newScene(screen flow.Screen) (scenes.Scene, error) {
	return scenes.New(screen, scenes.Dependencies{
		Ctx:           g.ctx,
		Machine:       g.machine,
		Renderer:      g.renderer,
		PlayerName:    g.playerName,
		ServerAddress: g.serverAddress,
		OnConnect: func(playerName, serverAddress string) {
			// later menus start from what was last used
			g.playerName, g.serverAddress = playerName, serverAddress
			if g.onConnect != nil {
				g.onConnect(playerName, serverAddress)
			}
		},
	})
}

func (g *Game) loadScreen(screen flow.Screen) error {
	scene, err := g.newScene(screen)
	if err != nil {
		return fmt.Errorf("failed to create %s scene: %v", screen, err)
	}
	if err := g.SetScene(scene); err != nil {
		return fmt.Errorf("failed to set %s scene: %v", screen, err)
	}
	log.Debug("Loaded %s scene", screen)
	g.screen = screen
	return nil
}

func (g *Game) Update() error {
	// polled in every phase so releases between rooms are not lost
	g.poller.Poll()

	for _, ev := range g.events.ReadAll() {
		g.machine.HandleEvent(ev)
	}
	g.scheduler.Advance(g.now())

	if screen := flow.ScreenFor(g.machine.Phase()); screen != g.screen {
		if err := g.loadScreen(screen); err != nil {
			return err
		}
	}

	if err := g.scene.Update(); err != nil {
		return fmt.Errorf("failed to update scene: %v", err)
	}

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
	if g.debug {
		g.drawDebugOverlay(screen)
	}
}

func (g *Game) drawDebugOverlay(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, fmt.Sprintf("\n   FPS: %0.1f", ebiten.ActualFPS()))
	ebitenutil.DebugPrint(screen, fmt.Sprintf("\n\n   TPS: %0.1f", ebiten.ActualTPS()))
	ebitenutil.DebugPrint(screen, fmt.Sprintf("\n\n\n   Phase: %s", g.machine.Phase()))

	if !g.machine.Connected() {
		return
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf("\n\n\n\n   Timers: %d  Frames: %d", g.scheduler.PendingTimers(), g.scheduler.PendingFrames()))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.machine.ArenaWidth(), g.machine.ArenaHeight()
}
