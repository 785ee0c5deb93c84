package scenes

import (
	"fmt"

	"github.com/cbodonnell/arena/client/fonts"
	"github.com/cbodonnell/arena/client/objects"
	"github.com/cbodonnell/arena/client/render"
	"github.com/cbodonnell/arena/client/session"
	"github.com/cbodonnell/arena/client/theme"
	"github.com/cbodonnell/arena/client/world"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// GameScene shows the arena painted by the render loop with a small HUD on
// top. The arena is drawn at the origin so cursor coordinates match it.
type GameScene struct {
	*BaseScene

	machine  *session.Machine
	renderer *render.ArenaRenderer
}

type GameSceneOptions struct {
	Machine  *session.Machine
	Renderer *render.ArenaRenderer
}

var _ Scene = &GameScene{}

func NewGameScene(opts GameSceneOptions) (Scene, error) {
	m := opts.Machine
	root := objects.NewBaseObject("game-root")

	hud := objects.NewTextObject("game-hud", objects.NewTextObjectOptions{
		Text: func() string {
			snap := m.Snapshot()
			return fmt.Sprintf("Room %d  Players %d  Enemies %d", snap.RoomNumber(), len(snap.Players()), len(snap.Enemies()))
		},
		X:     12,
		Y:     float64(m.ArenaHeight()) - 12,
		Color: theme.TextDim,
	})
	if err := root.AddChild(hud); err != nil {
		return nil, err
	}

	return &GameScene{
		BaseScene: NewBaseScene(root),
		machine:   m,
		renderer:  opts.Renderer,
	}, nil
}

func (g *GameScene) Draw(screen *ebiten.Image) {
	screen.Fill(theme.Background)
	screen.DrawImage(g.renderer.Canvas(), &ebiten.DrawImageOptions{})
	g.drawLocalHealth(screen)
	g.BaseScene.Draw(screen)
}

func (g *GameScene) drawLocalHealth(screen *ebiten.Image) {
	p, ok := g.machine.Snapshot().Player(g.machine.LocalPlayerID())
	if !ok {
		return
	}
	v := world.ResolvePlayer(p)
	const w, h = 200, 14
	x := float32(screen.Bounds().Dx()) - w - 12
	y := float32(12)
	fraction := v.Health
	vector.DrawFilledRect(screen, x, y, w, h, theme.HealthTrack, false)
	vector.DrawFilledRect(screen, x, y, w*float32(fraction), h, theme.HealthColor(world.LevelOf(fraction)), false)
	render.DrawCentered(screen, fmt.Sprintf("%s  %.0f/%.0f", v.Name, p.HP, p.MaxHP), fonts.TTFSmallFont, float64(x)+w/2, float64(y+h+12), theme.Text)
}
