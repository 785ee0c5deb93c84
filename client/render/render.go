package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/cbodonnell/arena/client/fonts"
	"github.com/cbodonnell/arena/client/theme"
	"github.com/cbodonnell/arena/client/world"
	"github.com/cbodonnell/arena/pkg/messages"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

const (
	gridSpacing     = 50
	healthBarWidth  = 40
	healthBarHeight = 5
)

// ArenaRenderer draws the arena and its entities onto an offscreen canvas.
// Draw steps run during Update; the game scene blits Canvas during Draw.
type ArenaRenderer struct {
	canvas *ebiten.Image
}

func NewArenaRenderer(width, height int) *ArenaRenderer {
	return &ArenaRenderer{
		canvas: ebiten.NewImage(width, height),
	}
}

func (r *ArenaRenderer) Canvas() *ebiten.Image {
	return r.canvas
}

func (r *ArenaRenderer) DrawArena(width, height, roomNumber int, roomType string) {
	b := r.canvas.Bounds()
	if b.Dx() != width || b.Dy() != height {
		r.canvas.Dispose()
		r.canvas = ebiten.NewImage(width, height)
	}

	r.canvas.Fill(theme.ArenaFloor)
	for x := gridSpacing; x < width; x += gridSpacing {
		vector.StrokeLine(r.canvas, float32(x), 0, float32(x), float32(height), 1, theme.ArenaGrid, false)
	}
	for y := gridSpacing; y < height; y += gridSpacing {
		vector.StrokeLine(r.canvas, 0, float32(y), float32(width), float32(y), 1, theme.ArenaGrid, false)
	}
	vector.StrokeRect(r.canvas, 1, 1, float32(width-2), float32(height-2), 2, theme.ArenaBorder, false)

	text.Draw(r.canvas, fmt.Sprintf("Room %d - %s", roomNumber, roomType), fonts.TTFBoldFont, 12, 24, theme.Text)
}

func (r *ArenaRenderer) DrawEntities(snapshot world.Snapshot, localPlayerID messages.PlayerID) {
	for _, p := range snapshot.Projectiles() {
		v := world.ResolveProjectile(p)
		clr := theme.ParseHexColor(v.Color, theme.ParseHexColor(world.DefaultProjectileColor, theme.Selection))
		vector.DrawFilledCircle(r.canvas, float32(v.X), float32(v.Y), float32(v.Radius), clr, true)
	}

	for _, e := range snapshot.Enemies() {
		r.drawEnemy(world.ResolveEnemy(e))
	}

	for _, p := range snapshot.Players() {
		r.drawPlayer(world.ResolvePlayer(p), p.ID == localPlayerID && localPlayerID != "")
	}
}

func (r *ArenaRenderer) drawEnemy(v world.EnemyView) {
	clr := theme.ParseHexColor(v.Color, theme.HealthCritical)
	vector.DrawFilledCircle(r.canvas, float32(v.X), float32(v.Y), float32(v.Radius), clr, true)
	DrawCentered(r.canvas, v.Label, fonts.TTFBoldFont, v.X, v.Y, theme.Text)
	if v.HasHealth {
		drawHealthBar(r.canvas, v.X, v.Y-v.Radius-10, v.Health)
	}
}

func (r *ArenaRenderer) drawPlayer(v world.PlayerView, local bool) {
	body := theme.RemotePlayer
	if local {
		body = theme.LocalPlayer
	}
	x, y := float32(v.X), float32(v.Y)
	vector.DrawFilledCircle(r.canvas, x, y, world.PlayerRadius, body, true)
	if local {
		vector.StrokeCircle(r.canvas, x, y, world.PlayerRadius+3, 2, theme.Text, true)
	}

	// facing
	reach := float64(world.PlayerRadius + 10)
	vector.StrokeLine(r.canvas, x, y,
		float32(v.X+math.Cos(v.Angle)*reach), float32(v.Y+math.Sin(v.Angle)*reach),
		3, theme.Text, true)

	drawHealthBar(r.canvas, v.X, v.Y-world.PlayerRadius-12, v.Health)
	DrawCentered(r.canvas, v.Name, fonts.TTFSmallFont, v.X, v.Y+world.PlayerRadius+14, theme.Text)
}

func drawHealthBar(dst *ebiten.Image, cx, y, fraction float64) {
	x := float32(cx - healthBarWidth/2)
	vector.DrawFilledRect(dst, x, float32(y), healthBarWidth, healthBarHeight, theme.HealthTrack, false)
	fill := theme.HealthColor(world.LevelOf(fraction))
	vector.DrawFilledRect(dst, x, float32(y), float32(healthBarWidth*fraction), healthBarHeight, fill, false)
}

// DrawCentered draws s centered on (cx, cy).
func DrawCentered(dst *ebiten.Image, s string, face font.Face, cx, cy float64, clr color.Color) {
	if s == "" {
		return
	}
	bounds, _ := font.BoundString(face, s)
	w := (bounds.Max.X - bounds.Min.X).Ceil()
	h := (bounds.Max.Y - bounds.Min.Y).Ceil()
	text.Draw(dst, s, face, int(cx)-w/2, int(cy)+h/2, clr)
}
