package scenes

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/cbodonnell/arena/client/controls"
	"github.com/cbodonnell/arena/client/fonts"
	"github.com/cbodonnell/arena/client/objects"
	"github.com/cbodonnell/arena/client/render"
	"github.com/cbodonnell/arena/client/session"
	"github.com/cbodonnell/arena/client/theme"
	"github.com/cbodonnell/arena/client/ui"
	"github.com/cbodonnell/arena/pkg/log"
	"github.com/cbodonnell/arena/pkg/messages"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	cardWidth   = 200
	cardHeight  = 240
	cardSpacing = 24
	cardTop     = 150
)

// UpgradeScene lists the offers after a cleared room. Offers are picked with
// the number keys or by clicking a card, and every teammate's pick is listed
// below the cards.
type UpgradeScene struct {
	*BaseScene

	machine *session.Machine
	offers  []messages.UpgradeOffer
	cards   []image.Rectangle
}

type UpgradeSceneOptions struct {
	Machine *session.Machine
}

var _ Scene = &UpgradeScene{}

func NewUpgradeScene(opts UpgradeSceneOptions) (Scene, error) {
	m := opts.Machine
	root := objects.NewBaseObject("upgrade-root")

	title := objects.NewTextObject("upgrade-title", objects.NewTextObjectOptions{
		Text:     func() string { return "Room Cleared! Choose an Upgrade" },
		X:        400,
		Y:        70,
		Face:     fonts.TTFLargeFont,
		Centered: true,
	})
	if err := root.AddChild(title); err != nil {
		return nil, err
	}

	choices := objects.NewTextObject("upgrade-team-choices", objects.NewTextObjectOptions{
		Text: func() string {
			picks := m.TeamChoices()
			if len(picks) == 0 {
				return "Waiting for the team to choose..."
			}
			lines := make([]string, 0, len(picks))
			for _, c := range picks {
				lines = append(lines, fmt.Sprintf("%s chose %s", c.PlayerName, c.UpgradeName))
			}
			return strings.Join(lines, "   ")
		},
		X:        400,
		Y:        cardTop + cardHeight + 50,
		Color:    theme.TextDim,
		Centered: true,
	})
	if err := root.AddChild(choices); err != nil {
		return nil, err
	}

	status := objects.NewTextObject("upgrade-status", objects.NewTextObjectOptions{
		Text:     m.Status,
		X:        400,
		Y:        570,
		Color:    theme.TextDim,
		Centered: true,
	})
	if err := root.AddChild(status); err != nil {
		return nil, err
	}

	return &UpgradeScene{
		BaseScene: NewBaseScene(root),
		machine:   m,
	}, nil
}

func (s *UpgradeScene) Update() error {
	s.offers = s.machine.Offers()
	s.cards = ui.CenteredRow(len(s.offers), s.machine.ArenaWidth(), cardWidth, cardHeight, cardSpacing, cardTop)

	index := -1
	if d := controls.JustPressedDigit(); d > 0 {
		index = d - 1
	} else if p, ok := controls.JustClicked(); ok {
		index = ui.HitIndex(s.cards, p)
	}
	if index >= 0 && index < len(s.offers) {
		if err := s.machine.SelectUpgrade(index); err != nil {
			log.Debug("Failed to select upgrade %d: %v", index, err)
		}
	}
	return s.BaseScene.Update()
}

func (s *UpgradeScene) Draw(screen *ebiten.Image) {
	screen.Fill(theme.Background)
	selected := s.machine.SelectedOffer()
	for i, offer := range s.offers {
		if i >= len(s.cards) {
			break
		}
		drawCard(screen, s.cards[i], i, offer, i == selected)
	}
	s.BaseScene.Draw(screen)
}

func drawCard(screen *ebiten.Image, r image.Rectangle, index int, offer messages.UpgradeOffer, selected bool) {
	x, y := float32(r.Min.X), float32(r.Min.Y)
	w, h := float32(r.Dx()), float32(r.Dy())
	rarity := theme.RarityColor(offer.Rarity)

	vector.DrawFilledRect(screen, x, y, w, h, theme.Panel, false)
	vector.DrawFilledRect(screen, x, y, w, 8, rarity, false)
	var outline color.Color = rarity
	width := float32(2)
	if selected {
		outline, width = theme.Selection, 4
	}
	vector.StrokeRect(screen, x, y, w, h, width, outline, false)

	cx := float64(x + w/2)
	render.DrawCentered(screen, fmt.Sprintf("%d", index+1), fonts.TTFSmallFont, cx, float64(y)+24, theme.TextDim)
	render.DrawCentered(screen, theme.Icon(offer.Icon), fonts.TTFLargeFont, cx, float64(y)+70, rarity)
	render.DrawCentered(screen, offer.Name, fonts.TTFBoldFont, cx, float64(y)+120, theme.Text)
	render.DrawCentered(screen, strings.ToUpper(string(offer.Rarity.OrDefault())), fonts.TTFSmallFont, cx, float64(y)+145, rarity)
	for i, line := range ui.Wrap(offer.Description, 24) {
		render.DrawCentered(screen, line, fonts.TTFSmallFont, cx, float64(y)+175+float64(i)*18, theme.TextDim)
	}
}
