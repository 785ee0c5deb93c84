package theme

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/cbodonnell/arena/client/world"
	"github.com/cbodonnell/arena/pkg/log"
	"github.com/cbodonnell/arena/pkg/messages"
)

var (
	Background   = color.NRGBA{R: 0x16, G: 0x16, B: 0x24, A: 0xff}
	ArenaFloor   = color.NRGBA{R: 0x22, G: 0x22, B: 0x36, A: 0xff}
	ArenaGrid    = color.NRGBA{R: 0x2c, G: 0x2c, B: 0x44, A: 0xff}
	ArenaBorder  = color.NRGBA{R: 0x56, G: 0x56, B: 0x7a, A: 0xff}
	Text         = color.NRGBA{R: 0xfe, G: 0xff, B: 0xff, A: 0xff}
	TextDim      = color.NRGBA{R: 0xa0, G: 0xa0, B: 0xb0, A: 0xff}
	TextError    = color.NRGBA{R: 0xff, G: 0x55, B: 0x55, A: 0xff}
	LocalPlayer  = color.NRGBA{R: 0x3d, G: 0xd6, B: 0xd0, A: 0xff}
	RemotePlayer = color.NRGBA{R: 0x5d, G: 0xad, B: 0xe2, A: 0xff}
	Panel        = color.NRGBA{R: 0x2a, G: 0x2a, B: 0x40, A: 0xff}
	PanelReady   = color.NRGBA{R: 0x1e, G: 0x5c, B: 0x3a, A: 0xff}
	PanelEmpty   = color.NRGBA{R: 0x1e, G: 0x1e, B: 0x2c, A: 0xff}
	HealthTrack  = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	Selection    = color.NRGBA{R: 0xf1, G: 0xc4, B: 0x0f, A: 0xff}

	HealthGood     = color.NRGBA{R: 0x2e, G: 0xcc, B: 0x71, A: 0xff}
	HealthWarn     = color.NRGBA{R: 0xf3, G: 0x9c, B: 0x12, A: 0xff}
	HealthCritical = color.NRGBA{R: 0xe7, G: 0x4c, B: 0x3c, A: 0xff}

	RarityCommon = color.NRGBA{R: 0x95, G: 0xa5, B: 0xa6, A: 0xff}
	RarityRare   = color.NRGBA{R: 0x34, G: 0x98, B: 0xdb, A: 0xff}
	RarityEpic   = color.NRGBA{R: 0x9b, G: 0x59, B: 0xb6, A: 0xff}
)

func HealthColor(level world.HealthLevel) color.NRGBA {
	switch level {
	case world.HealthGood:
		return HealthGood
	case world.HealthWarn:
		return HealthWarn
	default:
		return HealthCritical
	}
}

// RarityColor returns the card color for r. Unknown rarities are common.
func RarityColor(r messages.Rarity) color.NRGBA {
	switch r.OrDefault() {
	case messages.RarityRare:
		return RarityRare
	case messages.RarityEpic:
		return RarityEpic
	default:
		return RarityCommon
	}
}

// UnknownIcon is shown for icon keys missing from the table.
const UnknownIcon = "?"

var icons = map[string]string{
	"attack":     "ATK",
	"speed":      "SPD",
	"health":     "HP+",
	"defense":    "DEF",
	"dash":       "DSH",
	"projectile": "PRJ",
}

// Icon returns the glyph drawn for an upgrade icon key.
func Icon(key string) string {
	if glyph, ok := icons[key]; ok {
		return glyph
	}
	return UnknownIcon
}

// namedColors holds the CSS color names servers commonly send.
var namedColors = map[string]color.NRGBA{
	"red":    {R: 0xff, A: 0xff},
	"green":  {G: 0x80, A: 0xff},
	"blue":   {B: 0xff, A: 0xff},
	"yellow": {R: 0xff, G: 0xff, A: 0xff},
	"orange": {R: 0xff, G: 0xa5, A: 0xff},
	"purple": {R: 0x80, B: 0x80, A: 0xff},
	"white":  {R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	"black":  {A: 0xff},
	"gray":   {R: 0x80, G: 0x80, B: 0x80, A: 0xff},
	"grey":   {R: 0x80, G: 0x80, B: 0x80, A: 0xff},
}

// ParseHexColor parses #rgb and #rrggbb colors and a few CSS color names.
// Anything else yields fallback.
func ParseHexColor(s string, fallback color.NRGBA) color.NRGBA {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c
	}
	hex, ok := strings.CutPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if !ok || len(hex) != 6 {
		log.Trace("Unrecognized color %q, using fallback", s)
		return fallback
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		log.Trace("Unrecognized color %q, using fallback", s)
		return fallback
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
