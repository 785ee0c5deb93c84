package world

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cbodonnell/arena/pkg/messages"
)

// Fallbacks for entity fields missing from a payload.
const (
	DefaultPlayerX          = 400
	DefaultPlayerY          = 300
	DefaultEnemyX           = 200
	DefaultEnemyY           = 200
	DefaultEnemyRadius      = 25
	DefaultEnemyColor       = "#e74c3c"
	DefaultEnemyLabel       = "E"
	DefaultProjectileRadius = 5
	DefaultProjectileColor  = "#f1c40f"
	PlayerRadius            = 20
)

type PlayerView struct {
	ID     messages.PlayerID
	Name   string
	X, Y   float64
	Angle  float64
	Health float64
}

type EnemyView struct {
	X, Y      float64
	Radius    float64
	Color     string
	Label     string
	HasHealth bool
	Health    float64
}

type ProjectileView struct {
	X, Y   float64
	Radius float64
	Color  string
}

func ResolvePlayer(p messages.PlayerState) PlayerView {
	return PlayerView{
		ID:     p.ID,
		Name:   p.Name,
		X:      orDefault(p.X, DefaultPlayerX),
		Y:      orDefault(p.Y, DefaultPlayerY),
		Angle:  orDefault(p.Angle, 0),
		Health: HealthFraction(p.HP, p.MaxHP),
	}
}

func ResolveEnemy(e messages.EnemyState) EnemyView {
	v := EnemyView{
		X:      orDefault(e.X, DefaultEnemyX),
		Y:      orDefault(e.Y, DefaultEnemyY),
		Radius: orDefault(e.Radius, DefaultEnemyRadius),
		Color:  DefaultEnemyColor,
		Label:  DefaultEnemyLabel,
	}
	if e.Color != nil && *e.Color != "" {
		v.Color = *e.Color
	}
	if e.Type != nil {
		if label := typeLabel(*e.Type); label != "" {
			v.Label = label
		}
	}
	if e.HP != nil && e.MaxHP != nil {
		v.HasHealth = true
		v.Health = HealthFraction(*e.HP, *e.MaxHP)
	}
	return v
}

func ResolveProjectile(p messages.ProjectileState) ProjectileView {
	v := ProjectileView{
		X:      orDefault(p.X, 0),
		Y:      orDefault(p.Y, 0),
		Radius: orDefault(p.Radius, DefaultProjectileRadius),
		Color:  DefaultProjectileColor,
	}
	if p.Color != nil && *p.Color != "" {
		v.Color = *p.Color
	}
	return v
}

// typeLabel is the uppercased first letter of an enemy type.
func typeLabel(t string) string {
	t = strings.TrimSpace(t)
	r, _ := utf8.DecodeRuneInString(t)
	if r == utf8.RuneError {
		return ""
	}
	return string(unicode.ToUpper(r))
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

type HealthLevel int

const (
	HealthGood HealthLevel = iota
	HealthWarn
	HealthCritical
)

// HealthFraction is hp/maxHp clamped to [0,1]. An unknown max counts as full.
func HealthFraction(hp, maxHP float64) float64 {
	if maxHP <= 0 {
		return 1
	}
	f := hp / maxHP
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// LevelOf buckets a health fraction: >= 0.5 good, >= 0.25 warn, else critical.
func LevelOf(fraction float64) HealthLevel {
	switch {
	case fraction >= 0.5:
		return HealthGood
	case fraction >= 0.25:
		return HealthWarn
	default:
		return HealthCritical
	}
}
