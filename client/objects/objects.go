package objects

import "github.com/hajimehoshi/ebiten/v2"

// Lifecycle is driven by the scene that owns the tree: Init once, Update and
// Draw every tick, Destroy when the scene is replaced.
type Lifecycle interface {
	Init() error
	Destroy() error
	Update() error
	Draw(screen *ebiten.Image)
}

// GameObject is a node in a scene's object tree.
type GameObject interface {
	Lifecycle

	GetID() string
	GetChildren() []GameObject
}
