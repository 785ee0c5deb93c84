package scenes

import "github.com/cbodonnell/arena/client/objects"

// StatusScene is a full screen message, used when no other scene applies.
type StatusScene struct {
	*BaseScene
}

var _ Scene = &StatusScene{}

func NewStatusScene(title string, status func() string) (Scene, error) {
	return &StatusScene{
		BaseScene: NewBaseScene(objects.NewTextOverlayObject("overlay-status", title, status)),
	}, nil
}
