package objects

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// BaseObject is a no-op GameObject that holds an ordered list of children.
// Embed it to get tree membership.
type BaseObject struct {
	id       string
	children []GameObject
	ids      map[string]int
}

var _ GameObject = &BaseObject{}

func NewBaseObject(id string) *BaseObject {
	return &BaseObject{
		id:  id,
		ids: make(map[string]int),
	}
}

func (o *BaseObject) GetID() string {
	return o.id
}

func (o *BaseObject) GetChildren() []GameObject {
	return o.children
}

// AddChild appends child. Children draw after their parent, in insertion order.
func (o *BaseObject) AddChild(child GameObject) error {
	if _, ok := o.ids[child.GetID()]; ok {
		return fmt.Errorf("child object with id %s already exists", child.GetID())
	}
	o.ids[child.GetID()] = len(o.children)
	o.children = append(o.children, child)
	return nil
}

func (o *BaseObject) RemoveChild(id string) error {
	idx, ok := o.ids[id]
	if !ok {
		return fmt.Errorf("child object with id %s does not exist", id)
	}
	if err := DestroyTree(o.children[idx]); err != nil {
		return fmt.Errorf("failed to destroy child object tree: %v", err)
	}
	o.children = append(o.children[:idx], o.children[idx+1:]...)
	delete(o.ids, id)
	for i := idx; i < len(o.children); i++ {
		o.ids[o.children[i].GetID()] = i
	}
	return nil
}

func (o *BaseObject) Init() error {
	return nil
}

func (o *BaseObject) Destroy() error {
	return nil
}

func (o *BaseObject) Update() error {
	return nil
}

func (o *BaseObject) Draw(screen *ebiten.Image) {}

func InitTree(o GameObject) error {
	if err := o.Init(); err != nil {
		return fmt.Errorf("failed to init %s: %v", o.GetID(), err)
	}
	for _, child := range o.GetChildren() {
		if err := InitTree(child); err != nil {
			return err
		}
	}
	return nil
}

func UpdateTree(o GameObject) error {
	if err := o.Update(); err != nil {
		return fmt.Errorf("failed to update %s: %v", o.GetID(), err)
	}
	for _, child := range o.GetChildren() {
		if err := UpdateTree(child); err != nil {
			return err
		}
	}
	return nil
}

func DrawTree(o GameObject, screen *ebiten.Image) {
	o.Draw(screen)
	for _, child := range o.GetChildren() {
		DrawTree(child, screen)
	}
}

// DestroyTree destroys children before their parent.
func DestroyTree(o GameObject) error {
	for _, child := range o.GetChildren() {
		if err := DestroyTree(child); err != nil {
			return err
		}
	}
	if err := o.Destroy(); err != nil {
		return fmt.Errorf("failed to destroy %s: %v", o.GetID(), err)
	}
	return nil
}
