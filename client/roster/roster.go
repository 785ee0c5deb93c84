package roster

import (
	"fmt"

	"github.com/cbodonnell/arena/pkg/messages"
)

// MaxSlots is the number of players a room holds and the number of slots
// always shown in the room screen.
const MaxSlots = 4

const (
	SummaryWaiting  = "Waiting for players..."
	SummaryAllReady = "All players ready!"
	EmptySlotLabel  = "Waiting for player..."
)

type Slot struct {
	ID    messages.PlayerID
	Name  string
	Ready bool
}

// Roster is an immutable, join-ordered list of at most MaxSlots players with
// unique ids. Every update returns a new Roster.
type Roster struct {
	slots []Slot
}

// New builds a roster from a server player list, keeping server order. Repeated
// ids and entries past MaxSlots are dropped.
func New(players []messages.PlayerSlot) Roster {
	r := Roster{}
	for _, p := range players {
		r = r.Join(Slot{ID: p.ID, Name: p.Name, Ready: p.Ready})
	}
	return r
}

func (r Roster) Len() int {
	return len(r.slots)
}

// Slots returns a copy of the slots in join order.
func (r Roster) Slots() []Slot {
	out := make([]Slot, len(r.slots))
	copy(out, r.slots)
	return out
}

func (r Roster) Find(id messages.PlayerID) (Slot, bool) {
	for _, s := range r.slots {
		if s.ID == id {
			return s, true
		}
	}
	return Slot{}, false
}

// Join appends s when its id is new and the room is not full.
func (r Roster) Join(s Slot) Roster {
	if _, ok := r.Find(s.ID); ok {
		return r
	}
	if len(r.slots) >= MaxSlots {
		return r
	}
	slots := make([]Slot, len(r.slots), len(r.slots)+1)
	copy(slots, r.slots)
	return Roster{slots: append(slots, s)}
}

// Leave removes the player with the given id. Unknown ids are a no-op.
func (r Roster) Leave(id messages.PlayerID) Roster {
	if _, ok := r.Find(id); !ok {
		return r
	}
	slots := make([]Slot, 0, len(r.slots)-1)
	for _, s := range r.slots {
		if s.ID != id {
			slots = append(slots, s)
		}
	}
	return Roster{slots: slots}
}

// SetReady updates the ready flag of a player. Unknown ids are a no-op.
func (r Roster) SetReady(id messages.PlayerID, ready bool) Roster {
	if _, ok := r.Find(id); !ok {
		return r
	}
	slots := r.Slots()
	for i := range slots {
		if slots[i].ID == id {
			slots[i].Ready = ready
		}
	}
	return Roster{slots: slots}
}

func (r Roster) ReadyCount() int {
	n := 0
	for _, s := range r.slots {
		if s.Ready {
			n++
		}
	}
	return n
}

// Summary is the readiness line shown under the slots.
func (r Roster) Summary() string {
	total := len(r.slots)
	ready := r.ReadyCount()
	switch {
	case total == 0:
		return SummaryWaiting
	case ready == total:
		return SummaryAllReady
	default:
		return fmt.Sprintf("%d/%d ready", ready, total)
	}
}

// DisplaySlot is one of the MaxSlots rows of the room screen.
type DisplaySlot struct {
	Slot
	Empty bool
}

func (d DisplaySlot) Label() string {
	if d.Empty {
		return EmptySlotLabel
	}
	if d.Ready {
		return d.Name + " (ready)"
	}
	return d.Name
}

// DisplaySlots always returns MaxSlots rows; rows past the roster are empty.
func (r Roster) DisplaySlots() [MaxSlots]DisplaySlot {
	var out [MaxSlots]DisplaySlot
	for i := range out {
		if i < len(r.slots) {
			out[i] = DisplaySlot{Slot: r.slots[i]}
		} else {
			out[i] = DisplaySlot{Empty: true}
		}
	}
	return out
}
