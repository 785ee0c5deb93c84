package roster

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/cbodonnell/arena/pkg/messages"
	"github.com/stretchr/testify/assert"
)

func TestNew_KeepsServerOrder(t *testing.T) {
	r := New([]messages.PlayerSlot{
		{ID: "2", Name: "Bo"},
		{ID: "1", Name: "Al", Ready: true},
		{ID: "2", Name: "Bo again"},
	})
	assert.Equal(t, []Slot{
		{ID: "2", Name: "Bo"},
		{ID: "1", Name: "Al", Ready: true},
	}, r.Slots())
}

func TestRoster_JoinLeave(t *testing.T) {
	r := Roster{}.Join(Slot{ID: "1", Name: "Al"}).Join(Slot{ID: "2", Name: "Bo"})
	assert.Equal(t, 2, r.Len())

	r2 := r.Leave("1")
	assert.Equal(t, []Slot{{ID: "2", Name: "Bo"}}, r2.Slots())
	assert.Equal(t, 2, r.Len(), "Leave must not mutate the receiver")

	assert.Equal(t, r2.Slots(), r2.Leave("missing").Slots())
}

func TestRoster_JoinFull(t *testing.T) {
	r := Roster{}
	for i := 0; i < MaxSlots+2; i++ {
		r = r.Join(Slot{ID: messages.PlayerID(fmt.Sprint(i))})
	}
	assert.Equal(t, MaxSlots, r.Len())
}

func TestRoster_SetReadyIdempotent(t *testing.T) {
	r := New([]messages.PlayerSlot{{ID: "1", Name: "Al"}, {ID: "2", Name: "Bo"}})
	once := r.SetReady("1", true)
	twice := once.SetReady("1", true)
	assert.Equal(t, once.Slots(), twice.Slots())
	assert.False(t, r.Slots()[0].Ready)

	assert.Equal(t, once.Slots(), once.SetReady("9", true).Slots())
}

func TestRoster_RandomJoinLeaveStaysUniqueAndBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	r := Roster{}
	for i := 0; i < 2000; i++ {
		id := messages.PlayerID(fmt.Sprint(rng.Intn(8)))
		if rng.Intn(2) == 0 {
			r = r.Join(Slot{ID: id})
		} else {
			r = r.Leave(id)
		}

		assert.LessOrEqual(t, r.Len(), MaxSlots)
		seen := map[messages.PlayerID]bool{}
		for _, s := range r.Slots() {
			assert.False(t, seen[s.ID], "duplicate id %s", s.ID)
			seen[s.ID] = true
		}
	}
}

func TestRoster_Summary(t *testing.T) {
	tests := []struct {
		name    string
		players []messages.PlayerSlot
		want    string
	}{
		{name: "empty", want: SummaryWaiting},
		{name: "none ready", players: []messages.PlayerSlot{{ID: "1"}, {ID: "2"}}, want: "0/2 ready"},
		{name: "some ready", players: []messages.PlayerSlot{{ID: "1", Ready: true}, {ID: "2"}, {ID: "3"}}, want: "1/3 ready"},
		{name: "all ready", players: []messages.PlayerSlot{{ID: "1", Ready: true}, {ID: "2", Ready: true}}, want: SummaryAllReady},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.players).Summary())
		})
	}
}

func TestRoster_DisplaySlots(t *testing.T) {
	r := New([]messages.PlayerSlot{{ID: "1", Name: "Al", Ready: true}})
	slots := r.DisplaySlots()

	assert.Len(t, slots, MaxSlots)
	assert.Equal(t, "Al (ready)", slots[0].Label())
	for _, s := range slots[1:] {
		assert.True(t, s.Empty)
		assert.Equal(t, EmptySlotLabel, s.Label())
	}
}
