package world

import (
	"testing"

	"github.com/cbodonnell/arena/pkg/messages"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func seeded() Snapshot {
	return FromGameStart(&messages.GameStart{
		Players: []messages.PlayerState{
			{ID: "1", Name: "Al", X: messages.Ptr(10.0), Y: messages.Ptr(20.0), HP: 80, MaxHP: 100},
		},
		Enemies: []messages.EnemyState{
			{ID: "e1", X: messages.Ptr(50.0)},
		},
		Projectiles: []messages.ProjectileState{
			{ID: "p1", X: messages.Ptr(1.0), Y: messages.Ptr(2.0)},
		},
		RoomNumber: messages.Ptr(3),
		RoomType:   messages.Ptr("Elite"),
	})
}

func TestFromGameStart_Defaults(t *testing.T) {
	s := FromGameStart(&messages.GameStart{})

	assert.NotNil(t, s.Players())
	assert.Empty(t, s.Players())
	assert.Empty(t, s.Enemies())
	assert.Empty(t, s.Projectiles())
	assert.Equal(t, DefaultRoomNumber, s.RoomNumber())
	assert.Equal(t, DefaultRoomType, s.RoomType())
}

func TestFromGameStart_ReplacesEverything(t *testing.T) {
	s := seeded()
	next := FromGameStart(&messages.GameStart{Enemies: []messages.EnemyState{{ID: "e9"}}})

	assert.Empty(t, next.Players())
	assert.Empty(t, next.Projectiles())
	assert.Equal(t, 1, next.RoomNumber())
	assert.Len(t, s.Players(), 1)
}

func TestApplyGameState_OnlyEnemiesPresent(t *testing.T) {
	s := seeded()
	enemies := []messages.EnemyState{{ID: "e2"}, {ID: "e3", Radius: messages.Ptr(40.0)}}

	next := s.ApplyGameState(&messages.GameState{Enemies: &enemies})

	if diff := cmp.Diff(s.Players(), next.Players()); diff != "" {
		t.Errorf("players changed (-before +after):\n%s", diff)
	}
	if diff := cmp.Diff(s.Projectiles(), next.Projectiles()); diff != "" {
		t.Errorf("projectiles changed (-before +after):\n%s", diff)
	}
	if diff := cmp.Diff(enemies, next.Enemies()); diff != "" {
		t.Errorf("enemies mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, s.RoomNumber(), next.RoomNumber())
	assert.Equal(t, s.RoomType(), next.RoomType())
}

func TestApplyGameState_EmptyEnemiesClearsOnlyEnemies(t *testing.T) {
	s := seeded()
	next := s.ApplyGameState(&messages.GameState{Enemies: &[]messages.EnemyState{}})

	assert.Empty(t, next.Enemies())
	assert.Equal(t, s.Players(), next.Players())
	assert.Len(t, s.Enemies(), 1, "receiver must not change")
}

func TestApplyGameState_NothingPresent(t *testing.T) {
	s := seeded()
	next := s.ApplyGameState(&messages.GameState{})

	if diff := cmp.Diff(s.Players(), next.Players()); diff != "" {
		t.Errorf("players changed:\n%s", diff)
	}
	assert.Equal(t, s.Enemies(), next.Enemies())
	assert.Equal(t, s.Projectiles(), next.Projectiles())
}

func TestApplyNextRoom(t *testing.T) {
	s := seeded()
	next := s.ApplyNextRoom(&messages.NextRoom{RoomNumber: 4, RoomType: "Boss"})

	assert.Equal(t, 4, next.RoomNumber())
	assert.Equal(t, "Boss", next.RoomType())
	assert.NotNil(t, next.Enemies())
	assert.Empty(t, next.Enemies())
	assert.Equal(t, s.Players(), next.Players())
	assert.Equal(t, s.Projectiles(), next.Projectiles())
}

func TestSnapshot_AccessorsReturnCopies(t *testing.T) {
	s := seeded()
	players := s.Players()
	players[0].Name = "changed"
	assert.Equal(t, "Al", s.Players()[0].Name)
}

func TestSnapshot_Player(t *testing.T) {
	s := seeded()
	p, ok := s.Player("1")
	assert.True(t, ok)
	assert.Equal(t, "Al", p.Name)

	_, ok = s.Player("2")
	assert.False(t, ok)
}
