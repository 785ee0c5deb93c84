package world

import "github.com/cbodonnell/arena/pkg/messages"

const (
	DefaultRoomNumber = 1
	DefaultRoomType   = "Combat"
)

// Snapshot is the latest world picture reported by the server. It is a value:
// each Apply returns a new Snapshot and leaves the receiver untouched.
type Snapshot struct {
	players     []messages.PlayerState
	enemies     []messages.EnemyState
	projectiles []messages.ProjectileState
	roomNumber  int
	roomType    string
}

// Empty is the snapshot before any game_start.
func Empty() Snapshot {
	return Snapshot{
		players:     []messages.PlayerState{},
		enemies:     []messages.EnemyState{},
		projectiles: []messages.ProjectileState{},
		roomNumber:  DefaultRoomNumber,
		roomType:    DefaultRoomType,
	}
}

// FromGameStart builds a full snapshot. Missing lists become empty, the room
// number defaults to 1 and the room type to "Combat".
func FromGameStart(m *messages.GameStart) Snapshot {
	s := Empty()
	s.players = clone(m.Players)
	s.enemies = clone(m.Enemies)
	s.projectiles = clone(m.Projectiles)
	if m.RoomNumber != nil {
		s.roomNumber = *m.RoomNumber
	}
	if m.RoomType != nil {
		s.roomType = *m.RoomType
	}
	return s
}

// ApplyGameState replaces each entity list present in m and keeps the rest.
func (s Snapshot) ApplyGameState(m *messages.GameState) Snapshot {
	next := s
	if m.Players != nil {
		next.players = clone(*m.Players)
	}
	if m.Enemies != nil {
		next.enemies = clone(*m.Enemies)
	}
	if m.Projectiles != nil {
		next.projectiles = clone(*m.Projectiles)
	}
	return next
}

// ApplyNextRoom takes the room metadata unconditionally and replaces the
// enemies. Players and projectiles carry over.
func (s Snapshot) ApplyNextRoom(m *messages.NextRoom) Snapshot {
	next := s
	next.roomNumber = m.RoomNumber
	next.roomType = m.RoomType
	next.enemies = clone(m.Enemies)
	return next
}

func (s Snapshot) Players() []messages.PlayerState {
	return clone(s.players)
}

func (s Snapshot) Enemies() []messages.EnemyState {
	return clone(s.enemies)
}

func (s Snapshot) Projectiles() []messages.ProjectileState {
	return clone(s.projectiles)
}

func (s Snapshot) RoomNumber() int {
	return s.roomNumber
}

func (s Snapshot) RoomType() string {
	return s.roomType
}

// Player returns the player with the given id.
func (s Snapshot) Player(id messages.PlayerID) (messages.PlayerState, bool) {
	for _, p := range s.players {
		if p.ID == id {
			return p, true
		}
	}
	return messages.PlayerState{}, false
}

func clone[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
