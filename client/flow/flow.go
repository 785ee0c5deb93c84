package flow

// Phase is where the client is in the connect, lobby, room, play, upgrade
// and game over lifecycle.
type Phase int

const (
	PhaseDisconnected Phase = iota
	PhaseConnected
	PhaseLobby
	PhaseInRoom
	PhasePlaying
	PhaseUpgrading
	PhaseGameOver
)

// Phases lists every phase in lifecycle order.
var Phases = []Phase{
	PhaseDisconnected,
	PhaseConnected,
	PhaseLobby,
	PhaseInRoom,
	PhasePlaying,
	PhaseUpgrading,
	PhaseGameOver,
}

func (p Phase) String() string {
	switch p {
	case PhaseDisconnected:
		return "disconnected"
	case PhaseConnected:
		return "connected"
	case PhaseLobby:
		return "lobby"
	case PhaseInRoom:
		return "in_room"
	case PhasePlaying:
		return "playing"
	case PhaseUpgrading:
		return "upgrading"
	case PhaseGameOver:
		return "game_over"
	}
	return "unknown"
}

// InMatch reports whether p is part of a running match.
func (p Phase) InMatch() bool {
	return p == PhasePlaying || p == PhaseUpgrading
}

// Screen is the UI shown for a group of phases.
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenRoom
	ScreenArena
	ScreenUpgrade
	ScreenGameOver
)

func (s Screen) String() string {
	switch s {
	case ScreenMenu:
		return "Menu"
	case ScreenRoom:
		return "Room"
	case ScreenArena:
		return "Arena"
	case ScreenUpgrade:
		return "Upgrade"
	case ScreenGameOver:
		return "Game Over"
	}
	return "Unknown"
}

// ScreenFor returns the screen shown during p. Phases before a room share
// the menu.
func ScreenFor(p Phase) Screen {
	switch p {
	case PhaseInRoom:
		return ScreenRoom
	case PhasePlaying:
		return ScreenArena
	case PhaseUpgrading:
		return ScreenUpgrade
	case PhaseGameOver:
		return ScreenGameOver
	default:
		return ScreenMenu
	}
}
