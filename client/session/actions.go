package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/cbodonnell/arena/client/flow"
	"github.com/cbodonnell/arena/client/ui"
	"github.com/cbodonnell/arena/pkg/log"
	"github.com/cbodonnell/arena/pkg/messages"
)

// Player actions. Each returns an *ui.ActionableError when the action is
// refused; the same message becomes the status line and nothing is sent.

func (m *Machine) refuse(message string) error {
	m.status = message
	return ui.NewActionableError(message)
}

// Connect opens the transport to address. The connected phase begins when
// the transport reports open. Connecting while a transport is active does nothing.
func (m *Machine) Connect(ctx context.Context, address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return m.refuse(StatusEnterAddress)
	}
	if m.transportActive {
		log.Warn("Ignoring connect to %s: transport already active", address)
		return nil
	}
	if err := m.transport.Open(ctx, address); err != nil {
		log.Error("Failed to open transport to %s: %v", address, err)
		return m.refuse(StatusConnectFailed)
	}
	m.transportActive = true
	m.status = fmt.Sprintf("Connecting to %s...", address)
	return nil
}

// Disconnect closes the transport. Without an active transport the session
// resets immediately; otherwise it resets when the close event arrives.
func (m *Machine) Disconnect() {
	if !m.transportActive {
		m.reset()
		m.status = StatusDisconnected
		return
	}
	if err := m.transport.Close(); err != nil {
		log.Error("Failed to close transport: %v", err)
	}
}

func (m *Machine) CreateRoom(playerName string) error {
	if m.phase != flow.PhaseLobby {
		return m.refuse(StatusNotInLobby)
	}
	cmd := messages.NewCreateRoom(playerName)
	if cmd.PlayerName == "" {
		return m.refuse(StatusEnterName)
	}
	m.send(cmd)
	m.status = "Creating room..."
	return nil
}

func (m *Machine) JoinRoom(roomCode, playerName string) error {
	if m.phase != flow.PhaseLobby {
		return m.refuse(StatusNotInLobby)
	}
	cmd := messages.NewJoinRoom(roomCode, playerName)
	if cmd.PlayerName == "" {
		return m.refuse(StatusEnterName)
	}
	if cmd.RoomCode == "" {
		return m.refuse(StatusEnterRoomCode)
	}
	m.send(cmd)
	m.status = fmt.Sprintf("Joining room %s...", cmd.RoomCode)
	return nil
}

func (m *Machine) SetReady(ready bool) error {
	if m.phase != flow.PhaseInRoom {
		return m.refuse(StatusNotInRoom)
	}
	m.isReady = ready
	m.send(messages.SetReady{Ready: ready})
	return nil
}

func (m *Machine) ToggleReady() error {
	return m.SetReady(!m.isReady)
}

// SelectUpgrade marks offer index as chosen and sends the choice. Every call
// sends, so repeated clicks within one phase send the choice again.
func (m *Machine) SelectUpgrade(index int) error {
	if m.phase != flow.PhaseUpgrading {
		return m.refuse(StatusNotUpgrading)
	}
	if index < 0 || index >= len(m.offers) {
		return m.refuse(StatusInvalidUpgrade)
	}
	m.selected = index
	m.send(messages.SelectUpgrade{UpgradeIndex: index})
	m.status = fmt.Sprintf("Selected %s", m.offers[index].Name)
	return nil
}

// ReturnToLobby goes from game over back to the room, not ready, and asks
// the server for the current roster.
func (m *Machine) ReturnToLobby() error {
	if m.phase != flow.PhaseGameOver {
		return m.refuse(StatusNotGameOver)
	}
	m.isReady = false
	m.gameOver = GameOverInfo{}
	m.setPhase(flow.PhaseInRoom)
	m.send(messages.GetRoomState{})
	m.status = fmt.Sprintf("Back in room %s", m.roomCode)
	return nil
}
