package session

import (
	"fmt"

	"github.com/cbodonnell/arena/client/flow"
	"github.com/cbodonnell/arena/client/network"
	"github.com/cbodonnell/arena/client/roster"
	"github.com/cbodonnell/arena/client/world"
	"github.com/cbodonnell/arena/pkg/log"
	"github.com/cbodonnell/arena/pkg/messages"
)

// HandleEvent applies one transport event. Events must be handled in arrival order.
func (m *Machine) HandleEvent(ev network.Event) {
	switch ev.Kind {
	case network.EventOpen:
		m.handleOpen()
	case network.EventMessage:
		m.HandleFrame(ev.Data)
	case network.EventError:
		log.Error("Transport error: %v", ev.Err)
		m.status = StatusConnectionError
	case network.EventClose:
		m.handleClose(ev.Err)
	default:
		log.Warn("Ignoring transport event of kind %s", ev.Kind)
	}
}

func (m *Machine) handleOpen() {
	if !m.transportActive || m.phase != flow.PhaseDisconnected {
		log.Warn("Ignoring open event in phase %s", m.phase)
		return
	}
	m.transportOpen = true
	m.setPhase(flow.PhaseConnected)
	m.status = StatusConnected
	m.send(messages.NewHandshake())

	m.handshakeTimer = m.scheduler.AfterFunc(HandshakeGrace, func() {
		m.handshakeTimer = nil
		if m.phase == flow.PhaseConnected {
			m.setPhase(flow.PhaseLobby)
		}
	})
}

func (m *Machine) handleClose(cause error) {
	wasOpen := m.transportOpen
	m.transportActive = false
	m.transportOpen = false
	m.reset()

	switch {
	case !wasOpen && !network.IsClosedByClient(cause):
		m.status = StatusConnectFailed
	default:
		m.status = StatusDisconnected
	}
	log.Info("Disconnected: %v", cause)
}

// HandleFrame decodes one inbound text frame and dispatches it. Frames that
// do not decode are logged and dropped.
func (m *Machine) HandleFrame(b []byte) {
	msg, err := messages.Decode(b)
	if err != nil {
		if messages.IsUnknownMessageType(err) {
			log.Warn("Ignoring server message: %v", err)
		} else {
			log.Error("Dropping server frame: %v", err)
		}
		return
	}
	log.Trace("Received %s in phase %s", msg.MessageType(), m.phase)
	msg.Accept(m)
}

func (m *Machine) ignore(msg messages.ServerMessage) {
	log.Debug("Ignoring %s in phase %s", msg.MessageType(), m.phase)
}

// hasRoom reports whether roster updates apply in the current phase.
func (m *Machine) hasRoom() bool {
	switch m.phase {
	case flow.PhaseInRoom, flow.PhasePlaying, flow.PhaseUpgrading, flow.PhaseGameOver:
		return true
	}
	return false
}

func (m *Machine) HandleConnected(msg *messages.Connected) {
	if msg.PlayerID != "" {
		m.localPlayerID = msg.PlayerID
	}
}

func (m *Machine) HandleRoomCreated(msg *messages.RoomCreated) {
	m.enterRoom(msg, msg.RoomCode, msg.PlayerID, msg.Players)
	if m.phase == flow.PhaseInRoom {
		m.status = fmt.Sprintf("Room %s created", m.roomCode)
	}
}

func (m *Machine) HandleRoomJoined(msg *messages.RoomJoined) {
	m.enterRoom(msg, msg.RoomCode, msg.PlayerID, msg.Players)
	if m.phase == flow.PhaseInRoom {
		m.status = fmt.Sprintf("Joined room %s", m.roomCode)
	}
}

// enterRoom moves the lobby into a room. In a room it answers get_room_state
// by replacing the roster.
func (m *Machine) enterRoom(msg messages.ServerMessage, code string, playerID messages.PlayerID, players []messages.PlayerSlot) {
	switch m.phase {
	case flow.PhaseLobby:
		m.isReady = false
		m.setPhase(flow.PhaseInRoom)
	case flow.PhaseInRoom:
	default:
		m.ignore(msg)
		return
	}
	if code != "" {
		m.roomCode = messages.NormalizeRoomCode(code)
	}
	if playerID != "" {
		m.localPlayerID = playerID
	}
	m.roster = roster.New(players)
}

func (m *Machine) HandleRoomError(msg *messages.RoomError) {
	if msg.Message == "" {
		m.status = "Room error"
		return
	}
	m.status = msg.Message
}

func (m *Machine) HandlePlayerJoined(msg *messages.PlayerJoined) {
	if !m.hasRoom() {
		m.ignore(msg)
		return
	}
	m.roster = m.roster.Join(roster.Slot{ID: msg.Player.ID, Name: msg.Player.Name, Ready: msg.Player.Ready})
}

func (m *Machine) HandlePlayerLeft(msg *messages.PlayerLeft) {
	if !m.hasRoom() {
		m.ignore(msg)
		return
	}
	m.roster = m.roster.Leave(msg.PlayerID)
}

func (m *Machine) HandlePlayerReady(msg *messages.PlayerReady) {
	if !m.hasRoom() {
		m.ignore(msg)
		return
	}
	m.roster = m.roster.SetReady(msg.PlayerID, msg.Ready)
}

func (m *Machine) HandleGameStarting(msg *messages.GameStarting) {
	if m.phase != flow.PhaseInRoom {
		m.ignore(msg)
		return
	}
	m.countdown = msg.Countdown
	if msg.Countdown != nil {
		m.status = fmt.Sprintf("Game starting in %d...", *msg.Countdown)
	} else {
		m.status = "Game starting..."
	}
}

func (m *Machine) HandleGameStart(msg *messages.GameStart) {
	if m.phase != flow.PhaseInRoom {
		m.ignore(msg)
		return
	}
	m.snapshot = world.FromGameStart(msg)
	m.countdown = nil
	m.clearUpgrades()
	m.gameOver = GameOverInfo{}
	m.status = fmt.Sprintf("Room %d: %s", m.snapshot.RoomNumber(), m.snapshot.RoomType())
	m.setPhase(flow.PhasePlaying)
	m.loop.Start()
}

// HandleGameState applies a partial snapshot in any phase; the snapshot is
// only drawn while playing.
func (m *Machine) HandleGameState(msg *messages.GameState) {
	m.snapshot = m.snapshot.ApplyGameState(msg)
}

func (m *Machine) HandleRoomCleared(msg *messages.RoomCleared) {
	if m.phase != flow.PhasePlaying {
		m.ignore(msg)
		return
	}
	m.loop.Stop()
	m.clearUpgrades()
	m.offers = append([]messages.UpgradeOffer(nil), msg.Upgrades...)
	m.status = StatusUpgradeAvailable
	m.setPhase(flow.PhaseUpgrading)
}

func (m *Machine) HandleUpgradeChosen(msg *messages.UpgradeChosen) {
	if m.phase != flow.PhaseUpgrading {
		m.ignore(msg)
		return
	}
	name := FallbackPlayerName
	if slot, ok := m.roster.Find(msg.PlayerID); ok && slot.Name != "" {
		name = slot.Name
	}
	choice := TeamChoice{PlayerID: msg.PlayerID, PlayerName: name, UpgradeName: msg.UpgradeName}

	for i, existing := range m.teamChoices {
		if existing.PlayerID == msg.PlayerID {
			m.teamChoices[i] = choice
			return
		}
	}
	m.teamChoices = append(m.teamChoices, choice)
}

func (m *Machine) HandleNextRoom(msg *messages.NextRoom) {
	switch m.phase {
	case flow.PhaseUpgrading:
	case flow.PhasePlaying:
		// the server skipped the upgrade phase
	default:
		m.ignore(msg)
		return
	}
	m.snapshot = m.snapshot.ApplyNextRoom(msg)
	m.clearUpgrades()
	m.status = fmt.Sprintf("Room %d: %s", m.snapshot.RoomNumber(), m.snapshot.RoomType())
	m.setPhase(flow.PhasePlaying)
	m.loop.Start()
}

func (m *Machine) HandleGameOver(msg *messages.GameOver) {
	if !m.phase.InMatch() {
		m.ignore(msg)
		return
	}
	m.loop.Stop()
	m.clearUpgrades()

	info := GameOverInfo{RoomNumber: m.snapshot.RoomNumber(), Message: msg.Message}
	if msg.RoomNumber != nil {
		info.RoomNumber = *msg.RoomNumber
	}
	if info.Message == "" {
		info.Message = fmt.Sprintf("Game over! You reached room %d", info.RoomNumber)
	}
	m.gameOver = info
	m.status = info.Message
	m.setPhase(flow.PhaseGameOver)
}
