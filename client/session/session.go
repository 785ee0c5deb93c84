package session

import (
	"time"

	"github.com/cbodonnell/arena/client/flow"
	"github.com/cbodonnell/arena/client/input"
	"github.com/cbodonnell/arena/client/loop"
	"github.com/cbodonnell/arena/client/network"
	"github.com/cbodonnell/arena/client/roster"
	"github.com/cbodonnell/arena/client/schedule"
	"github.com/cbodonnell/arena/client/world"
	"github.com/cbodonnell/arena/pkg/log"
	"github.com/cbodonnell/arena/pkg/messages"
	"golang.org/x/time/rate"
)

const (
	// HandshakeGrace is how long the client waits after the handshake before
	// entering the lobby.
	HandshakeGrace = 500 * time.Millisecond

	DefaultArenaWidth  = 800
	DefaultArenaHeight = 600

	// FallbackPlayerName labels a team choice from a player missing from the roster.
	FallbackPlayerName = "Teammate"
)

// Status lines shown to the player.
const (
	StatusNotConnected     = "Not connected"
	StatusConnected        = "Connected to server"
	StatusDisconnected     = "Disconnected from server"
	StatusConnectFailed    = "Could not connect to server"
	StatusConnectionError  = "Connection error"
	StatusEnterAddress     = "Enter a server address"
	StatusEnterName        = "Enter a player name"
	StatusEnterRoomCode    = "Enter a room code"
	StatusNotInLobby       = "Not in the lobby"
	StatusNotInRoom        = "Not in a room"
	StatusNotUpgrading     = "No upgrade to choose"
	StatusInvalidUpgrade   = "That upgrade is not available"
	StatusNotGameOver      = "The game is not over"
	StatusUpgradeAvailable = "Room cleared! Choose an upgrade"
)

type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) *schedule.Timer
	RequestFrame(fn func(now time.Time)) *schedule.Frame
}

// Renderer draws the world for one render step.
type Renderer interface {
	DrawArena(width, height, roomNumber int, roomType string)
	DrawEntities(snapshot world.Snapshot, localPlayerID messages.PlayerID)
}

// TeamChoice is the upgrade a player picked during the current upgrade phase.
type TeamChoice struct {
	PlayerID    messages.PlayerID
	PlayerName  string
	UpgradeName string
}

// GameOverInfo describes how the last match ended.
type GameOverInfo struct {
	RoomNumber int
	Message    string
}

// Machine is the client session. It owns the phase and every model derived
// from server messages, and is driven from a single goroutine: transport
// events through HandleEvent, player actions through its action methods and
// time through the Scheduler.
type Machine struct {
	transport   network.Transport
	scheduler   Scheduler
	sampler     *input.Sampler
	renderer    Renderer
	arenaWidth  int
	arenaHeight int
	loop        *loop.Loop
	dropLimiter *rate.Limiter

	// transportActive is set from a successful Open until the matching close event.
	transportActive bool
	transportOpen   bool
	handshakeTimer  *schedule.Timer

	phase         flow.Phase
	localPlayerID messages.PlayerID
	roomCode      string
	isReady       bool
	status        string
	countdown     *int

	roster      roster.Roster
	snapshot    world.Snapshot
	offers      []messages.UpgradeOffer
	selected    int
	teamChoices []TeamChoice
	gameOver    GameOverInfo
}

var _ messages.Handler = (*Machine)(nil)

type NewMachineOptions struct {
	Transport network.Transport
	Scheduler Scheduler
	Sampler   *input.Sampler
	Renderer  Renderer
	// ArenaWidth and ArenaHeight size the arena drawn each frame.
	ArenaWidth  int
	ArenaHeight int
	// DropLogInterval limits how often dropped sends are logged.
	DropLogInterval time.Duration
}

func NewMachine(opts NewMachineOptions) *Machine {
	width, height := opts.ArenaWidth, opts.ArenaHeight
	if width <= 0 || height <= 0 {
		width, height = DefaultArenaWidth, DefaultArenaHeight
	}
	interval := opts.DropLogInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}

	m := &Machine{
		transport:   opts.Transport,
		scheduler:   opts.Scheduler,
		sampler:     opts.Sampler,
		renderer:    opts.Renderer,
		arenaWidth:  width,
		arenaHeight: height,
		dropLimiter: rate.NewLimiter(rate.Every(interval), 1),
	}
	m.loop = loop.New(opts.Scheduler, m.updateStep, m.renderStep, func() bool {
		return m.phase == flow.PhasePlaying
	})
	m.reset()
	m.status = StatusNotConnected
	return m
}

func (m *Machine) reset() {
	m.loop.Stop()
	m.handshakeTimer.Stop()
	m.handshakeTimer = nil
	if m.sampler != nil {
		m.sampler.Reset()
	}

	m.phase = flow.PhaseDisconnected
	m.localPlayerID = ""
	m.roomCode = ""
	m.isReady = false
	m.countdown = nil
	m.roster = roster.Roster{}
	m.snapshot = world.Empty()
	m.clearUpgrades()
	m.gameOver = GameOverInfo{}
}

func (m *Machine) clearUpgrades() {
	m.offers = nil
	m.selected = -1
	m.teamChoices = nil
}

func (m *Machine) setPhase(next flow.Phase) {
	if m.phase == next {
		return
	}
	log.Debug("Session phase %s -> %s", m.phase, next)
	m.phase = next
}

// send encodes cmd and hands it to the transport. Without an open transport
// the command is dropped.
func (m *Machine) send(cmd messages.Command) {
	if !m.transportOpen {
		m.logDrop(cmd, network.ErrNotConnected)
		return
	}
	b, err := messages.Encode(cmd)
	if err != nil {
		log.Error("Failed to encode %s: %v", cmd.CommandType(), err)
		return
	}
	if err := m.transport.Send(b); err != nil {
		m.logDrop(cmd, err)
		return
	}
	log.Trace("Sent %s", cmd.CommandType())
}

func (m *Machine) logDrop(cmd messages.Command, reason error) {
	if m.dropLimiter.Allow() {
		log.Warn("Dropped %s: %v", cmd.CommandType(), reason)
	}
}

func (m *Machine) updateStep(dt time.Duration) {
	if m.sampler == nil {
		return
	}
	m.send(m.sampler.Sample())
}

func (m *Machine) renderStep() {
	if m.renderer == nil {
		return
	}
	m.renderer.DrawArena(m.arenaWidth, m.arenaHeight, m.snapshot.RoomNumber(), m.snapshot.RoomType())
	m.renderer.DrawEntities(m.snapshot, m.localPlayerID)
}

func (m *Machine) Phase() flow.Phase {
	return m.phase
}

// ArenaWidth and ArenaHeight are the arena dimensions in screen pixels.
func (m *Machine) ArenaWidth() int {
	return m.arenaWidth
}

func (m *Machine) ArenaHeight() int {
	return m.arenaHeight
}

func (m *Machine) LocalPlayerID() messages.PlayerID {
	return m.localPlayerID
}

func (m *Machine) RoomCode() string {
	return m.roomCode
}

func (m *Machine) IsReady() bool {
	return m.isReady
}

// Status is the latest human readable status line.
func (m *Machine) Status() string {
	return m.status
}

// Countdown is the last game_starting countdown, if one was given.
func (m *Machine) Countdown() (int, bool) {
	if m.countdown == nil {
		return 0, false
	}
	return *m.countdown, true
}

func (m *Machine) Roster() roster.Roster {
	return m.roster
}

func (m *Machine) Snapshot() world.Snapshot {
	return m.snapshot
}

func (m *Machine) Offers() []messages.UpgradeOffer {
	out := make([]messages.UpgradeOffer, len(m.offers))
	copy(out, m.offers)
	return out
}

// SelectedOffer returns the index of the locally selected offer, or -1.
func (m *Machine) SelectedOffer() int {
	return m.selected
}

func (m *Machine) TeamChoices() []TeamChoice {
	out := make([]TeamChoice, len(m.teamChoices))
	copy(out, m.teamChoices)
	return out
}

func (m *Machine) GameOver() GameOverInfo {
	return m.gameOver
}

// LoopRunning reports whether the render loop has a run in progress.
func (m *Machine) LoopRunning() bool {
	return m.loop.Running()
}

// Connected reports whether a transport is open.
func (m *Machine) Connected() bool {
	return m.transportOpen
}
