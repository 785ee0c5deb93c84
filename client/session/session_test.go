package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/cbodonnell/arena/client/flow"
	"github.com/cbodonnell/arena/client/input"
	"github.com/cbodonnell/arena/client/network"
	"github.com/cbodonnell/arena/client/roster"
	"github.com/cbodonnell/arena/client/schedule"
	"github.com/cbodonnell/arena/client/ui"
	"github.com/cbodonnell/arena/client/world"
	"github.com/cbodonnell/arena/mocks"
	"github.com/cbodonnell/arena/pkg/messages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testAddress = "ws://arena.test/ws"

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type fakeRenderer struct {
	arenas      []string
	entityDraws int
	lastLocal   messages.PlayerID
}

func (r *fakeRenderer) DrawArena(width, height, roomNumber int, roomType string) {
	r.arenas = append(r.arenas, fmt.Sprintf("%dx%d room %d %s", width, height, roomNumber, roomType))
}

func (r *fakeRenderer) DrawEntities(snapshot world.Snapshot, localPlayerID messages.PlayerID) {
	r.entityDraws++
	r.lastLocal = localPlayerID
}

type harness struct {
	t        *testing.T
	tr       *mocks.Transport
	sched    *schedule.Scheduler
	sampler  *input.Sampler
	renderer *fakeRenderer
	m        *Machine
	now      time.Time
	sent     []string
}

func newHarness(t *testing.T) *harness {
	h := &harness{
		t:        t,
		tr:       mocks.NewTransport(t),
		sched:    schedule.New(epoch),
		renderer: &fakeRenderer{},
		now:      epoch,
	}
	h.sampler = input.NewSampler(h.sched)
	h.tr.On("Open", mock.Anything, testAddress).Return(nil).Maybe()
	h.tr.On("Close").Return(nil).Maybe()
	h.tr.On("Send", mock.Anything).Return(nil).Maybe().Run(func(args mock.Arguments) {
		h.sent = append(h.sent, string(args.Get(0).([]byte)))
	})
	h.m = NewMachine(NewMachineOptions{
		Transport: h.tr,
		Scheduler: h.sched,
		Sampler:   h.sampler,
		Renderer:  h.renderer,
	})
	return h
}

func (h *harness) frame(s string) {
	h.m.HandleFrame([]byte(s))
}

func (h *harness) advance(d time.Duration) {
	h.now = h.now.Add(d)
	h.sched.Advance(h.now)
}

// sentTypes returns the type of every frame sent so far and forgets them.
func (h *harness) sentTypes() []string {
	types := make([]string, 0, len(h.sent))
	for _, s := range h.sent {
		frame := map[string]interface{}{}
		require.NoError(h.t, json.Unmarshal([]byte(s), &frame))
		types = append(types, frame["type"].(string))
	}
	h.sent = nil
	return types
}

func (h *harness) toConnected() {
	require.NoError(h.t, h.m.Connect(context.Background(), testAddress))
	h.m.HandleEvent(network.Event{Kind: network.EventOpen})
}

func (h *harness) toLobby() {
	h.toConnected()
	h.advance(HandshakeGrace)
}

func (h *harness) toRoom() {
	h.toLobby()
	require.NoError(h.t, h.m.JoinRoom("abcd", "Al"))
	h.frame(`{"type":"room_joined","roomCode":"ABCD","playerId":1,"players":[{"id":1,"name":"Al","ready":false}]}`)
	h.frame(`{"type":"player_joined","player":{"id":2,"name":"Bo","ready":false}}`)
}

func (h *harness) toPlaying() {
	h.toRoom()
	h.frame(`{"type":"game_start","players":[{"id":1,"name":"Al","x":10,"y":20,"hp":100,"maxHp":100}],"enemies":[{"id":"e1"}],"roomNumber":1,"roomType":"Combat"}`)
}

func (h *harness) toUpgrading() {
	h.toPlaying()
	h.frame(`{"type":"room_cleared","upgrades":[{"name":"Sharp Claws","rarity":"rare","icon":"attack","description":"+10% atk"},{"name":"Thick Hide","icon":"defense"}]}`)
}

func (h *harness) toGameOver() {
	h.toPlaying()
	h.frame(`{"type":"game_over","roomNumber":3}`)
}

func (h *harness) toPhase(p flow.Phase) {
	switch p {
	case flow.PhaseDisconnected:
	case flow.PhaseConnected:
		h.toConnected()
	case flow.PhaseLobby:
		h.toLobby()
	case flow.PhaseInRoom:
		h.toRoom()
	case flow.PhasePlaying:
		h.toPlaying()
	case flow.PhaseUpgrading:
		h.toUpgrading()
	case flow.PhaseGameOver:
		h.toGameOver()
	}
	require.Equal(h.t, p, h.m.Phase())
}

func TestMachine_InitialState(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, flow.PhaseDisconnected, h.m.Phase())
	assert.Equal(t, StatusNotConnected, h.m.Status())
	assert.False(t, h.m.IsReady())
	assert.Equal(t, 0, h.m.Roster().Len())
	assert.Equal(t, -1, h.m.SelectedOffer())
	assert.False(t, h.m.LoopRunning())
}

func TestMachine_ConnectValidation(t *testing.T) {
	h := newHarness(t)
	err := h.m.Connect(context.Background(), "   ")

	var actionable *ui.ActionableError
	require.ErrorAs(t, err, &actionable)
	assert.Equal(t, StatusEnterAddress, actionable.Message)
	assert.Equal(t, StatusEnterAddress, h.m.Status())
	h.tr.AssertNotCalled(t, "Open", mock.Anything, mock.Anything)
}

func TestMachine_ConnectOpenFailure(t *testing.T) {
	tr := mocks.NewTransport(t)
	tr.On("Open", mock.Anything, testAddress).Return(errors.New("boom")).Once()
	sched := schedule.New(epoch)
	m := NewMachine(NewMachineOptions{Transport: tr, Scheduler: sched, Sampler: input.NewSampler(sched)})

	err := m.Connect(context.Background(), testAddress)
	assert.Equal(t, StatusConnectFailed, ui.MessageFor(err, ""))
	assert.Equal(t, StatusConnectFailed, m.Status())
	assert.Equal(t, flow.PhaseDisconnected, m.Phase())
}

func TestMachine_SecondConnectIgnored(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.m.Connect(context.Background(), testAddress))
	require.NoError(t, h.m.Connect(context.Background(), testAddress))
	h.tr.AssertNumberOfCalls(t, "Open", 1)
}

func TestMachine_HandshakeThenLobbyAfterGrace(t *testing.T) {
	h := newHarness(t)
	h.toConnected()

	assert.Equal(t, flow.PhaseConnected, h.m.Phase())
	assert.True(t, h.m.Connected())
	require.Len(t, h.sent, 1)
	assert.JSONEq(t, `{"type":"handshake","version":"1.0.0"}`, h.sent[0])

	h.advance(HandshakeGrace - time.Millisecond)
	assert.Equal(t, flow.PhaseConnected, h.m.Phase())

	h.advance(time.Millisecond)
	assert.Equal(t, flow.PhaseLobby, h.m.Phase())
	assert.Equal(t, 0, h.sched.PendingTimers())
}

func TestMachine_DisconnectDuringGraceCancelsLobbyTransition(t *testing.T) {
	h := newHarness(t)
	h.toConnected()
	h.advance(100 * time.Millisecond)

	h.m.HandleEvent(network.Event{Kind: network.EventClose, Err: &network.ErrConnectionClosedByServer{}})
	assert.Equal(t, 0, h.sched.PendingTimers())

	h.advance(time.Second)
	assert.Equal(t, flow.PhaseDisconnected, h.m.Phase())
}

func TestMachine_ConnectedMessageSetsLocalPlayer(t *testing.T) {
	h := newHarness(t)
	h.toConnected()
	h.frame(`{"type":"connected","playerId":7}`)
	assert.Equal(t, messages.PlayerID("7"), h.m.LocalPlayerID())
	assert.Equal(t, flow.PhaseConnected, h.m.Phase())
}

func TestMachine_DialFailure(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.m.Connect(context.Background(), testAddress))

	h.m.HandleEvent(network.Event{Kind: network.EventError, Err: errors.New("connection refused")})
	assert.Equal(t, StatusConnectionError, h.m.Status())
	h.m.HandleEvent(network.Event{Kind: network.EventClose, Err: errors.New("connection refused")})

	assert.Equal(t, flow.PhaseDisconnected, h.m.Phase())
	assert.Equal(t, StatusConnectFailed, h.m.Status())

	// the transport is free again
	require.NoError(t, h.m.Connect(context.Background(), testAddress))
	h.tr.AssertNumberOfCalls(t, "Open", 2)
}

func TestMachine_JoinRoomScenario(t *testing.T) {
	h := newHarness(t)
	h.toLobby()
	h.sent = nil

	require.NoError(t, h.m.JoinRoom("ABCD", "Al"))
	require.Len(t, h.sent, 1)
	assert.JSONEq(t, `{"type":"join_room","roomCode":"ABCD","playerName":"Al"}`, h.sent[0])
	assert.Equal(t, flow.PhaseLobby, h.m.Phase())

	h.frame(`{"type":"room_joined","roomCode":"ABCD","players":[{"id":1,"name":"Al","ready":false}]}`)
	assert.Equal(t, flow.PhaseInRoom, h.m.Phase())
	assert.Equal(t, "ABCD", h.m.RoomCode())
	assert.Equal(t, []roster.Slot{{ID: "1", Name: "Al", Ready: false}}, h.m.Roster().Slots())
}

func TestMachine_CreateRoom(t *testing.T) {
	h := newHarness(t)
	h.toLobby()
	h.sent = nil

	require.NoError(t, h.m.CreateRoom("  Al  "))
	require.Len(t, h.sent, 1)
	assert.JSONEq(t, `{"type":"create_room","playerName":"Al"}`, h.sent[0])

	h.frame(`{"type":"room_created","roomCode":"wxyz","playerId":"p1"}`)
	assert.Equal(t, flow.PhaseInRoom, h.m.Phase())
	assert.Equal(t, "WXYZ", h.m.RoomCode())
	assert.Equal(t, messages.PlayerID("p1"), h.m.LocalPlayerID())
	assert.Equal(t, "Room WXYZ created", h.m.Status())
}

func TestMachine_LocalValidation(t *testing.T) {
	tests := []struct {
		name   string
		phase  flow.Phase
		action func(m *Machine) error
		want   string
	}{
		{name: "create outside lobby", phase: flow.PhaseDisconnected, action: func(m *Machine) error { return m.CreateRoom("Al") }, want: StatusNotInLobby},
		{name: "create without name", phase: flow.PhaseLobby, action: func(m *Machine) error { return m.CreateRoom(" \t") }, want: StatusEnterName},
		{name: "join without name", phase: flow.PhaseLobby, action: func(m *Machine) error { return m.JoinRoom("ABCD", "") }, want: StatusEnterName},
		{name: "join without code", phase: flow.PhaseLobby, action: func(m *Machine) error { return m.JoinRoom("  ", "Al") }, want: StatusEnterRoomCode},
		{name: "join from room", phase: flow.PhaseInRoom, action: func(m *Machine) error { return m.JoinRoom("ABCD", "Al") }, want: StatusNotInLobby},
		{name: "ready outside room", phase: flow.PhaseLobby, action: func(m *Machine) error { return m.SetReady(true) }, want: StatusNotInRoom},
		{name: "upgrade while playing", phase: flow.PhasePlaying, action: func(m *Machine) error { return m.SelectUpgrade(0) }, want: StatusNotUpgrading},
		{name: "upgrade out of range", phase: flow.PhaseUpgrading, action: func(m *Machine) error { return m.SelectUpgrade(2) }, want: StatusInvalidUpgrade},
		{name: "negative upgrade", phase: flow.PhaseUpgrading, action: func(m *Machine) error { return m.SelectUpgrade(-1) }, want: StatusInvalidUpgrade},
		{name: "return while playing", phase: flow.PhasePlaying, action: func(m *Machine) error { return m.ReturnToLobby() }, want: StatusNotGameOver},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.toPhase(tt.phase)
			h.advance(0)
			before := len(h.sent)
			phase := h.m.Phase()

			err := tt.action(h.m)
			assert.Equal(t, tt.want, ui.MessageFor(err, ""))
			assert.Equal(t, tt.want, h.m.Status())
			assert.Equal(t, phase, h.m.Phase())
			assert.Len(t, h.sent, before)
		})
	}
}

func TestMachine_RoomErrorKeepsPhase(t *testing.T) {
	h := newHarness(t)
	h.toLobby()
	h.frame(`{"type":"room_error","message":"Room not found"}`)
	assert.Equal(t, flow.PhaseLobby, h.m.Phase())
	assert.Equal(t, "Room not found", h.m.Status())
}

func TestMachine_ReadyToggle(t *testing.T) {
	h := newHarness(t)
	h.toRoom()
	h.sent = nil

	require.NoError(t, h.m.ToggleReady())
	assert.True(t, h.m.IsReady())
	require.NoError(t, h.m.ToggleReady())
	assert.False(t, h.m.IsReady())

	require.Len(t, h.sent, 2)
	assert.JSONEq(t, `{"type":"set_ready","ready":true}`, h.sent[0])
	assert.JSONEq(t, `{"type":"set_ready","ready":false}`, h.sent[1])
}

func TestMachine_PlayerReadyIsIdempotent(t *testing.T) {
	h := newHarness(t)
	h.toRoom()

	h.frame(`{"type":"player_ready","playerId":2,"ready":true}`)
	once := h.m.Roster()
	h.frame(`{"type":"player_ready","playerId":2,"ready":true}`)
	assert.Equal(t, once, h.m.Roster())
	assert.Equal(t, "1/2 ready", h.m.Roster().Summary())

	h.frame(`{"type":"player_ready","playerId":99,"ready":true}`)
	assert.Equal(t, once, h.m.Roster())
}

func TestMachine_RosterUpdates(t *testing.T) {
	h := newHarness(t)
	h.toRoom()

	h.frame(`{"type":"player_joined","player":{"id":2,"name":"Bo","ready":false}}`)
	h.frame(`{"type":"player_left","playerId":1}`)
	h.frame(`{"type":"player_left","playerId":42}`)
	assert.Equal(t, []roster.Slot{{ID: "2", Name: "Bo"}}, h.m.Roster().Slots())
}

func TestMachine_GameStartingCountdown(t *testing.T) {
	h := newHarness(t)
	h.toRoom()
	h.frame(`{"type":"game_starting","countdown":3}`)

	n, ok := h.m.Countdown()
	assert.True(t, ok)
	assert.Equal(t, 3, n)
	assert.Equal(t, "Game starting in 3...", h.m.Status())
	assert.Equal(t, flow.PhaseInRoom, h.m.Phase())
}

func TestMachine_PlayingSendsInputEveryFrame(t *testing.T) {
	h := newHarness(t)
	h.toPlaying()
	h.sent = nil

	assert.True(t, h.m.LoopRunning())
	assert.Equal(t, 1, h.sched.PendingFrames())

	h.sampler.Press(input.KeyW)
	h.advance(16 * time.Millisecond)
	h.advance(16 * time.Millisecond)

	require.Len(t, h.sent, 2)
	input0 := messages.Input{}
	require.NoError(t, json.Unmarshal([]byte(h.sent[0]), &input0))
	assert.True(t, input0.Keys["KeyW"])
	assert.Len(t, input0.Keys, len(input.Tracked))

	assert.Equal(t, []string{"800x600 room 1 Combat", "800x600 room 1 Combat"}, h.renderer.arenas)
	assert.Equal(t, 2, h.renderer.entityDraws)
	assert.Equal(t, messages.PlayerID("1"), h.renderer.lastLocal)
	assert.Equal(t, 1, h.sched.PendingFrames())
}

func TestMachine_RoomClearedScenario(t *testing.T) {
	h := newHarness(t)
	h.toPlaying()

	h.frame(`{"type":"room_cleared","upgrades":[{"name":"Sharp Claws","rarity":"rare","icon":"attack","description":"+10% atk"}]}`)
	assert.Equal(t, flow.PhaseUpgrading, h.m.Phase())
	assert.Equal(t, []messages.UpgradeOffer{
		{Name: "Sharp Claws", Rarity: messages.RarityRare, Icon: "attack", Description: "+10% atk"},
	}, h.m.Offers())
	assert.Empty(t, h.m.TeamChoices())
	assert.False(t, h.m.LoopRunning())
	assert.Equal(t, 0, h.sched.PendingFrames())
}

func TestMachine_PartialGameStateScenario(t *testing.T) {
	h := newHarness(t)
	h.toPlaying()
	players := h.m.Snapshot().Players()

	h.frame(`{"type":"game_state","enemies":[]}`)
	assert.Equal(t, players, h.m.Snapshot().Players())
	assert.Empty(t, h.m.Snapshot().Enemies())
}

func TestMachine_TransportCloseWhileUpgradingScenario(t *testing.T) {
	h := newHarness(t)
	h.toUpgrading()

	h.m.HandleEvent(network.Event{Kind: network.EventClose, Err: &network.ErrConnectionClosedByServer{}})
	assert.Equal(t, flow.PhaseDisconnected, h.m.Phase())
	assert.False(t, h.m.LoopRunning())
	assert.Equal(t, 0, h.sched.PendingFrames())
	assert.Equal(t, StatusDisconnected, h.m.Status())
	assert.Empty(t, h.m.Offers())
	assert.Equal(t, 0, h.m.Roster().Len())
	assert.Equal(t, messages.PlayerID(""), h.m.LocalPlayerID())

	h.sent = nil
	h.advance(time.Second)
	assert.Empty(t, h.sent)
}

func TestMachine_UpgradeSelectionResendsEveryClick(t *testing.T) {
	h := newHarness(t)
	h.toUpgrading()
	h.sent = nil

	require.NoError(t, h.m.SelectUpgrade(1))
	require.NoError(t, h.m.SelectUpgrade(1))
	require.NoError(t, h.m.SelectUpgrade(0))

	assert.Equal(t, 0, h.m.SelectedOffer())
	assert.Equal(t, []string{"select_upgrade", "select_upgrade", "select_upgrade"}, h.sentTypes())
}

func TestMachine_TeamChoices(t *testing.T) {
	h := newHarness(t)
	h.toUpgrading()

	h.frame(`{"type":"upgrade_chosen","playerId":2,"upgradeName":"Sharp Claws"}`)
	h.frame(`{"type":"upgrade_chosen","playerId":9,"upgradeName":"Thick Hide"}`)
	h.frame(`{"type":"upgrade_chosen","playerId":2,"upgradeName":"Thick Hide"}`)

	assert.Equal(t, []TeamChoice{
		{PlayerID: "2", PlayerName: "Bo", UpgradeName: "Thick Hide"},
		{PlayerID: "9", PlayerName: FallbackPlayerName, UpgradeName: "Thick Hide"},
	}, h.m.TeamChoices())

	h.frame(`{"type":"next_room","roomNumber":2,"roomType":"Elite","enemies":[{"id":"e2"}]}`)
	assert.Equal(t, flow.PhasePlaying, h.m.Phase())
	assert.Empty(t, h.m.TeamChoices())
	assert.Empty(t, h.m.Offers())
	assert.Equal(t, 2, h.m.Snapshot().RoomNumber())
	assert.Equal(t, "Elite", h.m.Snapshot().RoomType())
	assert.True(t, h.m.LoopRunning())
}

func TestMachine_RoomClearedReplacesOffersAndChoices(t *testing.T) {
	h := newHarness(t)
	h.toUpgrading()
	require.NoError(t, h.m.SelectUpgrade(1))
	h.frame(`{"type":"upgrade_chosen","playerId":2,"upgradeName":"Sharp Claws"}`)

	h.frame(`{"type":"next_room","roomNumber":2,"roomType":"Combat"}`)
	h.frame(`{"type":"room_cleared","upgrades":[{"name":"Swift Feet","icon":"speed"}]}`)

	assert.Equal(t, []messages.UpgradeOffer{{Name: "Swift Feet", Icon: "speed"}}, h.m.Offers())
	assert.Equal(t, -1, h.m.SelectedOffer())
	assert.Empty(t, h.m.TeamChoices())
}

func TestMachine_GameOverAndReturnToLobby(t *testing.T) {
	h := newHarness(t)
	h.toRoom()
	require.NoError(t, h.m.SetReady(true))
	h.frame(`{"type":"game_start"}`)
	h.frame(`{"type":"game_over","roomNumber":3}`)

	assert.Equal(t, flow.PhaseGameOver, h.m.Phase())
	assert.False(t, h.m.LoopRunning())
	assert.Equal(t, GameOverInfo{RoomNumber: 3, Message: "Game over! You reached room 3"}, h.m.GameOver())

	h.sent = nil
	require.NoError(t, h.m.ReturnToLobby())
	assert.Equal(t, flow.PhaseInRoom, h.m.Phase())
	assert.False(t, h.m.IsReady())
	require.Len(t, h.sent, 1)
	assert.JSONEq(t, `{"type":"get_room_state"}`, h.sent[0])

	h.frame(`{"type":"room_joined","roomCode":"ABCD","players":[{"id":1,"name":"Al","ready":false},{"id":3,"name":"Cy","ready":true}]}`)
	assert.Equal(t, flow.PhaseInRoom, h.m.Phase())
	assert.Equal(t, []roster.Slot{{ID: "1", Name: "Al"}, {ID: "3", Name: "Cy", Ready: true}}, h.m.Roster().Slots())

	// a second match starts exactly one loop again
	h.frame(`{"type":"game_start"}`)
	assert.Equal(t, 1, h.sched.PendingFrames())
}

func TestMachine_GameOverMessageFromServer(t *testing.T) {
	h := newHarness(t)
	h.toUpgrading()
	h.frame(`{"type":"game_over","message":"Your party fell in room 4"}`)
	assert.Equal(t, flow.PhaseGameOver, h.m.Phase())
	assert.Equal(t, "Your party fell in room 4", h.m.Status())
	assert.Equal(t, 1, h.m.GameOver().RoomNumber)
}

func TestMachine_BadFramesAreDropped(t *testing.T) {
	h := newHarness(t)
	h.toRoom()
	before := h.m.Roster()

	h.frame(`{"type":`)
	h.frame(`{"type":"chat","text":"hi"}`)
	h.frame(`{"type":"player_joined","player":"nope"}`)

	assert.Equal(t, flow.PhaseInRoom, h.m.Phase())
	assert.Equal(t, before, h.m.Roster())
}

func TestMachine_SendWithoutTransportIsDropped(t *testing.T) {
	h := newHarness(t)
	h.m.send(messages.SetReady{Ready: true})
	h.tr.AssertNotCalled(t, "Send", mock.Anything)
}

func TestMachine_Disconnect(t *testing.T) {
	h := newHarness(t)
	h.toRoom()

	h.m.Disconnect()
	h.tr.AssertCalled(t, "Close")
	assert.Equal(t, flow.PhaseInRoom, h.m.Phase())

	h.m.HandleEvent(network.Event{Kind: network.EventClose, Err: &network.ErrConnectionClosedByClient{}})
	assert.Equal(t, flow.PhaseDisconnected, h.m.Phase())
	assert.Equal(t, StatusDisconnected, h.m.Status())
}

func TestMachine_DisconnectWithoutTransport(t *testing.T) {
	h := newHarness(t)
	h.m.Disconnect()
	h.tr.AssertNotCalled(t, "Close")
	assert.Equal(t, StatusDisconnected, h.m.Status())
}

func TestMachine_Transitions(t *testing.T) {
	tests := []struct {
		from  flow.Phase
		frame string
		want  flow.Phase
	}{
		{from: flow.PhaseLobby, frame: `{"type":"room_created","roomCode":"ABCD"}`, want: flow.PhaseInRoom},
		{from: flow.PhaseLobby, frame: `{"type":"room_joined","roomCode":"ABCD"}`, want: flow.PhaseInRoom},
		{from: flow.PhaseLobby, frame: `{"type":"game_start"}`, want: flow.PhaseLobby},
		{from: flow.PhaseInRoom, frame: `{"type":"game_start"}`, want: flow.PhasePlaying},
		{from: flow.PhaseInRoom, frame: `{"type":"room_cleared"}`, want: flow.PhaseInRoom},
		{from: flow.PhasePlaying, frame: `{"type":"room_cleared"}`, want: flow.PhaseUpgrading},
		{from: flow.PhasePlaying, frame: `{"type":"game_over"}`, want: flow.PhaseGameOver},
		{from: flow.PhasePlaying, frame: `{"type":"game_start"}`, want: flow.PhasePlaying},
		{from: flow.PhaseUpgrading, frame: `{"type":"next_room","roomNumber":2,"roomType":"Combat"}`, want: flow.PhasePlaying},
		{from: flow.PhaseUpgrading, frame: `{"type":"game_over"}`, want: flow.PhaseGameOver},
		{from: flow.PhaseGameOver, frame: `{"type":"next_room","roomNumber":2,"roomType":"Combat"}`, want: flow.PhaseGameOver},
		{from: flow.PhaseGameOver, frame: `{"type":"room_joined","roomCode":"ABCD"}`, want: flow.PhaseGameOver},
	}
	for _, tt := range tests {
		t.Run(tt.from.String()+" "+tt.frame, func(t *testing.T) {
			h := newHarness(t)
			h.toPhase(tt.from)
			h.frame(tt.frame)
			assert.Equal(t, tt.want, h.m.Phase())
		})
	}
}

// Every inbound type in every phase leaves the machine in a known phase with
// exactly one loop run while playing and none otherwise.
func TestMachine_EveryMessageInEveryPhase(t *testing.T) {
	for _, phase := range flow.Phases {
		for _, typ := range messages.InboundMessageTypes() {
			t.Run(phase.String()+"/"+typ, func(t *testing.T) {
				h := newHarness(t)
				h.toPhase(phase)
				h.frame(`{"type":"` + typ + `"}`)
				h.advance(16 * time.Millisecond)

				got := h.m.Phase()
				assert.Contains(t, flow.Phases, got)
				if got == flow.PhasePlaying {
					assert.True(t, h.m.LoopRunning())
					assert.Equal(t, 1, h.sched.PendingFrames())
				} else {
					assert.False(t, h.m.LoopRunning())
					assert.Equal(t, 0, h.sched.PendingFrames())
				}
			})
		}
	}
}

func TestMachine_LoopLifecycleAcrossMatch(t *testing.T) {
	h := newHarness(t)
	h.toPlaying()

	for room := 2; room <= 4; room++ {
		h.advance(16 * time.Millisecond)
		assert.Equal(t, 1, h.sched.PendingFrames())

		h.frame(`{"type":"room_cleared","upgrades":[{"name":"Swift Feet"}]}`)
		assert.Equal(t, 0, h.sched.PendingFrames())
		h.advance(16 * time.Millisecond)

		h.frame(fmt.Sprintf(`{"type":"next_room","roomNumber":%d,"roomType":"Combat"}`, room))
		assert.Equal(t, 1, h.sched.PendingFrames())
	}

	h.frame(`{"type":"game_over"}`)
	assert.Equal(t, 0, h.sched.PendingFrames())
	h.advance(16 * time.Millisecond)
	assert.Equal(t, 0, h.sched.PendingFrames())
}
