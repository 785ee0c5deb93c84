package messages

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ProtocolVersion is announced in the handshake. The server does not negotiate it.
const ProtocolVersion = "1.0.0"

// Outbound message types
const (
	MessageTypeHandshake     = "handshake"
	MessageTypeCreateRoom    = "create_room"
	MessageTypeJoinRoom      = "join_room"
	MessageTypeSetReady      = "set_ready"
	MessageTypeSelectUpgrade = "select_upgrade"
	MessageTypeGetRoomState  = "get_room_state"
	MessageTypeInput         = "input"
)

// Inbound message types
const (
	MessageTypeConnected     = "connected"
	MessageTypeRoomCreated   = "room_created"
	MessageTypeRoomJoined    = "room_joined"
	MessageTypeRoomError     = "room_error"
	MessageTypePlayerJoined  = "player_joined"
	MessageTypePlayerLeft    = "player_left"
	MessageTypePlayerReady   = "player_ready"
	MessageTypeGameStarting  = "game_starting"
	MessageTypeGameStart     = "game_start"
	MessageTypeGameState     = "game_state"
	MessageTypeRoomCleared   = "room_cleared"
	MessageTypeUpgradeChosen = "upgrade_chosen"
	MessageTypeNextRoom      = "next_room"
	MessageTypeGameOver      = "game_over"
)

// PlayerID identifies a player. The server may send it as a JSON number or string.
type PlayerID string

func (id *PlayerID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("failed to decode player id: %v", err)
		}
		*id = PlayerID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("failed to decode player id: %v", err)
	}
	*id = PlayerID(n.String())
	return nil
}

// Ptr returns a pointer to v. Optional payload fields are pointers.
func Ptr[T any](v T) *T {
	return &v
}

// NormalizeRoomCode trims and uppercases a room code.
func NormalizeRoomCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NormalizePlayerName trims surrounding whitespace from a player name.
func NormalizePlayerName(name string) string {
	return strings.TrimSpace(name)
}

// Command is a client to server message.
type Command interface {
	CommandType() string
}

type Handshake struct {
	Version string `json:"version"`
}

type CreateRoom struct {
	PlayerName string `json:"playerName"`
}

type JoinRoom struct {
	RoomCode   string `json:"roomCode"`
	PlayerName string `json:"playerName"`
}

type SetReady struct {
	Ready bool `json:"ready"`
}

type SelectUpgrade struct {
	UpgradeIndex int `json:"upgradeIndex"`
}

type GetRoomState struct{}

// Input is the per-frame sample of held inputs and the pointer position.
type Input struct {
	Keys   map[string]bool `json:"keys"`
	MouseX float64         `json:"mouseX"`
	MouseY float64         `json:"mouseY"`
}

func (Handshake) CommandType() string     { return MessageTypeHandshake }
func (CreateRoom) CommandType() string    { return MessageTypeCreateRoom }
func (JoinRoom) CommandType() string      { return MessageTypeJoinRoom }
func (SetReady) CommandType() string      { return MessageTypeSetReady }
func (SelectUpgrade) CommandType() string { return MessageTypeSelectUpgrade }
func (GetRoomState) CommandType() string  { return MessageTypeGetRoomState }
func (Input) CommandType() string         { return MessageTypeInput }

// NewHandshake returns the handshake for the current protocol version.
func NewHandshake() Handshake {
	return Handshake{Version: ProtocolVersion}
}

func NewCreateRoom(playerName string) CreateRoom {
	return CreateRoom{PlayerName: NormalizePlayerName(playerName)}
}

func NewJoinRoom(roomCode, playerName string) JoinRoom {
	return JoinRoom{
		RoomCode:   NormalizeRoomCode(roomCode),
		PlayerName: NormalizePlayerName(playerName),
	}
}

// PlayerSlot is a roster entry as reported by the server.
type PlayerSlot struct {
	ID    PlayerID `json:"id"`
	Name  string   `json:"name"`
	Ready bool     `json:"ready"`
}

type PlayerState struct {
	ID     PlayerID `json:"id"`
	Name   string   `json:"name"`
	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
	HP     float64  `json:"hp"`
	MaxHP  float64  `json:"maxHp"`
	Attack *float64 `json:"attack,omitempty"`
	Speed  *float64 `json:"speed,omitempty"`
	Angle  *float64 `json:"angle,omitempty"`
}

type EnemyState struct {
	ID     string   `json:"id,omitempty"`
	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
	HP     *float64 `json:"hp,omitempty"`
	MaxHP  *float64 `json:"maxHp,omitempty"`
	Radius *float64 `json:"radius,omitempty"`
	Color  *string  `json:"color,omitempty"`
	Type   *string  `json:"type,omitempty"`
}

type ProjectileState struct {
	ID     string   `json:"id,omitempty"`
	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
	Radius *float64 `json:"radius,omitempty"`
	Color  *string  `json:"color,omitempty"`
}

type Rarity string

const (
	RarityCommon Rarity = "common"
	RarityRare   Rarity = "rare"
	RarityEpic   Rarity = "epic"
)

// OrDefault maps an absent or unknown rarity to common.
func (r Rarity) OrDefault() Rarity {
	switch r {
	case RarityRare, RarityEpic:
		return r
	default:
		return RarityCommon
	}
}

type UpgradeOffer struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Rarity      Rarity `json:"rarity,omitempty"`
	Icon        string `json:"icon,omitempty"`
}
