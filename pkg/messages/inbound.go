package messages

// ServerMessage is a server to client message. The set of implementations is
// closed; use Accept to dispatch to a Handler.
type ServerMessage interface {
	MessageType() string
	Accept(h Handler)
	serverMessage()
}

// Handler has one method per inbound message type. Adding a message type
// adds a method here, so every Handler implementation stops compiling until
// it handles the new type.
type Handler interface {
	HandleConnected(m *Connected)
	HandleRoomCreated(m *RoomCreated)
	HandleRoomJoined(m *RoomJoined)
	HandleRoomError(m *RoomError)
	HandlePlayerJoined(m *PlayerJoined)
	HandlePlayerLeft(m *PlayerLeft)
	HandlePlayerReady(m *PlayerReady)
	HandleGameStarting(m *GameStarting)
	HandleGameStart(m *GameStart)
	HandleGameState(m *GameState)
	HandleRoomCleared(m *RoomCleared)
	HandleUpgradeChosen(m *UpgradeChosen)
	HandleNextRoom(m *NextRoom)
	HandleGameOver(m *GameOver)
}

type Connected struct {
	PlayerID PlayerID `json:"playerId"`
}

type RoomCreated struct {
	RoomCode string       `json:"roomCode"`
	PlayerID PlayerID     `json:"playerId"`
	Players  []PlayerSlot `json:"players"`
}

type RoomJoined struct {
	RoomCode string       `json:"roomCode"`
	PlayerID PlayerID     `json:"playerId"`
	Players  []PlayerSlot `json:"players"`
}

type RoomError struct {
	Message string `json:"message"`
}

type PlayerJoined struct {
	Player PlayerSlot `json:"player"`
}

type PlayerLeft struct {
	PlayerID PlayerID `json:"playerId"`
}

type PlayerReady struct {
	PlayerID PlayerID `json:"playerId"`
	Ready    bool     `json:"ready"`
}

type GameStarting struct {
	Countdown *int `json:"countdown"`
}

// GameStart carries the full initial snapshot.
type GameStart struct {
	Players     []PlayerState     `json:"players"`
	Enemies     []EnemyState      `json:"enemies"`
	Projectiles []ProjectileState `json:"projectiles"`
	RoomNumber  *int              `json:"roomNumber"`
	RoomType    *string           `json:"roomType"`
}

// GameState carries a partial snapshot. A nil field was absent from the payload.
type GameState struct {
	Players     *[]PlayerState     `json:"players"`
	Enemies     *[]EnemyState      `json:"enemies"`
	Projectiles *[]ProjectileState `json:"projectiles"`
}

type RoomCleared struct {
	Upgrades []UpgradeOffer `json:"upgrades"`
}

type UpgradeChosen struct {
	PlayerID    PlayerID `json:"playerId"`
	UpgradeName string   `json:"upgradeName"`
}

type NextRoom struct {
	RoomNumber int          `json:"roomNumber"`
	RoomType   string       `json:"roomType"`
	Enemies    []EnemyState `json:"enemies"`
}

type GameOver struct {
	RoomNumber *int   `json:"roomNumber"`
	Message    string `json:"message"`
}

func (*Connected) MessageType() string     { return MessageTypeConnected }
func (*RoomCreated) MessageType() string   { return MessageTypeRoomCreated }
func (*RoomJoined) MessageType() string    { return MessageTypeRoomJoined }
func (*RoomError) MessageType() string     { return MessageTypeRoomError }
func (*PlayerJoined) MessageType() string  { return MessageTypePlayerJoined }
func (*PlayerLeft) MessageType() string    { return MessageTypePlayerLeft }
func (*PlayerReady) MessageType() string   { return MessageTypePlayerReady }
func (*GameStarting) MessageType() string  { return MessageTypeGameStarting }
func (*GameStart) MessageType() string     { return MessageTypeGameStart }
func (*GameState) MessageType() string     { return MessageTypeGameState }
func (*RoomCleared) MessageType() string   { return MessageTypeRoomCleared }
func (*UpgradeChosen) MessageType() string { return MessageTypeUpgradeChosen }
func (*NextRoom) MessageType() string      { return MessageTypeNextRoom }
func (*GameOver) MessageType() string      { return MessageTypeGameOver }

func (m *Connected) Accept(h Handler)     { h.HandleConnected(m) }
func (m *RoomCreated) Accept(h Handler)   { h.HandleRoomCreated(m) }
func (m *RoomJoined) Accept(h Handler)    { h.HandleRoomJoined(m) }
func (m *RoomError) Accept(h Handler)     { h.HandleRoomError(m) }
func (m *PlayerJoined) Accept(h Handler)  { h.HandlePlayerJoined(m) }
func (m *PlayerLeft) Accept(h Handler)    { h.HandlePlayerLeft(m) }
func (m *PlayerReady) Accept(h Handler)   { h.HandlePlayerReady(m) }
func (m *GameStarting) Accept(h Handler)  { h.HandleGameStarting(m) }
func (m *GameStart) Accept(h Handler)     { h.HandleGameStart(m) }
func (m *GameState) Accept(h Handler)     { h.HandleGameState(m) }
func (m *RoomCleared) Accept(h Handler)   { h.HandleRoomCleared(m) }
func (m *UpgradeChosen) Accept(h Handler) { h.HandleUpgradeChosen(m) }
func (m *NextRoom) Accept(h Handler)      { h.HandleNextRoom(m) }
func (m *GameOver) Accept(h Handler)      { h.HandleGameOver(m) }

func (*Connected) serverMessage()     {}
func (*RoomCreated) serverMessage()   {}
func (*RoomJoined) serverMessage()    {}
func (*RoomError) serverMessage()     {}
func (*PlayerJoined) serverMessage()  {}
func (*PlayerLeft) serverMessage()    {}
func (*PlayerReady) serverMessage()   {}
func (*GameStarting) serverMessage()  {}
func (*GameStart) serverMessage()     {}
func (*GameState) serverMessage()     {}
func (*RoomCleared) serverMessage()   {}
func (*UpgradeChosen) serverMessage() {}
func (*NextRoom) serverMessage()      {}
func (*GameOver) serverMessage()      {}

var inbound = map[string]func() ServerMessage{
	MessageTypeConnected:     func() ServerMessage { return &Connected{} },
	MessageTypeRoomCreated:   func() ServerMessage { return &RoomCreated{} },
	MessageTypeRoomJoined:    func() ServerMessage { return &RoomJoined{} },
	MessageTypeRoomError:     func() ServerMessage { return &RoomError{} },
	MessageTypePlayerJoined:  func() ServerMessage { return &PlayerJoined{} },
	MessageTypePlayerLeft:    func() ServerMessage { return &PlayerLeft{} },
	MessageTypePlayerReady:   func() ServerMessage { return &PlayerReady{} },
	MessageTypeGameStarting:  func() ServerMessage { return &GameStarting{} },
	MessageTypeGameStart:     func() ServerMessage { return &GameStart{} },
	MessageTypeGameState:     func() ServerMessage { return &GameState{} },
	MessageTypeRoomCleared:   func() ServerMessage { return &RoomCleared{} },
	MessageTypeUpgradeChosen: func() ServerMessage { return &UpgradeChosen{} },
	MessageTypeNextRoom:      func() ServerMessage { return &NextRoom{} },
	MessageTypeGameOver:      func() ServerMessage { return &GameOver{} },
}

// InboundMessageTypes lists every inbound type the codec decodes.
func InboundMessageTypes() []string {
	types := make([]string, 0, len(inbound))
	for t := range inbound {
		types = append(types, t)
	}
	return types
}
