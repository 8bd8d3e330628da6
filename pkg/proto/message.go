package proto

import "ultimattt/internal/game"

// Client-to-server message types.
const (
	TypeGetRooms       = "get_rooms"
	TypeJoinGame       = "join_game"
	TypeInitBotGame    = "init_bot_game"
	TypeJoinSpectator  = "join_spectator"
	TypeMove           = "move"
	TypeChat           = "chat"
	TypeRequestBotMove = "request_bot_move"
)

// Server-to-client message types.
const (
	TypeRoomList       = "room_list"
	TypeInit           = "init"
	TypeGameStart      = "game_start"
	TypeSpectatorState = "spectator_state"
	TypeUpdateBoard    = "update_board"
	TypePlayerLeft     = "player_left"
	TypeSpectateLost   = "spectate_lost"
	TypeError          = "error"
)

// ClientMessage is every message a client may send over the websocket.
type ClientMessage struct {
	Type       string     `json:"type" validate:"required,oneof=get_rooms join_game init_bot_game join_spectator move chat request_bot_move"`
	Room       string     `json:"room,omitempty" validate:"omitempty,max=64"`
	Name       string     `json:"name,omitempty" validate:"omitempty,max=32"`
	Difficulty string     `json:"difficulty,omitempty" validate:"omitempty,oneof=easy hard god"`
	Move       *game.Move `json:"move,omitempty"`
	Message    string     `json:"message,omitempty" validate:"omitempty,max=500"`
}

// ServerMessage is every message the server may push to a client. Unused
// fields are omitted per message type.
type ServerMessage struct {
	Type   string            `json:"type"`
	Room   string            `json:"room,omitempty"`
	Role   game.Mark         `json:"role,omitempty"`
	Rooms  []RoomInfo        `json:"rooms,omitempty"`
	Names  map[string]string `json:"names,omitempty"`
	State  *Snapshot         `json:"state,omitempty"`
	Move   *MoveDelta        `json:"move,omitempty"`
	Chat   []ChatEntry       `json:"chat,omitempty"`
	Leaver string            `json:"leaver,omitempty"`
	Reason string            `json:"reason,omitempty"`
}

// RoomInfo is one entry of the public room list.
type RoomInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Players int    `json:"players"`
	Open    bool   `json:"open"`
}

// ChatEntry is one relayed chat line, stored and rebroadcast verbatim.
type ChatEntry struct {
	Sender  string `json:"sender"`
	Message string `json:"message"`
}

// MoveDelta describes one accepted move, broadcast to players and
// spectators alike. Clients must treat these deltas as the sole source of
// truth for board state.
type MoveDelta struct {
	Board        int          `json:"board"`
	Cell         int          `json:"cell"`
	Mark         game.Mark    `json:"mark"`
	NextTurn     game.Mark    `json:"nextTurn"`
	Target       int          `json:"target"`
	BoardOutcome game.Outcome `json:"boardOutcome,omitempty"`
	GameOutcome  game.Outcome `json:"gameOutcome,omitempty"`
}

// Snapshot is the full room view sent to a joining spectator.
type Snapshot struct {
	Boards   [9]game.Cells     `json:"boards"`
	Statuses game.Statuses     `json:"statuses"`
	Turn     game.Mark         `json:"turn"`
	Target   int               `json:"target"`
	Names    map[string]string `json:"names"`
	Chat     []ChatEntry       `json:"chat"`
}
