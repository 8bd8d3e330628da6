package room

import (
	"errors"
	"log/slog"

	"ultimattt/internal/bot"
	"ultimattt/internal/client"
	"ultimattt/internal/game"
	"ultimattt/pkg/proto"
)

// Room kinds.
const (
	KindMulti = "multi"
	KindBot   = "bot"
)

// MaxChatHistory bounds the per-room chat buffer; the oldest entry is
// evicted first.
const MaxChatHistory = 50

const capacity = 2

var ErrRoomFull = errors.New("room is full")

// Participant is a seated player. Spectators are not participants: they do
// not count toward occupancy and never hold a mark.
type Participant struct {
	Client *client.Client
	Mark   game.Mark
	Name   string
}

// Room is one game room. It is owned exclusively by the hub goroutine; no
// other component keeps a mutable reference across message boundaries.
type Room struct {
	ID         string
	Kind       string
	Difficulty string
	Players    []*Participant
	Spectators map[string]*client.Client
	Game       *game.State
	Chat       []proto.ChatEntry

	// Version counts accepted moves. A search result computed against an
	// older version is discarded.
	Version   int
	Searching bool
	// Recorded flips when the terminal outcome has been written to outcome
	// memory, so each decided game is recorded exactly once.
	Recorded bool
}

// New creates an empty multiplayer room.
func New(id string) *Room {
	return &Room{
		ID:         id,
		Kind:       KindMulti,
		Spectators: make(map[string]*client.Client),
		Game:       game.NewState(),
	}
}

// NewBot creates a bot room. The single human participant always plays X;
// the bot answers as O.
func NewBot(id, difficulty string) *Room {
	r := New(id)
	r.Kind = KindBot
	r.Difficulty = difficulty
	return r
}

// AddPlayer seats a client: X for the first joiner, O for the second. A
// third join attempt gets ErrRoomFull and no mark.
func (r *Room) AddPlayer(c *client.Client, name string) (game.Mark, error) {
	if len(r.Players) >= capacity {
		return game.None, ErrRoomFull
	}
	mark := game.PlayerX
	if len(r.Players) == 1 {
		mark = game.Opponent(r.Players[0].Mark)
	}
	r.Players = append(r.Players, &Participant{Client: c, Mark: mark, Name: name})
	return mark, nil
}

// Participant looks a seated player up by connection id.
func (r *Room) Participant(clientID string) (*Participant, bool) {
	for _, p := range r.Players {
		if p.Client.ID == clientID {
			return p, true
		}
	}
	return nil, false
}

// RemovePlayer unseats a player and reports who left.
func (r *Room) RemovePlayer(clientID string) (*Participant, bool) {
	for i, p := range r.Players {
		if p.Client.ID == clientID {
			r.Players = append(r.Players[:i], r.Players[i+1:]...)
			return p, true
		}
	}
	return nil, false
}

// AddSpectator joins a watching connection to the room's broadcast set.
func (r *Room) AddSpectator(c *client.Client) {
	r.Spectators[c.ID] = c
}

// RemoveSpectator drops a watching connection, reporting whether it was one.
func (r *Room) RemoveSpectator(clientID string) bool {
	if _, ok := r.Spectators[clientID]; !ok {
		return false
	}
	delete(r.Spectators, clientID)
	return true
}

// IsEmpty reports whether no participant remains. Spectators do not keep a
// room alive.
func (r *Room) IsEmpty() bool {
	return len(r.Players) == 0
}

// AppendChat stores a relayed chat line, evicting the oldest past the cap.
func (r *Room) AppendChat(entry proto.ChatEntry) {
	r.Chat = append(r.Chat, entry)
	if len(r.Chat) > MaxChatHistory {
		r.Chat = r.Chat[1:]
	}
}

// Names maps marks to display names. Bot rooms synthesize the bot's name
// from the difficulty; a multiplayer room missing a seat leaves the mark out.
func (r *Room) Names() map[string]string {
	names := make(map[string]string, capacity)
	for _, p := range r.Players {
		names[string(p.Mark)] = p.Name
	}
	if r.Kind == KindBot {
		names[string(game.PlayerO)] = bot.DisplayName(r.Difficulty)
	}
	return names
}

// HumanName returns the display name the outcome memory entry is keyed by.
func (r *Room) HumanName() string {
	if len(r.Players) == 0 {
		return ""
	}
	return r.Players[0].Name
}

// Snapshot builds the full state view sent to a joining spectator.
func (r *Room) Snapshot() *proto.Snapshot {
	return &proto.Snapshot{
		Boards:   r.Game.Boards,
		Statuses: r.Game.Statuses,
		Turn:     r.Game.Turn,
		Target:   r.Game.Target,
		Names:    r.Names(),
		Chat:     r.Chat,
	}
}

// Broadcast fans a message out to every socket joined to the room, players
// and spectators alike. Write errors are logged; the read pump handles dead
// sockets.
func (r *Room) Broadcast(msg *proto.ServerMessage) {
	for _, p := range r.Players {
		if err := p.Client.Send(msg); err != nil {
			slog.Warn("broadcast to player failed", "room.id", r.ID, "client.id", p.Client.ID, "error", err)
		}
	}
	for _, s := range r.Spectators {
		if err := s.Send(msg); err != nil {
			slog.Warn("broadcast to spectator failed", "room.id", r.ID, "client.id", s.ID, "error", err)
		}
	}
}
