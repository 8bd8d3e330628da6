package hub

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"ultimattt/internal/bot"
	"ultimattt/internal/client"
	"ultimattt/internal/game"
	"ultimattt/internal/room"
	"ultimattt/pkg/proto"
)

// handleJoinGame seats a client in a multiplayer room, creating the room on
// first join. The first joiner plays X, the second O; a third join attempt
// gets a capacity error and no role.
func (h *Hub) handleJoinGame(ctx context.Context, c *client.Client, msg *proto.ClientMessage) {
	ctx, span := tracer.Start(ctx, "hub.handleJoinGame", trace.WithAttributes(
		attribute.String("client.id", c.ID),
		attribute.String("room.id", msg.Room),
	))
	defer span.End()

	if msg.Room == "" {
		h.sendError(c, "room name required")
		return
	}
	if h.inRoom(c.ID) {
		h.sendError(c, "already joined to a room")
		return
	}

	r, ok := h.rooms[msg.Room]
	if !ok {
		r = room.New(msg.Room)
		h.rooms[msg.Room] = r
	}
	// Bot rooms hold exactly one human; their ids appear in the room list but
	// only spectating is open to others.
	if r.Kind == room.KindBot {
		span.SetStatus(codes.Error, "Bot room not joinable")
		h.sendError(c, "cannot join a bot room")
		return
	}

	mark, err := r.AddPlayer(c, msg.Name)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Room is full")
		h.sendError(c, "room is full")
		return
	}

	c.Name = msg.Name
	h.memberOf[c.ID] = r.ID

	if err := c.Send(&proto.ServerMessage{
		Type: proto.TypeInit,
		Room: r.ID,
		Role: mark,
		Chat: r.Chat,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to send init", "client.id", c.ID, "error", err)
	}

	if len(r.Players) == 2 {
		r.Broadcast(&proto.ServerMessage{Type: proto.TypeGameStart, Room: r.ID, Names: r.Names()})
	}
	h.broadcastRoomList()
	slog.InfoContext(ctx, "player joined room", "client.id", c.ID, "room.id", r.ID, "role", mark)
}

// handleInitBotGame creates a bot room. The human always plays X; the bot
// answers as O at the requested difficulty.
func (h *Hub) handleInitBotGame(ctx context.Context, c *client.Client, msg *proto.ClientMessage) {
	ctx, span := tracer.Start(ctx, "hub.handleInitBotGame", trace.WithAttributes(
		attribute.String("client.id", c.ID),
		attribute.String("bot.difficulty", msg.Difficulty),
	))
	defer span.End()

	if h.inRoom(c.ID) {
		h.sendError(c, "already joined to a room")
		return
	}

	difficulty := msg.Difficulty
	if difficulty == "" {
		difficulty = bot.DifficultyEasy
	}

	roomID := "bot-" + uuid.New().String()[:8]
	r := room.NewBot(roomID, difficulty)
	mark, err := r.AddPlayer(c, msg.Name)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to seat player")
		h.sendError(c, "room is full")
		return
	}
	h.rooms[roomID] = r

	c.Name = msg.Name
	h.memberOf[c.ID] = roomID

	if err := c.Send(&proto.ServerMessage{Type: proto.TypeInit, Room: roomID, Role: mark}); err != nil {
		slog.ErrorContext(ctx, "failed to send init", "client.id", c.ID, "error", err)
	}
	h.broadcastRoomList()
	slog.InfoContext(ctx, "bot room created", "room.id", roomID, "difficulty", difficulty, "client.id", c.ID)
}

// handleJoinSpectator joins a watching connection to an existing room and
// sends it the full snapshot. Spectators never count toward occupancy.
func (h *Hub) handleJoinSpectator(ctx context.Context, c *client.Client, msg *proto.ClientMessage) {
	ctx, span := tracer.Start(ctx, "hub.handleJoinSpectator", trace.WithAttributes(
		attribute.String("client.id", c.ID),
		attribute.String("room.id", msg.Room),
	))
	defer span.End()

	r, ok := h.rooms[msg.Room]
	if !ok {
		span.SetStatus(codes.Error, "Room not found")
		h.sendError(c, "room not found")
		return
	}
	if h.inRoom(c.ID) {
		h.sendError(c, "already joined to a room")
		return
	}

	c.Name = msg.Name
	r.AddSpectator(c)

	if err := c.Send(&proto.ServerMessage{
		Type:  proto.TypeSpectatorState,
		Room:  r.ID,
		State: r.Snapshot(),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to send spectator snapshot", "client.id", c.ID, "error", err)
	}
	slog.InfoContext(ctx, "spectator joined", "client.id", c.ID, "room.id", r.ID)
}

// handleChat appends to the room's bounded history and rebroadcasts the
// line verbatim. No validation beyond message size, no rate limiting.
func (h *Hub) handleChat(_ context.Context, c *client.Client, msg *proto.ClientMessage) {
	r, ok := h.rooms[msg.Room]
	if !ok {
		return
	}
	sender := msg.Name
	if sender == "" {
		sender = c.Name
	}
	entry := proto.ChatEntry{Sender: sender, Message: msg.Message}
	r.AppendChat(entry)
	r.Broadcast(&proto.ServerMessage{Type: proto.TypeChat, Room: r.ID, Chat: []proto.ChatEntry{entry}})
}

// handleMove applies a participant's move to their room. Rejected moves are
// dropped silently: no state change, no broadcast.
func (h *Hub) handleMove(ctx context.Context, c *client.Client, msg *proto.ClientMessage) {
	if msg.Move == nil {
		return
	}
	rid, ok := h.memberOf[c.ID]
	if !ok {
		return
	}
	r, ok := h.rooms[rid]
	if !ok {
		return
	}
	p, ok := r.Participant(c.ID)
	if !ok {
		return
	}
	h.applyMove(ctx, r, *msg.Move, p.Mark)
}

// applyMove is the single entry point that mutates game state, shared by
// the human path and the bot path so win and draw detection happen in
// exactly one place.
func (h *Hub) applyMove(ctx context.Context, r *room.Room, mv game.Move, mark game.Mark) {
	ctx, span := tracer.Start(ctx, "hub.applyMove", trace.WithAttributes(
		attribute.String("room.id", r.ID),
		attribute.Int("move.board", mv.Board),
		attribute.Int("move.cell", mv.Cell),
		attribute.String("move.mark", string(mark)),
	))
	defer span.End()

	if err := r.Game.Apply(mv.Board, mv.Cell, mark); err != nil {
		slog.WarnContext(ctx, "rejected move", "room.id", r.ID, "board", mv.Board, "cell", mv.Cell, "error", err)
		span.SetAttributes(attribute.Bool("move.valid", false))
		return
	}
	span.SetAttributes(attribute.Bool("move.valid", true))
	r.Version++

	outcome := r.Game.Outcome()
	r.Broadcast(&proto.ServerMessage{
		Type: proto.TypeUpdateBoard,
		Room: r.ID,
		Move: &proto.MoveDelta{
			Board:        mv.Board,
			Cell:         mv.Cell,
			Mark:         mark,
			NextTurn:     r.Game.Turn,
			Target:       r.Game.Target,
			BoardOutcome: r.Game.Statuses[mv.Board],
			GameOutcome:  outcome,
		},
	})

	if r.Kind == room.KindBot && outcome != game.Undecided && !r.Recorded {
		r.Recorded = true
		if err := h.memory.Record(ctx, r.HumanName(), outcome, game.PlayerO); err != nil {
			slog.ErrorContext(ctx, "failed to record game outcome", "room.id", r.ID, "error", err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "Failed to record game outcome")
		}
	}
}

// handleDisconnect removes a connection from its room. On zero remaining
// participants the room is deleted mid-game state included; spectators are
// dropped with a target-lost notice. Only the first matching room is
// touched, which holds because a connection belongs to at most one room.
func (h *Hub) handleDisconnect(c *client.Client) {
	delete(h.clients, c.ID)

	if rid, ok := h.memberOf[c.ID]; ok {
		delete(h.memberOf, c.ID)
		r, ok := h.rooms[rid]
		if !ok {
			return
		}
		p, ok := r.RemovePlayer(c.ID)
		if !ok {
			return
		}
		slog.Info("player left room", "client.id", c.ID, "room.id", rid)
		r.Broadcast(&proto.ServerMessage{Type: proto.TypePlayerLeft, Room: rid, Leaver: p.Name})
		if r.IsEmpty() {
			for _, s := range r.Spectators {
				if err := s.Send(&proto.ServerMessage{Type: proto.TypeSpectateLost, Room: rid}); err != nil {
					slog.Warn("spectate_lost notice not delivered", "client.id", s.ID, "error", err)
				}
			}
			delete(h.rooms, rid)
			slog.Info("room closed", "room.id", rid)
		}
		h.broadcastRoomList()
		return
	}

	for _, r := range h.rooms {
		if r.RemoveSpectator(c.ID) {
			break
		}
	}
}

// inRoom reports whether the connection is already joined to any room, as a
// player or as a spectator. The registry enforces this at join time.
func (h *Hub) inRoom(clientID string) bool {
	if _, ok := h.memberOf[clientID]; ok {
		return true
	}
	for _, r := range h.rooms {
		if _, ok := r.Spectators[clientID]; ok {
			return true
		}
	}
	return false
}
