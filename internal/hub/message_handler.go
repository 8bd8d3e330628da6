package hub

import (
	"context"
	"encoding/json"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"ultimattt/internal/client"
	"ultimattt/internal/validator"
	"ultimattt/pkg/proto"
)

// handleMessage parses, validates and dispatches one client frame.
func (h *Hub) handleMessage(c *client.Client, rawMessage []byte) {
	ctx, span := tracer.Start(context.Background(), "hub.handleMessage", trace.WithAttributes(
		attribute.String("client.id", c.ID),
	))
	defer span.End()

	var msg proto.ClientMessage
	if err := json.Unmarshal(rawMessage, &msg); err != nil {
		slog.ErrorContext(ctx, "error unmarshalling message", "client.id", c.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Error unmarshalling message")
		return
	}

	if err := validator.Get().Struct(msg); err != nil {
		slog.WarnContext(ctx, "invalid message from client", "client.id", c.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid message format")
		return
	}

	span.SetAttributes(attribute.String("message.type", msg.Type))

	switch msg.Type {
	case proto.TypeGetRooms:
		h.sendRoomList(c)
	case proto.TypeJoinGame:
		h.handleJoinGame(ctx, c, &msg)
	case proto.TypeInitBotGame:
		h.handleInitBotGame(ctx, c, &msg)
	case proto.TypeJoinSpectator:
		h.handleJoinSpectator(ctx, c, &msg)
	case proto.TypeMove:
		h.handleMove(ctx, c, &msg)
	case proto.TypeChat:
		h.handleChat(ctx, c, &msg)
	case proto.TypeRequestBotMove:
		h.handleRequestBotMove(ctx, c, &msg)
	}
}

// sendError delivers an explicit error notice to one connection only.
func (h *Hub) sendError(c *client.Client, reason string) {
	if err := c.Send(&proto.ServerMessage{Type: proto.TypeError, Reason: reason}); err != nil {
		slog.Warn("error notice not delivered", "client.id", c.ID, "error", err)
	}
}
