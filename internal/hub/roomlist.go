package hub

import (
	"fmt"
	"log/slog"
	"sort"

	"ultimattt/internal/bot"
	"ultimattt/internal/client"
	"ultimattt/internal/room"
	"ultimattt/pkg/proto"
)

// roomList builds the public room list: multiplayer rooms keyed by open or
// full status, bot rooms with a synthesized display name. Rooms with no
// participant are excluded.
func (h *Hub) roomList() []proto.RoomInfo {
	list := make([]proto.RoomInfo, 0, len(h.rooms))
	for id, r := range h.rooms {
		if r.IsEmpty() {
			continue
		}
		info := proto.RoomInfo{
			ID:      id,
			Name:    id,
			Kind:    r.Kind,
			Players: len(r.Players),
			Open:    r.Kind == room.KindMulti && len(r.Players) < 2,
		}
		if r.Kind == room.KindBot {
			info.Name = fmt.Sprintf("%s vs %s", bot.DisplayName(r.Difficulty), r.HumanName())
		}
		list = append(list, info)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

// sendRoomList pushes the current room list to one connection.
func (h *Hub) sendRoomList(c *client.Client) {
	if err := c.Send(&proto.ServerMessage{Type: proto.TypeRoomList, Rooms: h.roomList()}); err != nil {
		slog.Warn("room list not delivered", "client.id", c.ID, "error", err)
	}
}

// broadcastRoomList pushes the room list to every connection, joined to a
// room or not, after any membership change.
func (h *Hub) broadcastRoomList() {
	msg := &proto.ServerMessage{Type: proto.TypeRoomList, Rooms: h.roomList()}
	for _, c := range h.clients {
		if err := c.Send(msg); err != nil {
			slog.Warn("room list not delivered", "client.id", c.ID, "error", err)
		}
	}
}
