package client

import (
	"encoding/json"

	"github.com/gorilla/websocket"

	"ultimattt/pkg/proto"
)

// Connection abstracts the websocket connection so tests can substitute a
// fake transport.
type Connection interface {
	WriteMessage(messageType int, data []byte) error
	ReadMessage() (int, []byte, error)
	Close() error
}

// Client is one connected socket: a player, a spectator, or a visitor still
// on the menu. The hub owns all clients; a client belongs to at most one
// room at a time.
type Client struct {
	ID   string
	Name string
	Conn Connection
}

// New wraps a connection under a connection identity.
func New(id string, conn Connection) *Client {
	return &Client{ID: id, Conn: conn}
}

// Send marshals and writes one server message. Errors are returned for the
// caller to log; a failed write never tears the room down by itself, the
// read pump notices the dead socket.
func (c *Client) Send(msg *proto.ServerMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return c.Conn.WriteMessage(websocket.TextMessage, data)
}
