package hub

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"

	"ultimattt/internal/client"
	"ultimattt/internal/memory"
	"ultimattt/internal/room"
	"ultimattt/pkg/proto"
)

var tracer = otel.Tracer("hub")

const (
	searchWorkers   = 2
	inboundBuffer   = 64
	searchJobBuffer = 16
)

// Options bound the bot search dispatched by the hub.
type Options struct {
	SearchDepth   int
	SearchNodes   int
	SearchTimeout time.Duration
}

// inboundMessage is one raw client frame queued for the hub loop.
type inboundMessage struct {
	client *client.Client
	data   []byte
}

// Hub owns every room and every connected client. All mutations happen on
// the single Run goroutine: each inbound message is processed to completion
// before the next, so no two mutations of the same room ever interleave and
// no locking is needed. Search runs on worker goroutines against cloned
// state and re-enters the loop through a result channel.
type Hub struct {
	opts Options

	rooms    map[string]*room.Room
	clients  map[string]*client.Client
	memberOf map[string]string

	register      chan *client.Client
	unregister    chan *client.Client
	inbound       chan *inboundMessage
	searchJobs    chan searchJob
	searchResults chan searchResult
	listRequests  chan chan []proto.RoomInfo
	done          chan struct{}

	memory memory.Store
}

// NewHub creates a hub backed by the given outcome memory.
func NewHub(mem memory.Store, opts Options) *Hub {
	return &Hub{
		opts:          opts,
		rooms:         make(map[string]*room.Room),
		clients:       make(map[string]*client.Client),
		memberOf:      make(map[string]string),
		register:      make(chan *client.Client),
		unregister:    make(chan *client.Client),
		inbound:       make(chan *inboundMessage, inboundBuffer),
		searchJobs:    make(chan searchJob, searchJobBuffer),
		searchResults: make(chan searchResult, searchJobBuffer),
		listRequests:  make(chan chan []proto.RoomInfo),
		done:          make(chan struct{}),
		memory:        mem,
	}
}

// Run starts the hub loop. It returns only after Stop.
func (h *Hub) Run() {
	for i := 0; i < searchWorkers; i++ {
		go h.searchWorker()
	}
	defer close(h.searchJobs)

	for {
		select {
		case <-h.done:
			slog.Info("hub stopping")
			return

		case c := <-h.register:
			h.clients[c.ID] = c
			slog.Info("client connected", "client.id", c.ID)
			h.sendRoomList(c)

		case c := <-h.unregister:
			h.handleDisconnect(c)

		case msg := <-h.inbound:
			h.handleMessage(msg.client, msg.data)

		case res := <-h.searchResults:
			h.applySearchResult(res)

		case resp := <-h.listRequests:
			resp <- h.roomList()
		}
	}
}

// Stop terminates the hub loop.
func (h *Hub) Stop() {
	close(h.done)
}

// Register hands a freshly upgraded connection to the hub.
func (h *Hub) Register(c *client.Client) {
	h.register <- c
}

// ReadPump reads frames off a client connection into the hub loop. It runs
// on its own goroutine per connection and unregisters the client when the
// socket dies.
func (h *Hub) ReadPump(c *client.Client) {
	defer func() {
		c.Conn.Close()
		select {
		case h.unregister <- c:
		case <-h.done:
		}
	}()
	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			slog.Warn("client connection closed", "client.id", c.ID, "error", err)
			return
		}
		select {
		case h.inbound <- &inboundMessage{client: c, data: data}:
		case <-h.done:
			return
		}
	}
}

// RoomList returns the public room list for the REST surface. It round-trips
// through the hub loop so the room map stays single-owner.
func (h *Hub) RoomList() []proto.RoomInfo {
	resp := make(chan []proto.RoomInfo, 1)
	select {
	case h.listRequests <- resp:
		return <-resp
	case <-h.done:
		return nil
	}
}
