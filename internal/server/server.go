package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"ultimattt/internal/client"
	"ultimattt/internal/config"
	"ultimattt/internal/hub"
)

var tracer = otel.Tracer("server")

// Server is the HTTP surface: the websocket upgrade, the small REST
// endpoints and the static presentational client.
type Server struct {
	hub      *hub.Hub
	cfg      *config.Config
	engine   *gin.Engine
	upgrader websocket.Upgrader
}

// NewServer wires the gin engine and routes.
func NewServer(h *hub.Hub, cfg *config.Config) *Server {
	s := &Server{
		hub: h,
		cfg: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/ws", s.handleWebSocket)
	engine.GET("/names", s.handleNames)
	engine.GET("/rooms", s.handleRooms)
	engine.GET("/healthz", s.handleHealth)
	engine.NoRoute(gin.WrapH(http.FileServer(http.Dir(cfg.WebDir))))

	s.engine = engine
	return s
}

// Engine exposes the router for the http.Server.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// handleWebSocket upgrades the connection and hands it to the hub. All game
// semantics live behind the hub loop; this handler only establishes the
// bidirectional event channel.
func (s *Server) handleWebSocket(c *gin.Context) {
	_, span := tracer.Start(c.Request.Context(), "server.handleWebSocket", trace.WithAttributes(
		attribute.String("http.url", c.Request.URL.String()),
	))
	defer span.End()

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("failed to upgrade connection", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to upgrade connection")
		return
	}

	cl := client.New(uuid.New().String(), conn)
	span.SetAttributes(attribute.String("client.id", cl.ID))

	s.hub.Register(cl)
	go s.hub.ReadPump(cl)
}

// handleRooms returns the same public room list the hub pushes over the
// websocket.
func (s *Server) handleRooms(c *gin.Context) {
	c.JSON(http.StatusOK, s.hub.RoomList())
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
