package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Server serves the live standout-player feed
type Server struct {
	port   string
	server *http.Server
	hub    *Hub
}

// NewServer creates a new WebSocket server
func NewServer(port string) *Server {
	s := &Server{
		port: port,
		hub:  NewHub(),
	}
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the feed routes
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/ws/players", s.handlePlayers).Methods(http.MethodGet)
	router.HandleFunc("/ws/health", s.handleHealth).Methods(http.MethodGet)
	return router
}

// Start runs the hub until ctx is cancelled and blocks serving connections
func (s *Server) Start(ctx context.Context) error {
	go s.hub.Run(ctx)

	log.Info().Str("component", "websocket").Str("port", s.port).Msg("websocket server listening")
	return s.server.ListenAndServe()
}

func (s *Server) handlePlayers(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("component", "websocket").Msg("failed to upgrade connection")
		return
	}

	client := newClient(s.hub, conn)
	if !s.hub.Register(client) {
		conn.Close()
		return
	}

	log.Info().
		Str("component", "websocket").
		Str("client_id", client.id).
		Str("remote_addr", r.RemoteAddr).
		Msg("client connected")

	go client.writePump()
	go client.readPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "healthy",
		"clients": s.hub.ClientCount(),
	})
}

// Broadcast sends a payload to every connected client
func (s *Server) Broadcast(data []byte) {
	s.hub.Broadcast(data)
}

// Shutdown gracefully shuts down the listener. Upgraded connections are
// closed by the hub when the context passed to Start is cancelled.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
