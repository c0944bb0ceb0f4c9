package transport

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/cheildo/arcane-duel-backend/internal/game"
	"github.com/cheildo/arcane-duel-backend/internal/protocol"
)

const (
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	writeWait      = 10 * time.Second
	outboundBuffer = 32
)

// upgrader is used to upgrade an HTTP connection to a persistent WebSocket
// connection.
var upgrader = websocket.Upgrader{
	// Allow connections from any origin (for development).
	// In production, restrict this to the game client's origin.
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Core is the slice of the game engine the transport drives: lifecycle
// signals in, validated requests in, ack/reject out.
type Core interface {
	Join(player uuid.UUID) (uuid.UUID, error)
	Leave(player uuid.UUID)
	Submit(player uuid.UUID, req protocol.ClientRequest) error
}

// ChatRelay forwards chat lines to the sender's room.
type ChatRelay interface {
	Send(ctx context.Context, from uuid.UUID, content string) error
}

// TokenVerifier authenticates the handshake token into a player identity.
type TokenVerifier interface {
	Verify(token string) (uuid.UUID, string, error)
}

// WebsocketHandler owns the WebSocket endpoint: it authenticates the
// handshake, registers the player's outbound sink, signals the join, and
// pumps messages both ways until the socket dies.
type WebsocketHandler struct {
	core     Core
	registry *Registry
	chat     ChatRelay
	tokens   TokenVerifier
}

func NewWebsocketHandler(core Core, registry *Registry, chat ChatRelay, tokens TokenVerifier) *WebsocketHandler {
	return &WebsocketHandler{core: core, registry: registry, chat: chat, tokens: tokens}
}

// ServeHTTP is the entry point for an HTTP request. It upgrades the
// connection and handles it for the lifetime of the socket.
func (h *WebsocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "Token is required", http.StatusBadRequest)
		return
	}
	playerID, name, err := h.tokens.Verify(token)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Failed to upgrade connection to WebSocket", "error", err)
		return
	}
	slog.Info("WebSocket connection established", "player", playerID, "name", name)

	// Join before touching the registry: a rejected join (the player is
	// already connected and in a room) must not disturb the live
	// connection's sink.
	if _, err := h.core.Join(playerID); err != nil {
		slog.Warn("Join rejected", "player", playerID, "error", err)
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error()),
			time.Now().Add(writeWait))
		conn.Close()
		return
	}

	sink := make(chan protocol.ServerMessage, outboundBuffer)
	h.registry.Register(playerID, sink)

	go h.writePump(conn, playerID, sink)
	h.readPump(conn, playerID)
}

// readPump loops over inbound frames until the connection breaks. Any
// exit runs the full disconnect path: the deferred cleanup removes the
// player from their room and drops the sink.
func (h *WebsocketHandler) readPump(conn *websocket.Conn, playerID uuid.UUID) {
	defer func() {
		slog.Info("Closing WebSocket connection", "player", playerID)
		h.core.Leave(playerID)
		h.registry.Unregister(playerID)
		conn.Close()
	}()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var req protocol.ClientRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Warn("WebSocket connection closed unexpectedly", "player", playerID, "error", err)
			} else if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				// Malformed JSON also lands here; the connection is not
				// worth keeping once framing is broken.
				slog.Warn("Failed to read client request", "player", playerID, "error", err)
			}
			return
		}
		h.handleRequest(playerID, req)
	}
}

// handleRequest routes one decoded request: chat to the relay, the rest
// to the core. A rejection becomes an error message to this requester
// only.
func (h *WebsocketHandler) handleRequest(playerID uuid.UUID, req protocol.ClientRequest) {
	if req.Type == protocol.RequestChat {
		if err := h.chat.Send(context.Background(), playerID, req.Content); err != nil {
			h.registry.Send(playerID, protocol.Error(err.Error()))
		}
		return
	}
	if err := h.core.Submit(playerID, req); err != nil {
		if !errors.Is(err, game.ErrUnsupportedRequest) {
			slog.Info("Request rejected", "player", playerID, "type", req.Type, "error", err)
		}
		h.registry.Send(playerID, protocol.Error(err.Error()))
	}
}

// writePump owns all writes to the socket: queued notifications plus
// keepalive pings. It exits on the first write error, which the read
// deadline on the peer side will surface as a disconnect.
func (h *WebsocketHandler) writePump(conn *websocket.Conn, playerID uuid.UUID, sink <-chan protocol.ServerMessage) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg := <-sink:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				slog.Warn("Failed to write to WebSocket", "player", playerID, "error", err)
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
