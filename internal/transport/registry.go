package transport

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/cheildo/arcane-duel-backend/internal/protocol"
)

// Registry safely stores the outbound sink of every connected player.
// Sends are enqueue-and-return: the actual socket write happens on the
// connection's write pump, so the game engine never blocks on I/O.
type Registry struct {
	sinks sync.Map // map[uuid.UUID]chan protocol.ServerMessage
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) Register(player uuid.UUID, sink chan protocol.ServerMessage) {
	r.sinks.Store(player, sink)
}

func (r *Registry) Unregister(player uuid.UUID) {
	r.sinks.Delete(player)
}

// Send enqueues a message for one player. It reports false for unknown
// players and for players whose outbound buffer is full; both are soft
// failures cleaned up by the disconnect path, never by the caller.
func (r *Registry) Send(player uuid.UUID, msg protocol.ServerMessage) bool {
	v, ok := r.sinks.Load(player)
	if !ok {
		slog.Warn("Send to unknown player dropped", "player", player, "type", msg.Type)
		return false
	}
	select {
	case v.(chan protocol.ServerMessage) <- msg:
		return true
	default:
		slog.Warn("Outbound buffer full, message dropped", "player", player, "type", msg.Type)
		return false
	}
}

// Broadcast enqueues a message for every listed player.
func (r *Registry) Broadcast(players []uuid.UUID, msg protocol.ServerMessage) {
	for _, p := range players {
		r.Send(p, msg)
	}
}
