package chat

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cheildo/arcane-duel-backend/internal/protocol"
)

var ErrNotInRoom = errors.New("player is not in a room")

// RoomDirectory answers which room a player is in and who else is there.
// The game engine implements it.
type RoomDirectory interface {
	Roommates(player uuid.UUID) (uuid.UUID, []uuid.UUID, bool)
}

// Notifier delivers chat lines; the transport registry implements it.
type Notifier interface {
	Broadcast(players []uuid.UUID, msg protocol.ServerMessage)
}

// Service relays chat between the members of a room and keeps the recent
// history around so clients can rebuild their chat view mid-session.
type Service struct {
	rooms    RoomDirectory
	notifier Notifier
	history  History
}

func NewService(rooms RoomDirectory, notifier Notifier, history History) *Service {
	return &Service{rooms: rooms, notifier: notifier, history: history}
}

// Send broadcasts a chat line to the sender's room. History write failures
// are logged, not surfaced: the live broadcast already happened.
func (s *Service) Send(ctx context.Context, from uuid.UUID, content string) error {
	if content == "" {
		return nil
	}
	roomID, members, ok := s.rooms.Roommates(from)
	if !ok {
		return ErrNotInRoom
	}
	s.notifier.Broadcast(members, protocol.Chat(&from, content))

	entry := Entry{Sender: from, Content: content, SentAt: time.Now().UTC()}
	if err := s.history.Append(ctx, roomID.String(), entry); err != nil {
		slog.Warn("Failed to append chat history", "room", roomID, "error", err)
	}
	return nil
}

// Recent returns the last n chat lines of the player's room, oldest first.
func (s *Service) Recent(ctx context.Context, player uuid.UUID, n int) ([]Entry, error) {
	roomID, _, ok := s.rooms.Roommates(player)
	if !ok {
		return nil, ErrNotInRoom
	}
	return s.history.Recent(ctx, roomID.String(), n)
}
