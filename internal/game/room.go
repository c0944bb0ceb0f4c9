package game

import (
	"time"

	"github.com/google/uuid"
)

// roomCapacity is the member count of an active match.
const roomCapacity = 2

// Room is a session container for two matched players and their shared
// game state. All mutation happens inside the engine's scheduling pass.
type Room struct {
	ID          uuid.UUID
	Players     []uuid.UUID // join order, at most roomCapacity
	CurrentTurn *uuid.UUID  // nil before the game starts or after a leave
	Timer       TurnTimer
	State       *State
	Active      bool

	queue eventQueue
}

func newRoom(turnDuration time.Duration) *Room {
	return &Room{
		ID:     uuid.New(),
		Timer:  newTurnTimer(turnDuration),
		State:  newState(),
		Active: true,
	}
}

func (r *Room) full() bool {
	return len(r.Players) >= roomCapacity
}

func (r *Room) hasPlayer(id uuid.UUID) bool {
	for _, p := range r.Players {
		if p == id {
			return true
		}
	}
	return false
}

// opponent returns the other member of the room, if there is one.
func (r *Room) opponent(id uuid.UUID) (uuid.UUID, bool) {
	for _, p := range r.Players {
		if p != id {
			return p, true
		}
	}
	return uuid.UUID{}, false
}

// removePlayer drops a member if present. Removing an absent player is a
// no-op.
func (r *Room) removePlayer(id uuid.UUID) bool {
	for i, p := range r.Players {
		if p == id {
			r.Players = append(r.Players[:i], r.Players[i+1:]...)
			return true
		}
	}
	return false
}
