package game

import (
	"github.com/google/uuid"

	"github.com/cheildo/arcane-duel-backend/internal/catalog"
)

// Phase is the lifecycle phase of a room's game.
type Phase int

const (
	PhaseStarting Phase = iota
	PhaseInProgress
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseStarting:
		return "starting"
	case PhaseInProgress:
		return "in_progress"
	case PhaseFinished:
		return "finished"
	}
	return "unknown"
}

// State is a room's game-state snapshot. It is mutated only by the domain
// event handlers, inside a processing pass. Once AddCardsToDeck has run
// for a player, the total of deck+hand+discard cards for that player is
// conserved.
type State struct {
	Phase   Phase
	Winner  *uuid.UUID
	Decks   map[uuid.UUID][]catalog.Card
	Hands   map[uuid.UUID][]catalog.Card
	Discard []catalog.Card
}

func newState() *State {
	return &State{
		Phase: PhaseStarting,
		Decks: make(map[uuid.UUID][]catalog.Card),
		Hands: make(map[uuid.UUID][]catalog.Card),
	}
}
