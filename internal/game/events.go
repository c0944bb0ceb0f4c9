package game

import (
	"github.com/google/uuid"

	"github.com/cheildo/arcane-duel-backend/internal/protocol"
)

// Kind enumerates the game event variants.
type Kind int

const (
	KindStartGame Kind = iota
	KindEndGame
	KindStartTurn
	KindEndTurn
	KindAddCardsToDeck
	KindDrawCard
	KindPlayCard
	KindSpecialAction
	KindGameStateChange
)

func (k Kind) String() string {
	switch k {
	case KindStartGame:
		return "start_game"
	case KindEndGame:
		return "end_game"
	case KindStartTurn:
		return "start_turn"
	case KindEndTurn:
		return "end_turn"
	case KindAddCardsToDeck:
		return "add_cards_to_deck"
	case KindDrawCard:
		return "draw_card"
	case KindPlayCard:
		return "play_card"
	case KindSpecialAction:
		return "special_action"
	case KindGameStateChange:
		return "game_state_change"
	}
	return "unknown"
}

// Event is one game event. Fields beyond Kind are populated per kind:
// Player is the acting player, Amount drives deck/draw sizes, CardID and
// Target belong to PlayCard, Action/Targets to SpecialAction, and
// NewPhase/Winner to GameStateChange.
type Event struct {
	Kind     Kind
	Player   uuid.UUID
	Amount   int
	CardID   int
	Target   *uuid.UUID
	Action   string
	Targets  []int
	NewPhase Phase
	Winner   *uuid.UUID
}

// queuedEvent is an Event tagged with its context: the room whose queue
// owns it. Follow-ups inherit the context of the event that produced them.
type queuedEvent struct {
	room uuid.UUID
	Event
}

// eventResult is what a domain handler hands back to the processor.
type eventResult struct {
	followUps  []Event
	resetTimer bool
}

// EventFromRequest translates a decoded client request into a game event
// attributed to the sender. Requests outside the game vocabulary (chat)
// return false.
func EventFromRequest(player uuid.UUID, req protocol.ClientRequest) (Event, bool) {
	switch req.Type {
	case protocol.RequestEndTurn:
		return Event{Kind: KindEndTurn, Player: player}, true
	case protocol.RequestDrawCard:
		return Event{Kind: KindDrawCard, Player: player, Amount: req.Amount}, true
	case protocol.RequestPlayCard:
		return Event{Kind: KindPlayCard, Player: player, CardID: req.CardID, Target: req.Target}, true
	case protocol.RequestSpecial:
		return Event{Kind: KindSpecialAction, Player: player, Action: req.Action, Targets: req.Targets}, true
	}
	return Event{}, false
}
