// Package protocol defines the JSON message vocabulary exchanged between
// the game core and connected clients. Messages are tagged unions over a
// `type` field; the transport serializes them, the core never sees wire
// bytes.
package protocol

import (
	"github.com/google/uuid"

	"github.com/cheildo/arcane-duel-backend/internal/catalog"
)

// Client request types.
const (
	RequestEndTurn  = "end_turn"
	RequestDrawCard = "draw_card"
	RequestPlayCard = "play_card"
	RequestSpecial  = "special"
	RequestChat     = "chat"
)

// Special action names carried by RequestSpecial.
const (
	ActionDiscardCard = "discard_card"
	ActionSwapCards   = "swap_cards"
	ActionBlockAction = "block_action"
)

// ClientRequest is a decoded inbound request. Fields beyond Type are
// populated per request kind.
type ClientRequest struct {
	Type    string     `json:"type"`
	Amount  int        `json:"amount,omitempty"`  // draw_card
	CardID  int        `json:"card_id,omitempty"` // play_card
	Target  *uuid.UUID `json:"target,omitempty"`  // play_card (optional)
	Action  string     `json:"action,omitempty"`  // special
	Targets []int      `json:"targets,omitempty"` // special
	Content string     `json:"content,omitempty"` // chat
}

// Server message types.
const (
	MsgCurrentTurn   = "current_turn"
	MsgCardsDrawn    = "cards_drawn"
	MsgCardPlayed    = "card_played"
	MsgCardDiscarded = "card_discarded"
	MsgCardsInDeck   = "cards_in_deck"
	MsgGameOver      = "game_over"
	MsgError         = "error"
	MsgMatchFound    = "match_found"
	MsgPartnerLeft   = "partner_left"
	MsgChat          = "chat"
)

// ServerMessage is an outbound notification. Constructors below build the
// known shapes; the transport marshals the struct as-is.
type ServerMessage struct {
	Type    string         `json:"type"`
	Player  *uuid.UUID     `json:"player,omitempty"`
	Players []uuid.UUID    `json:"players,omitempty"`
	Room    string         `json:"room,omitempty"`
	Cards   []catalog.Card `json:"cards,omitempty"`
	Card    *catalog.Card  `json:"card,omitempty"`
	CardID  int            `json:"card_id,omitempty"`
	Count   int            `json:"count,omitempty"`
	Winner  *uuid.UUID     `json:"winner,omitempty"`
	Message string         `json:"message,omitempty"`
	Sender  *uuid.UUID     `json:"sender,omitempty"`
	Content string         `json:"content,omitempty"`
}

// CurrentTurn announces the turn holder; nil means no one holds the turn.
func CurrentTurn(player *uuid.UUID) ServerMessage {
	return ServerMessage{Type: MsgCurrentTurn, Player: player}
}

// CardsDrawn carries the full card payloads so the client can render them.
func CardsDrawn(cards []catalog.Card) ServerMessage {
	return ServerMessage{Type: MsgCardsDrawn, Cards: cards}
}

func CardPlayed(player uuid.UUID, card catalog.Card) ServerMessage {
	return ServerMessage{Type: MsgCardPlayed, Player: &player, Card: &card}
}

func CardDiscarded(player uuid.UUID, cardID int) ServerMessage {
	return ServerMessage{Type: MsgCardDiscarded, Player: &player, CardID: cardID}
}

func CardsInDeck(count int) ServerMessage {
	return ServerMessage{Type: MsgCardsInDeck, Count: count}
}

// GameOver announces the end of the match; nil winner means a draw or an
// abandoned game.
func GameOver(winner *uuid.UUID) ServerMessage {
	return ServerMessage{Type: MsgGameOver, Winner: winner}
}

func Error(message string) ServerMessage {
	return ServerMessage{Type: MsgError, Message: message}
}

// MatchFound tells both members they have been paired into a room.
func MatchFound(room string, players []uuid.UUID) ServerMessage {
	return ServerMessage{Type: MsgMatchFound, Room: room, Players: players}
}

// PartnerLeft tells the remaining member their opponent disconnected.
func PartnerLeft() ServerMessage {
	return ServerMessage{Type: MsgPartnerLeft}
}

// Chat relays a room chat line. A nil sender marks a system message.
func Chat(sender *uuid.UUID, content string) ServerMessage {
	return ServerMessage{Type: MsgChat, Sender: sender, Content: content}
}
