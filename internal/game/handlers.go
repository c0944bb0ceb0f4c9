package game

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/cheildo/arcane-duel-backend/internal/catalog"
	"github.com/cheildo/arcane-duel-backend/internal/protocol"
)

// dispatch routes one event to its domain handler. Handlers mutate the
// room in place and report follow-up events plus whether the turn timer
// should rearm. A handler that references an unknown player no-ops; the
// player may have legitimately disconnected between enqueue and
// processing.
func (e *Engine) dispatch(room *Room, ev Event) eventResult {
	switch ev.Kind {
	case KindStartGame:
		return e.handleStartGame(room)
	case KindEndGame:
		return e.handleEndGame(room, ev)
	case KindStartTurn:
		return e.handleStartTurn(room, ev)
	case KindEndTurn:
		return e.handleEndTurn(room, ev)
	case KindAddCardsToDeck:
		return e.handleAddCardsToDeck(room, ev)
	case KindDrawCard:
		return e.handleDrawCard(room, ev)
	case KindPlayCard:
		return e.handlePlayCard(room, ev)
	case KindSpecialAction:
		return e.handleSpecialAction(room, ev)
	case KindGameStateChange:
		return e.handleGameStateChange(room, ev)
	}
	slog.Warn("Dropping event of unknown kind", "room", room.ID, "kind", int(ev.Kind))
	return eventResult{}
}

// handleStartGame seeds both players with a shuffled deck and an opening
// hand, then hands the first turn to the player who joined first. A room
// without exactly two members is a recoverable error, not a crash: the
// event is dropped and the game stays in Starting.
func (e *Engine) handleStartGame(room *Room) eventResult {
	if len(room.Players) != roomCapacity {
		slog.Error("StartGame in a room without two players", "room", room.ID, "players", len(room.Players))
		return eventResult{}
	}

	var res eventResult
	for _, p := range room.Players {
		res.followUps = append(res.followUps,
			Event{Kind: KindAddCardsToDeck, Player: p, Amount: e.cfg.DeckSize},
			Event{Kind: KindDrawCard, Player: p, Amount: e.cfg.OpeningHand},
		)
	}
	res.followUps = append(res.followUps, Event{Kind: KindStartTurn, Player: room.Players[0]})
	room.State.Phase = PhaseInProgress
	slog.Info("Game starting", "room", room.ID, "players", room.Players)
	return res
}

// handleEndGame treats the named player as conceding: their opponent wins.
func (e *Engine) handleEndGame(room *Room, ev Event) eventResult {
	if !room.hasPlayer(ev.Player) {
		slog.Warn("EndGame from a player not in the room", "room", room.ID, "player", ev.Player)
		return eventResult{}
	}
	var winner *uuid.UUID
	if opp, ok := room.opponent(ev.Player); ok {
		winner = &opp
	}
	return eventResult{followUps: []Event{
		{Kind: KindGameStateChange, NewPhase: PhaseFinished, Winner: winner},
	}}
}

// handleStartTurn installs the new turn holder, tells the room, and chains
// the holder's start-of-turn draw.
func (e *Engine) handleStartTurn(room *Room, ev Event) eventResult {
	if !room.hasPlayer(ev.Player) {
		slog.Warn("StartTurn for a player not in the room", "room", room.ID, "player", ev.Player)
		return eventResult{}
	}
	holder := ev.Player
	room.CurrentTurn = &holder
	e.notifier.Broadcast(room.Players, protocol.CurrentTurn(&holder))

	res := eventResult{resetTimer: true}
	if room.State.Phase == PhaseInProgress {
		res.followUps = append(res.followUps, Event{Kind: KindDrawCard, Player: holder, Amount: 1})
	}
	return res
}

// handleEndTurn passes the turn to the opponent. Out-of-turn requests are
// already rejected at the boundary; one that slips through (holder changed
// between enqueue and processing) is dropped here.
func (e *Engine) handleEndTurn(room *Room, ev Event) eventResult {
	if room.CurrentTurn == nil || *room.CurrentTurn != ev.Player {
		slog.Warn("EndTurn from a player who does not hold the turn", "room", room.ID, "player", ev.Player)
		return eventResult{}
	}
	opp, ok := room.opponent(ev.Player)
	if !ok {
		return eventResult{}
	}
	return eventResult{
		followUps:  []Event{{Kind: KindStartTurn, Player: opp}},
		resetTimer: true,
	}
}

// handleAddCardsToDeck synthesizes cards from the catalog and appends them
// to the player's deck.
func (e *Engine) handleAddCardsToDeck(room *Room, ev Event) eventResult {
	if !room.hasPlayer(ev.Player) {
		slog.Warn("AddCardsToDeck for a player not in the room", "room", room.ID, "player", ev.Player)
		return eventResult{}
	}
	cards := catalog.BuildDeck(e.defs, e.rng, ev.Amount)
	room.State.Decks[ev.Player] = append(room.State.Decks[ev.Player], cards...)
	e.notifier.Send(ev.Player, protocol.CardsInDeck(len(room.State.Decks[ev.Player])))
	return eventResult{}
}

// handleDrawCard moves cards from the front of the player's deck into
// their hand and sends the full card payloads so the client can render
// them. A deck too short for the request is not drawn from at all; the
// player gets an explicit error instead of silence.
func (e *Engine) handleDrawCard(room *Room, ev Event) eventResult {
	if !room.hasPlayer(ev.Player) {
		slog.Warn("DrawCard for a player not in the room", "room", room.ID, "player", ev.Player)
		return eventResult{}
	}
	if ev.Amount <= 0 {
		return eventResult{}
	}
	deck := room.State.Decks[ev.Player]
	if len(deck) < ev.Amount {
		slog.Info("Draw refused, deck too small", "room", room.ID, "player", ev.Player, "deck", len(deck), "requested", ev.Amount)
		e.notifier.Send(ev.Player, protocol.Error("not enough cards in deck"))
		return eventResult{}
	}

	drawn := make([]catalog.Card, ev.Amount)
	copy(drawn, deck[:ev.Amount])
	room.State.Decks[ev.Player] = deck[ev.Amount:]
	room.State.Hands[ev.Player] = append(room.State.Hands[ev.Player], drawn...)
	e.notifier.Send(ev.Player, protocol.CardsDrawn(drawn))
	return eventResult{}
}

// handlePlayCard validates ownership, moves the card from the player's
// hand to the discard pile, and tells the whole room.
func (e *Engine) handlePlayCard(room *Room, ev Event) eventResult {
	if !room.hasPlayer(ev.Player) {
		slog.Warn("PlayCard from a player not in the room", "room", room.ID, "player", ev.Player)
		return eventResult{}
	}
	hand := room.State.Hands[ev.Player]
	idx := -1
	for i, c := range hand {
		if c.ID == ev.CardID {
			idx = i
			break
		}
	}
	if idx < 0 {
		e.notifier.Send(ev.Player, protocol.Error("card is not in your hand"))
		return eventResult{}
	}

	card := hand[idx]
	room.State.Hands[ev.Player] = append(hand[:idx], hand[idx+1:]...)
	room.State.Discard = append(room.State.Discard, card)
	e.notifier.Broadcast(room.Players, protocol.CardPlayed(ev.Player, card))
	return eventResult{}
}

// handleSpecialAction dispatches by action type. Only DiscardCard is
// supported; the rest answer "not yet supported".
func (e *Engine) handleSpecialAction(room *Room, ev Event) eventResult {
	if !room.hasPlayer(ev.Player) {
		slog.Warn("SpecialAction from a player not in the room", "room", room.ID, "player", ev.Player)
		return eventResult{}
	}
	switch ev.Action {
	case protocol.ActionDiscardCard:
		for _, cardID := range ev.Targets {
			hand := room.State.Hands[ev.Player]
			for i, c := range hand {
				if c.ID == cardID {
					room.State.Hands[ev.Player] = append(hand[:i], hand[i+1:]...)
					room.State.Discard = append(room.State.Discard, c)
					e.notifier.Broadcast(room.Players, protocol.CardDiscarded(ev.Player, cardID))
					break
				}
			}
		}
	default:
		e.notifier.Send(ev.Player, protocol.Error("action not yet supported"))
	}
	return eventResult{}
}

// handleGameStateChange overwrites the phase; finishing broadcasts the
// result and records the match end.
func (e *Engine) handleGameStateChange(room *Room, ev Event) eventResult {
	room.State.Phase = ev.NewPhase
	if ev.NewPhase == PhaseFinished {
		room.State.Winner = ev.Winner
		room.CurrentTurn = nil
		e.notifier.Broadcast(room.Players, protocol.GameOver(ev.Winner))
		e.recorder.MatchEnded(room.ID, ev.Winner)
		slog.Info("Game over", "room", room.ID, "winner", ev.Winner)
	}
	return eventResult{}
}
