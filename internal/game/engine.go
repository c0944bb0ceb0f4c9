package game

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cheildo/arcane-duel-backend/internal/catalog"
	"github.com/cheildo/arcane-duel-backend/internal/protocol"
)

// Boundary rejections surfaced to the transport as ack failures.
var (
	ErrAlreadyJoined      = errors.New("player is already in a room")
	ErrUnknownPlayer      = errors.New("player is not in any room")
	ErrNotYourTurn        = errors.New("it is not your turn")
	ErrUnsupportedRequest = errors.New("request is not a game action")
)

// Notifier delivers outbound notifications. Sends must not block the
// engine; a failed send is a soft failure (the player likely disconnected,
// cleanup follows via the leave path).
type Notifier interface {
	Send(player uuid.UUID, msg protocol.ServerMessage) bool
	Broadcast(players []uuid.UUID, msg protocol.ServerMessage)
}

// Recorder receives match lifecycle events for publication outside the
// core.
type Recorder interface {
	MatchStarted(room uuid.UUID, players []uuid.UUID)
	MatchEnded(room uuid.UUID, winner *uuid.UUID)
}

// NopRecorder discards lifecycle events.
type NopRecorder struct{}

func (NopRecorder) MatchStarted(uuid.UUID, []uuid.UUID) {}
func (NopRecorder) MatchEnded(uuid.UUID, *uuid.UUID)    {}

// Config tunes the engine. Zero values fall back to defaults.
type Config struct {
	TurnDuration time.Duration
	TickInterval time.Duration
	DeckSize     int
	OpeningHand  int
	Seed         int64 // 0 seeds from the clock
}

func (c Config) withDefaults() Config {
	if c.TurnDuration <= 0 {
		c.TurnDuration = DefaultTurnDuration
	}
	if c.TickInterval <= 0 {
		c.TickInterval = 100 * time.Millisecond
	}
	if c.DeckSize <= 0 {
		c.DeckSize = 30
	}
	if c.OpeningHand <= 0 {
		c.OpeningHand = 5
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	return c
}

// Engine owns every room and runs the tick scheduler over them. Transport
// goroutines call Join, Leave and Submit; those only validate and enqueue
// under the engine lock, all room mutation happens inside Tick. Rooms are
// independent of each other, so one coarse lock is enough at two-player
// scale.
type Engine struct {
	mu       sync.Mutex
	cfg      Config
	notifier Notifier
	recorder Recorder
	defs     []catalog.Card
	rng      *rand.Rand

	rooms      map[uuid.UUID]*Room
	order      []uuid.UUID // stable matchmaking scan order
	playerRoom map[uuid.UUID]uuid.UUID
	lastTick   time.Time
}

// NewEngine builds an engine over the given card catalog.
func NewEngine(cfg Config, defs []catalog.Card, notifier Notifier, recorder Recorder) *Engine {
	cfg = cfg.withDefaults()
	if recorder == nil {
		recorder = NopRecorder{}
	}
	return &Engine{
		cfg:        cfg,
		notifier:   notifier,
		recorder:   recorder,
		defs:       defs,
		rng:        rand.New(rand.NewSource(cfg.Seed)),
		rooms:      make(map[uuid.UUID]*Room),
		playerRoom: make(map[uuid.UUID]uuid.UUID),
	}
}

// Join places a connecting player into a room with a free slot, creating
// one when none has space. The second member filling a room triggers game
// initialization. A player already in a room cannot join again.
func (e *Engine) Join(player uuid.UUID) (uuid.UUID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.playerRoom[player]; ok {
		return uuid.UUID{}, ErrAlreadyJoined
	}

	room := e.findOpenRoom()
	if room == nil {
		room = newRoom(e.cfg.TurnDuration)
		e.rooms[room.ID] = room
		e.order = append(e.order, room.ID)
		slog.Info("Room created", "room", room.ID)
	}

	room.Players = append(room.Players, player)
	e.playerRoom[player] = room.ID
	slog.Info("Player joined room", "room", room.ID, "player", player, "members", len(room.Players))

	if room.full() {
		room.Timer.Reset()
		room.queue.push(queuedEvent{room: room.ID, Event: Event{Kind: KindStartGame}})
		e.notifier.Broadcast(room.Players, protocol.MatchFound(room.ID.String(), room.Players))
		e.recorder.MatchStarted(room.ID, room.Players)
	}
	return room.ID, nil
}

// findOpenRoom scans for a room still waiting on members. Rooms whose
// game already started are never offered: a half-vacated in-progress
// room would re-run initialization on top of the survivor's state.
func (e *Engine) findOpenRoom() *Room {
	for _, id := range e.order {
		room := e.rooms[id]
		if room.Active && !room.full() && room.State.Phase == PhaseStarting {
			return room
		}
	}
	return nil
}

// Leave removes a player on disconnect. The turn holder is cleared, the
// partner is told, and an emptied room becomes eligible for teardown on
// the next pass. Leaving twice is a no-op.
func (e *Engine) Leave(player uuid.UUID) {
	e.mu.Lock()
	defer e.mu.Unlock()

	roomID, ok := e.playerRoom[player]
	if !ok {
		return
	}
	delete(e.playerRoom, player)

	room := e.rooms[roomID]
	if room == nil || !room.removePlayer(player) {
		return
	}
	room.CurrentTurn = nil
	slog.Info("Player left room", "room", roomID, "player", player, "members", len(room.Players))

	if len(room.Players) == 0 {
		room.Active = false
		return
	}
	e.notifier.Broadcast(room.Players, protocol.PartnerLeft())
	e.notifier.Broadcast(room.Players, protocol.CurrentTurn(nil))
}

// Submit validates an inbound player request and routes the translated
// event into the player's room queue. A nil return is the ack; an error is
// the rejection the transport relays to that requester.
func (e *Engine) Submit(player uuid.UUID, req protocol.ClientRequest) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	roomID, ok := e.playerRoom[player]
	if !ok {
		return ErrUnknownPlayer
	}
	ev, ok := EventFromRequest(player, req)
	if !ok {
		return ErrUnsupportedRequest
	}

	room := e.rooms[roomID]
	if ev.Kind == KindEndTurn {
		if room.CurrentTurn == nil || *room.CurrentTurn != player {
			return ErrNotYourTurn
		}
	}
	room.queue.push(queuedEvent{room: roomID, Event: ev})
	return nil
}

// Roommates reports the room a player is in and its current member set.
func (e *Engine) Roommates(player uuid.UUID) (uuid.UUID, []uuid.UUID, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	roomID, ok := e.playerRoom[player]
	if !ok {
		return uuid.UUID{}, nil, false
	}
	room := e.rooms[roomID]
	members := make([]uuid.UUID, len(room.Players))
	copy(members, room.Players)
	return roomID, members, true
}

// Stats reports the live room and player counts.
func (e *Engine) Stats() (rooms, players int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.rooms), len(e.playerRoom)
}

// Tick runs one scheduling pass at the given instant: timers advance by
// the elapsed delta (forcing turn changes on expiry), each room's current
// queue is fully drained with follow-ups accumulating for the next pass,
// buffers swap, and emptied rooms are torn down.
func (e *Engine) Tick(now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var delta time.Duration
	if !e.lastTick.IsZero() {
		delta = now.Sub(e.lastTick)
	}
	e.lastTick = now

	for _, id := range e.order {
		room := e.rooms[id]
		if !room.Active {
			continue
		}
		e.tickTimer(room, delta)
		e.processQueue(room)
	}
	e.sweep()
}

// tickTimer advances a room's turn countdown. The countdown only runs
// while the room is full, the game is in progress, and someone holds the
// turn; otherwise it stays parked at full duration.
func (e *Engine) tickTimer(room *Room, delta time.Duration) {
	if !room.full() || room.CurrentTurn == nil || room.State.Phase != PhaseInProgress {
		return
	}
	if !room.Timer.Tick(delta) {
		return
	}
	if opp, ok := room.opponent(*room.CurrentTurn); ok {
		slog.Info("Turn timer expired, forcing turn change", "room", room.ID, "holder", *room.CurrentTurn, "next", opp)
		room.queue.push(queuedEvent{room: room.ID, Event: Event{Kind: KindStartTurn, Player: opp}})
	}
	room.Timer.Reset()
}

func (e *Engine) processQueue(room *Room) {
	for {
		qe, ok := room.queue.pop()
		if !ok {
			break
		}
		res := e.dispatch(room, qe.Event)
		for _, f := range res.followUps {
			room.queue.push(queuedEvent{room: qe.room, Event: f})
		}
		if res.resetTimer {
			room.Timer.Reset()
		}
	}
	room.queue.swap()
}

// sweep tears down rooms whose member set emptied. A match that was still
// in progress is recorded as ended without a winner.
func (e *Engine) sweep() {
	kept := e.order[:0]
	for _, id := range e.order {
		room := e.rooms[id]
		if room.Active {
			kept = append(kept, id)
			continue
		}
		if room.State.Phase == PhaseInProgress {
			e.recorder.MatchEnded(room.ID, nil)
		}
		delete(e.rooms, id)
		slog.Info("Room torn down", "room", id)
	}
	e.order = kept
}

// Run drives Tick on the configured interval until the context is
// cancelled. Network I/O never happens on this goroutine; the notifier
// only enqueues.
func (e *Engine) Run(ctx context.Context) {
	slog.Info("Game engine loop started", "interval", e.cfg.TickInterval)
	ticker := time.NewTicker(e.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Game engine loop stopping.")
			return
		case now := <-ticker.C:
			e.Tick(now)
		}
	}
}
