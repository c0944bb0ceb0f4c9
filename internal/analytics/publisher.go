package analytics

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Publisher pushes match lifecycle events to Kafka. It satisfies the game
// engine's Recorder interface; publishing is fire-and-forget so the engine
// tick never waits on the broker.
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(writer *kafka.Writer) *Publisher {
	return &Publisher{writer: writer}
}

func (p *Publisher) MatchStarted(room uuid.UUID, players []uuid.UUID) {
	ids := make([]string, len(players))
	for i, id := range players {
		ids[i] = id.String()
	}
	p.publish(MatchEvent{
		Type:      TypeMatchStarted,
		RoomID:    room.String(),
		PlayerIDs: ids,
		At:        time.Now().UTC(),
	})
}

func (p *Publisher) MatchEnded(room uuid.UUID, winner *uuid.UUID) {
	event := MatchEvent{
		Type:   TypeMatchEnded,
		RoomID: room.String(),
		At:     time.Now().UTC(),
	}
	if winner != nil {
		w := winner.String()
		event.WinnerID = &w
	}
	p.publish(event)
}

func (p *Publisher) publish(event MatchEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		slog.Error("Failed to marshal match event", "type", event.Type, "error", err)
		return
	}
	// The writer is configured async; WriteMessages only enqueues and the
	// completion callback reports delivery failures.
	err = p.writer.WriteMessages(context.Background(), kafka.Message{
		Key:   []byte(event.RoomID),
		Value: payload,
	})
	if err != nil {
		slog.Error("Failed to publish match event", "type", event.Type, "room", event.RoomID, "error", err)
	}
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
