package chat

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Entry is one chat line kept in a room's history.
type Entry struct {
	Sender  uuid.UUID `json:"sender"`
	Content string    `json:"content"`
	SentAt  time.Time `json:"sent_at"`
}

// History stores the recent chat lines of a room. Rooms are ephemeral, so
// the history only needs to survive as long as the room does.
type History interface {
	Append(ctx context.Context, room string, entry Entry) error
	Recent(ctx context.Context, room string, n int) ([]Entry, error)
}

// memoryHistory is the in-process fallback used when Redis is not
// configured, and by tests.
type memoryHistory struct {
	mu    sync.Mutex
	keep  int
	rooms map[string][]Entry
}

// NewMemoryHistory returns a History keeping at most keep lines per room.
func NewMemoryHistory(keep int) History {
	return &memoryHistory{keep: keep, rooms: make(map[string][]Entry)}
}

func (h *memoryHistory) Append(_ context.Context, room string, entry Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	lines := append(h.rooms[room], entry)
	if len(lines) > h.keep {
		lines = lines[len(lines)-h.keep:]
	}
	h.rooms[room] = lines
	return nil
}

func (h *memoryHistory) Recent(_ context.Context, room string, n int) ([]Entry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	lines := h.rooms[room]
	if n < len(lines) {
		lines = lines[len(lines)-n:]
	}
	out := make([]Entry, len(lines))
	copy(out, lines)
	return out, nil
}

// redisHistory keeps each room's lines in a capped Redis list.
type redisHistory struct {
	rdb    *redis.Client
	keep   int
	prefix string
}

// NewRedisHistory returns a History backed by Redis lists under the given
// key prefix.
func NewRedisHistory(rdb *redis.Client, prefix string, keep int) History {
	return &redisHistory{rdb: rdb, prefix: prefix, keep: keep}
}

func (h *redisHistory) key(room string) string {
	return h.prefix + ":" + room
}

func (h *redisHistory) Append(ctx context.Context, room string, entry Entry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	pipe := h.rdb.TxPipeline()
	pipe.LPush(ctx, h.key(room), payload)
	pipe.LTrim(ctx, h.key(room), 0, int64(h.keep-1))
	_, err = pipe.Exec(ctx)
	return err
}

func (h *redisHistory) Recent(ctx context.Context, room string, n int) ([]Entry, error) {
	raw, err := h.rdb.LRange(ctx, h.key(room), 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}
	// LPush stores newest first; callers expect oldest first.
	entries := make([]Entry, 0, len(raw))
	for i := len(raw) - 1; i >= 0; i-- {
		var e Entry
		if err := json.Unmarshal([]byte(raw[i]), &e); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
