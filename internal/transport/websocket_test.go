package transport

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/cheildo/arcane-duel-backend/internal/game"
	"github.com/cheildo/arcane-duel-backend/internal/protocol"
)

type stubCore struct {
	submitted []protocol.ClientRequest
	submitErr error
}

func (c *stubCore) Join(uuid.UUID) (uuid.UUID, error) { return uuid.New(), nil }
func (c *stubCore) Leave(uuid.UUID)                   {}
func (c *stubCore) Submit(_ uuid.UUID, req protocol.ClientRequest) error {
	c.submitted = append(c.submitted, req)
	return c.submitErr
}

type stubChat struct {
	lines []string
}

func (c *stubChat) Send(_ context.Context, _ uuid.UUID, content string) error {
	c.lines = append(c.lines, content)
	return nil
}

func TestHandleRequest_GameActionsGoToCore(t *testing.T) {
	core := &stubCore{}
	registry := NewRegistry()
	h := NewWebsocketHandler(core, registry, &stubChat{}, nil)

	player := uuid.New()
	h.handleRequest(player, protocol.ClientRequest{Type: protocol.RequestDrawCard, Amount: 2})

	if len(core.submitted) != 1 || core.submitted[0].Type != protocol.RequestDrawCard {
		t.Fatalf("core received %+v", core.submitted)
	}
}

func TestHandleRequest_ChatBypassesCore(t *testing.T) {
	core := &stubCore{}
	chat := &stubChat{}
	h := NewWebsocketHandler(core, NewRegistry(), chat, nil)

	h.handleRequest(uuid.New(), protocol.ClientRequest{Type: protocol.RequestChat, Content: "gg"})

	if len(core.submitted) != 0 {
		t.Error("chat request reached the game core")
	}
	if len(chat.lines) != 1 || chat.lines[0] != "gg" {
		t.Errorf("chat relay received %v", chat.lines)
	}
}

// fixedVerifier maps every token to one player identity, standing in for
// a client retrying the handshake with the same guest token.
type fixedVerifier struct {
	id uuid.UUID
}

func (v fixedVerifier) Verify(string) (uuid.UUID, string, error) {
	return v.id, "guest", nil
}

// trackingCore accepts the first join per player and rejects repeats.
type trackingCore struct {
	mu     sync.Mutex
	joined map[uuid.UUID]bool
}

func (c *trackingCore) Join(p uuid.UUID) (uuid.UUID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.joined == nil {
		c.joined = make(map[uuid.UUID]bool)
	}
	if c.joined[p] {
		return uuid.UUID{}, game.ErrAlreadyJoined
	}
	c.joined[p] = true
	return uuid.New(), nil
}

func (c *trackingCore) Leave(p uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.joined, p)
}

func (c *trackingCore) Submit(uuid.UUID, protocol.ClientRequest) error { return nil }

func TestServeHTTP_RejectedDuplicateJoinLeavesLiveSinkIntact(t *testing.T) {
	player := uuid.New()
	core := &trackingCore{}
	registry := NewRegistry()
	h := NewWebsocketHandler(core, registry, &stubChat{}, fixedVerifier{id: player})

	srv := httptest.NewServer(h)
	defer srv.Close()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?token=x"

	first, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("first dial: %v", err)
	}
	defer first.Close()

	// Second socket for the same identity: the server closes it with a
	// policy violation once the duplicate join is rejected.
	second, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("second dial: %v", err)
	}
	defer second.Close()
	second.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := second.ReadMessage(); err == nil {
		t.Fatal("duplicate connection not closed by the server")
	}

	// The first connection must still be receiving: its sink survived the
	// rejected duplicate.
	if !registry.Send(player, protocol.CardsInDeck(30)) {
		t.Fatal("rejected duplicate join removed the live player's sink")
	}
	first.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg protocol.ServerMessage
	if err := first.ReadJSON(&msg); err != nil {
		t.Fatalf("live connection stopped delivering: %v", err)
	}
	if msg.Type != protocol.MsgCardsInDeck || msg.Count != 30 {
		t.Errorf("live connection received %+v", msg)
	}
}

func TestHandleRequest_RejectionAnsweredToRequesterOnly(t *testing.T) {
	core := &stubCore{submitErr: game.ErrNotYourTurn}
	registry := NewRegistry()
	h := NewWebsocketHandler(core, registry, &stubChat{}, nil)

	requester, bystander := uuid.New(), uuid.New()
	reqSink := make(chan protocol.ServerMessage, 1)
	bySink := make(chan protocol.ServerMessage, 1)
	registry.Register(requester, reqSink)
	registry.Register(bystander, bySink)

	h.handleRequest(requester, protocol.ClientRequest{Type: protocol.RequestEndTurn})

	if len(reqSink) != 1 {
		t.Fatalf("requester sink holds %d messages, want 1", len(reqSink))
	}
	msg := <-reqSink
	if msg.Type != protocol.MsgError || msg.Message != game.ErrNotYourTurn.Error() {
		t.Errorf("rejection message = %+v", msg)
	}
	if len(bySink) != 0 {
		t.Error("rejection leaked to another player")
	}
}
