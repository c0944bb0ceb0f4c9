package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

type acceptAllVerifier struct {
	id uuid.UUID
}

func (v acceptAllVerifier) Verify(string) (uuid.UUID, string, error) {
	return v.id, "guest", nil
}

type rejectVerifier struct{}

func (rejectVerifier) Verify(string) (uuid.UUID, string, error) {
	return uuid.UUID{}, "", context.DeadlineExceeded
}

func TestHandleRecent_ReturnsRoomHistoryOldestFirst(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	dir := &stubDirectory{roomID: uuid.New(), members: []uuid.UUID{a, b}}
	svc := NewService(dir, &captureNotifier{}, NewMemoryHistory(10))
	for _, line := range []string{"hello", "ready?", "go"} {
		if err := svc.Send(context.Background(), a, line); err != nil {
			t.Fatalf("Send(%q): %v", line, err)
		}
	}

	h := NewHTTPHandler(svc, acceptAllVerifier{id: b})
	req := httptest.NewRequest(http.MethodGet, "/chat/recent?token=x&n=2", nil)
	rec := httptest.NewRecorder()
	h.HandleRecent(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
	var body map[string][]Entry
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	lines := body["lines"]
	if len(lines) != 2 {
		t.Fatalf("returned %d lines, want 2", len(lines))
	}
	if lines[0].Content != "ready?" || lines[1].Content != "go" {
		t.Errorf("lines = %q, %q; want the two newest oldest-first", lines[0].Content, lines[1].Content)
	}
}

func TestHandleRecent_PlayerWithoutRoomGets404(t *testing.T) {
	dir := &stubDirectory{roomID: uuid.New(), members: nil}
	svc := NewService(dir, &captureNotifier{}, NewMemoryHistory(10))

	h := NewHTTPHandler(svc, acceptAllVerifier{id: uuid.New()})
	rec := httptest.NewRecorder()
	h.HandleRecent(rec, httptest.NewRequest(http.MethodGet, "/chat/recent?token=x", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", rec.Code)
	}
}

func TestHandleRecent_BadTokenRejected(t *testing.T) {
	svc := NewService(&stubDirectory{}, &captureNotifier{}, NewMemoryHistory(10))
	h := NewHTTPHandler(svc, rejectVerifier{})

	rec := httptest.NewRecorder()
	h.HandleRecent(rec, httptest.NewRequest(http.MethodGet, "/chat/recent?token=bad", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.HandleRecent(rec, httptest.NewRequest(http.MethodGet, "/chat/recent", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d without a token, want 400", rec.Code)
	}
}
