package chat

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
)

// defaultRecentLines is how much history HandleRecent returns when the
// client does not say.
const defaultRecentLines = 20

// TokenVerifier authenticates the request token into a player identity.
type TokenVerifier interface {
	Verify(token string) (uuid.UUID, string, error)
}

// HTTPHandler holds dependencies for chat-related HTTP requests.
type HTTPHandler struct {
	svc    *Service
	tokens TokenVerifier
}

func NewHTTPHandler(svc *Service, tokens TokenVerifier) *HTTPHandler {
	return &HTTPHandler{svc: svc, tokens: tokens}
}

func (h *HTTPHandler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// HandleRecent is the HTTP handler for GET /chat/recent. It returns the
// last lines of the caller's room, oldest first, so a client can rebuild
// its chat view mid-session.
func (h *HTTPHandler) HandleRecent(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "token is required"})
		return
	}
	playerID, _, err := h.tokens.Verify(token)
	if err != nil {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
		return
	}

	n := defaultRecentLines
	if raw := r.URL.Query().Get("n"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			n = parsed
		}
	}

	lines, err := h.svc.Recent(r.Context(), playerID, n)
	if err != nil {
		if errors.Is(err, ErrNotInRoom) {
			h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "player is not in a room"})
			return
		}
		slog.Error("Failed to load chat history", "player", playerID, "error", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not load history"})
		return
	}
	if lines == nil {
		lines = []Entry{}
	}
	h.writeJSON(w, http.StatusOK, map[string][]Entry{"lines": lines})
}
