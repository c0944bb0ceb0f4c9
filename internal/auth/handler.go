package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// HTTPHandler holds dependencies for auth-related HTTP requests.
type HTTPHandler struct {
	tokens *TokenService
}

func NewHTTPHandler(tokens *TokenService) *HTTPHandler {
	return &HTTPHandler{tokens: tokens}
}

// writeJSON is a helper function to write JSON responses, handling serialization and headers.
func (h *HTTPHandler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// HandleGuest is the HTTP handler for POST /auth/guest. It issues a fresh
// anonymous identity; the returned token authenticates the WebSocket
// handshake.
func (h *HTTPHandler) HandleGuest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	// An empty body is fine; the display name is optional.
	_ = json.NewDecoder(r.Body).Decode(&req)

	token, playerID, err := h.tokens.IssueGuest(req.Name)
	if err != nil {
		slog.Error("Failed to issue guest token", "error", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not issue token"})
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]string{
		"token":     token,
		"player_id": playerID.String(),
	})
}
