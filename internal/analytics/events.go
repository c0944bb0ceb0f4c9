package analytics

import "time"

// Event types on the match lifecycle topic.
const (
	TypeMatchStarted = "match_started"
	TypeMatchEnded   = "match_ended"
)

// MatchEvent is the payload published for every match lifecycle change.
// WinnerID is only set on match_ended, and stays null for abandoned games.
type MatchEvent struct {
	Type      string    `json:"type"`
	RoomID    string    `json:"roomID"`
	PlayerIDs []string  `json:"playerIDs,omitempty"`
	WinnerID  *string   `json:"winnerID,omitempty"`
	At        time.Time `json:"at"`
}
