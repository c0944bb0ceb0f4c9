package game

import "time"

// DefaultTurnDuration is how long a player may hold the turn before it is
// forced over to the opponent.
const DefaultTurnDuration = 30 * time.Second

// TurnTimer is a level-triggered countdown. The scheduler ticks it with
// the elapsed wall-clock delta each pass; it never fires on its own, so
// resetting it is the only cancellation needed.
type TurnTimer struct {
	duration  time.Duration
	remaining time.Duration
}

func newTurnTimer(d time.Duration) TurnTimer {
	return TurnTimer{duration: d, remaining: d}
}

// Tick subtracts delta and reports whether the countdown has expired.
// Once expired it keeps reporting true until Reset.
func (t *TurnTimer) Tick(delta time.Duration) bool {
	t.remaining -= delta
	return t.remaining <= 0
}

// Reset rearms the countdown to its full duration.
func (t *TurnTimer) Reset() {
	t.remaining = t.duration
}

// Remaining reports the time left on the countdown.
func (t *TurnTimer) Remaining() time.Duration {
	return t.remaining
}
