package game

import (
	"testing"
	"time"
)

func TestTurnTimer_ExpiresAfterDuration(t *testing.T) {
	timer := newTurnTimer(30 * time.Second)

	if timer.Tick(29 * time.Second) {
		t.Fatal("expired before the duration elapsed")
	}
	if !timer.Tick(2 * time.Second) {
		t.Fatal("did not expire after the duration elapsed")
	}
	// Level-triggered: stays expired until reset.
	if !timer.Tick(0) {
		t.Fatal("expiry did not latch")
	}
}

func TestTurnTimer_ResetRearmsFully(t *testing.T) {
	timer := newTurnTimer(30 * time.Second)
	timer.Tick(29 * time.Second)
	timer.Reset()

	if timer.Remaining() != 30*time.Second {
		t.Fatalf("remaining %v after reset, want 30s", timer.Remaining())
	}
	if timer.Tick(29 * time.Second) {
		t.Fatal("reset timer expired early")
	}
}
