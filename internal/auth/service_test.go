package auth

import (
	"testing"
	"time"
)

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService(Config{JWTSecret: "test-secret", TokenDuration: time.Hour})

	token, playerID, err := svc.IssueGuest("alex")
	if err != nil {
		t.Fatalf("IssueGuest: %v", err)
	}
	gotID, gotName, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if gotID != playerID {
		t.Errorf("player ID %v, want %v", gotID, playerID)
	}
	if gotName != "alex" {
		t.Errorf("display name %q, want %q", gotName, "alex")
	}
}

func TestTokenService_DistinctIdentitiesPerIssue(t *testing.T) {
	svc := NewTokenService(Config{JWTSecret: "test-secret", TokenDuration: time.Hour})
	_, first, _ := svc.IssueGuest("")
	_, second, _ := svc.IssueGuest("")
	if first == second {
		t.Error("two guests received the same player ID")
	}
}

func TestTokenService_RejectsWrongSecret(t *testing.T) {
	issuer := NewTokenService(Config{JWTSecret: "secret-a", TokenDuration: time.Hour})
	verifier := NewTokenService(Config{JWTSecret: "secret-b", TokenDuration: time.Hour})

	token, _, err := issuer.IssueGuest("mallory")
	if err != nil {
		t.Fatalf("IssueGuest: %v", err)
	}
	if _, _, err := verifier.Verify(token); err == nil {
		t.Fatal("token signed with the wrong secret verified")
	}
}

func TestTokenService_RejectsExpired(t *testing.T) {
	svc := NewTokenService(Config{JWTSecret: "test-secret", TokenDuration: -time.Minute})
	token, _, err := svc.IssueGuest("late")
	if err != nil {
		t.Fatalf("IssueGuest: %v", err)
	}
	if _, _, err := svc.Verify(token); err == nil {
		t.Fatal("expired token verified")
	}
}

func TestTokenService_RejectsGarbage(t *testing.T) {
	svc := NewTokenService(Config{JWTSecret: "test-secret", TokenDuration: time.Hour})
	if _, _, err := svc.Verify("not.a.token"); err == nil {
		t.Fatal("garbage token verified")
	}
}
