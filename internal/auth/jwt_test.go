package auth

import (
	"errors"
	"testing"
	"time"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	raw, expiresAt, err := m.IssueSessionToken("sid-1", "admin")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Fatalf("expiry should be in the future")
	}

	claims, err := m.VerifySessionToken(raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.SessionID != "sid-1" || claims.Username != "admin" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestSessionTokenRejections(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	raw, _, err := m.IssueSessionToken("sid-1", "admin")
	if err != nil {
		t.Fatal(err)
	}

	other := NewManager("another-secret", time.Hour)
	if _, err := other.VerifySessionToken(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("token signed with another secret must fail, got %v", err)
	}

	if _, err := m.VerifySessionToken(raw + "x"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("tampered token must fail, got %v", err)
	}

	if _, err := m.VerifySessionToken(""); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("empty token must fail, got %v", err)
	}
}

func TestSessionTokenExpires(t *testing.T) {
	m := NewManager("test-secret", time.Minute)

	issuedAt := time.Now()
	m.now = func() time.Time { return issuedAt }

	raw, _, err := m.IssueSessionToken("sid-1", "admin")
	if err != nil {
		t.Fatal(err)
	}

	m.now = func() time.Time { return issuedAt.Add(2 * time.Minute) }

	if _, err := m.VerifySessionToken(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired token must fail, got %v", err)
	}
}
