package auth

import (
	"errors"
	"testing"
	"time"

	"cinevault/internal/domain"
)

func TestTokenManager_IssueAndVerify(t *testing.T) {
	t.Parallel()

	tokens := NewTokenManager("super-secret", "cinevault", time.Hour)

	raw, err := tokens.Issue("alice01")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	subject, err := tokens.Verify(raw)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if subject != "alice01" {
		t.Fatalf("subject mismatch: got %q want %q", subject, "alice01")
	}
}

func TestTokenManager_Expired(t *testing.T) {
	t.Parallel()

	tokens := NewTokenManager("super-secret", "cinevault", -1*time.Minute)

	raw, err := tokens.Issue("alice01")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = tokens.Verify(raw)
	if !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenManager_WrongSecret(t *testing.T) {
	t.Parallel()

	issuing := NewTokenManager("right-secret", "cinevault", time.Hour)
	verifying := NewTokenManager("wrong-secret", "cinevault", time.Hour)

	raw, err := issuing.Issue("bob99")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = verifying.Verify(raw)
	if !errors.Is(err, domain.ErrMalformedToken) {
		t.Fatalf("expected ErrMalformedToken, got %v", err)
	}
}

func TestTokenManager_Garbage(t *testing.T) {
	t.Parallel()

	tokens := NewTokenManager("super-secret", "cinevault", time.Hour)

	for _, raw := range []string{"", "not.a.jwt", "aaaa"} {
		if _, err := tokens.Verify(raw); !errors.Is(err, domain.ErrMalformedToken) {
			t.Fatalf("Verify(%q): expected ErrMalformedToken, got %v", raw, err)
		}
	}
}
