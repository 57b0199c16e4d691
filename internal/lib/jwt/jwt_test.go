package jwt

import (
	"testing"
	"time"
)

func TestNewTokenAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := "super-secret"
	userID := int64(42)

	tok, err := NewToken(userID, secret, time.Hour)
	if err != nil {
		t.Fatalf("NewToken error: %v", err)
	}

	gotUserID, err := ParseToken(tok, secret)
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	if gotUserID != userID {
		t.Fatalf("userID mismatch: got %d want %d", gotUserID, userID)
	}
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	tok, err := NewToken(1, "secret", -1*time.Second)
	if err != nil {
		t.Fatalf("NewToken error: %v", err)
	}

	if _, err = ParseToken(tok, "secret"); err == nil {
		t.Fatalf("expected error for expired token, got nil")
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewToken(2, "right-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewToken error: %v", err)
	}

	if _, err = ParseToken(tok, "wrong-secret"); err == nil {
		t.Fatalf("expected error for invalid signature, got nil")
	}
}

func TestParseToken_MalformedString(t *testing.T) {
	t.Parallel()

	if _, err := ParseToken("not.a.jwt", "k"); err == nil {
		t.Fatalf("expected error for malformed token, got nil")
	}
}
