package token

import (
	"strings"
	"testing"
	"time"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	codec := NewCodec("unit-test-secret", time.Hour)

	tok, err := codec.Issue("alice@example.com")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	claims, err := codec.Verify(tok)
	if err != nil {
		t.Fatalf("failed to verify token: %v", err)
	}
	if claims.Email() != "alice@example.com" {
		t.Errorf("expected email alice@example.com, got %q", claims.Email())
	}
}

func TestIssuedTokensDiffer(t *testing.T) {
	codec := NewCodec("unit-test-secret", time.Hour)

	t1, err := codec.Issue("alice@example.com")
	if err != nil {
		t.Fatalf("failed to issue first token: %v", err)
	}
	t2, err := codec.Issue("alice@example.com")
	if err != nil {
		t.Fatalf("failed to issue second token: %v", err)
	}
	if t1 == t2 {
		t.Error("expected two issuances to produce distinct tokens")
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	codec := NewCodec("unit-test-secret", -time.Second)

	tok, err := codec.Issue("alice@example.com")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	if _, err := codec.Verify(tok); err == nil {
		t.Error("expected expired token to fail verification")
	}
}

func TestVerifyDoesNotFailEarly(t *testing.T) {
	codec := NewCodec("unit-test-secret", time.Hour)

	tok, err := codec.Issue("alice@example.com")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	if _, err := codec.Verify(tok); err != nil {
		t.Errorf("unexpired token failed verification: %v", err)
	}
}

func TestVerifyRejectsTampering(t *testing.T) {
	codec := NewCodec("unit-test-secret", time.Hour)

	tok, err := codec.Issue("alice@example.com")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("expected three token segments, got %d", len(parts))
	}

	flip := func(s string) string {
		c := byte('A')
		if s[0] == 'A' {
			c = 'B'
		}
		return string(c) + s[1:]
	}

	tampered := map[string]string{
		"payload":   strings.Join([]string{parts[0], flip(parts[1]), parts[2]}, "."),
		"signature": strings.Join([]string{parts[0], parts[1], flip(parts[2])}, "."),
		"malformed": parts[0] + "." + parts[1],
		"garbage":   "garbage",
	}
	for name, bad := range tampered {
		if _, err := codec.Verify(bad); err == nil {
			t.Errorf("%s: expected tampered token to fail verification", name)
		}
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewCodec("secret-a", time.Hour)
	verifier := NewCodec("secret-b", time.Hour)

	tok, err := issuer.Issue("alice@example.com")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	if _, err := verifier.Verify(tok); err == nil {
		t.Error("expected token signed with a different secret to fail")
	}
}
