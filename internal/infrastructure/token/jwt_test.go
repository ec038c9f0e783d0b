package token

import (
	"testing"
	"time"

	"github.com/riskibarqy/survivor-league/internal/domain/user"
)

func TestJWT_IssueAndVerify(t *testing.T) {
	issued := time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC)

	j := NewJWT("test-secret", "survivor-league", time.Hour)
	j.now = func() time.Time { return issued }

	principal := user.Principal{UserID: "user-1", Email: "alex@example.com", Role: user.RoleAdmin}

	signed, expiresAt, err := j.Issue(principal)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if !expiresAt.Equal(issued.Add(time.Hour)) {
		t.Fatalf("expected expiry %v, got %v", issued.Add(time.Hour), expiresAt)
	}

	verified, err := j.Verify(signed)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if verified != principal {
		t.Fatalf("expected principal %+v, got %+v", principal, verified)
	}
}

func TestJWT_Verify_Expired(t *testing.T) {
	issued := time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC)

	j := NewJWT("test-secret", "survivor-league", time.Hour)
	j.now = func() time.Time { return issued }

	signed, _, err := j.Issue(user.Principal{UserID: "user-1"})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	j.now = func() time.Time { return issued.Add(2 * time.Hour) }

	if _, err := j.Verify(signed); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestJWT_Verify_WrongSecret(t *testing.T) {
	j := NewJWT("test-secret", "survivor-league", time.Hour)

	signed, _, err := j.Issue(user.Principal{UserID: "user-1"})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	other := NewJWT("other-secret", "survivor-league", time.Hour)
	if _, err := other.Verify(signed); err == nil {
		t.Fatal("expected token signed with another secret to be rejected")
	}
}

func TestJWT_Verify_WrongIssuer(t *testing.T) {
	j := NewJWT("test-secret", "survivor-league", time.Hour)

	signed, _, err := j.Issue(user.Principal{UserID: "user-1"})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	other := NewJWT("test-secret", "someone-else", time.Hour)
	if _, err := other.Verify(signed); err == nil {
		t.Fatal("expected token from another issuer to be rejected")
	}
}
