package identity

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestSubjectUnverified(t *testing.T) {
	insp, err := NewTokenInspector(Config{APIKey: "k", ProjectID: "p"})
	if err != nil {
		t.Fatalf("new inspector: %v", err)
	}

	exp := time.Now().Add(time.Hour)
	token := signedToken(t, jwt.MapClaims{
		"sub": "uid-123",
		"exp": exp.Unix(),
		"iat": time.Now().Add(-time.Minute).Unix(),
	})

	sub, err := insp.Subject(token)
	if err != nil {
		t.Fatalf("subject: %v", err)
	}
	if sub != "uid-123" {
		t.Fatalf("unexpected subject %q", sub)
	}

	got, err := insp.ExpiresAt(token)
	if err != nil {
		t.Fatalf("expires at: %v", err)
	}
	if got.Unix() != exp.Unix() {
		t.Fatalf("expiry mismatch: got %v want %v", got, exp)
	}
}

func TestSubjectRejectsExpiredToken(t *testing.T) {
	insp, err := NewTokenInspector(Config{APIKey: "k"})
	if err != nil {
		t.Fatalf("new inspector: %v", err)
	}
	token := signedToken(t, jwt.MapClaims{
		"sub": "uid-123",
		"exp": time.Now().Add(-time.Minute).Unix(),
	})
	if _, err := insp.Subject(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestSubjectRejectsMissingSub(t *testing.T) {
	insp, err := NewTokenInspector(Config{APIKey: "k"})
	if err != nil {
		t.Fatalf("new inspector: %v", err)
	}
	token := signedToken(t, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	if _, err := insp.Subject(token); err == nil {
		t.Fatal("expected token without sub to be rejected")
	}
	if _, err := insp.Subject(""); err == nil {
		t.Fatal("expected empty token to be rejected")
	}
}
