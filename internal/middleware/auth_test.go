package middleware

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, secret, subject string, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestVerify_ValidToken(t *testing.T) {
	v := NewTokenVerifier("test-secret")
	token := signToken(t, "test-secret", "user-42", time.Now().Add(time.Hour))

	userID, err := v.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if userID != "user-42" {
		t.Errorf("userID = %q, want user-42", userID)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	v := NewTokenVerifier("test-secret")
	token := signToken(t, "other-secret", "user-42", time.Now().Add(time.Hour))

	if _, err := v.Verify(token); err == nil {
		t.Error("token signed with a different secret must not verify")
	}
}

func TestVerify_Expired(t *testing.T) {
	v := NewTokenVerifier("test-secret")
	token := signToken(t, "test-secret", "user-42", time.Now().Add(-time.Hour))

	if _, err := v.Verify(token); err == nil {
		t.Error("expired token must not verify")
	}
}

func TestVerify_MissingSubject(t *testing.T) {
	v := NewTokenVerifier("test-secret")
	token := signToken(t, "test-secret", "", time.Now().Add(time.Hour))

	if _, err := v.Verify(token); err == nil {
		t.Error("token without subject must not verify")
	}
}

func TestVerify_Garbage(t *testing.T) {
	v := NewTokenVerifier("test-secret")
	for _, bad := range []string{"", "not.a.token", "aaaa"} {
		if _, err := v.Verify(bad); err == nil {
			t.Errorf("Verify(%q) should fail", bad)
		}
	}
}
