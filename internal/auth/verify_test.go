package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/spec-kit/marketplace-service/internal/config"
	"github.com/spec-kit/marketplace-service/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:           "7b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d",
		Email:        "buyer@example.com",
		Active:       false,
		PasswordHash: "$2a$12$abcdefghijklmnopqrstuv",
	}
}

func testGenerator(secret string, fallbacks []string, ttl time.Duration) *VerifyTokenGenerator {
	gen := NewVerifyTokenGenerator(config.VerifyConfig{
		Secret:          secret,
		SecretFallbacks: fallbacks,
		TokenTTLMinutes: int(ttl / time.Minute),
	})
	return gen
}

func TestVerifyTokenRoundTrip(t *testing.T) {
	gen := testGenerator("s3cret", nil, time.Hour)
	user := testUser()

	token := gen.MakeToken(user)
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	if parts := strings.Split(token, "-"); len(parts) != 2 {
		t.Fatalf("expected two token segments, got %d", len(parts))
	}

	if !gen.CheckToken(user, token) {
		t.Fatal("freshly issued token should verify")
	}
}

func TestVerifyTokenExpiry(t *testing.T) {
	gen := testGenerator("s3cret", nil, time.Hour)
	user := testUser()

	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	gen.now = func() time.Time { return issued }
	token := gen.MakeToken(user)

	gen.now = func() time.Time { return issued.Add(time.Hour) }
	if !gen.CheckToken(user, token) {
		t.Fatal("token at exactly max age should still verify")
	}

	gen.now = func() time.Time { return issued.Add(time.Hour + time.Second) }
	if gen.CheckToken(user, token) {
		t.Fatal("token past max age should be rejected")
	}
}

func TestVerifyTokenBoundToUserState(t *testing.T) {
	gen := testGenerator("s3cret", nil, time.Hour)
	user := testUser()
	token := gen.MakeToken(user)

	cases := map[string]func(u *domain.User){
		"email changed":    func(u *domain.User) { u.Email = "other@example.com" },
		"activated":        func(u *domain.User) { u.Active = true },
		"password changed": func(u *domain.User) { u.PasswordHash = "$2a$12$differenthash" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			changed := testUser()
			mutate(changed)
			if gen.CheckToken(changed, token) {
				t.Fatal("token should be invalid after user state change")
			}
		})
	}
}

func TestVerifyTokenSecretRotation(t *testing.T) {
	user := testUser()

	old := testGenerator("old-secret", nil, time.Hour)
	token := old.MakeToken(user)

	rotated := testGenerator("new-secret", []string{"old-secret"}, time.Hour)
	if !rotated.CheckToken(user, token) {
		t.Fatal("token under fallback secret should verify")
	}

	dropped := testGenerator("new-secret", nil, time.Hour)
	if dropped.CheckToken(user, token) {
		t.Fatal("token under removed secret should be rejected")
	}
}

func TestVerifyTokenMalformedInput(t *testing.T) {
	gen := testGenerator("s3cret", nil, time.Hour)
	user := testUser()
	valid := gen.MakeToken(user)

	cases := map[string]string{
		"empty":              "",
		"no separator":       strings.ReplaceAll(valid, "-", ""),
		"extra separator":    valid + "-zz",
		"bad timestamp":      "!!!" + valid[strings.Index(valid, "-"):],
		"tampered digest":    valid + "0",
		"digest only":        valid[strings.Index(valid, "-")+1:],
		"whitespace wrapped": " " + valid + " ",
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			if gen.CheckToken(user, token) {
				t.Fatalf("malformed token %q should be rejected", token)
			}
		})
	}

	if gen.CheckToken(nil, valid) {
		t.Fatal("nil user should never verify")
	}
}
