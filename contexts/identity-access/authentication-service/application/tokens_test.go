package application

import (
	"errors"
	"testing"
	"time"

	domainerrors "vexen/contexts/identity-access/authentication-service/domain/errors"
)

func TestSignVerifyRoundtrip(t *testing.T) {
	signer, err := NewTokenSigner("secret", "HS256", 15*time.Minute)
	if err != nil {
		t.Fatalf("new signer failed: %v", err)
	}

	now := time.Now().UTC()
	token, expiresAt, err := signer.Sign("user-1", "ada@example.com", now)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	if !expiresAt.Equal(now.Add(15 * time.Minute)) {
		t.Fatalf("unexpected expiry %v", expiresAt)
	}

	claims, err := signer.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "ada@example.com" || claims.TokenID == "" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	signer, err := NewTokenSigner("secret", "HS256", 15*time.Minute)
	if err != nil {
		t.Fatalf("new signer failed: %v", err)
	}
	other, err := NewTokenSigner("different", "HS256", 15*time.Minute)
	if err != nil {
		t.Fatalf("new signer failed: %v", err)
	}

	token, _, err := signer.Sign("user-1", "", time.Now().UTC())
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	if _, err := other.Verify(token); !errors.Is(err, domainerrors.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	signer, err := NewTokenSigner("secret", "HS256", 15*time.Minute)
	if err != nil {
		t.Fatalf("new signer failed: %v", err)
	}

	token, _, err := signer.Sign("user-1", "", time.Now().UTC().Add(-time.Hour))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	if _, err := signer.Verify(token); !errors.Is(err, domainerrors.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerifyGarbage(t *testing.T) {
	signer, err := NewTokenSigner("secret", "HS512", 15*time.Minute)
	if err != nil {
		t.Fatalf("new signer failed: %v", err)
	}
	if _, err := signer.Verify("not.a.token"); !errors.Is(err, domainerrors.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestNewTokenSignerValidation(t *testing.T) {
	if _, err := NewTokenSigner("", "HS256", time.Minute); !errors.Is(err, domainerrors.ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}
	if _, err := NewTokenSigner("secret", "RS256", time.Minute); !errors.Is(err, domainerrors.ErrUnsupportedAlgorithm) {
		t.Fatalf("expected ErrUnsupportedAlgorithm, got %v", err)
	}
	if _, err := NewTokenSigner("secret", "none", time.Minute); !errors.Is(err, domainerrors.ErrUnsupportedAlgorithm) {
		t.Fatalf("expected ErrUnsupportedAlgorithm, got %v", err)
	}
}

func TestNewRefreshToken(t *testing.T) {
	raw, hash, err := NewRefreshToken()
	if err != nil {
		t.Fatalf("new refresh token failed: %v", err)
	}
	if len(raw) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(raw))
	}
	if hash != HashRefreshToken(raw) {
		t.Fatal("hash mismatch")
	}

	raw2, _, err := NewRefreshToken()
	if err != nil {
		t.Fatalf("new refresh token failed: %v", err)
	}
	if raw == raw2 {
		t.Fatal("tokens must be unique")
	}
}
