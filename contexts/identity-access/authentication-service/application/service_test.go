package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"vexen/contexts/identity-access/authentication-service/adapters/memory"
	domainerrors "vexen/contexts/identity-access/authentication-service/domain/errors"
	"vexen/contexts/identity-access/authentication-service/ports"
)

// fakeDirectory serves identity records keyed by user id and email.
type fakeDirectory struct {
	records map[string]ports.IdentityRecord
}

func (d fakeDirectory) Lookup(_ context.Context, key string) (ports.IdentityRecord, error) {
	record, ok := d.records[key]
	if !ok {
		return ports.IdentityRecord{}, domainerrors.ErrIdentityNotFound
	}
	return record, nil
}

// fakeClock lets tests advance time explicitly.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func testHasher() PasswordHasher {
	// low-cost parameters to keep the suite fast
	return PasswordHasher{Time: 1, Memory: 8 * 1024, Threads: 1, KeyLen: 32, SaltLen: 16}
}

func newTestService(t *testing.T) (Service, *fakeClock) {
	t.Helper()

	signer, err := NewTokenSigner("test-secret", "HS256", 15*time.Minute)
	if err != nil {
		t.Fatalf("new signer failed: %v", err)
	}

	store := memory.NewStore()
	// real wall clock as the base: access token expiry is validated against
	// wall time by the JWT library
	clock := &fakeClock{now: time.Now().UTC()}
	directory := fakeDirectory{records: map[string]ports.IdentityRecord{}}
	active := ports.IdentityRecord{UserID: "user-1", Email: "ada@example.com", Active: true}
	inactive := ports.IdentityRecord{UserID: "user-2", Email: "off@example.com", Active: false}
	directory.records["user-1"] = active
	directory.records["ada@example.com"] = active
	directory.records["user-2"] = inactive
	directory.records["off@example.com"] = inactive

	return Service{
		Credentials: store,
		Tokens:      store,
		Directory:   directory,
		Signer:      signer,
		Hasher:      testHasher(),
		Clock:       clock,
		RefreshTTL:  30 * 24 * time.Hour,
	}, clock
}

func TestRegisterUnknownIdentity(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.Register(context.Background(), "ghost@example.com", "correct horse")
	if !errors.Is(err, domainerrors.ErrIdentityNotFound) {
		t.Fatalf("expected ErrIdentityNotFound, got %v", err)
	}
}

func TestRegisterInactiveIdentity(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.Register(context.Background(), "off@example.com", "correct horse")
	if !errors.Is(err, domainerrors.ErrIdentityInactive) {
		t.Fatalf("expected ErrIdentityInactive, got %v", err)
	}
}

func TestRegisterWeakPassword(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.Register(context.Background(), "user-1", "short")
	if !errors.Is(err, domainerrors.ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	service, _ := newTestService(t)

	if _, err := service.Register(context.Background(), "user-1", "correct horse"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	_, err := service.Register(context.Background(), "user-1", "correct horse")
	if !errors.Is(err, domainerrors.ErrCredentialExists) {
		t.Fatalf("expected ErrCredentialExists, got %v", err)
	}
}

func TestLoginAndVerify(t *testing.T) {
	service, _ := newTestService(t)

	if _, err := service.Register(context.Background(), "user-1", "correct horse"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	pair, err := service.Login(context.Background(), "Ada@Example.com", "correct horse")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if pair.UserID != "user-1" || pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("incomplete token pair: %+v", pair)
	}

	claims, err := service.Verify(context.Background(), pair.AccessToken)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "ada@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	service, _ := newTestService(t)

	if _, err := service.Register(context.Background(), "user-1", "correct horse"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	_, err := service.Login(context.Background(), "ada@example.com", "wrong horse")
	if !errors.Is(err, domainerrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.Login(context.Background(), "ghost@example.com", "whatever password")
	if !errors.Is(err, domainerrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	service, _ := newTestService(t)

	if _, err := service.Register(context.Background(), "user-1", "correct horse"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	pair, err := service.Login(context.Background(), "ada@example.com", "correct horse")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	rotated, err := service.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if rotated.RefreshToken == pair.RefreshToken {
		t.Fatal("refresh must rotate the token")
	}

	// the old token is revoked by rotation
	_, err = service.Refresh(context.Background(), pair.RefreshToken)
	if !errors.Is(err, domainerrors.ErrTokenRevoked) {
		t.Fatalf("expected ErrTokenRevoked, got %v", err)
	}
}

func TestRefreshExpiredToken(t *testing.T) {
	service, clock := newTestService(t)

	if _, err := service.Register(context.Background(), "user-1", "correct horse"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	pair, err := service.Login(context.Background(), "ada@example.com", "correct horse")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	clock.now = clock.now.Add(31 * 24 * time.Hour)
	_, err = service.Refresh(context.Background(), pair.RefreshToken)
	if !errors.Is(err, domainerrors.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestRevoke(t *testing.T) {
	service, _ := newTestService(t)

	if _, err := service.Register(context.Background(), "user-1", "correct horse"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	pair, err := service.Login(context.Background(), "ada@example.com", "correct horse")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := service.Revoke(context.Background(), pair.RefreshToken); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	// revoking twice is not an error
	if err := service.Revoke(context.Background(), pair.RefreshToken); err != nil {
		t.Fatalf("second revoke failed: %v", err)
	}
	_, err = service.Refresh(context.Background(), pair.RefreshToken)
	if !errors.Is(err, domainerrors.ErrTokenRevoked) {
		t.Fatalf("expected ErrTokenRevoked, got %v", err)
	}
}

func TestUnknownRefreshToken(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.Refresh(context.Background(), "deadbeef")
	if !errors.Is(err, domainerrors.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
