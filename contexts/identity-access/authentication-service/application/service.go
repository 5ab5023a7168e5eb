package application

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"vexen/contexts/identity-access/authentication-service/domain/entities"
	domainerrors "vexen/contexts/identity-access/authentication-service/domain/errors"
	"vexen/contexts/identity-access/authentication-service/ports"
)

const minPasswordLength = 8

// Service exposes the authentication flows over explicit ports. It never
// owns identity data; identities resolve through the injected directory.
type Service struct {
	Credentials ports.CredentialRepository
	Tokens      ports.RefreshTokenRepository
	Directory   ports.IdentityDirectory
	Signer      *TokenSigner
	Hasher      PasswordHasher
	Clock       ports.Clock
	RefreshTTL  time.Duration
	Logger      *slog.Logger
}

// Register stores a password credential for an existing, active identity.
// The key is a user id or email resolved through the directory.
func (s Service) Register(ctx context.Context, identityKey, password string) (entities.Credential, error) {
	if strings.TrimSpace(identityKey) == "" {
		return entities.Credential{}, domainerrors.ErrInvalidRequest
	}
	if len(password) < minPasswordLength {
		return entities.Credential{}, domainerrors.ErrWeakPassword
	}

	record, err := s.Directory.Lookup(ctx, strings.TrimSpace(identityKey))
	if err != nil {
		return entities.Credential{}, err
	}
	if !record.Active {
		return entities.Credential{}, domainerrors.ErrIdentityInactive
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return entities.Credential{}, err
	}

	now := s.Clock.Now()
	credential := entities.Credential{
		UserID:       record.UserID,
		Email:        record.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Credentials.CreateCredential(ctx, credential); err != nil {
		return entities.Credential{}, err
	}

	ResolveLogger(s.Logger).Info("credential registered",
		"event", "auth_credential_registered",
		"module", "identity-access/authentication-service",
		"layer", "application",
		"user_id", credential.UserID,
	)
	return credential, nil
}

// Login verifies the password and issues a token pair. Lookup failures
// and password mismatches are indistinguishable to the caller.
func (s Service) Login(ctx context.Context, email, password string) (entities.TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return entities.TokenPair{}, domainerrors.ErrInvalidRequest
	}

	logger := ResolveLogger(s.Logger)

	record, err := s.Directory.Lookup(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrIdentityNotFound) {
			return entities.TokenPair{}, domainerrors.ErrInvalidCredentials
		}
		return entities.TokenPair{}, err
	}
	if !record.Active {
		return entities.TokenPair{}, domainerrors.ErrIdentityInactive
	}

	credential, err := s.Credentials.GetCredentialByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrCredentialNotFound) {
			return entities.TokenPair{}, domainerrors.ErrInvalidCredentials
		}
		return entities.TokenPair{}, err
	}

	match, err := s.Hasher.Verify(password, credential.PasswordHash)
	if err != nil {
		return entities.TokenPair{}, err
	}
	if !match {
		logger.Warn("login rejected",
			"event", "auth_login_rejected",
			"module", "identity-access/authentication-service",
			"layer", "application",
			"user_id", credential.UserID,
		)
		return entities.TokenPair{}, domainerrors.ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, record)
	if err != nil {
		return entities.TokenPair{}, err
	}

	logger.Info("login succeeded",
		"event", "auth_login_succeeded",
		"module", "identity-access/authentication-service",
		"layer", "application",
		"user_id", record.UserID,
	)
	return pair, nil
}

// Refresh exchanges a valid refresh token for a new pair and revokes the
// old token (rotation).
func (s Service) Refresh(ctx context.Context, rawRefreshToken string) (entities.TokenPair, error) {
	if strings.TrimSpace(rawRefreshToken) == "" {
		return entities.TokenPair{}, domainerrors.ErrInvalidRequest
	}

	now := s.Clock.Now()
	hash := HashRefreshToken(strings.TrimSpace(rawRefreshToken))

	stored, err := s.Tokens.GetRefreshToken(ctx, hash)
	if err != nil {
		return entities.TokenPair{}, err
	}
	if stored.RevokedAt != nil {
		return entities.TokenPair{}, domainerrors.ErrTokenRevoked
	}
	if !stored.ExpiresAt.After(now) {
		return entities.TokenPair{}, domainerrors.ErrTokenExpired
	}

	record, err := s.Directory.Lookup(ctx, stored.UserID)
	if err != nil {
		return entities.TokenPair{}, err
	}
	if !record.Active {
		return entities.TokenPair{}, domainerrors.ErrIdentityInactive
	}

	if err := s.Tokens.RevokeRefreshToken(ctx, hash, now); err != nil {
		return entities.TokenPair{}, err
	}
	return s.issueTokens(ctx, record)
}

// Revoke invalidates a refresh token. Revoking an already revoked token
// is not an error.
func (s Service) Revoke(ctx context.Context, rawRefreshToken string) error {
	if strings.TrimSpace(rawRefreshToken) == "" {
		return domainerrors.ErrInvalidRequest
	}
	return s.Tokens.RevokeRefreshToken(ctx, HashRefreshToken(strings.TrimSpace(rawRefreshToken)), s.Clock.Now())
}

// Verify validates an access token and returns its claims.
func (s Service) Verify(_ context.Context, accessToken string) (Claims, error) {
	if strings.TrimSpace(accessToken) == "" {
		return Claims{}, domainerrors.ErrInvalidRequest
	}
	return s.Signer.Verify(strings.TrimSpace(accessToken))
}

func (s Service) issueTokens(ctx context.Context, record ports.IdentityRecord) (entities.TokenPair, error) {
	now := s.Clock.Now()

	access, accessExpires, err := s.Signer.Sign(record.UserID, record.Email, now)
	if err != nil {
		return entities.TokenPair{}, err
	}

	raw, hash, err := NewRefreshToken()
	if err != nil {
		return entities.TokenPair{}, err
	}
	refreshExpires := now.Add(s.RefreshTTL)
	if err := s.Tokens.StoreRefreshToken(ctx, entities.RefreshToken{
		TokenHash: hash,
		UserID:    record.UserID,
		ExpiresAt: refreshExpires,
		CreatedAt: now,
	}); err != nil {
		return entities.TokenPair{}, err
	}

	return entities.TokenPair{
		UserID:           record.UserID,
		AccessToken:      access,
		RefreshToken:     raw,
		AccessExpiresAt:  accessExpires,
		RefreshExpiresAt: refreshExpires,
	}, nil
}
