package ports

import (
	"context"
	"time"

	"vexen/contexts/identity-access/authentication-service/domain/entities"
)

// CredentialRepository is the persistence port for password credentials.
type CredentialRepository interface {
	CreateCredential(ctx context.Context, credential entities.Credential) error
	GetCredential(ctx context.Context, userID string) (entities.Credential, error)
	GetCredentialByEmail(ctx context.Context, email string) (entities.Credential, error)
	DeleteCredential(ctx context.Context, userID string) error
}

// RefreshTokenRepository is the persistence port for refresh tokens,
// keyed by token hash.
type RefreshTokenRepository interface {
	StoreRefreshToken(ctx context.Context, token entities.RefreshToken) error
	GetRefreshToken(ctx context.Context, tokenHash string) (entities.RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string, now time.Time) error
}

// IdentityRecord is the projection of an identity this subsystem needs.
type IdentityRecord struct {
	UserID string
	Email  string
	Active bool
}

// IdentityDirectory is the read surface authentication consumes from the
// identity subsystem. The key is a user id or an email address.
type IdentityDirectory interface {
	Lookup(ctx context.Context, key string) (IdentityRecord, error)
}

// Clock abstracts wall-clock time for deterministic tests.
type Clock interface {
	Now() time.Time
}
