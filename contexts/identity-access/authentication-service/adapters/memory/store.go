package memory

import (
	"context"
	"sync"
	"time"

	"vexen/contexts/identity-access/authentication-service/domain/entities"
	domainerrors "vexen/contexts/identity-access/authentication-service/domain/errors"
)

// Store is an in-memory adapter implementing the credential and refresh
// token ports. It is intended for tests and local development wiring.
type Store struct {
	mu          sync.RWMutex
	credentials map[string]entities.Credential
	tokens      map[string]entities.RefreshToken
}

func NewStore() *Store {
	return &Store{
		credentials: make(map[string]entities.Credential),
		tokens:      make(map[string]entities.RefreshToken),
	}
}

func (s *Store) CreateCredential(_ context.Context, credential entities.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.credentials[credential.UserID]; ok {
		return domainerrors.ErrCredentialExists
	}
	for _, existing := range s.credentials {
		if existing.Email == credential.Email {
			return domainerrors.ErrCredentialExists
		}
	}
	s.credentials[credential.UserID] = credential
	return nil
}

func (s *Store) GetCredential(_ context.Context, userID string) (entities.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	credential, ok := s.credentials[userID]
	if !ok {
		return entities.Credential{}, domainerrors.ErrCredentialNotFound
	}
	return credential, nil
}

func (s *Store) GetCredentialByEmail(_ context.Context, email string) (entities.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, credential := range s.credentials {
		if credential.Email == email {
			return credential, nil
		}
	}
	return entities.Credential{}, domainerrors.ErrCredentialNotFound
}

func (s *Store) DeleteCredential(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.credentials[userID]; !ok {
		return domainerrors.ErrCredentialNotFound
	}
	delete(s.credentials, userID)
	return nil
}

func (s *Store) StoreRefreshToken(_ context.Context, token entities.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens[token.TokenHash] = token
	return nil
}

func (s *Store) GetRefreshToken(_ context.Context, tokenHash string) (entities.RefreshToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	token, ok := s.tokens[tokenHash]
	if !ok {
		return entities.RefreshToken{}, domainerrors.ErrTokenInvalid
	}
	return token, nil
}

func (s *Store) RevokeRefreshToken(_ context.Context, tokenHash string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.tokens[tokenHash]
	if !ok {
		return domainerrors.ErrTokenInvalid
	}
	if token.RevokedAt == nil {
		revoked := now
		token.RevokedAt = &revoked
		s.tokens[tokenHash] = token
	}
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}
