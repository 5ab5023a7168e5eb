package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"vexen/contexts/identity-access/identity-service/domain/entities"
	domainerrors "vexen/contexts/identity-access/identity-service/domain/errors"

	"github.com/google/uuid"
)

// Store is an in-memory adapter implementing the repository, directory,
// clock, and id-generator ports. It is intended for tests and local
// development wiring.
type Store struct {
	mu         sync.RWMutex
	identities map[string]entities.Identity
}

func NewStore() *Store {
	return &Store{
		identities: make(map[string]entities.Identity),
	}
}

func (s *Store) Create(_ context.Context, identity entities.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.identities {
		if existing.Email == identity.Email {
			return domainerrors.ErrEmailTaken
		}
	}
	s.identities[identity.UserID] = identity
	return nil
}

func (s *Store) Get(_ context.Context, userID string) (entities.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	identity, ok := s.identities[userID]
	if !ok {
		return entities.Identity{}, domainerrors.ErrIdentityNotFound
	}
	return identity, nil
}

func (s *Store) GetByEmail(_ context.Context, email string) (entities.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, identity := range s.identities {
		if identity.Email == email {
			return identity, nil
		}
	}
	return entities.Identity{}, domainerrors.ErrIdentityNotFound
}

func (s *Store) List(_ context.Context, limit, offset int) ([]entities.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Identity, 0, len(s.identities))
	for _, identity := range s.identities {
		items = append(items, identity)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].UserID < items[j].UserID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})

	if offset >= len(items) {
		return []entities.Identity{}, nil
	}
	items = items[offset:]
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) Update(_ context.Context, identity entities.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.identities[identity.UserID]; !ok {
		return domainerrors.ErrIdentityNotFound
	}
	s.identities[identity.UserID] = identity
	return nil
}

func (s *Store) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.identities[userID]; !ok {
		return domainerrors.ErrIdentityNotFound
	}
	delete(s.identities, userID)
	return nil
}

// Lookup implements ports.Directory: the key is a user id or an email.
func (s *Store) Lookup(ctx context.Context, key string) (entities.Identity, error) {
	identity, err := s.Get(ctx, key)
	if err == nil {
		return identity, nil
	}
	if strings.Contains(key, "@") {
		return s.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(key)))
	}
	return entities.Identity{}, domainerrors.ErrIdentityNotFound
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
