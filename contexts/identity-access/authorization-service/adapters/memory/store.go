package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"vexen/contexts/identity-access/authorization-service/domain/entities"
	domainerrors "vexen/contexts/identity-access/authorization-service/domain/errors"

	"github.com/google/uuid"
)

// Store is an in-memory adapter implementing the repository, clock, and
// id-generator ports. It is intended for tests and local development
// wiring.
type Store struct {
	mu          sync.RWMutex
	roles       map[string]entities.Role
	assignments map[string]entities.Assignment
}

func NewStore() *Store {
	return &Store{
		roles:       make(map[string]entities.Role),
		assignments: make(map[string]entities.Assignment),
	}
}

func (s *Store) CreateRole(_ context.Context, role entities.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.roles {
		if existing.Name == role.Name {
			return domainerrors.ErrRoleExists
		}
	}
	s.roles[role.RoleID] = role
	return nil
}

func (s *Store) GetRole(_ context.Context, roleID string) (entities.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	role, ok := s.roles[roleID]
	if !ok {
		return entities.Role{}, domainerrors.ErrRoleNotFound
	}
	return role, nil
}

func (s *Store) GetRoleByName(_ context.Context, name string) (entities.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, role := range s.roles {
		if role.Name == name {
			return role, nil
		}
	}
	return entities.Role{}, domainerrors.ErrRoleNotFound
}

func (s *Store) ListRoles(_ context.Context) ([]entities.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	roles := make([]entities.Role, 0, len(s.roles))
	for _, role := range s.roles {
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i].Name < roles[j].Name })
	return roles, nil
}

func (s *Store) UpdateRole(_ context.Context, role entities.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.roles[role.RoleID]; !ok {
		return domainerrors.ErrRoleNotFound
	}
	s.roles[role.RoleID] = role
	return nil
}

func (s *Store) DeleteRole(_ context.Context, roleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.roles[roleID]; !ok {
		return domainerrors.ErrRoleNotFound
	}
	delete(s.roles, roleID)
	for id, assignment := range s.assignments {
		if assignment.RoleID == roleID {
			delete(s.assignments, id)
		}
	}
	return nil
}

func (s *Store) AssignRole(_ context.Context, assignment entities.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.assignments {
		if existing.UserID == assignment.UserID && existing.RoleID == assignment.RoleID {
			return domainerrors.ErrRoleAlreadyAssigned
		}
	}
	s.assignments[assignment.AssignmentID] = assignment
	return nil
}

func (s *Store) RevokeRole(_ context.Context, userID, roleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, assignment := range s.assignments {
		if assignment.UserID == userID && assignment.RoleID == roleID {
			delete(s.assignments, id)
			return nil
		}
	}
	return domainerrors.ErrRoleNotAssigned
}

func (s *Store) ListUserRoles(_ context.Context, userID string) ([]entities.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	roles := make([]entities.Role, 0)
	for _, assignment := range s.assignments {
		if assignment.UserID != userID {
			continue
		}
		if role, ok := s.roles[assignment.RoleID]; ok {
			roles = append(roles, role)
		}
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i].Name < roles[j].Name })
	return roles, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
