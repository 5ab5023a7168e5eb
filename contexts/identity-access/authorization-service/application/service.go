package application

import (
	"context"
	"log/slog"
	"strings"

	"vexen/contexts/identity-access/authorization-service/domain/entities"
	domainerrors "vexen/contexts/identity-access/authorization-service/domain/errors"
	"vexen/contexts/identity-access/authorization-service/domain/services"
	"vexen/contexts/identity-access/authorization-service/ports"
)

// Service exposes role CRUD, assignment, and permission checks over
// explicit ports.
type Service struct {
	Repo   ports.Repository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

// CreateRoleRequest carries the caller-supplied fields for CreateRole.
type CreateRoleRequest struct {
	Name        string
	Description string
	Permissions []string
}

func (s Service) CreateRole(ctx context.Context, req CreateRoleRequest) (entities.Role, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return entities.Role{}, domainerrors.ErrInvalidRoleName
	}
	permissions, err := normalizePermissions(req.Permissions)
	if err != nil {
		return entities.Role{}, err
	}

	roleID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Role{}, err
	}

	now := s.Clock.Now()
	role := entities.Role{
		RoleID:      roleID,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Permissions: permissions,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.CreateRole(ctx, role); err != nil {
		return entities.Role{}, err
	}

	ResolveLogger(s.Logger).Info("role created",
		"event", "authz_role_created",
		"module", "identity-access/authorization-service",
		"layer", "application",
		"role_id", role.RoleID,
		"role_name", role.Name,
	)
	return role, nil
}

func (s Service) GetRole(ctx context.Context, roleID string) (entities.Role, error) {
	if strings.TrimSpace(roleID) == "" {
		return entities.Role{}, domainerrors.ErrInvalidRoleID
	}
	return s.Repo.GetRole(ctx, strings.TrimSpace(roleID))
}

func (s Service) GetRoleByName(ctx context.Context, name string) (entities.Role, error) {
	if strings.TrimSpace(name) == "" {
		return entities.Role{}, domainerrors.ErrInvalidRoleName
	}
	return s.Repo.GetRoleByName(ctx, strings.TrimSpace(name))
}

func (s Service) ListRoles(ctx context.Context) ([]entities.Role, error) {
	return s.Repo.ListRoles(ctx)
}

// SetRolePermissions replaces a role's permission set.
func (s Service) SetRolePermissions(ctx context.Context, roleID string, permissions []string) (entities.Role, error) {
	role, err := s.GetRole(ctx, roleID)
	if err != nil {
		return entities.Role{}, err
	}
	normalized, err := normalizePermissions(permissions)
	if err != nil {
		return entities.Role{}, err
	}
	role.Permissions = normalized
	role.UpdatedAt = s.Clock.Now()
	if err := s.Repo.UpdateRole(ctx, role); err != nil {
		return entities.Role{}, err
	}
	return role, nil
}

func (s Service) DeleteRole(ctx context.Context, roleID string) error {
	if strings.TrimSpace(roleID) == "" {
		return domainerrors.ErrInvalidRoleID
	}
	return s.Repo.DeleteRole(ctx, strings.TrimSpace(roleID))
}

func (s Service) AssignRole(ctx context.Context, userID, roleID string) (entities.Assignment, error) {
	if strings.TrimSpace(userID) == "" {
		return entities.Assignment{}, domainerrors.ErrInvalidUserID
	}
	role, err := s.GetRole(ctx, roleID)
	if err != nil {
		return entities.Assignment{}, err
	}

	assignmentID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Assignment{}, err
	}
	assignment := entities.Assignment{
		AssignmentID: assignmentID,
		UserID:       strings.TrimSpace(userID),
		RoleID:       role.RoleID,
		AssignedAt:   s.Clock.Now(),
	}
	if err := s.Repo.AssignRole(ctx, assignment); err != nil {
		return entities.Assignment{}, err
	}

	ResolveLogger(s.Logger).Info("role assigned",
		"event", "authz_role_assigned",
		"module", "identity-access/authorization-service",
		"layer", "application",
		"user_id", assignment.UserID,
		"role_id", assignment.RoleID,
	)
	return assignment, nil
}

func (s Service) RevokeRole(ctx context.Context, userID, roleID string) error {
	if strings.TrimSpace(userID) == "" {
		return domainerrors.ErrInvalidUserID
	}
	if strings.TrimSpace(roleID) == "" {
		return domainerrors.ErrInvalidRoleID
	}
	return s.Repo.RevokeRole(ctx, strings.TrimSpace(userID), strings.TrimSpace(roleID))
}

func (s Service) ListUserRoles(ctx context.Context, userID string) ([]entities.Role, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domainerrors.ErrInvalidUserID
	}
	return s.Repo.ListUserRoles(ctx, strings.TrimSpace(userID))
}

func (s Service) ListUserPermissions(ctx context.Context, userID string) ([]string, error) {
	roles, err := s.ListUserRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	permissions := make([]string, 0)
	for _, role := range roles {
		for _, p := range role.Permissions {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			permissions = append(permissions, p)
		}
	}
	return permissions, nil
}

// Check evaluates a permission for a user and denies by default when the
// lookup fails.
func (s Service) Check(ctx context.Context, userID, permission string) (entities.Decision, error) {
	if strings.TrimSpace(userID) == "" {
		return entities.Decision{}, domainerrors.ErrInvalidUserID
	}
	if strings.TrimSpace(permission) == "" {
		return entities.Decision{}, domainerrors.ErrInvalidPermission
	}

	logger := ResolveLogger(s.Logger)
	now := s.Clock.Now()

	permissions, err := s.ListUserPermissions(ctx, userID)
	if err != nil {
		logger.Error("permission lookup failed, deny by default",
			"event", "authz_permission_lookup_failed",
			"module", "identity-access/authorization-service",
			"layer", "application",
			"user_id", userID,
			"permission", permission,
			"error", err.Error(),
		)
		return entities.Decision{
			UserID:     userID,
			Permission: permission,
			Allowed:    false,
			Reason:     "deny_by_default",
			CheckedAt:  now,
		}, nil
	}

	allowed := services.GrantsPermission(permissions, permission)
	reason := "permission_granted"
	if !allowed {
		reason = "permission_missing"
	}
	return entities.Decision{
		UserID:     userID,
		Permission: permission,
		Allowed:    allowed,
		Reason:     reason,
		CheckedAt:  now,
	}, nil
}

func normalizePermissions(raw []string) ([]string, error) {
	permissions := make([]string, 0, len(raw))
	seen := make(map[string]struct{})
	for _, p := range raw {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, domainerrors.ErrInvalidPermission
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		permissions = append(permissions, p)
	}
	return permissions, nil
}
