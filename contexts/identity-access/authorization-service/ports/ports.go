package ports

import (
	"context"
	"time"

	"vexen/contexts/identity-access/authorization-service/domain/entities"
)

// Repository is the persistence port for roles and assignments.
type Repository interface {
	CreateRole(ctx context.Context, role entities.Role) error
	GetRole(ctx context.Context, roleID string) (entities.Role, error)
	GetRoleByName(ctx context.Context, name string) (entities.Role, error)
	ListRoles(ctx context.Context) ([]entities.Role, error)
	UpdateRole(ctx context.Context, role entities.Role) error
	DeleteRole(ctx context.Context, roleID string) error

	AssignRole(ctx context.Context, assignment entities.Assignment) error
	RevokeRole(ctx context.Context, userID, roleID string) error
	ListUserRoles(ctx context.Context, userID string) ([]entities.Role, error)
}

// Clock abstracts wall-clock time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator mints role and assignment ids.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
