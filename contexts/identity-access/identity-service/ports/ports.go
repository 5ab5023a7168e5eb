package ports

import (
	"context"
	"time"

	"vexen/contexts/identity-access/identity-service/domain/entities"
)

// Repository is the persistence port for identity records.
type Repository interface {
	Create(ctx context.Context, identity entities.Identity) error
	Get(ctx context.Context, userID string) (entities.Identity, error)
	GetByEmail(ctx context.Context, email string) (entities.Identity, error)
	List(ctx context.Context, limit, offset int) ([]entities.Identity, error)
	Update(ctx context.Context, identity entities.Identity) error
	Delete(ctx context.Context, userID string) error
}

// Directory is the narrow read surface other subsystems receive. The key
// is either a user id or an email address.
type Directory interface {
	Lookup(ctx context.Context, key string) (entities.Identity, error)
}

// Clock abstracts wall-clock time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator mints new user ids.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
