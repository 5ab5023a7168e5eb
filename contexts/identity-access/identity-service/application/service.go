package application

import (
	"context"
	"log/slog"
	"strings"

	"vexen/contexts/identity-access/identity-service/domain/entities"
	domainerrors "vexen/contexts/identity-access/identity-service/domain/errors"
	"vexen/contexts/identity-access/identity-service/ports"
)

const defaultListLimit = 50

// Service exposes identity CRUD operations over explicit ports.
type Service struct {
	Repo   ports.Repository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

// CreateIdentityRequest carries the caller-supplied fields for Create.
type CreateIdentityRequest struct {
	Email       string
	DisplayName string
}

// UpdateIdentityRequest carries optional updates; nil fields are left unchanged.
type UpdateIdentityRequest struct {
	DisplayName *string
	Status      *entities.IdentityStatus
}

func (s Service) Create(ctx context.Context, req CreateIdentityRequest) (entities.Identity, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return entities.Identity{}, err
	}

	userID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Identity{}, err
	}

	now := s.Clock.Now()
	identity := entities.Identity{
		UserID:      userID,
		Email:       email,
		DisplayName: strings.TrimSpace(req.DisplayName),
		Status:      entities.StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.Create(ctx, identity); err != nil {
		return entities.Identity{}, err
	}

	ResolveLogger(s.Logger).Info("identity created",
		"event", "identity_created",
		"module", "identity-access/identity-service",
		"layer", "application",
		"user_id", identity.UserID,
	)
	return identity, nil
}

func (s Service) Get(ctx context.Context, userID string) (entities.Identity, error) {
	if strings.TrimSpace(userID) == "" {
		return entities.Identity{}, domainerrors.ErrInvalidRequest
	}
	return s.Repo.Get(ctx, strings.TrimSpace(userID))
}

func (s Service) GetByEmail(ctx context.Context, email string) (entities.Identity, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return entities.Identity{}, err
	}
	return s.Repo.GetByEmail(ctx, normalized)
}

func (s Service) List(ctx context.Context, limit, offset int) ([]entities.Identity, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.Repo.List(ctx, limit, offset)
}

func (s Service) Update(ctx context.Context, userID string, req UpdateIdentityRequest) (entities.Identity, error) {
	if strings.TrimSpace(userID) == "" {
		return entities.Identity{}, domainerrors.ErrInvalidRequest
	}

	identity, err := s.Repo.Get(ctx, strings.TrimSpace(userID))
	if err != nil {
		return entities.Identity{}, err
	}

	if req.DisplayName != nil {
		identity.DisplayName = strings.TrimSpace(*req.DisplayName)
	}
	if req.Status != nil {
		switch *req.Status {
		case entities.StatusActive, entities.StatusDisabled:
			identity.Status = *req.Status
		default:
			return entities.Identity{}, domainerrors.ErrInvalidStatus
		}
	}
	identity.UpdatedAt = s.Clock.Now()

	if err := s.Repo.Update(ctx, identity); err != nil {
		return entities.Identity{}, err
	}
	return identity, nil
}

func (s Service) Delete(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return domainerrors.ErrInvalidRequest
	}
	if err := s.Repo.Delete(ctx, strings.TrimSpace(userID)); err != nil {
		return err
	}
	ResolveLogger(s.Logger).Info("identity deleted",
		"event", "identity_deleted",
		"module", "identity-access/identity-service",
		"layer", "application",
		"user_id", strings.TrimSpace(userID),
	)
	return nil
}

func normalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	at := strings.Index(normalized, "@")
	if at <= 0 || at == len(normalized)-1 {
		return "", domainerrors.ErrInvalidEmail
	}
	return normalized, nil
}
