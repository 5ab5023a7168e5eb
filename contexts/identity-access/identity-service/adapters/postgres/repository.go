package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"vexen/contexts/identity-access/identity-service/domain/entities"
	domainerrors "vexen/contexts/identity-access/identity-service/domain/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolationCode = "23505"

// Repository is the PostgreSQL adapter for identity persistence. It also
// serves as the directory read surface handed to other subsystems.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) Create(ctx context.Context, identity entities.Identity) error {
	row := toModel(identity)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, userID string) (entities.Identity, error) {
	var row identityModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Identity{}, domainerrors.ErrIdentityNotFound
		}
		return entities.Identity{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (entities.Identity, error) {
	var row identityModel
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Identity{}, domainerrors.ErrIdentityNotFound
		}
		return entities.Identity{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) List(ctx context.Context, limit, offset int) ([]entities.Identity, error) {
	var rows []identityModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]entities.Identity, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) Update(ctx context.Context, identity entities.Identity) error {
	row := toModel(identity)
	result := r.db.WithContext(ctx).
		Model(&identityModel{}).
		Where("user_id = ?", identity.UserID).
		Updates(map[string]any{
			"display_name": row.DisplayName,
			"status":       row.Status,
			"updated_at":   row.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrIdentityNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, userID string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&identityModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrIdentityNotFound
	}
	return nil
}

// Lookup implements ports.Directory: the key is a user id or an email.
func (r *Repository) Lookup(ctx context.Context, key string) (entities.Identity, error) {
	identity, err := r.Get(ctx, key)
	if err == nil {
		return identity, nil
	}
	if !errors.Is(err, domainerrors.ErrIdentityNotFound) {
		return entities.Identity{}, err
	}
	if strings.Contains(key, "@") {
		return r.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(key)))
	}
	return entities.Identity{}, domainerrors.ErrIdentityNotFound
}

type identityModel struct {
	UserID      string    `gorm:"column:user_id;primaryKey"`
	Email       string    `gorm:"column:email"`
	DisplayName string    `gorm:"column:display_name"`
	Status      string    `gorm:"column:status"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (identityModel) TableName() string {
	return "identities"
}

func (m identityModel) toEntity() entities.Identity {
	return entities.Identity{
		UserID:      m.UserID,
		Email:       m.Email,
		DisplayName: m.DisplayName,
		Status:      entities.IdentityStatus(m.Status),
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

func toModel(identity entities.Identity) identityModel {
	return identityModel{
		UserID:      identity.UserID,
		Email:       identity.Email,
		DisplayName: identity.DisplayName,
		Status:      string(identity.Status),
		CreatedAt:   identity.CreatedAt,
		UpdatedAt:   identity.UpdatedAt,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
