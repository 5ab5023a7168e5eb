package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"vexen/contexts/identity-access/authentication-service/domain/entities"
	domainerrors "vexen/contexts/identity-access/authentication-service/domain/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolationCode = "23505"

// Repository is the PostgreSQL adapter for credentials and refresh tokens.
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

func (r *Repository) CreateCredential(ctx context.Context, credential entities.Credential) error {
	row := credentialModel{
		UserID:       credential.UserID,
		Email:        credential.Email,
		PasswordHash: credential.PasswordHash,
		CreatedAt:    credential.CreatedAt,
		UpdatedAt:    credential.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrCredentialExists
		}
		return err
	}
	return nil
}

func (r *Repository) GetCredential(ctx context.Context, userID string) (entities.Credential, error) {
	var row credentialModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Credential{}, domainerrors.ErrCredentialNotFound
		}
		return entities.Credential{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetCredentialByEmail(ctx context.Context, email string) (entities.Credential, error) {
	var row credentialModel
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Credential{}, domainerrors.ErrCredentialNotFound
		}
		return entities.Credential{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) DeleteCredential(ctx context.Context, userID string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&credentialModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCredentialNotFound
	}
	return nil
}

func (r *Repository) StoreRefreshToken(ctx context.Context, token entities.RefreshToken) error {
	row := refreshTokenModel{
		TokenHash: token.TokenHash,
		UserID:    token.UserID,
		ExpiresAt: token.ExpiresAt,
		RevokedAt: token.RevokedAt,
		CreatedAt: token.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) GetRefreshToken(ctx context.Context, tokenHash string) (entities.RefreshToken, error) {
	var row refreshTokenModel
	err := r.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.RefreshToken{}, domainerrors.ErrTokenInvalid
		}
		return entities.RefreshToken{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) RevokeRefreshToken(ctx context.Context, tokenHash string, now time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&refreshTokenModel{}).
		Where("token_hash = ? AND revoked_at IS NULL", tokenHash).
		Update("revoked_at", now)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// already revoked or unknown: distinguish for the caller
		var row refreshTokenModel
		err := r.db.WithContext(ctx).
			Where("token_hash = ?", tokenHash).
			First(&row).
			Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainerrors.ErrTokenInvalid
		}
		return err
	}
	return nil
}

type credentialModel struct {
	UserID       string    `gorm:"column:user_id;primaryKey"`
	Email        string    `gorm:"column:email"`
	PasswordHash string    `gorm:"column:password_hash"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (credentialModel) TableName() string {
	return "auth_credentials"
}

func (m credentialModel) toEntity() entities.Credential {
	return entities.Credential{
		UserID:       m.UserID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
}

type refreshTokenModel struct {
	TokenHash string     `gorm:"column:token_hash;primaryKey"`
	UserID    string     `gorm:"column:user_id"`
	ExpiresAt time.Time  `gorm:"column:expires_at"`
	RevokedAt *time.Time `gorm:"column:revoked_at"`
	CreatedAt time.Time  `gorm:"column:created_at"`
}

func (refreshTokenModel) TableName() string {
	return "auth_refresh_tokens"
}

func (m refreshTokenModel) toEntity() entities.RefreshToken {
	token := entities.RefreshToken{
		TokenHash: m.TokenHash,
		UserID:    m.UserID,
		ExpiresAt: m.ExpiresAt.UTC(),
		CreatedAt: m.CreatedAt.UTC(),
	}
	if m.RevokedAt != nil {
		revoked := m.RevokedAt.UTC()
		token.RevokedAt = &revoked
	}
	return token
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
