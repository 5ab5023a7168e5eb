package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"vexen/contexts/identity-access/authorization-service/domain/entities"
	domainerrors "vexen/contexts/identity-access/authorization-service/domain/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolationCode = "23505"

// Repository is the PostgreSQL adapter for roles and assignments.
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

func (r *Repository) CreateRole(ctx context.Context, role entities.Role) error {
	row, err := toRoleModel(role)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrRoleExists
		}
		return err
	}
	return nil
}

func (r *Repository) GetRole(ctx context.Context, roleID string) (entities.Role, error) {
	var row roleModel
	err := r.db.WithContext(ctx).
		Where("role_id = ?", roleID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Role{}, domainerrors.ErrRoleNotFound
		}
		return entities.Role{}, err
	}
	return row.toEntity()
}

func (r *Repository) GetRoleByName(ctx context.Context, name string) (entities.Role, error) {
	var row roleModel
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Role{}, domainerrors.ErrRoleNotFound
		}
		return entities.Role{}, err
	}
	return row.toEntity()
}

func (r *Repository) ListRoles(ctx context.Context) ([]entities.Role, error) {
	var rows []roleModel
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	roles := make([]entities.Role, 0, len(rows))
	for _, row := range rows {
		role, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, nil
}

func (r *Repository) UpdateRole(ctx context.Context, role entities.Role) error {
	row, err := toRoleModel(role)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Model(&roleModel{}).
		Where("role_id = ?", role.RoleID).
		Updates(map[string]any{
			"description": row.Description,
			"permissions": row.Permissions,
			"updated_at":  row.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrRoleNotFound
	}
	return nil
}

func (r *Repository) DeleteRole(ctx context.Context, roleID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("role_id = ?", roleID).Delete(&roleModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrRoleNotFound
		}
		return tx.Where("role_id = ?", roleID).Delete(&assignmentModel{}).Error
	})
}

func (r *Repository) AssignRole(ctx context.Context, assignment entities.Assignment) error {
	row := assignmentModel{
		AssignmentID: assignment.AssignmentID,
		UserID:       assignment.UserID,
		RoleID:       assignment.RoleID,
		AssignedAt:   assignment.AssignedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrRoleAlreadyAssigned
		}
		return err
	}
	return nil
}

func (r *Repository) RevokeRole(ctx context.Context, userID, roleID string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND role_id = ?", userID, roleID).
		Delete(&assignmentModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrRoleNotAssigned
	}
	return nil
}

func (r *Repository) ListUserRoles(ctx context.Context, userID string) ([]entities.Role, error) {
	var rows []roleModel
	if err := r.db.WithContext(ctx).
		Model(&roleModel{}).
		Joins("JOIN role_assignments ON role_assignments.role_id = roles.role_id").
		Where("role_assignments.user_id = ?", userID).
		Order("roles.name ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	roles := make([]entities.Role, 0, len(rows))
	for _, row := range rows {
		role, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, nil
}

type roleModel struct {
	RoleID      string    `gorm:"column:role_id;primaryKey"`
	Name        string    `gorm:"column:name"`
	Description string    `gorm:"column:description"`
	Permissions string    `gorm:"column:permissions"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (roleModel) TableName() string {
	return "roles"
}

func (m roleModel) toEntity() (entities.Role, error) {
	var permissions []string
	if m.Permissions != "" {
		if err := json.Unmarshal([]byte(m.Permissions), &permissions); err != nil {
			return entities.Role{}, err
		}
	}
	return entities.Role{
		RoleID:      m.RoleID,
		Name:        m.Name,
		Description: m.Description,
		Permissions: permissions,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}, nil
}

func toRoleModel(role entities.Role) (roleModel, error) {
	permissions, err := json.Marshal(role.Permissions)
	if err != nil {
		return roleModel{}, err
	}
	return roleModel{
		RoleID:      role.RoleID,
		Name:        role.Name,
		Description: role.Description,
		Permissions: string(permissions),
		CreatedAt:   role.CreatedAt,
		UpdatedAt:   role.UpdatedAt,
	}, nil
}

type assignmentModel struct {
	AssignmentID string    `gorm:"column:assignment_id;primaryKey"`
	UserID       string    `gorm:"column:user_id"`
	RoleID       string    `gorm:"column:role_id"`
	AssignedAt   time.Time `gorm:"column:assigned_at"`
}

func (assignmentModel) TableName() string {
	return "role_assignments"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
