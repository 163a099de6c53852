package dao

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	apperrors "user-api/pkg/common/errors"
	"user-api/pkg/core/user/model"
	"user-api/pkg/core/user/repository/dao"
)

type GormUserRepository struct {
	db *gorm.DB
}

var _ dao.UserRepository = (*GormUserRepository)(nil)

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// QueryByID loads a user by primary key
func (r *GormUserRepository) QueryByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).
		Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return model.User{}, apperrors.ErrUserNotFound
	case err != nil:
		return model.User{}, fmt.Errorf("user query failed: %w", apperrors.WrapGormError(err))
	default:
		return user, nil
	}
}

// QueryByEmail loads a user by login identifier
func (r *GormUserRepository) QueryByEmail(ctx context.Context, email string) (model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).
		Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return model.User{}, apperrors.ErrUserNotFound
	case err != nil:
		return model.User{}, fmt.Errorf("user query failed: %w", apperrors.WrapGormError(err))
	default:
		return user, nil
	}
}

// Check email existence
func (r *GormUserRepository) IsEmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", apperrors.WrapGormError(err))
	}
	return count > 0, nil
}

// Create new user with transaction; the ID is assigned by model.User.BeforeCreate
func (r *GormUserRepository) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			if apperrors.IsDuplicateError(err) {
				return apperrors.ErrDuplicateEntry
			}
			return fmt.Errorf("user creation failed: %w", apperrors.WrapGormError(err))
		}
		return nil
	})
	if err != nil {
		return model.User{}, err
	}
	return user, nil
}
