package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	apperrors "user-api/pkg/common/errors"
	"user-api/pkg/core/user/model"
	"user-api/pkg/core/user/repository/dao"
)

type UserService interface {
	FindByID(ctx context.Context, id uuid.UUID) (model.User, error)
	CreateUser(ctx context.Context, user model.User) (model.User, error)
	LoadAuthUser(ctx context.Context, email string) (model.AuthUser, error)
}

type userService struct {
	repo       dao.UserRepository
	bcryptCost int
}

func NewUserService(repo dao.UserRepository, bcryptCost int) UserService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &userService{repo: repo, bcryptCost: bcryptCost}
}

func (s *userService) FindByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	user, err := s.repo.QueryByID(ctx, id)
	if errors.Is(err, apperrors.ErrUserNotFound) {
		return model.User{}, apperrors.NewNotFound("User not found with id " + id.String())
	}
	if err != nil {
		return model.User{}, apperrors.NewInternal("failed to load user", err)
	}
	return user, nil
}

// CreateUser stores the password as a bcrypt hash and returns the saved record.
func (s *userService) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	exists, err := s.repo.IsEmailExists(ctx, user.Email)
	if err != nil {
		return model.User{}, apperrors.NewInternal("failed to create user", err)
	}
	if exists {
		return model.User{}, apperrors.NewConflict("Email already registered: " + user.Email)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), s.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return model.User{}, apperrors.NewInvalid("password must not exceed 72 bytes", err)
	}
	if err != nil {
		return model.User{}, apperrors.NewInternal("failed to create user", err)
	}
	user.Password = string(hashed)

	saved, err := s.repo.CreateUser(ctx, user)
	switch {
	case apperrors.IsDuplicateError(err):
		// lost a race with a concurrent insert of the same email
		return model.User{}, apperrors.NewConflict("Email already registered: " + user.Email)
	case err != nil:
		return model.User{}, apperrors.NewInternal("failed to create user", err)
	}
	return saved, nil
}

// LoadAuthUser builds the authentication principal for the given login email.
func (s *userService) LoadAuthUser(ctx context.Context, email string) (model.AuthUser, error) {
	user, err := s.repo.QueryByEmail(ctx, email)
	if errors.Is(err, apperrors.ErrUserNotFound) {
		return model.AuthUser{}, apperrors.NewNotFound("User not found with email " + email)
	}
	if err != nil {
		return model.AuthUser{}, apperrors.NewInternal("failed to load user", err)
	}
	return model.NewAuthUser(user), nil
}
