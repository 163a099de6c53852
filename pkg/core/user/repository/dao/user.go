package dao

import (
	"context"

	"github.com/google/uuid"
	"user-api/pkg/core/user/model"
)

type UserRepository interface {
	QueryByID(ctx context.Context, id uuid.UUID) (model.User, error)
	QueryByEmail(ctx context.Context, email string) (model.User, error)
	IsEmailExists(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, user model.User) (model.User, error) // returns the saved record with its ID
}
