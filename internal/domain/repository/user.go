package repository

import (
	"context"

	"github.com/thermopolio/thermopolio/internal/domain/model"
)

// UserRepository describes persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user model.User) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	ListByType(ctx context.Context, userType model.UserType) ([]model.User, error)
	AddFavorite(ctx context.Context, userID, restaurantID int64) error
	RemoveFavorite(ctx context.Context, userID, restaurantID int64) error
}
