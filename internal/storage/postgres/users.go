package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/thermopolio/thermopolio/internal/domain/errors"
	"github.com/thermopolio/thermopolio/internal/domain/model"
)

type userRepository struct {
	storage *Storage
}

const userColumns = `id, username, email, password_hash, user_type, name, phone, address,
       latitude, longitude, business_name, business_type, assistance_type,
       activities, favorite_restaurants, created_at`

func scanUser(row pgx.Row, u *model.User) error {
	return row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.UserType, &u.Name, &u.Phone, &u.Address,
		&u.Latitude, &u.Longitude, &u.BusinessName, &u.BusinessType, &u.AssistanceType,
		&u.Activities, &u.FavoriteRestaurants, &u.CreatedAt,
	)
}

func (r *userRepository) Create(ctx context.Context, user model.User) (*model.User, error) {
	const query = `INSERT INTO users (username, email, password_hash, user_type, name, phone, address,
                       latitude, longitude, business_name, business_type, assistance_type, activities)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
                   RETURNING id, created_at`
	activities := user.Activities
	if activities == nil {
		activities = []string{}
	}
	err := r.storage.pool.QueryRow(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.UserType, user.Name, user.Phone, user.Address,
		user.Latitude, user.Longitude, user.BusinessName, user.BusinessType, user.AssistanceType, activities,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	user.Activities = activities
	user.FavoriteRestaurants = []int64{}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username=$1`
	var u model.User
	if err := scanUser(r.storage.pool.QueryRow(ctx, query, username), &u); err != nil {
		return nil, translateError(err)
	}
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	var u model.User
	if err := scanUser(r.storage.pool.QueryRow(ctx, query, id), &u); err != nil {
		return nil, translateError(err)
	}
	return &u, nil
}

func (r *userRepository) ListByType(ctx context.Context, userType model.UserType) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_type=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, userType)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanUser)
}

func (r *userRepository) AddFavorite(ctx context.Context, userID, restaurantID int64) error {
	const query = `UPDATE users
                   SET favorite_restaurants = array_append(favorite_restaurants, $2)
                   WHERE id=$1 AND NOT ($2 = ANY(favorite_restaurants))`
	return r.updateFavorites(ctx, query, userID, restaurantID)
}

func (r *userRepository) RemoveFavorite(ctx context.Context, userID, restaurantID int64) error {
	const query = `UPDATE users
                   SET favorite_restaurants = array_remove(favorite_restaurants, $2)
                   WHERE id=$1`
	return r.updateFavorites(ctx, query, userID, restaurantID)
}

// updateFavorites treats an untouched row as success when the user exists,
// so adding an existing favourite is idempotent.
func (r *userRepository) updateFavorites(ctx context.Context, query string, userID, restaurantID int64) error {
	tag, err := r.storage.pool.Exec(ctx, query, userID, restaurantID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := r.storage.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id=$1)`, userID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("user %d: %w", userID, domainErrors.ErrNotFound)
	}
	return nil
}
