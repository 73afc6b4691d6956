package usecase

import (
	"context"
	"errors"

	domainErrors "github.com/thermopolio/thermopolio/internal/domain/errors"
	"github.com/thermopolio/thermopolio/internal/domain/model"
	"github.com/thermopolio/thermopolio/internal/domain/repository"
	"github.com/thermopolio/thermopolio/internal/geo"
)

// RestaurantUseCase exposes restaurant and charity directories and customer favourites.
type RestaurantUseCase struct {
	users repository.UserRepository
}

// NewRestaurantUseCase constructs RestaurantUseCase.
func NewRestaurantUseCase(users repository.UserRepository) *RestaurantUseCase {
	return &RestaurantUseCase{users: users}
}

// List returns every restaurant.
func (u *RestaurantUseCase) List(ctx context.Context) ([]model.User, error) {
	return u.users.ListByType(ctx, model.UserTypeRestaurant)
}

// Get returns a single restaurant. Accounts of other roles are reported as missing.
func (u *RestaurantUseCase) Get(ctx context.Context, id int64) (*model.User, error) {
	return u.lookup(ctx, id)
}

// Nearby returns restaurants within radiusKm of origin, closest first.
func (u *RestaurantUseCase) Nearby(ctx context.Context, origin geo.Point, radiusKm float64) ([]geo.Located[model.User], error) {
	if !origin.Valid() {
		return nil, domainErrors.Invalid("lat", "coordinate non valide")
	}
	restaurants, err := u.users.ListByType(ctx, model.UserTypeRestaurant)
	if err != nil {
		return nil, err
	}
	return geo.Nearby(origin, restaurants, radiusKm), nil
}

// Charities returns every onlus account.
func (u *RestaurantUseCase) Charities(ctx context.Context) ([]model.User, error) {
	return u.users.ListByType(ctx, model.UserTypeOnlus)
}

// AddFavorite stores restaurantID among the customer's favourites.
func (u *RestaurantUseCase) AddFavorite(ctx context.Context, actor model.Actor, restaurantID int64) error {
	if err := requireRole(actor, model.UserTypeCustomer); err != nil {
		return err
	}
	if _, err := u.lookup(ctx, restaurantID); err != nil {
		return err
	}
	return u.users.AddFavorite(ctx, actor.UserID, restaurantID)
}

// RemoveFavorite drops restaurantID from the customer's favourites.
func (u *RestaurantUseCase) RemoveFavorite(ctx context.Context, actor model.Actor, restaurantID int64) error {
	if err := requireRole(actor, model.UserTypeCustomer); err != nil {
		return err
	}
	return u.users.RemoveFavorite(ctx, actor.UserID, restaurantID)
}

func (u *RestaurantUseCase) lookup(ctx context.Context, id int64) (*model.User, error) {
	usr, err := u.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, notFound("restaurant", id, domainErrors.ErrNotFound)
		}
		return nil, err
	}
	if usr.UserType != model.UserTypeRestaurant {
		return nil, notFound("restaurant", id, domainErrors.ErrNotFound)
	}
	return usr, nil
}
