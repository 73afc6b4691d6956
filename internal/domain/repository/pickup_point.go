package repository

import (
	"context"

	"github.com/thermopolio/thermopolio/internal/domain/model"
)

// PickupPointRepository describes persistence operations for pickup points.
type PickupPointRepository interface {
	Create(ctx context.Context, point model.PickupPoint) (*model.PickupPoint, error)
	GetByID(ctx context.Context, id int64) (*model.PickupPoint, error)
	// List returns points of restaurantID, or every point when restaurantID is zero.
	List(ctx context.Context, restaurantID int64) ([]model.PickupPoint, error)
}
