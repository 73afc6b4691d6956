package repository

import (
	"context"

	"github.com/thermopolio/thermopolio/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	Create(ctx context.Context, order model.NewOrder) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error)
	ListByRestaurant(ctx context.Context, restaurantID int64) ([]model.Order, error)
	// UpdateStatus moves the order from one status to another. It fails with
	// ErrConflict when the stored status is no longer from.
	UpdateStatus(ctx context.Context, id int64, from, to model.OrderStatus) (*model.Order, error)
}
