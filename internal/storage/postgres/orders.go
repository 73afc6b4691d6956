package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/thermopolio/thermopolio/internal/domain/errors"
	"github.com/thermopolio/thermopolio/internal/domain/model"
)

type orderRepository struct {
	storage *Storage
}

const orderColumns = `id, customer_id, plan_id, restaurant_id, quantity, delivery_date, status,
       pickup_point_id, notes, created_at, updated_at`

func scanOrder(row pgx.Row, o *model.Order) error {
	return row.Scan(&o.ID, &o.CustomerID, &o.PlanID, &o.RestaurantID, &o.Quantity, &o.DeliveryDate, &o.Status,
		&o.PickupPointID, &o.Notes, &o.CreatedAt, &o.UpdatedAt)
}

func (r *orderRepository) Create(ctx context.Context, order model.NewOrder) (*model.Order, error) {
	query := `INSERT INTO orders (customer_id, plan_id, restaurant_id, quantity, delivery_date, status, pickup_point_id, notes)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
              RETURNING ` + orderColumns
	var created model.Order
	row := r.storage.pool.QueryRow(ctx, query,
		order.CustomerID, order.PlanID, order.RestaurantID, order.Quantity, order.DeliveryDate,
		model.OrderStatusPending, order.PickupPointID, order.Notes,
	)
	if err := scanOrder(row, &created); err != nil {
		return nil, translateError(err)
	}
	return &created, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	return getOrder(ctx, r.storage.pool, id)
}

func getOrder(ctx context.Context, q querier, id int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	var o model.Order
	if err := scanOrder(q.QueryRow(ctx, query, id), &o); err != nil {
		return nil, translateError(err)
	}
	return &o, nil
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE customer_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanOrder)
}

func (r *orderRepository) ListByRestaurant(ctx context.Context, restaurantID int64) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE restaurant_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanOrder)
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id int64, from, to model.OrderStatus) (*model.Order, error) {
	query := `UPDATE orders SET status=$3, updated_at=NOW()
              WHERE id=$1 AND status=$2
              RETURNING ` + orderColumns
	var updated model.Order
	err := scanOrder(r.storage.pool.QueryRow(ctx, query, id, from, to), &updated)
	if err == nil {
		return &updated, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, translateError(err)
	}

	// Either the order is gone or someone moved it first.
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("order %d is no longer %s: %w", id, from, domainErrors.ErrConflict)
}
