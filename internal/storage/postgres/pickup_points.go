package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/thermopolio/thermopolio/internal/domain/model"
)

type pickupPointRepository struct {
	storage *Storage
}

const pickupPointColumns = `id, restaurant_id, name, address, latitude, longitude, business_hours, created_at`

func scanPickupPoint(row pgx.Row, p *model.PickupPoint) error {
	return row.Scan(&p.ID, &p.RestaurantID, &p.Name, &p.Address, &p.Latitude, &p.Longitude, &p.BusinessHours, &p.CreatedAt)
}

func (r *pickupPointRepository) Create(ctx context.Context, point model.PickupPoint) (*model.PickupPoint, error) {
	query := `INSERT INTO pickup_points (restaurant_id, name, address, latitude, longitude, business_hours)
              VALUES ($1, $2, $3, $4, $5, $6)
              RETURNING ` + pickupPointColumns
	var created model.PickupPoint
	row := r.storage.pool.QueryRow(ctx, query, point.RestaurantID, point.Name, point.Address, point.Latitude, point.Longitude, point.BusinessHours)
	if err := scanPickupPoint(row, &created); err != nil {
		return nil, translateError(err)
	}
	return &created, nil
}

func (r *pickupPointRepository) GetByID(ctx context.Context, id int64) (*model.PickupPoint, error) {
	query := `SELECT ` + pickupPointColumns + ` FROM pickup_points WHERE id=$1`
	var p model.PickupPoint
	if err := scanPickupPoint(r.storage.pool.QueryRow(ctx, query, id), &p); err != nil {
		return nil, translateError(err)
	}
	return &p, nil
}

func (r *pickupPointRepository) List(ctx context.Context, restaurantID int64) ([]model.PickupPoint, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if restaurantID > 0 {
		query := `SELECT ` + pickupPointColumns + ` FROM pickup_points WHERE restaurant_id=$1 ORDER BY id`
		rows, err = r.storage.pool.Query(ctx, query, restaurantID)
	} else {
		query := `SELECT ` + pickupPointColumns + ` FROM pickup_points ORDER BY id`
		rows, err = r.storage.pool.Query(ctx, query)
	}
	if err != nil {
		return nil, err
	}
	return collect(rows, scanPickupPoint)
}
