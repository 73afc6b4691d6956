package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/thermopolio/thermopolio/internal/domain/model"
)

type reviewRepository struct {
	storage *Storage
}

const reviewColumns = `id, customer_id, restaurant_id, plan_id, rating, comment, created_at`

func scanReview(row pgx.Row, rv *model.Review) error {
	return row.Scan(&rv.ID, &rv.CustomerID, &rv.RestaurantID, &rv.PlanID, &rv.Rating, &rv.Comment, &rv.CreatedAt)
}

func (r *reviewRepository) Create(ctx context.Context, review model.Review) (*model.Review, error) {
	query := `INSERT INTO reviews (customer_id, restaurant_id, plan_id, rating, comment)
              VALUES ($1, $2, $3, $4, $5)
              RETURNING ` + reviewColumns
	var created model.Review
	row := r.storage.pool.QueryRow(ctx, query, review.CustomerID, review.RestaurantID, review.PlanID, review.Rating, review.Comment)
	if err := scanReview(row, &created); err != nil {
		return nil, translateError(err)
	}
	return &created, nil
}

// List filters by plan when set, otherwise by restaurant, otherwise returns everything.
func (r *reviewRepository) List(ctx context.Context, filter model.ReviewFilter) ([]model.Review, error) {
	var (
		rows pgx.Rows
		err  error
	)
	switch {
	case filter.PlanID > 0:
		query := `SELECT ` + reviewColumns + ` FROM reviews WHERE plan_id=$1 ORDER BY created_at DESC`
		rows, err = r.storage.pool.Query(ctx, query, filter.PlanID)
	case filter.RestaurantID > 0:
		query := `SELECT ` + reviewColumns + ` FROM reviews WHERE restaurant_id=$1 ORDER BY created_at DESC`
		rows, err = r.storage.pool.Query(ctx, query, filter.RestaurantID)
	default:
		query := `SELECT ` + reviewColumns + ` FROM reviews ORDER BY created_at DESC`
		rows, err = r.storage.pool.Query(ctx, query)
	}
	if err != nil {
		return nil, err
	}
	return collect(rows, scanReview)
}
