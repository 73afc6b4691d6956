package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/thermopolio/thermopolio/internal/domain/model"
)

type planRepository struct {
	storage *Storage
}

const planColumns = `id, restaurant_id, name, description, plan_type, base_price, active, created_at`

func scanPlan(row pgx.Row, p *model.SubscriptionPlan) error {
	return row.Scan(&p.ID, &p.RestaurantID, &p.Name, &p.Description, &p.PlanType, &p.BasePrice, &p.Active, &p.CreatedAt)
}

func (r *planRepository) Create(ctx context.Context, plan model.SubscriptionPlan) (*model.SubscriptionPlan, error) {
	query := `INSERT INTO subscription_plans (restaurant_id, name, description, plan_type, base_price, active)
              VALUES ($1, $2, $3, $4, $5, $6)
              RETURNING ` + planColumns
	var created model.SubscriptionPlan
	row := r.storage.pool.QueryRow(ctx, query, plan.RestaurantID, plan.Name, plan.Description, plan.PlanType, plan.BasePrice, plan.Active)
	if err := scanPlan(row, &created); err != nil {
		return nil, translateError(err)
	}
	return &created, nil
}

func (r *planRepository) GetByID(ctx context.Context, id int64) (*model.SubscriptionPlan, error) {
	query := `SELECT ` + planColumns + ` FROM subscription_plans WHERE id=$1`
	var p model.SubscriptionPlan
	if err := scanPlan(r.storage.pool.QueryRow(ctx, query, id), &p); err != nil {
		return nil, translateError(err)
	}
	return &p, nil
}

func (r *planRepository) List(ctx context.Context, restaurantID int64) ([]model.SubscriptionPlan, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if restaurantID > 0 {
		query := `SELECT ` + planColumns + ` FROM subscription_plans WHERE restaurant_id=$1 ORDER BY id`
		rows, err = r.storage.pool.Query(ctx, query, restaurantID)
	} else {
		query := `SELECT ` + planColumns + ` FROM subscription_plans ORDER BY id`
		rows, err = r.storage.pool.Query(ctx, query)
	}
	if err != nil {
		return nil, err
	}
	return collect(rows, scanPlan)
}

func (r *planRepository) Update(ctx context.Context, plan model.SubscriptionPlan) (*model.SubscriptionPlan, error) {
	query := `UPDATE subscription_plans
              SET name=$2, description=$3, plan_type=$4, base_price=$5, active=$6
              WHERE id=$1
              RETURNING ` + planColumns
	var updated model.SubscriptionPlan
	row := r.storage.pool.QueryRow(ctx, query, plan.ID, plan.Name, plan.Description, plan.PlanType, plan.BasePrice, plan.Active)
	if err := scanPlan(row, &updated); err != nil {
		return nil, translateError(err)
	}
	return &updated, nil
}

// Delete removes a plan. Plans referenced by orders cannot be removed and yield ErrConflict.
func (r *planRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM subscription_plans WHERE id=$1`, id)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return translateError(pgx.ErrNoRows)
	}
	return nil
}
