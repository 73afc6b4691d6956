package repository

import (
	"context"

	"github.com/thermopolio/thermopolio/internal/domain/model"
)

// PlanRepository describes persistence operations for subscription plans.
type PlanRepository interface {
	Create(ctx context.Context, plan model.SubscriptionPlan) (*model.SubscriptionPlan, error)
	GetByID(ctx context.Context, id int64) (*model.SubscriptionPlan, error)
	// List returns plans of restaurantID, or every plan when restaurantID is zero.
	List(ctx context.Context, restaurantID int64) ([]model.SubscriptionPlan, error)
	Update(ctx context.Context, plan model.SubscriptionPlan) (*model.SubscriptionPlan, error)
	Delete(ctx context.Context, id int64) error
}
