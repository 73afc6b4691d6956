package usecase

import (
	"context"
	"fmt"
	"strings"

	domainErrors "github.com/thermopolio/thermopolio/internal/domain/errors"
	"github.com/thermopolio/thermopolio/internal/domain/model"
	"github.com/thermopolio/thermopolio/internal/domain/repository"
)

// PlanUseCase manages subscription plans.
type PlanUseCase struct {
	plans repository.PlanRepository
}

// NewPlanUseCase constructs PlanUseCase.
func NewPlanUseCase(plans repository.PlanRepository) *PlanUseCase {
	return &PlanUseCase{plans: plans}
}

// List returns the plans of restaurantID, or all plans when it is zero.
func (u *PlanUseCase) List(ctx context.Context, restaurantID int64) ([]model.SubscriptionPlan, error) {
	return u.plans.List(ctx, restaurantID)
}

// Get returns a single plan.
func (u *PlanUseCase) Get(ctx context.Context, id int64) (*model.SubscriptionPlan, error) {
	return u.plans.GetByID(ctx, id)
}

// Create stores a plan owned by the calling restaurant.
func (u *PlanUseCase) Create(ctx context.Context, actor model.Actor, plan model.SubscriptionPlan) (*model.SubscriptionPlan, error) {
	if err := requireRole(actor, model.UserTypeRestaurant); err != nil {
		return nil, err
	}
	plan.Name = strings.TrimSpace(plan.Name)
	if err := validatePlan(plan); err != nil {
		return nil, err
	}
	plan.RestaurantID = actor.UserID
	return u.plans.Create(ctx, plan)
}

// Update replaces the editable fields of a plan owned by the caller.
func (u *PlanUseCase) Update(ctx context.Context, actor model.Actor, id int64, changes model.SubscriptionPlan) (*model.SubscriptionPlan, error) {
	current, err := u.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	changes.Name = strings.TrimSpace(changes.Name)
	if err := validatePlan(changes); err != nil {
		return nil, err
	}
	current.Name = changes.Name
	current.Description = changes.Description
	current.PlanType = changes.PlanType
	current.BasePrice = changes.BasePrice
	current.Active = changes.Active
	return u.plans.Update(ctx, *current)
}

// Delete removes a plan owned by the caller.
func (u *PlanUseCase) Delete(ctx context.Context, actor model.Actor, id int64) error {
	if _, err := u.owned(ctx, actor, id); err != nil {
		return err
	}
	return u.plans.Delete(ctx, id)
}

func (u *PlanUseCase) owned(ctx context.Context, actor model.Actor, id int64) (*model.SubscriptionPlan, error) {
	if err := requireRole(actor, model.UserTypeRestaurant); err != nil {
		return nil, err
	}
	plan, err := u.plans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan.RestaurantID != actor.UserID {
		return nil, fmt.Errorf("plan %d: %w", id, domainErrors.ErrForbidden)
	}
	return plan, nil
}

func validatePlan(plan model.SubscriptionPlan) error {
	var fields []domainErrors.FieldError
	if plan.Name == "" {
		fields = append(fields, domainErrors.FieldError{Field: "name", Message: "il nome è obbligatorio"})
	}
	if !plan.PlanType.Valid() {
		fields = append(fields, domainErrors.FieldError{Field: "planType", Message: "tipo di piano non valido"})
	}
	if plan.BasePrice <= 0 {
		fields = append(fields, domainErrors.FieldError{Field: "basePrice", Message: "il prezzo deve essere positivo"})
	}
	if len(fields) > 0 {
		return &domainErrors.ValidationError{Fields: fields}
	}
	return nil
}
