package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	domainErrors "github.com/thermopolio/thermopolio/internal/domain/errors"
	"github.com/thermopolio/thermopolio/internal/domain/model"
	"github.com/thermopolio/thermopolio/internal/domain/repository"
)

const maxCommentLength = 1000

// ReviewUseCase manages customer reviews of restaurants.
type ReviewUseCase struct {
	reviews  repository.ReviewRepository
	users    repository.UserRepository
	plans    repository.PlanRepository
	notifier Notifier
}

// NewReviewUseCase constructs ReviewUseCase.
func NewReviewUseCase(
	reviews repository.ReviewRepository,
	users repository.UserRepository,
	plans repository.PlanRepository,
	notifier Notifier,
) *ReviewUseCase {
	return &ReviewUseCase{reviews: reviews, users: users, plans: plans, notifier: notifier}
}

// List returns reviews of a plan, a restaurant or all of them.
func (u *ReviewUseCase) List(ctx context.Context, filter model.ReviewFilter) ([]model.Review, error) {
	return u.reviews.List(ctx, filter)
}

// Create records a review written by the calling customer.
func (u *ReviewUseCase) Create(ctx context.Context, actor model.Actor, review model.Review) (*model.Review, error) {
	if err := requireRole(actor, model.UserTypeCustomer); err != nil {
		return nil, err
	}

	review.Comment = strings.TrimSpace(review.Comment)
	var fields []domainErrors.FieldError
	if review.Rating < model.MinRating || review.Rating > model.MaxRating {
		fields = append(fields, domainErrors.FieldError{
			Field:   "rating",
			Message: fmt.Sprintf("il voto deve essere compreso tra %d e %d", model.MinRating, model.MaxRating),
		})
	}
	if utf8.RuneCountInString(review.Comment) > maxCommentLength {
		fields = append(fields, domainErrors.FieldError{Field: "comment", Message: "commento troppo lungo"})
	}
	if len(fields) > 0 {
		return nil, &domainErrors.ValidationError{Fields: fields}
	}

	restaurant, err := u.users.GetByID(ctx, review.RestaurantID)
	if err != nil && !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}
	if err != nil || restaurant.UserType != model.UserTypeRestaurant {
		return nil, notFound("restaurant", review.RestaurantID, domainErrors.ErrNotFound)
	}

	if review.PlanID != nil {
		plan, err := u.plans.GetByID(ctx, *review.PlanID)
		if err != nil {
			return nil, err
		}
		if plan.RestaurantID != restaurant.ID {
			return nil, domainErrors.Invalid("planId", "il piano non appartiene al ristorante")
		}
	}

	review.CustomerID = actor.UserID
	created, err := u.reviews.Create(ctx, review)
	if err != nil {
		return nil, err
	}

	u.notifier.Notify(ctx, model.Notification{
		UserID:    restaurant.ID,
		Type:      model.NotificationReviewNew,
		Title:     "Nuova recensione",
		Message:   fmt.Sprintf("Hai ricevuto una recensione da %d stelle.", created.Rating),
		RelatedID: int64Ptr(created.ID),
	})
	return created, nil
}
