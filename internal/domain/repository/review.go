package repository

import (
	"context"

	"github.com/thermopolio/thermopolio/internal/domain/model"
)

// ReviewRepository describes persistence operations with reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review model.Review) (*model.Review, error)
	List(ctx context.Context, filter model.ReviewFilter) ([]model.Review, error)
}
