package repository

import (
	"context"

	"github.com/thermopolio/thermopolio/internal/domain/model"
)

// NotificationRepository describes persistence operations with notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n model.Notification) (*model.Notification, error)
	GetByID(ctx context.Context, id int64) (*model.Notification, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Notification, error)
	MarkRead(ctx context.Context, id int64) error
}
