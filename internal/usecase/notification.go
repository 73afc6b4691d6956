package usecase

import (
	"context"
	"fmt"
	"log/slog"

	domainErrors "github.com/thermopolio/thermopolio/internal/domain/errors"
	"github.com/thermopolio/thermopolio/internal/domain/model"
	"github.com/thermopolio/thermopolio/internal/domain/repository"
)

// NotificationUseCase stores and delivers user notifications.
type NotificationUseCase struct {
	notifications repository.NotificationRepository
	users         repository.UserRepository
	pusher        Pusher
	logger        *slog.Logger
}

// NewNotificationUseCase constructs NotificationUseCase.
func NewNotificationUseCase(
	notifications repository.NotificationRepository,
	users repository.UserRepository,
	pusher Pusher,
	logger *slog.Logger,
) *NotificationUseCase {
	return &NotificationUseCase{notifications: notifications, users: users, pusher: pusher, logger: logger}
}

// List returns the caller's notifications, newest first.
func (u *NotificationUseCase) List(ctx context.Context, actor model.Actor) ([]model.Notification, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	return u.notifications.ListByUser(ctx, actor.UserID)
}

// MarkRead flags one of the caller's notifications as read.
func (u *NotificationUseCase) MarkRead(ctx context.Context, actor model.Actor, id int64) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	n, err := u.notifications.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if n.UserID != actor.UserID {
		return fmt.Errorf("notification %d: %w", id, domainErrors.ErrForbidden)
	}
	if n.Read {
		return nil
	}
	return u.notifications.MarkRead(ctx, id)
}

// Deliver persists n, pushes it to the recipient's live connections and
// sends the e-mail copy.
func (u *NotificationUseCase) Deliver(ctx context.Context, n model.Notification) error {
	if n.UserID <= 0 {
		return domainErrors.Invalid("userId", "destinatario mancante")
	}

	stored, err := u.notifications.Create(ctx, n)
	if err != nil {
		return err
	}

	delivered := u.pusher.Push(stored.UserID, *stored)
	u.logger.Debug("notification pushed",
		slog.Int64("notification_id", stored.ID),
		slog.Int64("user_id", stored.UserID),
		slog.Int("connections", delivered),
	)

	u.sendEmail(ctx, *stored)
	return nil
}

// sendEmail only logs the message; there is no mail transport.
func (u *NotificationUseCase) sendEmail(ctx context.Context, n model.Notification) {
	usr, err := u.users.GetByID(ctx, n.UserID)
	if err != nil {
		u.logger.Warn("email recipient lookup failed", slog.Int64("user_id", n.UserID), slog.Any("error", err))
		return
	}
	if usr.Email == "" {
		return
	}
	u.logger.Info("email notification",
		slog.String("to", usr.Email),
		slog.String("subject", n.Title),
		slog.String("type", string(n.Type)),
	)
}
