package usecase

import (
	"context"
	"fmt"

	domainErrors "github.com/thermopolio/thermopolio/internal/domain/errors"
	"github.com/thermopolio/thermopolio/internal/domain/model"
)

// Notifier publishes notifications without blocking the caller.
type Notifier interface {
	Notify(ctx context.Context, n model.Notification)
}

// Pusher delivers a payload to a user's live connections.
type Pusher interface {
	Push(userID int64, payload any) int
}

func requireActor(actor model.Actor) error {
	if !actor.Authenticated() {
		return domainErrors.ErrUnauthenticated
	}
	return nil
}

func requireRole(actor model.Actor, role model.UserType) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if actor.UserType != role {
		return fmt.Errorf("%w: requires %s", domainErrors.ErrForbidden, role)
	}
	return nil
}

func notFound(entity string, id int64, err error) error {
	return fmt.Errorf("%s %d: %w", entity, id, err)
}

func int64Ptr(v int64) *int64 {
	return &v
}
