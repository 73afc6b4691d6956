package repository

import (
	"context"
	"time"

	"github.com/thermopolio/thermopolio/internal/domain/model"
)

// SessionRepository stores server-side sessions.
type SessionRepository interface {
	Save(ctx context.Context, session model.Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*model.Session, error)
	Delete(ctx context.Context, id string) error
}
