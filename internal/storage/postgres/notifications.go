package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/thermopolio/thermopolio/internal/domain/model"
)

type notificationRepository struct {
	storage *Storage
}

const notificationColumns = `id, user_id, type, title, message, read, related_id, created_at`

func scanNotification(row pgx.Row, n *model.Notification) error {
	return row.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.Read, &n.RelatedID, &n.CreatedAt)
}

func (r *notificationRepository) Create(ctx context.Context, n model.Notification) (*model.Notification, error) {
	query := `INSERT INTO notifications (user_id, type, title, message, related_id)
              VALUES ($1, $2, $3, $4, $5)
              RETURNING ` + notificationColumns
	var created model.Notification
	row := r.storage.pool.QueryRow(ctx, query, n.UserID, n.Type, n.Title, n.Message, n.RelatedID)
	if err := scanNotification(row, &created); err != nil {
		return nil, translateError(err)
	}
	return &created, nil
}

func (r *notificationRepository) GetByID(ctx context.Context, id int64) (*model.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE id=$1`
	var n model.Notification
	if err := scanNotification(r.storage.pool.QueryRow(ctx, query, id), &n); err != nil {
		return nil, translateError(err)
	}
	return &n, nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID int64) ([]model.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanNotification)
}

func (r *notificationRepository) MarkRead(ctx context.Context, id int64) error {
	tag, err := r.storage.pool.Exec(ctx, `UPDATE notifications SET read=TRUE WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return translateError(pgx.ErrNoRows)
	}
	return nil
}
