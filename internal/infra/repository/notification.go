package repository

import (
	"context"

	"studiohub/internal/domain/notification"
	"studiohub/internal/infra/db"

	"github.com/google/uuid"
)

type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(db db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) CreateNotification(ctx context.Context, n *notification.Notification) error {
	const query = `
		INSERT INTO notifications (id, user_id, kind, title, message, ref_kind, ref_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		n.ID, n.UserID, n.Kind, n.Title, n.Message, n.RefKind, n.RefID,
	)
	if err != nil {
		return wrapPgErr("failed to create notification", err)
	}
	return nil
}

func (r *NotificationRepository) CreateActivity(ctx context.Context, a *notification.ActivityRecord) error {
	const query = `
		INSERT INTO activity_records (id, user_id, kind, title, message, ref_kind, ref_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		a.ID, a.UserID, a.Kind, a.Title, a.Message, a.RefKind, a.RefID,
	)
	if err != nil {
		return wrapPgErr("failed to create activity record", err)
	}
	return nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	const query = `
		UPDATE notifications
		SET read = TRUE
		WHERE id = $1 AND user_id = $2`

	tag, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		return 0, wrapPgErr("failed to mark notification read", err)
	}
	return tag.RowsAffected(), nil
}
