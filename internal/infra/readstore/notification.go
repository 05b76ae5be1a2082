package readstore

import (
	"context"

	"studiohub/internal/infra"
	"studiohub/internal/infra/db"
	"studiohub/internal/usecase/queries"

	"github.com/google/uuid"
)

type NotificationReadStore struct {
	db db.DBTX
}

func NewNotificationReadStore(db db.DBTX) *NotificationReadStore {
	return &NotificationReadStore{db: db}
}

func (r *NotificationReadStore) FindByUserID(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.NotificationView, error) {
	const query = `
		SELECT id, kind, title, message, ref_kind, ref_id, read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list notifications", err)
	}
	defer rows.Close()

	var result []*queries.NotificationView
	for rows.Next() {
		var v queries.NotificationView
		err := rows.Scan(&v.ID, &v.Kind, &v.Title, &v.Message, &v.RefKind, &v.RefID, &v.IsRead, &v.CreatedAt)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan notification row", err)
		}
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate notification rows", err)
	}
	return result, nil
}

func (r *NotificationReadStore) CountUnreadByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	const query = `SELECT count(*) FROM notifications WHERE user_id = $1 AND NOT read`

	var count int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("failed to count unread notifications", err)
	}
	return count, nil
}
