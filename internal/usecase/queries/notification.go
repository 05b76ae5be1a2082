package queries

import (
	"context"

	"github.com/google/uuid"
)

type UnreadCount struct {
	Count int64 `json:"count"`
}

type NotificationQueries interface {
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*NotificationView, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (*UnreadCount, error)
}

type NotificationReadStore interface {
	FindByUserID(ctx context.Context, userID uuid.UUID, limit int32) ([]*NotificationView, error)
	CountUnreadByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
}

type notificationQueriesImpl struct {
	readStore NotificationReadStore
}

func NewNotificationQueries(readStore NotificationReadStore) NotificationQueries {
	return &notificationQueriesImpl{readStore: readStore}
}

func (q *notificationQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*NotificationView, error) {
	return q.readStore.FindByUserID(ctx, userID, int32(ValidateLimit(limit)))
}

func (q *notificationQueriesImpl) CountUnread(ctx context.Context, userID uuid.UUID) (*UnreadCount, error) {
	count, err := q.readStore.CountUnreadByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &UnreadCount{Count: count}, nil
}
