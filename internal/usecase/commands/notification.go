package commands

import (
	"context"

	"studiohub/internal/pkg/errs"
	"studiohub/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrNotificationNotFound = errs.New("notification not found")

type NotificationCommands interface {
	MarkRead(ctx context.Context, actorID, notificationID uuid.UUID) error
}

type notificationCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewNotificationCommands(uow shared.UnitOfWork) NotificationCommands {
	return &notificationCommandsImpl{uow: uow}
}

// MarkRead only touches the actor's own notifications; a foreign or
// unknown ID looks the same as a missing one.
func (n *notificationCommandsImpl) MarkRead(ctx context.Context, actorID, notificationID uuid.UUID) error {
	return n.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rows, err := tx.Notifications().MarkRead(ctx, notificationID, actorID)
		if err != nil {
			return markInfra(err)
		}
		if rows == 0 {
			return ErrNotificationNotFound
		}
		return nil
	})
}
