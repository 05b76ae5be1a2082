package commands

import (
	"context"

	"studiohub/internal/domain/club"
	"studiohub/internal/domain/notification"
	"studiohub/internal/pkg/errs"
	"studiohub/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateClubInput struct {
	Name        string
	ClubType    string
	Description string
	Icon        string
}

type ClubCommands interface {
	Create(ctx context.Context, actorID uuid.UUID, in CreateClubInput) (uuid.UUID, error)
}

type clubCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewClubCommands(uow shared.UnitOfWork) ClubCommands {
	return &clubCommandsImpl{uow: uow}
}

// Create provisions a club atomically: the club row, the owner's
// membership, the role grant, and the creation activity all commit
// together or not at all. The activity record is part of the provisioning
// here, unlike dispatcher side effects, because a club without its
// creation trace is considered half-provisioned.
func (c *clubCommandsImpl) Create(ctx context.Context, actorID uuid.UUID, in CreateClubInput) (uuid.UUID, error) {
	entity, err := club.NewClub(actorID, in.Name, club.Type(in.ClubType), in.Description, in.Icon)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Clubs().Create(ctx, entity); err != nil {
			return markInfra(err)
		}
		if err := tx.Clubs().AddMember(ctx, entity.ID(), actorID, club.OwnerMemberRole); err != nil {
			return markInfra(err)
		}
		if err := tx.Clubs().UpsertRoleGrant(ctx, actorID, entity.GrantedRole(), entity.ID()); err != nil {
			return markInfra(err)
		}

		activity := notification.NewActivity(
			actorID, "club", "Club created", entity.Name(), "club", entity.ID(),
		)
		if err := tx.Notifications().CreateActivity(ctx, activity); err != nil {
			return markInfra(err)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	return entity.ID(), nil
}
