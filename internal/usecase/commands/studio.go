package commands

import (
	"context"
	"time"

	"studiohub/internal/domain/studio"
	"studiohub/internal/infra"
	"studiohub/internal/pkg/errs"
	"studiohub/internal/pkg/patch"
	"studiohub/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrMissingStudioPermission = errs.New("party may not create studios")

type CreateStudioInput struct {
	Name            string
	Description     string
	HourlyRateCents int64
}

type UpdateStudioInput struct {
	Name            *string
	Description     *string
	HourlyRateCents *int64
}

type StudioCommands interface {
	Create(ctx context.Context, actorID uuid.UUID, in CreateStudioInput) (uuid.UUID, error)
	Update(ctx context.Context, actorID, studioID uuid.UUID, in UpdateStudioInput) error
	Deactivate(ctx context.Context, actorID, studioID uuid.UUID) error
}

type studioCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewStudioCommands(uow shared.UnitOfWork) StudioCommands {
	return &studioCommandsImpl{uow: uow}
}

func (s *studioCommandsImpl) Create(ctx context.Context, actorID uuid.UUID, in CreateStudioInput) (uuid.UUID, error) {
	actor, err := s.uow.CommandReads().UserByID(ctx, actorID)
	if err != nil {
		return uuid.Nil, markInfra(err)
	}
	if !actor.CanCreateStudios {
		return uuid.Nil, ErrMissingStudioPermission
	}

	entity, err := studio.NewStudio(actorID, in.Name, in.Description, in.HourlyRateCents)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	err = s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Studios().Create(ctx, entity)
	})
	if err != nil {
		return uuid.Nil, markInfra(err)
	}

	return entity.ID(), nil
}

// Update applies a partial patch. Rate changes only affect reservations
// created afterwards; captured amounts are never touched.
func (s *studioCommandsImpl) Update(ctx context.Context, actorID, studioID uuid.UUID, in UpdateStudioInput) error {
	return s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		entity, err := s.loadOwned(ctx, tx, actorID, studioID)
		if err != nil {
			return err
		}

		if err := entity.Rename(patch.Coalesce(in.Name, entity.Name())); err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}
		entity.SetDescription(patch.Coalesce(in.Description, entity.Description()))
		if err := entity.ChangeRate(patch.Coalesce(in.HourlyRateCents, entity.HourlyRateCents())); err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		if err := tx.Studios().Update(ctx, entity); err != nil {
			return markInfra(err)
		}
		return nil
	})
}

// Deactivate soft-deletes: existing reservations keep their captured
// amounts and lifecycle, but no new ones may be created.
func (s *studioCommandsImpl) Deactivate(ctx context.Context, actorID, studioID uuid.UUID) error {
	return s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		entity, err := s.loadOwned(ctx, tx, actorID, studioID)
		if err != nil {
			return err
		}

		entity.Deactivate()
		if err := tx.Studios().Update(ctx, entity); err != nil {
			return markInfra(err)
		}
		return nil
	})
}

func (s *studioCommandsImpl) loadOwned(ctx context.Context, tx shared.Tx, actorID, studioID uuid.UUID) (*studio.Studio, error) {
	snap, err := tx.Reads().StudioByID(ctx, studioID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrStudioNotFound)
		}
		return nil, markInfra(err)
	}
	if snap.OwnerID != actorID {
		return nil, ErrForbidden
	}

	return studio.ReconstructStudio(
		snap.ID, snap.OwnerID, snap.Name, snap.Description, snap.HourlyRateCents, snap.Active,
		time.Time{}, time.Time{},
	), nil
}
