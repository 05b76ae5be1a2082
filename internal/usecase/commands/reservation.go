package commands

import (
	"context"
	"time"

	"studiohub/internal/domain/reservation"
	"studiohub/internal/domain/studio"
	"studiohub/internal/domain/workflow"
	"studiohub/internal/infra"
	"studiohub/internal/pkg/errs"
	"studiohub/internal/usecase/shared"
	"studiohub/internal/usecase/sideeffect"

	"github.com/google/uuid"
)

var (
	ErrStudioNotFound      = errs.New("studio not found")
	ErrStudioInactive      = errs.New("studio is deactivated")
	ErrSlotConflict        = errs.New("slot overlaps an existing reservation")
	ErrReservationNotFound = errs.New("reservation not found")
)

type CreateReservationInput struct {
	StudioID  uuid.UUID
	StartTime time.Time
	EndTime   time.Time
	Note      string
}

type ReservationCommands interface {
	Create(ctx context.Context, actorID uuid.UUID, in CreateReservationInput) (uuid.UUID, error)
	Confirm(ctx context.Context, actorID, reservationID uuid.UUID) error
	Cancel(ctx context.Context, actorID, reservationID uuid.UUID) error
	Complete(ctx context.Context, actorID, reservationID uuid.UUID) error
}

type reservationCommandsImpl struct {
	uow        shared.UnitOfWork
	dispatcher *sideeffect.Dispatcher
}

func NewReservationCommands(uow shared.UnitOfWork, dispatcher *sideeffect.Dispatcher) ReservationCommands {
	return &reservationCommandsImpl{uow: uow, dispatcher: dispatcher}
}

func (r *reservationCommandsImpl) Create(ctx context.Context, actorID uuid.UUID, in CreateReservationInput) (uuid.UUID, error) {
	snap, err := r.uow.CommandReads().StudioByID(ctx, in.StudioID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return uuid.Nil, errs.Mark(err, ErrStudioNotFound)
		}
		return uuid.Nil, markInfra(err)
	}
	if !snap.Active {
		return uuid.Nil, ErrStudioInactive
	}

	slot, err := reservation.NewTimeSlot(in.StartTime, in.EndTime)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	st := studio.ReconstructStudio(
		snap.ID, snap.OwnerID, snap.Name, snap.Description, snap.HourlyRateCents, snap.Active,
		time.Time{}, time.Time{},
	)
	res, err := reservation.NewReservation(st, actorID, slot, reservation.NewNote(in.Note))
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Reservations().Create(ctx, res)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return uuid.Nil, errs.Mark(err, ErrSlotConflict)
		}
		return uuid.Nil, markInfra(err)
	}

	r.dispatcher.Dispatch(ctx, sideeffect.Event{
		Kind:        "reservation",
		EntityID:    res.ID(),
		Action:      "create",
		NewState:    reservation.StatusPending.String(),
		ActorID:     actorID,
		Counterpart: snap.OwnerID,
		Title:       "New reservation request",
		Message:     "A booking was requested for " + snap.Name,
	})

	return res.ID(), nil
}

func (r *reservationCommandsImpl) Confirm(ctx context.Context, actorID, reservationID uuid.UUID) error {
	return r.transition(ctx, actorID, reservationID, reservation.ActionConfirm, "Reservation confirmed")
}

func (r *reservationCommandsImpl) Cancel(ctx context.Context, actorID, reservationID uuid.UUID) error {
	return r.transition(ctx, actorID, reservationID, reservation.ActionCancel, "Reservation cancelled")
}

func (r *reservationCommandsImpl) Complete(ctx context.Context, actorID, reservationID uuid.UUID) error {
	return r.transition(ctx, actorID, reservationID, reservation.ActionComplete, "Reservation completed")
}

// transition applies one lifecycle action with an optimistic
// compare-and-set: the update only lands if the status is still the one
// we read. Zero rows means someone moved it first, and the caller can
// simply retry against the new state.
func (r *reservationCommandsImpl) transition(
	ctx context.Context,
	actorID, reservationID uuid.UUID,
	action workflow.Action,
	title string,
) error {
	var ev sideeffect.Event

	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().ReservationByID(ctx, reservationID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrReservationNotFound)
			}
			return markInfra(err)
		}

		role, err := resolveReservationRole(snap, actorID)
		if err != nil {
			return err
		}

		from := reservation.Status(snap.Status)
		to, err := reservation.Transitions.Next(from, action, role)
		if err != nil {
			return mapWorkflowErr(err)
		}

		rows, err := tx.Reservations().UpdateStatus(ctx, reservationID, from, to)
		if err != nil {
			return markInfra(err)
		}
		if rows == 0 {
			return ErrTransient
		}

		counterpart := snap.OwnerID
		if actorID == snap.OwnerID {
			counterpart = snap.RequesterID
		}
		ev = sideeffect.Event{
			Kind:         "reservation",
			EntityID:     reservationID,
			Action:       string(action),
			OldState:     string(from),
			NewState:     string(to),
			ActorID:      actorID,
			Counterpart:  counterpart,
			Title:        title,
			Message:      title,
			WithActivity: true,
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.dispatcher.Dispatch(ctx, ev)
	return nil
}

func resolveReservationRole(snap *shared.ReservationSnapshot, actorID uuid.UUID) (workflow.Role, error) {
	switch actorID {
	case snap.OwnerID:
		return reservation.RoleOwner, nil
	case snap.RequesterID:
		return reservation.RoleRequester, nil
	default:
		return "", ErrForbidden
	}
}
