package commands

import (
	"context"
	"time"

	"studiohub/internal/domain/job"
	"studiohub/internal/domain/workflow"
	"studiohub/internal/infra"
	"studiohub/internal/pkg/clock"
	"studiohub/internal/pkg/errs"
	"studiohub/internal/usecase/shared"
	"studiohub/internal/usecase/sideeffect"

	"github.com/google/uuid"
)

var (
	ErrJobNotFound         = errs.New("job not found")
	ErrProviderNotFound    = errs.New("provider not found")
	ErrProviderUnavailable = errs.New("provider does not accept jobs")
)

type CreateJobInput struct {
	ProviderID  uuid.UUID
	Title       string
	Description string
	BudgetCents *int64
	Deadline    *time.Time
}

type JobCommands interface {
	Create(ctx context.Context, actorID uuid.UUID, in CreateJobInput) (uuid.UUID, error)
	Accept(ctx context.Context, actorID, jobID uuid.UUID, response string) error
	Reject(ctx context.Context, actorID, jobID uuid.UUID, response string) error
	Start(ctx context.Context, actorID, jobID uuid.UUID) error
	Complete(ctx context.Context, actorID, jobID uuid.UUID) error
	Cancel(ctx context.Context, actorID, jobID uuid.UUID) error
}

type jobCommandsImpl struct {
	uow        shared.UnitOfWork
	dispatcher *sideeffect.Dispatcher
	clock      clock.Clock
}

func NewJobCommands(uow shared.UnitOfWork, dispatcher *sideeffect.Dispatcher, clock clock.Clock) JobCommands {
	return &jobCommandsImpl{uow: uow, dispatcher: dispatcher, clock: clock}
}

func (j *jobCommandsImpl) Create(ctx context.Context, actorID uuid.UUID, in CreateJobInput) (uuid.UUID, error) {
	provider, err := j.uow.CommandReads().UserByID(ctx, in.ProviderID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return uuid.Nil, errs.Mark(err, ErrProviderNotFound)
		}
		return uuid.Nil, markInfra(err)
	}
	if !provider.Active || !provider.CanAcceptJobs {
		return uuid.Nil, ErrProviderUnavailable
	}

	entity, err := job.NewJob(actorID, in.ProviderID, in.Title, in.Description, in.BudgetCents, in.Deadline)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	err = j.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Jobs().Create(ctx, entity)
	})
	if err != nil {
		return uuid.Nil, markInfra(err)
	}

	j.dispatcher.Dispatch(ctx, sideeffect.Event{
		Kind:        "job",
		EntityID:    entity.ID(),
		Action:      "create",
		NewState:    job.StatusPending.String(),
		ActorID:     actorID,
		Counterpart: in.ProviderID,
		Title:       "New service request",
		Message:     entity.Title(),
	})

	return entity.ID(), nil
}

func (j *jobCommandsImpl) Accept(ctx context.Context, actorID, jobID uuid.UUID, response string) error {
	return j.transition(ctx, actorID, jobID, job.ActionAccept, response, "Request accepted")
}

func (j *jobCommandsImpl) Reject(ctx context.Context, actorID, jobID uuid.UUID, response string) error {
	return j.transition(ctx, actorID, jobID, job.ActionReject, response, "Request rejected")
}

func (j *jobCommandsImpl) Start(ctx context.Context, actorID, jobID uuid.UUID) error {
	return j.transition(ctx, actorID, jobID, job.ActionStart, "", "Work started")
}

func (j *jobCommandsImpl) Complete(ctx context.Context, actorID, jobID uuid.UUID) error {
	return j.transition(ctx, actorID, jobID, job.ActionComplete, "", "Work completed")
}

func (j *jobCommandsImpl) Cancel(ctx context.Context, actorID, jobID uuid.UUID) error {
	return j.transition(ctx, actorID, jobID, job.ActionCancel, "", "Request cancelled")
}

func (j *jobCommandsImpl) transition(
	ctx context.Context,
	actorID, jobID uuid.UUID,
	action workflow.Action,
	response, title string,
) error {
	var ev sideeffect.Event

	err := j.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().JobByID(ctx, jobID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrJobNotFound)
			}
			return markInfra(err)
		}

		role, err := resolveJobRole(snap, actorID)
		if err != nil {
			return err
		}

		from := job.Status(snap.Status)
		to, err := job.Transitions.Next(from, action, role)
		if err != nil {
			return mapWorkflowErr(err)
		}

		// The provider's response text rides along on accept/reject only.
		var respPtr *string
		var respondedAt *time.Time
		if action == job.ActionAccept || action == job.ActionReject {
			respPtr = &response
			now := j.clock.Now()
			respondedAt = &now
		}

		rows, err := tx.Jobs().UpdateStatus(ctx, jobID, from, to, respPtr, respondedAt)
		if err != nil {
			return markInfra(err)
		}
		if rows == 0 {
			return ErrTransient
		}

		counterpart := snap.ClientID
		if actorID == snap.ClientID {
			counterpart = snap.ProviderID
		}
		ev = sideeffect.Event{
			Kind:         "job",
			EntityID:     jobID,
			Action:       string(action),
			OldState:     string(from),
			NewState:     string(to),
			ActorID:      actorID,
			Counterpart:  counterpart,
			Title:        title,
			Message:      snap.Title,
			WithActivity: true,
		}
		return nil
	})
	if err != nil {
		return err
	}

	j.dispatcher.Dispatch(ctx, ev)
	return nil
}

func resolveJobRole(snap *shared.JobSnapshot, actorID uuid.UUID) (workflow.Role, error) {
	switch actorID {
	case snap.ClientID:
		return job.RoleClient, nil
	case snap.ProviderID:
		return job.RoleProvider, nil
	default:
		return "", ErrForbidden
	}
}
