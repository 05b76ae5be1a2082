package commands

import (
	"errors"

	"studiohub/internal/domain/workflow"
	"studiohub/internal/infra"
	"studiohub/internal/pkg/errs"
)

// Sentinels shared across command families. Handlers map these to HTTP
// statuses with errors.Is, so every command failure must be marked with
// exactly one of them.
var (
	ErrForbidden               = errs.New("actor is not allowed to perform this action")
	ErrInvalidTransition       = errs.New("transition not allowed from current state")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrTransient               = errs.New("transient conflict, retry the request")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// markInfra translates repository errors that carry no business meaning.
// Timeouts become ErrTransient so clients know to retry; everything else
// is a database failure.
func markInfra(err error) error {
	if infra.IsKind(err, infra.KindTimeout) {
		return errs.Mark(err, ErrTransient)
	}
	return errs.Mark(err, ErrDatabaseOperationFailed)
}

// mapWorkflowErr keeps the transition/role distinction from the engine:
// an undefined transition is a state conflict, a defined one applied by
// the wrong party is authorization.
func mapWorkflowErr(err error) error {
	switch {
	case errors.Is(err, workflow.ErrInvalidTransition):
		return errs.Mark(err, ErrInvalidTransition)
	case errors.Is(err, workflow.ErrForbidden):
		return errs.Mark(err, ErrForbidden)
	default:
		return errs.Mark(err, ErrDomainValidation)
	}
}
