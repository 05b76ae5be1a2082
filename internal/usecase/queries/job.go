package queries

import (
	"context"

	"studiohub/internal/infra"
	"studiohub/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrJobNotFound = errs.New("job not found")
	ErrJobAccess   = errs.New("job access denied")
)

type JobQueries interface {
	// GetByID is visible to the client and the provider only.
	GetByID(ctx context.Context, actorID, id uuid.UUID) (*JobView, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]*JobView, error)
	ListByProvider(ctx context.Context, providerID uuid.UUID) ([]*JobView, error)
}

type JobReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*JobView, error)
	FindByClientID(ctx context.Context, clientID uuid.UUID) ([]*JobView, error)
	FindByProviderID(ctx context.Context, providerID uuid.UUID) ([]*JobView, error)
}

type jobQueriesImpl struct {
	readStore JobReadStore
}

func NewJobQueries(readStore JobReadStore) JobQueries {
	return &jobQueriesImpl{readStore: readStore}
}

func (q *jobQueriesImpl) GetByID(ctx context.Context, actorID, id uuid.UUID) (*JobView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	if view.ClientID != actorID && view.ProviderID != actorID {
		return nil, ErrJobAccess
	}
	return view, nil
}

func (q *jobQueriesImpl) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*JobView, error) {
	return q.readStore.FindByClientID(ctx, clientID)
}

func (q *jobQueriesImpl) ListByProvider(ctx context.Context, providerID uuid.UUID) ([]*JobView, error) {
	return q.readStore.FindByProviderID(ctx, providerID)
}
