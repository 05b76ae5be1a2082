package queries

import (
	"context"

	"studiohub/internal/infra"
	"studiohub/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrStudioNotFound = errs.New("studio not found")

type StudioQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*StudioView, error)
	ListActive(ctx context.Context, limit int) ([]*StudioView, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*StudioView, error)
}

type StudioReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*StudioView, error)
	FindActive(ctx context.Context, limit int32) ([]*StudioView, error)
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*StudioView, error)
}

type studioQueriesImpl struct {
	readStore StudioReadStore
}

func NewStudioQueries(readStore StudioReadStore) StudioQueries {
	return &studioQueriesImpl{readStore: readStore}
}

func (q *studioQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*StudioView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrStudioNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *studioQueriesImpl) ListActive(ctx context.Context, limit int) ([]*StudioView, error) {
	return q.readStore.FindActive(ctx, int32(ValidateLimit(limit)))
}

func (q *studioQueriesImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*StudioView, error) {
	return q.readStore.FindByOwnerID(ctx, ownerID)
}
