package queries

import (
	"context"

	"studiohub/internal/infra"
	"studiohub/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrClubNotFound = errs.New("club not found")

type ClubQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ClubView, error)
	ListByMember(ctx context.Context, userID uuid.UUID) ([]*ClubView, error)
}

type ClubReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ClubView, error)
	FindByMemberID(ctx context.Context, userID uuid.UUID) ([]*ClubView, error)
}

type clubQueriesImpl struct {
	readStore ClubReadStore
}

func NewClubQueries(readStore ClubReadStore) ClubQueries {
	return &clubQueriesImpl{readStore: readStore}
}

func (q *clubQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ClubView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *clubQueriesImpl) ListByMember(ctx context.Context, userID uuid.UUID) ([]*ClubView, error) {
	return q.readStore.FindByMemberID(ctx, userID)
}
