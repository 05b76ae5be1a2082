package queries

import (
	"context"
	"time"

	"studiohub/internal/infra"
	"studiohub/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrReservationNotFound = errs.New("reservation not found")
	ErrReservationAccess   = errs.New("reservation access denied")
	ErrInvalidSlot         = errs.New("invalid time slot")
)

type AvailabilityResult struct {
	Available bool `json:"available"`
}

type ReservationQueries interface {
	// GetByID is visible to the requester and the studio owner only.
	GetByID(ctx context.Context, actorID, id uuid.UUID) (*ReservationView, error)
	ListByRequester(ctx context.Context, requesterID uuid.UUID, after *Cursor, limit int) ([]*ReservationListItem, *Cursor, error)
	// ListByStudio is restricted to the studio owner.
	ListByStudio(ctx context.Context, actorID, studioID uuid.UUID, after *Cursor, limit int) ([]*ReservationListItem, *Cursor, error)
	CheckAvailability(ctx context.Context, studioID uuid.UUID, start, end time.Time) (*AvailabilityResult, error)
}

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindByRequesterID(ctx context.Context, requesterID uuid.UUID, afterTime *time.Time, afterID *uuid.UUID, limit int32) ([]*ReservationListItem, error)
	FindByStudioID(ctx context.Context, studioID uuid.UUID, afterTime *time.Time, afterID *uuid.UUID, limit int32) ([]*ReservationListItem, error)
	StudioOwnerID(ctx context.Context, studioID uuid.UUID) (uuid.UUID, error)
	// CountBlockingInRange counts pending/confirmed reservations whose
	// slot intersects [start, end).
	CountBlockingInRange(ctx context.Context, studioID uuid.UUID, start, end time.Time) (int64, error)
}

type reservationQueriesImpl struct {
	readStore ReservationReadStore
}

func NewReservationQueries(readStore ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{readStore: readStore}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, actorID, id uuid.UUID) (*ReservationView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}

	if view.RequesterID != actorID {
		ownerID, err := q.readStore.StudioOwnerID(ctx, view.StudioID)
		if err != nil {
			return nil, err
		}
		if ownerID != actorID {
			return nil, ErrReservationAccess
		}
	}

	return view, nil
}

func (q *reservationQueriesImpl) ListByRequester(ctx context.Context, requesterID uuid.UUID, after *Cursor, limit int) ([]*ReservationListItem, *Cursor, error) {
	afterTime, afterID, err := decodeCursor(after)
	if err != nil {
		return nil, nil, err
	}

	limit = ValidateLimit(limit)
	rows, err := q.readStore.FindByRequesterID(ctx, requesterID, afterTime, afterID, int32(limit))
	if err != nil {
		return nil, nil, err
	}
	return rows, nextCursor(rows, limit), nil
}

func (q *reservationQueriesImpl) ListByStudio(ctx context.Context, actorID, studioID uuid.UUID, after *Cursor, limit int) ([]*ReservationListItem, *Cursor, error) {
	ownerID, err := q.readStore.StudioOwnerID(ctx, studioID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, ErrStudioNotFound
		}
		return nil, nil, err
	}
	if ownerID != actorID {
		return nil, nil, ErrReservationAccess
	}

	afterTime, afterID, err := decodeCursor(after)
	if err != nil {
		return nil, nil, err
	}

	limit = ValidateLimit(limit)
	rows, err := q.readStore.FindByStudioID(ctx, studioID, afterTime, afterID, int32(limit))
	if err != nil {
		return nil, nil, err
	}
	return rows, nextCursor(rows, limit), nil
}

// CheckAvailability is advisory: the exclusion constraint still decides
// at insert time, so a true result can go stale before the booking lands.
func (q *reservationQueriesImpl) CheckAvailability(ctx context.Context, studioID uuid.UUID, start, end time.Time) (*AvailabilityResult, error) {
	if !start.Before(end) {
		return nil, ErrInvalidSlot
	}
	count, err := q.readStore.CountBlockingInRange(ctx, studioID, start, end)
	if err != nil {
		return nil, err
	}
	return &AvailabilityResult{Available: count == 0}, nil
}

func decodeCursor(after *Cursor) (*time.Time, *uuid.UUID, error) {
	if after == nil || after.After == "" {
		return nil, nil, nil
	}
	t, id, err := DecodeAfterCursor(after.After)
	if err != nil {
		return nil, nil, errs.Mark(err, ErrInvalidCursor)
	}
	return &t, &id, nil
}

func nextCursor(rows []*ReservationListItem, limit int) *Cursor {
	if len(rows) < limit {
		return nil
	}
	last := rows[len(rows)-1]
	return &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
}
