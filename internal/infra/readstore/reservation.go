package readstore

import (
	"context"
	"time"

	"studiohub/internal/infra"
	"studiohub/internal/infra/db"
	"studiohub/internal/pkg/pgconv"
	"studiohub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(db db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: db}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	const query = `
		SELECT r.id, r.studio_id, s.name, r.requester_id, u.display_name,
		       lower(r.slot), upper(r.slot), r.status, r.amount_cents,
		       NULLIF(r.note, ''), r.created_at, r.updated_at
		FROM reservations r
		JOIN studios s ON s.id = r.studio_id
		JOIN users u ON u.id = r.requester_id
		WHERE r.id = $1`

	var v queries.ReservationView
	err := r.db.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.StudioID, &v.StudioName, &v.RequesterID, &v.RequesterName,
		&v.StartTime, &v.EndTime, &v.Status, &v.AmountCents,
		&v.Note, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return &v, nil
}

const reservationListColumns = `
	r.id, r.studio_id, s.name, lower(r.slot), upper(r.slot),
	r.status, r.amount_cents, r.created_at`

func (r *ReservationReadStore) FindByRequesterID(ctx context.Context, requesterID uuid.UUID, afterTime *time.Time, afterID *uuid.UUID, limit int32) ([]*queries.ReservationListItem, error) {
	query := `
		SELECT ` + reservationListColumns + `
		FROM reservations r
		JOIN studios s ON s.id = r.studio_id
		WHERE r.requester_id = $1
		  AND ($2::timestamptz IS NULL OR (r.created_at, r.id) < ($2, $3))
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $4`

	rows, err := r.db.Query(ctx, query, requesterID, afterTime, afterID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations by requester", err)
	}
	defer rows.Close()

	return collectReservationItems(rows)
}

func (r *ReservationReadStore) FindByStudioID(ctx context.Context, studioID uuid.UUID, afterTime *time.Time, afterID *uuid.UUID, limit int32) ([]*queries.ReservationListItem, error) {
	query := `
		SELECT ` + reservationListColumns + `
		FROM reservations r
		JOIN studios s ON s.id = r.studio_id
		WHERE r.studio_id = $1
		  AND ($2::timestamptz IS NULL OR (r.created_at, r.id) < ($2, $3))
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $4`

	rows, err := r.db.Query(ctx, query, studioID, afterTime, afterID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations by studio", err)
	}
	defer rows.Close()

	return collectReservationItems(rows)
}

func (r *ReservationReadStore) StudioOwnerID(ctx context.Context, studioID uuid.UUID) (uuid.UUID, error) {
	const query = `SELECT owner_id FROM studios WHERE id = $1`

	var ownerID uuid.UUID
	if err := r.db.QueryRow(ctx, query, studioID).Scan(&ownerID); err != nil {
		if pgconv.IsNoRows(err) {
			return uuid.Nil, infra.WrapRepoErr("studio not found", err, infra.KindNotFound)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to find studio owner", err)
	}
	return ownerID, nil
}

func (r *ReservationReadStore) CountBlockingInRange(ctx context.Context, studioID uuid.UUID, start, end time.Time) (int64, error) {
	const query = `
		SELECT count(*)
		FROM reservations
		WHERE studio_id = $1
		  AND status IN ('pending', 'confirmed')
		  AND slot && tstzrange($2, $3, '[)')`

	var count int64
	if err := r.db.QueryRow(ctx, query, studioID, start, end).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("failed to count blocking reservations", err)
	}
	return count, nil
}

func collectReservationItems(rows pgx.Rows) ([]*queries.ReservationListItem, error) {
	var result []*queries.ReservationListItem
	for rows.Next() {
		var item queries.ReservationListItem
		err := rows.Scan(
			&item.ID, &item.StudioID, &item.StudioName, &item.StartTime, &item.EndTime,
			&item.Status, &item.AmountCents, &item.CreatedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation row", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservation rows", err)
	}
	return result, nil
}
