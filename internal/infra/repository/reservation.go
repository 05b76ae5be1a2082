package repository

import (
	"context"

	"studiohub/internal/domain/reservation"
	"studiohub/internal/infra/db"

	"github.com/google/uuid"
)

type ReservationRepository struct {
	db db.DBTX
}

func NewReservationRepository(db db.DBTX) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// Create inserts the reservation with its slot as a tstzrange. The
// exclusion constraint on (studio_id, slot) rejects overlapping
// pending/confirmed slots atomically; no prior read can race it.
func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	const query = `
		INSERT INTO reservations (id, studio_id, requester_id, slot, status, amount_cents, note)
		VALUES ($1, $2, $3, tstzrange($4, $5, '[)'), $6, $7, $8)`

	_, err := r.db.Exec(ctx, query,
		res.ID(), res.StudioID(), res.RequesterID(),
		res.TimeSlot().Start(), res.TimeSlot().End(),
		res.Status().String(), res.Amount().Cents(), res.Note().String(),
	)
	if err != nil {
		return wrapPgErr("failed to create reservation", err)
	}
	return nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to reservation.Status) (int64, error) {
	const query = `
		UPDATE reservations
		SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2`

	tag, err := r.db.Exec(ctx, query, id, from.String(), to.String())
	if err != nil {
		return 0, wrapPgErr("failed to update reservation status", err)
	}
	return tag.RowsAffected(), nil
}
