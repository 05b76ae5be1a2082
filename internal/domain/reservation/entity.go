package reservation

import (
	"errors"
	"time"

	"studiohub/internal/domain/studio"

	"github.com/google/uuid"
)

var (
	ErrStudioInactive = errors.New("studio is deactivated")
	ErrNegativeAmount = errors.New("amount cannot be negative")
)

// Reservation is a time-bound claim on a studio. The amount is captured
// from the studio's hourly rate at creation and never recomputed; later
// rate changes do not affect existing reservations.
type Reservation struct {
	id          uuid.UUID
	studioID    uuid.UUID
	requesterID uuid.UUID
	timeSlot    TimeSlot
	status      Status
	amount      Money
	note        Note
	createdAt   time.Time
	updatedAt   time.Time
}

func NewReservation(
	st *studio.Studio,
	requesterID uuid.UUID,
	slot TimeSlot,
	note Note,
) (*Reservation, error) {
	if !st.IsActive() {
		return nil, ErrStudioInactive
	}

	amountCents := AmountCents(st.HourlyRateCents(), slot)
	if amountCents < 0 {
		return nil, ErrNegativeAmount
	}

	return &Reservation{
		id:          uuid.New(),
		studioID:    st.ID(),
		requesterID: requesterID,
		timeSlot:    slot,
		status:      StatusPending,
		amount:      NewMoney(amountCents),
		note:        note,
	}, nil
}

func ReconstructReservation(
	id, studioID, requesterID uuid.UUID,
	timeSlot TimeSlot,
	status Status,
	amount Money,
	note Note,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:          id,
		studioID:    studioID,
		requesterID: requesterID,
		timeSlot:    timeSlot,
		status:      status,
		amount:      amount,
		note:        note,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// AmountCents derives the reservation total from an hourly rate,
// prorating partial hours. Integer math on whole minutes keeps the
// total exact for any slot a client can book.
func AmountCents(hourlyRateCents int64, slot TimeSlot) int64 {
	minutes := int64(slot.Duration() / time.Minute)
	return hourlyRateCents * minutes / 60
}

func (r *Reservation) BlocksSlot() bool {
	return r.status.Blocks()
}

func (r *Reservation) ID() uuid.UUID          { return r.id }
func (r *Reservation) StudioID() uuid.UUID    { return r.studioID }
func (r *Reservation) RequesterID() uuid.UUID { return r.requesterID }
func (r *Reservation) TimeSlot() TimeSlot     { return r.timeSlot }
func (r *Reservation) Status() Status         { return r.status }
func (r *Reservation) Amount() Money          { return r.amount }
func (r *Reservation) Note() Note             { return r.note }
func (r *Reservation) CreatedAt() time.Time   { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time   { return r.updatedAt }
