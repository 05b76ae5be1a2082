package shared

import (
	"context"
	"time"

	"studiohub/internal/domain/auction"
	"studiohub/internal/domain/club"
	"studiohub/internal/domain/job"
	"studiohub/internal/domain/notification"
	"studiohub/internal/domain/reservation"
	"studiohub/internal/domain/studio"

	"github.com/google/uuid"
)

// UnitOfWork scopes repository access to a transaction. Within carries
// the one serialization guarantee the core needs: everything inside fn
// commits atomically or not at all, with retry on serialization failure.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: validation reads outside any transaction
	CommandReads() CommandReads
}

type Tx interface {
	Users() UserRepository
	Studios() StudioRepository
	Reservations() ReservationRepository
	Jobs() JobRepository
	Listings() ListingRepository
	Bids() BidRepository
	Clubs() ClubRepository
	Notifications() NotificationRepository
	Reads() CommandReads
}

type CommandReads interface {
	StudioByID(ctx context.Context, id uuid.UUID) (*StudioSnapshot, error)
	ReservationByID(ctx context.Context, id uuid.UUID) (*ReservationSnapshot, error)
	JobByID(ctx context.Context, id uuid.UUID) (*JobSnapshot, error)
	BidByID(ctx context.Context, id uuid.UUID) (*BidSnapshot, error)
	UserByEmail(ctx context.Context, email string) (*AuthorizedUser, error)
	UserByID(ctx context.Context, id uuid.UUID) (*AuthorizedUser, error)
}

type UserRepository interface {
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type StudioRepository interface {
	Create(ctx context.Context, st *studio.Studio) error
	Update(ctx context.Context, st *studio.Studio) error
}

type ReservationRepository interface {
	// Create relies on the store to serialize the non-overlap check; an
	// overlapping pending/confirmed slot surfaces as KindConflict.
	Create(ctx context.Context, res *reservation.Reservation) error
	// UpdateStatus is an optimistic compare-and-set on the current status;
	// it reports the number of rows moved.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to reservation.Status) (int64, error)
}

type JobRepository interface {
	Create(ctx context.Context, j *job.Job) error
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to job.Status, response *string, respondedAt *time.Time) (int64, error)
}

type ListingRepository interface {
	Create(ctx context.Context, l *auction.Listing) error
	// LockByID takes a row lock so concurrent bids on one listing
	// validate against the committed high bid, never a stale one.
	LockByID(ctx context.Context, id uuid.UUID) (*auction.Listing, error)
	UpdateHighBid(ctx context.Context, id uuid.UUID, amountCents int64) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status auction.ListingStatus) error
}

type BidRepository interface {
	Create(ctx context.Context, b *auction.Bid) error
	HasPending(ctx context.Context, listingID, bidderID uuid.UUID) (bool, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to auction.BidStatus) (int64, error)
}

type ClubRepository interface {
	Create(ctx context.Context, c *club.Club) error
	AddMember(ctx context.Context, clubID, userID uuid.UUID, role string) error
	// UpsertRoleGrant re-points an existing (user, role) grant at the new
	// club instead of erroring on the unique pair.
	UpsertRoleGrant(ctx context.Context, userID uuid.UUID, role club.RoleType, clubID uuid.UUID) error
}

type NotificationRepository interface {
	CreateNotification(ctx context.Context, n *notification.Notification) error
	CreateActivity(ctx context.Context, a *notification.ActivityRecord) error
	// MarkRead is scoped to the owner; it reports whether a row matched.
	MarkRead(ctx context.Context, id, userID uuid.UUID) (int64, error)
}
