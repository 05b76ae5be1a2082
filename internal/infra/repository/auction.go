package repository

import (
	"context"
	"time"

	"studiohub/internal/domain/auction"
	"studiohub/internal/infra"
	"studiohub/internal/infra/db"
	"studiohub/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ListingRepository struct {
	db db.DBTX
}

func NewListingRepository(db db.DBTX) *ListingRepository {
	return &ListingRepository{db: db}
}

func (r *ListingRepository) Create(ctx context.Context, l *auction.Listing) error {
	const query = `
		INSERT INTO listings (id, creator_id, title, description, mode, minimum_bid_cents, current_high_bid_cents, status, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(ctx, query,
		l.ID(), l.CreatorID(), l.Title(), l.Description(), string(l.Mode()),
		l.MinimumBidCents(), l.CurrentHighBidCents(), string(l.Status()), l.ExpiresAt(),
	)
	if err != nil {
		return wrapPgErr("failed to create listing", err)
	}
	return nil
}

// LockByID takes the row lock that serializes concurrent bids on one
// listing. Held until the surrounding transaction ends.
func (r *ListingRepository) LockByID(ctx context.Context, id uuid.UUID) (*auction.Listing, error) {
	const query = `
		SELECT id, creator_id, title, description, mode, minimum_bid_cents,
		       current_high_bid_cents, status, expires_at, created_at, updated_at
		FROM listings
		WHERE id = $1
		FOR UPDATE`

	var (
		listingID, creatorID                 uuid.UUID
		title, description, mode, status     string
		minimumBidCents, currentHighBidCents int64
		expiresAt                            *time.Time
		createdAt, updatedAt                 time.Time
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&listingID, &creatorID, &title, &description, &mode,
		&minimumBidCents, &currentHighBidCents, &status,
		&expiresAt, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("listing not found", err, infra.KindNotFound)
		}
		return nil, wrapPgErr("failed to lock listing", err)
	}

	return auction.ReconstructListing(
		listingID, creatorID, title, description, auction.Mode(mode),
		minimumBidCents, currentHighBidCents, auction.ListingStatus(status),
		expiresAt, createdAt, updatedAt,
	), nil
}

func (r *ListingRepository) UpdateHighBid(ctx context.Context, id uuid.UUID, amountCents int64) error {
	const query = `
		UPDATE listings
		SET current_high_bid_cents = $2, updated_at = now()
		WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id, amountCents); err != nil {
		return wrapPgErr("failed to update high bid", err)
	}
	return nil
}

func (r *ListingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status auction.ListingStatus) error {
	const query = `UPDATE listings SET status = $2, updated_at = now() WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id, string(status)); err != nil {
		return wrapPgErr("failed to update listing status", err)
	}
	return nil
}

type BidRepository struct {
	db db.DBTX
}

func NewBidRepository(db db.DBTX) *BidRepository {
	return &BidRepository{db: db}
}

// Create relies on the partial unique index over pending bids to hold
// the one-pending-bid-per-bidder rule under concurrency.
func (r *BidRepository) Create(ctx context.Context, b *auction.Bid) error {
	const query = `
		INSERT INTO bids (id, listing_id, bidder_id, amount_cents, message, status)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		b.ID(), b.ListingID(), b.BidderID(), b.AmountCents(), b.Message(), string(b.Status()),
	)
	if err != nil {
		return wrapPgErr("failed to create bid", err)
	}
	return nil
}

func (r *BidRepository) HasPending(ctx context.Context, listingID, bidderID uuid.UUID) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM bids
			WHERE listing_id = $1 AND bidder_id = $2 AND status = 'pending'
		)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, listingID, bidderID).Scan(&exists); err != nil {
		return false, wrapPgErr("failed to check pending bid", err)
	}
	return exists, nil
}

func (r *BidRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to auction.BidStatus) (int64, error) {
	const query = `
		UPDATE bids
		SET status = $3
		WHERE id = $1 AND status = $2`

	tag, err := r.db.Exec(ctx, query, id, string(from), string(to))
	if err != nil {
		return 0, wrapPgErr("failed to update bid status", err)
	}
	return tag.RowsAffected(), nil
}
