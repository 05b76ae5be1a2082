package readstore

import (
	"context"

	"studiohub/internal/infra"
	"studiohub/internal/infra/db"
	"studiohub/internal/pkg/pgconv"
	"studiohub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type AuctionReadStore struct {
	db db.DBTX
}

func NewAuctionReadStore(db db.DBTX) *AuctionReadStore {
	return &AuctionReadStore{db: db}
}

const listingViewColumns = `
	l.id, l.creator_id, u.display_name, l.title, l.description, l.mode,
	l.minimum_bid_cents, l.current_high_bid_cents, l.status,
	(SELECT count(*) FROM bids b WHERE b.listing_id = l.id),
	l.expires_at, l.created_at`

func scanListingView(row pgx.Row) (*queries.ListingView, error) {
	var v queries.ListingView
	err := row.Scan(
		&v.ID, &v.CreatorID, &v.CreatorName, &v.Title, &v.Description, &v.Mode,
		&v.MinimumBidCents, &v.CurrentHighBidCents, &v.Status,
		&v.BidCount, &v.ExpiresAt, &v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *AuctionReadStore) FindListingByID(ctx context.Context, id uuid.UUID) (*queries.ListingView, error) {
	query := `
		SELECT ` + listingViewColumns + `
		FROM listings l
		JOIN users u ON u.id = l.creator_id
		WHERE l.id = $1`

	v, err := scanListingView(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("listing not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find listing by ID", err)
	}
	return v, nil
}

func (r *AuctionReadStore) FindOpenListings(ctx context.Context, limit int32) ([]*queries.ListingView, error) {
	query := `
		SELECT ` + listingViewColumns + `
		FROM listings l
		JOIN users u ON u.id = l.creator_id
		WHERE l.status = 'active'
		  AND (l.expires_at IS NULL OR l.expires_at > now())
		ORDER BY l.created_at DESC, l.id DESC
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list open listings", err)
	}
	defer rows.Close()

	var result []*queries.ListingView
	for rows.Next() {
		v, err := scanListingView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan listing row", err)
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate listing rows", err)
	}
	return result, nil
}

const bidViewColumns = `
	b.id, b.listing_id, b.bidder_id, u.display_name,
	b.amount_cents, b.message, b.status, b.created_at`

func scanBidView(row pgx.Row) (*queries.BidView, error) {
	var v queries.BidView
	err := row.Scan(
		&v.ID, &v.ListingID, &v.BidderID, &v.BidderName,
		&v.AmountCents, &v.Message, &v.Status, &v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// FindBidsByListingID is the creator's view: every bid, highest first.
func (r *AuctionReadStore) FindBidsByListingID(ctx context.Context, listingID uuid.UUID) ([]*queries.BidView, error) {
	query := `
		SELECT ` + bidViewColumns + `
		FROM bids b
		JOIN users u ON u.id = b.bidder_id
		WHERE b.listing_id = $1
		ORDER BY b.amount_cents DESC, b.created_at ASC`

	return r.collectBids(ctx, query, listingID)
}

// FindBidsByListingAndBidder is a bidder's view of their own offers,
// newest first.
func (r *AuctionReadStore) FindBidsByListingAndBidder(ctx context.Context, listingID, bidderID uuid.UUID) ([]*queries.BidView, error) {
	query := `
		SELECT ` + bidViewColumns + `
		FROM bids b
		JOIN users u ON u.id = b.bidder_id
		WHERE b.listing_id = $1 AND b.bidder_id = $2
		ORDER BY b.created_at DESC`

	return r.collectBids(ctx, query, listingID, bidderID)
}

func (r *AuctionReadStore) collectBids(ctx context.Context, query string, args ...any) ([]*queries.BidView, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bids", err)
	}
	defer rows.Close()

	var result []*queries.BidView
	for rows.Next() {
		v, err := scanBidView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan bid row", err)
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate bid rows", err)
	}
	return result, nil
}
