package queries

import (
	"context"

	"studiohub/internal/infra"
	"studiohub/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrListingNotFound = errs.New("listing not found")

type AuctionQueries interface {
	GetListing(ctx context.Context, id uuid.UUID) (*ListingView, error)
	ListOpenListings(ctx context.Context, limit int) ([]*ListingView, error)
	// ListBids: the creator sees every bid ordered by amount; other
	// parties see only their own, newest first.
	ListBids(ctx context.Context, actorID, listingID uuid.UUID) ([]*BidView, error)
}

type AuctionReadStore interface {
	FindListingByID(ctx context.Context, id uuid.UUID) (*ListingView, error)
	FindOpenListings(ctx context.Context, limit int32) ([]*ListingView, error)
	FindBidsByListingID(ctx context.Context, listingID uuid.UUID) ([]*BidView, error)
	FindBidsByListingAndBidder(ctx context.Context, listingID, bidderID uuid.UUID) ([]*BidView, error)
}

type auctionQueriesImpl struct {
	readStore AuctionReadStore
}

func NewAuctionQueries(readStore AuctionReadStore) AuctionQueries {
	return &auctionQueriesImpl{readStore: readStore}
}

func (q *auctionQueriesImpl) GetListing(ctx context.Context, id uuid.UUID) (*ListingView, error) {
	view, err := q.readStore.FindListingByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *auctionQueriesImpl) ListOpenListings(ctx context.Context, limit int) ([]*ListingView, error) {
	return q.readStore.FindOpenListings(ctx, int32(ValidateLimit(limit)))
}

func (q *auctionQueriesImpl) ListBids(ctx context.Context, actorID, listingID uuid.UUID) ([]*BidView, error) {
	listing, err := q.GetListing(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if listing.CreatorID == actorID {
		return q.readStore.FindBidsByListingID(ctx, listingID)
	}
	return q.readStore.FindBidsByListingAndBidder(ctx, listingID, actorID)
}
