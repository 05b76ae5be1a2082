//go:build unit

package commands

import (
	"context"
	"sync"
	"testing"
	"time"

	"studiohub/internal/domain/auction"
	"studiohub/internal/pkg/clock"
	"studiohub/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuctionCommands(store *memStore) AuctionCommands {
	clk := clock.NewMockClock(time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC))
	return NewAuctionCommands(newMemUoW(store), newTestDispatcher(), clk)
}

func TestAuctionCommands_CreateListing_RequiresCapability(t *testing.T) {
	store := newMemStore()
	plain := store.addUser()
	producer := store.addUser(func(u *shared.AuthorizedUser) { u.CanUploadBeats = true })

	cmds := newAuctionCommands(store)
	ctx := context.Background()

	_, err := cmds.CreateListing(ctx, plain, CreateListingInput{
		Title: "Drill pack", Mode: "bid", MinimumBidCents: 10000,
	})
	assert.ErrorIs(t, err, ErrMissingBidPermission)

	id, err := cmds.CreateListing(ctx, producer, CreateListingInput{
		Title: "Drill pack", Mode: "bid", MinimumBidCents: 10000,
	})
	require.NoError(t, err)
	assert.NotNil(t, store.listings[id])
}

func TestAuctionCommands_PlaceBid_AmountRules(t *testing.T) {
	store := newMemStore()
	creator := store.addUser()
	bidderA := store.addUser()
	bidderB := store.addUser()
	listingID := store.addListing(creator, auction.ModeBid, 10000)

	cmds := newAuctionCommands(store)
	ctx := context.Background()

	// Below the minimum
	_, err := cmds.PlaceBid(ctx, bidderA, PlaceBidInput{ListingID: listingID, AmountCents: 9999})
	assert.ErrorIs(t, err, ErrBidTooLow)

	// Opening bid may equal the minimum
	_, err = cmds.PlaceBid(ctx, bidderA, PlaceBidInput{ListingID: listingID, AmountCents: 10000})
	require.NoError(t, err)
	assert.Equal(t, int64(10000), store.listings[listingID].CurrentHighBidCents())

	// 10500 beats the high bid but not by the full increment
	_, err = cmds.PlaceBid(ctx, bidderB, PlaceBidInput{ListingID: listingID, AmountCents: 10500})
	assert.ErrorIs(t, err, ErrIncrementTooSmall)

	_, err = cmds.PlaceBid(ctx, bidderB, PlaceBidInput{ListingID: listingID, AmountCents: 11000})
	require.NoError(t, err)
	assert.Equal(t, int64(11000), store.listings[listingID].CurrentHighBidCents())
}

func TestAuctionCommands_PlaceBid_SelfAndDuplicate(t *testing.T) {
	store := newMemStore()
	creator := store.addUser()
	bidder := store.addUser()
	listingID := store.addListing(creator, auction.ModeBid, 10000)

	cmds := newAuctionCommands(store)
	ctx := context.Background()

	_, err := cmds.PlaceBid(ctx, creator, PlaceBidInput{ListingID: listingID, AmountCents: 20000})
	assert.ErrorIs(t, err, ErrSelfBid)

	_, err = cmds.PlaceBid(ctx, bidder, PlaceBidInput{ListingID: listingID, AmountCents: 10000})
	require.NoError(t, err)

	// One pending bid per bidder per listing
	_, err = cmds.PlaceBid(ctx, bidder, PlaceBidInput{ListingID: listingID, AmountCents: 12000})
	assert.ErrorIs(t, err, ErrDuplicatePendingBid)

	// The duplicate wins over the amount rules: a pending bidder is
	// told about the duplicate even when the new amount is too low
	_, err = cmds.PlaceBid(ctx, bidder, PlaceBidInput{ListingID: listingID, AmountCents: 1})
	assert.ErrorIs(t, err, ErrDuplicatePendingBid)

	_, err = cmds.PlaceBid(ctx, bidder, PlaceBidInput{ListingID: uuid.New(), AmountCents: 10000})
	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestAuctionCommands_PlaceBid_RequestMode(t *testing.T) {
	store := newMemStore()
	creator := store.addUser()
	bidder := store.addUser()
	listingID := store.addListing(creator, auction.ModeRequest, 0)

	cmds := newAuctionCommands(store)

	// Request-mode offers carry no amount rules
	_, err := cmds.PlaceBid(context.Background(), bidder, PlaceBidInput{
		ListingID: listingID, AmountCents: 0, Message: "open to collab",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), store.listings[listingID].CurrentHighBidCents())
}

func TestAuctionCommands_PlaceBid_ConcurrentSameAmount(t *testing.T) {
	store := newMemStore()
	creator := store.addUser()
	listingID := store.addListing(creator, auction.ModeBid, 10000)

	const n = 8
	bidders := make([]uuid.UUID, n)
	for i := range bidders {
		bidders[i] = store.addUser()
	}

	cmds := newAuctionCommands(store)

	var wg sync.WaitGroup
	errsCh := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(bidder uuid.UUID) {
			defer wg.Done()
			_, err := cmds.PlaceBid(context.Background(), bidder, PlaceBidInput{
				ListingID: listingID, AmountCents: 10000,
			})
			errsCh <- err
		}(bidders[i])
	}
	wg.Wait()
	close(errsCh)

	// The row lock serializes the bids: exactly one lands at the minimum,
	// everyone else revalidates against the new high bid and fails.
	var succeeded int
	for err := range errsCh {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrIncrementTooSmall)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, int64(10000), store.listings[listingID].CurrentHighBidCents())
}

func TestAuctionCommands_ResolveBid(t *testing.T) {
	store := newMemStore()
	creator := store.addUser()
	bidder := store.addUser()
	stranger := store.addUser()
	listingID := store.addListing(creator, auction.ModeBid, 10000)

	cmds := newAuctionCommands(store)
	ctx := context.Background()

	bidID, err := cmds.PlaceBid(ctx, bidder, PlaceBidInput{ListingID: listingID, AmountCents: 10000})
	require.NoError(t, err)

	assert.ErrorIs(t, cmds.AcceptBid(ctx, stranger, bidID), ErrForbidden)
	assert.ErrorIs(t, cmds.AcceptBid(ctx, creator, uuid.New()), ErrBidNotFound)

	require.NoError(t, cmds.AcceptBid(ctx, creator, bidID))
	assert.Equal(t, auction.BidAccepted, store.bids[bidID].status)
	assert.Equal(t, auction.ListingClosed, store.listings[listingID].Status())

	// Already resolved
	assert.ErrorIs(t, cmds.RejectBid(ctx, creator, bidID), ErrBidNotPending)

	// Closed listings take no further bids
	_, err = cmds.PlaceBid(ctx, stranger, PlaceBidInput{ListingID: listingID, AmountCents: 20000})
	assert.ErrorIs(t, err, ErrListingInactive)
}
