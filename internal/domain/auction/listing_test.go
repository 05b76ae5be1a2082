//go:build unit

package auction_test

import (
	"math/rand"
	"testing"
	"time"

	"studiohub/internal/domain/auction"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newBidListing(t *testing.T, minimumCents int64) *auction.Listing {
	t.Helper()
	l, err := auction.NewListing(uuid.New(), "Need a vocalist", "", auction.ModeBid, minimumCents, nil)
	require.NoError(t, err)
	return l
}

func placeBid(t *testing.T, l *auction.Listing, amountCents int64) error {
	t.Helper()
	if err := l.ValidateBid(uuid.New(), amountCents, now); err != nil {
		return err
	}
	require.NoError(t, l.RecordBid(amountCents))
	return nil
}

// Worked example: minimum 100 units. First bid at the minimum is accepted;
// a follow-up must clear high + increment (110), not merely beat the high.
func TestBidIncrementScenario(t *testing.T) {
	l := newBidListing(t, 10000)

	require.NoError(t, placeBid(t, l, 10000))
	assert.Equal(t, int64(10000), l.CurrentHighBidCents())

	err := placeBid(t, l, 10500)
	assert.ErrorIs(t, err, auction.ErrIncrementTooSmall)
	assert.Equal(t, int64(10000), l.CurrentHighBidCents())

	require.NoError(t, placeBid(t, l, 11000))
	assert.Equal(t, int64(11000), l.CurrentHighBidCents())
}

func TestValidateBid(t *testing.T) {
	t.Run("below minimum is too low", func(t *testing.T) {
		l := newBidListing(t, 10000)
		assert.ErrorIs(t, l.ValidateBid(uuid.New(), 9999, now), auction.ErrBidTooLow)
	})

	t.Run("below current high is too low", func(t *testing.T) {
		l := newBidListing(t, 10000)
		require.NoError(t, placeBid(t, l, 20000))
		assert.ErrorIs(t, l.ValidateBid(uuid.New(), 15000, now), auction.ErrBidTooLow)
	})

	t.Run("creator cannot bid", func(t *testing.T) {
		l := newBidListing(t, 10000)
		assert.ErrorIs(t, l.ValidateBid(l.CreatorID(), 20000, now), auction.ErrSelfBid)
	})

	t.Run("closed listing rejects bids", func(t *testing.T) {
		l := newBidListing(t, 10000)
		l.Close()
		assert.ErrorIs(t, l.ValidateBid(uuid.New(), 20000, now), auction.ErrListingInactive)
	})

	t.Run("past expiry rejects bids", func(t *testing.T) {
		expiry := now.Add(-time.Minute)
		l, err := auction.NewListing(uuid.New(), "Beat collab", "", auction.ModeBid, 10000, &expiry)
		require.NoError(t, err)
		assert.ErrorIs(t, l.ValidateBid(uuid.New(), 20000, now), auction.ErrListingInactive)
	})

	t.Run("request mode skips amount rules", func(t *testing.T) {
		l, err := auction.NewListing(uuid.New(), "Open collab", "", auction.ModeRequest, 0, nil)
		require.NoError(t, err)
		assert.NoError(t, l.ValidateBid(uuid.New(), 0, now))
	})
}

// The tracked high bid never decreases across any sequence of submissions:
// accepted bids only move it up, rejected ones leave it unchanged.
func TestHighBidMonotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	l := newBidListing(t, 5000)

	prev := l.CurrentHighBidCents()
	for i := 0; i < 500; i++ {
		amount := int64(rng.Intn(40000))
		_ = placeBid(t, l, amount)
		assert.GreaterOrEqual(t, l.CurrentHighBidCents(), prev)
		prev = l.CurrentHighBidCents()
	}

	assert.ErrorIs(t, l.RecordBid(prev-1), auction.ErrHighBidDecreased)
}

func TestBidResolution(t *testing.T) {
	b, err := auction.NewBid(uuid.New(), uuid.New(), 10000, "let's work")
	require.NoError(t, err)
	assert.Equal(t, auction.BidPending, b.Status())

	require.NoError(t, b.Accept())
	assert.Equal(t, auction.BidAccepted, b.Status())
	assert.ErrorIs(t, b.Reject(), auction.ErrBidNotPending)
}
