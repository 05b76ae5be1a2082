//go:build e2e

package auction_test

import (
	"context"
	"net/http"
	"testing"

	"studiohub/internal/handler/dto/response"
	"studiohub/tests/common/authtest"
	"studiohub/tests/common/dbtest"
	"studiohub/tests/common/httptest"
	"studiohub/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const listingsURL = "/api/listings"

type AuctionSuite struct {
	e2e.SharedSuite
}

func TestAuctionSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(AuctionSuite))
}

// insertListing writes a row without a status so the column default
// decides the initial state.
func (s *AuctionSuite) insertListing(creatorID uuid.UUID, minimumBidCents int64) uuid.UUID {
	t := s.T()
	id := uuid.New()
	_, err := s.DB.Exec(context.Background(), `
		INSERT INTO listings (id, creator_id, title, mode, minimum_bid_cents)
		VALUES ($1, $2, 'Beat pack', 'bid', $3)`,
		id, creatorID, minimumBidCents)
	require.NoError(t, err)
	return id
}

func (s *AuctionSuite) TestListingDefaults() {
	s.Run("defaulted rows come up active and biddable", func() {
		t := s.T()

		creatorID := dbtest.CreateTestUser(t, s.DB, "producer@example.com", dbtest.UserCaps{CanUploadBeats: true})
		listingID := s.insertListing(creatorID, 10000)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, listingsURL+"/"+listingID.String(), nil, "")
		var listing response.ListingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &listing)
		require.Equal(t, "active", listing.Status)

		_, token := authtest.CreateAndLogin(t, s.DB, s.Router, "bidder@example.com", dbtest.UserCaps{})
		bw := httptest.PerformRequest(t, s.Router, http.MethodPost,
			listingsURL+"/"+listingID.String()+"/bids",
			map[string]any{"amount_cents": 10000}, token)
		require.Equal(t, http.StatusCreated, bw.Code, bw.Body.String())
	})
}

func (s *AuctionSuite) TestPlaceBid() {
	s.Run("a pending bid is reported before any amount rule", func() {
		t := s.T()

		creatorID := dbtest.CreateTestUser(t, s.DB, "producer@example.com", dbtest.UserCaps{CanUploadBeats: true})
		listingID := s.insertListing(creatorID, 10000)
		_, token := authtest.CreateAndLogin(t, s.DB, s.Router, "bidder@example.com", dbtest.UserCaps{})

		bidURL := listingsURL + "/" + listingID.String() + "/bids"
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bidURL,
			map[string]any{"amount_cents": 10000}, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		// way below the floor, yet the duplicate is the reported reason
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bidURL,
			map[string]any{"amount_cents": 1}, token)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "pending bid")
	})
}
