package response

import (
	"time"

	"studiohub/internal/usecase/queries"

	"github.com/google/uuid"
)

type ListingResponse struct {
	ID                  uuid.UUID  `json:"id"`
	CreatorID           uuid.UUID  `json:"creator_id"`
	CreatorName         string     `json:"creator_name"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	Mode                string     `json:"mode"`
	MinimumBidCents     int64      `json:"minimum_bid_cents"`
	CurrentHighBidCents int64      `json:"current_high_bid_cents"`
	Status              string     `json:"status"`
	BidCount            int64      `json:"bid_count"`
	ExpiresAt           *time.Time `json:"expires_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
}

type BidResponse struct {
	ID          uuid.UUID `json:"id"`
	ListingID   uuid.UUID `json:"listing_id"`
	BidderID    uuid.UUID `json:"bidder_id"`
	BidderName  string    `json:"bidder_name"`
	AmountCents int64     `json:"amount_cents"`
	Message     string    `json:"message"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromListingView(v *queries.ListingView) *ListingResponse {
	return &ListingResponse{
		ID:                  v.ID,
		CreatorID:           v.CreatorID,
		CreatorName:         v.CreatorName,
		Title:               v.Title,
		Description:         v.Description,
		Mode:                v.Mode,
		MinimumBidCents:     v.MinimumBidCents,
		CurrentHighBidCents: v.CurrentHighBidCents,
		Status:              v.Status,
		BidCount:            v.BidCount,
		ExpiresAt:           v.ExpiresAt,
		CreatedAt:           v.CreatedAt,
	}
}

func FromListingViews(views []*queries.ListingView) []*ListingResponse {
	out := make([]*ListingResponse, len(views))
	for i, v := range views {
		out[i] = FromListingView(v)
	}
	return out
}

func FromBidView(v *queries.BidView) *BidResponse {
	return &BidResponse{
		ID:          v.ID,
		ListingID:   v.ListingID,
		BidderID:    v.BidderID,
		BidderName:  v.BidderName,
		AmountCents: v.AmountCents,
		Message:     v.Message,
		Status:      v.Status,
		CreatedAt:   v.CreatedAt,
	}
}

func FromBidViews(views []*queries.BidView) []*BidResponse {
	out := make([]*BidResponse, len(views))
	for i, v := range views {
		out[i] = FromBidView(v)
	}
	return out
}
