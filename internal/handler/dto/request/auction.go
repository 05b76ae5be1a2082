package request

import (
	"time"

	"studiohub/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateListingRequest struct {
	Title           string     `json:"title" binding:"required,max=200"`
	Description     string     `json:"description,omitempty"`
	Mode            string     `json:"mode" binding:"required,oneof=bid request"`
	MinimumBidCents int64      `json:"minimum_bid_cents" binding:"gte=0"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
}

func (r CreateListingRequest) ToInput() commands.CreateListingInput {
	return commands.CreateListingInput{
		Title:           r.Title,
		Description:     r.Description,
		Mode:            r.Mode,
		MinimumBidCents: r.MinimumBidCents,
		ExpiresAt:       r.ExpiresAt,
	}
}

type PlaceBidRequest struct {
	AmountCents int64  `json:"amount_cents" binding:"gte=0"`
	Message     string `json:"message,omitempty" binding:"max=2000"`
}

func (r PlaceBidRequest) ToInput(listingID uuid.UUID) commands.PlaceBidInput {
	return commands.PlaceBidInput{
		ListingID:   listingID,
		AmountCents: r.AmountCents,
		Message:     r.Message,
	}
}
