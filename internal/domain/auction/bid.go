package auction

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidBidAmount = errors.New("bid amount cannot be negative")
	ErrBidNotPending    = errors.New("bid has already been resolved")
)

type BidStatus string

const (
	BidPending  BidStatus = "pending"
	BidAccepted BidStatus = "accepted"
	BidRejected BidStatus = "rejected"
)

type Bid struct {
	id          uuid.UUID
	listingID   uuid.UUID
	bidderID    uuid.UUID
	amountCents int64
	message     string
	status      BidStatus
	createdAt   time.Time
}

func NewBid(listingID, bidderID uuid.UUID, amountCents int64, message string) (*Bid, error) {
	if amountCents < 0 {
		return nil, ErrInvalidBidAmount
	}
	return &Bid{
		id:          uuid.New(),
		listingID:   listingID,
		bidderID:    bidderID,
		amountCents: amountCents,
		message:     message,
		status:      BidPending,
	}, nil
}

func ReconstructBid(
	id, listingID, bidderID uuid.UUID,
	amountCents int64,
	message string,
	status BidStatus,
	createdAt time.Time,
) *Bid {
	return &Bid{
		id:          id,
		listingID:   listingID,
		bidderID:    bidderID,
		amountCents: amountCents,
		message:     message,
		status:      status,
		createdAt:   createdAt,
	}
}

func (b *Bid) Accept() error {
	if b.status != BidPending {
		return ErrBidNotPending
	}
	b.status = BidAccepted
	return nil
}

func (b *Bid) Reject() error {
	if b.status != BidPending {
		return ErrBidNotPending
	}
	b.status = BidRejected
	return nil
}

func (b *Bid) ID() uuid.UUID        { return b.id }
func (b *Bid) ListingID() uuid.UUID { return b.listingID }
func (b *Bid) BidderID() uuid.UUID  { return b.bidderID }
func (b *Bid) AmountCents() int64   { return b.amountCents }
func (b *Bid) Message() string      { return b.message }
func (b *Bid) Status() BidStatus    { return b.status }
func (b *Bid) CreatedAt() time.Time { return b.createdAt }
