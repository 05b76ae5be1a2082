package auction

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyListingTitle = errors.New("listing title cannot be empty")
	ErrInvalidMinimumBid = errors.New("minimum bid must be positive")
	ErrInvalidMode       = errors.New("invalid listing mode")
	ErrListingInactive   = errors.New("listing is not open for bids")
	ErrSelfBid           = errors.New("creator cannot bid on own listing")
	ErrBidTooLow         = errors.New("bid is below the required amount")
	ErrIncrementTooSmall = errors.New("bid does not exceed the high bid by the minimum increment")
	ErrHighBidDecreased  = errors.New("high bid may never decrease")
)

// MinBidIncrementCents is the fixed step a new bid must clear over the
// current high bid on bid-mode listings (10 currency units).
const MinBidIncrementCents int64 = 1000

type Mode string

const (
	ModeBid     Mode = "bid"     // monetary offers, monotonic high bid
	ModeRequest Mode = "request" // free-form offers, no amount rules
)

func (m Mode) IsValid() bool {
	return m == ModeBid || m == ModeRequest
}

type ListingStatus string

const (
	ListingActive  ListingStatus = "active"
	ListingClosed  ListingStatus = "closed"
	ListingExpired ListingStatus = "expired"
)

// Listing is a collaboration opportunity open to offers.
type Listing struct {
	id                  uuid.UUID
	creatorID           uuid.UUID
	title               string
	description         string
	mode                Mode
	minimumBidCents     int64
	currentHighBidCents int64
	status              ListingStatus
	expiresAt           *time.Time
	createdAt           time.Time
	updatedAt           time.Time
}

func NewListing(
	creatorID uuid.UUID,
	title, description string,
	mode Mode,
	minimumBidCents int64,
	expiresAt *time.Time,
) (*Listing, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyListingTitle
	}
	if !mode.IsValid() {
		return nil, ErrInvalidMode
	}
	if mode == ModeBid && minimumBidCents <= 0 {
		return nil, ErrInvalidMinimumBid
	}

	return &Listing{
		id:              uuid.New(),
		creatorID:       creatorID,
		title:           title,
		description:     description,
		mode:            mode,
		minimumBidCents: minimumBidCents,
		status:          ListingActive,
		expiresAt:       expiresAt,
	}, nil
}

func ReconstructListing(
	id, creatorID uuid.UUID,
	title, description string,
	mode Mode,
	minimumBidCents, currentHighBidCents int64,
	status ListingStatus,
	expiresAt *time.Time,
	createdAt, updatedAt time.Time,
) *Listing {
	return &Listing{
		id:                  id,
		creatorID:           creatorID,
		title:               title,
		description:         description,
		mode:                mode,
		minimumBidCents:     minimumBidCents,
		currentHighBidCents: currentHighBidCents,
		status:              status,
		expiresAt:           expiresAt,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
	}
}

func (l *Listing) IsOpenAt(now time.Time) bool {
	if l.status != ListingActive {
		return false
	}
	if l.expiresAt != nil && !now.Before(*l.expiresAt) {
		return false
	}
	return true
}

// ValidateBid applies the ledger rules to a candidate bid. Amount rules
// only apply to bid-mode listings; request-mode offers may carry any
// amount including zero.
func (l *Listing) ValidateBid(bidderID uuid.UUID, amountCents int64, now time.Time) error {
	if err := l.ValidateBidder(bidderID, now); err != nil {
		return err
	}
	return l.ValidateAmount(amountCents)
}

// ValidateBidder checks who may bid and when, independent of the amount.
func (l *Listing) ValidateBidder(bidderID uuid.UUID, now time.Time) error {
	if !l.IsOpenAt(now) {
		return ErrListingInactive
	}
	if bidderID == l.creatorID {
		return ErrSelfBid
	}
	return nil
}

// ValidateAmount applies the monetary rules of bid-mode listings.
func (l *Listing) ValidateAmount(amountCents int64) error {
	if l.mode != ModeBid {
		return nil
	}

	floor := l.minimumBidCents
	if l.currentHighBidCents > floor {
		floor = l.currentHighBidCents
	}
	if amountCents < floor {
		return ErrBidTooLow
	}
	if l.currentHighBidCents > 0 && amountCents < l.currentHighBidCents+MinBidIncrementCents {
		return ErrIncrementTooSmall
	}
	return nil
}

// RecordBid moves the tracked high bid to the accepted amount. The
// increment rule in ValidateBid makes the high bid non-decreasing; this
// guard keeps that invariant explicit should a withdrawal path ever
// try to lower it.
func (l *Listing) RecordBid(amountCents int64) error {
	if l.mode != ModeBid {
		return nil
	}
	if amountCents < l.currentHighBidCents {
		return ErrHighBidDecreased
	}
	l.currentHighBidCents = amountCents
	return nil
}

func (l *Listing) Close() {
	l.status = ListingClosed
}

func (l *Listing) ID() uuid.UUID               { return l.id }
func (l *Listing) CreatorID() uuid.UUID        { return l.creatorID }
func (l *Listing) Title() string               { return l.title }
func (l *Listing) Description() string         { return l.description }
func (l *Listing) Mode() Mode                  { return l.mode }
func (l *Listing) MinimumBidCents() int64      { return l.minimumBidCents }
func (l *Listing) CurrentHighBidCents() int64  { return l.currentHighBidCents }
func (l *Listing) Status() ListingStatus       { return l.status }
func (l *Listing) ExpiresAt() *time.Time       { return l.expiresAt }
func (l *Listing) CreatedAt() time.Time        { return l.createdAt }
func (l *Listing) UpdatedAt() time.Time        { return l.updatedAt }
