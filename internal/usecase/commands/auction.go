package commands

import (
	"context"
	"errors"
	"time"

	"studiohub/internal/domain/auction"
	"studiohub/internal/infra"
	"studiohub/internal/pkg/clock"
	"studiohub/internal/pkg/errs"
	"studiohub/internal/usecase/shared"
	"studiohub/internal/usecase/sideeffect"

	"github.com/google/uuid"
)

var (
	ErrListingNotFound      = errs.New("listing not found")
	ErrListingInactive      = errs.New("listing is not open for bids")
	ErrSelfBid              = errs.New("creator cannot bid on own listing")
	ErrBidTooLow            = errs.New("bid is below the required amount")
	ErrIncrementTooSmall    = errs.New("bid does not clear the minimum increment")
	ErrDuplicatePendingBid  = errs.New("bidder already has a pending bid on this listing")
	ErrBidNotFound          = errs.New("bid not found")
	ErrBidNotPending        = errs.New("bid has already been resolved")
	ErrMissingBidPermission = errs.New("party may not create listings")
)

type CreateListingInput struct {
	Title           string
	Description     string
	Mode            string
	MinimumBidCents int64
	ExpiresAt       *time.Time
}

type PlaceBidInput struct {
	ListingID   uuid.UUID
	AmountCents int64
	Message     string
}

type AuctionCommands interface {
	CreateListing(ctx context.Context, actorID uuid.UUID, in CreateListingInput) (uuid.UUID, error)
	PlaceBid(ctx context.Context, actorID uuid.UUID, in PlaceBidInput) (uuid.UUID, error)
	AcceptBid(ctx context.Context, actorID, bidID uuid.UUID) error
	RejectBid(ctx context.Context, actorID, bidID uuid.UUID) error
}

type auctionCommandsImpl struct {
	uow        shared.UnitOfWork
	dispatcher *sideeffect.Dispatcher
	clock      clock.Clock
}

func NewAuctionCommands(uow shared.UnitOfWork, dispatcher *sideeffect.Dispatcher, clock clock.Clock) AuctionCommands {
	return &auctionCommandsImpl{uow: uow, dispatcher: dispatcher, clock: clock}
}

func (a *auctionCommandsImpl) CreateListing(ctx context.Context, actorID uuid.UUID, in CreateListingInput) (uuid.UUID, error) {
	actor, err := a.uow.CommandReads().UserByID(ctx, actorID)
	if err != nil {
		return uuid.Nil, markInfra(err)
	}
	if !actor.CanUploadBeats {
		return uuid.Nil, ErrMissingBidPermission
	}

	listing, err := auction.NewListing(actorID, in.Title, in.Description, auction.Mode(in.Mode), in.MinimumBidCents, in.ExpiresAt)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Listings().Create(ctx, listing)
	})
	if err != nil {
		return uuid.Nil, markInfra(err)
	}

	return listing.ID(), nil
}

// PlaceBid validates against the committed high bid under a row lock, so
// two concurrent bidders serialize and the loser revalidates against the
// winner's amount.
func (a *auctionCommandsImpl) PlaceBid(ctx context.Context, actorID uuid.UUID, in PlaceBidInput) (uuid.UUID, error) {
	var bidID uuid.UUID
	var ev sideeffect.Event

	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		listing, err := tx.Listings().LockByID(ctx, in.ListingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrListingNotFound)
			}
			return markInfra(err)
		}

		if err := listing.ValidateBidder(actorID, a.clock.Now()); err != nil {
			return mapBidErr(err)
		}

		// Duplicate check precedes the amount rules: a bidder with a
		// pending bid is rejected for that reason, whatever the amount.
		pending, err := tx.Bids().HasPending(ctx, listing.ID(), actorID)
		if err != nil {
			return markInfra(err)
		}
		if pending {
			return ErrDuplicatePendingBid
		}

		if err := listing.ValidateAmount(in.AmountCents); err != nil {
			return mapBidErr(err)
		}

		bid, err := auction.NewBid(listing.ID(), actorID, in.AmountCents, in.Message)
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}
		if err := tx.Bids().Create(ctx, bid); err != nil {
			// Concurrent duplicate slips past HasPending; the partial
			// unique index catches it.
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, ErrDuplicatePendingBid)
			}
			return markInfra(err)
		}

		if err := listing.RecordBid(in.AmountCents); err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}
		if listing.Mode() == auction.ModeBid {
			if err := tx.Listings().UpdateHighBid(ctx, listing.ID(), in.AmountCents); err != nil {
				return markInfra(err)
			}
		}

		bidID = bid.ID()
		ev = sideeffect.Event{
			Kind:        "bid",
			EntityID:    bid.ID(),
			Action:      "place",
			NewState:    string(auction.BidPending),
			ActorID:     actorID,
			Counterpart: listing.CreatorID(),
			Title:       "New offer received",
			Message:     listing.Title(),
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	a.dispatcher.Dispatch(ctx, ev)
	return bidID, nil
}

// AcceptBid resolves the winning bid and closes the listing in one
// transaction.
func (a *auctionCommandsImpl) AcceptBid(ctx context.Context, actorID, bidID uuid.UUID) error {
	return a.resolveBid(ctx, actorID, bidID, auction.BidAccepted, "Offer accepted")
}

func (a *auctionCommandsImpl) RejectBid(ctx context.Context, actorID, bidID uuid.UUID) error {
	return a.resolveBid(ctx, actorID, bidID, auction.BidRejected, "Offer declined")
}

func (a *auctionCommandsImpl) resolveBid(
	ctx context.Context,
	actorID, bidID uuid.UUID,
	to auction.BidStatus,
	title string,
) error {
	var ev sideeffect.Event

	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().BidByID(ctx, bidID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrBidNotFound)
			}
			return markInfra(err)
		}

		listing, err := tx.Listings().LockByID(ctx, snap.ListingID)
		if err != nil {
			return markInfra(err)
		}
		if listing.CreatorID() != actorID {
			return ErrForbidden
		}

		rows, err := tx.Bids().UpdateStatus(ctx, bidID, auction.BidPending, to)
		if err != nil {
			return markInfra(err)
		}
		if rows == 0 {
			return ErrBidNotPending
		}

		if to == auction.BidAccepted {
			if err := tx.Listings().UpdateStatus(ctx, listing.ID(), auction.ListingClosed); err != nil {
				return markInfra(err)
			}
		}

		ev = sideeffect.Event{
			Kind:         "bid",
			EntityID:     bidID,
			Action:       "resolve",
			OldState:     string(auction.BidPending),
			NewState:     string(to),
			ActorID:      actorID,
			Counterpart:  snap.BidderID,
			Title:        title,
			Message:      listing.Title(),
			WithActivity: true,
		}
		return nil
	})
	if err != nil {
		return err
	}

	a.dispatcher.Dispatch(ctx, ev)
	return nil
}

func mapBidErr(err error) error {
	switch {
	case errors.Is(err, auction.ErrListingInactive):
		return errs.Mark(err, ErrListingInactive)
	case errors.Is(err, auction.ErrSelfBid):
		return errs.Mark(err, ErrSelfBid)
	case errors.Is(err, auction.ErrBidTooLow):
		return errs.Mark(err, ErrBidTooLow)
	case errors.Is(err, auction.ErrIncrementTooSmall):
		return errs.Mark(err, ErrIncrementTooSmall)
	default:
		return errs.Mark(err, ErrDomainValidation)
	}
}
