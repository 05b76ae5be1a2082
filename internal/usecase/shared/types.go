package shared

import (
	"time"

	"github.com/google/uuid"
)

// Minimal snapshots for command-side validation reads.

type StudioSnapshot struct {
	ID              uuid.UUID
	OwnerID         uuid.UUID
	Name            string
	Description     string
	HourlyRateCents int64
	Active          bool
}

type ReservationSnapshot struct {
	ID          uuid.UUID
	StudioID    uuid.UUID
	OwnerID     uuid.UUID // studio owner
	RequesterID uuid.UUID
	Status      string
	StartTime   time.Time
	EndTime     time.Time
}

type JobSnapshot struct {
	ID         uuid.UUID
	ClientID   uuid.UUID
	ProviderID uuid.UUID
	Title      string
	Status     string
}

type BidSnapshot struct {
	ID          uuid.UUID
	ListingID   uuid.UUID
	BidderID    uuid.UUID
	AmountCents int64
	Status      string
}

type AuthorizedUser struct {
	ID               uuid.UUID
	Email            string
	DisplayName      string
	HashedPassword   string
	CanUploadBeats   bool
	CanCreateStudios bool
	CanAcceptJobs    bool
	IsProducer       bool
	Active           bool
}
