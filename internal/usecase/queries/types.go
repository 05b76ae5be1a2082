package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type StudioView struct {
	ID              uuid.UUID `json:"id"`
	OwnerID         uuid.UUID `json:"owner_id"`
	OwnerName       string    `json:"owner_name"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	HourlyRateCents int64     `json:"hourly_rate_cents"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type ReservationView struct {
	ID            uuid.UUID `json:"id"`
	StudioID      uuid.UUID `json:"studio_id"`
	StudioName    string    `json:"studio_name"`
	RequesterID   uuid.UUID `json:"requester_id"`
	RequesterName string    `json:"requester_name"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Status        string    `json:"status"`
	AmountCents   int64     `json:"amount_cents"`
	Note          *string   `json:"note,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ReservationListItem struct {
	ID          uuid.UUID `json:"id"`
	StudioID    uuid.UUID `json:"studio_id"`
	StudioName  string    `json:"studio_name"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"`
	AmountCents int64     `json:"amount_cents"`
	CreatedAt   time.Time `json:"created_at"`
}

type JobView struct {
	ID           uuid.UUID  `json:"id"`
	ClientID     uuid.UUID  `json:"client_id"`
	ClientName   string     `json:"client_name"`
	ProviderID   uuid.UUID  `json:"provider_id"`
	ProviderName string     `json:"provider_name"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	BudgetCents  *int64     `json:"budget_cents,omitempty"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	Status       string     `json:"status"`
	Response     *string    `json:"response,omitempty"`
	RespondedAt  *time.Time `json:"responded_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type ListingView struct {
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

type BidView struct {
	ID          uuid.UUID `json:"id"`
	ListingID   uuid.UUID `json:"listing_id"`
	BidderID    uuid.UUID `json:"bidder_id"`
	BidderName  string    `json:"bidder_name"`
	AmountCents int64     `json:"amount_cents"`
	Message     string    `json:"message"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type ClubView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	ClubType    string    `json:"club_type"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	MemberCount int64     `json:"member_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type NotificationView struct {
	ID        uuid.UUID `json:"id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	RefKind   string    `json:"ref_kind"`
	RefID     uuid.UUID `json:"ref_id"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthorizedUserView carries the capability flags middleware needs for
// authorization decisions.
type AuthorizedUserView struct {
	ID               uuid.UUID `json:"id"`
	Email            string    `json:"email"`
	DisplayName      string    `json:"display_name"`
	CanUploadBeats   bool      `json:"can_upload_beats"`
	CanCreateStudios bool      `json:"can_create_studios"`
	CanAcceptJobs    bool      `json:"can_accept_jobs"`
	IsProducer       bool      `json:"is_producer"`
	IsActive         bool      `json:"is_active"`
}
