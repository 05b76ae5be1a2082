//go:build unit

package commands

import (
	"context"
	"sync"
	"time"

	"studiohub/internal/domain/auction"
	"studiohub/internal/domain/club"
	"studiohub/internal/domain/job"
	"studiohub/internal/domain/notification"
	"studiohub/internal/domain/reservation"
	"studiohub/internal/domain/studio"
	"studiohub/internal/infra"
	"studiohub/internal/usecase/shared"

	"github.com/google/uuid"
)

// memStore is an in-memory store with transactional semantics good
// enough for command tests: Within holds a global lock, writes are
// journaled, and the journal applies only when the closure returns nil.
// Rollback is therefore real, and concurrent commands serialize the way
// they would against the database.

type grantKey struct {
	userID uuid.UUID
	role   club.RoleType
}

type storedReservation struct {
	id          uuid.UUID
	studioID    uuid.UUID
	requesterID uuid.UUID
	start       time.Time
	end         time.Time
	status      reservation.Status
}

type storedJob struct {
	id          uuid.UUID
	clientID    uuid.UUID
	providerID  uuid.UUID
	title       string
	status      job.Status
	response    string
	respondedAt *time.Time
}

type storedBid struct {
	id          uuid.UUID
	listingID   uuid.UUID
	bidderID    uuid.UUID
	amountCents int64
	status      auction.BidStatus
}

type memStore struct {
	mu           sync.Mutex
	users        map[uuid.UUID]*shared.AuthorizedUser
	usersByEmail map[string]uuid.UUID
	studios      map[uuid.UUID]*shared.StudioSnapshot
	reservations map[uuid.UUID]*storedReservation
	jobs         map[uuid.UUID]*storedJob
	listings     map[uuid.UUID]*auction.Listing
	bids         map[uuid.UUID]*storedBid
	clubs        map[uuid.UUID]*club.Club
	members      []club.Member
	grants       map[grantKey]uuid.UUID
	activities   []*notification.ActivityRecord

	activityErr error // fault injection for atomicity tests
}

func newMemStore() *memStore {
	return &memStore{
		users:        make(map[uuid.UUID]*shared.AuthorizedUser),
		usersByEmail: make(map[string]uuid.UUID),
		studios:      make(map[uuid.UUID]*shared.StudioSnapshot),
		reservations: make(map[uuid.UUID]*storedReservation),
		jobs:         make(map[uuid.UUID]*storedJob),
		listings:     make(map[uuid.UUID]*auction.Listing),
		bids:         make(map[uuid.UUID]*storedBid),
		clubs:        make(map[uuid.UUID]*club.Club),
		grants:       make(map[grantKey]uuid.UUID),
	}
}

func (s *memStore) addUser(caps ...func(*shared.AuthorizedUser)) uuid.UUID {
	u := &shared.AuthorizedUser{ID: uuid.New(), Email: uuid.NewString() + "@example.com", Active: true}
	for _, f := range caps {
		f(u)
	}
	s.users[u.ID] = u
	s.usersByEmail[u.Email] = u.ID
	return u.ID
}

func (s *memStore) addStudio(ownerID uuid.UUID, rateCents int64) uuid.UUID {
	st := &shared.StudioSnapshot{
		ID: uuid.New(), OwnerID: ownerID, Name: "Studio A",
		HourlyRateCents: rateCents, Active: true,
	}
	s.studios[st.ID] = st
	return st.ID
}

func (s *memStore) addListing(creatorID uuid.UUID, mode auction.Mode, minCents int64) uuid.UUID {
	l, _ := auction.NewListing(creatorID, "Beat pack", "", mode, minCents, nil)
	s.listings[l.ID()] = l
	return l.ID()
}

// memUoW implements shared.UnitOfWork over memStore.

type memUoW struct {
	store *memStore
}

func newMemUoW(store *memStore) *memUoW {
	return &memUoW{store: store}
}

func (u *memUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	tx := &memTx{store: u.store}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	for _, apply := range tx.journal {
		apply()
	}
	return nil
}

func (u *memUoW) CommandReads() shared.CommandReads {
	return &memReads{store: u.store, locked: false}
}

// memTx journals writes; reads see committed state (the global lock
// means nothing else can interleave).

type memTx struct {
	store   *memStore
	journal []func()
}

func (t *memTx) Users() shared.UserRepository                 { return (*memUserRepo)(t) }
func (t *memTx) Studios() shared.StudioRepository             { return (*memStudioRepo)(t) }
func (t *memTx) Reservations() shared.ReservationRepository   { return (*memReservationRepo)(t) }
func (t *memTx) Jobs() shared.JobRepository                   { return (*memJobRepo)(t) }
func (t *memTx) Listings() shared.ListingRepository           { return (*memListingRepo)(t) }
func (t *memTx) Bids() shared.BidRepository                   { return (*memBidRepo)(t) }
func (t *memTx) Clubs() shared.ClubRepository                 { return (*memClubRepo)(t) }
func (t *memTx) Notifications() shared.NotificationRepository { return (*memNotificationRepo)(t) }
func (t *memTx) Reads() shared.CommandReads                   { return &memReads{store: t.store, locked: true} }

type memReads struct {
	store  *memStore
	locked bool // true inside Within, where the lock is already held
}

func (r *memReads) lock() func() {
	if r.locked {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func notFound(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindNotFound)
}

func (r *memReads) StudioByID(_ context.Context, id uuid.UUID) (*shared.StudioSnapshot, error) {
	defer r.lock()()
	st, ok := r.store.studios[id]
	if !ok {
		return nil, notFound("studio")
	}
	cp := *st
	return &cp, nil
}

func (r *memReads) ReservationByID(_ context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	defer r.lock()()
	res, ok := r.store.reservations[id]
	if !ok {
		return nil, notFound("reservation")
	}
	st, ok := r.store.studios[res.studioID]
	if !ok {
		return nil, notFound("studio")
	}
	return &shared.ReservationSnapshot{
		ID: res.id, StudioID: res.studioID, OwnerID: st.OwnerID,
		RequesterID: res.requesterID, Status: string(res.status),
		StartTime: res.start, EndTime: res.end,
	}, nil
}

func (r *memReads) JobByID(_ context.Context, id uuid.UUID) (*shared.JobSnapshot, error) {
	defer r.lock()()
	j, ok := r.store.jobs[id]
	if !ok {
		return nil, notFound("job")
	}
	return &shared.JobSnapshot{
		ID: j.id, ClientID: j.clientID, ProviderID: j.providerID,
		Title: j.title, Status: string(j.status),
	}, nil
}

func (r *memReads) BidByID(_ context.Context, id uuid.UUID) (*shared.BidSnapshot, error) {
	defer r.lock()()
	b, ok := r.store.bids[id]
	if !ok {
		return nil, notFound("bid")
	}
	return &shared.BidSnapshot{
		ID: b.id, ListingID: b.listingID, BidderID: b.bidderID,
		AmountCents: b.amountCents, Status: string(b.status),
	}, nil
}

func (r *memReads) UserByEmail(_ context.Context, email string) (*shared.AuthorizedUser, error) {
	defer r.lock()()
	id, ok := r.store.usersByEmail[email]
	if !ok {
		return nil, notFound("user")
	}
	cp := *r.store.users[id]
	return &cp, nil
}

func (r *memReads) UserByID(_ context.Context, id uuid.UUID) (*shared.AuthorizedUser, error) {
	defer r.lock()()
	u, ok := r.store.users[id]
	if !ok {
		return nil, notFound("user")
	}
	cp := *u
	return &cp, nil
}

type memUserRepo memTx

func (r *memUserRepo) UpdateLastLogin(_ context.Context, _ uuid.UUID, _ time.Time) error {
	return nil
}

type memStudioRepo memTx

func (r *memStudioRepo) Create(_ context.Context, st *studio.Studio) error {
	snap := &shared.StudioSnapshot{
		ID: st.ID(), OwnerID: st.OwnerID(), Name: st.Name(),
		Description: st.Description(), HourlyRateCents: st.HourlyRateCents(), Active: st.IsActive(),
	}
	r.journal = append(r.journal, func() { r.store.studios[snap.ID] = snap })
	return nil
}

func (r *memStudioRepo) Update(_ context.Context, st *studio.Studio) error {
	snap := &shared.StudioSnapshot{
		ID: st.ID(), OwnerID: st.OwnerID(), Name: st.Name(),
		Description: st.Description(), HourlyRateCents: st.HourlyRateCents(), Active: st.IsActive(),
	}
	r.journal = append(r.journal, func() { r.store.studios[snap.ID] = snap })
	return nil
}

type memReservationRepo memTx

// Create enforces the non-overlap invariant the way the exclusion
// constraint does: any committed pending/confirmed reservation on the
// same studio whose slot intersects makes the insert fail with a
// conflict kind.
func (r *memReservationRepo) Create(_ context.Context, res *reservation.Reservation) error {
	for _, existing := range r.store.reservations {
		if existing.studioID != res.StudioID() || !existing.status.Blocks() {
			continue
		}
		if res.TimeSlot().Start().Before(existing.end) && existing.start.Before(res.TimeSlot().End()) {
			return infra.WrapRepoErr("slot overlap", nil, infra.KindConflict)
		}
	}
	stored := &storedReservation{
		id: res.ID(), studioID: res.StudioID(), requesterID: res.RequesterID(),
		start: res.TimeSlot().Start(), end: res.TimeSlot().End(), status: res.Status(),
	}
	r.journal = append(r.journal, func() { r.store.reservations[stored.id] = stored })
	return nil
}

func (r *memReservationRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to reservation.Status) (int64, error) {
	res, ok := r.store.reservations[id]
	if !ok || res.status != from {
		return 0, nil
	}
	r.journal = append(r.journal, func() { res.status = to })
	return 1, nil
}

type memJobRepo memTx

func (r *memJobRepo) Create(_ context.Context, j *job.Job) error {
	stored := &storedJob{
		id: j.ID(), clientID: j.ClientID(), providerID: j.ProviderID(),
		title: j.Title(), status: j.Status(),
	}
	r.journal = append(r.journal, func() { r.store.jobs[stored.id] = stored })
	return nil
}

func (r *memJobRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to job.Status, response *string, respondedAt *time.Time) (int64, error) {
	j, ok := r.store.jobs[id]
	if !ok || j.status != from {
		return 0, nil
	}
	r.journal = append(r.journal, func() {
		j.status = to
		if response != nil {
			j.response = *response
		}
		if respondedAt != nil {
			j.respondedAt = respondedAt
		}
	})
	return 1, nil
}

type memListingRepo memTx

func (r *memListingRepo) Create(_ context.Context, l *auction.Listing) error {
	r.journal = append(r.journal, func() { r.store.listings[l.ID()] = l })
	return nil
}

func (r *memListingRepo) LockByID(_ context.Context, id uuid.UUID) (*auction.Listing, error) {
	l, ok := r.store.listings[id]
	if !ok {
		return nil, notFound("listing")
	}
	// Copy so in-tx mutations do not leak on rollback
	return auction.ReconstructListing(
		l.ID(), l.CreatorID(), l.Title(), l.Description(), l.Mode(),
		l.MinimumBidCents(), l.CurrentHighBidCents(), l.Status(),
		l.ExpiresAt(), l.CreatedAt(), l.UpdatedAt(),
	), nil
}

func (r *memListingRepo) UpdateHighBid(_ context.Context, id uuid.UUID, amountCents int64) error {
	l := r.store.listings[id]
	r.journal = append(r.journal, func() { _ = l.RecordBid(amountCents) })
	return nil
}

func (r *memListingRepo) UpdateStatus(_ context.Context, id uuid.UUID, status auction.ListingStatus) error {
	l := r.store.listings[id]
	r.journal = append(r.journal, func() {
		if status == auction.ListingClosed {
			l.Close()
		}
	})
	return nil
}

type memBidRepo memTx

func (r *memBidRepo) Create(_ context.Context, b *auction.Bid) error {
	for _, existing := range r.store.bids {
		if existing.listingID == b.ListingID() && existing.bidderID == b.BidderID() && existing.status == auction.BidPending {
			return infra.WrapRepoErr("pending bid exists", nil, infra.KindDuplicateKey)
		}
	}
	stored := &storedBid{
		id: b.ID(), listingID: b.ListingID(), bidderID: b.BidderID(),
		amountCents: b.AmountCents(), status: b.Status(),
	}
	r.journal = append(r.journal, func() { r.store.bids[stored.id] = stored })
	return nil
}

func (r *memBidRepo) HasPending(_ context.Context, listingID, bidderID uuid.UUID) (bool, error) {
	for _, b := range r.store.bids {
		if b.listingID == listingID && b.bidderID == bidderID && b.status == auction.BidPending {
			return true, nil
		}
	}
	return false, nil
}

func (r *memBidRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to auction.BidStatus) (int64, error) {
	b, ok := r.store.bids[id]
	if !ok || b.status != from {
		return 0, nil
	}
	r.journal = append(r.journal, func() { b.status = to })
	return 1, nil
}

type memClubRepo memTx

func (r *memClubRepo) Create(_ context.Context, c *club.Club) error {
	r.journal = append(r.journal, func() { r.store.clubs[c.ID()] = c })
	return nil
}

func (r *memClubRepo) AddMember(_ context.Context, clubID, userID uuid.UUID, role string) error {
	r.journal = append(r.journal, func() {
		r.store.members = append(r.store.members, club.Member{ClubID: clubID, UserID: userID, Role: role})
	})
	return nil
}

func (r *memClubRepo) UpsertRoleGrant(_ context.Context, userID uuid.UUID, role club.RoleType, clubID uuid.UUID) error {
	r.journal = append(r.journal, func() {
		r.store.grants[grantKey{userID: userID, role: role}] = clubID
	})
	return nil
}

type memNotificationRepo memTx

func (r *memNotificationRepo) CreateNotification(_ context.Context, _ *notification.Notification) error {
	return nil
}

func (r *memNotificationRepo) CreateActivity(_ context.Context, a *notification.ActivityRecord) error {
	if r.store.activityErr != nil {
		return r.store.activityErr
	}
	r.journal = append(r.journal, func() { r.store.activities = append(r.store.activities, a) })
	return nil
}

func (r *memNotificationRepo) MarkRead(_ context.Context, _, _ uuid.UUID) (int64, error) {
	return 0, nil
}

type noopWriter struct{}

func (noopWriter) CreateNotification(_ context.Context, _ *notification.Notification) error {
	return nil
}

func (noopWriter) CreateActivity(_ context.Context, _ *notification.ActivityRecord) error {
	return nil
}
