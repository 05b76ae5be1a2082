package readstore

import (
	"context"
	"errors"

	"studiohub/internal/infra"
	"studiohub/internal/infra/db"
	"studiohub/internal/pkg/pgconv"
	"studiohub/internal/usecase/shared"

	"github.com/google/uuid"
)

// SnapshotReadStore serves the command side's validation reads. The
// snapshots carry only what commands decide on, nothing view-shaped.
type SnapshotReadStore struct {
	db db.DBTX
}

func NewSnapshotReadStore(db db.DBTX) *SnapshotReadStore {
	return &SnapshotReadStore{db: db}
}

// wrapSnapshotErr keeps the timeout kind visible: a read cancelled by
// the query deadline must surface as retryable, not as a DB failure.
func wrapSnapshotErr(msg string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return infra.WrapRepoErr(msg, err, infra.KindTimeout)
	}
	return infra.WrapRepoErr(msg, err)
}

func (r *SnapshotReadStore) StudioByID(ctx context.Context, id uuid.UUID) (*shared.StudioSnapshot, error) {
	const query = `
		SELECT id, owner_id, name, description, hourly_rate_cents, active
		FROM studios
		WHERE id = $1`

	var s shared.StudioSnapshot
	err := r.db.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.OwnerID, &s.Name, &s.Description, &s.HourlyRateCents, &s.Active,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("studio not found", err, infra.KindNotFound)
		}
		return nil, wrapSnapshotErr("failed to read studio snapshot", err)
	}
	return &s, nil
}

func (r *SnapshotReadStore) ReservationByID(ctx context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	const query = `
		SELECT r.id, r.studio_id, s.owner_id, r.requester_id, r.status,
		       lower(r.slot), upper(r.slot)
		FROM reservations r
		JOIN studios s ON s.id = r.studio_id
		WHERE r.id = $1`

	var snap shared.ReservationSnapshot
	err := r.db.QueryRow(ctx, query, id).Scan(
		&snap.ID, &snap.StudioID, &snap.OwnerID, &snap.RequesterID, &snap.Status,
		&snap.StartTime, &snap.EndTime,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, wrapSnapshotErr("failed to read reservation snapshot", err)
	}
	return &snap, nil
}

func (r *SnapshotReadStore) JobByID(ctx context.Context, id uuid.UUID) (*shared.JobSnapshot, error) {
	const query = `
		SELECT id, client_id, provider_id, title, status
		FROM jobs
		WHERE id = $1`

	var snap shared.JobSnapshot
	err := r.db.QueryRow(ctx, query, id).Scan(
		&snap.ID, &snap.ClientID, &snap.ProviderID, &snap.Title, &snap.Status,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("job not found", err, infra.KindNotFound)
		}
		return nil, wrapSnapshotErr("failed to read job snapshot", err)
	}
	return &snap, nil
}

func (r *SnapshotReadStore) BidByID(ctx context.Context, id uuid.UUID) (*shared.BidSnapshot, error) {
	const query = `
		SELECT id, listing_id, bidder_id, amount_cents, status
		FROM bids
		WHERE id = $1`

	var snap shared.BidSnapshot
	err := r.db.QueryRow(ctx, query, id).Scan(
		&snap.ID, &snap.ListingID, &snap.BidderID, &snap.AmountCents, &snap.Status,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("bid not found", err, infra.KindNotFound)
		}
		return nil, wrapSnapshotErr("failed to read bid snapshot", err)
	}
	return &snap, nil
}

const authorizedUserColumns = `
	id, email, display_name, hashed_password, can_upload_beats,
	can_create_studios, can_accept_jobs, is_producer, active`

func (r *SnapshotReadStore) UserByEmail(ctx context.Context, email string) (*shared.AuthorizedUser, error) {
	query := `SELECT ` + authorizedUserColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *SnapshotReadStore) UserByID(ctx context.Context, id uuid.UUID) (*shared.AuthorizedUser, error) {
	query := `SELECT ` + authorizedUserColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *SnapshotReadStore) scanUser(row interface{ Scan(dest ...any) error }) (*shared.AuthorizedUser, error) {
	var u shared.AuthorizedUser
	err := row.Scan(
		&u.ID, &u.Email, &u.DisplayName, &u.HashedPassword, &u.CanUploadBeats,
		&u.CanCreateStudios, &u.CanAcceptJobs, &u.IsProducer, &u.Active,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, wrapSnapshotErr("failed to read user snapshot", err)
	}
	return &u, nil
}
