package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"studiohub/internal/infra/readstore"
	"studiohub/internal/infra/repository"
	"studiohub/internal/pkg/config"
	"studiohub/internal/pkg/errs"
	"studiohub/internal/usecase/shared"

	"github.com/google/uuid"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

const defaultQueryTimeout = 5 * time.Second

type PostgresUoW struct {
	pool         *pgxpool.Pool
	queryTimeout time.Duration
}

func NewPostgresUoW(pool *pgxpool.Pool, cfg config.Config) shared.UnitOfWork {
	timeout := cfg.DB.QueryTimeout
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	return &PostgresUoW{pool: pool, queryTimeout: timeout}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes;
// the exclusion constraint and row locks carry the stronger guarantees.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return &boundedReads{
		inner:   readstore.NewSnapshotReadStore(u.pool),
		timeout: u.queryTimeout,
	}
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		// Fresh deadline per attempt so a retry is not charged for the
		// time the previous attempt already spent.
		txCtx, cancel := context.WithTimeout(ctx, u.queryTimeout)

		pgxTx, err := u.pool.BeginTx(txCtx, options)
		if err != nil {
			cancel()
			return errs.Mark(err, errTransactionBegin)
		}

		tx := &pgTx{dbtx: pgxTx}

		err = fn(txCtx, tx)
		if err == nil {
			if err = pgxTx.Commit(txCtx); err == nil {
				cancel()
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		// Rollback on the parent context: an expired attempt deadline
		// must not block releasing the connection.
		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}
		cancel()

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// Fallback to a simple calculation if crypto/rand fails
		return 0
	}
	// Safe conversion: mask high bit to ensure positive int64
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- Intentionally safe conversion after masking
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx pgx.Tx

	// Lazy-initialized repositories
	userRepo         shared.UserRepository
	studioRepo       shared.StudioRepository
	reservationRepo  shared.ReservationRepository
	jobRepo          shared.JobRepository
	listingRepo      shared.ListingRepository
	bidRepo          shared.BidRepository
	clubRepo         shared.ClubRepository
	notificationRepo shared.NotificationRepository
	commandReads     shared.CommandReads
}

func (t *pgTx) Users() shared.UserRepository {
	if t.userRepo == nil {
		t.userRepo = repository.NewUserRepository(t.dbtx)
	}
	return t.userRepo
}

func (t *pgTx) Studios() shared.StudioRepository {
	if t.studioRepo == nil {
		t.studioRepo = repository.NewStudioRepository(t.dbtx)
	}
	return t.studioRepo
}

func (t *pgTx) Reservations() shared.ReservationRepository {
	if t.reservationRepo == nil {
		t.reservationRepo = repository.NewReservationRepository(t.dbtx)
	}
	return t.reservationRepo
}

func (t *pgTx) Jobs() shared.JobRepository {
	if t.jobRepo == nil {
		t.jobRepo = repository.NewJobRepository(t.dbtx)
	}
	return t.jobRepo
}

func (t *pgTx) Listings() shared.ListingRepository {
	if t.listingRepo == nil {
		t.listingRepo = repository.NewListingRepository(t.dbtx)
	}
	return t.listingRepo
}

func (t *pgTx) Bids() shared.BidRepository {
	if t.bidRepo == nil {
		t.bidRepo = repository.NewBidRepository(t.dbtx)
	}
	return t.bidRepo
}

func (t *pgTx) Clubs() shared.ClubRepository {
	if t.clubRepo == nil {
		t.clubRepo = repository.NewClubRepository(t.dbtx)
	}
	return t.clubRepo
}

func (t *pgTx) Notifications() shared.NotificationRepository {
	if t.notificationRepo == nil {
		t.notificationRepo = repository.NewNotificationRepository(t.dbtx)
	}
	return t.notificationRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = readstore.NewSnapshotReadStore(t.dbtx)
	}
	return t.commandReads
}

// boundedReads applies the query timeout to snapshot reads issued outside
// a transaction. A read that exceeds the bound surfaces as
// context.DeadlineExceeded, which the repository layer marks as a timeout.
type boundedReads struct {
	inner   shared.CommandReads
	timeout time.Duration
}

func (r *boundedReads) StudioByID(ctx context.Context, id uuid.UUID) (*shared.StudioSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.inner.StudioByID(ctx, id)
}

func (r *boundedReads) ReservationByID(ctx context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.inner.ReservationByID(ctx, id)
}

func (r *boundedReads) JobByID(ctx context.Context, id uuid.UUID) (*shared.JobSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.inner.JobByID(ctx, id)
}

func (r *boundedReads) BidByID(ctx context.Context, id uuid.UUID) (*shared.BidSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.inner.BidByID(ctx, id)
}

func (r *boundedReads) UserByEmail(ctx context.Context, email string) (*shared.AuthorizedUser, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.inner.UserByEmail(ctx, email)
}

func (r *boundedReads) UserByID(ctx context.Context, id uuid.UUID) (*shared.AuthorizedUser, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.inner.UserByID(ctx, id)
}
