//go:build unit

package uow

import (
	"context"
	"testing"
	"time"

	"studiohub/internal/pkg/config"
	"studiohub/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// deadlineReads records the deadline of the context each read receives.
type deadlineReads struct {
	deadline time.Time
	hasIt    bool
}

func (r *deadlineReads) note(ctx context.Context) {
	r.deadline, r.hasIt = ctx.Deadline()
}

func (r *deadlineReads) StudioByID(ctx context.Context, _ uuid.UUID) (*shared.StudioSnapshot, error) {
	r.note(ctx)
	return nil, nil
}

func (r *deadlineReads) ReservationByID(ctx context.Context, _ uuid.UUID) (*shared.ReservationSnapshot, error) {
	r.note(ctx)
	return nil, nil
}

func (r *deadlineReads) JobByID(ctx context.Context, _ uuid.UUID) (*shared.JobSnapshot, error) {
	r.note(ctx)
	return nil, nil
}

func (r *deadlineReads) BidByID(ctx context.Context, _ uuid.UUID) (*shared.BidSnapshot, error) {
	r.note(ctx)
	return nil, nil
}

func (r *deadlineReads) UserByEmail(ctx context.Context, _ string) (*shared.AuthorizedUser, error) {
	r.note(ctx)
	return nil, nil
}

func (r *deadlineReads) UserByID(ctx context.Context, _ uuid.UUID) (*shared.AuthorizedUser, error) {
	r.note(ctx)
	return nil, nil
}

func TestNewPostgresUoW_QueryTimeout(t *testing.T) {
	t.Run("uses configured timeout", func(t *testing.T) {
		cfg := config.Config{}
		cfg.DB.QueryTimeout = 250 * time.Millisecond

		u, ok := NewPostgresUoW(nil, cfg).(*PostgresUoW)
		require.True(t, ok)
		assert.Equal(t, 250*time.Millisecond, u.queryTimeout)
	})

	t.Run("falls back when unset", func(t *testing.T) {
		u, ok := NewPostgresUoW(nil, config.Config{}).(*PostgresUoW)
		require.True(t, ok)
		assert.Equal(t, defaultQueryTimeout, u.queryTimeout)
	})
}

func TestBoundedReads_AttachDeadline(t *testing.T) {
	inner := &deadlineReads{}
	reads := &boundedReads{inner: inner, timeout: 2 * time.Second}

	before := time.Now()
	_, err := reads.StudioByID(context.Background(), uuid.New())
	require.NoError(t, err)
	require.True(t, inner.hasIt, "read context should carry a deadline")
	assert.WithinDuration(t, before.Add(2*time.Second), inner.deadline, time.Second)

	_, err = reads.UserByEmail(context.Background(), "user@example.com")
	require.NoError(t, err)
	assert.True(t, inner.hasIt)
}

func TestBoundedReads_KeepShorterParentDeadline(t *testing.T) {
	inner := &deadlineReads{}
	reads := &boundedReads{inner: inner, timeout: time.Hour}

	parent, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := reads.ReservationByID(parent, uuid.New())
	require.NoError(t, err)
	require.True(t, inner.hasIt)
	assert.WithinDuration(t, time.Now().Add(50*time.Millisecond), inner.deadline, time.Second)
}
