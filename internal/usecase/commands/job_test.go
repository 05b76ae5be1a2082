//go:build unit

package commands

import (
	"context"
	"testing"
	"time"

	"studiohub/internal/domain/job"
	"studiohub/internal/pkg/clock"
	"studiohub/internal/usecase/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJobCommands(store *memStore) JobCommands {
	clk := clock.NewMockClock(time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC))
	return NewJobCommands(newMemUoW(store), newTestDispatcher(), clk)
}

func TestJobCommands_Create(t *testing.T) {
	store := newMemStore()
	client := store.addUser()
	provider := store.addUser(func(u *shared.AuthorizedUser) { u.CanAcceptJobs = true })
	plain := store.addUser()

	cmds := newJobCommands(store)
	ctx := context.Background()

	id, err := cmds.Create(ctx, client, CreateJobInput{ProviderID: provider, Title: "Mix my EP"})
	require.NoError(t, err)
	assert.Equal(t, job.StatusPending, store.jobs[id].status)

	_, err = cmds.Create(ctx, client, CreateJobInput{ProviderID: plain, Title: "Mix my EP"})
	assert.ErrorIs(t, err, ErrProviderUnavailable)

	// Client and provider must differ
	_, err = cmds.Create(ctx, provider, CreateJobInput{ProviderID: provider, Title: "Mix my EP"})
	assert.ErrorIs(t, err, ErrDomainValidation)
}

func TestJobCommands_ProviderLifecycle(t *testing.T) {
	store := newMemStore()
	client := store.addUser()
	provider := store.addUser(func(u *shared.AuthorizedUser) { u.CanAcceptJobs = true })
	stranger := store.addUser()

	cmds := newJobCommands(store)
	ctx := context.Background()

	id, err := cmds.Create(ctx, client, CreateJobInput{ProviderID: provider, Title: "Master the single"})
	require.NoError(t, err)

	// Only the provider accepts
	assert.ErrorIs(t, cmds.Accept(ctx, client, id, "sure"), ErrForbidden)
	assert.ErrorIs(t, cmds.Accept(ctx, stranger, id, "sure"), ErrForbidden)

	require.NoError(t, cmds.Accept(ctx, provider, id, "can do by Friday"))
	stored := store.jobs[id]
	assert.Equal(t, job.StatusAccepted, stored.status)
	assert.Equal(t, "can do by Friday", stored.response)
	require.NotNil(t, stored.respondedAt)

	require.NoError(t, cmds.Start(ctx, provider, id))
	assert.Equal(t, job.StatusInProgress, stored.status)

	// Client cannot cancel once work started
	assert.ErrorIs(t, cmds.Cancel(ctx, client, id), ErrInvalidTransition)

	require.NoError(t, cmds.Complete(ctx, provider, id))
	assert.Equal(t, job.StatusCompleted, stored.status)

	// Terminal
	assert.ErrorIs(t, cmds.Start(ctx, provider, id), ErrInvalidTransition)
}

func TestJobCommands_RejectAndCancel(t *testing.T) {
	store := newMemStore()
	client := store.addUser()
	provider := store.addUser(func(u *shared.AuthorizedUser) { u.CanAcceptJobs = true })

	cmds := newJobCommands(store)
	ctx := context.Background()

	id, err := cmds.Create(ctx, client, CreateJobInput{ProviderID: provider, Title: "Session drums"})
	require.NoError(t, err)
	require.NoError(t, cmds.Reject(ctx, provider, id, "booked out"))
	assert.Equal(t, job.StatusRejected, store.jobs[id].status)

	id2, err := cmds.Create(ctx, client, CreateJobInput{ProviderID: provider, Title: "Session drums again"})
	require.NoError(t, err)

	// Cancel belongs to the client, both before and after acceptance
	assert.ErrorIs(t, cmds.Cancel(ctx, provider, id2), ErrForbidden)
	require.NoError(t, cmds.Accept(ctx, provider, id2, "ok"))
	require.NoError(t, cmds.Cancel(ctx, client, id2))
	assert.Equal(t, job.StatusCancelled, store.jobs[id2].status)
}
