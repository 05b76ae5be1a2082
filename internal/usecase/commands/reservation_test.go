//go:build unit

package commands

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"studiohub/internal/domain/reservation"
	"studiohub/internal/usecase/sideeffect"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDispatcher() *sideeffect.Dispatcher {
	return sideeffect.NewDispatcher(noopWriter{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func slotAt(hour, durationHours int) (time.Time, time.Time) {
	base := time.Date(2026, 3, 14, hour, 0, 0, 0, time.UTC)
	return base, base.Add(time.Duration(durationHours) * time.Hour)
}

func TestReservationCommands_Create(t *testing.T) {
	store := newMemStore()
	owner := store.addUser()
	requester := store.addUser()
	studioID := store.addStudio(owner, 5000)

	d := newTestDispatcher()
	cmds := NewReservationCommands(newMemUoW(store), d)

	start, end := slotAt(10, 2)
	id, err := cmds.Create(context.Background(), requester, CreateReservationInput{
		StudioID: studioID, StartTime: start, EndTime: end, Note: "vocal session",
	})
	d.Wait()

	require.NoError(t, err)
	res := store.reservations[id]
	require.NotNil(t, res)
	assert.Equal(t, reservation.StatusPending, res.status)
}

func TestReservationCommands_Create_StudioMissingOrInactive(t *testing.T) {
	store := newMemStore()
	owner := store.addUser()
	requester := store.addUser()
	studioID := store.addStudio(owner, 5000)
	store.studios[studioID].Active = false

	cmds := NewReservationCommands(newMemUoW(store), newTestDispatcher())
	start, end := slotAt(10, 1)

	_, err := cmds.Create(context.Background(), requester, CreateReservationInput{
		StudioID: studioID, StartTime: start, EndTime: end,
	})
	assert.ErrorIs(t, err, ErrStudioInactive)

	_, err = cmds.Create(context.Background(), requester, CreateReservationInput{
		StudioID: uuid.New(), StartTime: start, EndTime: end,
	})
	assert.ErrorIs(t, err, ErrStudioNotFound)
}

func TestReservationCommands_Create_OverlapRejectedTouchingAllowed(t *testing.T) {
	store := newMemStore()
	owner := store.addUser()
	requester := store.addUser()
	studioID := store.addStudio(owner, 5000)

	d := newTestDispatcher()
	cmds := NewReservationCommands(newMemUoW(store), d)
	ctx := context.Background()

	start, end := slotAt(10, 2)
	_, err := cmds.Create(ctx, requester, CreateReservationInput{StudioID: studioID, StartTime: start, EndTime: end})
	require.NoError(t, err)

	// Intersecting slot fails
	_, err = cmds.Create(ctx, store.addUser(), CreateReservationInput{
		StudioID: studioID, StartTime: start.Add(time.Hour), EndTime: end.Add(time.Hour),
	})
	assert.ErrorIs(t, err, ErrSlotConflict)

	// Back-to-back is fine under half-open intervals
	_, err = cmds.Create(ctx, store.addUser(), CreateReservationInput{
		StudioID: studioID, StartTime: end, EndTime: end.Add(time.Hour),
	})
	assert.NoError(t, err)
	d.Wait()
}

func TestReservationCommands_Create_ConcurrentSameSlot(t *testing.T) {
	store := newMemStore()
	owner := store.addUser()
	studioID := store.addStudio(owner, 5000)

	d := newTestDispatcher()
	cmds := NewReservationCommands(newMemUoW(store), d)
	start, end := slotAt(9, 3)

	const n = 16
	requesters := make([]uuid.UUID, n)
	for i := range requesters {
		requesters[i] = store.addUser()
	}

	var wg sync.WaitGroup
	errsCh := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(requester uuid.UUID) {
			defer wg.Done()
			_, err := cmds.Create(context.Background(), requester, CreateReservationInput{
				StudioID: studioID, StartTime: start, EndTime: end,
			})
			errsCh <- err
		}(requesters[i])
	}
	wg.Wait()
	close(errsCh)
	d.Wait()

	var succeeded, conflicted int
	for err := range errsCh {
		switch {
		case err == nil:
			succeeded++
		default:
			require.ErrorIs(t, err, ErrSlotConflict)
			conflicted++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, n-1, conflicted)
}

func TestReservationCommands_Transitions(t *testing.T) {
	store := newMemStore()
	owner := store.addUser()
	requester := store.addUser()
	stranger := store.addUser()
	studioID := store.addStudio(owner, 5000)

	d := newTestDispatcher()
	cmds := NewReservationCommands(newMemUoW(store), d)
	ctx := context.Background()

	start, end := slotAt(14, 2)
	id, err := cmds.Create(ctx, requester, CreateReservationInput{StudioID: studioID, StartTime: start, EndTime: end})
	require.NoError(t, err)

	// Only the owner confirms
	assert.ErrorIs(t, cmds.Confirm(ctx, requester, id), ErrForbidden)
	assert.ErrorIs(t, cmds.Confirm(ctx, stranger, id), ErrForbidden)
	require.NoError(t, cmds.Confirm(ctx, owner, id))
	assert.Equal(t, reservation.StatusConfirmed, store.reservations[id].status)

	// Confirm is not defined from confirmed
	assert.ErrorIs(t, cmds.Confirm(ctx, owner, id), ErrInvalidTransition)

	require.NoError(t, cmds.Complete(ctx, owner, id))
	assert.Equal(t, reservation.StatusCompleted, store.reservations[id].status)

	// Terminal state accepts nothing further
	assert.ErrorIs(t, cmds.Cancel(ctx, requester, id), ErrInvalidTransition)
	d.Wait()
}

func TestReservationCommands_CancelFreesSlot(t *testing.T) {
	store := newMemStore()
	owner := store.addUser()
	requester := store.addUser()
	studioID := store.addStudio(owner, 5000)

	d := newTestDispatcher()
	cmds := NewReservationCommands(newMemUoW(store), d)
	ctx := context.Background()

	start, end := slotAt(16, 2)
	id, err := cmds.Create(ctx, requester, CreateReservationInput{StudioID: studioID, StartTime: start, EndTime: end})
	require.NoError(t, err)
	require.NoError(t, cmds.Cancel(ctx, requester, id))

	// Cancelled reservations no longer block the slot
	_, err = cmds.Create(ctx, store.addUser(), CreateReservationInput{StudioID: studioID, StartTime: start, EndTime: end})
	assert.NoError(t, err)

	assert.ErrorIs(t, cmds.Confirm(ctx, owner, uuid.New()), ErrReservationNotFound)
	d.Wait()
}
