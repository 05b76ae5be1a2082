//go:build unit

package sideeffect

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"studiohub/internal/domain/notification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	mu            sync.Mutex
	notifications []*notification.Notification
	activities    []*notification.ActivityRecord
	notifyErr     error
	activityErr   error
}

func (w *fakeWriter) CreateNotification(_ context.Context, n *notification.Notification) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.notifyErr != nil {
		return w.notifyErr
	}
	w.notifications = append(w.notifications, n)
	return nil
}

func (w *fakeWriter) CreateActivity(_ context.Context, a *notification.ActivityRecord) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.activityErr != nil {
		return w.activityErr
	}
	w.activities = append(w.activities, a)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDispatcher_DeliversNotificationAndActivity(t *testing.T) {
	writer := &fakeWriter{}
	d := NewDispatcher(writer, discardLogger())

	actor := uuid.New()
	counterpart := uuid.New()
	d.Dispatch(context.Background(), Event{
		Kind:         "reservation",
		EntityID:     uuid.New(),
		Action:       "confirm",
		OldState:     "pending",
		NewState:     "confirmed",
		ActorID:      actor,
		Counterpart:  counterpart,
		Title:        "Reservation confirmed",
		Message:      "Your booking was confirmed",
		WithActivity: true,
	})
	d.Wait()

	require.Len(t, writer.notifications, 1)
	assert.Equal(t, counterpart, writer.notifications[0].UserID)
	require.Len(t, writer.activities, 1)
	assert.Equal(t, actor, writer.activities[0].UserID)
	assert.Equal(t, int64(0), d.Failures())
}

func TestDispatcher_FailureIsCountedNotReturned(t *testing.T) {
	writer := &fakeWriter{notifyErr: errors.New("store down")}
	d := NewDispatcher(writer, discardLogger())

	// Dispatch has no error return; the only observable effect of a
	// failed write is the counter.
	d.Dispatch(context.Background(), Event{
		Kind:        "bid",
		EntityID:    uuid.New(),
		ActorID:     uuid.New(),
		Counterpart: uuid.New(),
	})
	d.Wait()

	assert.Equal(t, int64(1), d.Failures())
	assert.Empty(t, writer.notifications)
}

func TestDispatcher_SurvivesCancelledRequestContext(t *testing.T) {
	writer := &fakeWriter{}
	d := NewDispatcher(writer, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Dispatch(ctx, Event{
		Kind:        "job",
		EntityID:    uuid.New(),
		ActorID:     uuid.New(),
		Counterpart: uuid.New(),
	})
	d.Wait()

	require.Len(t, writer.notifications, 1)
	assert.Equal(t, int64(0), d.Failures())
}

func TestDispatcher_ConcurrentDispatches(t *testing.T) {
	writer := &fakeWriter{}
	d := NewDispatcher(writer, discardLogger())

	const n = 50
	for i := 0; i < n; i++ {
		d.Dispatch(context.Background(), Event{
			Kind:        "listing",
			EntityID:    uuid.New(),
			ActorID:     uuid.New(),
			Counterpart: uuid.New(),
		})
	}
	d.Wait()

	assert.Len(t, writer.notifications, n)
}
