//go:build unit

package reservation_test

import (
	"math/rand"
	"testing"
	"time"

	"studiohub/internal/domain/reservation"
	"studiohub/internal/domain/studio"
	"studiohub/internal/domain/workflow"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func slot(t *testing.T, startOffset, endOffset time.Duration) reservation.TimeSlot {
	t.Helper()
	s, err := reservation.NewTimeSlot(base.Add(startOffset), base.Add(endOffset))
	require.NoError(t, err)
	return s
}

func TestNewTimeSlot(t *testing.T) {
	_, err := reservation.NewTimeSlot(base, base)
	assert.ErrorIs(t, err, reservation.ErrInvalidTimeSlot)

	_, err = reservation.NewTimeSlot(base.Add(time.Hour), base)
	assert.ErrorIs(t, err, reservation.ErrInvalidTimeSlot)
}

func TestTimeSlotOverlaps(t *testing.T) {
	existing := slot(t, 0, 2*time.Hour) // 10:00-12:00

	cases := []struct {
		name    string
		other   reservation.TimeSlot
		overlap bool
	}{
		{"new start inside existing", slot(t, time.Hour, 3*time.Hour), true},
		{"new end inside existing", slot(t, -time.Hour, time.Hour), true},
		{"new contains existing", slot(t, -time.Hour, 3*time.Hour), true},
		{"existing contains new", slot(t, 30*time.Minute, 90*time.Minute), true},
		{"identical", slot(t, 0, 2*time.Hour), true},
		{"touching at end is allowed", slot(t, 2*time.Hour, 3*time.Hour), false},
		{"touching at start is allowed", slot(t, -time.Hour, 0), false},
		{"disjoint after", slot(t, 3*time.Hour, 4*time.Hour), false},
		{"disjoint before", slot(t, -2*time.Hour, -time.Hour), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.overlap, existing.Overlaps(tc.other))
			assert.Equal(t, tc.overlap, tc.other.Overlaps(existing), "overlap must be symmetric")
		})
	}
}

// Randomized cross-check of Overlaps against the brute-force definition,
// including exact boundary touches generated on purpose.
func TestTimeSlotOverlapsRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	randSlot := func() reservation.TimeSlot {
		start := rng.Intn(48)
		length := 1 + rng.Intn(6)
		return slot(t, time.Duration(start)*time.Hour, time.Duration(start+length)*time.Hour)
	}

	for i := 0; i < 2000; i++ {
		a, b := randSlot(), randSlot()
		want := a.Start().Before(b.End()) && b.Start().Before(a.End())
		assert.Equal(t, want, a.Overlaps(b), "a=%v b=%v", a.ToTstzrange(), b.ToTstzrange())
	}
}

func TestNewReservation(t *testing.T) {
	ownerID := uuid.New()
	requesterID := uuid.New()
	st, err := studio.NewStudio(ownerID, "Studio A", "", 5000)
	require.NoError(t, err)

	t.Run("amount captured from rate at creation", func(t *testing.T) {
		res, err := reservation.NewReservation(st, requesterID, slot(t, 0, 2*time.Hour), reservation.NewNote(""))
		require.NoError(t, err)

		assert.Equal(t, int64(10000), res.Amount().Cents())
		assert.Equal(t, reservation.StatusPending, res.Status())
		assert.True(t, res.BlocksSlot())

		// Later rate changes must not affect the captured amount.
		require.NoError(t, st.ChangeRate(9000))
		assert.Equal(t, int64(10000), res.Amount().Cents())
	})

	t.Run("partial hours are prorated", func(t *testing.T) {
		res, err := reservation.NewReservation(st, requesterID, slot(t, 0, 90*time.Minute), reservation.NewNote(""))
		require.NoError(t, err)
		assert.Equal(t, int64(13500), res.Amount().Cents())
	})

	t.Run("proration never drops a cent", func(t *testing.T) {
		// 20 min at 3000/h is exactly 1000; float hours would yield 999.
		st3, err := studio.NewStudio(ownerID, "Studio C", "", 3000)
		require.NoError(t, err)

		res, err := reservation.NewReservation(st3, requesterID, slot(t, 0, 20*time.Minute), reservation.NewNote(""))
		require.NoError(t, err)
		assert.Equal(t, int64(1000), res.Amount().Cents())

		assert.Equal(t, int64(1000), reservation.AmountCents(3000, slot(t, 0, 20*time.Minute)))
	})

	t.Run("deactivated studio rejects booking", func(t *testing.T) {
		st2, err := studio.NewStudio(ownerID, "Studio B", "", 5000)
		require.NoError(t, err)
		st2.Deactivate()

		_, err = reservation.NewReservation(st2, requesterID, slot(t, 0, time.Hour), reservation.NewNote(""))
		assert.ErrorIs(t, err, reservation.ErrStudioInactive)
	})
}

func TestReservationTransitions(t *testing.T) {
	type tc struct {
		name   string
		from   reservation.Status
		action workflow.Action
		role   workflow.Role
		to     reservation.Status
		errIs  error
	}

	cases := []tc{
		{name: "owner confirms pending", from: reservation.StatusPending, action: reservation.ActionConfirm, role: reservation.RoleOwner, to: reservation.StatusConfirmed},
		{name: "requester cannot confirm", from: reservation.StatusPending, action: reservation.ActionConfirm, role: reservation.RoleRequester, errIs: workflow.ErrForbidden},
		{name: "requester cancels pending", from: reservation.StatusPending, action: reservation.ActionCancel, role: reservation.RoleRequester, to: reservation.StatusCancelled},
		{name: "owner cancels confirmed", from: reservation.StatusConfirmed, action: reservation.ActionCancel, role: reservation.RoleOwner, to: reservation.StatusCancelled},
		{name: "owner completes confirmed", from: reservation.StatusConfirmed, action: reservation.ActionComplete, role: reservation.RoleOwner, to: reservation.StatusCompleted},
		{name: "requester cannot complete", from: reservation.StatusConfirmed, action: reservation.ActionComplete, role: reservation.RoleRequester, errIs: workflow.ErrForbidden},
		{name: "completed is terminal", from: reservation.StatusCompleted, action: reservation.ActionCancel, role: reservation.RoleOwner, errIs: workflow.ErrInvalidTransition},
		{name: "cancelled is terminal", from: reservation.StatusCancelled, action: reservation.ActionConfirm, role: reservation.RoleOwner, errIs: workflow.ErrInvalidTransition},
		{name: "pending cannot complete", from: reservation.StatusPending, action: reservation.ActionComplete, role: reservation.RoleOwner, errIs: workflow.ErrInvalidTransition},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			next, err := reservation.Transitions.Next(c.from, c.action, c.role)
			if c.errIs != nil {
				assert.ErrorIs(t, err, c.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.to, next)
		})
	}
}
