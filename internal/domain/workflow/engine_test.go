//go:build unit

package workflow_test

import (
	"testing"

	"studiohub/internal/domain/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type state string

const (
	statePending   state = "pending"
	stateConfirmed state = "confirmed"
	stateDone      state = "done"
	stateCancelled state = "cancelled"
)

const (
	roleOwner     workflow.Role = "owner"
	roleRequester workflow.Role = "requester"
	roleStranger  workflow.Role = "stranger"
)

func newTestEngine() *workflow.Engine[state] {
	return workflow.NewEngine([]workflow.Rule[state]{
		{From: statePending, Action: "confirm", To: stateConfirmed, Allowed: []workflow.Role{roleOwner}},
		{From: statePending, Action: "cancel", To: stateCancelled, Allowed: []workflow.Role{roleOwner, roleRequester}},
		{From: stateConfirmed, Action: "complete", To: stateDone, Allowed: []workflow.Role{roleOwner}},
	})
}

func TestEngineNext(t *testing.T) {
	e := newTestEngine()

	t.Run("designated role succeeds", func(t *testing.T) {
		next, err := e.Next(statePending, "confirm", roleOwner)
		require.NoError(t, err)
		assert.Equal(t, stateConfirmed, next)
	})

	t.Run("any listed role succeeds", func(t *testing.T) {
		next, err := e.Next(statePending, "cancel", roleRequester)
		require.NoError(t, err)
		assert.Equal(t, stateCancelled, next)
	})

	t.Run("wrong role is forbidden", func(t *testing.T) {
		_, err := e.Next(statePending, "confirm", roleRequester)
		assert.ErrorIs(t, err, workflow.ErrForbidden)

		_, err = e.Next(stateConfirmed, "complete", roleStranger)
		assert.ErrorIs(t, err, workflow.ErrForbidden)
	})
}

// Every (state, action) pair outside the table must be rejected as an
// invalid transition regardless of role, and terminal states accept nothing.
func TestEngineTableCompleteness(t *testing.T) {
	e := newTestEngine()

	states := []state{statePending, stateConfirmed, stateDone, stateCancelled}
	actions := []workflow.Action{"confirm", "cancel", "complete", "reopen"}
	roles := []workflow.Role{roleOwner, roleRequester, roleStranger}

	defined := map[[2]string]bool{
		{string(statePending), "confirm"}:    true,
		{string(statePending), "cancel"}:     true,
		{string(stateConfirmed), "complete"}: true,
	}

	for _, s := range states {
		for _, a := range actions {
			if defined[[2]string{string(s), string(a)}] {
				assert.True(t, e.Defined(s, a))
				continue
			}
			assert.False(t, e.Defined(s, a))
			for _, r := range roles {
				_, err := e.Next(s, a, r)
				assert.ErrorIs(t, err, workflow.ErrInvalidTransition,
					"state=%s action=%s role=%s", s, a, r)
			}
		}
	}
}
