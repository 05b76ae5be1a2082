//go:build unit

package commands

import (
	"context"
	"testing"

	"studiohub/internal/infra"

	"github.com/stretchr/testify/assert"
)

func TestMarkInfra(t *testing.T) {
	t.Run("timeouts are transient", func(t *testing.T) {
		err := infra.WrapRepoErr("read timed out", context.DeadlineExceeded, infra.KindTimeout)
		assert.ErrorIs(t, markInfra(err), ErrTransient)
	})

	t.Run("other repository failures are not", func(t *testing.T) {
		err := infra.WrapRepoErr("query failed", assert.AnError)
		marked := markInfra(err)
		assert.ErrorIs(t, marked, ErrDatabaseOperationFailed)
		assert.NotErrorIs(t, marked, ErrTransient)
	})
}
