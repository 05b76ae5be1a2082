//go:build unit

package commands

import (
	"context"
	"errors"
	"testing"

	"studiohub/internal/domain/club"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClubCommands_Create_ProvisionsEverything(t *testing.T) {
	store := newMemStore()
	owner := store.addUser()

	cmds := NewClubCommands(newMemUoW(store))
	id, err := cmds.Create(context.Background(), owner, CreateClubInput{
		Name: "Night Owls", ClubType: "recording",
	})
	require.NoError(t, err)

	require.NotNil(t, store.clubs[id])
	require.Len(t, store.members, 1)
	assert.Equal(t, club.OwnerMemberRole, store.members[0].Role)
	assert.Equal(t, owner, store.members[0].UserID)
	assert.Equal(t, id, store.grants[grantKey{userID: owner, role: club.RoleArtist}])
	require.Len(t, store.activities, 1)
	assert.Equal(t, owner, store.activities[0].UserID)
}

func TestClubCommands_Create_InvalidInput(t *testing.T) {
	store := newMemStore()
	owner := store.addUser()
	cmds := NewClubCommands(newMemUoW(store))

	_, err := cmds.Create(context.Background(), owner, CreateClubInput{Name: "  ", ClubType: "recording"})
	assert.ErrorIs(t, err, ErrDomainValidation)

	_, err = cmds.Create(context.Background(), owner, CreateClubInput{Name: "Night Owls", ClubType: "karaoke"})
	assert.ErrorIs(t, err, ErrDomainValidation)
}

func TestClubCommands_Create_AtomicOnActivityFailure(t *testing.T) {
	store := newMemStore()
	store.activityErr = errors.New("activity store down")
	owner := store.addUser()

	cmds := NewClubCommands(newMemUoW(store))
	_, err := cmds.Create(context.Background(), owner, CreateClubInput{
		Name: "Night Owls", ClubType: "production",
	})
	require.Error(t, err)

	// Nothing from the failed provisioning survives
	assert.Empty(t, store.clubs)
	assert.Empty(t, store.members)
	assert.Empty(t, store.grants)
	assert.Empty(t, store.activities)
}

func TestClubCommands_Create_RegrantIsIdempotent(t *testing.T) {
	store := newMemStore()
	owner := store.addUser()
	cmds := NewClubCommands(newMemUoW(store))
	ctx := context.Background()

	_, err := cmds.Create(ctx, owner, CreateClubInput{Name: "First", ClubType: "recording"})
	require.NoError(t, err)
	second, err := cmds.Create(ctx, owner, CreateClubInput{Name: "Second", ClubType: "recording"})
	require.NoError(t, err)

	// One grant per (party, role); it now points at the newest club
	require.Len(t, store.grants, 1)
	assert.Equal(t, second, store.grants[grantKey{userID: owner, role: club.RoleArtist}])
}
