package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUserService_GetUser(t *testing.T) {
	st := newTestStore(t)
	svc := &UserService{Store: st}
	ctx := context.Background()

	user := seedUser(t, st, "a@x.com", "alice")

	got, err := svc.GetUser(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", got.Username)

	_, err = svc.GetUser(ctx, 404)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUserService_UpdateProfile_Ownership(t *testing.T) {
	st := newTestStore(t)
	svc := &UserService{Store: st}
	ctx := context.Background()

	alice := seedUser(t, st, "a@x.com", "alice")
	bob := seedUser(t, st, "b@x.com", "bob")

	name := "Mallory"
	_, err := svc.UpdateProfile(ctx, bob.ID, alice.ID, UpdateProfileParams{Name: &name})
	require.ErrorIs(t, err, ErrNotOwner)

	bio := "photographer"
	updated, err := svc.UpdateProfile(ctx, alice.ID, alice.ID, UpdateProfileParams{Bio: &bio})
	require.NoError(t, err)
	require.Equal(t, "photographer", updated.Bio)
	require.Equal(t, "alice", updated.Username, "unset fields stay unchanged")
}

func TestUserService_FollowUnfollow(t *testing.T) {
	st := newTestStore(t)
	svc := &UserService{Store: st}
	ctx := context.Background()

	alice := seedUser(t, st, "a@x.com", "alice")
	bob := seedUser(t, st, "b@x.com", "bob")

	require.NoError(t, svc.Follow(ctx, alice.ID, bob.ID))
	// Following twice is a no-op, not an error.
	require.NoError(t, svc.Follow(ctx, alice.ID, bob.ID))

	require.ErrorIs(t, svc.Follow(ctx, alice.ID, 999), ErrNotFound)

	require.NoError(t, svc.Unfollow(ctx, alice.ID, bob.ID))
	require.ErrorIs(t, svc.Unfollow(ctx, alice.ID, bob.ID), ErrNotFound)
}

func TestUserService_DeleteUser(t *testing.T) {
	st := newTestStore(t)
	svc := &UserService{Store: st}
	ctx := context.Background()

	alice := seedUser(t, st, "a@x.com", "alice")
	bob := seedUser(t, st, "b@x.com", "bob")

	require.ErrorIs(t, svc.DeleteUser(ctx, bob.ID, alice.ID), ErrNotOwner)
	require.NoError(t, svc.DeleteUser(ctx, alice.ID, alice.ID))

	_, err := svc.GetUser(ctx, alice.ID)
	require.ErrorIs(t, err, ErrNotFound)
}
