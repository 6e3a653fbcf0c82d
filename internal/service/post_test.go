package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/pastel/internal/domain"
	"github.com/aussiebroadwan/pastel/internal/store"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, st store.Store, email, username string) domain.User {
	t.Helper()

	user, err := st.Users().CreateUser(context.Background(), domain.User{
		Email:        email,
		Username:     username,
		PasswordHash: "00ff.unusedhash",
	})
	require.NoError(t, err)
	return user
}

func TestPostService_CreateAndGet(t *testing.T) {
	st := newTestStore(t)
	svc := &PostService{Store: st}
	ctx := context.Background()

	owner := seedUser(t, st, "owner@x.com", "owner")

	post, err := svc.CreatePost(ctx, owner.ID, CreatePostParams{
		Caption: "sunset",
		Images:  []string{"https://img.example/1.jpg", "https://img.example/2.jpg"},
	})
	require.NoError(t, err)
	require.Equal(t, owner.ID, post.AuthorID)
	require.Equal(t, "sunset", post.Caption)
	require.Len(t, post.Images, 2)
	require.Equal(t, "https://img.example/1.jpg", post.Images[0].URL)

	got, err := svc.GetPost(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, post.ID, got.ID)
}

func TestPostService_GetPost_NotFound(t *testing.T) {
	st := newTestStore(t)
	svc := &PostService{Store: st}

	_, err := svc.GetPost(context.Background(), 12345)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPostService_UpdatePost_Ownership(t *testing.T) {
	st := newTestStore(t)
	svc := &PostService{Store: st}
	ctx := context.Background()

	owner := seedUser(t, st, "owner@x.com", "owner")
	other := seedUser(t, st, "other@x.com", "other")

	post, err := svc.CreatePost(ctx, owner.ID, CreatePostParams{Caption: "mine"})
	require.NoError(t, err)

	caption := "stolen"
	_, err = svc.UpdatePost(ctx, other.ID, post.ID, UpdatePostParams{Caption: &caption})
	require.ErrorIs(t, err, ErrNotOwner)

	// No mutation happened.
	unchanged, err := svc.GetPost(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, "mine", unchanged.Caption)

	// The owner can update, images replaced wholesale.
	caption = "updated"
	updated, err := svc.UpdatePost(ctx, owner.ID, post.ID, UpdatePostParams{
		Caption: &caption,
		Images:  []string{"https://img.example/new.jpg"},
	})
	require.NoError(t, err)
	require.Equal(t, "updated", updated.Caption)
	require.Len(t, updated.Images, 1)
	require.Equal(t, "https://img.example/new.jpg", updated.Images[0].URL)
}

func TestPostService_UpdatePost_NotFoundBeforeOwnership(t *testing.T) {
	st := newTestStore(t)
	svc := &PostService{Store: st}

	other := seedUser(t, st, "other@x.com", "other")

	caption := "anything"
	_, err := svc.UpdatePost(context.Background(), other.ID, 999, UpdatePostParams{Caption: &caption})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPostService_DeletePost_Ownership(t *testing.T) {
	st := newTestStore(t)
	svc := &PostService{Store: st}
	ctx := context.Background()

	owner := seedUser(t, st, "owner@x.com", "owner")
	other := seedUser(t, st, "other@x.com", "other")

	post, err := svc.CreatePost(ctx, owner.ID, CreatePostParams{Caption: "keep"})
	require.NoError(t, err)

	err = svc.DeletePost(ctx, other.ID, post.ID)
	require.ErrorIs(t, err, ErrNotOwner)

	// Still present.
	_, err = svc.GetPost(ctx, post.ID)
	require.NoError(t, err)

	require.NoError(t, svc.DeletePost(ctx, owner.ID, post.ID))

	_, err = svc.GetPost(ctx, post.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPostService_Feed(t *testing.T) {
	st := newTestStore(t)
	posts := &PostService{Store: st}
	users := &UserService{Store: st}
	ctx := context.Background()

	alice := seedUser(t, st, "alice@x.com", "alice")
	bob := seedUser(t, st, "bob@x.com", "bob")
	carol := seedUser(t, st, "carol@x.com", "carol")

	_, err := posts.CreatePost(ctx, alice.ID, CreatePostParams{Caption: "from alice"})
	require.NoError(t, err)
	_, err = posts.CreatePost(ctx, bob.ID, CreatePostParams{Caption: "from bob"})
	require.NoError(t, err)
	_, err = posts.CreatePost(ctx, carol.ID, CreatePostParams{Caption: "from carol"})
	require.NoError(t, err)

	// Alice follows bob but not carol.
	require.NoError(t, users.Follow(ctx, alice.ID, bob.ID))

	feed, err := posts.Feed(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, feed, 2)

	captions := []string{feed[0].Caption, feed[1].Caption}
	require.ElementsMatch(t, []string{"from alice", "from bob"}, captions)
}
