package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/pastel/internal/domain"
	"github.com/aussiebroadwan/pastel/internal/store"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	t.Helper()

	st, err := NewStore("file:" + filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func TestCreateUser_DuplicateEmailConstraint(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	_, err := st.Users().CreateUser(ctx, domain.User{
		Email: "a@x.com", Username: "alice", PasswordHash: "00ff.hash",
	})
	require.NoError(t, err)

	// The UNIQUE constraint backs the service-level pre-check, so a
	// concurrent insert that slips past it still fails here.
	_, err = st.Users().CreateUser(ctx, domain.User{
		Email: "a@x.com", Username: "impostor", PasswordHash: "00ff.hash",
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestCreateFollow_DuplicateConstraint(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	alice, err := st.Users().CreateUser(ctx, domain.User{
		Email: "a@x.com", Username: "alice", PasswordHash: "00ff.hash",
	})
	require.NoError(t, err)
	bob, err := st.Users().CreateUser(ctx, domain.User{
		Email: "b@x.com", Username: "bob", PasswordHash: "00ff.hash",
	})
	require.NoError(t, err)

	require.NoError(t, st.Follows().CreateFollow(ctx, alice.ID, bob.ID))
	require.ErrorIs(t, st.Follows().CreateFollow(ctx, alice.ID, bob.ID), store.ErrAlreadyExists)
}

func TestDeleteUser_Cascades(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	alice, err := st.Users().CreateUser(ctx, domain.User{
		Email: "a@x.com", Username: "alice", PasswordHash: "00ff.hash",
	})
	require.NoError(t, err)
	bob, err := st.Users().CreateUser(ctx, domain.User{
		Email: "b@x.com", Username: "bob", PasswordHash: "00ff.hash",
	})
	require.NoError(t, err)

	post, err := st.Posts().CreatePost(ctx, domain.Post{
		AuthorID: alice.ID,
		Caption:  "mine",
		Images:   []domain.PostImage{{URL: "https://img.example/1.jpg"}},
	})
	require.NoError(t, err)
	require.NoError(t, st.Follows().CreateFollow(ctx, bob.ID, alice.ID))

	require.NoError(t, st.Users().DeleteUser(ctx, alice.ID))

	_, err = st.Posts().GetPostByID(ctx, post.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	following, err := st.Follows().ListFollowing(ctx, bob.ID)
	require.NoError(t, err)
	require.Empty(t, following)
}

func TestCreatePost_RollsBackWithImages(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	alice, err := st.Users().CreateUser(ctx, domain.User{
		Email: "a@x.com", Username: "alice", PasswordHash: "00ff.hash",
	})
	require.NoError(t, err)

	// A failure after the insert must not leave a caption-only post.
	boom := errors.New("image rejected")
	err = st.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Posts().CreatePost(ctx, domain.Post{
			AuthorID: alice.ID,
			Caption:  "half-written",
			Images:   []domain.PostImage{{URL: "https://img.example/1.jpg"}},
		}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	posts, err := st.Posts().ListPostsByAuthor(ctx, alice.ID)
	require.NoError(t, err)
	require.Empty(t, posts)
}

func TestCreatePost_ForeignKeyViolation(t *testing.T) {
	st := newStore(t)

	// No such author: this is an FK failure, not a duplicate.
	_, err := st.Posts().CreatePost(context.Background(), domain.Post{
		AuthorID: 999, Caption: "orphan",
	})
	require.Error(t, err)
	require.NotErrorIs(t, err, store.ErrAlreadyExists)
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	alice, err := st.Users().CreateUser(ctx, domain.User{
		Email: "a@x.com", Username: "alice", PasswordHash: "00ff.hash",
	})
	require.NoError(t, err)

	post, err := st.Posts().CreatePost(ctx, domain.Post{AuthorID: alice.ID, Caption: "before"})
	require.NoError(t, err)

	boom := context.Canceled
	err = st.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Posts().UpdateCaption(ctx, post.ID, "after"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	unchanged, err := st.Posts().GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, "before", unchanged.Caption)
}
