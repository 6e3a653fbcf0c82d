package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/pastel/internal/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	Posts() Posts
	Follows() Follows

	ApplyMigrations() error

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transaction-scoped Store.
type Tx interface {
	Users() Users
	Posts() Posts
	Follows() Follows
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id int64) (domain.User, error)

	// GetUserByEmail is used during sign-up's duplicate check and sign-in.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// ListUsers returns all users ordered by id.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// CreateUser inserts a new user and returns it with its assigned id.
	// The email UNIQUE constraint is the authoritative duplicate guard;
	// violations surface as ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) (domain.User, error)

	// UpdateProfile mutates username, name, bio and avatar_url and bumps
	// updated_at.
	UpdateProfile(ctx context.Context, u domain.User) (domain.User, error)

	// DeleteUser cascades to posts and follows (per schema).
	DeleteUser(ctx context.Context, id int64) error
}

type Posts interface {
	// GetPostByID returns a post with its images.
	GetPostByID(ctx context.Context, id int64) (domain.Post, error)

	// CreatePost inserts a post plus its images and returns the stored
	// record.
	CreatePost(ctx context.Context, p domain.Post) (domain.Post, error)

	// ListPostsByAuthor returns an author's posts, newest first.
	ListPostsByAuthor(ctx context.Context, authorID int64) ([]domain.Post, error)

	// ListPostsByAuthors returns posts by any of the given authors, newest
	// first. Used to build feeds.
	ListPostsByAuthors(ctx context.Context, authorIDs []int64) ([]domain.Post, error)

	// UpdateCaption sets the caption and bumps updated_at.
	UpdateCaption(ctx context.Context, postID int64, caption string) error

	// ReplaceImages deletes a post's images and inserts the given URLs.
	ReplaceImages(ctx context.Context, postID int64, urls []string) error

	// DeletePost cascades to post_images (per schema).
	DeletePost(ctx context.Context, postID int64) error
}

type Follows interface {
	// CreateFollow records follower -> followee. Duplicate pairs surface
	// as ErrAlreadyExists.
	CreateFollow(ctx context.Context, followerID, followeeID int64) error

	// DeleteFollow removes the pair; absent pairs surface as ErrNotFound.
	DeleteFollow(ctx context.Context, followerID, followeeID int64) error

	// ListFollowing returns the ids a user follows.
	ListFollowing(ctx context.Context, followerID int64) ([]int64, error)
}
