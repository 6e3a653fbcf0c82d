package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/pastel/internal/domain"
	"github.com/aussiebroadwan/pastel/internal/store"
)

// PostService exposes post CRUD and the feed. Mutations enforce the
// ownership rule: fetch first, report not-found before ownership, write
// only for the owning subject.
type PostService struct {
	Store store.Store
}

// CreatePostParams are the fields accepted when creating a post.
type CreatePostParams struct {
	Caption string
	Images  []string // image URLs, stored in order
}

func (s *PostService) CreatePost(ctx context.Context, subject int64, p CreatePostParams) (domain.Post, error) {
	images := make([]domain.PostImage, len(p.Images))
	for i, url := range p.Images {
		images[i] = domain.PostImage{URL: url}
	}

	// The post row and its images land atomically; a failed image insert
	// must not leave a caption-only post behind.
	var post domain.Post
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		post, err = tx.Posts().CreatePost(ctx, domain.Post{
			AuthorID: subject,
			Caption:  p.Caption,
			Images:   images,
		})
		return err
	})
	if err != nil {
		return domain.Post{}, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// Feed returns posts by the users the subject follows plus the subject's
// own posts, newest first.
func (s *PostService) Feed(ctx context.Context, subject int64) ([]domain.Post, error) {
	following, err := s.Store.Follows().ListFollowing(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("feed: list following: %w", err)
	}

	authorIDs := append(following, subject)
	posts, err := s.Store.Posts().ListPostsByAuthors(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("feed: list posts: %w", err)
	}
	return posts, nil
}

func (s *PostService) ListByUser(ctx context.Context, userID int64) ([]domain.Post, error) {
	posts, err := s.Store.Posts().ListPostsByAuthor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (s *PostService) GetPost(ctx context.Context, postID int64) (domain.Post, error) {
	post, err := s.Store.Posts().GetPostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Post{}, ErrNotFound
		}
		return domain.Post{}, fmt.Errorf("get post: %w", err)
	}
	return post, nil
}

// UpdatePostParams are the mutable post fields. A nil Images leaves the
// images untouched; a non-empty slice replaces them wholesale.
type UpdatePostParams struct {
	Caption *string
	Images  []string
}

func (s *PostService) UpdatePost(ctx context.Context, subject, postID int64, p UpdatePostParams) (domain.Post, error) {
	post, err := s.Store.Posts().GetPostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Post{}, ErrNotFound
		}
		return domain.Post{}, fmt.Errorf("update post: fetch post: %w", err)
	}

	if err := requireOwner(subject, post.AuthorID); err != nil {
		return domain.Post{}, err
	}

	caption := post.Caption
	if p.Caption != nil {
		caption = *p.Caption
	}

	// Image replacement and the caption write land atomically.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if len(p.Images) > 0 {
			if err := tx.Posts().ReplaceImages(ctx, postID, p.Images); err != nil {
				return err
			}
		}
		return tx.Posts().UpdateCaption(ctx, postID, caption)
	})
	if err != nil {
		return domain.Post{}, fmt.Errorf("update post: %w", err)
	}

	return s.GetPost(ctx, postID)
}

func (s *PostService) DeletePost(ctx context.Context, subject, postID int64) error {
	post, err := s.Store.Posts().GetPostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete post: fetch post: %w", err)
	}

	if err := requireOwner(subject, post.AuthorID); err != nil {
		return err
	}

	if err := s.Store.Posts().DeletePost(ctx, postID); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}
