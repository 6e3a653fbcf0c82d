package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/pastel/internal/domain"
	"github.com/aussiebroadwan/pastel/internal/store"
)

// UserService exposes profile reads and guarded profile mutations.
type UserService struct {
	Store store.Store
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.PublicUser, error) {
	users, err := s.Store.Users().ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	public := make([]domain.PublicUser, len(users))
	for i, u := range users {
		public[i] = u.Public()
	}
	return public, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (domain.PublicUser, error) {
	user, err := s.Store.Users().GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.PublicUser{}, ErrNotFound
		}
		return domain.PublicUser{}, fmt.Errorf("get user: %w", err)
	}
	return user.Public(), nil
}

// UpdateProfileParams are the mutable profile fields. Nil means unchanged.
type UpdateProfileParams struct {
	Username  *string
	Name      *string
	Bio       *string
	AvatarURL *string
}

// UpdateProfile mutates a user's own profile. The record is fetched first
// so a missing user reports not-found before the ownership check runs.
func (s *UserService) UpdateProfile(ctx context.Context, subject, userID int64, p UpdateProfileParams) (domain.PublicUser, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.PublicUser{}, ErrNotFound
		}
		return domain.PublicUser{}, fmt.Errorf("update profile: fetch user: %w", err)
	}

	if err := requireOwner(subject, user.ID); err != nil {
		return domain.PublicUser{}, err
	}

	if p.Username != nil {
		user.Username = *p.Username
	}
	if p.Name != nil {
		user.Name = *p.Name
	}
	if p.Bio != nil {
		user.Bio = *p.Bio
	}
	if p.AvatarURL != nil {
		user.AvatarURL = *p.AvatarURL
	}

	updated, err := s.Store.Users().UpdateProfile(ctx, user)
	if err != nil {
		return domain.PublicUser{}, fmt.Errorf("update profile: %w", err)
	}
	return updated.Public(), nil
}

// DeleteUser removes a user's own account.
func (s *UserService) DeleteUser(ctx context.Context, subject, userID int64) error {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete user: fetch user: %w", err)
	}

	if err := requireOwner(subject, user.ID); err != nil {
		return err
	}

	if err := s.Store.Users().DeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// Follow records subject -> followee. Following an absent user reports
// not-found; following twice is a no-op.
func (s *UserService) Follow(ctx context.Context, subject, followeeID int64) error {
	if _, err := s.Store.Users().GetUserByID(ctx, followeeID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("follow: fetch user: %w", err)
	}

	err := s.Store.Follows().CreateFollow(ctx, subject, followeeID)
	if err != nil && !errors.Is(err, store.ErrAlreadyExists) {
		return fmt.Errorf("follow: %w", err)
	}
	return nil
}

// Unfollow removes subject -> followee. Unfollowing a user not being
// followed reports not-found.
func (s *UserService) Unfollow(ctx context.Context, subject, followeeID int64) error {
	err := s.Store.Follows().DeleteFollow(ctx, subject, followeeID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("unfollow: %w", err)
	}
	return nil
}
